package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/caarlos0/env/v10"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/itsatony/go-dtl"
)

// Config holds CLI configuration read from the environment.
// Persistent flags override the environment values.
type Config struct {
	LogLevel      string `env:"DTL_LOG_LEVEL" envDefault:"warn"`
	MaxDepth      int    `env:"DTL_MAX_DEPTH" envDefault:"100"`
	StorageDriver string `env:"DTL_STORAGE_DRIVER" envDefault:"memory"`
	StorageDSN    string `env:"DTL_STORAGE_DSN"`
}

// loadConfig loads configuration from environment variables
func loadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.MaxDepth < 0 {
		return errors.New(ErrMsgInvalidMaxDepth)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgInvalidLogLevel, err)
	}
	return nil
}

// cli holds per-invocation state shared by all commands
type cli struct {
	cfg     *Config
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	logger  *zap.Logger
	storage dtl.TemplateStorage
}

func newCLI(cfg *Config, stdin io.Reader, stdout, stderr io.Writer) *cli {
	return &cli{
		cfg:    cfg,
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		logger: zap.NewNop(),
	}
}

// setup runs after flag parsing, so flag overrides are already applied
func (c *cli) setup(command string) error {
	if err := c.cfg.Validate(); err != nil {
		return newExitError(ExitCodeUsageError, ErrMsgInvalidConfig, err)
	}

	level, _ := zapcore.ParseLevel(c.cfg.LogLevel)
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(c.stderr),
		level,
	)
	c.logger = zap.New(core)
	c.logger.Debug(LogMsgCLIStart, zap.String(LogFieldCommand, command))
	return nil
}

func (c *cli) newEngine() (*dtl.Engine, error) {
	engine, err := dtl.New(
		dtl.WithLogger(c.logger),
		dtl.WithMaxDepth(c.cfg.MaxDepth),
	)
	if err != nil {
		return nil, newExitError(ExitCodeError, ErrMsgEngineFailed, err)
	}
	return engine, nil
}

// newStorageEngine opens the configured storage; close releases it
func (c *cli) newStorageEngine() (*dtl.StorageEngine, error) {
	engine, err := c.newEngine()
	if err != nil {
		return nil, err
	}

	storage, err := dtl.OpenStorage(c.cfg.StorageDriver, c.cfg.StorageDSN)
	if err != nil {
		return nil, newExitError(ExitCodeError, ErrMsgStorageFailed, err)
	}
	c.storage = storage
	c.logger.Debug(LogMsgStorageOpened, zap.String(LogFieldDriver, c.cfg.StorageDriver))

	se, err := dtl.NewStorageEngine(dtl.StorageEngineConfig{Storage: storage, Engine: engine})
	if err != nil {
		return nil, newExitError(ExitCodeError, ErrMsgStorageFailed, err)
	}
	return se, nil
}

func (c *cli) close() {
	if c.storage != nil {
		_ = c.storage.Close()
		c.storage = nil
	}
	_ = c.logger.Sync()
}
