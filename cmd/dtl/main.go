package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	exitCode := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	os.Exit(exitCode)
}

// exitError carries the process exit code for a failed command
type exitError struct {
	code int
	msg  string
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return e.msg
	}
	return fmt.Sprintf("%s: %v", e.msg, e.err)
}

func (e *exitError) Unwrap() error {
	return e.err
}

func newExitError(code int, msg string, err error) *exitError {
	return &exitError{code: code, msg: msg, err: err}
}

// run is the main entry point for the CLI, separated for testing
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidConfig, err)
		return ExitCodeUsageError
	}

	c := newCLI(cfg, stdin, stdout, stderr)
	defer c.close()

	cmd := newRootCmd(c)
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			if exitErr.code != ExitCodeValidationError {
				fmt.Fprintln(stderr, exitErr.Error())
			}
			return exitErr.code
		}
		// cobra reports unknown commands and bad flags as plain errors
		fmt.Fprintln(stderr, err.Error())
		return ExitCodeUsageError
	}
	return ExitCodeSuccess
}

func newRootCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   CmdNameRoot,
		Short: HelpRootShort,
		Long:  HelpRootLong,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd.Name())
		},
	}

	// Affects children as well
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	cmd.DisableAutoGenTag = true
	cmd.CompletionOptions.DisableDefaultCmd = true

	flags := cmd.PersistentFlags()
	flags.StringVar(&c.cfg.LogLevel, FlagLogLevel, c.cfg.LogLevel, "log level (debug, info, warn, error)")
	flags.IntVar(&c.cfg.MaxDepth, FlagMaxDepth, c.cfg.MaxDepth, "block nesting limit (0 = unlimited)")
	flags.StringVar(&c.cfg.StorageDriver, FlagDriver, c.cfg.StorageDriver, "storage driver for stored templates")
	flags.StringVar(&c.cfg.StorageDSN, FlagDSN, c.cfg.StorageDSN, "storage connection string")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return newExitError(ExitCodeUsageError, err.Error(), nil)
	})

	cmd.AddCommand(newRenderCmd(c))
	cmd.AddCommand(newValidateCmd(c))
	cmd.AddCommand(newStoreCmd(c))
	cmd.AddCommand(newVersionCmd(c))

	return cmd
}
