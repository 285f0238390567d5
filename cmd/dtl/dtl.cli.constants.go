package main

// Command names
const (
	CmdNameRoot     = "dtl"
	CmdNameRender   = "render"
	CmdNameValidate = "validate"
	CmdNameStore    = "store"
	CmdNamePut      = "put"
	CmdNameList     = "list"
	CmdNameVersion  = "version"
)

// Flag names - long form
const (
	FlagTemplate   = "template"
	FlagData       = "data"
	FlagDataFile   = "data-file"
	FlagOutput     = "output"
	FlagName       = "name"
	FlagVersion    = "version"
	FlagFormat     = "format"
	FlagStrictMode = "strict"
	FlagTag        = "tag"
	FlagCreatedBy  = "created-by"
	FlagPrefix     = "prefix"
	FlagLogLevel   = "log-level"
	FlagMaxDepth   = "max-depth"
	FlagDriver     = "storage-driver"
	FlagDSN        = "storage-dsn"
)

// Flag names - short form
const (
	FlagTemplateShort = "t"
	FlagDataShort     = "d"
	FlagDataFileShort = "f"
	FlagOutputShort   = "o"
	FlagNameShort     = "n"
	FlagFormatShort   = "F"
)

// Flag default values
const (
	FlagDefaultOutput = "-" // stdout
	FlagDefaultFormat = "text"
)

// Output formats
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
)

// Data file extensions
const (
	DataExtJSON = ".json"
	DataExtYAML = ".yaml"
	DataExtYML  = ".yml"
	DataExtTOML = ".toml"
)

// Exit codes
const (
	ExitCodeSuccess         = 0
	ExitCodeError           = 1
	ExitCodeUsageError      = 2
	ExitCodeValidationError = 3
	ExitCodeInputError      = 4
)

// Input source indicators
const (
	InputSourceStdin = "-"
)

// Error messages - ALL must be constants
const (
	ErrMsgMissingTemplate     = "template source required"
	ErrMsgTemplateAndName     = "--template and --name are mutually exclusive"
	ErrMsgMissingName         = "template name required"
	ErrMsgInvalidData         = "invalid template data"
	ErrMsgUnsupportedDataFile = "unsupported data file extension"
	ErrMsgDataAndDataFile     = "--data and --data-file are mutually exclusive"
	ErrMsgReadFileFailed      = "failed to read file"
	ErrMsgWriteOutputFailed   = "failed to write output"
	ErrMsgParseTemplateFailed = "template parsing failed"
	ErrMsgExecuteFailed       = "template execution failed"
	ErrMsgInvalidFormat       = "invalid output format"
	ErrMsgInvalidConfig       = "invalid configuration"
	ErrMsgInvalidLogLevel     = "invalid log level"
	ErrMsgInvalidMaxDepth     = "max depth must not be negative"
	ErrMsgEngineFailed        = "failed to create engine"
	ErrMsgStorageFailed       = "storage operation failed"
	ErrMsgValidationFailed    = "template validation failed"
)

// Environment variable names
const (
	EnvLogLevel      = "DTL_LOG_LEVEL"
	EnvMaxDepth      = "DTL_MAX_DEPTH"
	EnvStorageDriver = "DTL_STORAGE_DRIVER"
	EnvStorageDSN    = "DTL_STORAGE_DSN"
)

// Help texts
const (
	HelpRootShort = "dtl renders Django-style text templates"
	HelpRootLong  = `dtl renders Django-style text templates.

Variables use {{ name|filter:"arg" }}, tags use {% for %} and {% if %},
comments use {# ... #}.

Configuration is read from the environment:
    ` + EnvLogLevel + `        log level (debug, info, warn, error)
    ` + EnvMaxDepth + `        block nesting limit (0 = unlimited)
    ` + EnvStorageDriver + `   storage driver for stored templates
    ` + EnvStorageDSN + `      storage connection string`

	HelpRenderShort   = "Render a template with data"
	HelpRenderExample = `  dtl render -t template.txt -d '{"name": "Alice"}'
  dtl render -t template.txt -f data.yaml -o output.txt
  cat template.txt | dtl render -t - -f data.toml
  dtl render -n welcome -d '{"name": "Bob"}'`

	HelpValidateShort   = "Validate a template without executing"
	HelpValidateExample = `  dtl validate -t template.txt
  dtl validate -t template.txt --strict -F json`

	HelpStoreShort     = "Manage stored templates"
	HelpStorePutShort  = "Save a new version of a named template"
	HelpStoreListShort = "List stored templates"
	HelpVersionShort   = "Show version information"
)

// Version output format templates
const (
	VersionTextTemplate = "dtl version %s\nCommit: %s\nBranch: %s\nBuilt: %s\nGo: %s"
	VersionUnknown      = "unknown"
	VersionsFileName    = "versions.yaml"
)

// Validation output format templates
const (
	ValidationTextSuccess      = "Template is valid"
	ValidationTextIssueHeader  = "Validation issues:"
	ValidationTextIssueFormat  = "  [%s] %s at line %d, column %d"
	ValidationTextErrorSummary = "%d error(s), %d warning(s)"
)

// Store output format templates
const (
	StoreTextSaved    = "stored %s version %d"
	StoreTextListItem = "%s\tv%d\t%s"
)

// Severity names for output
const (
	SeverityNameError   = "ERROR"
	SeverityNameWarning = "WARNING"
	SeverityNameInfo    = "INFO"
)

// Log messages
const (
	LogMsgCLIStart      = "dtl command started"
	LogMsgStorageOpened = "storage opened"
	LogFieldCommand     = "command"
	LogFieldDriver      = "driver"
)

// File permission constant
const (
	FilePermissions = 0644
)

// Format string constants
const (
	FmtErrorWithCause = "%s: %v\n"
	FmtNewline        = "\n"
)
