package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/itsatony/go-dtl"
)

// validateOptions holds parsed validate command flags
type validateOptions struct {
	templatePath string
	format       string
	strict       bool
}

// validationOutput represents JSON output for validation
type validationOutput struct {
	Valid  bool                    `json:"valid"`
	Issues []validationIssueOutput `json:"issues,omitempty"`
}

type validationIssueOutput struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Tag      string `json:"tag,omitempty"`
}

func newValidateCmd(c *cli) *cobra.Command {
	o := &validateOptions{}

	cmd := &cobra.Command{
		Use:     CmdNameValidate,
		Short:   HelpValidateShort,
		Example: HelpValidateExample,
		Args:    cobra.NoArgs,
		RunE:    func(_ *cobra.Command, _ []string) error { return o.Run(c) },
	}

	flags := cmd.Flags()
	flags.StringVarP(&o.templatePath, FlagTemplate, FlagTemplateShort, "", `template file (use "-" for stdin)`)
	flags.StringVarP(&o.format, FlagFormat, FlagFormatShort, FlagDefaultFormat, "output format: text, json")
	flags.BoolVar(&o.strict, FlagStrictMode, false, "treat warnings as errors")

	return cmd
}

func (o *validateOptions) Run(c *cli) error {
	if o.templatePath == "" {
		return newExitError(ExitCodeUsageError, ErrMsgMissingTemplate, nil)
	}
	if err := checkFormat(o.format); err != nil {
		return err
	}

	source, err := readInput(o.templatePath, c.stdin)
	if err != nil {
		return newExitError(ExitCodeInputError, ErrMsgReadFileFailed, err)
	}

	engine, err := c.newEngine()
	if err != nil {
		return err
	}
	result, err := engine.Validate(string(source))
	if err != nil {
		return newExitError(ExitCodeError, ErrMsgParseTemplateFailed, err)
	}

	var valid bool
	if o.format == OutputFormatJSON {
		valid = outputValidationJSON(result, o.strict, c.stdout)
	} else {
		valid = outputValidationText(result, o.strict, c.stdout)
	}

	if !valid {
		return newExitError(ExitCodeValidationError, ErrMsgValidationFailed, nil)
	}
	return nil
}

func checkFormat(format string) error {
	if format != OutputFormatText && format != OutputFormatJSON {
		return newExitError(ExitCodeUsageError, ErrMsgInvalidFormat, errors.New(format))
	}
	return nil
}

// passes reports whether a result is acceptable, counting warnings as
// failures in strict mode
func passes(result *dtl.ValidationResult, strict bool) bool {
	return result.IsValid() && (!strict || !result.HasWarnings())
}

func outputValidationText(result *dtl.ValidationResult, strict bool, stdout io.Writer) bool {
	issues := result.Issues()

	if len(issues) == 0 {
		fmt.Fprintln(stdout, ValidationTextSuccess)
		return true
	}

	fmt.Fprintln(stdout, ValidationTextIssueHeader)
	for _, issue := range issues {
		fmt.Fprintf(stdout, ValidationTextIssueFormat+FmtNewline,
			severityToName(issue.Severity), issue.Message, issue.Position.Line, issue.Position.Column)
	}
	fmt.Fprintf(stdout, ValidationTextErrorSummary+FmtNewline, len(result.Errors()), len(result.Warnings()))

	return passes(result, strict)
}

func outputValidationJSON(result *dtl.ValidationResult, strict bool, stdout io.Writer) bool {
	issues := result.Issues()

	output := validationOutput{
		Valid:  passes(result, strict),
		Issues: make([]validationIssueOutput, 0, len(issues)),
	}

	for _, issue := range issues {
		output.Issues = append(output.Issues, validationIssueOutput{
			Severity: severityToName(issue.Severity),
			Message:  issue.Message,
			Line:     issue.Position.Line,
			Column:   issue.Position.Column,
			Tag:      issue.Tag,
		})
	}

	jsonBytes, _ := json.MarshalIndent(output, "", "  ")
	fmt.Fprintln(stdout, string(jsonBytes))

	return output.Valid
}

func severityToName(s dtl.ValidationSeverity) string {
	switch s {
	case dtl.SeverityWarning:
		return SeverityNameWarning
	case dtl.SeverityInfo:
		return SeverityNameInfo
	default:
		return SeverityNameError
	}
}
