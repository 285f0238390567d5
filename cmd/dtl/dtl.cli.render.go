package main

import (
	"errors"

	"github.com/spf13/cobra"
)

// renderOptions holds parsed render command flags
type renderOptions struct {
	templatePath string
	name         string
	version      int
	dataJSON     string
	dataFilePath string
	outputPath   string
}

func newRenderCmd(c *cli) *cobra.Command {
	o := &renderOptions{}

	cmd := &cobra.Command{
		Use:     CmdNameRender,
		Short:   HelpRenderShort,
		Example: HelpRenderExample,
		Args:    cobra.NoArgs,
		RunE:    func(cmd *cobra.Command, _ []string) error { return o.Run(cmd, c) },
	}

	flags := cmd.Flags()
	flags.StringVarP(&o.templatePath, FlagTemplate, FlagTemplateShort, "", `template file (use "-" for stdin)`)
	flags.StringVarP(&o.name, FlagName, FlagNameShort, "", "render a stored template by name")
	flags.IntVar(&o.version, FlagVersion, 0, "stored template version (default: latest)")
	flags.StringVarP(&o.dataJSON, FlagData, FlagDataShort, "", "JSON data string")
	flags.StringVarP(&o.dataFilePath, FlagDataFile, FlagDataFileShort, "", "data file (.json, .yaml, .yml, .toml)")
	flags.StringVarP(&o.outputPath, FlagOutput, FlagOutputShort, FlagDefaultOutput, "output file")

	return cmd
}

func (o *renderOptions) validate() error {
	switch {
	case o.templatePath == "" && o.name == "":
		return errors.New(ErrMsgMissingTemplate)
	case o.templatePath != "" && o.name != "":
		return errors.New(ErrMsgTemplateAndName)
	case o.dataJSON != "" && o.dataFilePath != "":
		return errors.New(ErrMsgDataAndDataFile)
	}
	return nil
}

func (o *renderOptions) Run(cmd *cobra.Command, c *cli) error {
	if err := o.validate(); err != nil {
		return newExitError(ExitCodeUsageError, err.Error(), nil)
	}

	data, err := loadData(o.dataJSON, o.dataFilePath, c.stdin)
	if err != nil {
		return newExitError(ExitCodeInputError, ErrMsgInvalidData, err)
	}

	ctx := cmd.Context()
	var result string

	if o.name != "" {
		se, err := c.newStorageEngine()
		if err != nil {
			return err
		}
		if o.version > 0 {
			result, err = se.ExecuteVersion(ctx, o.name, o.version, data)
		} else {
			result, err = se.Execute(ctx, o.name, data)
		}
		if err != nil {
			return newExitError(ExitCodeError, ErrMsgExecuteFailed, err)
		}
	} else {
		source, err := readInput(o.templatePath, c.stdin)
		if err != nil {
			return newExitError(ExitCodeInputError, ErrMsgReadFileFailed, err)
		}

		engine, err := c.newEngine()
		if err != nil {
			return err
		}
		tmpl, err := engine.Parse(string(source))
		if err != nil {
			return newExitError(ExitCodeError, ErrMsgParseTemplateFailed, err)
		}
		result, err = tmpl.Execute(ctx, data)
		if err != nil {
			return newExitError(ExitCodeError, ErrMsgExecuteFailed, err)
		}
	}

	if err := writeOutput(o.outputPath, []byte(result), c.stdout); err != nil {
		return newExitError(ExitCodeError, ErrMsgWriteOutputFailed, err)
	}
	return nil
}
