package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/itsatony/go-dtl"
)

// storePutOptions holds parsed store put flags
type storePutOptions struct {
	name         string
	templatePath string
	tags         []string
	createdBy    string
}

// storeListOptions holds parsed store list flags
type storeListOptions struct {
	prefix string
	format string
}

// storedTemplateOutput represents JSON output for one stored template
type storedTemplateOutput struct {
	Name      string   `json:"name"`
	Version   int      `json:"version"`
	Tags      []string `json:"tags,omitempty"`
	CreatedBy string   `json:"created_by,omitempty"`
}

func newStoreCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   CmdNameStore,
		Short: HelpStoreShort,
	}
	cmd.AddCommand(newStorePutCmd(c))
	cmd.AddCommand(newStoreListCmd(c))
	return cmd
}

func newStorePutCmd(c *cli) *cobra.Command {
	o := &storePutOptions{}

	cmd := &cobra.Command{
		Use:   CmdNamePut,
		Short: HelpStorePutShort,
		Args:  cobra.NoArgs,
		RunE:  func(cmd *cobra.Command, _ []string) error { return o.Run(cmd, c) },
	}

	flags := cmd.Flags()
	flags.StringVarP(&o.name, FlagName, FlagNameShort, "", "template name")
	flags.StringVarP(&o.templatePath, FlagTemplate, FlagTemplateShort, "", `template file (use "-" for stdin)`)
	flags.StringSliceVar(&o.tags, FlagTag, nil, "tags for the stored version")
	flags.StringVar(&o.createdBy, FlagCreatedBy, "", "author of the stored version")

	return cmd
}

func (o *storePutOptions) Run(cmd *cobra.Command, c *cli) error {
	if o.name == "" {
		return newExitError(ExitCodeUsageError, ErrMsgMissingName, nil)
	}
	if o.templatePath == "" {
		return newExitError(ExitCodeUsageError, ErrMsgMissingTemplate, nil)
	}

	source, err := readInput(o.templatePath, c.stdin)
	if err != nil {
		return newExitError(ExitCodeInputError, ErrMsgReadFileFailed, err)
	}

	se, err := c.newStorageEngine()
	if err != nil {
		return err
	}

	result, err := se.Engine().Validate(string(source))
	if err != nil {
		return newExitError(ExitCodeError, ErrMsgParseTemplateFailed, err)
	}
	if !result.IsValid() {
		outputValidationText(result, false, c.stderr)
		return newExitError(ExitCodeValidationError, ErrMsgValidationFailed, nil)
	}

	tmpl := &dtl.StoredTemplate{
		Name:      o.name,
		Source:    string(source),
		Tags:      o.tags,
		CreatedBy: o.createdBy,
	}
	if err := se.SaveWithoutValidation(cmd.Context(), tmpl); err != nil {
		return newExitError(ExitCodeError, ErrMsgStorageFailed, err)
	}

	fmt.Fprintf(c.stdout, StoreTextSaved+FmtNewline, tmpl.Name, tmpl.Version)
	return nil
}

func newStoreListCmd(c *cli) *cobra.Command {
	o := &storeListOptions{}

	cmd := &cobra.Command{
		Use:   CmdNameList,
		Short: HelpStoreListShort,
		Args:  cobra.NoArgs,
		RunE:  func(cmd *cobra.Command, _ []string) error { return o.Run(cmd, c) },
	}

	flags := cmd.Flags()
	flags.StringVar(&o.prefix, FlagPrefix, "", "only list names with this prefix")
	flags.StringVarP(&o.format, FlagFormat, FlagFormatShort, FlagDefaultFormat, "output format: text, json")

	return cmd
}

func (o *storeListOptions) Run(cmd *cobra.Command, c *cli) error {
	if err := checkFormat(o.format); err != nil {
		return err
	}

	se, err := c.newStorageEngine()
	if err != nil {
		return err
	}

	templates, err := se.List(cmd.Context(), &dtl.TemplateQuery{NamePrefix: o.prefix})
	if err != nil {
		return newExitError(ExitCodeError, ErrMsgStorageFailed, err)
	}

	if o.format == OutputFormatJSON {
		output := make([]storedTemplateOutput, 0, len(templates))
		for _, t := range templates {
			output = append(output, storedTemplateOutput{
				Name:      t.Name,
				Version:   t.Version,
				Tags:      t.Tags,
				CreatedBy: t.CreatedBy,
			})
		}
		jsonBytes, _ := json.MarshalIndent(output, "", "  ")
		fmt.Fprintln(c.stdout, string(jsonBytes))
		return nil
	}

	for _, t := range templates {
		fmt.Fprintf(c.stdout, StoreTextListItem+FmtNewline, t.Name, t.Version, strings.Join(t.Tags, ","))
	}
	return nil
}
