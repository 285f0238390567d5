package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// versionOptions holds parsed version command flags
type versionOptions struct {
	format string
}

// versionInfo holds version information
type versionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Branch    string `json:"branch"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
}

// versionsYAML represents the versions.yaml file structure
type versionsYAML struct {
	Project struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"project"`
	Git struct {
		Commit string `yaml:"commit"`
		Branch string `yaml:"branch"`
	} `yaml:"git"`
	Build struct {
		Time      string `yaml:"time"`
		GoVersion string `yaml:"go_version"`
	} `yaml:"build"`
}

func newVersionCmd(c *cli) *cobra.Command {
	o := &versionOptions{}

	cmd := &cobra.Command{
		Use:   CmdNameVersion,
		Short: HelpVersionShort,
		Args:  cobra.NoArgs,
		RunE:  func(_ *cobra.Command, _ []string) error { return o.Run(c.stdout) },
	}
	cmd.Flags().StringVarP(&o.format, FlagFormat, FlagFormatShort, FlagDefaultFormat, "output format: text, json")

	return cmd
}

func (o *versionOptions) Run(stdout io.Writer) error {
	if err := checkFormat(o.format); err != nil {
		return err
	}

	v := getVersionInfo()

	if o.format == OutputFormatJSON {
		jsonBytes, _ := json.MarshalIndent(v, "", "  ")
		fmt.Fprintln(stdout, string(jsonBytes))
		return nil
	}

	fmt.Fprintf(stdout, VersionTextTemplate+FmtNewline,
		v.Version, v.Commit, v.Branch, v.BuildTime, v.GoVersion)
	return nil
}

func getVersionInfo() *versionInfo {
	v := &versionInfo{
		Version:   VersionUnknown,
		Commit:    VersionUnknown,
		Branch:    VersionUnknown,
		BuildTime: VersionUnknown,
		GoVersion: runtime.Version(),
	}

	// current directory or up to two parents
	for _, dir := range []string{".", "..", filepath.Join("..", "..")} {
		data, err := os.ReadFile(filepath.Join(dir, VersionsFileName))
		if err != nil {
			continue
		}

		var vy versionsYAML
		if err := yaml.Unmarshal(data, &vy); err != nil {
			continue
		}

		if vy.Project.Version != "" {
			v.Version = vy.Project.Version
		}
		if vy.Git.Commit != "" {
			v.Commit = vy.Git.Commit
		}
		if vy.Git.Branch != "" {
			v.Branch = vy.Git.Branch
		}
		if vy.Build.Time != "" {
			v.BuildTime = vy.Build.Time
		}
		if vy.Build.GoVersion != "" {
			v.GoVersion = vy.Build.GoVersion
		}
		break
	}

	return v
}
