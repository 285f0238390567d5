package main

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// readInput reads content from a file or stdin
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == InputSourceStdin {
		return io.ReadAll(stdin)
	}

	return os.ReadFile(path)
}

// writeOutput writes content to a file or stdout
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == FlagDefaultOutput {
		_, err := stdout.Write(data)
		return err
	}

	return os.WriteFile(path, data, FilePermissions)
}

// loadData decodes template data from an inline JSON string or a data
// file whose format follows its extension.
func loadData(jsonStr, filePath string, stdin io.Reader) (map[string]any, error) {
	result := make(map[string]any)

	switch {
	case filePath != "":
		raw, err := readInput(filePath, stdin)
		if err != nil {
			return nil, err
		}
		if err := decodeData(filePath, raw, &result); err != nil {
			return nil, err
		}
	case jsonStr != "":
		if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
			return nil, err
		}
	}

	if result == nil {
		// a literal null document
		result = make(map[string]any)
	}
	return result, nil
}

func decodeData(path string, raw []byte, out *map[string]any) error {
	// stdin carries JSON
	if path == InputSourceStdin {
		return json.Unmarshal(raw, out)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case DataExtJSON:
		return json.Unmarshal(raw, out)
	case DataExtYAML, DataExtYML:
		return yaml.Unmarshal(raw, out)
	case DataExtTOML:
		return toml.Unmarshal(raw, out)
	default:
		return errors.New(ErrMsgUnsupportedDataFile)
	}
}
