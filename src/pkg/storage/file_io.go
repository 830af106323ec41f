package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"dailyfocus/local-app/src/pkg/model"
)

// Dump is the complete persisted state as one flat document, keyed exactly
// like the store.
type Dump struct {
	model.AppData      `yaml:",inline"`
	model.LearningData `yaml:",inline"`
}

// FormatFromPath guesses the dump format from a file extension.
func FormatFromPath(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}

// FileExport writes dump to filename in the specified format (json or yaml).
// An empty format is taken from the file extension.
func FileExport(dump Dump, filename string, format string) error {
	if format == "" {
		format = FormatFromPath(filename)
	}
	var data []byte
	var err error
	switch format {
	case "json":
		data, err = json.MarshalIndent(dump, "", "  ")
	case "yaml":
		data, err = yaml.Marshal(dump)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// FileImport reads a dump file and returns it as JSON, whatever its format,
// so the caller can validate its shape before decoding it.
func FileImport(filename string, format string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	if format == "" {
		format = FormatFromPath(filename)
	}
	switch format {
	case "json":
		if !json.Valid(data) {
			return nil, fmt.Errorf("failed to parse %s: invalid JSON", filepath.Base(filename))
		}
		return data, nil
	case "yaml":
		var doc map[string]interface{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal data: %w", err)
		}
		out, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to convert data: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// DecodeDump decodes a JSON document produced by FileImport.
func DecodeDump(data []byte) (Dump, error) {
	var dump Dump
	if err := json.Unmarshal(data, &dump); err != nil {
		return Dump{}, fmt.Errorf("failed to decode data: %w", err)
	}
	return dump, nil
}
