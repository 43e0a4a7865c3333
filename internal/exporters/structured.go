package exporters

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/mrlokans/clippings/internal/entities"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON, FormatYAML:
		return Format(s), nil
	}
	return "", fmt.Errorf("unsupported format %q (want text, json or yaml)", s)
}

// Write encodes entries to w. Text output goes through the template, one
// rendered entry per delimiter.
func Write(w io.Writer, format Format, entries []entities.Entry, template *Template, delimiter string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if entries == nil {
			entries = []entities.Entry{}
		}
		return enc.Encode(entries)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		if len(entries) == 0 {
			return nil
		}
		_, err := fmt.Fprintln(w, template.RenderAll(entries, delimiter))
		return err
	}
}
