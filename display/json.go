package display

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/teranos/fsim/errors"
)

// Structured output formats
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTOML  = "toml"
)

// MarshalJSON marshals JSON with pretty formatting for human-readable output,
// or compactly when compact is set (for piping into other tools).
func MarshalJSON(v interface{}, compact bool) ([]byte, error) {
	if compact {
		return json.Marshal(v)
	}
	return json.MarshalIndent(v, "", "  ")
}

// OutputJSON marshals and prints JSON to stdout
func OutputJSON(v interface{}) error {
	return Encode(os.Stdout, FormatJSON, v)
}

// Encode writes v to w in a structured format. TOML requires v to encode
// as a table (a struct or map).
func Encode(w io.Writer, format string, v interface{}) error {
	switch format {
	case FormatJSON:
		data, err := MarshalJSON(v, false)
		if err != nil {
			return errors.Wrap(err, "failed to marshal JSON")
		}
		_, err = fmt.Fprintln(w, string(data))
		return err

	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, "failed to marshal YAML")
		}
		return enc.Close()

	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(v); err != nil {
			return errors.Wrap(err, "failed to marshal TOML")
		}
		return nil
	}

	return errors.WithHintf(
		errors.NewInvalidInputError("unsupported output format %q", format),
		"use one of: %s, %s, %s", FormatJSON, FormatYAML, FormatTOML)
}
