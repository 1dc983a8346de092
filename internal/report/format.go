// Package report renders a collected system record as console text or
// writes it to a file in one of the supported encodings.
package report

import (
	"fmt"
	"strings"
)

// Format names an output encoding.
type Format string

const (
	FormatText   Format = "text"
	FormatCSV    Format = "csv"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatTOML   Format = "toml"
	FormatSQLite Format = "sqlite"
)

// Formats lists every accepted format in display order.
var Formats = []Format{FormatCSV, FormatJSON, FormatText, FormatYAML, FormatTOML, FormatSQLite}

// ParseFormat validates a user-supplied format name (case-insensitive).
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid format %q (choose from %s)", s, formatList())
}

// Extension returns the file extension appended to the output base name.
// Text has none; it is printed to the console.
func (f Format) Extension() string {
	switch f {
	case FormatCSV:
		return ".csv"
	case FormatJSON:
		return ".json"
	case FormatYAML:
		return ".yaml"
	case FormatTOML:
		return ".toml"
	case FormatSQLite:
		return ".db"
	default:
		return ""
	}
}

func formatList() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
