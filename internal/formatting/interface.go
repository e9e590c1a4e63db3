// Package formatting renders entry content and operator-facing listings.
//
// Readable implements the content rule shared by every leaf entry: strings pass
// through unchanged, everything else becomes indented JSON. The Formatter
// implementations render directory listings for the ls and tree commands as a
// table, JSON or YAML.
package formatting

import (
	"io"
	"time"
)

// OutputFormat represents the desired output format
type OutputFormat string

const (
	FormatTable OutputFormat = "table" // Rich table output
	FormatJSON  OutputFormat = "json"  // JSON output
	FormatYAML  OutputFormat = "yaml"  // YAML output
)

// ParseOutputFormat validates a user-supplied format name.
func ParseOutputFormat(name string) (OutputFormat, bool) {
	switch OutputFormat(name) {
	case FormatTable, FormatJSON, FormatYAML:
		return OutputFormat(name), true
	case "":
		return FormatTable, true
	default:
		return "", false
	}
}

// Options configures the formatter behavior
type Options struct {
	Format OutputFormat
	Quiet  bool // Suppress decorative elements
}

// ListingRow is one child in a directory listing.
type ListingRow struct {
	Name    string     `json:"name" yaml:"name"`
	Kind    string     `json:"kind" yaml:"kind"`
	Methods []string   `json:"methods" yaml:"methods"`
	Mtime   *time.Time `json:"mtime,omitempty" yaml:"mtime,omitempty"`
}

// Formatter renders listings and generic data.
type Formatter interface {
	FormatListing(w io.Writer, rows []ListingRow) error
	FormatData(w io.Writer, data interface{}) error
}

// NewFormatter creates the appropriate formatter based on options
func NewFormatter(options Options) Formatter {
	switch options.Format {
	case FormatJSON:
		return &JSONFormatter{options: options}
	case FormatYAML:
		return &YAMLFormatter{options: options}
	default:
		return &TableFormatter{options: options}
	}
}
