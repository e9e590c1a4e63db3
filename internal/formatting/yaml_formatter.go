package formatting

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLFormatter provides YAML output formatting
type YAMLFormatter struct {
	options Options
}

// FormatListing writes the rows as a YAML sequence.
func (f *YAMLFormatter) FormatListing(w io.Writer, rows []ListingRow) error {
	if rows == nil {
		rows = []ListingRow{}
	}
	return f.FormatData(w, rows)
}

// FormatData formats generic data as YAML
func (f *YAMLFormatter) FormatData(w io.Writer, data interface{}) error {
	yamlBytes, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to format YAML: %w", err)
	}
	_, err = w.Write(yamlBytes)
	return err
}
