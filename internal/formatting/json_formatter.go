package formatting

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONFormatter provides structured JSON output formatting
type JSONFormatter struct {
	options Options
}

// FormatListing writes the rows as a JSON array.
func (f *JSONFormatter) FormatListing(w io.Writer, rows []ListingRow) error {
	if rows == nil {
		rows = []ListingRow{}
	}
	return f.FormatData(w, rows)
}

// FormatData formats generic data as JSON
func (f *JSONFormatter) FormatData(w io.Writer, data interface{}) error {
	if f.options.Quiet {
		// Compact JSON for quiet mode
		b, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to format JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	}
	_, err := fmt.Fprintln(w, PrettyJSON(data))
	return err
}
