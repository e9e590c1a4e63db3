package formatting

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	pkgstrings "puppetwash/pkg/strings"
)

// TableFormatter provides rich table output formatting
type TableFormatter struct {
	options Options
}

// FormatListing renders rows as a table with NAME, KIND, METHODS and MTIME columns.
func (f *TableFormatter) FormatListing(w io.Writer, rows []ListingRow) error {
	if len(rows) == 0 {
		if !f.options.Quiet {
			fmt.Fprintln(w, text.FgYellow.Sprint("No entries found"))
		}
		return nil
	}

	t := f.createTable(w)
	t.AppendHeader(table.Row{"NAME", "KIND", "METHODS", "MTIME"})
	for _, row := range rows {
		mtime := ""
		if row.Mtime != nil {
			mtime = row.Mtime.UTC().Format(time.RFC3339)
		}
		t.AppendRow(table.Row{row.Name, row.Kind, strings.Join(row.Methods, ","), mtime})
	}
	t.Render()

	if !f.options.Quiet {
		fmt.Fprintf(w, "%s %s\n", text.FgHiBlue.Sprint("Total:"), text.FgHiWhite.Sprint(len(rows)))
	}
	return nil
}

// FormatData formats generic data using table logic
func (f *TableFormatter) FormatData(w io.Writer, data interface{}) error {
	switch d := data.(type) {
	case map[string]interface{}:
		return f.formatObjectData(w, d)
	case string:
		_, err := fmt.Fprintln(w, d)
		return err
	default:
		_, err := fmt.Fprintln(w, PrettyJSON(d))
		return err
	}
}

// createTable creates a new table with standard styling
func (f *TableFormatter) createTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	if f.options.Quiet {
		t.SetStyle(table.StyleLight)
		t.Style().Options.DrawBorder = false
		t.Style().Options.SeparateHeader = false
		t.Style().Options.SeparateColumns = false
	} else {
		t.SetStyle(table.StyleRounded)
	}
	return t
}

// cellValue renders a metadata value for a table cell.
func cellValue(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case map[string]interface{}, []interface{}:
		return PrettyJSON(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// formatObjectData formats object data as key-value pairs
func (f *TableFormatter) formatObjectData(w io.Writer, data map[string]interface{}) error {
	t := f.createTable(w)
	t.AppendHeader(table.Row{"KEY", "VALUE"})

	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		t.AppendRow(table.Row{key, pkgstrings.Summarize(cellValue(data[key]), pkgstrings.CellMaxLen)})
	}

	t.Render()
	return nil
}
