// Package output provides utilities for formatting and displaying calculator results.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/fincalc/internal/calculator"
	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/format"
	"github.com/iwvelando/fincalc/pkg/input"
	"golang.org/x/text/message"
)

// Write renders result to w in the named text format. Amounts are printed by
// f; a nil f means the default locale.
func Write(w io.Writer, outputFormat string, title string, result calculator.Result, f *format.Formatter) error {
	switch outputFormat {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, title, result, f)
	case constants.OutputFormatCSV:
		return CsvFormat(w, result, f)
	case constants.OutputFormatJSON:
		return JSONFormat(w, result)
	default:
		return fmt.Errorf("unsupported output format %q", outputFormat)
	}
}

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(w io.Writer, title string, result calculator.Result, f *format.Formatter) error {
	f = orDefault(f)
	p := message.NewPrinter(f.Tag())
	ew := &errWriter{w: w}

	_, _ = p.Fprintf(ew, "--- %s ---\n", title)
	width := 0
	for _, card := range result.Cards {
		width = max(width, len(card.Title))
	}
	for _, card := range result.Cards {
		_, _ = p.Fprintf(ew, "%-*s | %s\n", width, card.Title, card.FormattedIn(f))
	}

	for _, table := range result.Tables {
		_, _ = p.Fprintf(ew, "\n%s (%d rows)\n", table.Title, len(table.Rows))
		header := []string{table.LabelHeader}
		for _, col := range table.Columns {
			header = append(header, col.Title)
		}
		_, _ = p.Fprintf(ew, "%s\n", strings.Join(header, " | "))
		_, _ = p.Fprintf(ew, "%s\n", strings.Join(underline(header), " | "))
		for _, row := range table.Rows {
			cells := []string{row.Label}
			for i, v := range row.Values {
				cells = append(cells, f.Value(columnKind(table, i), v))
			}
			_, _ = p.Fprintf(ew, "%s\n", strings.Join(cells, " | "))
		}
	}

	if len(result.Notes) > 0 {
		_, _ = p.Fprintf(ew, "\nNotes\n")
		for _, note := range result.Notes {
			_, _ = p.Fprintf(ew, "- %s\n", note)
		}
	}
	return ew.err
}

// CsvFormat outputs the cards and then every table in comma-separated value
// format. Sections are separated by a blank record.
func CsvFormat(w io.Writer, result calculator.Result, f *format.Formatter) error {
	f = orDefault(f)
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"card", "value", "formatted"})
	for _, card := range result.Cards {
		value := ""
		if card.Kind != input.KindText {
			value = fmt.Sprintf("%.2f", card.Value)
		}
		_ = cw.Write([]string{card.Title, value, card.FormattedIn(f)})
	}

	for _, table := range result.Tables {
		_ = cw.Write(nil)
		header := []string{table.Title + ": " + table.LabelHeader}
		for _, col := range table.Columns {
			header = append(header, col.Title)
		}
		_ = cw.Write(header)
		for _, row := range table.Rows {
			record := []string{row.Label}
			for _, v := range row.Values {
				record = append(record, fmt.Sprintf("%.2f", v))
			}
			_ = cw.Write(record)
		}
	}
	cw.Flush()
	return cw.Error()
}

// JSONFormat outputs the result as indented JSON.
func JSONFormat(w io.Writer, result calculator.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func orDefault(f *format.Formatter) *format.Formatter {
	if f == nil {
		return format.Default()
	}
	return f
}

func columnKind(table calculator.Table, i int) input.Kind {
	if i < len(table.Columns) {
		return table.Columns[i].Kind
	}
	return input.KindNumber
}

func underline(header []string) []string {
	lines := make([]string, len(header))
	for i, h := range header {
		lines[i] = strings.Repeat("_", len([]rune(h)))
	}
	return lines
}

// errWriter keeps the first write error so formatting code can ignore them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
