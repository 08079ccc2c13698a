package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/faizmokh/metastring/internal/catalog"
	"github.com/faizmokh/metastring/internal/metastring"
)

const (
	formatAuto  = "auto"
	formatText  = "text"
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// resolveFormat picks the output format: the flag wins over the config value,
// and auto becomes table on a terminal and text elsewhere.
func resolveFormat(flagValue, configured string, out io.Writer) (string, error) {
	format := strings.ToLower(strings.TrimSpace(flagValue))
	if format == "" {
		format = configured
	}
	switch format {
	case "", formatAuto:
		if isTerminal(out) {
			return formatTable, nil
		}
		return formatText, nil
	case formatText, formatTable, formatJSON, formatYAML:
		return format, nil
	default:
		return "", fmt.Errorf("invalid format %q (expected auto|text|table|json|yaml)", format)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// orderedFields lists date and time first, then the remaining non-reserved
// keys in lexical order. rstr is left out; callers print the name separately.
func orderedFields(md metastring.Metadata) []string {
	var keys []string
	for _, k := range []string{metastring.KeyDate, metastring.KeyTime} {
		if _, ok := md[k]; ok {
			keys = append(keys, k)
		}
	}
	return append(keys, md.Fields()...)
}

func formatParseError(err error) string {
	var perr *metastring.ParseError
	if errors.As(err, &perr) {
		return fmt.Sprintf("pair %d %q: %v", perr.Index+1, perr.Token, perr.Err)
	}
	return err.Error()
}

func printRecordsText(out io.Writer, records []catalog.Record) {
	for i, rec := range records {
		if i > 0 {
			fmt.Fprintln(out)
		}
		if !rec.Valid() {
			fmt.Fprintf(out, "%s INVALID: %s\n", rec.Name, formatParseError(rec.Err))
			continue
		}
		fmt.Fprintln(out, rec.Name)
		fields := orderedFields(rec.Metadata)
		if len(fields) == 0 {
			fmt.Fprintln(out, "  (no fields)")
		}
		for _, k := range fields {
			fmt.Fprintf(out, "  %s: %s\n", k, rec.Metadata[k])
		}
		for _, w := range rec.Warnings {
			fmt.Fprintf(out, "  warning: %s overwritten with %q\n", w.Key, w.Value)
		}
	}
}

// recordDTO is the serialized shape of a catalog.Record.
type recordDTO struct {
	Name     string            `json:"name" yaml:"name"`
	Valid    bool              `json:"valid" yaml:"valid"`
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Warnings []string          `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Error    string            `json:"error,omitempty" yaml:"error,omitempty"`
}

func toDTOs(records []catalog.Record) []recordDTO {
	list := make([]recordDTO, 0, len(records))
	for _, rec := range records {
		dto := recordDTO{
			Name:     rec.Name,
			Valid:    rec.Valid(),
			Metadata: rec.Metadata,
		}
		for _, w := range rec.Warnings {
			dto.Warnings = append(dto.Warnings, w.String())
		}
		if rec.Err != nil {
			dto.Error = formatParseError(rec.Err)
		}
		list = append(list, dto)
	}
	return list
}

func printRecordsJSON(out io.Writer, records []catalog.Record) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(toDTOs(records))
}

func printRecordsYAML(out io.Writer, records []catalog.Record) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(toDTOs(records)); err != nil {
		return err
	}
	return enc.Close()
}

// printRecordsTable renders one row per record with a column per field seen
// across all valid records.
func printRecordsTable(out io.Writer, records []catalog.Record) {
	var columns []string
	for _, k := range catalog.Keys(records) {
		if k != metastring.KeyRaw {
			columns = append(columns, k)
		}
	}

	headers := append([]string{"file", "status"}, columns...)
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		row := make([]string, 0, len(headers))
		row = append(row, rec.Name)
		switch {
		case !rec.Valid():
			row = append(row, "invalid")
		case len(rec.Warnings) > 0:
			row = append(row, "warning")
		default:
			row = append(row, "ok")
		}
		for _, k := range columns {
			row = append(row, rec.Metadata[k])
		}
		rows = append(rows, row)
	}

	fmt.Fprintln(out, renderTable(headers, rows))
}

func renderTable(headers []string, rows [][]string) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       text.AlignLeft,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func printRecords(out io.Writer, format string, records []catalog.Record) error {
	switch format {
	case formatJSON:
		return printRecordsJSON(out, records)
	case formatYAML:
		return printRecordsYAML(out, records)
	case formatTable:
		printRecordsTable(out, records)
		return nil
	default:
		printRecordsText(out, records)
		return nil
	}
}
