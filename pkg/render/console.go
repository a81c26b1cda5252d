package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"

	"github.com/user/vascope/pkg/engine"
)

// Format selects how results are printed to the terminal
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a --format value
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("unknown format %q (want table, json or yaml)", s)
	}
}

// Renderer prints run results
type Renderer interface {
	Report(w io.Writer, rows []engine.AggregateRow) error
	Summary(w io.Writer, s engine.Summary) error
}

// New returns the renderer for f. Unknown formats fall back to table.
func New(f Format) Renderer {
	switch f {
	case FormatJSON:
		return &jsonRenderer{}
	case FormatYAML:
		return &yamlRenderer{}
	default:
		return &tableRenderer{}
	}
}

type jsonRenderer struct{}

func (r *jsonRenderer) Report(w io.Writer, rows []engine.AggregateRow) error {
	return r.encode(w, rows)
}

func (r *jsonRenderer) Summary(w io.Writer, s engine.Summary) error {
	return r.encode(w, s)
}

func (r *jsonRenderer) encode(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type yamlRenderer struct{}

func (r *yamlRenderer) Report(w io.Writer, rows []engine.AggregateRow) error {
	return r.encode(w, rows)
}

func (r *yamlRenderer) Summary(w io.Writer, s engine.Summary) error {
	return r.encode(w, s)
}

func (r *yamlRenderer) encode(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

type tableRenderer struct{}

func (r *tableRenderer) Report(w io.Writer, rows []engine.AggregateRow) error {
	data := pterm.TableData{engine.ReportColumns}
	for _, row := range rows {
		data = append(data, row.Record())
	}
	return printTable(w, data)
}

func (r *tableRenderer) Summary(w io.Writer, s engine.Summary) error {
	for i, t := range s.Tables() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprint(w, pterm.DefaultSection.Sprint(t.Title))

		data := pterm.TableData{t.Header}
		for _, row := range t.Rows {
			data = append(data, append([]string{row.Label}, row.Cells()...))
		}
		data = append(data, append([]string{t.Total.Label}, t.Total.Cells()...))
		if err := printTable(w, data); err != nil {
			return err
		}
	}
	return nil
}

func printTable(w io.Writer, data pterm.TableData) error {
	out, err := pterm.DefaultTable.
		WithHasHeader(true).
		WithBoxed(false).
		WithData(data).
		Srender()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	_, err = fmt.Fprintln(w, out)
	return err
}
