package loader

import (
	"fmt"
	"strings"

	"github.com/user/vascope/pkg/engine"
)

// Column headers read from scan exports
const (
	ColName     = "Name"
	ColRisk     = "Risk"
	ColHost     = "Host"
	ColPort     = "Port"
	ColProtocol = "Protocol"
	ColPluginID = "Plugin ID"
)

// BatchColumns are required by the aggregate report
var BatchColumns = []string{ColName, ColRisk, ColHost, ColPort}

// PeriodColumns are required by the recurrence comparison
var PeriodColumns = []string{ColPluginID, ColHost, ColProtocol, ColPort, ColName, ColRisk}

// Sheet is one table of a scan export: a CSV file or a workbook sheet.
// Rows excludes the header, so Rows[i] is source row i+2.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]string
}

func newSheet(name string, raw [][]string) Sheet {
	s := Sheet{Name: name}
	if len(raw) == 0 {
		return s
	}
	s.Header = make([]string, len(raw[0]))
	for i, h := range raw[0] {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if h == "" {
			h = fmt.Sprintf("BlankCol_%d", i)
		}
		s.Header[i] = h
	}
	s.Rows = raw[1:]
	return s
}

// Columns maps each required header to its 0-based index. Every missing
// header is reported in one ErrMalformedSchema error.
func (s Sheet) Columns(required []string) (map[string]int, error) {
	idx := s.index()

	var missing []string
	for _, c := range required {
		if _, ok := idx[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s lacks %s", ErrMalformedSchema, s.Name, strings.Join(missing, ", "))
	}
	return idx, nil
}

// Records converts the sheet rows into findings tagged with source. The
// required columns must be present; the other finding columns are read
// when the sheet has them.
func (s Sheet) Records(source string, required []string) ([]engine.Finding, error) {
	idx, err := s.Columns(required)
	if err != nil {
		return nil, err
	}
	return s.records(source, idx), nil
}

// index maps every header to its first 0-based position
func (s Sheet) index() map[string]int {
	idx := make(map[string]int, len(s.Header))
	for i, h := range s.Header {
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	return idx
}

// records converts every row using idx; columns missing from idx read as empty
func (s Sheet) records(source string, idx map[string]int) []engine.Finding {
	cell := func(row []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	out := make([]engine.Finding, 0, len(s.Rows))
	for i, row := range s.Rows {
		out = append(out, engine.Finding{
			Name:     cell(row, ColName),
			Risk:     cell(row, ColRisk),
			Host:     cell(row, ColHost),
			Port:     cell(row, ColPort),
			Protocol: cell(row, ColProtocol),
			PluginID: cell(row, ColPluginID),
			Source:   source,
			Row:      i + 2,
		})
	}
	return out
}

// Index returns the 0-based position of a header, or -1
func (s Sheet) Index(col string) int {
	for i, h := range s.Header {
		if h == col {
			return i
		}
	}
	return -1
}
