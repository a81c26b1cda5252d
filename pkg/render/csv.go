package render

import (
	"encoding/csv"
	"io"

	"github.com/user/vascope/pkg/engine"
)

// WriteReport writes the aggregate report as CSV. The header is written
// even when rows is empty.
func WriteReport(w io.Writer, rows []engine.AggregateRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(engine.ReportColumns); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r.Record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteReportCSV writes the aggregate report to path, creating the
// directory if needed. An existing report is replaced only on success.
func WriteReportCSV(path string, rows []engine.AggregateRow) error {
	return writeFileAtomic(path, func(w io.Writer) error {
		return WriteReport(w, rows)
	})
}
