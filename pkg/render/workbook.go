package render

import (
	"fmt"
	"io"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/user/vascope/pkg/engine"
)

// SummarySheet is the name of the recurrence summary tab
const SummarySheet = "RecurrenceSummary"

// StatusHeader is the header of the column inserted after Name
const StatusHeader = "Status"

const (
	headerColor   = "0070C0"
	newColor      = "B02418"
	existingColor = "4FAD5B"
)

// SheetResult is a classified domain sheet and where its Name column sits
type SheetResult struct {
	engine.Classification
	NameCol int // 1-based
}

type styles struct {
	header, newIssue, existing int
}

func newStyles(f *excelize.File) (styles, error) {
	var s styles
	var err error
	s.header, err = f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerColor}},
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return s, err
	}
	s.newIssue, err = f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{newColor}},
	})
	if err != nil {
		return s, err
	}
	s.existing, err = f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{existingColor}},
	})
	return s, err
}

func (s styles) label(l engine.Label) int {
	if l == engine.LabelNew {
		return s.newIssue
	}
	return s.existing
}

// AnnotateWorkbook copies the workbook at src to dst with every classified
// sheet reduced to its surviving rows, a Status column after Name and the
// recurrence summary as the first tab. Sheets without a result are copied
// unchanged. src is never modified.
func AnnotateWorkbook(src, dst string, sheets []SheetResult, summary engine.Summary) error {
	f, err := excelize.OpenFile(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer f.Close()

	st, err := newStyles(f)
	if err != nil {
		return fmt.Errorf("create styles: %w", err)
	}

	for _, res := range sheets {
		if err := annotateSheet(f, res, st); err != nil {
			return fmt.Errorf("annotate %s: %w", res.Domain, err)
		}
	}

	if err := writeSummarySheet(f, summary, st); err != nil {
		return fmt.Errorf("write %s: %w", SummarySheet, err)
	}

	return writeFileAtomic(dst, func(w io.Writer) error {
		return f.Write(w)
	})
}

func annotateSheet(f *excelize.File, res SheetResult, st styles) error {
	dropped := append([]int(nil), res.Dropped...)
	sort.Sort(sort.Reverse(sort.IntSlice(dropped)))
	for _, row := range dropped {
		if err := f.RemoveRow(res.Domain, row); err != nil {
			return err
		}
	}

	statusCol := res.NameCol + 1
	colName, err := excelize.ColumnNumberToName(statusCol)
	if err != nil {
		return err
	}
	if err := f.InsertCols(res.Domain, colName, 1); err != nil {
		return err
	}
	if err := f.SetCellValue(res.Domain, colName+"1", StatusHeader); err != nil {
		return err
	}

	// survivors keep their relative order, so the k-th sits on row k+2
	for k, row := range res.Rows {
		cell, err := excelize.CoordinatesToCellName(statusCol, k+2)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(res.Domain, cell, row.Label.String()); err != nil {
			return err
		}
		if err := f.SetCellStyle(res.Domain, cell, cell, st.label(row.Label)); err != nil {
			return err
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, summary engine.Summary, st styles) error {
	if idx, _ := f.GetSheetIndex(SummarySheet); idx != -1 {
		if err := f.DeleteSheet(SummarySheet); err != nil {
			return err
		}
	}
	first := f.GetSheetName(0)
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return err
	}
	if first != "" && first != SummarySheet {
		if err := f.MoveSheet(SummarySheet, first); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)

	row := 2
	for i, t := range summary.Tables() {
		if i > 0 {
			row += 4
		}
		next, err := writeTable(f, t, row, st)
		if err != nil {
			return err
		}
		row = next
	}

	if err := f.SetColWidth(SummarySheet, "B", "B", 35); err != nil {
		return err
	}
	return f.SetColWidth(SummarySheet, "C", "G", 15)
}

// writeTable lays t out from column B starting at row and returns the row
// of its total line.
func writeTable(f *excelize.File, t engine.Table, row int, st styles) (int, error) {
	if err := setCell(f, 2, row, t.Title, st.header); err != nil {
		return 0, err
	}
	row++
	for i, h := range t.Header {
		if err := setCell(f, 2+i, row, h, st.header); err != nil {
			return 0, err
		}
	}
	row++
	for _, r := range t.Rows {
		if err := writeCounts(f, r, row, 0); err != nil {
			return 0, err
		}
		row++
	}
	if err := writeCounts(f, t.Total, row, st.header); err != nil {
		return 0, err
	}
	return row, nil
}

func writeCounts(f *excelize.File, r engine.SummaryRow, row, style int) error {
	if err := setCell(f, 2, row, r.Label, style); err != nil {
		return err
	}
	for i, v := range r.Values {
		var val interface{} = v
		if v == 0 {
			val = engine.Placeholder
		}
		if err := setCell(f, 3+i, row, val, style); err != nil {
			return err
		}
	}
	return nil
}

func setCell(f *excelize.File, col, row int, value interface{}, style int) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(SummarySheet, cell, value); err != nil {
		return err
	}
	if style == 0 {
		return nil
	}
	return f.SetCellStyle(SummarySheet, cell, cell, style)
}
