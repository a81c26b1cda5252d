// Package testutil provides shared test helpers for building scan export
// fixtures on disk.
package testutil

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// SheetData is one named sheet of a fixture workbook, header row first
type SheetData struct {
	Name string
	Rows [][]string
}

// WriteCSV writes rows to dir/name and returns the path
func WriteCSV(t testing.TB, dir, name string, rows [][]string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteWorkbook writes the sheets, in order, to dir/name and returns the path
func WriteWorkbook(t testing.TB, dir, name string, sheets ...SheetData) string {
	t.Helper()
	path := filepath.Join(dir, name)

	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.Name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			t.Fatalf("new sheet %s: %v", s.Name, err)
		}
		for r, row := range s.Rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				t.Fatal(err)
			}
			vals := make([]interface{}, len(row))
			for c, v := range row {
				vals[c] = v
			}
			if err := f.SetSheetRow(s.Name, cell, &vals); err != nil {
				t.Fatalf("write row: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save %s: %v", path, err)
	}
	return path
}

// ReadSheet returns every row of a sheet in the workbook at path
func ReadSheet(t testing.TB, path, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		t.Fatalf("read %s[%s]: %v", path, sheet, err)
	}
	return rows
}

// SheetNames returns the sheet names of the workbook at path, in order
func SheetNames(t testing.TB, path string) []string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	return f.GetSheetList()
}

// SetNumbers stores cells of an existing workbook as numbers shown with the
// built-in number format numFmt (0 is General, 3 is "#,##0")
func SetNumbers(t testing.TB, path, sheet string, numFmt int, cells map[string]int64) {
	t.Helper()
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	style, err := f.NewStyle(&excelize.Style{NumFmt: numFmt})
	if err != nil {
		t.Fatalf("new style: %v", err)
	}
	for cell, v := range cells {
		if err := f.SetCellInt(sheet, cell, int(v)); err != nil {
			t.Fatalf("set %s: %v", cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			t.Fatalf("style %s: %v", cell, err)
		}
	}
	if err := f.Save(); err != nil {
		t.Fatalf("save %s: %v", path, err)
	}
}
