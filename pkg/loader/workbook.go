package loader

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/user/vascope/pkg/engine"
)

// Workbook is every sheet of an .xlsx file, in workbook order
type Workbook struct {
	Path   string
	Sheets []Sheet
}

// ReadWorkbook loads all sheets of the workbook at path
func ReadWorkbook(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}
	defer f.Close()

	wb := &Workbook{Path: path}
	for _, name := range f.GetSheetList() {
		// stored values, so number formats never change a fingerprint
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("%w: %s[%s]: %v", ErrUnreadableFile, path, name, err)
		}
		wb.Sheets = append(wb.Sheets, newSheet(name, rows))
	}
	return wb, nil
}

// Findings returns the findings of every sheet in workbook order. Columns
// a sheet lacks are read as empty.
func (wb *Workbook) Findings() []engine.Finding {
	sets := make([]engine.RecordSet, 0, len(wb.Sheets))
	for _, s := range wb.Sheets {
		sets = append(sets, engine.RecordSet{Source: s.Name, Findings: s.records(s.Name, s.index())})
	}
	return engine.Concat(sets...)
}
