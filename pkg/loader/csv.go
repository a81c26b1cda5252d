package loader

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// ReadCSV reads a scan export CSV with a header row
func ReadCSV(path string) (Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return Sheet{}, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	raw, err := r.ReadAll()
	if err != nil {
		return Sheet{}, fmt.Errorf("%w: %s: %v", ErrUnreadableFile, path, err)
	}
	return newSheet(filepath.Base(path), raw), nil
}
