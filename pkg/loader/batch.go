package loader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/user/vascope/pkg/engine"
	"github.com/user/vascope/pkg/logger"
)

// Batch is the unified record set of one run
type Batch struct {
	Sets     []engine.RecordSet
	Skipped  []error // one per skipped file or sheet
	Findings []engine.Finding
}

// Files returns the number of record sets that were read
func (b *Batch) Files() int {
	return len(b.Sets)
}

// LoadBatch reads every path, tags each record with the file it came from
// and concatenates the results in path order. CSV is the default format;
// .xlsx files contribute every sheet that has the required columns.
// Unreadable files and files missing a required column are skipped with a
// warning. If nothing could be read the error wraps ErrNoInput.
func LoadBatch(paths []string, required []string) (*Batch, error) {
	b := &Batch{}

	for _, path := range paths {
		sets, skipped, err := readFile(path, required)
		if err != nil {
			logger.Warnf("Skipping %s: %v", path, err)
			b.Skipped = append(b.Skipped, err)
			continue
		}
		for _, s := range skipped {
			logger.Warnf("Skipping part of %s: %v", path, s)
		}
		b.Skipped = append(b.Skipped, skipped...)
		b.Sets = append(b.Sets, sets...)
	}

	if len(b.Sets) == 0 {
		return b, fmt.Errorf("%w (%d candidate files)", ErrNoInput, len(paths))
	}

	b.Findings = engine.Concat(b.Sets...)
	return b, nil
}

func readFile(path string, required []string) ([]engine.RecordSet, []error, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		wb, err := ReadWorkbook(path)
		if err != nil {
			return nil, nil, err
		}
		var sets []engine.RecordSet
		var skipped []error
		for _, s := range wb.Sheets {
			source := path + "#" + s.Name
			recs, err := s.Records(source, required)
			if err != nil {
				skipped = append(skipped, err)
				continue
			}
			sets = append(sets, engine.RecordSet{Source: source, Findings: recs})
		}
		if len(sets) == 0 {
			return nil, skipped, fmt.Errorf("%w: no usable sheet in %s", ErrMalformedSchema, path)
		}
		return sets, skipped, nil
	}

	sheet, err := ReadCSV(path)
	if err != nil {
		return nil, nil, err
	}
	recs, err := sheet.Records(path, required)
	if err != nil {
		return nil, nil, err
	}
	return []engine.RecordSet{{Source: path, Findings: recs}}, nil, nil
}
