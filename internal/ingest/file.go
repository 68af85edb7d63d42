package ingest

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/stellar-voice/leads-console/internal/lead"
)

// ReadFile parses a contact list from disk. CSV, TSV, and plain text go
// through the delimiter-detecting line parser; .xlsx files are flattened from
// the first sheet into the same record shape, so every source feeds one
// canonical pipeline.
func ReadFile(path string) ([]*lead.Record, ParseStats, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return readXLSX(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ParseStats{}, eris.Wrap(err, "ingest: read file")
	}
	text, err := DecodeText(data)
	if err != nil {
		return nil, ParseStats{}, err
	}
	contacts, stats := ParseCSV(text)
	return contacts, stats, nil
}

// readXLSX reads the first sheet: first row is the header, remaining rows
// zip against it positionally like CSV lines. Rows with no non-blank cell
// are skipped.
func readXLSX(path string) ([]*lead.Record, ParseStats, error) {
	var stats ParseStats

	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, stats, eris.Wrap(err, "ingest: open xlsx")
	}
	if len(f.Sheets) == 0 {
		return nil, stats, eris.New("ingest: xlsx has no sheets")
	}

	var headers []string
	var records []*lead.Record
	for i, row := range f.Sheets[0].Rows {
		cells := make([]string, len(row.Cells))
		blank := true
		for j, cell := range row.Cells {
			cells[j] = strings.TrimSpace(cell.String())
			if cells[j] != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		if i == 0 || headers == nil {
			headers = cells
			continue
		}
		records = append(records, zipRow(headers, cells, &stats))
	}
	stats.Rows = len(records)
	return records, stats, nil
}
