// Package ingest turns uploaded contact lists (CSV, TSV, XLSX) into the
// canonical lead representation the automation backend expects.
package ingest

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/stellar-voice/leads-console/internal/lead"
)

// ErrNoRows is returned when a file parses to a header with no data rows.
var ErrNoRows = eris.New("ingest: no valid data rows found")

// ParseStats counts row-shape anomalies the positional zipper tolerated.
// Zipping silently pads short rows and truncates long ones; the counts let
// callers surface a warning without changing that behavior.
type ParseStats struct {
	Rows      int
	ShortRows int // rows with fewer values than headers, padded with ""
	LongRows  int // rows with more values than headers, extras dropped
}

// DetectDelimiter returns tab if the header line contains one, else comma.
func DetectDelimiter(firstLine string) rune {
	if strings.ContainsRune(firstLine, '\t') {
		return '\t'
	}
	return ','
}

// ParseLine splits one line on the delimiter, honoring double-quote quoting.
// Inside quotes a doubled quote emits a literal quote and delimiters are kept
// verbatim. Fields are trimmed of surrounding whitespace. Line-oriented:
// embedded newlines inside quoted fields are not supported.
func ParseLine(line string, delimiter rune) []string {
	var result []string
	var current strings.Builder
	inQuotes := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		if inQuotes {
			switch {
			case ch == '"' && i+1 < len(runes) && runes[i+1] == '"':
				current.WriteRune('"')
				i++
			case ch == '"':
				inQuotes = false
			default:
				current.WriteRune(ch)
			}
			continue
		}
		switch {
		case ch == '"':
			inQuotes = true
		case ch == delimiter:
			result = append(result, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	result = append(result, strings.TrimSpace(current.String()))
	return result
}

// ParseCSV parses full file text into one record per data line, keyed by the
// header row. Blank lines are dropped; fewer than two non-blank lines yields
// no records. The delimiter is detected from the header line only.
func ParseCSV(text string) ([]*lead.Record, ParseStats) {
	var stats ParseStats

	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) < 2 {
		return nil, stats
	}

	delimiter := DetectDelimiter(lines[0])
	headers := ParseLine(lines[0], delimiter)

	records := make([]*lead.Record, 0, len(lines)-1)
	for _, line := range lines[1:] {
		values := ParseLine(line, delimiter)
		records = append(records, zipRow(headers, values, &stats))
	}
	stats.Rows = len(records)
	return records, stats
}

// zipRow pairs headers with values positionally. Missing trailing values
// become empty strings; values beyond the header count are dropped.
func zipRow(headers, values []string, stats *ParseStats) *lead.Record {
	r := lead.NewRecord()
	for i, h := range headers {
		if i < len(values) {
			r.Set(h, values[i])
		} else {
			r.Set(h, "")
		}
	}
	if stats != nil {
		if len(values) < len(headers) {
			stats.ShortRows++
		} else if len(values) > len(headers) {
			stats.LongRows++
		}
	}
	return r
}
