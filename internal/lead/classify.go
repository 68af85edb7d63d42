package lead

import (
	"strings"
	"time"
)

// IsActive reports whether a lead still has calls pending. A lead goes
// inactive when its Call Status is "complete" or when all nine call slots
// have been used, whichever comes first.
func IsActive(r *Record) bool {
	status := strings.ToLower(strings.TrimSpace(r.Get(FieldCallStatus)))
	if status == "complete" {
		return false
	}
	for _, slot := range CallSlots {
		if strings.TrimSpace(r.Get(slot)) == "" {
			return true
		}
	}
	return false
}

// IsHot reports whether a completed lead qualified as hot: the call finished,
// a recording exists, and the evaluation flag came back TRUE. Hot implies
// inactive, since it requires a complete status.
func IsHot(r *Record) bool {
	status := strings.ToLower(strings.TrimSpace(r.Get(FieldCallStatus)))
	if status != "complete" {
		return false
	}
	if strings.TrimSpace(r.Get(FieldRecordingsLink)) == "" {
		return false
	}
	return strings.ToUpper(strings.TrimSpace(r.Get(FieldCallEvaluation))) == "TRUE"
}

// CallsUsed counts the non-empty call slots, for the n/9 roster column.
func CallsUsed(r *Record) int {
	used := 0
	for _, slot := range CallSlots {
		if strings.TrimSpace(r.Get(slot)) != "" {
			used++
		}
	}
	return used
}

// FullName joins first and last name for display, trimmed.
func FullName(r *Record) string {
	return strings.TrimSpace(r.Get(FieldFirstName) + " " + r.Get(FieldLastName))
}

// dateLayouts cover the formats the sheet backend and CSV sources emit.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"01/02/2006",
	"1/2/2006",
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
	"02-Jan-2006",
}

// ParseDate parses a calendar date in any supported layout.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseDateValue converts a date string to Unix milliseconds for sorting.
// Blank or unparseable input maps to 0, so leads with missing or bad campaign
// dates sort as oldest regardless of true chronology. Coarse on purpose.
func ParseDateValue(s string) int64 {
	t, ok := ParseDate(s)
	if !ok {
		return 0
	}
	return t.UnixMilli()
}

// SameDay reports whether two times fall on the same calendar date,
// ignoring time of day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
