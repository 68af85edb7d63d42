package ingest

import (
	"fmt"
	"strings"
)

// AliasSet matches CSV headers against known spellings of a logical column.
// Matching is case-insensitive on the whitespace-trimmed header.
type AliasSet map[string]struct{}

func newAliasSet(names ...string) AliasSet {
	set := make(AliasSet, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// Column alias sets observed across client CSV exports.
var (
	FirstNameAliases = newAliasSet("first name", "firstname", "first_name", "given name")
	LastNameAliases  = newAliasSet("last name", "lastname", "last_name", "surname", "family name")
	NameAliases      = newAliasSet("name", "full name", "fullname", "contact name")
	PhoneAliases     = newAliasSet("phone number", "phone", "mobile phone", "mobile", "tel", "telephone", "cell", "cell phone", "mobile number")
	EmailAliases     = newAliasSet("email", "proxy email", "e-mail", "email address", "e mail")
)

// FindColumnName returns the first header, in original column order, whose
// trimmed lowercase form is in the alias set.
func FindColumnName(headers []string, aliases AliasSet) (string, bool) {
	for _, h := range headers {
		if _, ok := aliases[strings.ToLower(strings.TrimSpace(h))]; ok {
			return h, true
		}
	}
	return "", false
}

// MissingColumnsError lists the logical column groups an upload lacks.
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("CSV is missing required columns: %s. Download the template for the recommended format.",
		strings.Join(e.Missing, ", "))
}

// ValidateColumns checks the headers for the three required logical groups:
// a name (first-name or full-name column), a phone, and an email. On failure
// it returns a *MissingColumnsError enumerating the absent groups using
// human-readable labels.
func ValidateColumns(headers []string) error {
	_, hasFirst := FindColumnName(headers, FirstNameAliases)
	_, hasFull := FindColumnName(headers, NameAliases)
	_, hasPhone := FindColumnName(headers, PhoneAliases)
	_, hasEmail := FindColumnName(headers, EmailAliases)

	var missing []string
	if !hasFirst && !hasFull {
		missing = append(missing, `"First Name" (or "Name")`)
	}
	if !hasPhone {
		missing = append(missing, `"Phone Number" (or "Phone", "Mobile Phone")`)
	}
	if !hasEmail {
		missing = append(missing, `"Email" (or "Proxy Email", "E-mail")`)
	}
	if len(missing) > 0 {
		return &MissingColumnsError{Missing: missing}
	}
	return nil
}
