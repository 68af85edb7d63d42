package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindColumnName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		headers []string
		aliases AliasSet
		want    string
		found   bool
	}{
		{"exact", []string{"Mobile Phone", "Email"}, PhoneAliases, "Mobile Phone", true},
		{"case insensitive", []string{"FIRSTNAME"}, FirstNameAliases, "FIRSTNAME", true},
		{"trims header", []string{"  e-mail  "}, EmailAliases, "  e-mail  ", true},
		{"first in column order wins", []string{"Tel", "Phone"}, PhoneAliases, "Tel", true},
		{"not found", []string{"Address", "City"}, PhoneAliases, "", false},
		{"empty headers", nil, EmailAliases, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := FindColumnName(tt.headers, tt.aliases)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateColumns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		headers     []string
		wantMissing []string
	}{
		{
			name:    "canonical headers",
			headers: []string{"First Name", "Last Name", "Phone Number", "Email"},
		},
		{
			name:    "full name satisfies the name group",
			headers: []string{"Name", "Mobile", "Proxy Email"},
		},
		{
			name:        "all groups missing",
			headers:     []string{"Address", "City"},
			wantMissing: []string{`"First Name" (or "Name")`, `"Phone Number" (or "Phone", "Mobile Phone")`, `"Email" (or "Proxy Email", "E-mail")`},
		},
		{
			name:        "phone missing",
			headers:     []string{"First Name", "Email"},
			wantMissing: []string{`"Phone Number" (or "Phone", "Mobile Phone")`},
		},
		{
			name:        "email missing",
			headers:     []string{"Full Name", "Cell Phone"},
			wantMissing: []string{`"Email" (or "Proxy Email", "E-mail")`},
		},
		{
			name:        "last name alone does not satisfy the name group",
			headers:     []string{"Last Name", "Phone", "Email"},
			wantMissing: []string{`"First Name" (or "Name")`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateColumns(tt.headers)
			if tt.wantMissing == nil {
				assert.NoError(t, err)
				return
			}
			var mce *MissingColumnsError
			require.ErrorAs(t, err, &mce)
			assert.Equal(t, tt.wantMissing, mce.Missing)
			assert.Contains(t, err.Error(), "missing required columns")
			assert.Contains(t, err.Error(), "Download the template")
		})
	}
}
