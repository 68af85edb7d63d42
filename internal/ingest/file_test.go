package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/stellar-voice/leads-console/internal/lead"
)

func TestReadFileCSV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "contacts.csv")
	require.NoError(t, os.WriteFile(path, []byte("First Name,Phone,Email\nJohn,2125551234,j@x.com\n"), 0o644))

	contacts, stats, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, 1, stats.Rows)
	assert.Equal(t, "John", contacts[0].Get("First Name"))
}

func TestReadFileUTF8BOM(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bom.csv")
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("First Name,Phone,Email\nJane,3105559876,jane@x.com\n")...)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	contacts, _, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Jane", contacts[0].Get("First Name"),
		"BOM must not corrupt the first header cell")
}

func TestDecodeTextUTF16(t *testing.T) {
	t.Parallel()

	// "a,b\n1,2\n" as UTF-16 LE with BOM.
	src := "a,b\n1,2\n"
	data := []byte{0xFF, 0xFE}
	for _, r := range src {
		data = append(data, byte(r), 0x00)
	}

	text, err := DecodeText(data)
	require.NoError(t, err)
	assert.Equal(t, src, text)

	records, _ := ParseCSV(text)
	require.Len(t, records, 1)
	assert.Equal(t, "1", records[0].Get("a"))
}

func TestReadFileXLSX(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "contacts.xlsx")

	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Contacts")
	require.NoError(t, err)
	for _, cells := range [][]string{
		{"Full Name", "Mobile Phone", "Email"},
		{"Jane Doe Smith", "3105559876", "jane@example.com"},
		{"", "", ""}, // blank rows are skipped
		{"John Smith", "2125551234", "john@example.com"},
	} {
		row := sheet.AddRow()
		for _, c := range cells {
			row.AddCell().SetString(c)
		}
	}
	require.NoError(t, f.Save(path))

	contacts, stats, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.Equal(t, 2, stats.Rows)
	assert.Equal(t, "Jane Doe Smith", contacts[0].Get("Full Name"))

	// XLSX feeds the same transform pipeline as CSV.
	out := Transform(contacts, "2024-07-01", false, transformClock)
	require.Len(t, out, 2)
	assert.Equal(t, "Jane", out[0].Get(lead.FieldFirstName))
	assert.Equal(t, "Doe Smith", out[0].Get(lead.FieldLastName))
}

func TestReadFileMissing(t *testing.T) {
	t.Parallel()

	_, _, err := ReadFile(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestWriteTemplate(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), TemplateFilename)
	require.NoError(t, WriteTemplate(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Template, string(data))

	// The template itself parses and validates.
	records, _ := ParseCSV(string(data))
	require.Len(t, records, 2)
	assert.NoError(t, ValidateColumns(records[0].Keys()))
}
