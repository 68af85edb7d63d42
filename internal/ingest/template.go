package ingest

import (
	"os"

	"github.com/rotisserie/eris"
)

// Template is the downloadable CSV showing the preferred upload format
// (US phone numbers, canonical headers).
const Template = `First Name,Last Name,Phone Number,Email
John,Smith,2125551234,john@example.com
Jane,Doe,3105559876,jane@example.com`

// TemplateFilename is the default name for the downloaded template.
const TemplateFilename = "leads-template.csv"

// WriteTemplate writes the CSV template to path.
func WriteTemplate(path string) error {
	if err := os.WriteFile(path, []byte(Template), 0o644); err != nil {
		return eris.Wrap(err, "ingest: write template")
	}
	return nil
}
