package ingest

import (
	"bytes"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// DecodeText normalizes raw upload bytes to UTF-8 text. Spreadsheet tools
// commonly export CSV as UTF-8 with a BOM or as UTF-16; both would otherwise
// corrupt the first header cell and break alias matching.
func DecodeText(data []byte) (string, error) {
	switch {
	case bytes.HasPrefix(data, bomUTF16LE), bytes.HasPrefix(data, bomUTF16BE):
		dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		out, _, err := transform.Bytes(dec, data)
		if err != nil {
			return "", eris.Wrap(err, "ingest: decode utf-16")
		}
		return string(out), nil
	case bytes.HasPrefix(data, bomUTF8):
		return string(data[len(bomUTF8):]), nil
	default:
		return string(data), nil
	}
}
