// Package lead models the lead roster: open string-keyed records, the
// canonical column set, classification, and the filter pipeline.
package lead

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
)

// Record is an ordered set of column name -> value pairs. The backend stores
// leads as spreadsheet rows, so column order is meaningful and unknown columns
// must survive a round trip. Canonical field lookup is exact-match; GetFold
// exists for resolving arbitrarily cased CSV headers during ingestion.
type Record struct {
	keys   []string
	values map[string]string
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{values: make(map[string]string)}
}

// Set stores a value under key, appending the key to the column order if it is
// new. An existing key keeps its position and is overwritten.
func (r *Record) Set(key, value string) {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the value for an exact key, or "" if absent.
func (r *Record) Get(key string) string {
	if r == nil || r.values == nil {
		return ""
	}
	return r.values[key]
}

// Has reports whether the exact key is present.
func (r *Record) Has(key string) bool {
	if r == nil || r.values == nil {
		return false
	}
	_, ok := r.values[key]
	return ok
}

// GetFold returns the value for the first key matching under case folding.
func (r *Record) GetFold(key string) string {
	if r == nil {
		return ""
	}
	for _, k := range r.keys {
		if strings.EqualFold(k, key) {
			return r.values[k]
		}
	}
	return ""
}

// Keys returns the column names in insertion order. The slice is a copy.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of columns.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	out := NewRecord()
	for _, k := range r.keys {
		out.Set(k, r.values[k])
	}
	return out
}

// Merge applies every pair from updates onto the record, preserving the
// positions of existing columns and appending new ones.
func (r *Record) Merge(updates map[string]string) {
	for _, k := range sortedKeys(updates) {
		r.Set(k, updates[k])
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MarshalJSON writes the record as a JSON object in column order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, eris.Wrap(err, "lead: marshal key")
		}
		val, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, eris.Wrap(err, "lead: marshal value")
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object token by token so column order is kept.
// Scalar values of any JSON type are stringified; the sheet backend returns
// numeric cells as JSON numbers.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return eris.Wrap(err, "lead: decode record")
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return eris.New("lead: record must be a JSON object")
	}

	r.keys = nil
	r.values = make(map[string]string)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return eris.Wrap(err, "lead: decode record key")
		}
		key, ok := keyTok.(string)
		if !ok {
			return eris.New("lead: record key is not a string")
		}

		valTok, err := dec.Token()
		if err != nil {
			return eris.Wrap(err, "lead: decode record value")
		}
		r.Set(key, stringifyToken(valTok, dec))
	}

	if _, err := dec.Token(); err != nil {
		return eris.Wrap(err, "lead: decode record end")
	}
	return nil
}

func stringifyToken(tok json.Token, dec *json.Decoder) string {
	switch v := tok.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		if v {
			return "true"
		}
		return "false"
	case json.Delim:
		// Nested structures are not part of the sheet model. Consume the
		// remaining tokens of the value and flatten to empty.
		depth := 1
		for depth > 0 {
			t, err := dec.Token()
			if err != nil {
				break
			}
			if d, ok := t.(json.Delim); ok {
				switch d {
				case '{', '[':
					depth++
				case '}', ']':
					depth--
				}
			}
		}
		return ""
	default:
		return fmt.Sprint(v)
	}
}
