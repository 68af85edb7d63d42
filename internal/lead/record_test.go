package lead

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSetGet(t *testing.T) {
	t.Parallel()

	r := NewRecord()
	r.Set("First Name", "Jane")
	r.Set("Phone Number", "2125551234")
	r.Set("First Name", "Janet") // overwrite keeps position

	assert.Equal(t, "Janet", r.Get("First Name"))
	assert.Equal(t, "2125551234", r.Get("Phone Number"))
	assert.Equal(t, []string{"First Name", "Phone Number"}, r.Keys())
	assert.Equal(t, 2, r.Len())

	assert.Equal(t, "", r.Get("first name"), "exact lookup is case-sensitive")
	assert.Equal(t, "Janet", r.GetFold("FIRST NAME"))
	assert.Equal(t, "", r.GetFold("Last Name"))
}

func TestRecordNilSafety(t *testing.T) {
	t.Parallel()

	var r *Record
	assert.Equal(t, "", r.Get("x"))
	assert.False(t, r.Has("x"))
	assert.Equal(t, "", r.GetFold("x"))
	assert.Equal(t, 0, r.Len())
	assert.Nil(t, r.Keys())
}

func TestRecordJSONRoundTrip(t *testing.T) {
	t.Parallel()

	r := NewRecord()
	r.Set("First Name", "Jane")
	r.Set("Custom Column", "keep me")
	r.Set("Phone Number", "3105559876")

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"First Name":"Jane","Custom Column":"keep me","Phone Number":"3105559876"}`, string(data))

	var back Record
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, []string{"First Name", "Custom Column", "Phone Number"}, back.Keys())
	assert.Equal(t, "keep me", back.Get("Custom Column"))
}

func TestRecordUnmarshalScalars(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		json string
		key  string
		want string
	}{
		{"string", `{"Phone Number":"2125551234"}`, "Phone Number", "2125551234"},
		{"number stays verbatim", `{"Phone Number":2125551234}`, "Phone Number", "2125551234"},
		{"float", `{"Score":0.5}`, "Score", "0.5"},
		{"bool", `{"Call Evaluation":true}`, "Call Evaluation", "true"},
		{"null", `{"Email":null}`, "Email", ""},
		{"nested flattened", `{"Meta":{"a":1},"Email":"x@y.z"}`, "Email", "x@y.z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var r Record
			require.NoError(t, json.Unmarshal([]byte(tt.json), &r))
			assert.Equal(t, tt.want, r.Get(tt.key))
		})
	}
}

func TestRecordUnmarshalRejectsNonObject(t *testing.T) {
	t.Parallel()

	var r Record
	assert.Error(t, json.Unmarshal([]byte(`["not","an","object"]`), &r))
}

func TestRecordMergeAndClone(t *testing.T) {
	t.Parallel()

	r := NewRecord()
	r.Set(FieldPhoneNumber, "2125551234")
	r.Set(FieldCallStatus, StatusScheduled)

	clone := r.Clone()
	clone.Merge(map[string]string{
		FieldCallStatus: StatusComplete,
		FieldEmail:      "jane@example.com",
	})

	assert.Equal(t, StatusScheduled, r.Get(FieldCallStatus), "clone does not alias original")
	assert.Equal(t, StatusComplete, clone.Get(FieldCallStatus))
	assert.Equal(t, "jane@example.com", clone.Get(FieldEmail))
	assert.Equal(t, []string{FieldPhoneNumber, FieldCallStatus, FieldEmail}, clone.Keys(),
		"merge keeps existing positions and appends new columns")
}
