package compare

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeNumbers(t *testing.T) {
	tests := []struct {
		in   json.Number
		want any
	}{
		{"42", json.Number("42")},
		{"9007199254740993", json.Number("9007199254740993")},
		{"-0", json.Number("0")},
		{"2.0", json.Number("2")},
		{"1e3", json.Number("1000")},
		{"0.5", 0.5},
		{"1e300", 1e300},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeNumbers(tt.in), "NormalizeNumbers(%s)", tt.in)
	}
}

func TestNormalizeNumbers_Nested(t *testing.T) {
	dec := json.NewDecoder(bytes.NewReader([]byte(`{"a": [1.0, {"b": 2.5}], "c": "3"}`)))
	dec.UseNumber()
	var root any
	require.NoError(t, dec.Decode(&root))

	assert.Equal(t, map[string]any{
		"a": []any{json.Number("1"), map[string]any{"b": 2.5}},
		"c": "3",
	}, NormalizeNumbers(root))
}

func TestFormatValue_Numbers(t *testing.T) {
	assert.Equal(t, "9007199254740993", formatValue(json.Number("9007199254740993")))
	assert.Equal(t, "[1,2.5]", formatValue([]any{json.Number("1"), 2.5}))
}
