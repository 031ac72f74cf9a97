package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocument_IsEmpty(t *testing.T) {
	tests := []struct {
		name string
		doc  *Document
		want bool
	}{
		{name: "nil document", doc: nil, want: true},
		{name: "nil root", doc: NewDocument("a.json", nil), want: true},
		{name: "empty object", doc: NewDocument("a.json", map[string]any{}), want: true},
		{name: "empty list", doc: NewDocument("a.json", []any{}), want: true},
		{name: "object with keys", doc: NewDocument("a.json", map[string]any{"db": nil}), want: false},
		{name: "list with items", doc: NewDocument("a.json", []any{"x"}), want: false},
		{name: "scalar root", doc: NewDocument("a.json", json.Number("0")), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.doc.IsEmpty())
		})
	}
}
