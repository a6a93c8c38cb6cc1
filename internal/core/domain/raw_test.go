package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRawRecord_Lookup(t *testing.T) {
	raw := RawRecord{
		"navn":       "Mette Frederiksen",
		"parti_navn": "Socialdemokratiet",
		"parti": map[string]any{
			"navn": "Socialdemokratiet (nested)",
			"meta": map[string]any{"kode": "S"},
		},
		"biografi": nil,
	}

	tests := []struct {
		path  string
		want  any
		found bool
	}{
		{"navn", "Mette Frederiksen", true},
		{"parti.navn", "Socialdemokratiet (nested)", true},
		{"parti.meta.kode", "S", true},
		{"parti_navn", "Socialdemokratiet", true},
		{"biografi", nil, true},
		{"missing", nil, false},
		{"parti.missing", nil, false},
		{"navn.deeper", nil, false},
		{"", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := raw.Lookup(tt.path)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRawRecord_LookupNil(t *testing.T) {
	var raw RawRecord
	_, ok := raw.Lookup("id")
	assert.False(t, ok)
}
