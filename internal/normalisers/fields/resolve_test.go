package fields

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tingsync/internal/core/domain"
)

func TestResolve_NestedBeforeFlat(t *testing.T) {
	raw := domain.RawRecord{
		"parti":      map[string]any{"navn": "Venstre"},
		"parti_navn": "Venstre (flat)",
	}

	got := String(raw, []string{"parti.navn", "parti_navn"})
	require.NotNil(t, got)
	assert.Equal(t, "Venstre", *got)
}

func TestResolve_FallsThroughToFlat(t *testing.T) {
	raw := domain.RawRecord{
		"parti":      map[string]any{"id": json.Number("3")},
		"parti_navn": "Venstre",
	}

	got := String(raw, []string{"parti.navn", "parti_navn"})
	require.NotNil(t, got)
	assert.Equal(t, "Venstre", *got)
}

func TestResolve_PresentNullWins(t *testing.T) {
	raw := domain.RawRecord{
		"parti":      map[string]any{"navn": nil},
		"parti_navn": "Venstre",
	}

	v, ok := Resolve(raw, []string{"parti.navn", "parti_navn"})
	assert.True(t, ok)
	assert.Nil(t, v)
	assert.Nil(t, String(raw, []string{"parti.navn", "parti_navn"}))
}

func TestResolve_Absent(t *testing.T) {
	_, ok := Resolve(domain.RawRecord{}, []string{"a", "b.c"})
	assert.False(t, ok)
	assert.Nil(t, String(domain.RawRecord{}, []string{"a"}))
	assert.Nil(t, Bool(domain.RawRecord{}, []string{"a"}))
	assert.Nil(t, Date(domain.RawRecord{}, []string{"a"}))
	assert.Equal(t, "", ID(domain.RawRecord{}, []string{"id"}))
}

func TestString_Coercion(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"trimmed", "  Folketinget ", "Folketinget"},
		{"json number", json.Number("12345"), "12345"},
		{"float", float64(42), "42"},
		{"empty", "", ""},
		{"whitespace", "   ", ""},
		{"object", map[string]any{}, ""},
		{"bool", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := String(domain.RawRecord{"v": tt.in}, []string{"v"})
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestBool_Coercion(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want *bool
	}{
		{"true", true, ptr(true)},
		{"false", false, ptr(false)},
		{"string true", "true", ptr(true)},
		{"string False", "False", ptr(false)},
		{"number one", json.Number("1"), ptr(true)},
		{"number zero", json.Number("0"), ptr(false)},
		{"float one", float64(1), ptr(true)},
		{"number two", json.Number("2"), nil},
		{"float half", 0.5, nil},
		{"garbage", "ja", nil},
		{"null", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Bool(domain.RawRecord{"v": tt.in}, []string{"v"})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestID(t *testing.T) {
	assert.Equal(t, "1001", ID(domain.RawRecord{"id": json.Number("1001")}, []string{"id"}))
	assert.Equal(t, "abc", ID(domain.RawRecord{"Id": "abc"}, []string{"id", "Id"}))
}

func ptr[T any](v T) *T { return &v }
