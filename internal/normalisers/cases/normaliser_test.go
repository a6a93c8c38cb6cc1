package cases

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tingsync/internal/core/domain"
)

func testSource() domain.SyncSource {
	return domain.SyncSource{
		ID:          "cases",
		Kind:        domain.KindCase,
		URL:         "http://upstream.test/api/Sag",
		ResourceURL: "https://www.ft.dk/samling/sag/{id}",
	}
}

func TestNew(t *testing.T) {
	n := New()
	require.NotNil(t, n)
	assert.Equal(t, domain.KindCase, n.Kind())
}

func TestNormalise_Golden(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "sager.json"))
	require.NoError(t, err)

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raws []domain.RawRecord
	require.NoError(t, dec.Decode(&raws))

	n := New()
	source := testSource()
	out := make([]domain.Record, 0, len(raws))
	for _, raw := range raws {
		out = append(out, n.Normalise(source, raw))
	}

	got, err := json.MarshalIndent(out, "", "  ")
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "cases", append(got, '\n'))
}

func TestNormalise_BooleanFlags(t *testing.T) {
	tests := []struct {
		name   string
		raw    domain.RawRecord
		closed *bool
	}{
		{"nested flag", domain.RawRecord{"status": map[string]any{"afsluttet": true}}, boolPtr(true)},
		{"flat string", domain.RawRecord{"afsluttet": "false"}, boolPtr(false)},
		{"flat number", domain.RawRecord{"afsluttet": json.Number("1")}, boolPtr(true)},
		{"unparseable", domain.RawRecord{"afsluttet": "måske"}, nil},
		{"absent", domain.RawRecord{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New().Normalise(testSource(), tt.raw).(*domain.Case)
			assert.Equal(t, tt.closed, c.Closed)
		})
	}
}

func TestNormalise_ParentReference(t *testing.T) {
	c := New().Normalise(testSource(), domain.RawRecord{
		"id":                json.Number("1"),
		"fremsatundersagid": json.Number("42"),
	}).(*domain.Case)

	require.NotNil(t, c.ParentID)
	assert.Equal(t, "42", *c.ParentID)
}

func TestNormalise_NoIDNoURL(t *testing.T) {
	c := New().Normalise(testSource(), domain.RawRecord{"titel": "Uden id"}).(*domain.Case)

	assert.Empty(t, c.Key())
	assert.Nil(t, c.URL)
	require.NotNil(t, c.Title)
	assert.Equal(t, "Uden id", *c.Title)
}

func TestNormalise_RulesMergedOncePerSource(t *testing.T) {
	n := New()
	override := testSource()
	override.ID = "cases-short"
	override.Fields = domain.FieldRules{FieldTitle: {"titelkort"}}

	raw := domain.RawRecord{"id": json.Number("3"), "titel": "Lang titel", "titelkort": "Kort"}
	for i := 0; i < 3; i++ {
		def := n.Normalise(testSource(), raw).(*domain.Case)
		short := n.Normalise(override, raw).(*domain.Case)
		assert.Equal(t, "Lang titel", *def.Title)
		assert.Equal(t, "Kort", *short.Title)
	}

	require.Len(t, n.rules, 2)
	assert.Equal(t, []string{"titelkort"}, n.rules["cases-short"].Paths(FieldTitle))
}

func boolPtr(b bool) *bool { return &b }
