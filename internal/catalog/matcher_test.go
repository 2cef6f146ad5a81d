package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveExactMatch(t *testing.T) {
	candidates := []string{"Living World", "Biomolecules"}

	m := Resolve(candidates, "living world")
	require.NotNil(t, m)
	assert.Equal(t, "Living World", m.Name)
	assert.Equal(t, ConfidenceExact, m.Confidence)
}

func TestResolveExactBeatsFuzzy(t *testing.T) {
	// "Living World Advanced" would score high on fuzzy overlap, but the
	// verbatim candidate must win with exact confidence.
	candidates := []string{"Living World Advanced", "living world"}

	m := Resolve(candidates, "Living World")
	require.NotNil(t, m)
	assert.Equal(t, "living world", m.Name)
	assert.Equal(t, ConfidenceExact, m.Confidence)
}

func TestResolveExactTieBreaksOnInputOrder(t *testing.T) {
	m := Resolve([]string{"GENETICS", "Genetics"}, "genetics")
	require.NotNil(t, m)
	assert.Equal(t, "GENETICS", m.Name)
}

func TestResolveContainment(t *testing.T) {
	tests := []struct {
		name       string
		candidates []string
		query      string
		want       string
	}{
		{
			name:       "candidate contains query",
			candidates: []string{"The Living World"},
			query:      "living world",
			want:       "The Living World",
		},
		{
			name:       "query contains candidate",
			candidates: []string{"Living World"},
			query:      "the living world",
			want:       "Living World",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Resolve(tt.candidates, tt.query)
			require.NotNil(t, m)
			assert.Equal(t, tt.want, m.Name)
			assert.Equal(t, ConfidenceContains, m.Confidence)
		})
	}
}

func TestResolveFuzzyTypos(t *testing.T) {
	m := Resolve([]string{"Living World"}, "livng wrld")
	require.NotNil(t, m)
	assert.Equal(t, "Living World", m.Name)
	assert.Equal(t, ConfidenceFuzzy, m.Confidence)
	assert.Greater(t, m.Score, 0.5)
}

func TestResolveUnrelatedQuery(t *testing.T) {
	assert.Nil(t, Resolve([]string{"Thermodynamics"}, "quantum mechanics"))
}

func TestResolveThresholdBoundary(t *testing.T) {
	// One of two query tokens matches ("abc" vs "abcq" at 0.75), so the
	// overlap score is 0.5. The full strings are 4 edits apart over a max
	// length of 8, so the full similarity is also 0.5. The blended score
	// lands on exactly 0.5, which the strict threshold must reject.
	assert.Nil(t, Resolve([]string{"abcq xyz"}, "abc def"))
}

func TestResolveEmptyInputs(t *testing.T) {
	assert.Nil(t, Resolve(nil, "living world"))
	assert.Nil(t, Resolve([]string{}, "living world"))
	assert.Nil(t, Resolve([]string{"Living World"}, ""))
	assert.Nil(t, Resolve([]string{"Living World"}, "   "))
}

func TestResolveDeterminism(t *testing.T) {
	candidates := []string{"Living World", "Biomolecules", "Cell Cycle"}

	first := Resolve(candidates, "livng world")
	second := Resolve(candidates, "livng world")
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, *first, *second)
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, similarity("", ""))
	assert.Equal(t, 1.0, similarity("abc", "abc"))
	assert.Equal(t, 0.0, similarity("abc", "xyz"))
	assert.InDelta(t, 0.75, similarity("abc", "abcd"), 1e-9)
}

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"livng wrld", "living world", 2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, levenshteinDistance(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
	}
}
