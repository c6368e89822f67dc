package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarityRatio(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{"identiques", "Tarte aux pommes", "Tarte aux pommes", 1.0},
		{"casse ignorée", "tarte aux pommes", "TARTE AUX POMMES", 1.0},
		{"espaces ignorés", "  Gratin dauphinois ", "Gratin dauphinois", 1.0},
		{"aucune lettre commune", "abc", "xyz", 0.0},
		{"vides", "", "", 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, SimilarityRatio(tt.a, tt.b), 0.01)
		})
	}

	assert.Less(t, SimilarityRatio("Ratatouille", "Crêpes"), 0.5)
}

func TestIsSimilarName(t *testing.T) {
	assert.True(t, IsSimilarName("Tarte aux pommes", "Tarte aux pomme"))
	assert.True(t, IsSimilarName("Gratin dauphinois", "gratin dauphinois"))
	assert.False(t, IsSimilarName("Tarte aux pommes", "Tarte aux fraises"))
	assert.False(t, IsSimilarName("Soupe", "Salade"))
}

func TestLevenshtein(t *testing.T) {
	assert.Equal(t, 0, levenshtein("abc", "abc"))
	assert.Equal(t, 1, levenshtein("abc", "abd"))
	assert.Equal(t, 3, levenshtein("", "abc"))
	assert.Equal(t, 1, levenshtein("crêpe", "crépe"))
}
