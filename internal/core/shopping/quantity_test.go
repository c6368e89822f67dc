package shopping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Quantity
	}{
		{"poids collé", "200g", Quantity{200, "g"}},
		{"poids avec espace", "1.5 kg", Quantity{1.5, "kg"}},
		{"virgule décimale", "1,5kg", Quantity{1.5, "kg"}},
		{"unité longue normalisée", "500 grammes", Quantity{500, "g"}},
		{"volume", "33cl", Quantity{33, "cl"}},
		{"nombre seul comptage discret", "3", Quantity{3, "unité"}},
		{"nombre seul décimal", "2.5", Quantity{2.5, "unité"}},
		{"suffixe libre normalisé", "2 tasses", Quantity{2, "tasse"}},
		{"suffixe libre inconnu conservé", "3 poignées", Quantity{3, "poignées"}},
		{"pluriel de cuillère", "2 cuillères", Quantity{2, "cuillère"}},
		{"entrée vide sentinelle", "", Quantity{0, "g"}},
		{"entrée non numérique sentinelle", "beaucoup", Quantity{0, "g"}},
		{"unité seule sentinelle", "kg", Quantity{0, "g"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseQuantity(tt.input)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseQuantityNeverNegative(t *testing.T) {
	inputs := []string{"200g", "0", "", "n'importe quoi", "-5g", "1.5 kg", "12 œufs"}
	for _, input := range inputs {
		got := ParseQuantity(input)
		assert.GreaterOrEqual(t, got.Value, 0.0, "entrée %q", input)
	}
}

func TestFormatQuantity(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		unit  string
		want  string
	}{
		{"zéro rend vide", 0, "g", ""},
		{"kg entier", 2, "kg", "2kg"},
		{"kg décimal", 1.5, "kg", "1.5kg"},
		{"kg sous l'unité redescend en grammes", 0.5, "kg", "500g"},
		{"litre décimal", 1.5, "l", "1.5l"},
		{"litre sous l'unité redescend en millilitres", 0.25, "l", "250ml"},
		{"unité singulière sans suffixe", 1, "unité", "1"},
		{"unité plurielle sans suffixe", 2, "unité", "2"},
		{"unité libre collée", 200, "g", "200g"},
		{"unité inconnue collée", 2, "tasse", "2tasse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatQuantity(tt.value, tt.unit))
		})
	}
}

func TestAddQuantities(t *testing.T) {
	tests := []struct {
		name string
		q1   string
		q2   string
		want string
	}{
		{"mêmes unités", "200g", "300g", "500g"},
		{"conversion g vers kg", "1kg", "500g", "1.5kg"},
		{"conversion kg vers g", "200g", "1kg", "1200g"},
		{"conversion ml vers l", "1l", "500ml", "1.5l"},
		{"conversion cl vers ml", "200ml", "33cl", "530ml"},
		{"comptages discrets", "2", "3", "5"},
		{"sans chemin de conversion q2 abandonnée", "2 tasses", "500ml", "2tasse"},
		{"q1 malformée sentinelle absorbée", "beaucoup", "300g", "300g"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddQuantities(tt.q1, tt.q2))
		})
	}
}

func TestNormalizeUnitIdempotent(t *testing.T) {
	canonical := []string{"g", "kg", "l", "ml", "cl", "cuillère", "tasse", "unité", "sachet", "boîte"}
	for _, unit := range canonical {
		assert.Equal(t, unit, NormalizeUnit(unit))
	}
}

func TestNormalizeUnitPassThrough(t *testing.T) {
	assert.Equal(t, "poignée", NormalizeUnit("poignée"))
	assert.Equal(t, "g", NormalizeUnit("grammes"))
	assert.Equal(t, "kg", NormalizeUnit("kilogramme"))
	assert.Equal(t, "l", NormalizeUnit("litres"))
	assert.Equal(t, "cuillère", NormalizeUnit("cuillères"))
	assert.Equal(t, "unité", NormalizeUnit("unités"))
}
