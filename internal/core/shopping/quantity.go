package shopping

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Quantity quantité analysée, jamais persistée telle quelle
type Quantity struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

var (
	// nombre suivi immédiatement d'une unité connue
	strictQuantityPattern = regexp.MustCompile(`(?i)^\s*([0-9]+(?:[.,][0-9]+)?)\s*(kg|g|mg|l|cl|ml|cuillères?|cuilleres?|tasses?|verres?|unités?|unites?|pièces?|pieces?|sachets?|boîtes?|boites?|tranches?|pincées?|pincees?|gousses?|branches?|bottes?|pots?|paquets?|grammes?|kilos?|kilogrammes?|litres?|millilitres?|centilitres?)\s*$`)
	// nombre seul
	bareNumberPattern = regexp.MustCompile(`^\s*([0-9]+(?:[.,][0-9]+)?)\s*$`)
	// nombre suivi de texte libre, traité comme unité de forme libre
	looseQuantityPattern = regexp.MustCompile(`^\s*([0-9]+(?:[.,][0-9]+)?)\s*(.+?)\s*$`)
)

// ParseQuantity extrait valeur et unité d'un texte libre ("200g", "1,5 kg", "3").
// Fonction totale : toute entrée produit une quantité.
//  1. nombre + unité connue → unité normalisée
//  2. nombre seul → comptage discret "unité", jamais "g"
//  3. nombre + suffixe quelconque → suffixe normalisé
//
// Sans nombre en tête, la sentinelle {0, "g"} est renvoyée.
func ParseQuantity(text string) Quantity {
	if m := strictQuantityPattern.FindStringSubmatch(text); m != nil {
		return Quantity{
			Value: parseNumber(m[1]),
			Unit:  NormalizeUnit(strings.ToLower(m[2])),
		}
	}

	if m := bareNumberPattern.FindStringSubmatch(text); m != nil {
		return Quantity{Value: parseNumber(m[1]), Unit: "unité"}
	}

	if m := looseQuantityPattern.FindStringSubmatch(text); m != nil {
		return Quantity{
			Value: parseNumber(m[1]),
			Unit:  NormalizeUnit(strings.ToLower(strings.TrimSpace(m[2]))),
		}
	}

	return Quantity{Value: 0, Unit: "g"}
}

// parseNumber accepte la virgule décimale française
func parseNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0
	}
	return v
}

// FormatQuantity rend une quantité affichable. Politique de présentation,
// seuls kg→g et l→ml sont redimensionnés.
func FormatQuantity(value float64, unit string) string {
	if value == 0 {
		return ""
	}

	switch unit {
	case "kg":
		if value >= 1 {
			return formatNumber(value) + "kg"
		}
		return strconv.Itoa(int(math.Round(value*1000))) + "g"
	case "l":
		if value >= 1 {
			return formatNumber(value) + "l"
		}
		return strconv.Itoa(int(math.Round(value*1000))) + "ml"
	case "unité", "":
		return formatNumber(value)
	default:
		return formatNumber(value) + unit
	}
}

// formatNumber arrondit au millième pour absorber le bruit flottant des sommes
func formatNumber(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}

// conversions chemins de conversion connus, orientés q2 → q1
var conversions = map[string]map[string]float64{
	"kg": {"g": 1000},
	"g":  {"kg": 0.001},
	"l":  {"ml": 1000, "cl": 100},
	"cl": {"l": 0.01, "ml": 10},
	"ml": {"l": 0.001, "cl": 0.1},
}

// AddQuantities additionne deux quantités affichées. Si les unités diffèrent,
// q2 est convertie vers l'unité de q1 quand un chemin existe. Sans chemin,
// la quantité de q2 est abandonnée et q1 est reformatée seule (choix assumé).
func AddQuantities(q1, q2 string) string {
	a := ParseQuantity(q1)
	b := ParseQuantity(q2)

	if a.Unit == b.Unit {
		return FormatQuantity(a.Value+b.Value, a.Unit)
	}

	if factors, ok := conversions[b.Unit]; ok {
		if factor, ok := factors[a.Unit]; ok {
			return FormatQuantity(a.Value+b.Value*factor, a.Unit)
		}
	}

	return FormatQuantity(a.Value, a.Unit)
}
