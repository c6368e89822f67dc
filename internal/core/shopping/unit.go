package shopping

import "strings"

// unitSynonyms table des synonymes vers l'unité canonique
var unitSynonyms = map[string]string{
	// poids
	"gramme":      "g",
	"grammes":     "g",
	"gr":          "g",
	"kilo":        "kg",
	"kilos":       "kg",
	"kilogramme":  "kg",
	"kilogrammes": "kg",

	// volume
	"litre":        "l",
	"litres":       "l",
	"millilitre":   "ml",
	"millilitres":  "ml",
	"centilitre":   "cl",
	"centilitres":  "cl",

	// mesures de cuisine
	"cuillere":   "cuillère",
	"cuilleres":  "cuillère",
	"cuillères":  "cuillère",
	"tasses":     "tasse",
	"verres":     "verre",
	"pincees":    "pincée",
	"pincées":    "pincée",

	// comptage
	"unite":   "unité",
	"unites":  "unité",
	"unités":  "unité",
	"piece":   "unité",
	"pieces":  "unité",
	"pièce":   "unité",
	"pièces":  "unité",

	// conditionnements
	"sachets":   "sachet",
	"boite":     "boîte",
	"boites":    "boîte",
	"boîtes":    "boîte",
	"tranches":  "tranche",
	"gousses":   "gousse",
	"branches":  "branche",
	"bottes":    "botte",
	"pots":      "pot",
	"paquets":   "paquet",
}

// NormalizeUnit ramène une unité libre à son code canonique.
// Une unité inconnue est renvoyée telle quelle, jamais rejetée.
func NormalizeUnit(raw string) string {
	if canonical, ok := unitSynonyms[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return canonical
	}
	return raw
}
