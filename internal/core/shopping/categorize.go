package shopping

import "strings"

// DefaultCategory catégorie réservée, jamais supprimable
const DefaultCategory = "Divers"

// CategoryPriority ordre d'évaluation fixe, du plus spécifique au plus
// générique. L'ordre de la liste de catégories existantes n'a aucune
// influence sur le résultat.
var CategoryPriority = []string{
	"Sucreries",
	"Épices et Condiments",
	"Produits Laitiers",
	"Viandes et Poissons",
	"Fruits et Légumes",
	"Céréales et Féculents",
	"Boissons",
	DefaultCategory,
}

// categoryKeywords mots-clés par catégorie, stockés sans diacritiques.
// Les entrées à plusieurs mots se comparent comme des locutions.
var categoryKeywords = map[string][]string{
	"Sucreries": {
		"chocolat", "bonbon", "sucre", "miel", "confiture", "nutella",
		"biscuit", "gateau", "caramel", "vanille", "glace", "cookie",
		"brownie", "tarte", "madeleine", "meringue", "praline",
	},
	"Épices et Condiments": {
		"sel", "poivre", "epice", "curry", "paprika", "cumin", "cannelle",
		"muscade", "safran", "moutarde", "ketchup", "mayonnaise", "vinaigre",
		"sauce soja", "herbes de provence", "basilic", "thym", "laurier",
		"persil", "coriandre", "ail", "huile", "bouillon", "cornichon",
	},
	"Produits Laitiers": {
		"lait", "fromage", "yaourt", "beurre", "creme", "camembert",
		"emmental", "mozzarella", "parmesan", "chevre", "mascarpone",
		"ricotta", "comte", "roquefort", "oeuf", "raclette",
	},
	"Viandes et Poissons": {
		"poulet", "boeuf", "porc", "veau", "agneau", "jambon", "saucisse",
		"lardon", "steak", "poisson", "saumon", "thon", "cabillaud",
		"crevette", "moule", "dinde", "canard", "merguez", "chipolata",
		"sardine", "colin",
	},
	"Fruits et Légumes": {
		"pomme", "banane", "orange", "citron", "fraise", "framboise",
		"poire", "peche", "raisin", "melon", "pasteque", "abricot",
		"cerise", "kiwi", "mangue", "ananas", "tomate", "carotte",
		"courgette", "aubergine", "poireau", "oignon", "echalote",
		"salade", "epinard", "haricot", "brocoli", "champignon",
		"concombre", "poivron", "avocat", "patate", "pomme de terre",
		"navet", "radis", "celeri", "chou",
	},
	"Céréales et Féculents": {
		"pain", "pates", "riz", "farine", "cereale", "semoule", "quinoa",
		"lentille", "pois chiche", "baguette", "brioche", "avoine",
		"muesli", "boulgour", "polenta", "gnocchi",
	},
	"Boissons": {
		"eau", "jus", "soda", "cafe", "the", "vin", "biere", "limonade",
		"sirop", "cola", "tisane", "cidre",
	},
}

// diacriticReplacer replie les diacritiques du français vers l'ASCII
var diacriticReplacer = strings.NewReplacer(
	"à", "a", "â", "a", "ä", "a",
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"î", "i", "ï", "i",
	"ô", "o", "ö", "o",
	"ù", "u", "û", "u", "ü", "u",
	"ç", "c",
	"œ", "oe", "æ", "ae",
)

// foldTokens découpe un nom en mots minuscules sans diacritiques,
// chaque mot ramené au singulier.
func foldTokens(name string) []string {
	folded := diacriticReplacer.Replace(strings.ToLower(strings.TrimSpace(name)))
	fields := strings.FieldsFunc(folded, func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		tokens = append(tokens, singularize(f))
	}
	return tokens
}

// singularize retire la marque du pluriel, appliquée aux deux côtés de la
// comparaison pour rester symétrique.
func singularize(word string) string {
	if len(word) > 2 && (strings.HasSuffix(word, "s") || strings.HasSuffix(word, "x")) {
		return word[:len(word)-1]
	}
	return word
}

// keywordTokens pré-replie un mot-clé en locution de tokens
func keywordTokens(keyword string) []string {
	return foldTokens(keyword)
}

// containsPhrase teste la présence d'une locution comme suite de mots
// entiers, jamais comme sous-chaîne.
func containsPhrase(tokens, phrase []string) bool {
	if len(phrase) == 0 || len(phrase) > len(tokens) {
		return false
	}
	for i := 0; i+len(phrase) <= len(tokens); i++ {
		match := true
		for j, p := range phrase {
			if tokens[i+j] != p {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// CategorizeIngredient associe un nom d'ingrédient à une catégorie.
// Seules les catégories présentes dans existing sont candidates ; la
// première catégorie de l'ordre de priorité dont un mot-clé correspond
// gagne. Sans correspondance, "Divers". Fonction pure, sans effet de bord.
func CategorizeIngredient(name string, existing []string) string {
	tokens := foldTokens(name)
	if len(tokens) == 0 {
		return DefaultCategory
	}

	available := make(map[string]bool, len(existing))
	for _, c := range existing {
		available[c] = true
	}

	for _, category := range CategoryPriority {
		if category == DefaultCategory {
			continue
		}
		if !available[category] {
			continue
		}
		for _, keyword := range categoryKeywords[category] {
			if containsPhrase(tokens, keywordTokens(keyword)) {
				return category
			}
		}
	}

	return DefaultCategory
}
