package shopping

import "strings"

// ItemState état d'un article de la liste active
type ItemState string

const (
	// StateActive l'article est à acheter
	StateActive ItemState = "active"
	// StateArchived l'article a été coché ; il reste compté, jamais détruit
	StateArchived ItemState = "archived"
)

// RecipeSourceMarker marqueur de provenance d'une recette dans le champ source
const RecipeSourceMarker = "Recette:"

// Item article de la liste de courses active
type Item struct {
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	State    ItemState `json:"state"`
	Category string    `json:"category"`
	Quantity string    `json:"quantity,omitempty"`
	Source   string    `json:"source,omitempty"`
}

// ReconcileResult issue de l'insertion d'un article
type ReconcileResult struct {
	Item            Item // article final (fusionné, ravivé ou créé)
	Merged          bool // fusionné avec un article actif existant
	Revived         bool // un article archivé du même nom a été réactivé
	HistoryEligible bool // à compter dans l'historique d'usage
}

// historyEligible les ajouts issus d'une recette sont exclus de
// l'historique pour ne pas polluer les suggestions de saisie manuelle.
func historyEligible(source string) bool {
	return !strings.Contains(source, RecipeSourceMarker)
}

// Reconcile insère un article dans la collection active.
//   - catégorie dérivée des mots-clés quand absente
//   - correspondance de nom insensible à la casse, toutes catégories confondues
//   - fusion : quantités additionnées, provenances concaténées, la catégorie
//     d'origine est conservée même si l'arrivant en suggère une autre
//   - un homonyme archivé est réactivé avec les valeurs de l'arrivant
//   - sinon création avec l'identifiant max(existants)+1
//
// La tranche retournée est une copie de travail ; existing n'est pas modifiée.
func Reconcile(existing []Item, incoming Item, categories []string) ([]Item, ReconcileResult) {
	items := make([]Item, len(existing))
	copy(items, existing)

	if incoming.Category == "" {
		incoming.Category = CategorizeIngredient(incoming.Name, categories)
	}

	result := ReconcileResult{HistoryEligible: historyEligible(incoming.Source)}

	name := strings.ToLower(strings.TrimSpace(incoming.Name))
	matchIdx := -1
	for i, item := range items {
		if strings.ToLower(strings.TrimSpace(item.Name)) == name {
			matchIdx = i
			break
		}
	}

	if matchIdx >= 0 {
		match := items[matchIdx]
		if match.State == StateActive {
			// fusion avec l'article actif
			match.Quantity = mergeQuantities(match.Quantity, incoming.Quantity)
			match.Source = mergeSources(match.Source, incoming.Source)
			items[matchIdx] = match
			result.Item = match
			result.Merged = true
			return items, result
		}

		// homonyme archivé : repart de zéro avec les valeurs de l'arrivant
		match.State = StateActive
		match.Category = incoming.Category
		match.Quantity = incoming.Quantity
		match.Source = incoming.Source
		items[matchIdx] = match
		result.Item = match
		result.Revived = true
		return items, result
	}

	incoming.ID = nextID(items)
	incoming.State = StateActive
	items = append(items, incoming)
	result.Item = incoming
	return items, result
}

// ReconcileAll applique Reconcile séquentiellement sur une copie de travail,
// si bien qu'un article du lot peut fusionner avec un article antérieur du
// même lot.
func ReconcileAll(existing []Item, incoming []Item, categories []string) ([]Item, []ReconcileResult) {
	items := make([]Item, len(existing))
	copy(items, existing)

	results := make([]ReconcileResult, 0, len(incoming))
	for _, item := range incoming {
		var result ReconcileResult
		items, result = Reconcile(items, item, categories)
		results = append(results, result)
	}
	return items, results
}

// mergeQuantities additionne quand les deux quantités existent, sinon
// conserve celle qui est présente.
func mergeQuantities(a, b string) string {
	switch {
	case a != "" && b != "":
		return AddQuantities(a, b)
	case a != "":
		return a
	default:
		return b
	}
}

// mergeSources concatène les provenances par virgule quand les deux
// existent, sinon conserve celle qui est présente.
func mergeSources(a, b string) string {
	switch {
	case a != "" && b != "":
		return a + ", " + b
	case a != "":
		return a
	default:
		return b
	}
}

// nextID attribue max(identifiants)+1, 1 pour une collection vide
func nextID(items []Item) int {
	max := 0
	for _, item := range items {
		if item.ID > max {
			max = item.ID
		}
	}
	return max + 1
}

// Toggle bascule l'état d'un article entre actif et archivé. Cocher un
// article ne le supprime jamais : il disparaît de la vue active mais reste
// compté. Retourne faux si l'identifiant est inconnu.
func Toggle(items []Item, id int) ([]Item, bool) {
	updated := make([]Item, len(items))
	copy(updated, items)

	for i, item := range updated {
		if item.ID != id {
			continue
		}
		if item.State == StateActive {
			updated[i].State = StateArchived
		} else {
			updated[i].State = StateActive
		}
		return updated, true
	}
	return updated, false
}

// ActiveOnly filtre la vue de la liste active
func ActiveOnly(items []Item) []Item {
	active := make([]Item, 0, len(items))
	for _, item := range items {
		if item.State == StateActive {
			active = append(active, item)
		}
	}
	return active
}

// CompletedCount nombre d'articles cochés
func CompletedCount(items []Item) int {
	count := 0
	for _, item := range items {
		if item.State == StateArchived {
			count++
		}
	}
	return count
}
