package shopping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileCreatesWithDerivedCategory(t *testing.T) {
	items, result := Reconcile(nil, Item{Name: "Pommes"}, allCategories())

	require.Len(t, items, 1)
	assert.Equal(t, 1, result.Item.ID)
	assert.Equal(t, "Fruits et Légumes", result.Item.Category)
	assert.Equal(t, StateActive, result.Item.State)
	assert.False(t, result.Merged)
	assert.True(t, result.HistoryEligible)
}

func TestReconcileMergesCaseInsensitive(t *testing.T) {
	existing := []Item{
		{ID: 1, Name: "Lait", State: StateActive, Category: "Produits Laitiers", Quantity: "200ml"},
	}

	items, result := Reconcile(existing, Item{Name: "lait", Quantity: "300ml"}, allCategories())

	require.Len(t, items, 1)
	assert.True(t, result.Merged)
	assert.Equal(t, "500ml", result.Item.Quantity)
	// la catégorie d'origine est conservée lors d'une fusion
	assert.Equal(t, "Produits Laitiers", result.Item.Category)
	assert.Equal(t, "Lait", result.Item.Name)
}

func TestReconcileMergeKeepsOriginalCategory(t *testing.T) {
	existing := []Item{
		{ID: 4, Name: "Chocolat", State: StateActive, Category: "Divers", Quantity: "100g"},
	}

	_, result := Reconcile(existing, Item{Name: "chocolat", Quantity: "50g", Category: "Sucreries"}, allCategories())

	assert.True(t, result.Merged)
	assert.Equal(t, "Divers", result.Item.Category)
	assert.Equal(t, "150g", result.Item.Quantity)
}

func TestReconcileMergesSources(t *testing.T) {
	existing := []Item{
		{ID: 1, Name: "Farine", State: StateActive, Category: "Céréales et Féculents",
			Quantity: "200g", Source: "Recette: Tarte aux pommes"},
	}

	_, result := Reconcile(existing, Item{
		Name:     "farine",
		Quantity: "300g",
		Source:   "Recette: Crêpes",
	}, allCategories())

	assert.Equal(t, "Recette: Tarte aux pommes, Recette: Crêpes", result.Item.Source)
	assert.Equal(t, "500g", result.Item.Quantity)
}

func TestReconcileQuantityTakenWhenOnlyOnePresent(t *testing.T) {
	existing := []Item{
		{ID: 1, Name: "Sel", State: StateActive, Category: "Épices et Condiments"},
	}

	_, result := Reconcile(existing, Item{Name: "sel", Quantity: "500g"}, allCategories())
	assert.Equal(t, "500g", result.Item.Quantity)

	existing[0].Quantity = "1kg"
	_, result = Reconcile(existing, Item{Name: "sel"}, allCategories())
	assert.Equal(t, "1kg", result.Item.Quantity)
}

func TestReconcileRecipeSourceExcludedFromHistory(t *testing.T) {
	_, result := Reconcile(nil, Item{Name: "Beurre", Source: "Recette: Brioche"}, allCategories())
	assert.False(t, result.HistoryEligible)

	_, result = Reconcile(nil, Item{Name: "Beurre", Source: "Manuel"}, allCategories())
	assert.True(t, result.HistoryEligible)

	_, result = Reconcile(nil, Item{Name: "Beurre"}, allCategories())
	assert.True(t, result.HistoryEligible)
}

func TestReconcileAssignsMaxPlusOne(t *testing.T) {
	existing := []Item{
		{ID: 3, Name: "Sel", State: StateActive, Category: "Divers"},
		{ID: 7, Name: "Poivre", State: StateActive, Category: "Divers"},
	}

	_, result := Reconcile(existing, Item{Name: "Sucre"}, allCategories())
	assert.Equal(t, 8, result.Item.ID)
}

func TestReconcileRevivesArchivedItem(t *testing.T) {
	existing := []Item{
		{ID: 2, Name: "Lait", State: StateArchived, Category: "Produits Laitiers", Quantity: "1l", Source: "Manuel"},
	}

	items, result := Reconcile(existing, Item{Name: "lait", Quantity: "500ml"}, allCategories())

	require.Len(t, items, 1)
	assert.True(t, result.Revived)
	assert.False(t, result.Merged)
	assert.Equal(t, StateActive, result.Item.State)
	// l'article repart avec les valeurs de l'arrivant, pas l'ancien reliquat
	assert.Equal(t, "500ml", result.Item.Quantity)
	assert.Equal(t, 2, result.Item.ID)
}

func TestReconcileDoesNotMutateInput(t *testing.T) {
	existing := []Item{
		{ID: 1, Name: "Lait", State: StateActive, Category: "Produits Laitiers", Quantity: "200ml"},
	}

	_, _ = Reconcile(existing, Item{Name: "lait", Quantity: "300ml"}, allCategories())
	assert.Equal(t, "200ml", existing[0].Quantity)
}

func TestReconcileAllBatchMergesWithinBatch(t *testing.T) {
	incoming := []Item{
		{Name: "Oeufs", Quantity: "6"},
		{Name: "oeufs", Quantity: "6"},
	}

	items, results := ReconcileAll(nil, incoming, allCategories())

	require.Len(t, items, 1)
	assert.False(t, results[0].Merged)
	assert.True(t, results[1].Merged)
	assert.Equal(t, "12", items[0].Quantity)
}

func TestToggleArchivesAndRestores(t *testing.T) {
	items := []Item{
		{ID: 1, Name: "Lait", State: StateActive, Category: "Produits Laitiers"},
	}

	items, ok := Toggle(items, 1)
	require.True(t, ok)
	assert.Equal(t, StateArchived, items[0].State)
	assert.Empty(t, ActiveOnly(items))
	assert.Equal(t, 1, CompletedCount(items))

	// une seconde bascule restaure l'article
	items, ok = Toggle(items, 1)
	require.True(t, ok)
	assert.Equal(t, StateActive, items[0].State)
	assert.Equal(t, 0, CompletedCount(items))
}

func TestToggleUnknownID(t *testing.T) {
	_, ok := Toggle([]Item{{ID: 1, Name: "Lait", State: StateActive}}, 42)
	assert.False(t, ok)
}
