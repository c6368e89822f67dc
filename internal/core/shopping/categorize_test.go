package shopping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func allCategories() []string {
	return append([]string{}, CategoryPriority...)
}

func TestCategorizeIngredient(t *testing.T) {
	tests := []struct {
		name       string
		ingredient string
		want       string
	}{
		{"priorité des sucreries", "chocolat noir", "Sucreries"},
		{"produit laitier", "lait demi-écrémé", "Produits Laitiers"},
		{"fruit simple", "pomme", "Fruits et Légumes"},
		{"pluriel ramené au singulier", "Pommes", "Fruits et Légumes"},
		{"locution à plusieurs mots", "pommes de terre", "Fruits et Légumes"},
		{"viande", "escalope de poulet", "Viandes et Poissons"},
		{"condiment", "moutarde à l'ancienne", "Épices et Condiments"},
		{"féculent", "riz basmati", "Céréales et Féculents"},
		{"boisson", "café moulu", "Boissons"},
		// "orange" touche Fruits et Légumes avant Boissons dans l'ordre fixe
		{"priorité sur les jus de fruits", "jus d'orange", "Fruits et Légumes"},
		{"insensible aux diacritiques", "THÉ vert", "Boissons"},
		{"aucune correspondance", "produit mystère", "Divers"},
		{"nom vide", "", "Divers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CategorizeIngredient(tt.ingredient, allCategories()))
		})
	}
}

func TestCategorizeIngredientPriorityOrder(t *testing.T) {
	// "gâteau au chocolat" touche Sucreries avant toute catégorie générique,
	// quel que soit l'ordre de la liste fournie
	shuffled := []string{"Boissons", "Fruits et Légumes", "Sucreries", "Produits Laitiers"}
	assert.Equal(t, "Sucreries", CategorizeIngredient("gâteau au chocolat", shuffled))
}

func TestCategorizeIngredientRespectsExisting(t *testing.T) {
	// la catégorie prioritaire absente de la liste est ignorée
	without := []string{"Fruits et Légumes", "Divers"}
	assert.Equal(t, "Divers", CategorizeIngredient("chocolat", without))

	// un mot-clé d'une catégorie présente plus bas dans l'ordre reste trouvé
	assert.Equal(t, "Fruits et Légumes", CategorizeIngredient("pomme", without))
}

func TestCategorizeIngredientWordBoundaries(t *testing.T) {
	// "thé" ne doit pas se déclencher par sous-chaîne dans un autre mot
	assert.Equal(t, "Divers", CategorizeIngredient("théière en fonte", allCategories()))
	// "eau" ne doit pas se déclencher dans "gâteau"
	assert.NotEqual(t, "Boissons", CategorizeIngredient("gâteau", allCategories()))
}

func TestCategorizeIngredientIsPure(t *testing.T) {
	existing := allCategories()
	before := append([]string{}, existing...)
	_ = CategorizeIngredient("chocolat", existing)
	assert.Equal(t, before, existing)
}
