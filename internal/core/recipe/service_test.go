package recipe

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"babounette/internal/core/shopping"
	"babounette/internal/pkg/common"
)

type fakeRepo struct {
	recipes map[int]Recipe
	nextID  int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{recipes: make(map[int]Recipe), nextID: 1}
}

func (f *fakeRepo) Create(_ context.Context, r Recipe) (Recipe, error) {
	r.ID = f.nextID
	f.nextID++
	f.recipes[r.ID] = r
	return r, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int) (Recipe, error) {
	r, ok := f.recipes[id]
	if !ok {
		return Recipe{}, common.ErrRecipeNotFound
	}
	return r, nil
}

func (f *fakeRepo) List(_ context.Context) ([]Recipe, error) {
	out := make([]Recipe, 0, len(f.recipes))
	for _, r := range f.recipes {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRepo) Delete(_ context.Context, id int) error {
	delete(f.recipes, id)
	return nil
}

func (f *fakeRepo) SimilarNames(_ context.Context, _ string) ([]string, error) {
	names := make([]string, 0, len(f.recipes))
	for _, r := range f.recipes {
		names = append(names, r.Name)
	}
	return names, nil
}

type fakeImporter struct {
	received []shopping.Item
}

func (f *fakeImporter) AddItems(_ context.Context, items []shopping.Item) ([]shopping.Item, error) {
	f.received = append(f.received, items...)
	return items, nil
}

func newTestService(budget int64) (*Service, *fakeRepo, *fakeImporter) {
	repo := newFakeRepo()
	importer := &fakeImporter{}
	return NewService(repo, importer, budget), repo, importer
}

func validRecipe() Recipe {
	return Recipe{
		Name:     "Tarte aux pommes",
		Servings: 6,
		Ingredients: []Ingredient{
			{Name: "Pommes", Quantity: "4"},
			{Name: "Pâte brisée", Quantity: "1"},
		},
		Steps: []string{"Étaler la pâte", "Disposer les pommes", "Cuire 35 minutes"},
	}
}

func TestSaveAndGet(t *testing.T) {
	svc, _, _ := newTestService(1 << 21)

	res, err := svc.Save(context.Background(), validRecipe())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Recipe.ID)
	assert.Empty(t, res.Warnings)

	got, err := svc.Get(context.Background(), res.Recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tarte aux pommes", got.Name)
	assert.Len(t, got.Ingredients, 2)
}

func TestSaveValidation(t *testing.T) {
	svc, _, _ := newTestService(1 << 21)

	_, err := svc.Save(context.Background(), Recipe{Ingredients: []Ingredient{{Name: "Sel"}}})
	assert.Error(t, err)

	_, err = svc.Save(context.Background(), Recipe{Name: "Riz nature"})
	assert.Error(t, err)

	_, err = svc.Save(context.Background(), Recipe{
		Name:        "Riz nature",
		Ingredients: []Ingredient{{Name: "  "}},
	})
	assert.Error(t, err)
}

func TestSaveDefaultServings(t *testing.T) {
	svc, _, _ := newTestService(1 << 21)

	r := validRecipe()
	r.Servings = 0
	res, err := svc.Save(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Recipe.Servings)
}

func TestSaveSimilarNameConflict(t *testing.T) {
	svc, _, _ := newTestService(1 << 21)

	_, err := svc.Save(context.Background(), validRecipe())
	require.NoError(t, err)

	near := validRecipe()
	near.Name = "Tarte aux pomme"
	_, err = svc.Save(context.Background(), near)
	require.Error(t, err)

	cerr, ok := common.AsCustomError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrRecipeConflict.Code, cerr.Code)

	other := validRecipe()
	other.Name = "Gratin dauphinois"
	other.Ingredients = []Ingredient{{Name: "Pommes de terre", Quantity: "1kg"}}
	_, err = svc.Save(context.Background(), other)
	assert.NoError(t, err)
}

func TestSaveImageOverBudget(t *testing.T) {
	svc, repo, _ := newTestService(16)

	r := validRecipe()
	r.ImageData = strings.Repeat("a", 64)
	res, err := svc.Save(context.Background(), r)
	require.NoError(t, err)

	assert.Len(t, res.Warnings, 1)
	assert.Empty(t, res.Recipe.ImageData)

	stored := repo.recipes[res.Recipe.ID]
	assert.Empty(t, stored.ImageData)
	assert.Equal(t, "Tarte aux pommes", stored.Name)
	assert.Len(t, stored.Ingredients, 2)
}

func TestSaveImageWithinBudget(t *testing.T) {
	svc, _, _ := newTestService(1 << 21)

	r := validRecipe()
	r.ImageData = "data:image/png;base64,iVBORw0KGgo="
	res, err := svc.Save(context.Background(), r)
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)
	assert.NotEmpty(t, res.Recipe.ImageData)
}

func TestDelete(t *testing.T) {
	svc, _, _ := newTestService(1 << 21)

	res, err := svc.Save(context.Background(), validRecipe())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), res.Recipe.ID))

	_, err = svc.Get(context.Background(), res.Recipe.ID)
	assert.True(t, errors.Is(err, common.ErrRecipeNotFound))

	err = svc.Delete(context.Background(), 999)
	assert.True(t, errors.Is(err, common.ErrRecipeNotFound))
}

func TestImportToShoppingList(t *testing.T) {
	svc, _, importer := newTestService(1 << 21)

	res, err := svc.Save(context.Background(), validRecipe())
	require.NoError(t, err)

	items, err := svc.ImportToShoppingList(context.Background(), res.Recipe.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Pommes", importer.received[0].Name)
	assert.Equal(t, "4", importer.received[0].Quantity)
	assert.Equal(t, "Recette: Tarte aux pommes", importer.received[0].Source)

	_, err = svc.ImportToShoppingList(context.Background(), 999)
	assert.True(t, errors.Is(err, common.ErrRecipeNotFound))
}
