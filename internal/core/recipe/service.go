package recipe

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"babounette/internal/core/shopping"
	"babounette/internal/pkg/common"
)

// Ingredient ingrédient d'une recette
type Ingredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity,omitempty"`
}

// Recipe recette persistée
type Recipe struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Servings    int          `json:"servings"`
	PrepMinutes int          `json:"prep_minutes"`
	Ingredients []Ingredient `json:"ingredients"`
	Steps       []string     `json:"steps"`
	ImageData   string       `json:"image_data,omitempty"`
}

// SaveResult recette créée accompagnée des avertissements de dégradation
type SaveResult struct {
	Recipe   Recipe   `json:"recipe"`
	Warnings []string `json:"warnings,omitempty"`
}

// Repository persistance des recettes
type Repository interface {
	Create(ctx context.Context, r Recipe) (Recipe, error)
	GetByID(ctx context.Context, id int) (Recipe, error)
	List(ctx context.Context) ([]Recipe, error)
	Delete(ctx context.Context, id int) error
	// SimilarNames renvoie les noms existants proches du candidat (pg_trgm)
	SimilarNames(ctx context.Context, name string) ([]string, error)
}

// ShoppingImporter réception des ingrédients importés vers la liste active
type ShoppingImporter interface {
	AddItems(ctx context.Context, items []shopping.Item) ([]shopping.Item, error)
}

// Service gestionnaire de recettes
type Service struct {
	repo        Repository
	importer    ShoppingImporter
	imageBudget int64
}

// NewService crée le gestionnaire de recettes
func NewService(repo Repository, importer ShoppingImporter, imageBudget int64) *Service {
	return &Service{
		repo:        repo,
		importer:    importer,
		imageBudget: imageBudget,
	}
}

// Save valide puis enregistre une recette. Un nom identique ou trop proche
// d'une recette existante produit un conflit. Une image au-delà du budget de
// stockage est écartée, jamais un autre champ, et l'avertissement est
// remonté à l'appelant.
func (s *Service) Save(ctx context.Context, r Recipe) (SaveResult, error) {
	if strings.TrimSpace(r.Name) == "" {
		return SaveResult{}, common.NewValidationError("le nom de la recette est requis")
	}
	if len(r.Ingredients) == 0 {
		return SaveResult{}, common.NewValidationError("au moins un ingrédient est requis")
	}
	for _, ing := range r.Ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			return SaveResult{}, common.NewValidationError("un ingrédient sans nom est invalide")
		}
	}
	if r.Servings <= 0 {
		r.Servings = 2
	}

	candidates, err := s.repo.SimilarNames(ctx, r.Name)
	if err != nil {
		return SaveResult{}, err
	}
	for _, existing := range candidates {
		if IsSimilarName(existing, r.Name) {
			return SaveResult{}, common.ErrRecipeConflict.WithMessage(
				"une recette au nom similaire existe déjà : " + existing)
		}
	}

	var warnings []string
	if int64(len(r.ImageData)) > s.imageBudget {
		common.LogWarn("image de recette au-delà du budget de stockage",
			zap.String("recipe", r.Name),
			zap.Int("size", len(r.ImageData)),
			zap.Int64("budget", s.imageBudget),
		)
		r.ImageData = ""
		warnings = append(warnings, "image non enregistrée : taille au-delà du budget de stockage")
	}

	created, err := s.repo.Create(ctx, r)
	if err != nil {
		return SaveResult{}, err
	}

	common.LogInfo("recette enregistrée",
		zap.Int("id", created.ID),
		zap.String("name", created.Name),
		zap.Int("ingredients", len(created.Ingredients)),
	)

	return SaveResult{Recipe: created, Warnings: warnings}, nil
}

// Get renvoie une recette par identifiant
func (s *Service) Get(ctx context.Context, id int) (Recipe, error) {
	return s.repo.GetByID(ctx, id)
}

// List renvoie toutes les recettes
func (s *Service) List(ctx context.Context) ([]Recipe, error) {
	return s.repo.List(ctx)
}

// Delete supprime une recette et ses ingrédients
func (s *Service) Delete(ctx context.Context, id int) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ImportToShoppingList verse les ingrédients d'une recette dans la liste
// active avec la provenance "Recette: <nom>". Les ajouts passent par la
// réconciliation habituelle et restent exclus de l'historique d'usage.
func (s *Service) ImportToShoppingList(ctx context.Context, id int) ([]shopping.Item, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	items := make([]shopping.Item, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		items = append(items, shopping.Item{
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Source:   shopping.RecipeSourceMarker + " " + r.Name,
		})
	}

	return s.importer.AddItems(ctx, items)
}
