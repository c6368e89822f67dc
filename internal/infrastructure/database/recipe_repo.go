package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"babounette/internal/core/recipe"
	"babounette/internal/pkg/common"
)

// RecipeRepo persistance des recettes
type RecipeRepo struct {
	db *DB
}

// NewRecipeRepo crée le dépôt des recettes
func NewRecipeRepo(db *DB) *RecipeRepo {
	return &RecipeRepo{db: db}
}

// Create insère la recette et ses ingrédients dans une transaction
func (r *RecipeRepo) Create(ctx context.Context, rec recipe.Recipe) (recipe.Recipe, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return recipe.Recipe{}, err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO recipes (name, description, servings, prep_minutes, steps, image_data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id
	`, rec.Name, rec.Description, rec.Servings, rec.PrepMinutes, rec.Steps, rec.ImageData).Scan(&rec.ID)
	if err != nil {
		return recipe.Recipe{}, err
	}

	for _, ing := range rec.Ingredients {
		if _, err := tx.Exec(ctx, `
			INSERT INTO recipe_ingredients (recipe_id, name, quantity)
			VALUES ($1, $2, $3)
		`, rec.ID, ing.Name, ing.Quantity); err != nil {
			return recipe.Recipe{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return recipe.Recipe{}, err
	}
	return rec, nil
}

// GetByID renvoie une recette et ses ingrédients
func (r *RecipeRepo) GetByID(ctx context.Context, id int) (recipe.Recipe, error) {
	var rec recipe.Recipe
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, name, COALESCE(description, ''), servings, prep_minutes, steps, COALESCE(image_data, '')
		FROM recipes
		WHERE id = $1
	`, id).Scan(&rec.ID, &rec.Name, &rec.Description, &rec.Servings, &rec.PrepMinutes, &rec.Steps, &rec.ImageData)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return recipe.Recipe{}, common.ErrRecipeNotFound
		}
		return recipe.Recipe{}, err
	}

	rec.Ingredients, err = r.ingredients(ctx, id)
	if err != nil {
		return recipe.Recipe{}, err
	}
	return rec, nil
}

// List renvoie toutes les recettes avec leurs ingrédients
func (r *RecipeRepo) List(ctx context.Context) ([]recipe.Recipe, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, name, COALESCE(description, ''), servings, prep_minutes, steps, COALESCE(image_data, '')
		FROM recipes
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recipes []recipe.Recipe
	for rows.Next() {
		var rec recipe.Recipe
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Description, &rec.Servings, &rec.PrepMinutes, &rec.Steps, &rec.ImageData); err != nil {
			return nil, err
		}
		recipes = append(recipes, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range recipes {
		recipes[i].Ingredients, err = r.ingredients(ctx, recipes[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return recipes, nil
}

// Delete supprime une recette, ses ingrédients suivent en cascade
func (r *RecipeRepo) Delete(ctx context.Context, id int) error {
	result, err := r.db.Pool.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return common.ErrRecipeNotFound
	}
	return nil
}

// SimilarNames renvoie les noms proches du candidat via l'index pg_trgm.
// Le filtrage final au ratio de Levenshtein reste côté service.
func (r *RecipeRepo) SimilarNames(ctx context.Context, name string) ([]string, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT name FROM recipes
		WHERE similarity(LOWER(name), LOWER($1)) > 0.3
		ORDER BY similarity(LOWER(name), LOWER($1)) DESC
		LIMIT 10
	`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

func (r *RecipeRepo) ingredients(ctx context.Context, recipeID int) ([]recipe.Ingredient, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT name, COALESCE(quantity, '')
		FROM recipe_ingredients
		WHERE recipe_id = $1
		ORDER BY id
	`, recipeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ingredients []recipe.Ingredient
	for rows.Next() {
		var ing recipe.Ingredient
		if err := rows.Scan(&ing.Name, &ing.Quantity); err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}
	return ingredients, rows.Err()
}
