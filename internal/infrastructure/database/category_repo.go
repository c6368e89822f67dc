package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"babounette/internal/core/shopping"
	"babounette/internal/pkg/common"
)

// CategoryRepo persistance des catégories de courses
type CategoryRepo struct {
	db *DB
}

// NewCategoryRepo crée le dépôt des catégories
func NewCategoryRepo(db *DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

// Category catégorie persistée
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ListNames renvoie les noms de catégories, dans l'ordre d'insertion
func (r *CategoryRepo) ListNames(ctx context.Context) ([]string, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT name FROM categories ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// List renvoie les catégories avec leurs identifiants
func (r *CategoryRepo) List(ctx context.Context) ([]Category, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT id, name FROM categories ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// Create ajoute une catégorie, le doublon de nom est un conflit
func (r *CategoryRepo) Create(ctx context.Context, name string) (Category, error) {
	var exists bool
	if err := r.db.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM categories WHERE LOWER(name) = LOWER($1))`, name,
	).Scan(&exists); err != nil {
		return Category{}, err
	}
	if exists {
		return Category{}, common.ErrCategoryConflict
	}

	var c Category
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO categories (name) VALUES ($1) RETURNING id, name
	`, name).Scan(&c.ID, &c.Name)
	if err != nil {
		return Category{}, err
	}
	return c, nil
}

// Delete supprime une catégorie. "Divers" est réservée, et les articles des
// deux listes sont réaffectés à "Divers" dans la même transaction.
func (r *CategoryRepo) Delete(ctx context.Context, name string) error {
	if name == shopping.DefaultCategory {
		return common.ErrDefaultCategory
	}

	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := deleteCategoryTx(ctx, tx, name); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// categoryTx est la partie de pgx.Tx utilisée par la suppression
type categoryTx interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// deleteCategoryTx réaffecte les articles des deux listes à la catégorie par
// défaut puis supprime la ligne, au sein de la transaction fournie
func deleteCategoryTx(ctx context.Context, tx categoryTx, name string) error {
	var id int
	err := tx.QueryRow(ctx, `SELECT id FROM categories WHERE name = $1`, name).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.ErrCategoryNotFound
		}
		return err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE shopping_items SET category = $1, updated_at = NOW() WHERE category = $2`,
		shopping.DefaultCategory, name,
	); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx,
		`UPDATE pantry_items SET category = $1, updated_at = NOW() WHERE category = $2`,
		shopping.DefaultCategory, name,
	); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id); err != nil {
		return err
	}
	return nil
}
