package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"babounette/internal/core/shopping"
	"babounette/internal/pkg/common"
)

// PantryRepo persistance de la base de gestion
type PantryRepo struct {
	db *DB
}

// NewPantryRepo crée le dépôt de la base de gestion
func NewPantryRepo(db *DB) *PantryRepo {
	return &PantryRepo{db: db}
}

// List renvoie tous les articles de la base de gestion
func (r *PantryRepo) List(ctx context.Context) ([]shopping.PantryItem, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, name, category, COALESCE(quantity, ''), completed
		FROM pantry_items
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []shopping.PantryItem
	for rows.Next() {
		var item shopping.PantryItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Category, &item.Quantity, &item.Completed); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Get renvoie un article par identifiant
func (r *PantryRepo) Get(ctx context.Context, id int) (shopping.PantryItem, error) {
	var item shopping.PantryItem
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, name, category, COALESCE(quantity, ''), completed
		FROM pantry_items
		WHERE id = $1
	`, id).Scan(&item.ID, &item.Name, &item.Category, &item.Quantity, &item.Completed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shopping.PantryItem{}, common.ErrItemNotFound
		}
		return shopping.PantryItem{}, err
	}
	return item, nil
}

// Create insère un article, l'identifiant vient de la séquence de la table
func (r *PantryRepo) Create(ctx context.Context, item shopping.PantryItem) (shopping.PantryItem, error) {
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO pantry_items (name, category, quantity, completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id
	`, item.Name, item.Category, item.Quantity, item.Completed).Scan(&item.ID)
	if err != nil {
		return shopping.PantryItem{}, err
	}
	return item, nil
}

// Update met à jour un article existant
func (r *PantryRepo) Update(ctx context.Context, item shopping.PantryItem) error {
	result, err := r.db.Pool.Exec(ctx, `
		UPDATE pantry_items
		SET name = $2, category = $3, quantity = $4, completed = $5, updated_at = NOW()
		WHERE id = $1
	`, item.ID, item.Name, item.Category, item.Quantity, item.Completed)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return common.ErrItemNotFound
	}
	return nil
}

// Delete retire un article de la base de gestion
func (r *PantryRepo) Delete(ctx context.Context, id int) error {
	result, err := r.db.Pool.Exec(ctx, `DELETE FROM pantry_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return common.ErrItemNotFound
	}
	return nil
}
