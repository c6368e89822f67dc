package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"babounette/internal/core/shopping"
	"babounette/internal/pkg/common"
)

// ShoppingRepo persistance de la liste de courses active
type ShoppingRepo struct {
	db *DB
}

// NewShoppingRepo crée le dépôt de la liste active
func NewShoppingRepo(db *DB) *ShoppingRepo {
	return &ShoppingRepo{db: db}
}

// ListItems renvoie tous les articles, actifs et archivés
func (r *ShoppingRepo) ListItems(ctx context.Context) ([]shopping.Item, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, name, state, category, COALESCE(quantity, ''), COALESCE(source, '')
		FROM shopping_items
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []shopping.Item
	for rows.Next() {
		var item shopping.Item
		if err := rows.Scan(&item.ID, &item.Name, &item.State, &item.Category, &item.Quantity, &item.Source); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetItem renvoie un article par identifiant
func (r *ShoppingRepo) GetItem(ctx context.Context, id int) (shopping.Item, error) {
	var item shopping.Item
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, name, state, category, COALESCE(quantity, ''), COALESCE(source, '')
		FROM shopping_items
		WHERE id = $1
	`, id).Scan(&item.ID, &item.Name, &item.State, &item.Category, &item.Quantity, &item.Source)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shopping.Item{}, common.ErrItemNotFound
		}
		return shopping.Item{}, err
	}
	return item, nil
}

// SaveItem insère ou écrase un article. L'identifiant est attribué par la
// réconciliation, jamais par la base.
func (r *ShoppingRepo) SaveItem(ctx context.Context, item shopping.Item) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO shopping_items (id, name, state, category, quantity, source, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET
			name = $2,
			state = $3,
			category = $4,
			quantity = $5,
			source = $6,
			updated_at = NOW()
	`, item.ID, item.Name, item.State, item.Category, item.Quantity, item.Source)
	return err
}

// DeleteItem retire définitivement un article de la liste
func (r *ShoppingRepo) DeleteItem(ctx context.Context, id int) error {
	result, err := r.db.Pool.Exec(ctx, `DELETE FROM shopping_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return common.ErrItemNotFound
	}
	return nil
}
