package database

import (
	"context"

	"babounette/internal/core/shopping"
)

// HistoryRepo persistance de l'historique d'usage des ingrédients
type HistoryRepo struct {
	db *DB
}

// NewHistoryRepo crée le dépôt de l'historique
func NewHistoryRepo(db *DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

// Record enregistre un usage : première saisie ou incrément du compteur
func (r *HistoryRepo) Record(ctx context.Context, name, category string) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO ingredient_history (name, category, last_used, usage_count)
		VALUES ($1, $2, NOW(), 1)
		ON CONFLICT (name) DO UPDATE SET
			category = $2,
			last_used = NOW(),
			usage_count = ingredient_history.usage_count + 1
	`, name, category)
	return err
}

// List renvoie l'historique complet, les plus utilisés d'abord
func (r *HistoryRepo) List(ctx context.Context) ([]shopping.HistoryEntry, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT name, category, last_used, usage_count
		FROM ingredient_history
		ORDER BY usage_count DESC, last_used DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []shopping.HistoryEntry
	for rows.Next() {
		var e shopping.HistoryEntry
		if err := rows.Scan(&e.Name, &e.Category, &e.LastUsed, &e.UsageCount); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
