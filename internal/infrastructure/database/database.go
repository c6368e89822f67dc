package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"babounette/internal/infrastructure/config"
	"babounette/internal/pkg/common"
)

// DB enrobe le pool de connexions Postgres
type DB struct {
	Pool *pgxpool.Pool
}

// Connect ouvre le pool de connexions
func Connect(cfg config.DatabaseConfig) (*DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database URL: %w", err)
	}

	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MinConns = cfg.MinConns
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	common.LogInfo("base de données connectée",
		zap.Int32("max_conns", cfg.MaxConns),
	)
	return &DB{Pool: pool}, nil
}

// Close ferme le pool
func (db *DB) Close() {
	db.Pool.Close()
}

// Ping vérifie que la base répond (utilisé par /ready)
func (db *DB) Ping(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

// RunMigrations applique les migrations dans l'ordre
func RunMigrations(db *DB) error {
	ctx := context.Background()

	_, err := db.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INT PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	for version := 1; version <= len(migrations); version++ {
		migration := migrations[version]

		var exists bool
		err := db.Pool.QueryRow(ctx,
			"SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)",
			version,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check migration %d: %w", version, err)
		}

		if exists {
			continue
		}

		common.LogInfo("application de la migration", zap.Int("version", version))
		_, err = db.Pool.Exec(ctx, migration)
		if err != nil {
			return fmt.Errorf("failed to apply migration %d: %w", version, err)
		}

		_, err = db.Pool.Exec(ctx,
			"INSERT INTO schema_migrations (version) VALUES ($1)",
			version,
		)
		if err != nil {
			return fmt.Errorf("failed to record migration %d: %w", version, err)
		}
	}

	return nil
}

// migrations associe la version au SQL correspondant
var migrations = map[int]string{
	1: migration001,
	2: migration002,
}

const migration001 = `
-- Extension de similarité pour la détection de recettes en doublon
CREATE EXTENSION IF NOT EXISTS "pg_trgm";

-- Catégories de courses
CREATE TABLE IF NOT EXISTS categories (
    id SERIAL PRIMARY KEY,
    name VARCHAR(100) UNIQUE NOT NULL,
    created_at TIMESTAMP DEFAULT NOW()
);

-- Liste active : identifiants attribués par l'application (max+1)
CREATE TABLE IF NOT EXISTS shopping_items (
    id INT PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    state VARCHAR(10) NOT NULL DEFAULT 'active',
    category VARCHAR(100) NOT NULL DEFAULT 'Divers',
    quantity VARCHAR(50),
    source TEXT,
    created_at TIMESTAMP DEFAULT NOW(),
    updated_at TIMESTAMP DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS shopping_items_name_idx ON shopping_items (LOWER(name));

-- Base de gestion : espace d'identifiants indépendant, aucun archivage implicite
CREATE TABLE IF NOT EXISTS pantry_items (
    id SERIAL PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    category VARCHAR(100) NOT NULL DEFAULT 'Divers',
    quantity VARCHAR(50),
    completed BOOLEAN DEFAULT FALSE,
    created_at TIMESTAMP DEFAULT NOW(),
    updated_at TIMESTAMP DEFAULT NOW()
);

-- Historique d'usage des ingrédients saisis manuellement
CREATE TABLE IF NOT EXISTS ingredient_history (
    name VARCHAR(255) PRIMARY KEY,
    category VARCHAR(100) NOT NULL,
    last_used TIMESTAMP DEFAULT NOW(),
    usage_count INT DEFAULT 1
);

-- Recettes
CREATE TABLE IF NOT EXISTS recipes (
    id SERIAL PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    description TEXT,
    servings INT DEFAULT 2,
    prep_minutes INT DEFAULT 0,
    steps TEXT[] DEFAULT '{}',
    image_data TEXT,
    created_at TIMESTAMP DEFAULT NOW(),
    updated_at TIMESTAMP DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS recipes_name_trgm_idx ON recipes USING gin (LOWER(name) gin_trgm_ops);

CREATE TABLE IF NOT EXISTS recipe_ingredients (
    id SERIAL PRIMARY KEY,
    recipe_id INT REFERENCES recipes(id) ON DELETE CASCADE,
    name VARCHAR(255) NOT NULL,
    quantity VARCHAR(50)
);

-- Calendrier
CREATE TABLE IF NOT EXISTS calendar_events (
    id SERIAL PRIMARY KEY,
    title VARCHAR(255) NOT NULL,
    event_date DATE NOT NULL,
    event_time VARCHAR(5),
    description TEXT,
    recipe_id INT REFERENCES recipes(id) ON DELETE SET NULL,
    created_at TIMESTAMP DEFAULT NOW(),
    updated_at TIMESTAMP DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS calendar_events_date_idx ON calendar_events (event_date);

-- Conversations de l'assistant
CREATE TABLE IF NOT EXISTS conversations (
    id VARCHAR(100) PRIMARY KEY,
    created_at TIMESTAMP DEFAULT NOW(),
    updated_at TIMESTAMP DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS conversation_messages (
    id SERIAL PRIMARY KEY,
    conversation_id VARCHAR(100) REFERENCES conversations(id) ON DELETE CASCADE,
    role VARCHAR(20) NOT NULL,
    content TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS conversation_messages_conv_idx ON conversation_messages (conversation_id, id);
`

const migration002 = `
-- Catégories par défaut, "Divers" est réservée et non supprimable
INSERT INTO categories (name) VALUES
    ('Sucreries'),
    ('Épices et Condiments'),
    ('Produits Laitiers'),
    ('Viandes et Poissons'),
    ('Fruits et Légumes'),
    ('Céréales et Féculents'),
    ('Boissons'),
    ('Divers')
ON CONFLICT (name) DO NOTHING;
`
