package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// RunMigrations est une fonction de paquet qui reçoit le pool en argument,
// comme l'appelle cmd/api/main.go.
var _ func(*DB) error = RunMigrations

func TestMigrationsContiguous(t *testing.T) {
	assert.NotEmpty(t, migrations)
	for version := 1; version <= len(migrations); version++ {
		sql, ok := migrations[version]
		assert.True(t, ok, "migration %d manquante", version)
		assert.NotEmpty(t, strings.TrimSpace(sql), "migration %d vide", version)
	}
}
