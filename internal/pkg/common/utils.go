package common

import (
	"github.com/google/uuid"
)

// GenerateUUID génère un identifiant unique
func GenerateUUID() string {
	return uuid.New().String()
}
