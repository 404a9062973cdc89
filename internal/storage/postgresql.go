package storage

import (
	"fmt"

	"github.com/just-nibble/git-digest/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB opens the Postgres connection and migrates the schema.
func InitDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate applies the schema, parents before children so the cascade
// constraints resolve.
func Migrate(db *gorm.DB) error {
	return repository.Migrate(db)
}
