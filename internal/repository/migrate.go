package repository

import (
	"fmt"

	"gorm.io/gorm"
)

// Migrate applies the schema. The composite-key join models are registered
// as the join tables first, so their cascade constraints end up in the DDL
// regardless of which table the migrator creates first.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&Post{}, "Commits", &PostCommit{}); err != nil {
		return fmt.Errorf("failed to register post_commits join table: %w", err)
	}
	if err := db.SetupJoinTable(&Post{}, "Tags", &PostTag{}); err != nil {
		return fmt.Errorf("failed to register post_tags join table: %w", err)
	}
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
