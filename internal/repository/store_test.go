package repository

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/just-nibble/git-digest/internal/domain"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	// One connection so every statement sees the same in-memory database
	// and the foreign_keys pragma below.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	db.Exec("PRAGMA foreign_keys = ON")

	if err := Migrate(db); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	return db
}

func seedRepository(t *testing.T, db *gorm.DB, name string) *Repository {
	t.Helper()
	repo := &Repository{
		Name:     name,
		FullName: "acme/" + name,
		URL:      "https://github.com/acme/" + name,
		Active:   true,
	}
	if err := db.Create(repo).Error; err != nil {
		t.Fatalf("failed to seed repository: %v", err)
	}
	return repo
}

func seedCommit(t *testing.T, db *gorm.DB, repoID uint, sha string, mutate ...func(*Commit)) *Commit {
	t.Helper()
	commit := &Commit{
		RepositoryID: repoID,
		SHA:          sha,
		Message:      "commit " + sha,
		AuthorName:   "Jo Dev",
		AuthorEmail:  "jo@example.com",
		CommitDate:   time.Now().UTC(),
		Kind:         domain.CommitKindOther,
		Additions:    10,
		Deletions:    4,
		TotalChanges: 14,
		FilesChanged: 2,
	}
	for _, m := range mutate {
		m(commit)
	}
	if err := db.Create(commit).Error; err != nil {
		t.Fatalf("failed to seed commit: %v", err)
	}
	return commit
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var count int64
	if err := db.Model(model).Count(&count).Error; err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	return count
}
