package usecases

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/just-nibble/git-digest/internal/repository"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	db.Exec("PRAGMA foreign_keys = ON")

	if err := repository.Migrate(db); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	return db
}

func seedRepository(t *testing.T, db *gorm.DB, name string) *repository.Repository {
	t.Helper()
	repo := &repository.Repository{
		Name:     name,
		FullName: "acme/" + name,
		Active:   true,
	}
	if err := db.Create(repo).Error; err != nil {
		t.Fatalf("failed to seed repository: %v", err)
	}
	return repo
}

func seedPost(t *testing.T, db *gorm.DB, repoID uint, title string) *repository.Post {
	t.Helper()
	post := &repository.Post{RepositoryID: repoID, Title: title}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("failed to seed post: %v", err)
	}
	return post
}

func backdate(t *testing.T, db *gorm.DB, model interface{}, column string, to time.Time) {
	t.Helper()
	if err := db.Model(model).UpdateColumn(column, to).Error; err != nil {
		t.Fatalf("failed to backdate %s: %v", column, err)
	}
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var count int64
	if err := db.Model(model).Count(&count).Error; err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	return count
}
