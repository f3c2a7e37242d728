// Package localstore is the on-device persistence layer: notes, folders,
// flashcards, lecture notes and the pending-operations log, backed by a
// single sqlite file. It owns no business logic; the ordering engine and
// sync queue are built on top of it.
package localstore

import (
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sprintnotes/sprintnotes/models"
)

// ErrNotFound is returned when a lookup by ID matches no row.
var ErrNotFound = errors.New("localstore: not found")

type Store struct {
	db *gorm.DB
}

// Open opens (or creates) the store at path and migrates the local schema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("localstore: open %s: %w", path, err)
	}

	err = db.AutoMigrate(
		&models.Note{},
		&models.Folder{},
		&models.Flashcard{},
		&models.FlashcardSet{},
		&models.LectureNote{},
		&models.SyncOperation{},
	)
	if err != nil {
		return nil, fmt.Errorf("localstore: migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// Transaction runs fn against a store bound to a single transaction.
// Returning an error rolls everything back.
func (s *Store) Transaction(fn func(tx *Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func wrapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
