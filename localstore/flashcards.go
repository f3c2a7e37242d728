package localstore

import (
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/sprintnotes/sprintnotes/models"
)

func (s *Store) CreateFlashcard(c *models.Flashcard) error {
	return s.db.Create(c).Error
}

func (s *Store) GetFlashcard(id string) (*models.Flashcard, error) {
	var c models.Flashcard
	if err := s.db.First(&c, "id = ?", id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &c, nil
}

func (s *Store) SaveFlashcard(c *models.Flashcard) error {
	return s.db.Save(c).Error
}

func (s *Store) FlashcardsForNote(noteID string) ([]models.Flashcard, error) {
	var cards []models.Flashcard
	err := s.db.Where("note_id = ?", noteID).Order("created_at asc").Find(&cards).Error
	return cards, err
}

func (s *Store) DeleteFlashcard(id string) error {
	return s.db.Delete(&models.Flashcard{}, "id = ?", id).Error
}

// DeleteFlashcardsForNote removes a note's set row and all of its cards.
func (s *Store) DeleteFlashcardsForNote(noteID string) error {
	if err := s.db.Delete(&models.Flashcard{}, "note_id = ?", noteID).Error; err != nil {
		return err
	}
	return s.db.Delete(&models.FlashcardSet{}, "note_id = ?", noteID).Error
}

// EnsureFlashcardSet returns the set owned by a flashcard-set note,
// creating it on first open.
func (s *Store) EnsureFlashcardSet(noteID string) (*models.FlashcardSet, error) {
	var set models.FlashcardSet
	err := s.db.First(&set, "note_id = ?", noteID).Error
	if err == nil {
		return &set, nil
	}
	if wrapNotFound(err) != ErrNotFound {
		return nil, err
	}
	id, err := gonanoid.New()
	if err != nil {
		return nil, err
	}
	set = models.FlashcardSet{ID: id, NoteID: noteID, CreatedAt: time.Now()}
	if err := s.db.Create(&set).Error; err != nil {
		return nil, err
	}
	return &set, nil
}
