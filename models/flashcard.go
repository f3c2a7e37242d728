package models

import "time"

// Flashcard is a front/back pair owned by the flashcard set of one note.
type Flashcard struct {
	ID         string     `gorm:"primaryKey;size:64" json:"id"`
	NoteID     string     `gorm:"not null;size:64;index" json:"noteId"`
	Front      string     `gorm:"not null;size:1000" json:"front"`
	Back       string     `gorm:"not null;size:2000" json:"back"`
	Mastered   bool       `gorm:"default:false" json:"mastered"`
	SyncStatus SyncStatus `gorm:"not null;size:10;index" json:"syncStatus"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// FlashcardSet ties a flashcard-set note to its cards. Created lazily the
// first time the note is opened.
type FlashcardSet struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	NoteID    string    `gorm:"not null;size:64;uniqueIndex" json:"noteId"`
	CreatedAt time.Time `json:"createdAt"`
}
