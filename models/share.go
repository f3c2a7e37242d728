package models

import "gorm.io/gorm"

// SharedNote is a snapshot of a note shared to another account by email.
// Sharing copies content rather than linking it, so later local edits do
// not leak to the recipient.
type SharedNote struct {
	gorm.Model     `json:"-"`
	PublicID       string   `gorm:"size:100;uniqueIndex" json:"id"`
	NoteID         string   `gorm:"not null;size:64;index" json:"noteId"`
	Title          string   `gorm:"not null;size:300" json:"title"`
	Type           NoteType `gorm:"size:20" json:"type"`
	Content        []byte   `json:"content,omitempty"`
	Description    string   `gorm:"size:1000" json:"description,omitempty"`
	OwnerID        uint     `gorm:"not null;index"`
	Owner          User     `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	RecipientEmail string   `gorm:"not null;size:255;index" json:"recipientEmail"`
}
