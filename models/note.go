package models

import (
	"time"
)

type NoteType string

const (
	NoteTypeNote         NoteType = "note"
	NoteTypeWhiteboard   NoteType = "whiteboard"
	NoteTypeFlashcardSet NoteType = "flashcard-set"
)

type SyncStatus string

const (
	SyncStatusSynced   SyncStatus = "synced"
	SyncStatusPending  SyncStatus = "pending"
	SyncStatusConflict SyncStatus = "conflict"
)

// Note is a unit of content in the on-device store. Content is an opaque
// payload whose shape is fixed by Type; use EncodeContent/DecodeContent
// instead of writing the raw bytes directly.
type Note struct {
	ID          string   `gorm:"primaryKey;size:64" json:"id"`
	Title       string   `gorm:"not null;size:300" json:"title"`
	Type        NoteType `gorm:"not null;size:20;index" json:"type"`
	Content     []byte   `json:"content,omitempty"`
	Description string   `gorm:"size:1000" json:"description,omitempty"`
	FolderID    *string  `gorm:"size:64;index" json:"folderId,omitempty"`
	Tags        []string `gorm:"serializer:json" json:"tags"`
	SharedWith  []string `gorm:"serializer:json" json:"sharedWith"`

	// Order is the 1-based position among siblings sharing the same
	// FolderID. Unique within a folder; maintained by the ordering engine.
	Order int `gorm:"column:sort_order;not null;default:0" json:"order"`

	SyncStatus SyncStatus `gorm:"not null;size:10;index" json:"syncStatus"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `gorm:"index" json:"updatedAt"`
}

// Folder is a named, colored grouping node. ParentID forms a tree; the
// ordering engine rejects moves that would make a folder its own ancestor.
// Folders carry no sibling order and render in creation order.
type Folder struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	Name      string    `gorm:"not null;size:200" json:"name"`
	Color     string    `gorm:"size:30" json:"color"`
	ParentID  *string   `gorm:"size:64;index" json:"parentId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
