package models

import "gorm.io/gorm"

// Document is the hosted mirror of one local entity, keyed by its
// client-generated ID within the owner's namespace. The sync ingest
// endpoint upserts these rows; Deleted is a tombstone so a late replay of
// an earlier update cannot resurrect a deleted entity.
type Document struct {
	gorm.Model `json:"-"`
	OwnerID    uint       `gorm:"not null;uniqueIndex:idx_doc_identity"`
	Owner      User       `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	Entity     EntityKind `gorm:"not null;size:12;uniqueIndex:idx_doc_identity" json:"entity"`
	EntityID   string     `gorm:"not null;size:64;uniqueIndex:idx_doc_identity" json:"entityId"`
	Data       []byte     `json:"data,omitempty"`
	Deleted    bool       `gorm:"not null;default:false" json:"deleted"`
}

// SyncEvent is the append-only audit trail of delivered operations.
type SyncEvent struct {
	gorm.Model `json:"-"`
	OwnerID    uint       `gorm:"not null;index"`
	Type       OpType     `gorm:"not null;size:10" json:"type"`
	Entity     EntityKind `gorm:"not null;size:12" json:"entity"`
	EntityID   string     `gorm:"not null;size:64;index" json:"entityId"`
	Data       []byte     `json:"data,omitempty"`
}
