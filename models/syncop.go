package models

import "time"

type OpType string

const (
	OpCreate OpType = "create"
	OpUpdate OpType = "update"
	OpDelete OpType = "delete"
)

type EntityKind string

const (
	EntityNote      EntityKind = "note"
	EntityFlashcard EntityKind = "flashcard"
	EntityFolder    EntityKind = "folder"
)

// SyncOperation is one record of the pending-operations log: a local
// mutation that still has to reach the remote store. Rows are append-only;
// after creation only the delivery bookkeeping fields change. Synced is
// terminal; a settled operation is never re-delivered.
type SyncOperation struct {
	ID       uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Type     OpType     `gorm:"not null;size:10" json:"type"`
	Entity   EntityKind `gorm:"not null;size:12;index" json:"entity"`
	EntityID string     `gorm:"not null;size:64;index" json:"entityId"`
	Data     []byte     `json:"data,omitempty"`

	Timestamp time.Time `gorm:"index" json:"timestamp"`
	Synced    bool      `gorm:"not null;default:false;index" json:"synced"`

	// Delivery bookkeeping. NextAttemptAt implements bounded exponential
	// backoff across process restarts; after too many failures the
	// operation is parked on the dead-letter path via Abandoned.
	Attempts      int       `json:"attempts"`
	NextAttemptAt time.Time `json:"nextAttemptAt"`
	Abandoned     bool      `gorm:"not null;default:false;index" json:"abandoned"`
	LastError     string    `gorm:"size:1000" json:"lastError,omitempty"`
}
