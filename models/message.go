package models

import (
	"time"

	"gorm.io/gorm"
)

// Message is one chat line inside an accepted match. ReadAt is stamped when
// the recipient first fetches the conversation.
type Message struct {
	gorm.Model `json:"-"`
	PublicID   string     `gorm:"size:100;uniqueIndex" json:"id"`
	MatchID    uint       `gorm:"not null;index"`
	Match      Match      `gorm:"foreignKey:MatchID;constraint:OnDelete:CASCADE" json:"-"`
	SenderID   uint       `gorm:"not null" json:"-"`
	Content    string     `gorm:"not null;size:4000" json:"content"`
	ReadAt     *time.Time `json:"readAt,omitempty"`
}
