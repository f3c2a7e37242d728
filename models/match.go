package models

import "gorm.io/gorm"

type MatchStatus string

const (
	MatchPending  MatchStatus = "pending"
	MatchAccepted MatchStatus = "accepted"
	MatchRejected MatchStatus = "rejected"
	MatchEnded    MatchStatus = "ended"
)

// Match pairs one mentor and one mentee. RequestedBy records which side
// initiated it; only the other side may accept or reject.
type Match struct {
	gorm.Model  `json:"-"`
	PublicID    string      `gorm:"size:100;uniqueIndex" json:"id"`
	MentorID    uint        `gorm:"not null;uniqueIndex:idx_match_pair"`
	MenteeID    uint        `gorm:"not null;uniqueIndex:idx_match_pair"`
	Mentor      User        `gorm:"foreignKey:MentorID;constraint:OnDelete:CASCADE" json:"-"`
	Mentee      User        `gorm:"foreignKey:MenteeID;constraint:OnDelete:CASCADE" json:"-"`
	Status      MatchStatus `gorm:"not null;size:10;index" json:"status"`
	RequestedBy uint        `gorm:"not null" json:"-"`
}

// Involves reports whether the user is one of the two match participants.
func (m *Match) Involves(userID uint) bool {
	return m.MentorID == userID || m.MenteeID == userID
}

// CanTransition applies the match lifecycle: pending may move to accepted
// or rejected, but only at the hand of the party that did not request the
// match; an accepted match may be ended by either participant.
func (m *Match) CanTransition(to MatchStatus, byUserID uint) bool {
	if !m.Involves(byUserID) {
		return false
	}
	switch {
	case m.Status == MatchPending && (to == MatchAccepted || to == MatchRejected):
		return byUserID != m.RequestedBy
	case m.Status == MatchAccepted && to == MatchEnded:
		return true
	default:
		return false
	}
}
