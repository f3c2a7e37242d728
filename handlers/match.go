package handlers

import (
	"encoding/json"
	"net/http"
	"sort"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/sprintnotes/sprintnotes/models"
	"github.com/sprintnotes/sprintnotes/utils"
)

type matchCandidate struct {
	ID             string      `json:"id"`
	Email          string      `json:"email"`
	Role           models.Role `json:"role"`
	Subjects       []string    `json:"subjects"`
	CommonSubjects []string    `json:"commonSubjects"`
	MatchScore     int         `json:"matchScore"`
}

// FindMatches lists opposite-role users sharing at least one subject with
// the requester, excluding anyone already matched with them in any status,
// ranked by shared-subject count.
func (db *DBHandler) FindMatches(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var candidates []models.User
	err := db.Where("role = ? AND id <> ?", user.Role.Opposite(), user.ID).
		Order("created_at asc").
		Find(&candidates).Error
	if err != nil {
		http.Error(w, "Failed to fetch potential matches", http.StatusInternalServerError)
		return
	}

	var existing []models.Match
	err = db.Where("mentor_id = ? OR mentee_id = ?", user.ID, user.ID).Find(&existing).Error
	if err != nil {
		http.Error(w, "Failed to fetch existing matches", http.StatusInternalServerError)
		return
	}
	excluded := make(map[uint]bool, len(existing))
	for _, m := range existing {
		excluded[m.MentorID] = true
		excluded[m.MenteeID] = true
	}

	mySubjects := make(map[string]bool, len(user.Subjects))
	for _, s := range user.Subjects {
		mySubjects[s] = true
	}

	results := make([]matchCandidate, 0, len(candidates))
	for _, c := range candidates {
		if excluded[c.ID] {
			continue
		}
		var common []string
		for _, s := range c.Subjects {
			if mySubjects[s] {
				common = append(common, s)
			}
		}
		if len(common) == 0 {
			continue
		}
		results = append(results, matchCandidate{
			ID:             c.PublicID,
			Email:          c.Email,
			Role:           c.Role,
			Subjects:       c.Subjects,
			CommonSubjects: common,
			MatchScore:     len(common),
		})
	}

	// Candidates arrive in creation order, so the stable sort leaves equal
	// scores ordered by account age.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})

	writeJSON(w, http.StatusOK, map[string]any{"matches": results})
}

func (db *DBHandler) RequestMatch(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		TargetUserID string `json:"targetUserId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TargetUserID == "" {
		http.Error(w, "Target user ID is required", http.StatusBadRequest)
		return
	}

	var target models.User
	if err := db.Where("public_id = ?", req.TargetUserID).First(&target).Error; err != nil {
		http.Error(w, "Target user not found", http.StatusNotFound)
		return
	}
	if target.Role == user.Role {
		http.Error(w, "Matches pair a mentor with a mentee", http.StatusBadRequest)
		return
	}

	mentorID, menteeID := user.ID, target.ID
	if user.Role == models.RoleMentee {
		mentorID, menteeID = target.ID, user.ID
	}

	var existing models.Match
	err := db.Where("mentor_id = ? AND mentee_id = ?", mentorID, menteeID).First(&existing).Error
	if err == nil {
		http.Error(w, "Match request already exists", http.StatusConflict)
		return
	}

	publicID, err := gonanoid.New()
	if err != nil {
		http.Error(w, "Failed to generate ID", http.StatusInternalServerError)
		return
	}
	match := models.Match{
		PublicID:    publicID,
		MentorID:    mentorID,
		MenteeID:    menteeID,
		Status:      models.MatchPending,
		RequestedBy: user.ID,
	}
	if err := db.Create(&match).Error; err != nil {
		http.Error(w, "Failed to create match request", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"match": match})
}

// UpdateMatch applies a lifecycle transition. Only the non-initiating
// party may accept or reject a pending match; either party may end an
// accepted one.
func (db *DBHandler) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	matchID := r.PathValue("matchID")
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	status := models.MatchStatus(req.Status)
	if status != models.MatchAccepted && status != models.MatchRejected && status != models.MatchEnded {
		http.Error(w, "Invalid status. Must be accepted, rejected, or ended", http.StatusBadRequest)
		return
	}

	var match models.Match
	if err := db.Where("public_id = ?", matchID).First(&match).Error; err != nil {
		http.Error(w, "Match not found", http.StatusNotFound)
		return
	}
	if !match.Involves(user.ID) {
		http.Error(w, "Unauthorized", http.StatusForbidden)
		return
	}
	if !match.CanTransition(status, user.ID) {
		http.Error(w, "Invalid status transition", http.StatusForbidden)
		return
	}

	match.Status = status
	if err := db.Save(&match).Error; err != nil {
		http.Error(w, "Failed to update match", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"match": match})
}

type matchSummary struct {
	ID        string             `json:"id"`
	Status    models.MatchStatus `json:"status"`
	IsMentor  bool               `json:"isMentor"`
	Requested bool               `json:"requestedByMe"`
	OtherUser matchCandidate     `json:"otherUser"`
}

func (db *DBHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var matches []models.Match
	err := db.Preload("Mentor").Preload("Mentee").
		Where("mentor_id = ? OR mentee_id = ?", user.ID, user.ID).
		Order("updated_at desc").
		Find(&matches).Error
	if err != nil {
		http.Error(w, "Failed to fetch matches", http.StatusInternalServerError)
		return
	}

	summaries := make([]matchSummary, 0, len(matches))
	for _, m := range matches {
		other := m.Mentor
		if m.MentorID == user.ID {
			other = m.Mentee
		}
		summaries = append(summaries, matchSummary{
			ID:        m.PublicID,
			Status:    m.Status,
			IsMentor:  m.MentorID == user.ID,
			Requested: m.RequestedBy == user.ID,
			OtherUser: matchCandidate{
				ID:       other.PublicID,
				Email:    other.Email,
				Role:     other.Role,
				Subjects: other.Subjects,
			},
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"matches": summaries})
}
