package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/sprintnotes/sprintnotes/models"
	"github.com/sprintnotes/sprintnotes/utils"
)

// ShareNote stores a snapshot of a note for a recipient. Later edits to
// the local note are not reflected; sharing again creates a new snapshot.
func (db *DBHandler) ShareNote(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		NoteID         string          `json:"noteId"`
		Title          string          `json:"title"`
		Type           models.NoteType `json:"type"`
		Content        []byte          `json:"content"`
		Description    string          `json:"description"`
		RecipientEmail string          `json:"recipientEmail"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Could not decode request", http.StatusBadRequest)
		return
	}
	if req.NoteID == "" || req.Title == "" || req.RecipientEmail == "" {
		http.Error(w, "Note ID, title and recipient email are required", http.StatusBadRequest)
		return
	}
	if !emailPattern.MatchString(req.RecipientEmail) {
		http.Error(w, "Invalid recipient email", http.StatusBadRequest)
		return
	}

	publicID, err := gonanoid.New()
	if err != nil {
		http.Error(w, "Failed to generate ID", http.StatusInternalServerError)
		return
	}
	shared := models.SharedNote{
		PublicID:       publicID,
		NoteID:         req.NoteID,
		Title:          req.Title,
		Type:           req.Type,
		Content:        req.Content,
		Description:    req.Description,
		OwnerID:        user.ID,
		RecipientEmail: strings.ToLower(req.RecipientEmail),
	}
	if err := db.Create(&shared).Error; err != nil {
		http.Error(w, "Failed to share note", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"shared": shared})
}

// SharedWithMe lists snapshots other users have shared to the
// authenticated user's email.
func (db *DBHandler) SharedWithMe(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var shared []models.SharedNote
	err := db.Preload("Owner").
		Where("recipient_email = ?", strings.ToLower(user.Email)).
		Order("created_at desc").
		Find(&shared).Error
	if err != nil {
		http.Error(w, "Failed to fetch shared notes", http.StatusInternalServerError)
		return
	}

	views := make([]map[string]any, 0, len(shared))
	for _, s := range shared {
		views = append(views, map[string]any{
			"id":          s.PublicID,
			"noteId":      s.NoteID,
			"title":       s.Title,
			"type":        s.Type,
			"content":     s.Content,
			"description": s.Description,
			"sharedBy":    s.Owner.Email,
			"sharedAt":    s.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"shared": views})
}
