package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/sprintnotes/sprintnotes/models"
	"github.com/sprintnotes/sprintnotes/utils"
)

// SendMessage creates a message inside an accepted match the sender
// belongs to.
func (db *DBHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		MatchID string `json:"matchId"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Could not decode request", http.StatusBadRequest)
		return
	}
	content := strings.TrimSpace(req.Content)
	if req.MatchID == "" || content == "" {
		http.Error(w, "Match ID and content are required", http.StatusBadRequest)
		return
	}

	var match models.Match
	err := db.Where("public_id = ? AND status = ?", req.MatchID, models.MatchAccepted).First(&match).Error
	if err != nil {
		http.Error(w, "Match not found or not accepted", http.StatusNotFound)
		return
	}
	if !match.Involves(user.ID) {
		http.Error(w, "Unauthorized", http.StatusForbidden)
		return
	}

	publicID, err := gonanoid.New()
	if err != nil {
		http.Error(w, "Failed to generate ID", http.StatusInternalServerError)
		return
	}
	msg := models.Message{
		PublicID: publicID,
		MatchID:  match.ID,
		SenderID: user.ID,
		Content:  content,
	}
	if err := db.Create(&msg).Error; err != nil {
		http.Error(w, "Failed to send message", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"message": messageView(&msg, user.ID)})
}

// GetMessages returns a match's conversation in send order and stamps the
// other party's unread messages as read.
func (db *DBHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		MatchID string `json:"matchId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.MatchID == "" {
		http.Error(w, "Match ID is required", http.StatusBadRequest)
		return
	}

	var match models.Match
	if err := db.Where("public_id = ?", req.MatchID).First(&match).Error; err != nil {
		http.Error(w, "Match not found", http.StatusNotFound)
		return
	}
	if !match.Involves(user.ID) {
		http.Error(w, "Unauthorized", http.StatusForbidden)
		return
	}

	var messages []models.Message
	err := db.Where("match_id = ?", match.ID).Order("created_at asc").Find(&messages).Error
	if err != nil {
		http.Error(w, "Failed to fetch messages", http.StatusInternalServerError)
		return
	}

	var unreadIDs []uint
	for _, m := range messages {
		if m.SenderID != user.ID && m.ReadAt == nil {
			unreadIDs = append(unreadIDs, m.ID)
		}
	}
	if len(unreadIDs) > 0 {
		now := time.Now()
		err := db.Model(&models.Message{}).Where("id IN ?", unreadIDs).Update("read_at", now).Error
		if err != nil {
			http.Error(w, "Failed to mark messages read", http.StatusInternalServerError)
			return
		}
		for i := range messages {
			if messages[i].SenderID != user.ID && messages[i].ReadAt == nil {
				messages[i].ReadAt = &now
			}
		}
	}

	views := make([]map[string]any, 0, len(messages))
	for i := range messages {
		views = append(views, messageView(&messages[i], user.ID))
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": views})
}

func messageView(m *models.Message, viewerID uint) map[string]any {
	return map[string]any{
		"id":       m.PublicID,
		"content":  m.Content,
		"sentByMe": m.SenderID == viewerID,
		"readAt":   m.ReadAt,
		"sentAt":   m.CreatedAt,
	}
}
