package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/sprintnotes/sprintnotes/models"
	"github.com/sprintnotes/sprintnotes/utils"
)

type syncRequest struct {
	Type      models.OpType     `json:"type"`
	Entity    models.EntityKind `json:"entity"`
	EntityID  string            `json:"entityId"`
	Data      json.RawMessage   `json:"data,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

func (req *syncRequest) validate() string {
	switch req.Type {
	case models.OpCreate, models.OpUpdate, models.OpDelete:
	default:
		return "Invalid operation type"
	}
	switch req.Entity {
	case models.EntityNote, models.EntityFlashcard, models.EntityFolder:
	default:
		return "Invalid entity kind"
	}
	if req.EntityID == "" {
		return "Entity ID is required"
	}
	return ""
}

// IngestOperation is the remote end of the sync queue: it records the
// operation and folds it into the owner's document mirror. Clients deliver
// at-least-once, so a replayed operation must land on the same mirror row
// it already produced; the upsert keyed by (owner, entity, entityId) makes
// replays harmless.
func (db *DBHandler) IngestOperation(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req syncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Could not decode request", http.StatusBadRequest)
		return
	}
	if msg := req.validate(); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		event := models.SyncEvent{
			OwnerID:  user.ID,
			Type:     req.Type,
			Entity:   req.Entity,
			EntityID: req.EntityID,
			Data:     req.Data,
		}
		if err := tx.Create(&event).Error; err != nil {
			return err
		}

		var doc models.Document
		err := tx.Where("owner_id = ? AND entity = ? AND entity_id = ?",
			user.ID, req.Entity, req.EntityID).First(&doc).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			doc = models.Document{
				OwnerID:  user.ID,
				Entity:   req.Entity,
				EntityID: req.EntityID,
				Data:     req.Data,
				Deleted:  req.Type == models.OpDelete,
			}
			return tx.Create(&doc).Error
		}
		if err != nil {
			return err
		}
		// Tombstone wins over replayed updates; only an explicit create
		// starts the entity over.
		if doc.Deleted && req.Type == models.OpUpdate {
			return nil
		}
		doc.Data = req.Data
		doc.Deleted = req.Type == models.OpDelete
		return tx.Save(&doc).Error
	})
	if err != nil {
		http.Error(w, "Failed to apply operation", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"applied": true})
}

// ListDocuments returns the caller's mirror, optionally filtered by entity
// kind. Tombstoned rows are excluded.
func (db *DBHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	q := db.Where("owner_id = ? AND deleted = ?", user.ID, false)
	if entity := r.URL.Query().Get("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}

	var docs []models.Document
	if err := q.Order("updated_at desc").Find(&docs).Error; err != nil {
		http.Error(w, "Failed to fetch documents", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": docs})
}
