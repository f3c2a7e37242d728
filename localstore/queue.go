package localstore

import (
	"time"

	"github.com/sprintnotes/sprintnotes/models"
)

// AppendOperation adds a row to the pending-operations log.
func (s *Store) AppendOperation(op *models.SyncOperation) error {
	return s.db.Create(op).Error
}

// PendingOperations returns every unsettled, non-abandoned operation in
// enqueue order (log IDs are monotonic, so ID order is timestamp order even
// when two enqueues land on the same clock tick).
func (s *Store) PendingOperations() ([]models.SyncOperation, error) {
	var ops []models.SyncOperation
	err := s.db.
		Where("synced = ? AND abandoned = ?", false, false).
		Order("id asc").
		Find(&ops).Error
	return ops, err
}

// PendingCount is the number the "N pending" indicator shows.
func (s *Store) PendingCount() (int64, error) {
	var n int64
	err := s.db.Model(&models.SyncOperation{}).
		Where("synced = ? AND abandoned = ?", false, false).
		Count(&n).Error
	return n, err
}

// SettleOperation marks an operation delivered. Terminal.
func (s *Store) SettleOperation(id uint) error {
	return s.db.Model(&models.SyncOperation{}).
		Where("id = ?", id).
		Updates(map[string]any{"synced": true, "last_error": ""}).Error
}

// RecordFailure attaches a delivery error and schedules the next attempt.
func (s *Store) RecordFailure(id uint, message string, attempts int, nextAttemptAt time.Time) error {
	return s.db.Model(&models.SyncOperation{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"last_error":      message,
			"attempts":        attempts,
			"next_attempt_at": nextAttemptAt,
		}).Error
}

// AbandonOperation parks an operation on the dead-letter path.
func (s *Store) AbandonOperation(id uint, message string) error {
	return s.db.Model(&models.SyncOperation{}).
		Where("id = ?", id).
		Updates(map[string]any{"abandoned": true, "last_error": message}).Error
}

// AbandonedOperations lists the dead-letter log for error surfacing.
func (s *Store) AbandonedOperations() ([]models.SyncOperation, error) {
	var ops []models.SyncOperation
	err := s.db.Where("abandoned = ?", true).Order("id asc").Find(&ops).Error
	return ops, err
}

// PurgeSettled deletes settled log rows older than the cutoff. The log is
// otherwise retained indefinitely.
func (s *Store) PurgeSettled(before time.Time) (int64, error) {
	res := s.db.Where("synced = ? AND timestamp < ?", true, before).
		Delete(&models.SyncOperation{})
	return res.RowsAffected, res.Error
}

// SetEntitySyncStatus flips the sync flag on the entity an operation
// targets. Folders carry no sync flag, so only notes and flashcards are
// touched.
func (s *Store) SetEntitySyncStatus(entity models.EntityKind, entityID string, status models.SyncStatus) error {
	switch entity {
	case models.EntityNote:
		return s.db.Model(&models.Note{}).
			Where("id = ?", entityID).
			Update("sync_status", status).Error
	case models.EntityFlashcard:
		return s.db.Model(&models.Flashcard{}).
			Where("id = ?", entityID).
			Update("sync_status", status).Error
	default:
		return nil
	}
}
