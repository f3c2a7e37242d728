package localstore

import (
	"github.com/sprintnotes/sprintnotes/models"
)

func (s *Store) CreateNote(n *models.Note) error {
	return s.db.Create(n).Error
}

func (s *Store) GetNote(id string) (*models.Note, error) {
	var n models.Note
	if err := s.db.First(&n, "id = ?", id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &n, nil
}

// SaveNote writes back a full note row, stamping UpdatedAt.
func (s *Store) SaveNote(n *models.Note) error {
	return s.db.Save(n).Error
}

func (s *Store) DeleteNote(id string) error {
	return s.db.Delete(&models.Note{}, "id = ?", id).Error
}

// NotesInFolder returns the direct note children of a folder (nil for the
// root group), sorted by sibling order.
func (s *Store) NotesInFolder(folderID *string) ([]models.Note, error) {
	var notes []models.Note
	q := s.db.Order("sort_order asc")
	if folderID == nil {
		q = q.Where("folder_id IS NULL")
	} else {
		q = q.Where("folder_id = ?", *folderID)
	}
	err := q.Find(&notes).Error
	return notes, err
}

func (s *Store) NotesByType(t models.NoteType) ([]models.Note, error) {
	var notes []models.Note
	err := s.db.Where("type = ?", t).Order("updated_at desc").Find(&notes).Error
	return notes, err
}

func (s *Store) NotesBySyncStatus(status models.SyncStatus) ([]models.Note, error) {
	var notes []models.Note
	err := s.db.Where("sync_status = ?", status).Find(&notes).Error
	return notes, err
}

func (s *Store) CreateFolder(f *models.Folder) error {
	return s.db.Create(f).Error
}

func (s *Store) GetFolder(id string) (*models.Folder, error) {
	var f models.Folder
	if err := s.db.First(&f, "id = ?", id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &f, nil
}

func (s *Store) SaveFolder(f *models.Folder) error {
	return s.db.Save(f).Error
}

// Folders returns every folder in creation order.
func (s *Store) Folders() ([]models.Folder, error) {
	var folders []models.Folder
	err := s.db.Order("created_at asc").Find(&folders).Error
	return folders, err
}

// ChildFolders returns the direct sub-folders of a folder (nil for roots).
func (s *Store) ChildFolders(parentID *string) ([]models.Folder, error) {
	var folders []models.Folder
	q := s.db.Order("created_at asc")
	if parentID == nil {
		q = q.Where("parent_id IS NULL")
	} else {
		q = q.Where("parent_id = ?", *parentID)
	}
	err := q.Find(&folders).Error
	return folders, err
}

func (s *Store) DeleteFolders(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return s.db.Delete(&models.Folder{}, "id IN ?", ids).Error
}

// ReparentNotes moves every note under any of the given folders to a new
// parent and marks them pending for sync.
func (s *Store) ReparentNotes(folderIDs []string, newParentID *string) ([]models.Note, error) {
	if len(folderIDs) == 0 {
		return nil, nil
	}
	var notes []models.Note
	if err := s.db.Where("folder_id IN ?", folderIDs).Find(&notes).Error; err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return nil, nil
	}
	err := s.db.Model(&models.Note{}).
		Where("folder_id IN ?", folderIDs).
		Updates(map[string]any{
			"folder_id":   newParentID,
			"sync_status": models.SyncStatusPending,
		}).Error
	if err != nil {
		return nil, err
	}
	for i := range notes {
		notes[i].FolderID = newParentID
		notes[i].SyncStatus = models.SyncStatusPending
	}
	return notes, nil
}
