// Package ordering maintains the sibling order of notes inside folders and
// the folder tree itself: relocating a note to a new parent and position,
// reparenting folders without creating cycles, and cascading folder
// deletes.
package ordering

import (
	"encoding/json"
	"fmt"

	"github.com/sprintnotes/sprintnotes/localstore"
	"github.com/sprintnotes/sprintnotes/models"
)

// CycleError reports a folder move that would make the folder its own
// ancestor. The tree is left unchanged.
type CycleError struct {
	FolderID    string
	NewParentID string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("ordering: moving folder %s under %s would create a cycle", e.FolderID, e.NewParentID)
}

// Recorder receives the sync intent for every mutation the engine applies.
// The sync queue implements it; a nil Recorder disables recording.
type Recorder interface {
	Record(t models.OpType, entity models.EntityKind, entityID string, payload any) error
}

type Engine struct {
	store *localstore.Store
	rec   Recorder
}

func NewEngine(store *localstore.Store, rec Recorder) *Engine {
	return &Engine{store: store, rec: rec}
}

// intent is a sync record deferred until the surrounding transaction
// commits, so a rolled-back move never reaches the queue.
type intent struct {
	t        models.OpType
	entity   models.EntityKind
	entityID string
	payload  any
}

func (e *Engine) emit(intents []intent) error {
	if e.rec == nil {
		return nil
	}
	for _, in := range intents {
		if err := e.rec.Record(in.t, in.entity, in.entityID, in.payload); err != nil {
			return err
		}
	}
	return nil
}

// RelocateNote moves a note to a folder (nil for root) at the given
// position. Destination siblings are renumbered to consecutive order
// values starting at 1; siblings left behind in the source folder keep
// their existing values, which stay monotonic. Renumbering is idempotent,
// so moving a note onto its current position is safe.
func (e *Engine) RelocateNote(noteID string, newFolderID *string, newIndex int) error {
	if noteID == "" {
		return fmt.Errorf("ordering: note id is required")
	}
	var intents []intent
	err := e.store.Transaction(func(tx *localstore.Store) error {
		note, err := tx.GetNote(noteID)
		if err != nil {
			return err
		}
		if newFolderID != nil {
			if _, err := tx.GetFolder(*newFolderID); err != nil {
				return err
			}
		}

		siblings, err := tx.NotesInFolder(newFolderID)
		if err != nil {
			return err
		}
		ordered := make([]models.Note, 0, len(siblings)+1)
		for _, sib := range siblings {
			if sib.ID != note.ID {
				ordered = append(ordered, sib)
			}
		}

		if newIndex < 0 {
			newIndex = 0
		}
		if newIndex > len(ordered) {
			newIndex = len(ordered)
		}

		note.FolderID = newFolderID
		note.SyncStatus = models.SyncStatusPending
		ordered = append(ordered[:newIndex], append([]models.Note{*note}, ordered[newIndex:]...)...)

		for i := range ordered {
			ordered[i].Order = i + 1
			if err := tx.SaveNote(&ordered[i]); err != nil {
				return err
			}
		}

		intents = append(intents, intent{models.OpUpdate, models.EntityNote, note.ID, map[string]any{
			"folderId": newFolderID,
			"order":    newIndex + 1,
		}})
		return nil
	})
	if err != nil {
		return err
	}
	return e.emit(intents)
}

// MoveFolder reparents a folder (nil parent makes it a root). Returns a
// *CycleError if the destination is the folder itself or one of its
// descendants.
func (e *Engine) MoveFolder(folderID string, newParentID *string) error {
	if folderID == "" {
		return fmt.Errorf("ordering: folder id is required")
	}
	var intents []intent
	err := e.store.Transaction(func(tx *localstore.Store) error {
		folder, err := tx.GetFolder(folderID)
		if err != nil {
			return err
		}
		if newParentID != nil {
			if err := checkCycle(tx, folderID, *newParentID); err != nil {
				return err
			}
		}
		folder.ParentID = newParentID
		if err := tx.SaveFolder(folder); err != nil {
			return err
		}
		intents = append(intents, intent{models.OpUpdate, models.EntityFolder, folder.ID, map[string]any{
			"parentId": newParentID,
		}})
		return nil
	})
	if err != nil {
		return err
	}
	return e.emit(intents)
}

// checkCycle walks from the destination toward the root and fails if it
// passes through the folder being moved. The walk is bounded by the folder
// count, so a corrupted parent chain cannot loop forever.
func checkCycle(tx *localstore.Store, folderID, newParentID string) error {
	if newParentID == folderID {
		return &CycleError{FolderID: folderID, NewParentID: newParentID}
	}
	all, err := tx.Folders()
	if err != nil {
		return err
	}
	parents := make(map[string]*string, len(all))
	for _, f := range all {
		parents[f.ID] = f.ParentID
	}
	if _, ok := parents[newParentID]; !ok {
		return localstore.ErrNotFound
	}
	cur := &newParentID
	for range all {
		next, ok := parents[*cur]
		if !ok || next == nil {
			return nil
		}
		if *next == folderID {
			return &CycleError{FolderID: folderID, NewParentID: newParentID}
		}
		cur = next
	}
	return nil
}

// DeleteFolder removes a folder and every descendant folder. Notes living
// anywhere under the deleted subtree are reparented to the deleted
// folder's own parent (one level up, not to root) and marked pending.
func (e *Engine) DeleteFolder(folderID string) error {
	if folderID == "" {
		return fmt.Errorf("ordering: folder id is required")
	}
	var intents []intent
	err := e.store.Transaction(func(tx *localstore.Store) error {
		folder, err := tx.GetFolder(folderID)
		if err != nil {
			return err
		}

		doomed := []string{folder.ID}
		for i := 0; i < len(doomed); i++ {
			id := doomed[i]
			children, err := tx.ChildFolders(&id)
			if err != nil {
				return err
			}
			for _, c := range children {
				doomed = append(doomed, c.ID)
			}
		}

		moved, err := tx.ReparentNotes(doomed, folder.ParentID)
		if err != nil {
			return err
		}
		if err := tx.DeleteFolders(doomed); err != nil {
			return err
		}

		for _, n := range moved {
			intents = append(intents, intent{models.OpUpdate, models.EntityNote, n.ID, map[string]any{
				"folderId": folder.ParentID,
			}})
		}
		for _, id := range doomed {
			intents = append(intents, intent{models.OpDelete, models.EntityFolder, id, nil})
		}
		return nil
	})
	if err != nil {
		return err
	}
	return e.emit(intents)
}

// Snapshot returns a note's sync payload as stored, for callers that
// enqueue full-row updates after field edits.
func Snapshot(n *models.Note) json.RawMessage {
	raw, err := json.Marshal(n)
	if err != nil {
		return nil
	}
	return raw
}
