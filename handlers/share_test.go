package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprintnotes/sprintnotes/models"
)

func TestShareNoteCreatesSnapshot(t *testing.T) {
	db := newTestHandler(t)
	owner := createUser(t, db, "owner@x.com", models.RoleMentee, "math")

	w := httptest.NewRecorder()
	db.ShareNote(w, authedRequest(t, owner, "POST", "/api/share", map[string]any{
		"noteId":         "n1",
		"title":          "Calc cheatsheet",
		"type":           "note",
		"content":        []byte("derivatives"),
		"description":    "before the midterm",
		"recipientEmail": "Friend@X.com",
	}))
	require.Equal(t, http.StatusCreated, w.Code)

	var shared models.SharedNote
	require.NoError(t, db.First(&shared).Error)
	assert.Equal(t, "friend@x.com", shared.RecipientEmail)
	assert.Equal(t, owner.ID, shared.OwnerID)
	assert.Equal(t, []byte("derivatives"), shared.Content)
}

func TestShareNoteValidation(t *testing.T) {
	db := newTestHandler(t)
	owner := createUser(t, db, "owner@x.com", models.RoleMentee, "math")

	w := httptest.NewRecorder()
	db.ShareNote(w, authedRequest(t, owner, "POST", "/api/share", map[string]any{
		"noteId": "n1", "title": "x", "recipientEmail": "not-an-email",
	}))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	db.ShareNote(w, authedRequest(t, owner, "POST", "/api/share", map[string]any{
		"noteId": "", "title": "x", "recipientEmail": "a@b.com",
	}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSharedWithMe(t *testing.T) {
	db := newTestHandler(t)
	owner := createUser(t, db, "owner@x.com", models.RoleMentor, "math")
	recipient := createUser(t, db, "friend@x.com", models.RoleMentee, "math")

	w := httptest.NewRecorder()
	db.ShareNote(w, authedRequest(t, owner, "POST", "/api/share", map[string]any{
		"noteId": "n1", "title": "Calc cheatsheet", "type": "note",
		"recipientEmail": "friend@x.com",
	}))
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	db.SharedWithMe(w, authedRequest(t, recipient, "GET", "/api/share", nil))
	require.Equal(t, http.StatusOK, w.Code)

	shared := decodeBody(t, w)["shared"].([]any)
	require.Len(t, shared, 1)
	view := shared[0].(map[string]any)
	assert.Equal(t, "Calc cheatsheet", view["title"])
	assert.Equal(t, "owner@x.com", view["sharedBy"])

	// Shares addressed to someone else never show up.
	w = httptest.NewRecorder()
	db.SharedWithMe(w, authedRequest(t, owner, "GET", "/api/share", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeBody(t, w)["shared"])
}
