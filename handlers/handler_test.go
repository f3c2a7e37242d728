package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sprintnotes/sprintnotes/config"
	"github.com/sprintnotes/sprintnotes/models"
	"github.com/sprintnotes/sprintnotes/utils"
)

func newTestHandler(t *testing.T) *DBHandler {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return &DBHandler{DB: db}
}

func createUser(t *testing.T, db *DBHandler, email string, role models.Role, subjects ...string) *models.User {
	t.Helper()
	publicID, err := gonanoid.New()
	require.NoError(t, err)
	user := &models.User{
		PublicID:     publicID,
		Email:        email,
		PasswordHash: "x",
		Birthday:     time.Date(2004, 5, 1, 0, 0, 0, 0, time.UTC),
		Role:         role,
		Subjects:     subjects,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createMatch(t *testing.T, db *DBHandler, mentor, mentee *models.User, status models.MatchStatus, requestedBy uint) *models.Match {
	t.Helper()
	publicID, err := gonanoid.New()
	require.NoError(t, err)
	match := &models.Match{
		PublicID:    publicID,
		MentorID:    mentor.ID,
		MenteeID:    mentee.ID,
		Status:      status,
		RequestedBy: requestedBy,
	}
	require.NoError(t, db.Create(match).Error)
	return match
}

// authedRequest builds a request with a JSON body and, when user is not
// nil, the authenticated-user context the middleware would have set.
func authedRequest(t *testing.T, user *models.User, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	if user != nil {
		req = req.WithContext(utils.WithUser(req.Context(), user))
	}
	return req
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
