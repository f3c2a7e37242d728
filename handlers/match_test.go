package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprintnotes/sprintnotes/models"
)

func TestFindMatchesRanksBySharedSubjects(t *testing.T) {
	db := newTestHandler(t)
	me := createUser(t, db, "mentee@x.com", models.RoleMentee, "math", "physics", "chemistry")

	createUser(t, db, "one@x.com", models.RoleMentor, "math")
	twoShared := createUser(t, db, "two@x.com", models.RoleMentor, "math", "physics", "art")
	createUser(t, db, "none@x.com", models.RoleMentor, "history")
	createUser(t, db, "peer@x.com", models.RoleMentee, "math")

	w := httptest.NewRecorder()
	db.FindMatches(w, authedRequest(t, me, "POST", "/api/matches/find", nil))
	require.Equal(t, http.StatusOK, w.Code)

	matches := decodeBody(t, w)["matches"].([]any)
	require.Len(t, matches, 2)

	top := matches[0].(map[string]any)
	assert.Equal(t, twoShared.PublicID, top["id"])
	assert.EqualValues(t, 2, top["matchScore"])
	assert.ElementsMatch(t, []any{"math", "physics"}, top["commonSubjects"])
}

func TestFindMatchesExcludesExistingMatches(t *testing.T) {
	db := newTestHandler(t)
	me := createUser(t, db, "mentee@x.com", models.RoleMentee, "math")
	matched := createUser(t, db, "matched@x.com", models.RoleMentor, "math")
	rejected := createUser(t, db, "rejected@x.com", models.RoleMentor, "math")
	fresh := createUser(t, db, "fresh@x.com", models.RoleMentor, "math")

	createMatch(t, db, matched, me, models.MatchAccepted, me.ID)
	// A rejected match still suppresses the pairing from future results.
	createMatch(t, db, rejected, me, models.MatchRejected, me.ID)

	w := httptest.NewRecorder()
	db.FindMatches(w, authedRequest(t, me, "POST", "/api/matches/find", nil))
	require.Equal(t, http.StatusOK, w.Code)

	matches := decodeBody(t, w)["matches"].([]any)
	require.Len(t, matches, 1)
	assert.Equal(t, fresh.PublicID, matches[0].(map[string]any)["id"])
}

func TestRequestMatch(t *testing.T) {
	db := newTestHandler(t)
	mentee := createUser(t, db, "mentee@x.com", models.RoleMentee, "math")
	mentor := createUser(t, db, "mentor@x.com", models.RoleMentor, "math")

	w := httptest.NewRecorder()
	db.RequestMatch(w, authedRequest(t, mentee, "POST", "/api/matches/request", map[string]string{
		"targetUserId": mentor.PublicID,
	}))
	require.Equal(t, http.StatusCreated, w.Code)

	var match models.Match
	require.NoError(t, db.First(&match).Error)
	assert.Equal(t, mentor.ID, match.MentorID)
	assert.Equal(t, mentee.ID, match.MenteeID)
	assert.Equal(t, models.MatchPending, match.Status)
	assert.Equal(t, mentee.ID, match.RequestedBy)

	// The same pair again, from either side, is a conflict.
	w = httptest.NewRecorder()
	db.RequestMatch(w, authedRequest(t, mentor, "POST", "/api/matches/request", map[string]string{
		"targetUserId": mentee.PublicID,
	}))
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRequestMatchRejectsSameRole(t *testing.T) {
	db := newTestHandler(t)
	a := createUser(t, db, "a@x.com", models.RoleMentee, "math")
	b := createUser(t, db, "b@x.com", models.RoleMentee, "math")

	w := httptest.NewRecorder()
	db.RequestMatch(w, authedRequest(t, a, "POST", "/api/matches/request", map[string]string{
		"targetUserId": b.PublicID,
	}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func updateMatchRequest(t *testing.T, user *models.User, matchID, status string) *http.Request {
	t.Helper()
	req := authedRequest(t, user, "PUT", "/api/matches/"+matchID, map[string]string{"status": status})
	req.SetPathValue("matchID", matchID)
	return req
}

func TestUpdateMatchOnlyOtherPartyMayAccept(t *testing.T) {
	db := newTestHandler(t)
	mentee := createUser(t, db, "mentee@x.com", models.RoleMentee, "math")
	mentor := createUser(t, db, "mentor@x.com", models.RoleMentor, "math")
	match := createMatch(t, db, mentor, mentee, models.MatchPending, mentee.ID)

	// The initiator cannot accept their own request.
	w := httptest.NewRecorder()
	db.UpdateMatch(w, updateMatchRequest(t, mentee, match.PublicID, "accepted"))
	assert.Equal(t, http.StatusForbidden, w.Code)

	var got models.Match
	require.NoError(t, db.First(&got, match.ID).Error)
	assert.Equal(t, models.MatchPending, got.Status)

	// The other party can.
	w = httptest.NewRecorder()
	db.UpdateMatch(w, updateMatchRequest(t, mentor, match.PublicID, "accepted"))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, db.First(&got, match.ID).Error)
	assert.Equal(t, models.MatchAccepted, got.Status)
}

func TestUpdateMatchLifecycle(t *testing.T) {
	db := newTestHandler(t)
	mentee := createUser(t, db, "mentee@x.com", models.RoleMentee, "math")
	mentee2 := createUser(t, db, "mentee2@x.com", models.RoleMentee, "math")
	mentor := createUser(t, db, "mentor@x.com", models.RoleMentor, "math")
	outsider := createUser(t, db, "other@x.com", models.RoleMentor, "math")

	t.Run("either party may end an accepted match", func(t *testing.T) {
		match := createMatch(t, db, mentor, mentee, models.MatchAccepted, mentee.ID)
		w := httptest.NewRecorder()
		db.UpdateMatch(w, updateMatchRequest(t, mentee, match.PublicID, "ended"))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("a rejected match is terminal", func(t *testing.T) {
		match := createMatch(t, db, outsider, mentee, models.MatchRejected, mentee.ID)
		w := httptest.NewRecorder()
		db.UpdateMatch(w, updateMatchRequest(t, mentee, match.PublicID, "accepted"))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("non-participants get forbidden", func(t *testing.T) {
		match := createMatch(t, db, mentor, mentee2, models.MatchPending, mentor.ID)
		w := httptest.NewRecorder()
		db.UpdateMatch(w, updateMatchRequest(t, outsider, match.PublicID, "accepted"))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		match := createMatch(t, db, outsider, mentee2, models.MatchPending, outsider.ID)
		w := httptest.NewRecorder()
		db.UpdateMatch(w, updateMatchRequest(t, outsider, match.PublicID, "paused"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListMatches(t *testing.T) {
	db := newTestHandler(t)
	mentee := createUser(t, db, "mentee@x.com", models.RoleMentee, "math")
	mentor := createUser(t, db, "mentor@x.com", models.RoleMentor, "math")
	createMatch(t, db, mentor, mentee, models.MatchPending, mentee.ID)

	w := httptest.NewRecorder()
	db.ListMatches(w, authedRequest(t, mentee, "GET", "/api/matches", nil))
	require.Equal(t, http.StatusOK, w.Code)

	matches := decodeBody(t, w)["matches"].([]any)
	require.Len(t, matches, 1)
	m := matches[0].(map[string]any)
	assert.Equal(t, "pending", m["status"])
	assert.Equal(t, false, m["isMentor"])
	assert.Equal(t, true, m["requestedByMe"])
	assert.Equal(t, mentor.PublicID, m["otherUser"].(map[string]any)["id"])
}
