package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprintnotes/sprintnotes/auth"
	"github.com/sprintnotes/sprintnotes/models"
)

func signupBody(email string) map[string]any {
	return map[string]any{
		"email":    email,
		"password": "hunter2hunter2",
		"birthday": "2004-05-01",
		"role":     "mentee",
		"subjects": []string{"math", "physics"},
	}
}

func TestSignupCreatesAccountAndToken(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	db := newTestHandler(t)

	w := httptest.NewRecorder()
	db.Signup(w, authedRequest(t, nil, "POST", "/api/auth/signup", signupBody("Student@Example.com")))

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.NotEmpty(t, body["token"])

	var user models.User
	require.NoError(t, db.Where("email = ?", "student@example.com").First(&user).Error)
	assert.Equal(t, models.RoleMentee, user.Role)
	assert.NotEqual(t, "hunter2hunter2", user.PasswordHash)
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	db := newTestHandler(t)

	w := httptest.NewRecorder()
	db.Signup(w, authedRequest(t, nil, "POST", "/api/auth/signup", signupBody("a@b.com")))
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	db.Signup(w, authedRequest(t, nil, "POST", "/api/auth/signup", signupBody("A@B.com")))
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSignupValidation(t *testing.T) {
	db := newTestHandler(t)

	cases := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{"bad email", func(m map[string]any) { m["email"] = "not-an-email" }},
		{"short password", func(m map[string]any) { m["password"] = "short" }},
		{"bad role", func(m map[string]any) { m["role"] = "teacher" }},
		{"bad birthday", func(m map[string]any) { m["birthday"] = "May 1st" }},
		{"no subjects", func(m map[string]any) { m["subjects"] = []string{} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := signupBody("a@b.com")
			tc.mutate(body)
			w := httptest.NewRecorder()
			db.Signup(w, authedRequest(t, nil, "POST", "/api/auth/signup", body))
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestLogin(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	db := newTestHandler(t)

	hash, err := auth.HashPassword("correct horse battery")
	require.NoError(t, err)
	user := createUser(t, db, "a@b.com", models.RoleMentor, "math")
	user.PasswordHash = hash
	require.NoError(t, db.Save(user).Error)

	w := httptest.NewRecorder()
	db.Login(w, authedRequest(t, nil, "POST", "/api/auth/login", map[string]string{
		"email": "A@B.com", "password": "correct horse battery",
	}))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decodeBody(t, w)["token"])

	w = httptest.NewRecorder()
	db.Login(w, authedRequest(t, nil, "POST", "/api/auth/login", map[string]string{
		"email": "a@b.com", "password": "wrong",
	}))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateProfile(t *testing.T) {
	db := newTestHandler(t)
	user := createUser(t, db, "a@b.com", models.RoleMentee, "math")

	w := httptest.NewRecorder()
	db.UpdateProfile(w, authedRequest(t, user, "PUT", "/api/auth/update", map[string]any{
		"subjects": []string{"chemistry", "biology"},
	}))
	require.Equal(t, http.StatusOK, w.Code)

	var got models.User
	require.NoError(t, db.First(&got, user.ID).Error)
	assert.Equal(t, []string{"chemistry", "biology"}, got.Subjects)
	// Untouched fields survive a partial update.
	assert.Equal(t, models.RoleMentee, got.Role)

	w = httptest.NewRecorder()
	db.UpdateProfile(w, authedRequest(t, user, "PUT", "/api/auth/update", map[string]any{
		"role": "wizard",
	}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
