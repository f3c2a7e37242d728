package canvas

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeBaseURL(t *testing.T) {
	cases := map[string]string{
		"myschool.instructure.com":          "https://myschool.instructure.com",
		"myschool.instructure.com/":         "https://myschool.instructure.com",
		"  myschool.instructure.com  ":      "https://myschool.instructure.com",
		"https://myschool.instructure.com/": "https://myschool.instructure.com",
		"http://localhost:3000":             "http://localhost:3000",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeBaseURL(in), "input %q", in)
	}
}

func newCanvasServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestVerifySendsBearerToken(t *testing.T) {
	srv := newCanvasServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/users/self", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(Profile{ID: 7, Name: "Ada", Email: "ada@school.edu"})
	})

	profile, err := NewClient().Verify(context.Background(), srv.URL, "tok-123")
	require.NoError(t, err)
	assert.Equal(t, "Ada", profile.Name)
}

func TestVerifyRejectedToken(t *testing.T) {
	srv := newCanvasServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := NewClient().Verify(context.Background(), srv.URL, "bad")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCoursesFiltersRestrictedEnrollments(t *testing.T) {
	srv := newCanvasServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/courses", r.URL.Path)
		assert.Equal(t, "student", r.URL.Query().Get("enrollment_type"))
		json.NewEncoder(w).Encode([]Course{
			{ID: 1, Name: "Databases", Code: "CS340"},
			{ID: 2}, // restricted enrollment, no name
			{ID: 3, Name: "Algorithms", Code: "CS325"},
		})
	})

	courses, err := NewClient().Courses(context.Background(), srv.URL, "tok")
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "Databases", courses[0].Name)
	assert.Equal(t, "Algorithms", courses[1].Name)
}

func TestAssignmentsUsesCoursePath(t *testing.T) {
	srv := newCanvasServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/courses/42/assignments", r.URL.Path)
		json.NewEncoder(w).Encode([]Assignment{
			{ID: 9, Name: "Essay 1", PointsPossible: 100, SubmissionTypes: []string{"online_text_entry"}},
		})
	})

	assignments, err := NewClient().Assignments(context.Background(), srv.URL, "tok", 42)
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, "Essay 1", assignments[0].Name)
}

func TestExportSubmitsTextEntry(t *testing.T) {
	srv := newCanvasServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/courses/42/assignments/9/submissions", r.URL.Path)

		var payload struct {
			Submission struct {
				Type string `json:"submission_type"`
				Body string `json:"body"`
			} `json:"submission"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "online_text_entry", payload.Submission.Type)
		assert.Equal(t, "<h2>My Notes</h2><p>content</p>", payload.Submission.Body)

		json.NewEncoder(w).Encode(Submission{ID: 55})
	})

	submission, err := NewClient().Export(context.Background(), srv.URL, "tok", 42, 9, "My Notes", "<p>content</p>")
	require.NoError(t, err)
	assert.EqualValues(t, 55, submission.ID)
}

func TestDoSurfacesAPIErrors(t *testing.T) {
	srv := newCanvasServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "course not found", http.StatusNotFound)
	})

	_, err := NewClient().Assignments(context.Background(), srv.URL, "tok", 42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "course not found")
}
