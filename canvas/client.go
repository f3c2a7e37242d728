// Package canvas is a thin client for the Canvas LMS REST API: verifying a
// token, listing courses, assignments and files, and submitting a note as
// an online text entry.
package canvas

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{httpClient: &http.Client{Timeout: 30 * time.Second}}
}

// NormalizeBaseURL strips a trailing slash and defaults to https, so users
// can paste "myschool.instructure.com" as-is.
func NormalizeBaseURL(raw string) string {
	url := strings.TrimSuffix(strings.TrimSpace(raw), "/")
	if !strings.HasPrefix(url, "http") {
		url = "https://" + url
	}
	return url
}

type Profile struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"primary_email"`
}

type Course struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"course_code"`
	Term *struct {
		Name string `json:"name"`
	} `json:"term,omitempty"`
	EnrollmentTermID int64 `json:"enrollment_term_id"`
}

type Assignment struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	DueAt           *string  `json:"due_at"`
	PointsPossible  float64  `json:"points_possible"`
	SubmissionTypes []string `json:"submission_types"`
}

type File struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
	Filename    string `json:"filename"`
	URL         string `json:"url"`
	Size        int64  `json:"size"`
	ContentType string `json:"content-type"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type Submission struct {
	ID          int64   `json:"id"`
	SubmittedAt *string `json:"submitted_at"`
}

// Verify checks the token against the current-user endpoint.
func (c *Client) Verify(ctx context.Context, baseURL, token string) (*Profile, error) {
	var profile Profile
	err := c.get(ctx, baseURL, token, "/api/v1/users/self", &profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Courses lists the user's active student enrollments.
func (c *Client) Courses(ctx context.Context, baseURL, token string) ([]Course, error) {
	var courses []Course
	path := "/api/v1/courses?enrollment_type=student&enrollment_role=StudentEnrollment&per_page=100"
	if err := c.get(ctx, baseURL, token, path, &courses); err != nil {
		return nil, err
	}
	// Canvas returns restricted enrollments as rows without names.
	active := courses[:0]
	for _, course := range courses {
		if course.Name != "" && course.Code != "" {
			active = append(active, course)
		}
	}
	return active, nil
}

func (c *Client) Assignments(ctx context.Context, baseURL, token string, courseID int64) ([]Assignment, error) {
	var assignments []Assignment
	path := fmt.Sprintf("/api/v1/courses/%d/assignments?per_page=100", courseID)
	if err := c.get(ctx, baseURL, token, path, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

func (c *Client) Files(ctx context.Context, baseURL, token string, courseID int64) ([]File, error) {
	var files []File
	path := fmt.Sprintf("/api/v1/courses/%d/files?per_page=100", courseID)
	if err := c.get(ctx, baseURL, token, path, &files); err != nil {
		return nil, err
	}
	return files, nil
}

// Export submits a note's content as an online text entry on an
// assignment. File submissions would need an upload round first; the app
// only exports text.
func (c *Client) Export(ctx context.Context, baseURL, token string, courseID, assignmentID int64, title, content string) (*Submission, error) {
	if title == "" {
		title = "Note"
	}
	payload := map[string]any{
		"submission": map[string]any{
			"submission_type": "online_text_entry",
			"body":            fmt.Sprintf("<h2>%s</h2>%s", title, content),
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/api/v1/courses/%d/assignments/%d/submissions", courseID, assignmentID)
	req, err := c.newRequest(ctx, http.MethodPost, baseURL, token, path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var submission Submission
	if err := c.do(req, &submission); err != nil {
		return nil, err
	}
	return &submission, nil
}

func (c *Client) get(ctx context.Context, baseURL, token, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, baseURL, token, path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, baseURL, token, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, NormalizeBaseURL(baseURL)+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("canvas: API error: %s: %s", resp.Status, bytes.TrimSpace(msg))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// ErrUnauthorized means the API token was rejected.
var ErrUnauthorized = fmt.Errorf("canvas: invalid API token")
