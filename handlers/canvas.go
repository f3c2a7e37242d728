package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/sprintnotes/sprintnotes/canvas"
)

// CanvasHandler proxies the LMS endpoints. The Canvas base URL and token
// are per-request: each student connects their own institution.
type CanvasHandler struct {
	Client *canvas.Client
}

type canvasRequest struct {
	CanvasURL    string `json:"canvasUrl"`
	APIToken     string `json:"apiToken"`
	CourseID     int64  `json:"courseId,omitempty"`
	AssignmentID int64  `json:"assignmentId,omitempty"`
	Title        string `json:"title,omitempty"`
	Content      string `json:"content,omitempty"`
}

func decodeCanvasRequest(w http.ResponseWriter, r *http.Request) (*canvasRequest, bool) {
	var req canvasRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Could not decode request", http.StatusBadRequest)
		return nil, false
	}
	if req.CanvasURL == "" || req.APIToken == "" {
		http.Error(w, "Canvas URL and API token are required", http.StatusBadRequest)
		return nil, false
	}
	return &req, true
}

func canvasError(w http.ResponseWriter, action string, err error) {
	if errors.Is(err, canvas.ErrUnauthorized) {
		http.Error(w, "Invalid API token. Please check your token and try again.", http.StatusUnauthorized)
		return
	}
	log.Printf("handlers: canvas %s: %v", action, err)
	http.Error(w, "Failed to reach Canvas", http.StatusBadGateway)
}

func (h *CanvasHandler) Verify(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCanvasRequest(w, r)
	if !ok {
		return
	}
	profile, err := h.Client.Verify(r.Context(), req.CanvasURL, req.APIToken)
	if err != nil {
		canvasError(w, "verify", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": profile})
}

func (h *CanvasHandler) Courses(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCanvasRequest(w, r)
	if !ok {
		return
	}
	courses, err := h.Client.Courses(r.Context(), req.CanvasURL, req.APIToken)
	if err != nil {
		canvasError(w, "courses", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"courses": courses})
}

func (h *CanvasHandler) Assignments(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCanvasRequest(w, r)
	if !ok {
		return
	}
	if req.CourseID == 0 {
		http.Error(w, "Course ID is required", http.StatusBadRequest)
		return
	}
	assignments, err := h.Client.Assignments(r.Context(), req.CanvasURL, req.APIToken, req.CourseID)
	if err != nil {
		canvasError(w, "assignments", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"assignments": assignments})
}

func (h *CanvasHandler) Files(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCanvasRequest(w, r)
	if !ok {
		return
	}
	if req.CourseID == 0 {
		http.Error(w, "Course ID is required", http.StatusBadRequest)
		return
	}
	files, err := h.Client.Files(r.Context(), req.CanvasURL, req.APIToken, req.CourseID)
	if err != nil {
		canvasError(w, "files", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"files": files})
}

func (h *CanvasHandler) Export(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCanvasRequest(w, r)
	if !ok {
		return
	}
	if req.CourseID == 0 || req.AssignmentID == 0 || req.Content == "" {
		http.Error(w, "Course ID, assignment ID and content are required", http.StatusBadRequest)
		return
	}
	submission, err := h.Client.Export(r.Context(), req.CanvasURL, req.APIToken,
		req.CourseID, req.AssignmentID, req.Title, req.Content)
	if err != nil {
		canvasError(w, "export", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"submission": submission})
}
