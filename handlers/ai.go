package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/sprintnotes/sprintnotes/ai"
)

// AIHandler serves the augmentation endpoints. Failures propagate as
// request errors; the core never retries the model.
type AIHandler struct {
	Client *ai.Client
}

func (h *AIHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Content == "" {
		http.Error(w, "No content provided", http.StatusBadRequest)
		return
	}

	summary, err := h.Client.Summarize(r.Context(), req.Content)
	if err != nil {
		log.Printf("handlers: summarize: %v", err)
		http.Error(w, "Failed to generate summary", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

func (h *AIHandler) GenerateDescription(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Content == "" {
		http.Error(w, "No content provided", http.StatusBadRequest)
		return
	}

	description, err := h.Client.GenerateDescription(r.Context(), req.Title, req.Content)
	if err != nil {
		log.Printf("handlers: generate description: %v", err)
		http.Error(w, "Failed to generate description", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"description": description})
}

func (h *AIHandler) TranslateLecture(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Transcript     string `json:"transcript"`
		TargetLanguage string `json:"targetLanguage"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Transcript == "" {
		http.Error(w, "No transcript provided", http.StatusBadRequest)
		return
	}
	if req.TargetLanguage == "" {
		http.Error(w, "Target language is required", http.StatusBadRequest)
		return
	}

	translation, err := h.Client.TranslateLecture(r.Context(), req.Transcript, req.TargetLanguage)
	if err != nil {
		log.Printf("handlers: translate lecture: %v", err)
		http.Error(w, "Failed to translate lecture", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, translation)
}
