package handlers

import (
	"encoding/json"
	"net/http"

	"gorm.io/gorm"
)

type DBHandler struct {
	*gorm.DB
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
