package handlers

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/sprintnotes/sprintnotes/auth"
	"github.com/sprintnotes/sprintnotes/models"
	"github.com/sprintnotes/sprintnotes/utils"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func (db *DBHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string   `json:"email"`
		Password string   `json:"password"`
		Birthday string   `json:"birthday"`
		Role     string   `json:"role"`
		Subjects []string `json:"subjects"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Could not decode request", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" || req.Birthday == "" || req.Role == "" || len(req.Subjects) == 0 {
		http.Error(w, "All fields are required", http.StatusBadRequest)
		return
	}
	if !emailPattern.MatchString(req.Email) {
		http.Error(w, "Invalid email format", http.StatusBadRequest)
		return
	}
	if len(req.Password) < 8 {
		http.Error(w, "Password must be at least 8 characters", http.StatusBadRequest)
		return
	}
	role := models.Role(req.Role)
	if role != models.RoleMentor && role != models.RoleMentee {
		http.Error(w, "Invalid role. Must be mentor or mentee", http.StatusBadRequest)
		return
	}
	birthday, err := time.Parse("2006-01-02", req.Birthday)
	if err != nil {
		http.Error(w, "Invalid birthday format", http.StatusBadRequest)
		return
	}

	email := strings.ToLower(req.Email)
	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		http.Error(w, "An account with this email already exists", http.StatusConflict)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		http.Error(w, "Failed to create account", http.StatusInternalServerError)
		return
	}
	publicID, err := gonanoid.New()
	if err != nil {
		http.Error(w, "Failed to generate ID", http.StatusInternalServerError)
		return
	}

	user := models.User{
		PublicID:     publicID,
		Email:        email,
		PasswordHash: hash,
		Birthday:     birthday,
		Role:         role,
		Subjects:     req.Subjects,
	}
	if err := db.Create(&user).Error; err != nil {
		http.Error(w, "Failed to create account. Please try again.", http.StatusInternalServerError)
		return
	}

	token, err := auth.CreateToken(user.PublicID)
	if err != nil {
		http.Error(w, "Failed to create session", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"user":  user,
		"token": token,
	})
}

func (db *DBHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Could not decode request", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	var user models.User
	err := db.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error
	if err != nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		http.Error(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	token, err := auth.CreateToken(user.PublicID)
	if err != nil {
		http.Error(w, "Failed to create session", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":  user,
		"token": token,
	})
}

// UpdateProfile changes the mutable profile fields of the authenticated
// user. Pointer fields distinguish "absent" from "set to empty".
func (db *DBHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Role     *string   `json:"role,omitempty"`
		Subjects *[]string `json:"subjects,omitempty"`
		Birthday *string   `json:"birthday,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Role != nil {
		role := models.Role(*req.Role)
		if role != models.RoleMentor && role != models.RoleMentee {
			http.Error(w, "Invalid role. Must be mentor or mentee", http.StatusBadRequest)
			return
		}
		user.Role = role
	}
	if req.Subjects != nil {
		if len(*req.Subjects) == 0 {
			http.Error(w, "At least one subject is required", http.StatusBadRequest)
			return
		}
		user.Subjects = *req.Subjects
	}
	if req.Birthday != nil {
		birthday, err := time.Parse("2006-01-02", *req.Birthday)
		if err != nil {
			http.Error(w, "Invalid birthday format", http.StatusBadRequest)
			return
		}
		user.Birthday = birthday
	}

	if err := db.Save(user).Error; err != nil {
		http.Error(w, "Failed to update profile", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}
