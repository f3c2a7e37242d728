package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/sprintnotes/sprintnotes/auth"
	"github.com/sprintnotes/sprintnotes/config"
	"github.com/sprintnotes/sprintnotes/models"
	"github.com/sprintnotes/sprintnotes/utils"
)

// RequireAuth validates the bearer token and attaches the account row to
// the request context for downstream handlers.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header missing", http.StatusUnauthorized)
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			http.Error(w, "Invalid token format", http.StatusUnauthorized)
			return
		}

		userID, err := auth.ParseToken(tokenStr)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var user models.User
		result := config.Database.Where("public_id = ?", userID).First(&user)
		if result.Error != nil {
			log.Printf("middleware: token for unknown user %s", userID)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithUser(r.Context(), &user)))
	}
}
