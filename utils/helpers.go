package utils

import (
	"context"
	"net/http"

	"github.com/sprintnotes/sprintnotes/models"
)

type contextKey string

const userKey contextKey = "user"

// WithUser returns a context carrying the authenticated user. The auth
// middleware sets it; handler tests use it directly.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// CurrentUser returns the authenticated user attached to the request.
func CurrentUser(r *http.Request) (*models.User, bool) {
	user, ok := r.Context().Value(userKey).(*models.User)
	return user, ok && user != nil
}
