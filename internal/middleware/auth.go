package middleware

import (
	"context"
	"net/http"

	"github.com/forgo/camp/internal/model"
)

// FlashAdder enqueues a flash message on a session
type FlashAdder interface {
	AddFlash(ctx context.Context, session *model.Session, category, message string) error
}

// RequireLogin gates state-changing routes. An anonymous request is turned
// away with an error flash and a redirect to the login page, never a hard
// error page, and never after touching the store.
func RequireLogin(flashes FlashAdder) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if GetCurrentUser(r.Context()) != nil {
				next.ServeHTTP(w, r)
				return
			}

			_ = flashes.AddFlash(r.Context(), GetSession(r.Context()), model.FlashError, "You must be logged in.")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
		})
	}
}
