package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/forgo/camp/internal/model"
)

const (
	SessionKey     contextKey = "session"
	CurrentUserKey contextKey = "currentUser"
)

// SessionResolver defines the session operations the identity stage needs
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*model.Session, error)
	Start(ctx context.Context, userID string) (*model.Session, error)
}

// UserLoader loads the principal a session points at
type UserLoader interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
}

// CookieConfig holds the session cookie settings
type CookieConfig struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

// SetSessionCookie writes the session token cookie
func (c CookieConfig) SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session token cookie
func (c CookieConfig) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Session resolves the request's session cookie into a session and, when the
// session is bound to a user, the current user. Requests without a live
// session get a fresh anonymous one so flash messages always have somewhere
// to live. An invalid or expired token resolves to anonymous, never to an
// error.
func Session(sessions SessionResolver, users UserLoader, cookie CookieConfig) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			var token string
			if c, err := r.Cookie(cookie.Name); err == nil {
				token = c.Value
			}

			session, err := sessions.Resolve(ctx, token)
			if err != nil {
				slog.Error("session resolve failed",
					slog.String("error", err.Error()),
					slog.String("request_id", GetRequestID(ctx)),
				)
			}

			if session == nil {
				session, err = sessions.Start(ctx, "")
				if err != nil {
					slog.Error("session start failed",
						slog.String("error", err.Error()),
						slog.String("request_id", GetRequestID(ctx)),
					)
					// Proceed anonymous without a session record
					next.ServeHTTP(w, r)
					return
				}
				cookie.SetSessionCookie(w, session.Token)
			}

			ctx = context.WithValue(ctx, SessionKey, session)

			if session.UserID != "" {
				user, err := users.GetUser(ctx, session.UserID)
				if err != nil {
					slog.Error("user load failed",
						slog.String("error", err.Error()),
						slog.String("user_id", session.UserID),
						slog.String("request_id", GetRequestID(ctx)),
					)
				}
				if user != nil {
					ctx = context.WithValue(ctx, CurrentUserKey, user)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSession extracts the session from context
func GetSession(ctx context.Context) *model.Session {
	if session, ok := ctx.Value(SessionKey).(*model.Session); ok {
		return session
	}
	return nil
}

// GetCurrentUser extracts the authenticated user from context
func GetCurrentUser(ctx context.Context) *model.User {
	if user, ok := ctx.Value(CurrentUserKey).(*model.User); ok {
		return user
	}
	return nil
}
