package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/forgo/camp/internal/middleware"
	"github.com/forgo/camp/internal/model"
	"github.com/forgo/camp/internal/service"
)

// AuthService defines the authentication operations
type AuthService interface {
	Register(ctx context.Context, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, error)
}

// SessionService defines the session lifecycle operations the auth routes
// need
type SessionService interface {
	Start(ctx context.Context, userID string) (*model.Session, error)
	Destroy(ctx context.Context, token string) error
	AddFlash(ctx context.Context, session *model.Session, category, message string) error
}

// AuthHandler handles register, login and logout
type AuthHandler struct {
	auth     AuthService
	sessions SessionService
	pages    *Pages
	cookie   middleware.CookieConfig
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth AuthService, sessions SessionService, pages *Pages, cookie middleware.CookieConfig) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, pages: pages, cookie: cookie}
}

// credentialsForm carries the submitted email back into a re-rendered form
type credentialsForm struct {
	Email string
}

// RegisterForm handles GET /register
func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.pages.Render(w, r, http.StatusOK, "users/register", "Register", credentialsForm{})
}

// Register handles POST /register. Failures flash and return to the form;
// success establishes a logged-in session and lands on the list.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := h.auth.Register(ctx, r.PostFormValue("email"), r.PostFormValue("password"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail),
			errors.Is(err, service.ErrPasswordRequired),
			errors.Is(err, service.ErrPasswordTooShort),
			errors.Is(err, service.ErrEmailAlreadyExists):
			h.pages.Flash(r, model.FlashError, capitalize(err.Error())+".")
			h.pages.Redirect(w, r, "/register")
		default:
			h.pages.Error(w, r, err)
		}
		return
	}

	if err := h.startUserSession(w, r, user.ID, "Register success!"); err != nil {
		h.pages.Error(w, r, err)
		return
	}
	h.pages.Redirect(w, r, "/campgrounds")
}

// LoginForm handles GET /login
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.pages.Render(w, r, http.StatusOK, "users/login", "Log in", credentialsForm{})
}

// Login handles POST /login. The rejection message is the same whether the
// email is unknown or the password is wrong.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := h.auth.Login(ctx, r.PostFormValue("email"), r.PostFormValue("password"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.pages.Flash(r, model.FlashError, "Invalid email or password.")
			h.pages.Redirect(w, r, "/login")
			return
		}
		h.pages.Error(w, r, err)
		return
	}

	if err := h.startUserSession(w, r, user.ID, "Welcome back!"); err != nil {
		h.pages.Error(w, r, err)
		return
	}
	h.pages.Redirect(w, r, "/campgrounds")
}

// Logout handles GET /logout. Destroying an already-dead session is fine.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if session := middleware.GetSession(ctx); session != nil {
		if err := h.sessions.Destroy(ctx, session.Token); err != nil {
			h.pages.Error(w, r, err)
			return
		}
	}

	h.cookie.ClearSessionCookie(w)
	h.pages.Redirect(w, r, "/login")
}

// startUserSession rotates the anonymous session into one bound to the user:
// the old record is destroyed and a fresh token is issued, so a pre-login
// token never becomes an authenticated one.
func (h *AuthHandler) startUserSession(w http.ResponseWriter, r *http.Request, userID, greeting string) error {
	ctx := r.Context()

	if old := middleware.GetSession(ctx); old != nil {
		_ = h.sessions.Destroy(ctx, old.Token)
	}

	session, err := h.sessions.Start(ctx, userID)
	if err != nil {
		return err
	}

	h.cookie.SetSessionCookie(w, session.Token)
	return h.sessions.AddFlash(ctx, session, model.FlashSuccess, greeting)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
