package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/forgo/camp/internal/model"
)

// Mock implementations

type mockResolver struct {
	sessions map[string]*model.Session
	started  int
}

func newMockResolver() *mockResolver {
	return &mockResolver{sessions: make(map[string]*model.Session)}
}

func (m *mockResolver) Resolve(ctx context.Context, token string) (*model.Session, error) {
	return m.sessions[token], nil
}

func (m *mockResolver) Start(ctx context.Context, userID string) (*model.Session, error) {
	m.started++
	session := &model.Session{
		ID:     "session:new",
		Token:  "fresh-token",
		UserID: userID,
	}
	m.sessions[session.Token] = session
	return session, nil
}

type mockUserLoader struct {
	users map[string]*model.User
}

func (m *mockUserLoader) GetUser(ctx context.Context, id string) (*model.User, error) {
	return m.users[id], nil
}

func testCookie() CookieConfig {
	return CookieConfig{Name: "camp_session", MaxAge: time.Hour}
}

// ============================================================================
// Session Tests
// ============================================================================

func TestSession_ResolvesCookieIntoContext(t *testing.T) {
	t.Parallel()

	resolver := newMockResolver()
	resolver.sessions["tok"] = &model.Session{ID: "session:a", Token: "tok", UserID: "user:a"}
	users := &mockUserLoader{users: map[string]*model.User{
		"user:a": {ID: "user:a", Email: "a@x.com"},
	}}

	var session *model.Session
	var user *model.User
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session = GetSession(r.Context())
		user = GetCurrentUser(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/campgrounds", nil)
	req.AddCookie(&http.Cookie{Name: "camp_session", Value: "tok"})
	Session(resolver, users, testCookie())(handler).ServeHTTP(httptest.NewRecorder(), req)

	if session == nil || session.ID != "session:a" {
		t.Fatalf("expected resolved session in context, got %+v", session)
	}
	if user == nil || user.Email != "a@x.com" {
		t.Fatalf("expected current user in context, got %+v", user)
	}
	if resolver.started != 0 {
		t.Error("a live session must not be replaced")
	}
}

func TestSession_AnonymousGetsFreshSessionAndCookie(t *testing.T) {
	t.Parallel()

	resolver := newMockResolver()
	users := &mockUserLoader{users: map[string]*model.User{}}

	var session *model.Session
	var user *model.User
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session = GetSession(r.Context())
		user = GetCurrentUser(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/campgrounds", nil)
	rr := httptest.NewRecorder()
	Session(resolver, users, testCookie())(handler).ServeHTTP(rr, req)

	if resolver.started != 1 {
		t.Fatalf("expected one anonymous session start, got %d", resolver.started)
	}
	if session == nil || session.Token != "fresh-token" {
		t.Fatalf("expected fresh session in context, got %+v", session)
	}
	if user != nil {
		t.Errorf("anonymous request must have no current user, got %+v", user)
	}

	cookies := rr.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	c := cookies[0]
	if c.Value != "fresh-token" {
		t.Errorf("expected cookie to carry the new token, got %q", c.Value)
	}
	if !c.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}
	if c.SameSite != http.SameSiteLaxMode {
		t.Error("session cookie must be SameSite Lax")
	}
}

func TestSession_StaleCookieIsReplaced(t *testing.T) {
	t.Parallel()

	resolver := newMockResolver()
	users := &mockUserLoader{users: map[string]*model.User{}}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/campgrounds", nil)
	req.AddCookie(&http.Cookie{Name: "camp_session", Value: "expired-token"})
	rr := httptest.NewRecorder()
	Session(resolver, users, testCookie())(handler).ServeHTTP(rr, req)

	if resolver.started != 1 {
		t.Fatalf("expected the dead token to be replaced, got %d starts", resolver.started)
	}
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value != "fresh-token" {
		t.Error("expected the replacement token to be set on the response")
	}
}

// ============================================================================
// ClearSessionCookie Tests
// ============================================================================

func TestClearSessionCookie_Expires(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	testCookie().ClearSessionCookie(rr)

	cookies := rr.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	if cookies[0].MaxAge >= 0 {
		t.Errorf("expected a negative MaxAge to expire the cookie, got %d", cookies[0].MaxAge)
	}
	if cookies[0].Value != "" {
		t.Errorf("expected an empty value, got %q", cookies[0].Value)
	}
}
