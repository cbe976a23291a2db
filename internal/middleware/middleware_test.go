package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// ============================================================================
// Chain Tests
// ============================================================================

func TestChain_AppliesInOrder(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("H"))
	})

	mw := func(tag string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tag))
				next.ServeHTTP(w, r)
			})
		}
	}

	result := Chain(handler, mw("1"), mw("2"), mw("3"))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rr := httptest.NewRecorder()
	result.ServeHTTP(rr, req)

	if rr.Body.String() != "123H" {
		t.Errorf("expected '123H', got %q", rr.Body.String())
	}
}

// ============================================================================
// RequestID Tests
// ============================================================================

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	t.Parallel()

	var captured string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = GetRequestID(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rr := httptest.NewRecorder()
	RequestID(handler).ServeHTTP(rr, req)

	if captured == "" {
		t.Error("expected request ID in context")
	}
	if rr.Header().Get("X-Request-ID") != captured {
		t.Error("expected response header to match context request ID")
	}
}

func TestRequestID_PreservesIncomingHeader(t *testing.T) {
	t.Parallel()

	var captured string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = GetRequestID(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("X-Request-ID", "upstream-id")
	rr := httptest.NewRecorder()
	RequestID(handler).ServeHTTP(rr, req)

	if captured != "upstream-id" {
		t.Errorf("expected 'upstream-id', got %q", captured)
	}
}

// ============================================================================
// MethodOverride Tests
// ============================================================================

func overrideRequest(method, body string) *http.Request {
	req := httptest.NewRequest(method, "/campgrounds/abc", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestMethodOverride_RewritesPostToPut(t *testing.T) {
	t.Parallel()

	var method string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
	})

	req := overrideRequest(http.MethodPost, "_method=PUT&title=Lakeview")
	MethodOverride(handler).ServeHTTP(httptest.NewRecorder(), req)

	if method != http.MethodPut {
		t.Errorf("expected PUT, got %s", method)
	}
}

func TestMethodOverride_RewritesPostToDelete(t *testing.T) {
	t.Parallel()

	var method string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
	})

	req := overrideRequest(http.MethodPost, "_method=DELETE")
	MethodOverride(handler).ServeHTTP(httptest.NewRecorder(), req)

	if method != http.MethodDelete {
		t.Errorf("expected DELETE, got %s", method)
	}
}

func TestMethodOverride_KeepsFormValuesReadable(t *testing.T) {
	t.Parallel()

	var title string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		title = r.PostFormValue("title")
	})

	req := overrideRequest(http.MethodPost, "_method=PUT&title=Lakeview")
	MethodOverride(handler).ServeHTTP(httptest.NewRecorder(), req)

	if title != "Lakeview" {
		t.Errorf("expected form value to survive the override parse, got %q", title)
	}
}

func TestMethodOverride_IgnoresUnknownAndNonPost(t *testing.T) {
	t.Parallel()

	var method string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
	})

	req := overrideRequest(http.MethodPost, "_method=PATCH")
	MethodOverride(handler).ServeHTTP(httptest.NewRecorder(), req)
	if method != http.MethodPost {
		t.Errorf("unknown override must be ignored, got %s", method)
	}

	req = httptest.NewRequest(http.MethodGet, "/campgrounds?_method=DELETE", nil)
	MethodOverride(handler).ServeHTTP(httptest.NewRecorder(), req)
	if method != http.MethodGet {
		t.Errorf("GET must never be overridden, got %s", method)
	}
}

// ============================================================================
// Recovery Tests
// ============================================================================

func TestRecovery_RendersInjectedErrorPage(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	render := func(w http.ResponseWriter, r *http.Request, status int, message string) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(message))
	}

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rr := httptest.NewRecorder()
	Recovery(render)(handler).ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rr.Code)
	}
	if rr.Body.String() != "Something went wrong." {
		t.Errorf("expected generic message, got %q", rr.Body.String())
	}
}

func TestRecovery_PassesThroughWithoutPanic(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	render := func(w http.ResponseWriter, r *http.Request, status int, message string) {
		t.Error("renderer must not be called on the success path")
	}

	rr := httptest.NewRecorder()
	Recovery(render)(handler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusTeapot {
		t.Errorf("expected handler status, got %d", rr.Code)
	}
}
