// Package handler wires HTTP requests to the service layer and renders the
// resulting pages. All error-to-response mapping happens in the error mapper;
// handlers never pick status codes themselves.
package handler

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"

	"github.com/forgo/camp/internal/middleware"
	"github.com/forgo/camp/internal/model"
	"github.com/forgo/camp/internal/view"
)

// FlashService defines the flash operations handlers need
type FlashService interface {
	AddFlash(ctx context.Context, session *model.Session, category, message string) error
	PopFlash(ctx context.Context, session *model.Session) (map[string][]string, error)
}

// Pages renders views with the per-request identity and flash context
// threaded in.
type Pages struct {
	views   *view.Renderer
	flashes FlashService
}

// NewPages creates the shared page renderer
func NewPages(views *view.Renderer, flashes FlashService) *Pages {
	return &Pages{views: views, flashes: flashes}
}

// Render writes the named view with the given status. Flash queues are
// drained here: rendering is the single delivery point, so a message shows
// exactly once.
func (p *Pages) Render(w http.ResponseWriter, r *http.Request, status int, name, title string, data interface{}) {
	ctx := r.Context()

	flash, err := p.flashes.PopFlash(ctx, middleware.GetSession(ctx))
	if err != nil {
		slog.Error("flash drain failed",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetRequestID(ctx)),
		)
		flash = map[string][]string{}
	}

	page := view.PageData{
		Title:       title,
		CurrentUser: middleware.GetCurrentUser(ctx),
		Success:     flash[model.FlashSuccess],
		Error:       flash[model.FlashError],
		Data:        data,
	}

	var buf bytes.Buffer
	if err := p.views.Render(&buf, name, page); err != nil {
		slog.Error("render failed",
			slog.String("view", name),
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetRequestID(ctx)),
		)
		http.Error(w, "Something went wrong.", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// errorPage is the data the error view renders
type errorPage struct {
	Status  int
	Message string
}

// RenderError renders the dedicated error page
func (p *Pages) RenderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	p.Render(w, r, status, "error", "Error", errorPage{Status: status, Message: message})
}

// Error translates a pipeline failure and renders it. This is the single
// terminal stage for failures that do not resolve to redirect-with-notice.
func (p *Pages) Error(w http.ResponseWriter, r *http.Request, err error) {
	status, message := MapError(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed",
			slog.String("error", err.Error()),
			slog.String("path", r.URL.Path),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
		)
	}
	p.RenderError(w, r, status, message)
}

// Flash enqueues a message on the current session
func (p *Pages) Flash(r *http.Request, category, message string) {
	ctx := r.Context()
	if err := p.flashes.AddFlash(ctx, middleware.GetSession(ctx), category, message); err != nil {
		slog.Error("flash enqueue failed",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetRequestID(ctx)),
		)
	}
}

// Redirect sends a see-other redirect, the response for every successful
// state change
func (p *Pages) Redirect(w http.ResponseWriter, r *http.Request, url string) {
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// Home renders the landing page
func (p *Pages) Home(w http.ResponseWriter, r *http.Request) {
	p.Render(w, r, http.StatusOK, "home", "", nil)
}

// NotFound is the terminal stage for unmatched routes: the miss is injected
// into the same error translation as every other failure.
func (p *Pages) NotFound(w http.ResponseWriter, r *http.Request) {
	p.RenderError(w, r, http.StatusNotFound, "Page not found.")
}
