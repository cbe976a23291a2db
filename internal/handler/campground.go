package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/forgo/camp/internal/model"
	"github.com/forgo/camp/internal/service"
)

// CampgroundService defines the campground pipeline operations
type CampgroundService interface {
	List(ctx context.Context) ([]*model.Campground, error)
	Get(ctx context.Context, id string) (*model.Campground, error)
	Create(ctx context.Context, form model.CampgroundForm) (string, error)
	Update(ctx context.Context, id string, form model.CampgroundForm) error
	Delete(ctx context.Context, id string) error
}

// CampgroundHandler handles campground routes
type CampgroundHandler struct {
	service CampgroundService
	pages   *Pages
}

// NewCampgroundHandler creates a new campground handler
func NewCampgroundHandler(service CampgroundService, pages *Pages) *CampgroundHandler {
	return &CampgroundHandler{service: service, pages: pages}
}

// Index handles GET /campgrounds
func (h *CampgroundHandler) Index(w http.ResponseWriter, r *http.Request) {
	campgrounds, err := h.service.List(r.Context())
	if err != nil {
		h.pages.Error(w, r, err)
		return
	}
	h.pages.Render(w, r, http.StatusOK, "campgrounds/index", "Campgrounds", campgrounds)
}

// New handles GET /campgrounds/new
func (h *CampgroundHandler) New(w http.ResponseWriter, r *http.Request) {
	h.pages.Render(w, r, http.StatusOK, "campgrounds/new", "New Campground", model.CampgroundForm{})
}

// Show handles GET /campgrounds/{id}. A missing campground redirects back to
// the list with a notice instead of a hard 404.
func (h *CampgroundHandler) Show(w http.ResponseWriter, r *http.Request) {
	campground, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrCampgroundNotFound) {
			h.pages.Flash(r, model.FlashError, "Campground not found.")
			h.pages.Redirect(w, r, "/campgrounds")
			return
		}
		h.pages.Error(w, r, err)
		return
	}
	h.pages.Render(w, r, http.StatusOK, "campgrounds/show", campground.Title, campground)
}

// Edit handles GET /campgrounds/{id}/edit
func (h *CampgroundHandler) Edit(w http.ResponseWriter, r *http.Request) {
	campground, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrCampgroundNotFound) {
			h.pages.Flash(r, model.FlashError, "Campground not found.")
			h.pages.Redirect(w, r, "/campgrounds")
			return
		}
		h.pages.Error(w, r, err)
		return
	}
	h.pages.Render(w, r, http.StatusOK, "campgrounds/edit", "Edit "+campground.Title, campground)
}

// Create handles POST /campgrounds
func (h *CampgroundHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, err := h.service.Create(r.Context(), campgroundForm(r))
	if err != nil {
		h.pages.Error(w, r, err)
		return
	}

	h.pages.Flash(r, model.FlashSuccess, "Successfully made a new campground!")
	h.pages.Redirect(w, r, "/campgrounds/"+id)
}

// Update handles PUT /campgrounds/{id}
func (h *CampgroundHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.service.Update(r.Context(), id, campgroundForm(r)); err != nil {
		h.pages.Error(w, r, err)
		return
	}

	h.pages.Flash(r, model.FlashSuccess, "Successfully updated the campground.")
	h.pages.Redirect(w, r, "/campgrounds/"+id)
}

// Delete handles DELETE /campgrounds/{id}, cascading to owned reviews
func (h *CampgroundHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.pages.Error(w, r, err)
		return
	}

	h.pages.Flash(r, model.FlashSuccess, "Successfully deleted the campground.")
	h.pages.Redirect(w, r, "/campgrounds")
}

func campgroundForm(r *http.Request) model.CampgroundForm {
	return model.CampgroundForm{
		Title:       r.PostFormValue("title"),
		Image:       r.PostFormValue("image"),
		Price:       r.PostFormValue("price"),
		Description: r.PostFormValue("description"),
		Location:    r.PostFormValue("location"),
	}
}
