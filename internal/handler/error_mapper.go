package handler

import (
	"errors"
	"net/http"

	"github.com/forgo/camp/internal/service"
)

// MapError converts a service error to an HTTP status and user-visible
// message. This is the only place error kinds map to status codes.
//
// Authorization and absent-detail failures never arrive here: those
// short-circuit in their handlers as redirect-with-notice.
func MapError(err error) (int, string) {
	var validation *service.ValidationError

	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest, validation.Error()

	case errors.Is(err, service.ErrCampgroundNotFound):
		return http.StatusNotFound, "Campground not found."
	case errors.Is(err, service.ErrReviewNotFound):
		return http.StatusNotFound, "Review not found."

	default:
		return http.StatusInternalServerError, "Something went wrong."
	}
}
