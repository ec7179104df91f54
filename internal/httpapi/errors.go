package httpapi

import (
	"errors"
	"net/http"

	"github.com/mcdaley/dough-app/internal/errs"
)

// messageResponse is the single-message payload used for not-found and other
// non-field errors.
type messageResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// fieldError is one per-field validation descriptor.
type fieldError struct {
	Code     int    `json:"code"`
	Category string `json:"category"`
	Path     string `json:"path"`
	Message  string `json:"message"`
}

// validationResponse wraps per-field errors for 400 replies.
type validationResponse struct {
	Errors []fieldError `json:"errors"`
}

const validationCode = 701

func notFound(w http.ResponseWriter, resource string) {
	toJSON(w, http.StatusNotFound, messageResponse{Code: http.StatusNotFound, Message: resource + " not found"})
}

func badRequest(w http.ResponseWriter, fields ...fieldError) {
	toJSON(w, http.StatusBadRequest, validationResponse{Errors: fields})
}

func serverError(w http.ResponseWriter) {
	toJSON(w, http.StatusInternalServerError, messageResponse{
		Code:    http.StatusInternalServerError,
		Message: "Unable to process the request",
	})
}

// writeServiceError maps service-layer errors onto the wire shapes: typed
// validation failures become per-field descriptors, not-found stays a plain
// 404, anything else is a 500.
func writeServiceError(w http.ResponseWriter, err error) {
	var verr *errs.ValidationError
	if errors.As(err, &verr) {
		badRequest(w, fieldError{
			Code:     validationCode,
			Category: "ValidationError",
			Path:     verr.Field,
			Message:  verr.Message,
		})
		return
	}
	var nferr *errs.NotFoundError
	if errors.As(err, &nferr) {
		notFound(w, titleCase(nferr.Resource))
		return
	}
	if errors.Is(err, errs.ErrNotFound) {
		notFound(w, "Resource")
		return
	}
	serverError(w)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if 'a' <= b[0] && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
