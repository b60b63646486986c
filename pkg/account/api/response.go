package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/edustack/academy-idm/pkg/errors"
)

// Response is a common response wrapper for all account API calls
type Response struct {
	body        interface{}
	Code        int
	contentType string
}

// Render writes the response to the http.ResponseWriter
func (resp *Response) Render(w http.ResponseWriter) {
	if resp.contentType == "" {
		resp.contentType = "application/json"
	}
	w.Header().Set("Content-Type", resp.contentType)
	w.WriteHeader(resp.Code)
	if resp.body != nil {
		json.NewEncoder(w).Encode(resp.body)
	}
}

// JSONResponse builds a JSON response with the given status code
func JSONResponse(code int, body interface{}) *Response {
	return &Response{
		body: body,
		Code: code,
	}
}

// ErrorResponse maps a service error to an HTTP error response
func ErrorResponse(err error) *Response {
	code := errors.GetCode(err)
	return &Response{
		Code: errors.MapErrorCodeToHTTPStatus(code),
		body: map[string]string{
			"code":    string(code),
			"message": err.Error(),
		},
	}
}

// Handler returns an http.Handler serving the account API
func Handler(h *Handle) http.Handler {
	r := chi.NewRouter()
	r.Post("/", wrap(h.Create))
	r.Get("/{id}", wrap(h.Get))
	r.Get("/{id}/profile", wrap(h.GetProfile))
	r.Put("/{id}", wrap(h.UpdateProfile))
	r.Put("/{id}/role", wrap(h.AssignRole))
	r.Put("/{id}/password", wrap(h.ChangePassword))
	r.Post("/{id}/login", wrap(h.RecordLogin))
	return r
}

func wrap(fn func(w http.ResponseWriter, r *http.Request) *Response) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if resp := fn(w, r); resp != nil {
			resp.Render(w)
		}
	}
}
