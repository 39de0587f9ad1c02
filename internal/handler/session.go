package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/efreitasn/fuelcalc/internal/domain"
	"github.com/efreitasn/fuelcalc/internal/service"
	"github.com/efreitasn/fuelcalc/internal/urlstate"
	"github.com/go-chi/chi/v5"
)

// SessionHandler handles HTTP requests for calculator form sessions.
type SessionHandler struct {
	sessionSvc *service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionSvc *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc}
}

// setFieldRequest is the JSON request body for PUT /sessions/{session_id}/fields/{field}.
type setFieldRequest struct {
	Value string `json:"value"`
}

// sessionResponse is the JSON form view of a session. Result is null
// whenever any field is invalid; Errors only lists touched fields.
type sessionResponse struct {
	SessionID string               `json:"session_id"`
	Input     inputResponse        `json:"input"`
	Touched   []string             `json:"touched"`
	Result    *string              `json:"result"`
	Display   string               `json:"display,omitempty"`
	Errors    []fieldErrorResponse `json:"errors"`
	Error     string               `json:"error,omitempty"`
	ExpiresAt string               `json:"expires_at"`
}

// shareResponse is the JSON response for GET /sessions/{session_id}/share.
type shareResponse struct {
	SessionID string `json:"session_id"`
	Query     string `json:"query"`
}

// Create handles POST /sessions. The initial input comes from a JSON body
// when one is sent, otherwise from the d, c and p query parameters.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var (
		in      domain.RawInput
		touched domain.FieldSet
	)
	if r.ContentLength != 0 {
		var req inputRequest
		if err := ParseJSON(r, &req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		in, touched = req.raw(), req.present()
	} else {
		q := r.URL.Query()
		in, touched = urlstate.Decode(q), urlstate.Present(q)
	}

	view, err := h.sessionSvc.Create(in, touched)
	if err != nil {
		mapSessionError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, toSessionResponse(view))
}

// Get handles GET /sessions/{session_id}.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.sessionSvc.Get(chi.URLParam(r, "session_id"))
	if err != nil {
		mapSessionError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, toSessionResponse(view))
}

// SetField handles PUT /sessions/{session_id}/fields/{field}.
func (h *SessionHandler) SetField(w http.ResponseWriter, r *http.Request) {
	field, err := domain.ParseField(chi.URLParam(r, "field"))
	if err != nil {
		mapSessionError(w, err)
		return
	}

	var req setFieldRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	view, err := h.sessionSvc.SetField(chi.URLParam(r, "session_id"), field, req.Value)
	if err != nil {
		mapSessionError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, toSessionResponse(view))
}

// Touch handles POST /sessions/{session_id}/fields/{field}/touch.
func (h *SessionHandler) Touch(w http.ResponseWriter, r *http.Request) {
	field, err := domain.ParseField(chi.URLParam(r, "field"))
	if err != nil {
		mapSessionError(w, err)
		return
	}

	view, err := h.sessionSvc.Touch(chi.URLParam(r, "session_id"), field)
	if err != nil {
		mapSessionError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, toSessionResponse(view))
}

// Share handles GET /sessions/{session_id}/share.
func (h *SessionHandler) Share(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "session_id")
	query, err := h.sessionSvc.Share(id)
	if err != nil {
		mapSessionError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, shareResponse{SessionID: id, Query: query})
}

// Delete handles DELETE /sessions/{session_id}.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionSvc.Delete(chi.URLParam(r, "session_id")); err != nil {
		mapSessionError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toSessionResponse(v *service.SessionView) sessionResponse {
	resp := sessionResponse{
		SessionID: v.SessionID,
		Input:     toInputResponse(v.View.Input),
		Touched:   make([]string, 0, len(domain.Fields)),
		Display:   v.Display,
		Errors:    toFieldErrorResponses(v.View.Errors),
		ExpiresAt: v.ExpiresAt.UTC().Format(time.RFC3339),
	}
	for _, f := range domain.Fields {
		if v.View.Touched.Has(f) {
			resp.Touched = append(resp.Touched, f.String())
		}
	}
	if v.View.HasResult {
		s := v.View.Result.String()
		resp.Result = &s
	}
	if errors.Is(v.View.Err, domain.ErrOverflow) {
		resp.Error = "overflow"
	}
	return resp
}

// mapSessionError maps domain errors to HTTP responses for session endpoints.
func mapSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		WriteError(w, http.StatusNotFound, "session_not_found", err.Error())
	case errors.Is(err, domain.ErrUnknownField):
		WriteError(w, http.StatusNotFound, "unknown_field", err.Error())
	case errors.Is(err, domain.ErrOverflow):
		WriteError(w, http.StatusUnprocessableEntity, "overflow", "The result is too large to compute")
	default:
		WriteError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
