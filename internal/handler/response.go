package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/efreitasn/fuelcalc/internal/domain"
)

// WriteJSON writes a JSON response with the given status code and data.
// Sets Content-Type to application/json before writing the status code.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data) // Write error intentionally ignored in response helper
}

// errorResponse is the standard error response format.
type errorResponse struct {
	Error   string               `json:"error"`
	Message string               `json:"message"`
	Fields  []fieldErrorResponse `json:"fields,omitempty"`
}

// fieldErrorResponse describes one invalid calculator input.
type fieldErrorResponse struct {
	Field   string `json:"field"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// WriteError writes a standard error response with the given status code,
// error code, and human-readable message.
func WriteError(w http.ResponseWriter, status int, errorCode, message string) {
	WriteJSON(w, status, errorResponse{
		Error:   errorCode,
		Message: message,
	})
}

// WriteFieldErrors writes a 422 response listing every invalid field.
func WriteFieldErrors(w http.ResponseWriter, errs []domain.FieldError) {
	WriteJSON(w, http.StatusUnprocessableEntity, errorResponse{
		Error:   "validation_error",
		Message: "One or more fields are invalid",
		Fields:  toFieldErrorResponses(errs),
	})
}

func toFieldErrorResponses(errs []domain.FieldError) []fieldErrorResponse {
	out := make([]fieldErrorResponse, len(errs))
	for i, fe := range errs {
		out[i] = fieldErrorResponse{
			Field:   fe.Field.String(),
			Kind:    string(fe.Kind),
			Message: fe.Kind.Message(),
		}
	}
	return out
}

// ParseJSON decodes the request body as JSON into v.
// It validates that the Content-Type header is application/json and
// returns an error for missing/incorrect content type or malformed JSON.
func ParseJSON(r *http.Request, v any) error {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(ct, "application/json") {
		return fmt.Errorf("Request body must be valid JSON with Content-Type: application/json")
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("Request body must be valid JSON with Content-Type: application/json")
	}

	return nil
}
