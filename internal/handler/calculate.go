package handler

import (
	"errors"
	"net/http"

	"github.com/efreitasn/fuelcalc/internal/domain"
	"github.com/efreitasn/fuelcalc/internal/service"
	"github.com/efreitasn/fuelcalc/internal/urlstate"
)

// CalculateHandler serves stateless evaluations.
type CalculateHandler struct {
	calc *service.CalculatorService
}

// NewCalculateHandler creates a new CalculateHandler.
func NewCalculateHandler(calc *service.CalculatorService) *CalculateHandler {
	return &CalculateHandler{calc: calc}
}

// inputRequest carries the three raw fields. Values are strings so that
// comma separators and invalid text reach the validator untouched.
type inputRequest struct {
	Distance        string `json:"distance"`
	FuelConsumption string `json:"fuel_consumption"`
	FuelPrice       string `json:"fuel_price"`
}

func (r inputRequest) raw() domain.RawInput {
	return domain.RawInput{
		Distance:        r.Distance,
		FuelConsumption: r.FuelConsumption,
		FuelPrice:       r.FuelPrice,
	}
}

// present reports the fields that carry a non-empty value.
func (r inputRequest) present() domain.FieldSet {
	var set domain.FieldSet
	in := r.raw()
	for _, f := range domain.Fields {
		if in.Get(f) != "" {
			set = set.Add(f)
		}
	}
	return set
}

// inputResponse echoes the raw fields.
type inputResponse struct {
	Distance        string `json:"distance"`
	FuelConsumption string `json:"fuel_consumption"`
	FuelPrice       string `json:"fuel_price"`
}

func toInputResponse(in domain.RawInput) inputResponse {
	return inputResponse{
		Distance:        in.Distance,
		FuelConsumption: in.FuelConsumption,
		FuelPrice:       in.FuelPrice,
	}
}

// calculationResponse is the JSON response for a successful calculation.
// Result is the unrounded decimal; Display is rounded to two places.
type calculationResponse struct {
	Input      inputResponse `json:"input"`
	Result     string        `json:"result"`
	Display    string        `json:"display"`
	Currency   string        `json:"currency"`
	ShareQuery string        `json:"share_query"`
}

// Get handles GET /calculate?d=&c=&p=.
func (h *CalculateHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.respond(w, urlstate.Decode(r.URL.Query()))
}

// Post handles POST /calculate.
func (h *CalculateHandler) Post(w http.ResponseWriter, r *http.Request) {
	var req inputRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	h.respond(w, req.raw())
}

func (h *CalculateHandler) respond(w http.ResponseWriter, in domain.RawInput) {
	calc, err := h.calc.Calculate(in)
	if err != nil {
		mapCalculateError(w, err)
		return
	}
	if !calc.Evaluation.HasResult {
		WriteFieldErrors(w, calc.Evaluation.Errors)
		return
	}

	WriteJSON(w, http.StatusOK, calculationResponse{
		Input:      toInputResponse(in),
		Result:     calc.Evaluation.Result.String(),
		Display:    calc.Display,
		Currency:   calc.Cost.Curr().Code(),
		ShareQuery: urlstate.Query(in),
	})
}

// mapCalculateError maps domain errors to HTTP responses for calculation
// endpoints.
func mapCalculateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrOverflow):
		WriteError(w, http.StatusUnprocessableEntity, "overflow", "The result is too large to compute")
	default:
		WriteError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
