package domain

import (
	"sync"
	"time"

	"github.com/govalues/decimal"
)

// Evaluator runs the validate, parse and compute pipeline.
type Evaluator func(RawInput) (Evaluation, error)

// Form is the state behind one calculator screen: the current raw input,
// which fields the user has interacted with, and the evaluation of the
// current input. Form is not safe for concurrent use; see Session.
type Form struct {
	Input      RawInput
	Touched    FieldSet
	Evaluation Evaluation
	Err        error // arithmetic failure of the last recompute, if any

	evaluate Evaluator
}

// NewForm creates a form holding in and evaluates it once.
func NewForm(in RawInput, evaluate Evaluator) *Form {
	f := &Form{Input: in, evaluate: evaluate}
	f.Recompute()
	return f
}

// Set stores a new value for field and recomputes the evaluation.
func (f *Form) Set(field Field, value string) {
	f.Input.Set(field, value)
	f.Recompute()
}

// Touch marks field as interacted with, enabling display of its error.
func (f *Form) Touch(field Field) {
	f.Touched = f.Touched.Add(field)
}

// Recompute re-runs the pipeline over the current input.
func (f *Form) Recompute() {
	ev, err := f.evaluate(f.Input)
	if err != nil {
		ev = Evaluation{}
	}
	f.Evaluation = ev
	f.Err = err
}

// FormView is a snapshot of a form as a UI should render it.
type FormView struct {
	Input     RawInput
	Touched   FieldSet
	Result    decimal.Decimal
	HasResult bool
	Errors    []FieldError // touched fields only
	Err       error
}

// View returns the renderable state. Errors of untouched fields are
// suppressed; the result is cleared whenever any field is invalid.
func (f *Form) View() FormView {
	v := FormView{
		Input:     f.Input,
		Touched:   f.Touched,
		Result:    f.Evaluation.Result,
		HasResult: f.Evaluation.HasResult,
		Errors:    make([]FieldError, 0, len(f.Evaluation.Errors)),
		Err:       f.Err,
	}
	for _, fe := range f.Evaluation.Errors {
		if f.Touched.Has(fe.Field) {
			v.Errors = append(v.Errors, fe)
		}
	}
	return v
}

// Session is a form kept server-side between requests.
type Session struct {
	SessionID    string
	Form         *Form
	CreatedAt    time.Time
	LastAccessAt time.Time
	Mu           sync.Mutex // guards Form and LastAccessAt
}
