package registration

import (
	"errors"
	"fmt"
	"maps"
	"strconv"
	"strings"
	"time"

	"github.com/harentsoaR/doctor-registration/internal/models"
)

var (
	ErrUnknownField = errors.New("unknown field")
	ErrInvalidValue = errors.New("invalid field value")
)

// StepNotice is the summary shown when a step fails validation.
const StepNotice = "Please correct the highlighted fields before continuing."

// State is the whole wizard state. Transitions never modify their input;
// they return a new State.
type State struct {
	CurrentStep Step              `json:"current_step"`
	Values      map[string]string `json:"values"`
	Errors      map[string]string `json:"errors,omitempty"`
	Notice      string            `json:"notice,omitempty"`
}

// FieldError is a validation failure on one field.
type FieldError struct {
	Field   string `json:"field"`
	Step    Step   `json:"step"`
	Message string `json:"message"`
}

// ValidationErrors is returned by Submit when any field fails.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(parts, "; "))
}

// ByField flattens the errors into a field -> message map.
func (v ValidationErrors) ByField() map[string]string {
	out := make(map[string]string, len(v))
	for _, fe := range v {
		out[fe.Field] = fe.Message
	}
	return out
}

// FirstStep is the lowest step holding an error, or -1 when there is none.
func (v ValidationErrors) FirstStep() Step {
	first := Step(-1)
	for _, fe := range v {
		if first < 0 || fe.Step < first {
			first = fe.Step
		}
	}
	return first
}

// NewState returns an empty form positioned on the first step.
func NewState() State {
	values := make(map[string]string, len(fieldOrder))
	for _, f := range fieldOrder {
		values[f] = ""
	}
	values[FieldIsAvailable] = "true"
	return State{CurrentStep: StepIdentity, Values: values}
}

// Reset discards everything entered so far.
func (s State) Reset() State {
	return NewState()
}

func (s State) clone() State {
	out := s
	out.Values = maps.Clone(s.Values)
	if out.Values == nil {
		out.Values = map[string]string{}
	}
	out.Errors = maps.Clone(s.Errors)
	return out
}

// Controller evaluates a Schema against wizard states.
type Controller struct {
	schema Schema
	now    func() time.Time
}

// NewController uses DefaultSchema. A nil now means time.Now.
func NewController(now func() time.Time) *Controller {
	return NewControllerWithSchema(DefaultSchema(), now)
}

// NewControllerWithSchema validates against schema instead of DefaultSchema.
func NewControllerWithSchema(schema Schema, now func() time.Time) *Controller {
	if now == nil {
		now = time.Now
	}
	return &Controller{schema: schema, now: now}
}

// Schema returns the rules the controller validates with.
func (c *Controller) Schema() Schema { return c.schema }

// SetField stores value under name. Strings are kept raw; booleans are
// stored as "true"/"false".
func (c *Controller) SetField(s State, name string, value any) (State, error) {
	if !isKnownField(name) {
		return s, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}

	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case bool:
		raw = strconv.FormatBool(v)
	case nil:
		raw = ""
	default:
		return s, fmt.Errorf("%w: %q expects a string or boolean, got %T", ErrInvalidValue, name, value)
	}

	next := s.clone()
	next.Values[name] = raw
	if _, had := next.Errors[name]; had {
		delete(next.Errors, name)
		if len(next.Errors) == 0 {
			next.Errors = nil
			next.Notice = ""
		}
	}
	return next, nil
}

// SetFields applies SetField for every entry of values, in wizard order.
// On error s is returned unchanged.
func (c *Controller) SetFields(s State, values map[string]any) (State, error) {
	for name := range values {
		if !isKnownField(name) {
			return s, fmt.Errorf("%w: %q", ErrUnknownField, name)
		}
	}
	next := s
	for _, name := range fieldOrder {
		v, ok := values[name]
		if !ok {
			continue
		}
		var err error
		if next, err = c.SetField(next, name, v); err != nil {
			return s, err
		}
	}
	return next, nil
}

// ValidateStep checks only the fields of step. Errors of other steps are
// left untouched; entered values are never changed.
func (c *Controller) ValidateStep(s State, step Step) (State, bool) {
	next := s.clone()
	if !step.Valid() {
		return next, false
	}

	now := c.now()
	valid := true
	for _, name := range step.Fields() {
		if msg := c.schema.Check(name, next.Values[name], now); msg != "" {
			if next.Errors == nil {
				next.Errors = map[string]string{}
			}
			next.Errors[name] = msg
			valid = false
		} else {
			delete(next.Errors, name)
		}
	}

	if len(next.Errors) == 0 {
		next.Errors = nil
	}
	if valid {
		next.Notice = ""
	} else {
		next.Notice = StepNotice
	}
	return next, valid
}

// GoNext advances one step when the current step validates. It is a
// no-op on the last step.
func (c *Controller) GoNext(s State) State {
	if int(s.CurrentStep) >= len(steps)-1 {
		return s.clone()
	}
	next, ok := c.ValidateStep(s, s.CurrentStep)
	if ok {
		next.CurrentStep++
	}
	return next
}

// GoPrev moves back one step without validating. It is a no-op on the
// first step.
func (c *Controller) GoPrev(s State) State {
	next := s.clone()
	if next.CurrentStep > StepIdentity {
		next.CurrentStep--
	}
	return next
}

// Validate checks every field and returns the failures in wizard order.
func (c *Controller) Validate(s State) ValidationErrors {
	now := c.now()
	var errs ValidationErrors
	for _, name := range fieldOrder {
		if msg := c.schema.Check(name, s.Values[name], now); msg != "" {
			errs = append(errs, FieldError{Field: name, Step: fieldStep[name], Message: msg})
		}
	}
	return errs
}

// Submit validates the whole form and transforms it into the wire shape.
// The returned error is a ValidationErrors.
func (c *Controller) Submit(s State) (models.DoctorRecord, error) {
	if errs := c.Validate(s); len(errs) > 0 {
		return models.DoctorRecord{}, errs
	}
	return Transform(s.Values), nil
}
