package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/doctor-registration/internal/models"
	"github.com/harentsoaR/doctor-registration/internal/monitoring"
	"github.com/harentsoaR/doctor-registration/internal/registration"
	"github.com/harentsoaR/doctor-registration/internal/services"
)

type validateStepRequest struct {
	Step   *int           `json:"step" binding:"required"`
	Values map[string]any `json:"values"`
}

type navigateRequest struct {
	CurrentStep int            `json:"current_step"`
	Direction   string         `json:"direction" binding:"required,oneof=next prev"`
	Values      map[string]any `json:"values"`
}

type submitRequest struct {
	Values map[string]any `json:"values" binding:"required"`
}

// GetRegistrationSchema describes the wizard so a client can render it.
func (h *Handler) GetRegistrationSchema(c *gin.Context) {
	schema := h.Wizard.Schema()
	var optional []string
	for _, name := range registration.FieldNames() {
		if schema.Optional(name) {
			optional = append(optional, name)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"steps":       registration.Steps(),
		"departments": registration.Departments,
		"genders":     registration.Genders,
		"optional":    optional,
		"defaults":    registration.NewState().Values,
	})
}

// ValidateRegistrationStep checks one step of a posted form.
func (h *Handler) ValidateRegistrationStep(c *gin.Context) {
	var req validateStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	step := registration.Step(*req.Step)
	if !step.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown step"})
		return
	}

	state, ok := h.loadState(c, step, req.Values)
	if !ok {
		return
	}

	state, valid := h.Wizard.ValidateStep(state, step)
	if !valid {
		monitoring.ValidationFailures.WithLabelValues(step.Key()).Inc()
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":  valid,
		"step":   step,
		"errors": stepErrors(state, step),
		"notice": state.Notice,
	})
}

// NavigateRegistration applies goNext or goPrev to a posted form and
// returns the resulting state.
func (h *Handler) NavigateRegistration(c *gin.Context) {
	var req navigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	current := registration.Step(req.CurrentStep)
	if !current.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown step"})
		return
	}

	state, ok := h.loadState(c, current, req.Values)
	if !ok {
		return
	}

	var next registration.State
	if req.Direction == "next" {
		next = h.Wizard.GoNext(state)
		if next.CurrentStep == current && next.Notice != "" {
			monitoring.ValidationFailures.WithLabelValues(current.Key()).Inc()
		}
	} else {
		next = h.Wizard.GoPrev(state)
	}

	c.JSON(http.StatusOK, next)
}

// SubmitRegistration validates the whole form, transforms it into the
// wire shape and relays it upstream.
func (h *Handler) SubmitRegistration(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, ok := h.loadState(c, registration.StepIdentity, req.Values)
	if !ok {
		return
	}

	record, err := h.Wizard.Submit(state)
	if err != nil {
		var verrs registration.ValidationErrors
		if !errors.As(err, &verrs) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate registration"})
			return
		}
		first := verrs.FirstStep()
		monitoring.ValidationFailures.WithLabelValues(first.Key()).Inc()
		c.JSON(http.StatusUnprocessableEntity, models.ErrorEnvelope{
			Error:   "Validation failed",
			Message: registration.StepNotice,
			Details: gin.H{
				"fields":     verrs.ByField(),
				"first_step": first,
			},
		})
		return
	}

	body, err := json.Marshal(record)
	if err != nil {
		log.Printf("SubmitRegistration: failed to encode record: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode registration"})
		return
	}

	h.relay(c, services.RelayRequest{Method: http.MethodPost, Body: body}, doctorSummary{
		DoctorID:   record.DoctorID,
		Department: record.Department,
	})
}

// loadState builds a wizard state from posted values. It writes a 400 and
// returns false on unknown fields or non string/boolean values.
func (h *Handler) loadState(c *gin.Context, step registration.Step, values map[string]any) (registration.State, bool) {
	state := registration.NewState()
	state.CurrentStep = step

	state, err := h.Wizard.SetFields(state, values)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return state, false
	}
	return state, true
}

func stepErrors(s registration.State, step registration.Step) map[string]string {
	out := map[string]string{}
	for _, name := range step.Fields() {
		if msg, ok := s.Errors[name]; ok {
			out[name] = msg
		}
	}
	return out
}
