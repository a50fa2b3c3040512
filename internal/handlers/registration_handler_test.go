package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/harentsoaR/doctor-registration/internal/models"
	"github.com/harentsoaR/doctor-registration/internal/registration"
)

func formValues() map[string]any {
	return map[string]any{
		"doctor_id":            "DOC001",
		"first_name":           "Ana",
		"last_name":            "Ruiz",
		"date_of_birth":        "1990-01-01",
		"gender":               "F",
		"license_number":       "LIC12345",
		"medical_school":       "Universidad X",
		"graduation_year":      "2015",
		"board_certifications": "  ",
		"years_of_experience":  "abc",
		"department":           "Pediatrics",
		"email":                "ana@x.com",
		"phone_number":         "+1 555 123 4567",
		"office_address":       "Calle Mayor 10, Madrid",
		"is_available":         true,
	}
}

func jsonBody(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(b)
}

func TestGetRegistrationSchema(t *testing.T) {
	env := newTestEnv(t, "t", http.StatusOK, `{}`)
	w := env.do(http.MethodGet, "/api/registration/schema", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var body struct {
		Steps    []registration.StepInfo `json:"steps"`
		Optional []string                `json:"optional"`
	}
	decode(t, w, &body)
	if len(body.Steps) != registration.StepCount() {
		t.Errorf("steps = %d", len(body.Steps))
	}
	if len(body.Optional) != 1 || body.Optional[0] != "board_certifications" {
		t.Errorf("optional = %v", body.Optional)
	}
}

func TestValidateRegistrationStep(t *testing.T) {
	env := newTestEnv(t, "t", http.StatusOK, `{}`)

	values := formValues()
	values["doctor_id"] = "doc-1"
	w := env.do(http.MethodPost, "/api/registration/steps/validate", jsonBody(t, map[string]any{
		"step":   0,
		"values": values,
	}))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}

	var body struct {
		Valid  bool              `json:"valid"`
		Errors map[string]string `json:"errors"`
		Notice string            `json:"notice"`
	}
	decode(t, w, &body)
	if body.Valid || body.Errors["doctor_id"] == "" || body.Notice == "" {
		t.Errorf("response = %+v", body)
	}
	if len(body.Errors) != 1 {
		t.Errorf("errors outside the field set: %v", body.Errors)
	}
}

func TestValidateRegistrationStepRejectsBadInput(t *testing.T) {
	env := newTestEnv(t, "t", http.StatusOK, `{}`)

	cases := map[string]string{
		"missing step":  `{"values":{}}`,
		"unknown step":  `{"step":9,"values":{}}`,
		"unknown field": `{"step":0,"values":{"nickname":"x"}}`,
		"number value":  `{"step":1,"values":{"graduation_year":2015}}`,
	}
	for name, body := range cases {
		if w := env.do(http.MethodPost, "/api/registration/steps/validate", body); w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d", name, w.Code)
		}
	}
}

func TestNavigateRegistration(t *testing.T) {
	env := newTestEnv(t, "t", http.StatusOK, `{}`)

	w := env.do(http.MethodPost, "/api/registration/navigate", jsonBody(t, map[string]any{
		"current_step": 0,
		"direction":    "next",
		"values":       formValues(),
	}))
	var state registration.State
	decode(t, w, &state)
	if state.CurrentStep != registration.StepCredentials {
		t.Errorf("next: CurrentStep = %d, errors %v", state.CurrentStep, state.Errors)
	}

	// years_of_experience "abc" blocks the professional step.
	w = env.do(http.MethodPost, "/api/registration/navigate", jsonBody(t, map[string]any{
		"current_step": 2,
		"direction":    "next",
		"values":       formValues(),
	}))
	state = registration.State{}
	decode(t, w, &state)
	if state.CurrentStep != registration.StepProfessional || state.Errors["years_of_experience"] == "" {
		t.Errorf("blocked: %+v", state)
	}

	w = env.do(http.MethodPost, "/api/registration/navigate", jsonBody(t, map[string]any{
		"current_step": 0,
		"direction":    "prev",
		"values":       map[string]any{},
	}))
	state = registration.State{}
	decode(t, w, &state)
	if state.CurrentStep != registration.StepIdentity {
		t.Errorf("prev at first step: %d", state.CurrentStep)
	}

	if w := env.do(http.MethodPost, "/api/registration/navigate", `{"current_step":0,"direction":"sideways"}`); w.Code != http.StatusBadRequest {
		t.Errorf("bad direction: status = %d", w.Code)
	}
}

func TestSubmitRegistrationValidationFailure(t *testing.T) {
	env := newTestEnv(t, "t", http.StatusCreated, `{}`)

	w := env.do(http.MethodPost, "/api/registration/submit", jsonBody(t, map[string]any{"values": formValues()}))
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}
	var envl models.ErrorEnvelope
	decode(t, w, &envl)
	details, _ := envl.Details.(map[string]any)
	fields, _ := details["fields"].(map[string]any)
	if fields["years_of_experience"] == nil {
		t.Errorf("details = %v", envl.Details)
	}
	if env.upstream.seen().calls != 0 {
		t.Error("invalid registration was forwarded")
	}
}

func TestSubmitRegistrationForwardsWireShape(t *testing.T) {
	env := newTestEnv(t, "t", http.StatusCreated, `{"id":9}`)

	values := formValues()
	values["years_of_experience"] = "7"
	w := env.do(http.MethodPost, "/api/registration/submit", jsonBody(t, map[string]any{"values": values}))
	if w.Code != http.StatusCreated || w.Body.String() != `{"id":9}` {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}

	var sent map[string]any
	if err := json.Unmarshal(env.upstream.seen().body, &sent); err != nil {
		t.Fatalf("forwarded body: %v", err)
	}
	if sent["graduation_year"] != float64(2015) || sent["years_of_experience"] != float64(7) {
		t.Errorf("numbers not coerced: %v", sent)
	}
	if sent["status"] != "ACTIVE" || sent["is_available"] != true {
		t.Errorf("status/availability: %v", sent)
	}
	if _, present := sent["board_certifications"]; present {
		t.Error("blank board_certifications forwarded")
	}

	select {
	case ev := <-env.events.published:
		if ev.Department != "Pediatrics" {
			t.Errorf("event = %+v", ev)
		}
	default:
		// published from a goroutine; absence here is not a failure.
	}
}
