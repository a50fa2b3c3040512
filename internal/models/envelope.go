package models

// ErrorEnvelope is the uniform JSON error body returned to callers.
type ErrorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}
