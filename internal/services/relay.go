package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/harentsoaR/doctor-registration/internal/config"
	"github.com/harentsoaR/doctor-registration/internal/models"
)

// Outcome labels one relay call for logs, metrics and the audit trail.
type Outcome string

const (
	OutcomeForwarded      Outcome = "forwarded"
	OutcomeUpstreamError  Outcome = "upstream_error"
	OutcomeConfigError    Outcome = "config_error"
	OutcomeTransportError Outcome = "transport_error"
	OutcomeInvalidBody    Outcome = "invalid_body"
)

// ErrTokenNotConfigured is reported when API_TOKEN is empty.
var ErrTokenNotConfigured = errors.New("API_TOKEN is not configured")

// RelayRequest is one call to forward. Path is relative to the doctors
// endpoint ("" for the collection, "42/" for a detail).
type RelayRequest struct {
	Method   string
	Path     string
	RawQuery string
	Body     []byte
}

// RelayResult is what the caller gets back: a status and a JSON body.
type RelayResult struct {
	Status  int
	Body    json.RawMessage
	Outcome Outcome
	Err     error
}

// Forwarder is implemented by Relay; handlers depend on this.
type Forwarder interface {
	Forward(ctx context.Context, req RelayRequest) RelayResult
	Configured() bool
}

// Relay forwards doctor requests to the upstream records API, adding the
// server-held bearer token. It keeps no state between calls.
type Relay struct {
	baseURL string
	token   string
	timeout time.Duration
	client  *http.Client
}

func NewRelay(cfg *config.Config, client *http.Client) *Relay {
	if client == nil {
		client = &http.Client{}
	}
	return &Relay{
		baseURL: strings.TrimRight(cfg.APIBaseURL, "/"),
		token:   cfg.APIToken,
		timeout: cfg.RelayTimeout,
		client:  client,
	}
}

// Configured reports whether an upstream token is set.
func (r *Relay) Configured() bool { return r.token != "" }

// DoctorsURL is the upstream doctors endpoint plus an optional sub path.
func (r *Relay) DoctorsURL(path string) string {
	path = strings.TrimLeft(path, "/")
	return r.baseURL + "/doctors/" + path
}

// Forward sends req to the upstream doctors endpoint with the bearer token
// and maps the outcome to the status and body the caller should receive.
// It never returns the token in a result.
func (r *Relay) Forward(ctx context.Context, req RelayRequest) RelayResult {
	if req.Method == "" {
		req.Method = http.MethodPost
	}

	if !r.Configured() {
		log.Println("Relay: API_TOKEN not configured in server environment")
		return envelopeResult(http.StatusInternalServerError, OutcomeConfigError, ErrTokenNotConfigured, models.ErrorEnvelope{
			Error:   "API token not configured on server",
			Message: "Set API_TOKEN in the server environment.",
		})
	}

	var body io.Reader
	if req.Method != http.MethodGet {
		if !isJSONObject(req.Body) {
			log.Printf("Relay: rejecting %s with a body that is not a JSON object (%d bytes)", req.Method, len(req.Body))
			return envelopeResult(http.StatusBadRequest, OutcomeInvalidBody, errors.New("request body is not a JSON object"), models.ErrorEnvelope{
				Error:   "Invalid request body",
				Message: "The request body must be a JSON object.",
			})
		}
		body = bytes.NewReader(req.Body)
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	url := r.DoctorsURL(req.Path)
	if req.RawQuery != "" {
		url += "?" + req.RawQuery
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, url, body)
	if err != nil {
		log.Printf("Relay: failed to build upstream request: %v", err)
		return transportFailure(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+r.token)

	log.Printf("Relay: %s %s (token: [REDACTED], body: %d bytes)", req.Method, url, len(req.Body))

	resp, err := r.client.Do(httpReq)
	if err != nil {
		log.Printf("Relay: upstream request failed: %v", err)
		return transportFailure(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("Relay: failed to read upstream response: %v", err)
		return transportFailure(err)
	}

	log.Printf("Relay: upstream responded %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))

	normalized := normalizeBody(raw)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("Relay: upstream error %d: %s", resp.StatusCode, truncate(normalized, 512))
		return envelopeResult(resp.StatusCode, OutcomeUpstreamError,
			fmt.Errorf("upstream returned %d", resp.StatusCode),
			models.ErrorEnvelope{
				Error:   fmt.Sprintf("Upstream server error (%d)", resp.StatusCode),
				Message: upstreamMessage(normalized, resp),
				Details: normalized,
			})
	}

	return RelayResult{Status: resp.StatusCode, Body: normalized, Outcome: OutcomeForwarded}
}

func isJSONObject(b []byte) bool {
	b = bytes.TrimSpace(b)
	return len(b) > 0 && b[0] == '{' && json.Valid(b)
}

// normalizeBody keeps valid JSON byte-for-byte and wraps anything else
// as {"message": text}.
func normalizeBody(raw []byte) json.RawMessage {
	if len(bytes.TrimSpace(raw)) > 0 && json.Valid(raw) {
		return json.RawMessage(raw)
	}
	wrapped, _ := json.Marshal(map[string]string{"message": string(raw)})
	return wrapped
}

// upstreamMessage picks body.message, then body.detail, then the status text.
func upstreamMessage(body json.RawMessage, resp *http.Response) string {
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err == nil {
		for _, key := range []string{"message", "detail"} {
			if s := messageText(obj[key]); s != "" {
				return s
			}
		}
	}
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return resp.Status
}

func messageText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

func transportFailure(err error) RelayResult {
	return envelopeResult(http.StatusInternalServerError, OutcomeTransportError, err, models.ErrorEnvelope{
		Error:   "Internal server error",
		Message: "An error occurred while processing the request. Please try again.",
		Details: err.Error(),
	})
}

func envelopeResult(status int, outcome Outcome, err error, env models.ErrorEnvelope) RelayResult {
	body, mErr := json.Marshal(env)
	if mErr != nil {
		body = []byte(`{"error":"Internal server error","message":"Failed to encode error response"}`)
	}
	return RelayResult{Status: status, Body: body, Outcome: outcome, Err: err}
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
