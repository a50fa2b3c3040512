package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/doctor-registration/internal/middleware"
	"github.com/harentsoaR/doctor-registration/internal/models"
	"github.com/harentsoaR/doctor-registration/internal/monitoring"
	"github.com/harentsoaR/doctor-registration/internal/services"
	"github.com/harentsoaR/doctor-registration/internal/utils"
)

const sideChannelTimeout = 5 * time.Second

// doctorIDParam keeps detail lookups inside the upstream doctors resource.
var doctorIDParam = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// CreateDoctor relays the caller's JSON body unmodified to the upstream
// doctors endpoint.
func (h *Handler) CreateDoctor(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorEnvelope{
			Error:   "Invalid request body",
			Message: "The request body could not be read.",
		})
		return
	}

	h.relay(c, services.RelayRequest{Method: http.MethodPost, Body: body}, doctorSummaryFrom(body))
}

// ListDoctors relays GET /doctors/ with the caller's query string.
func (h *Handler) ListDoctors(c *gin.Context) {
	h.relay(c, services.RelayRequest{
		Method:   http.MethodGet,
		RawQuery: c.Request.URL.RawQuery,
	}, doctorSummary{})
}

// GetDoctor relays GET /doctors/:id/.
func (h *Handler) GetDoctor(c *gin.Context) {
	id := c.Param("id")
	if !doctorIDParam.MatchString(id) {
		c.JSON(http.StatusBadRequest, models.ErrorEnvelope{
			Error:   "Invalid doctor id",
			Message: "Doctor id may only contain letters, numbers, dashes and underscores.",
		})
		return
	}
	h.relay(c, services.RelayRequest{
		Method: http.MethodGet,
		Path:   id + "/",
	}, doctorSummary{})
}

type doctorSummary struct {
	DoctorID   string `json:"doctor_id"`
	Department string `json:"department"`
}

func doctorSummaryFrom(body []byte) doctorSummary {
	var s doctorSummary
	_ = json.Unmarshal(body, &s)
	return s
}

// relay runs one upstream call and writes its result. Metrics, the audit
// trail, Sentry and registration events are fed from here.
func (h *Handler) relay(c *gin.Context, req services.RelayRequest, doctor doctorSummary) {
	requestID := middleware.GetRequestID(c)
	start := time.Now()

	res := h.Relay.Forward(c.Request.Context(), req)
	elapsed := time.Since(start)

	monitoring.RelayOutcomes.WithLabelValues(req.Method, string(res.Outcome)).Inc()
	if res.Outcome == services.OutcomeForwarded || res.Outcome == services.OutcomeUpstreamError {
		monitoring.UpstreamDuration.WithLabelValues(req.Method).Observe(elapsed.Seconds())
	}

	switch res.Outcome {
	case services.OutcomeConfigError, services.OutcomeTransportError:
		log.Printf("Relay %s: %s %s failed (%s): %v", requestID, req.Method, c.Request.URL.Path, res.Outcome, res.Err)
		_ = c.Error(res.Err).SetMeta(map[string]interface{}{
			"request_id": requestID,
			"outcome":    string(res.Outcome),
			"doctor_id":  doctor.DoctorID,
		})
	case services.OutcomeUpstreamError:
		log.Printf("Relay %s: upstream rejected %s %s with %d", requestID, req.Method, c.Request.URL.Path, res.Status)
	case services.OutcomeForwarded:
		if req.Method == http.MethodPost {
			log.Printf("Relay %s: doctor registration %q accepted (%d)", requestID, doctor.DoctorID, res.Status)
		}
	}

	c.Data(res.Status, "application/json; charset=utf-8", res.Body)

	h.recordAudit(models.SubmissionAudit{
		RequestID:      requestID,
		Method:         req.Method,
		Path:           c.Request.URL.Path,
		DoctorID:       doctor.DoctorID,
		Outcome:        string(res.Outcome),
		UpstreamStatus: res.Status,
		DurationMillis: elapsed.Milliseconds(),
		CreatedAt:      start.UTC(),
	})

	if req.Method == http.MethodPost && res.Outcome == services.OutcomeForwarded {
		go h.publishRegistered(models.DoctorRegistered{
			Event:        services.EventDoctorRegistered,
			RequestID:    requestID,
			DoctorID:     doctor.DoctorID,
			Department:   doctor.Department,
			Status:       res.Status,
			RegisteredAt: time.Now().UTC(),
		})
	}
}

func (h *Handler) recordAudit(entry models.SubmissionAudit) {
	ctx, cancel := context.WithTimeout(context.Background(), sideChannelTimeout)
	defer cancel()
	if err := h.Audit.Record(ctx, entry); err != nil {
		log.Printf("Audit: failed to record %s %s: %v", entry.Method, entry.Path, err)
		utils.CaptureError(err, map[string]interface{}{
			"request_id": entry.RequestID,
			"doctor_id":  entry.DoctorID,
			"outcome":    entry.Outcome,
		})
	}
}

func (h *Handler) publishRegistered(event models.DoctorRegistered) {
	ctx, cancel := context.WithTimeout(context.Background(), sideChannelTimeout)
	defer cancel()
	if err := h.Events.PublishDoctorRegistered(ctx, event); err != nil {
		log.Printf("Events: failed to publish %s for %q: %v", event.Event, event.DoctorID, err)
		utils.CaptureError(err, map[string]interface{}{
			"request_id": event.RequestID,
			"doctor_id":  event.DoctorID,
			"event":      event.Event,
		})
	}
}
