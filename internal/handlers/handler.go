package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/doctor-registration/internal/registration"
	"github.com/harentsoaR/doctor-registration/internal/services"
)

// Handler carries the dependencies shared by every route.
type Handler struct {
	Relay  services.Forwarder
	Audit  services.AuditLog
	Events services.EventPublisher
	Wizard *registration.Controller
}

// NewHandler wires the handler. Nil audit or events disable that side channel.
func NewHandler(relay services.Forwarder, audit services.AuditLog, events services.EventPublisher, wizard *registration.Controller) *Handler {
	if audit == nil {
		audit = services.NopAuditLog{}
	}
	if events == nil {
		events = services.NopPublisher{}
	}
	if wizard == nil {
		wizard = registration.NewController(nil)
	}
	return &Handler{
		Relay:  relay,
		Audit:  audit,
		Events: events,
		Wizard: wizard,
	}
}

// RegisterRoutes mounts the API on r.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.Health)

	api := r.Group("/api")
	{
		api.POST("/doctors", h.CreateDoctor)
		api.GET("/doctors", h.ListDoctors)
		api.GET("/doctors/:id", h.GetDoctor)

		reg := api.Group("/registration")
		reg.GET("/schema", h.GetRegistrationSchema)
		reg.POST("/steps/validate", h.ValidateRegistrationStep)
		reg.POST("/navigate", h.NavigateRegistration)
		reg.POST("/submit", h.SubmitRegistration)
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":           "ok",
		"relay_configured": h.Relay.Configured(),
	})
}
