package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
)

// InitSentry configures the global Sentry client. The returned func flushes
// buffered events and should be deferred by main.
func InitSentry(dsn, environment, version string) (func(), error) {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      environment,
		Release:          "doctor-registration@" + version,
		TracesSampleRate: 0.2,
		BeforeSend:       scrubEvent,
	})
	if err != nil {
		return func() {}, fmt.Errorf("sentry initialization failed: %w", err)
	}
	return func() { sentry.Flush(2 * time.Second) }, nil
}

// CaptureError reports err with extra context on the current hub.
func CaptureError(err error, context map[string]interface{}) {
	hub := sentry.CurrentHub()
	if hub.Client() == nil {
		return
	}
	hub.WithScope(func(scope *sentry.Scope) {
		for k, v := range context {
			scope.SetExtra(k, v)
		}
		hub.CaptureException(err)
	})
}

// scrubEvent drops credentials from request data attached to an event.
func scrubEvent(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
	if event.Request == nil {
		return event
	}
	for k := range event.Request.Headers {
		if strings.EqualFold(k, "Authorization") || strings.EqualFold(k, "Cookie") {
			event.Request.Headers[k] = "[FILTERED]"
		}
	}
	event.Request.Cookies = ""
	return event
}
