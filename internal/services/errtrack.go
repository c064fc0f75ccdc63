package services

import (
	"log"
	"time"

	"github.com/getsentry/sentry-go"
)

// InitErrorTracking configures the Sentry client. An empty DSN disables
// reporting; failures are still logged locally either way.
func InitErrorTracking(dsn, environment string) error {
	if dsn == "" {
		log.Println("Warning: SENTRY_DSN not set. Error reporting disabled.")
		return nil
	}
	return sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: environment,
	})
}

// CaptureError forwards err to the error tracker. Safe to call when tracking
// is disabled.
func CaptureError(err error) {
	if err == nil {
		return
	}
	sentry.CaptureException(err)
}

// FlushErrorTracking drains buffered events before shutdown.
func FlushErrorTracking() {
	sentry.Flush(2 * time.Second)
}
