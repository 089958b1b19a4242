// Package report forwards provider failures to an error tracker.
package report

import (
	"fmt"

	"github.com/getsentry/raven-go"
	log "github.com/sirupsen/logrus"
)

// Reporter records a failure with searchable tags.
type Reporter interface {
	Report(err error, tags map[string]string)
}

// Nop discards every report.
type Nop struct{}

func (Nop) Report(error, map[string]string) {}

// Sentry sends reports through raven-go.
type Sentry struct {
	client *raven.Client
}

func NewSentry(dsn string) (*Sentry, error) {
	client, err := raven.New(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create Sentry client: %w", err)
	}
	return &Sentry{client: client}, nil
}

func (s *Sentry) Report(err error, tags map[string]string) {
	eventID := s.client.CaptureError(err, tags)
	log.WithField("sentry_event", eventID).Debug("[Report] Captured provider error")
}

// New returns a Sentry reporter when dsn is set, otherwise Nop.
func New(dsn string) (Reporter, error) {
	if dsn == "" {
		return Nop{}, nil
	}
	return NewSentry(dsn)
}
