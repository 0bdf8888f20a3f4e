package server

import (
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tair/plant-catalog/pkg/logger"
)

// NewSupervisor creates the root supervisor. Supervisor events (service
// failures, backoff, stop timeouts) are written to the service log.
func NewSupervisor(name string, shutdownTimeout time.Duration) *suture.Supervisor {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return suture.New(name, suture.Spec{
		EventHook:        logEvent,
		FailureThreshold: 5,
		FailureDecay:     30,
		FailureBackoff:   15 * time.Second,
		Timeout:          shutdownTimeout,
	})
}

func logEvent(e suture.Event) {
	event := logger.Logger.Warn()
	if e.Type() == suture.EventTypeServicePanic {
		event = logger.Logger.Error()
	}
	event.Fields(e.Map()).Msg(e.String())
}
