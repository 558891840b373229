package main

import (
	"github.com/rs/zerolog"

	"github.com/sitecrew/workforce-scheduler/internal/api/metrics"
	"github.com/sitecrew/workforce-scheduler/internal/core/session"
)

// sessionListeners are subscribed to the session manager for the lifetime
// of the process.
func sessionListeners(log zerolog.Logger) []session.Listener {
	return []session.Listener{
		func(ev session.Event) {
			metrics.SessionEventsTotal.WithLabelValues(string(ev.Type)).Inc()
		},
		func(ev session.Event) {
			log.Info().
				Str("event", string(ev.Type)).
				Str("session_id", ev.Session.ID).
				Str("user_id", ev.Session.UserID).
				Str("role", string(ev.Session.Role)).
				Msg("session changed")
		},
	}
}
