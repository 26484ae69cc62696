// Package crm records customer callback requests in an external system.
// The default recorder only logs; a Postgres-backed recorder is used when
// a DSN is configured.
package crm

import (
	"context"

	"github.com/rs/zerolog"

	contractx "github.com/shopai/assistant/assistant/contract"
)

var _ contractx.CallbackRecorder = (*LogRecorder)(nil)

// LogRecorder emits each callback request as a structured log event.
type LogRecorder struct {
	log zerolog.Logger
}

func NewLogRecorder(log zerolog.Logger) *LogRecorder {
	return &LogRecorder{log: log}
}

func (r *LogRecorder) Record(ctx context.Context, req contractx.CallbackRequest) error {
	r.log.Info().
		Str("customer", req.CustomerName).
		Str("phone", req.PhoneNumber).
		Str("reason", req.Reason).
		Time("requested_at", req.RequestedAt).
		Msg("callback requested")
	return nil
}
