package events

import (
	"kiosk/internal/logger"

	"go.uber.org/zap"
)

// Audit logs one received event. It is the handler of the broker audit
// consumer; undecodable messages are reported as errors.
func Audit(body []byte) error {
	env, err := Decode(body)
	if err != nil {
		logger.Log.Warn("dropping undecodable event", zap.Error(err))
		return err
	}
	logger.Log.Info("event received",
		zap.String("event_id", env.EventID),
		zap.String("event_type", env.EventType),
		zap.String("correlation_id", env.CorrelationID),
		zap.String("trace_id", env.TraceID),
		zap.Time("occurred_at", env.OccurredAt),
		zap.ByteString("payload", env.Payload),
	)
	return nil
}
