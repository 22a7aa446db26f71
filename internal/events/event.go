// Package events carries settlement notifications to a message broker after
// the database transaction that produced them has committed.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	OrderSettled   = "OrderSettled"
	WalletToppedUp = "WalletToppedUp"
	OrderDeleted   = "OrderDeleted"
)

// Producer is stamped on every envelope.
const Producer = "kiosk-api"

// Envelope wraps every event on the wire.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

type OrderSettledPayload struct {
	OrderID       string          `json:"order_id"`
	UserID        string          `json:"user_id"`
	WalletID      string          `json:"wallet_id"`
	TransactionID string          `json:"transaction_id"`
	Amount        decimal.Decimal `json:"amount"`
	NewBalance    decimal.Decimal `json:"new_balance"`
}

type WalletToppedUpPayload struct {
	WalletID      string          `json:"wallet_id"`
	TransactionID string          `json:"transaction_id"`
	Amount        decimal.Decimal `json:"amount"`
	NewBalance    decimal.Decimal `json:"new_balance"`
}

// OrderDeletedPayload reports an order removed without reversing its debit.
// TransactionID is the ledger row that still references the order.
type OrderDeletedPayload struct {
	OrderID       string          `json:"order_id"`
	UserID        string          `json:"user_id"`
	TransactionID string          `json:"transaction_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
}

// New builds an envelope around payload.
func New(eventType, correlationID, traceID string, payload any) (Envelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode %s payload: %w", eventType, err)
	}
	return Envelope{
		EventID:       uuid.New().String(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      Producer,
		TraceID:       traceID,
		CorrelationID: correlationID,
		Payload:       raw,
	}, nil
}

// Decode parses a wire message.
func Decode(b []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	return env, nil
}

// UnwrapPayload decodes the payload of env into T.
func UnwrapPayload[T any](env Envelope) (T, error) {
	var t T
	if err := json.Unmarshal(env.Payload, &t); err != nil {
		return t, fmt.Errorf("decode payload: %w", err)
	}
	return t, nil
}
