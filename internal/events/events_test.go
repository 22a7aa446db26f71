package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"kiosk/internal/events"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAMQPClient struct {
	mock.Mock
}

func (m *MockAMQPClient) Publish(ctx context.Context, messageType string, body []byte) error {
	args := m.Called(ctx, messageType, body)
	return args.Error(0)
}

func (m *MockAMQPClient) Close() error {
	return m.Called().Error(0)
}

type MockKafkaWriter struct {
	mock.Mock
}

func (m *MockKafkaWriter) Publish(ctx context.Context, key, value []byte, headers ...kafka.Header) error {
	args := m.Called(ctx, key, value, headers)
	return args.Error(0)
}

func (m *MockKafkaWriter) Close() error {
	return m.Called().Error(0)
}

func TestNew_RoundTrip(t *testing.T) {
	env, err := events.New(events.OrderSettled, "order-1", "trace-1", events.OrderSettledPayload{
		OrderID:    "order-1",
		Amount:     decimal.RequireFromString("40.00"),
		NewBalance: decimal.RequireFromString("60.00"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, env.EventID)
	assert.Equal(t, 1, env.EventVersion)
	assert.Equal(t, events.Producer, env.Producer)

	raw, err := json.Marshal(env)
	require.NoError(t, err)

	decoded, err := events.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, events.OrderSettled, decoded.EventType)
	assert.Equal(t, "order-1", decoded.CorrelationID)

	payload, err := events.UnwrapPayload[events.OrderSettledPayload](decoded)
	require.NoError(t, err)
	assert.True(t, payload.NewBalance.Equal(decimal.NewFromInt(60)))
}

func TestRabbitMQPublisher_Publish(t *testing.T) {
	client := new(MockAMQPClient)
	pub := events.NewRabbitMQPublisher(client)
	env, err := events.New(events.WalletToppedUp, "wallet-1", "", events.WalletToppedUpPayload{WalletID: "wallet-1"})
	require.NoError(t, err)

	client.On("Publish", mock.Anything, events.WalletToppedUp, mock.MatchedBy(func(body []byte) bool {
		got, err := events.Decode(body)
		return err == nil && got.EventID == env.EventID
	})).Return(nil).Once()

	assert.NoError(t, pub.Publish(context.Background(), env))
	client.AssertExpectations(t)
}

func TestKafkaPublisher_KeysByCorrelationID(t *testing.T) {
	writer := new(MockKafkaWriter)
	pub := events.NewKafkaPublisher(writer)
	env, err := events.New(events.OrderDeleted, "order-9", "", events.OrderDeletedPayload{OrderID: "order-9"})
	require.NoError(t, err)

	writer.On("Publish", mock.Anything, []byte("order-9"), mock.Anything, mock.Anything).
		Return(errors.New("broker down")).Once()

	err = pub.Publish(context.Background(), env)
	assert.EqualError(t, err, "broker down")
	writer.AssertExpectations(t)
}

func TestAudit(t *testing.T) {
	env, err := events.New(events.OrderSettled, "order-1", "", events.OrderSettledPayload{OrderID: "order-1"})
	require.NoError(t, err)
	raw, err := json.Marshal(env)
	require.NoError(t, err)

	assert.NoError(t, events.Audit(raw))
	assert.Error(t, events.Audit([]byte("not json")))
}

func TestNopPublisher(t *testing.T) {
	var pub events.Publisher = events.NopPublisher{}
	assert.NoError(t, pub.Publish(context.Background(), events.Envelope{}))
	assert.NoError(t, pub.Close())
}
