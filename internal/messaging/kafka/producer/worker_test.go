package producer_test

import (
	"context"
	"errors"
	"testing"

	"go-taxcalc/internal/messaging/kafka"
	kafkaMock "go-taxcalc/internal/messaging/kafka/mock"
	"go-taxcalc/internal/messaging/kafka/producer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	written []kafkago.Message
	failFor map[string]error
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if err := w.failFor[string(m.Key)]; err != nil {
			return err
		}
		w.written = append(w.written, m)
	}
	return nil
}

func TestProcessPendingEvents(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := kafkaMock.NewMockOutboxRepository(ctrl)

	ok := kafka.OutboxEvent{ID: "o-1", RequestID: "req-1", AggregateType: "calculation", AggregateID: "calc-1", EventType: "calculation_saved", Topic: "tax.calculation.saved.v1", Payload: []byte(`{}`)}
	bad := kafka.OutboxEvent{ID: "o-2", AggregateType: "calculation", AggregateID: "calc-2", EventType: "calculation_saved", Topic: "tax.calculation.saved.v1", Payload: []byte(`{}`)}

	writer := &fakeWriter{failFor: map[string]error{"calc-2": errors.New("broker unavailable")}}

	repo.EXPECT().ListPending(ctx, 50).Return([]kafka.OutboxEvent{ok, bad}, nil)
	repo.EXPECT().MarkSent(ctx, "o-1").Return(nil)
	repo.EXPECT().MarkFailed(ctx, "o-2", "broker unavailable").Return(nil)

	sent, err := producer.ProcessPendingEvents(ctx, repo, writer, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	require.Len(t, writer.written, 1)
	msg := writer.written[0]
	assert.Equal(t, "tax.calculation.saved.v1", msg.Topic)
	assert.Equal(t, []byte("calc-1"), msg.Key)

	headers := map[string]string{}
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "calculation_saved", headers["event_type"])
	assert.Equal(t, "calculation", headers["aggregate_type"])
	assert.Equal(t, "req-1", headers["request_id"])
}

func TestProcessPendingEvents_Empty(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := kafkaMock.NewMockOutboxRepository(ctrl)

	repo.EXPECT().ListPending(ctx, 50).Return(nil, nil)

	sent, err := producer.ProcessPendingEvents(ctx, repo, &fakeWriter{}, zap.NewNop())
	require.NoError(t, err)
	assert.Zero(t, sent)
}

func TestProcessPendingEvents_ListError(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := kafkaMock.NewMockOutboxRepository(ctrl)

	repo.EXPECT().ListPending(ctx, 50).Return(nil, errors.New("db down"))

	_, err := producer.ProcessPendingEvents(ctx, repo, &fakeWriter{}, zap.NewNop())
	assert.EqualError(t, err, "db down")
}

func TestProcessOutboxEvents_StopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := kafkaMock.NewMockOutboxRepository(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		producer.ProcessOutboxEvents(ctx, repo, &fakeWriter{}, zap.NewNop(), 0)
		close(done)
	}()
	<-done
}
