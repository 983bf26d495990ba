package kafka

import (
	"cmp"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"time"
)

const (
	OutboxStatusPending = "pending"
	OutboxStatusSent    = "sent"
	OutboxStatusFailed  = "failed"
)

const (
	// an event that failed this many times stays failed for inspection
	maxOutboxRetries = 20

	// claimLease hides a claimed batch from other workers while it is
	// being published; a worker that dies mid-batch releases it on expiry.
	claimLease = 60 * time.Second

	backoffStep     = 15 * time.Second
	maxBackoffSteps = 10

	maxErrorMessageLen = 500
)

var ErrInvalidOutboxEvent = errors.New("invalid outbox event")

type OutboxEvent struct {
	ID            string
	RequestID     string
	AggregateType string
	AggregateID   string
	EventType     string
	Topic         string
	Payload       []byte
	Status        string
	RetryCount    int
	NextRetryAt   time.Time
	CreatedAt     time.Time
}

//go:generate mockgen -source=outbox_repo.go -destination=mock/outbox_repo_mock.go -package=mock

type OutboxRepository interface {
	WithTx(tx *sql.Tx) OutboxRepository
	Create(ctx context.Context, event OutboxEvent) error
	ListPending(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, reason string) error
}

const createOutboxTable = `
CREATE TABLE IF NOT EXISTS outbox_events (
	id             uuid PRIMARY KEY,
	request_id     text NOT NULL DEFAULT '',
	aggregate_type text NOT NULL,
	aggregate_id   uuid NOT NULL,
	event_type     text NOT NULL,
	topic          text NOT NULL,
	payload        jsonb NOT NULL,
	status         text NOT NULL,
	retry_count    integer NOT NULL DEFAULT 0,
	error_message  text,
	next_retry_at  timestamptz,
	processed_at   timestamptz,
	created_at     timestamptz NOT NULL DEFAULT NOW(),
	updated_at     timestamptz NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_outbox_events_status_created ON outbox_events (status, created_at);
`

const insertOutboxEvent = `
INSERT INTO outbox_events (id, request_id, aggregate_type, aggregate_id, event_type, topic, payload, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

const claimOutboxBatch = `
WITH due AS (
	SELECT id FROM outbox_events
	WHERE status IN ($1, $2)
		AND retry_count < $3
		AND (next_retry_at IS NULL OR next_retry_at <= NOW())
	ORDER BY created_at
	LIMIT $4
	FOR UPDATE SKIP LOCKED
)
UPDATE outbox_events o
SET next_retry_at = NOW() + make_interval(secs => $5), updated_at = NOW()
FROM due
WHERE o.id = due.id
RETURNING o.id::text, o.request_id, o.aggregate_type, o.aggregate_id::text, o.event_type,
	o.topic, o.payload, o.status, o.retry_count, o.next_retry_at, o.created_at`

const markOutboxSent = `
UPDATE outbox_events
SET status = $2, processed_at = NOW(), error_message = NULL, updated_at = NOW()
WHERE id = $1`

const markOutboxFailed = `
UPDATE outbox_events
SET status = $2,
	retry_count = retry_count + 1,
	error_message = LEFT($3, $4),
	next_retry_at = NOW() + LEAST(retry_count + 1, $5) * make_interval(secs => $6),
	updated_at = NOW()
WHERE id = $1`

// EnsureSchema creates the outbox table when it does not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, createOutboxTable)
	return err
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type outboxRepository struct {
	db *sql.DB
	tx *sql.Tx
}

func NewOutboxRepository(db *sql.DB) OutboxRepository {
	return &outboxRepository{db: db}
}

// WithTx binds Create to tx so an event commits with the record it
// describes. Claiming and marking always run on the pool.
func (r *outboxRepository) WithTx(tx *sql.Tx) OutboxRepository {
	return &outboxRepository{db: r.db, tx: tx}
}

func (r *outboxRepository) conn() execer {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *outboxRepository) Create(ctx context.Context, event OutboxEvent) error {
	if err := ValidateOutboxEvent(event); err != nil {
		return err
	}
	_, err := r.conn().ExecContext(ctx, insertOutboxEvent,
		event.ID, event.RequestID, event.AggregateType, event.AggregateID,
		event.EventType, event.Topic, event.Payload, event.Status,
	)
	return err
}

// ListPending claims up to limit due events, oldest first. Claimed events
// are invisible to other callers until claimLease passes or they are marked.
func (r *outboxRepository) ListPending(ctx context.Context, limit int) ([]OutboxEvent, error) {
	rows, err := r.db.QueryContext(ctx, claimOutboxBatch,
		OutboxStatusPending, OutboxStatusFailed, maxOutboxRetries, limit, claimLease.Seconds(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]OutboxEvent, 0, limit)
	for rows.Next() {
		var e OutboxEvent
		if err := rows.Scan(
			&e.ID, &e.RequestID, &e.AggregateType, &e.AggregateID, &e.EventType,
			&e.Topic, &e.Payload, &e.Status, &e.RetryCount, &e.NextRetryAt, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// RETURNING carries no order
	slices.SortStableFunc(events, func(a, b OutboxEvent) int {
		return cmp.Compare(a.CreatedAt.UnixNano(), b.CreatedAt.UnixNano())
	})
	return events, nil
}

func (r *outboxRepository) MarkSent(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, markOutboxSent, id, OutboxStatusSent)
	return err
}

// MarkFailed records reason and schedules a retry with linear backoff,
// 15s per attempt up to 150s.
func (r *outboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	_, err := r.db.ExecContext(ctx, markOutboxFailed,
		id, OutboxStatusFailed, reason, maxErrorMessageLen, maxBackoffSteps, backoffStep.Seconds(),
	)
	return err
}

func ValidateOutboxEvent(event OutboxEvent) error {
	required := []struct {
		name  string
		empty bool
	}{
		{"id", event.ID == ""},
		{"aggregate id", event.AggregateID == ""},
		{"event type", event.EventType == ""},
		{"topic", event.Topic == ""},
		{"payload", len(event.Payload) == 0},
	}
	for _, f := range required {
		if f.empty {
			return fmt.Errorf("%w: %s is required", ErrInvalidOutboxEvent, f.name)
		}
	}

	switch event.Status {
	case OutboxStatusPending, OutboxStatusSent, OutboxStatusFailed:
		return nil
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidOutboxEvent, event.Status)
	}
}
