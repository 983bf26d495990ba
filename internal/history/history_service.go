package history

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"go-taxcalc/internal/events"
	historyerrors "go-taxcalc/internal/history/errors"
	"go-taxcalc/internal/messaging/kafka"
	"go-taxcalc/internal/shared/apperror"
	"go-taxcalc/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=history_service.go -destination=mock/history_service_mock.go -package=mock
type Service interface {
	Save(ctx context.Context, userID string, req SaveCalculationRequest) (CalculationResponse, error)
	List(ctx context.Context, userID string, req ListHistoryRequest) ([]CalculationResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, logger...)
}

// NewServiceWithOutbox queues a calculation_saved event in the same
// transaction as every saved record.
func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("history.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("history.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		logger: l,
	}
}

func (s *service) Save(ctx context.Context, userID string, req SaveCalculationRequest) (CalculationResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	log := contextutil.GetLogger(ctx, s.logger)

	if strings.TrimSpace(userID) == "" {
		return CalculationResponse{}, historyerrors.ErrInvalidUserID
	}
	calcType := CalculationType(req.CalculationType)
	if !calcType.Valid() {
		return CalculationResponse{}, apperror.FieldError(historyerrors.ErrInvalidCalculationType, "calculationType", "oneof")
	}
	if !isJSONObject(req.InputData) {
		return CalculationResponse{}, apperror.FieldError(historyerrors.ErrInvalidInputData, "inputData", "object")
	}
	if !isJSONObject(req.Result) {
		return CalculationResponse{}, apperror.FieldError(historyerrors.ErrInvalidResult, "result", "object")
	}

	log.Debug("save calculation requested",
		zap.String("request_id", rid),
		zap.String("calculation_type", string(calcType)),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("save calculation begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return CalculationResponse{}, err
	}
	defer tx.Rollback()

	calc := &Calculation{
		ID:              uuid.New(),
		UserID:          userID,
		CalculationType: calcType,
		InputData:       Document(req.InputData),
		Result:          Document(req.Result),
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.repo.WithTx(tx).Create(ctx, calc); err != nil {
		log.Error("save calculation persist failed", zap.String("request_id", rid), zap.Error(err))
		return CalculationResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.CalculationSavedEvent{
			EventType:       events.CalculationSavedEventType,
			RequestID:       rid,
			CalculationID:   calc.ID.String(),
			UserID:          userID,
			CalculationType: string(calcType),
			OccurredAt:      calc.CreatedAt,
		}
		payload, err := json.Marshal(event)
		if err != nil {
			log.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return CalculationResponse{}, err
		}

		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "calculation",
			AggregateID:   calc.ID.String(),
			EventType:     event.EventType,
			Topic:         events.CalculationSavedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			log.Error("save calculation outbox persist failed",
				zap.String("calculation_id", calc.ID.String()),
				zap.Error(err),
			)
			return CalculationResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return CalculationResponse{}, err
	}

	log.Info("save calculation success",
		zap.String("request_id", rid),
		zap.String("calculation_id", calc.ID.String()),
	)
	return mapToResponse(*calc), nil
}

func (s *service) List(ctx context.Context, userID string, req ListHistoryRequest) ([]CalculationResponse, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, historyerrors.ErrInvalidUserID
	}

	filter := HistoryFilter{
		CalculationType: CalculationType(req.CalculationType),
		Limit:           req.Limit,
	}
	if filter.CalculationType != "" && !filter.CalculationType.Valid() {
		return nil, apperror.FieldError(historyerrors.ErrInvalidCalculationType, "calculation_type", "oneof")
	}
	if filter.Limit == 0 {
		filter.Limit = DefaultListLimit
	}
	if filter.Limit < 1 {
		return nil, apperror.FieldError(historyerrors.ErrInvalidLimit, "limit", "min")
	}
	if filter.Limit > MaxListLimit {
		return nil, apperror.FieldError(historyerrors.ErrInvalidLimit, "limit", "max")
	}

	calcs, err := s.repo.FindAllByUser(ctx, userID, filter)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("list calculations failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	resp := make([]CalculationResponse, 0, len(calcs))
	for _, c := range calcs {
		resp = append(resp, mapToResponse(c))
	}
	return resp, nil
}

func isJSONObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{' && json.Valid(trimmed)
}
