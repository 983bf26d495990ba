package history

import (
	"errors"

	historyerrors "go-taxcalc/internal/history/errors"
	"go-taxcalc/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return historyerrors.ErrDuplicateCalculation.WithCause(pgErr)
		case "22P02":
			// jsonb rejected the payload
			return apperror.FieldError(historyerrors.ErrInvalidInputData.WithCause(pgErr), "inputData", "object")
		case "23514":
			return apperror.FieldError(historyerrors.ErrInvalidCalculationType.WithCause(pgErr), "calculationType", "oneof")
		}
	}

	return err
}
