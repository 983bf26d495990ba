package history

import (
	"context"
	"database/sql"

	"go-taxcalc/internal/tenant"

	"gorm.io/gorm"
)

type HistoryFilter struct {
	CalculationType CalculationType
	Limit           int
}

//go:generate mockgen -source=history_repo.go -destination=mock/history_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, calc *Calculation) error
	FindAllByUser(ctx context.Context, userID string, filter HistoryFilter) ([]Calculation, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

// conn runs statements on the bound transaction when there is one, so the
// record and its outbox event commit together.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, calc *Calculation) error {
	return r.conn(ctx).Create(calc).Error
}

func (r *repository) FindAllByUser(ctx context.Context, userID string, filter HistoryFilter) ([]Calculation, error) {
	var calcs []Calculation
	err := r.conn(ctx).
		Scopes(tenant.Scope(userID), byType(filter.CalculationType)).
		Order("created_at DESC").
		Limit(filter.Limit).
		Find(&calcs).Error
	return calcs, err
}

func byType(t CalculationType) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if t == "" {
			return db
		}
		return db.Where("calculation_type = ?", t)
	}
}
