package usecase

import (
	"context"
	"fmt"
	"time"

	"SwingScope/internal/domain/models"
	domrepo "SwingScope/internal/domain/repository"
	"SwingScope/pkg/logger"
)

const defaultReportsLimit = 20

// ReportsUseCase reads persisted reports back out of the store.
type ReportsUseCase struct {
	logger *logger.Logger
	store  domrepo.ReportStore
}

func NewReportsUseCase(lgr *logger.Logger, store domrepo.ReportStore) *ReportsUseCase {
	return &ReportsUseCase{logger: lgr, store: store}
}

// Latest returns the most recent report for a symbol.
func (uc *ReportsUseCase) Latest(ctx context.Context, symbol string) (*models.Report, error) {
	if symbol == "" {
		return nil, fmt.Errorf("symbol required")
	}
	if uc.store == nil {
		return nil, fmt.Errorf("report store not configured")
	}
	return uc.store.Latest(ctx, symbol)
}

// List returns recent reports, optionally filtered to one symbol and a
// generated-at time range. Nil range bounds are open ended.
func (uc *ReportsUseCase) List(ctx context.Context, symbol string, from, to *time.Time, limit int) ([]*models.Report, error) {
	if uc.store == nil {
		return nil, fmt.Errorf("report store not configured")
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, fmt.Errorf("invalid range: to is before from")
	}
	if limit <= 0 {
		limit = defaultReportsLimit
	}
	return uc.store.List(ctx, symbol, from, to, limit)
}
