package usecase

import (
	"context"

	"SwingScope/internal/domain/models"
	"SwingScope/pkg/logger"
	"SwingScope/pkg/queue"
)

// AnalyzeJobType routes queued analysis payloads to the job.
const AnalyzeJobType = "analyze"

// AnalyzeJob runs queued analysis requests on the worker pool.
type AnalyzeJob struct {
	logger  *logger.Logger
	analyze *AnalyzeUseCase
}

func NewAnalyzeJob(lgr *logger.Logger, analyze *AnalyzeUseCase) *AnalyzeJob {
	return &AnalyzeJob{logger: lgr, analyze: analyze}
}

func (j *AnalyzeJob) Name() string { return "analyze_job" }
func (j *AnalyzeJob) Type() string { return AnalyzeJobType }

func (j *AnalyzeJob) Handle(ctx context.Context, payload interface{}) error {
	req, err := queue.ParsePayload[models.AnalyzeRequest](payload)
	if err != nil {
		return err
	}

	reports, err := j.analyze.AnalyzeAll(ctx, req.Symbols, AnalyzeParams{
		HistoryDays: req.HistoryDays,
		WithNews:    req.WithNews,
		WithSector:  req.WithSector,
		Refresh:     req.Refresh,
	})
	if err != nil {
		return err
	}
	j.logger.Info("queued analysis finished",
		logger.Int("symbols", len(req.Symbols)),
		logger.Int("reports", len(reports)))
	return nil
}

var _ queue.Job = (*AnalyzeJob)(nil)
