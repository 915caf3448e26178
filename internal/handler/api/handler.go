package api

import (
	"SwingScope/internal/domain/models"
	domrepo "SwingScope/internal/domain/repository"
	"SwingScope/internal/usecase"
	xhttp "SwingScope/pkg/http"
	xlogger "SwingScope/pkg/logger"
	"SwingScope/pkg/queue"

	"github.com/labstack/echo/v4"
)

// AnalysisHandler exposes the analysis pipeline over HTTP.
type AnalysisHandler struct {
	logger   *xlogger.Logger
	analyze  *usecase.AnalyzeUseCase
	backtest *usecase.BacktestUseCase
	reports  *usecase.ReportsUseCase
	searcher domrepo.SymbolSearcher
	store    domrepo.ReportStore
	queue    queue.QueueService
}

func NewAnalysisHandler(
	logger *xlogger.Logger,
	analyze *usecase.AnalyzeUseCase,
	backtest *usecase.BacktestUseCase,
	reports *usecase.ReportsUseCase,
	searcher domrepo.SymbolSearcher,
	store domrepo.ReportStore,
	q queue.QueueService,
) *AnalysisHandler {
	return &AnalysisHandler{
		logger:   logger,
		analyze:  analyze,
		backtest: backtest,
		reports:  reports,
		searcher: searcher,
		store:    store,
		queue:    q,
	}
}

func (h *AnalysisHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)
	g := e.Group("/api")
	g.POST("/analyze", h.Analyze)
	g.POST("/backtest", h.Backtest)
	g.GET("/reports", h.Reports)
	g.GET("/reports/latest", h.LatestReport)
	g.GET("/symbols/search", h.SearchSymbols)
}

func (h *AnalysisHandler) Analyze(c echo.Context) error {
	req := &models.AnalyzeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if req.Async {
		if h.queue == nil {
			return xhttp.BadRequestResponse(c, xhttp.BadRequestError("async analysis requires the queue"))
		}
		if err := h.queue.PublishMessage(c.Request().Context(), usecase.AnalyzeJobType, req); err != nil {
			h.logger.Error("enqueue analyze error", xlogger.Error(err))
			return xhttp.AppErrorResponse(c, err)
		}
		return xhttp.SuccessResponse(c, map[string]interface{}{
			"queued":  true,
			"symbols": req.Symbols,
		})
	}

	reports, err := h.analyze.AnalyzeAll(c.Request().Context(), req.Symbols, usecase.AnalyzeParams{
		HistoryDays: req.HistoryDays,
		WithNews:    req.WithNews,
		WithSector:  req.WithSector,
		Refresh:     req.Refresh,
	})
	if err != nil {
		h.logger.Error("analyze usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, reports)
}

func (h *AnalysisHandler) Backtest(c echo.Context) error {
	req := &models.BacktestRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	result, err := h.backtest.Run(c.Request().Context(), usecase.BacktestParams{
		Symbol:       req.Symbol,
		LookbackDays: req.LookbackDays,
		HoldDays:     req.HoldDays,
	})
	if err != nil {
		h.logger.Error("backtest usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, result)
}

func (h *AnalysisHandler) Reports(c echo.Context) error {
	symbol := c.QueryParam("symbol")
	limit := xhttp.ParseIntDefault(c.QueryParam("limit"), 0)

	var rng xhttp.TimeRange
	if s := c.QueryParam("from"); s != "" {
		t, ok := xhttp.ParseTime(s)
		if !ok {
			return xhttp.BadRequestResponse(c, xhttp.BadRequestError("invalid from time"))
		}
		rng.From = &t
	}
	if s := c.QueryParam("to"); s != "" {
		t, ok := xhttp.ParseTime(s)
		if !ok {
			return xhttp.BadRequestResponse(c, xhttp.BadRequestError("invalid to time"))
		}
		rng.To = &t
	}

	reports, err := h.reports.List(c.Request().Context(), symbol, rng.From, rng.To, limit)
	if err != nil {
		h.logger.Error("reports usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, xhttp.ListDataResponse{
		Rows:  reports,
		Total: int64(len(reports)),
	})
}

func (h *AnalysisHandler) LatestReport(c echo.Context) error {
	symbol := c.QueryParam("symbol")
	if symbol == "" {
		return xhttp.BadRequestResponse(c, xhttp.BadRequestError("symbol is required"))
	}

	report, err := h.reports.Latest(c.Request().Context(), symbol)
	if err != nil {
		return xhttp.NotFoundResponse(c, xhttp.NotFoundErrorf("no report for %s", symbol))
	}
	return xhttp.SuccessResponse(c, report)
}

func (h *AnalysisHandler) SearchSymbols(c echo.Context) error {
	req := &models.SearchQuery{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if h.searcher == nil {
		return xhttp.AppErrorResponse(c, xhttp.InternalError("symbol search disabled"))
	}

	matches, err := h.searcher.Search(c.Request().Context(), req.Q, req.Limit)
	if err != nil {
		h.logger.Error("symbol search error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, matches)
}

func (h *AnalysisHandler) Health(c echo.Context) error {
	status := map[string]string{"status": "ok"}
	if h.store != nil {
		if err := h.store.Health(c.Request().Context()); err != nil {
			status["store"] = err.Error()
		} else {
			status["store"] = "ok"
		}
	}
	return xhttp.SuccessResponse(c, status)
}
