package api

import (
	"context"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"MoverScan/internal/domain/models"
	"MoverScan/internal/usecase"
	xhttp "MoverScan/pkg/http"
	applogger "MoverScan/pkg/logger"
)

// MarketHandler serves the movers, news, candles, analysis, backtest and
// session endpoints under /api.
type MarketHandler struct {
	logger         *applogger.Logger
	movers         *usecase.MoversUseCase
	news           *usecase.NewsUseCase
	candles        *usecase.CandlesUseCase
	analysis       *usecase.AnalysisUseCase
	backtest       *usecase.BacktestUseCase
	session        *usecase.SessionUseCase
	scanTimeout    time.Duration
	historyTimeout time.Duration
	mw             []echo.MiddlewareFunc
}

func NewMarketHandler(
	logger *applogger.Logger,
	movers *usecase.MoversUseCase,
	news *usecase.NewsUseCase,
	candles *usecase.CandlesUseCase,
	analysis *usecase.AnalysisUseCase,
	backtest *usecase.BacktestUseCase,
	session *usecase.SessionUseCase,
) *MarketHandler {
	if logger == nil {
		logger = applogger.Nop()
	}
	return &MarketHandler{
		logger:   logger,
		movers:   movers,
		news:     news,
		candles:  candles,
		analysis: analysis,
		backtest: backtest,
		session:  session,
	}
}

// Use adds middleware to the /api group. It must be called before
// RegisterRoutes.
func (h *MarketHandler) Use(mw ...echo.MiddlewareFunc) { h.mw = append(h.mw, mw...) }

// WithTimeouts bounds a movers scan and a candle-backed request end to end.
// Zero leaves the request context alone.
func (h *MarketHandler) WithTimeouts(scan, history time.Duration) *MarketHandler {
	h.scanTimeout = scan
	h.historyTimeout = history
	return h
}

func requestContext(c echo.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return c.Request().Context(), func() {}
	}
	return context.WithTimeout(c.Request().Context(), d)
}

func (h *MarketHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api", h.mw...)
	g.GET("/movers", h.Movers)
	g.GET("/news", h.News)
	g.GET("/candles", h.Candles)
	g.GET("/analysis", h.Analysis)
	g.POST("/backtest", h.Backtest)
	g.GET("/session", h.Session)
}

func (h *MarketHandler) Movers(c echo.Context) error {
	req := &models.MoversRequest{}
	if verr := xhttp.Bind(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !c.QueryParams().Has("min_percent") {
		req.MinPercent = models.DefaultMinPercent
	}
	symbols := usecase.ParseSymbols(req.Symbols)
	if strings.TrimSpace(req.Symbols) != "" && len(symbols) == 0 {
		return xhttp.AppErrorResponse(c, fieldError("symbols", usecase.ErrNoSymbols))
	}

	ctx, cancel := requestContext(c, h.scanTimeout)
	defer cancel()
	res, err := h.movers.Scan(ctx, usecase.ScanParams{
		Symbols:    symbols,
		MinPercent: req.MinPercent,
		Limit:      req.Limit,
		IncludeAll: req.IncludeAll,
	})
	if err != nil {
		return h.fail(c, "movers", err, "", "")
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	return xhttp.SuccessResponse(c, res)
}

func (h *MarketHandler) News(c echo.Context) error {
	req := &models.NewsRequest{}
	if verr := xhttp.Bind(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.news.Search(c.Request().Context(), req.Query, req.Limit)
	if err != nil {
		return h.fail(c, "news", err, "", "")
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *MarketHandler) Candles(c echo.Context) error {
	req := &models.CandlesRequest{}
	if verr := xhttp.Bind(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	ctx, cancel := requestContext(c, h.historyTimeout)
	defer cancel()
	res, err := h.candles.GetCandles(ctx, usecase.GetCandlesParams{
		Symbol:    req.Symbol,
		Timeframe: req.TF,
		Limit:     req.Limit,
	})
	if err != nil {
		return h.fail(c, "candles", err, req.TF, "")
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *MarketHandler) Analysis(c echo.Context) error {
	req := &models.AnalysisRequest{}
	if verr := xhttp.Bind(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	ctx, cancel := requestContext(c, h.historyTimeout)
	defer cancel()
	res, err := h.analysis.Analyze(ctx, req.Symbol, req.TF)
	if err != nil {
		return h.fail(c, "analysis", err, req.TF, "")
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *MarketHandler) Backtest(c echo.Context) error {
	req := &models.BacktestHTTPRequest{}
	if verr := xhttp.Bind(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	ctx, cancel := requestContext(c, h.historyTimeout)
	defer cancel()
	res, err := h.backtest.Run(ctx, usecase.BacktestParams{
		Symbol:    req.Symbol,
		Timeframe: req.TF,
		Strategy:  req.Strategy,
		Params:    req.Params,
	})
	if err != nil {
		return h.fail(c, "backtest", err, req.TF, req.Strategy)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *MarketHandler) Session(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.session.Current())
}

func (h *MarketHandler) fail(c echo.Context, op string, err error, tf, strategy string) error {
	appErr := toAppError(err, tf, strategy)
	if appErr == nil {
		h.logger.Error(op+" usecase error", applogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	h.logger.Debug(op+" request rejected", applogger.Error(err))
	return xhttp.AppErrorResponse(c, appErr)
}
