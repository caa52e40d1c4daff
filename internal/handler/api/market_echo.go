package api

import (
	"errors"
	"net/http"

	models "github.com/mmkaya-ui/borsa2/internal/domain/models"
	"github.com/mmkaya-ui/borsa2/internal/service/ratelimit"
	"github.com/mmkaya-ui/borsa2/internal/usecase"
	xhttp "github.com/mmkaya-ui/borsa2/pkg/http"
	xlogger "github.com/mmkaya-ui/borsa2/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Rate limit for the forensic sweep; it walks the whole universe per call.
const (
	scanBucketCapacity = 5
	scanRefillPerSec   = 1
)

// MarketEchoHandler exposes the scoring engine over HTTP.
type MarketEchoHandler struct {
	logger    *xlogger.Logger
	market    *usecase.MarketAnalysisUseCase
	vigil     *usecase.VigilReportUseCase
	detective *usecase.DetectiveScanUseCase
	rl        *ratelimit.Limiter
}

func NewMarketEchoHandler(
	logger *xlogger.Logger,
	market *usecase.MarketAnalysisUseCase,
	vigil *usecase.VigilReportUseCase,
	detective *usecase.DetectiveScanUseCase,
) *MarketEchoHandler {
	return &MarketEchoHandler{
		logger:    logger,
		market:    market,
		vigil:     vigil,
		detective: detective,
		rl:        ratelimit.New(),
	}
}

func (h *MarketEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/market/analysis", h.MarketAnalysis)
	g.GET("/stock/:symbol/analysis", h.StockAnalysis)
	g.GET("/vigil", h.Vigil)
	g.GET("/detective/scan", h.DetectiveScan)
}

func (h *MarketEchoHandler) MarketAnalysis(c echo.Context) error {
	req := &models.MarketAnalysisRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.market.AnalyzeMarket(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("market analysis error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, res, int64(len(res)))
}

func (h *MarketEchoHandler) StockAnalysis(c echo.Context) error {
	req := &models.StockAnalysisRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.market.AnalyzeStock(c.Request().Context(), req.Symbol)
	if err != nil {
		if errors.Is(err, usecase.ErrUnknownSymbol) {
			return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("symbol %s not found", req.Symbol))
		}
		h.logger.Error("stock analysis error",
			xlogger.String("symbol", req.Symbol),
			xlogger.Error(err),
		)
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()))
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *MarketEchoHandler) Vigil(c echo.Context) error {
	req := &models.VigilRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.vigil.GetReport(c.Request().Context(), req.Fresh)
	if err != nil {
		h.logger.Error("vigil report error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *MarketEchoHandler) DetectiveScan(c echo.Context) error {
	req := &models.DetectiveScanRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if !h.rl.Allow(c.RealIP()+":scan", scanBucketCapacity, scanRefillPerSec) {
		h.logger.Warn("detective scan rate limited", xlogger.String("remote", c.RealIP()))
		return xhttp.DataResponse(c, http.StatusTooManyRequests, "rate limited")
	}

	res, err := h.detective.Scan(c.Request().Context(), req.Limit)
	if err != nil {
		h.logger.Error("detective scan error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, res, int64(len(res)))
}
