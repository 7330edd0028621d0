package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	apperrors "finance/internal/errors"
	"finance/internal/pagination"
	"finance/internal/services"

	"github.com/gin-gonic/gin"
)

// APIHandler serves the JSON API. It shares the browser session.
type APIHandler struct {
	quoteService     services.QuoteServicer
	portfolioService services.PortfolioServicer
	ledgerService    services.LedgerServicer
	tradeService     services.TradeServicer
	auditService     services.AuditServicer
}

// NewAPIHandler creates a new APIHandler
func NewAPIHandler(
	quoteService services.QuoteServicer,
	portfolioService services.PortfolioServicer,
	ledgerService services.LedgerServicer,
	tradeService services.TradeServicer,
	auditService services.AuditServicer,
) *APIHandler {
	return &APIHandler{
		quoteService:     quoteService,
		portfolioService: portfolioService,
		ledgerService:    ledgerService,
		tradeService:     tradeService,
		auditService:     auditService,
	}
}

// TradeRequest is the body of a buy or sell call. Shares may be a JSON
// number or a string; anything that is not a positive integer is rejected
// with INVALID_SHARES.
type TradeRequest struct {
	Symbol string          `json:"symbol" example:"AAPL"`
	Shares json.RawMessage `json:"shares" swaggertype:"integer" example:"10"`
}

func (r TradeRequest) rawShares() string {
	return strings.Trim(strings.TrimSpace(string(r.Shares)), `"`)
}

// HistoryPage is a page of history entries.
type HistoryPage = pagination.PageResponse[services.HistoryEntry]

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// HealthResponse is the liveness probe body.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// Health reports liveness
// @Summary     Health check
// @Tags        system
// @Produce     json
// @Success     200 {object} HealthResponse
// @Router      /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// Quote looks up a symbol
// @Summary     Look up a stock quote
// @Tags        quotes
// @Produce     json
// @Param       symbol path string true "Ticker symbol"
// @Success     200 {object} quote.Quote
// @Failure     400 {object} ErrorResponse "Invalid symbol or quote service unavailable"
// @Failure     401 {object} ErrorResponse "Not logged in"
// @Router      /v1/quote/{symbol} [get]
func (h *APIHandler) Quote(c *gin.Context) {
	q, err := h.quoteService.Quote(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

// Portfolio returns the valued portfolio
// @Summary     Current portfolio
// @Description Cash, every open position at the latest price, and the total.
// @Tags        portfolio
// @Produce     json
// @Success     200 {object} services.Portfolio
// @Failure     400 {object} ErrorResponse "Quote service unavailable"
// @Failure     401 {object} ErrorResponse "Not logged in"
// @Router      /v1/portfolio [get]
func (h *APIHandler) Portfolio(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	portfolio, err := h.portfolioService.AccountValue(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, portfolio)
}

// History returns a page of the ledger
// @Summary     Transaction history
// @Tags        portfolio
// @Produce     json
// @Param       page      query int false "Page number"     minimum(1)
// @Param       page_size query int false "Items per page" minimum(1) maximum(100)
// @Success     200 {object} HistoryPage
// @Failure     400 {object} ErrorResponse "Invalid paging parameters"
// @Failure     401 {object} ErrorResponse "Not logged in"
// @Router      /v1/history [get]
func (h *APIHandler) History(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	resp, err := h.ledgerService.HistoryPage(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Buy executes a market buy
// @Summary     Buy shares
// @Tags        trades
// @Accept      json
// @Produce     json
// @Param       request body TradeRequest true "Order"
// @Success     201 {object} services.TradeResult
// @Failure     400 {object} ErrorResponse "Invalid order or insufficient funds"
// @Failure     401 {object} ErrorResponse "Not logged in"
// @Router      /v1/buy [post]
func (h *APIHandler) Buy(c *gin.Context) {
	h.trade(c, services.AuditActionBuy, h.tradeService.Buy)
}

// Sell executes a market sell
// @Summary     Sell shares
// @Tags        trades
// @Accept      json
// @Produce     json
// @Param       request body TradeRequest true "Order"
// @Success     201 {object} services.TradeResult
// @Failure     400 {object} ErrorResponse "Invalid order or insufficient shares"
// @Failure     401 {object} ErrorResponse "Not logged in"
// @Router      /v1/sell [post]
func (h *APIHandler) Sell(c *gin.Context) {
	h.trade(c, services.AuditActionSell, h.tradeService.Sell)
}

type tradeFunc func(ctx context.Context, userID, symbol, shares string) (*services.TradeResult, error)

func (h *APIHandler) trade(c *gin.Context, action string, execute tradeFunc) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := execute(c.Request.Context(), userID, req.Symbol, req.rawShares())
	if err != nil {
		respondWithError(c, err)
		return
	}

	logTrade(h.auditService, c, userID, action, result)
	c.JSON(http.StatusCreated, result)
}
