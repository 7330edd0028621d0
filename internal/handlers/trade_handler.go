package handlers

import (
	apperrors "finance/internal/errors"
	"finance/internal/services"

	"github.com/gin-gonic/gin"
)

// TradeHandler serves the buy and sell pages.
type TradeHandler struct {
	tradeService  services.TradeServicer
	ledgerService services.LedgerServicer
	auditService  services.AuditServicer
}

// NewTradeHandler creates a new TradeHandler
func NewTradeHandler(tradeService services.TradeServicer, ledgerService services.LedgerServicer, auditService services.AuditServicer) *TradeHandler {
	return &TradeHandler{tradeService: tradeService, ledgerService: ledgerService, auditService: auditService}
}

type tradeForm struct {
	Symbol string `form:"symbol"`
	Shares string `form:"shares"`
}

// BuyForm shows the buy page, prefilled from ?symbol= when present.
func (h *TradeHandler) BuyForm(c *gin.Context) {
	render(c, "buy.html", "Buy", gin.H{"Symbol": c.Query("symbol")})
}

// Buy executes a market buy.
func (h *TradeHandler) Buy(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var form tradeForm
	if err := c.ShouldBind(&form); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.tradeService.Buy(c.Request.Context(), userID, form.Symbol, form.Shares)
	if err != nil {
		respondWithError(c, err)
		return
	}

	logTrade(h.auditService, c, userID, services.AuditActionBuy, result)
	redirectWithFlash(c, "/", "Bought!")
}

// SellForm shows the sell page with a choice of the symbols currently held.
func (h *TradeHandler) SellForm(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	symbols, err := h.ledgerService.SellableSymbols(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	render(c, "sell.html", "Sell", gin.H{"Symbols": symbols})
}

// Sell executes a market sell.
func (h *TradeHandler) Sell(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var form tradeForm
	if err := c.ShouldBind(&form); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.tradeService.Sell(c.Request.Context(), userID, form.Symbol, form.Shares)
	if err != nil {
		respondWithError(c, err)
		return
	}

	logTrade(h.auditService, c, userID, services.AuditActionSell, result)
	redirectWithFlash(c, "/", "Sold!")
}

func logTrade(audit services.AuditServicer, c *gin.Context, userID, action string, result *services.TradeResult) {
	tx := result.Transaction
	audit.Log(userID, action, "transaction", tx.ID, c.ClientIP(), map[string]interface{}{
		"symbol": tx.Symbol,
		"shares": tx.Shares,
		"price":  tx.Price.String(),
		"cash":   result.Cash.String(),
	})
}
