package handlers

import (
	"finance/internal/services"

	"github.com/gin-gonic/gin"
)

// PortfolioHandler renders the home page.
type PortfolioHandler struct {
	portfolioService services.PortfolioServicer
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService services.PortfolioServicer) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService}
}

// Index shows holdings at current prices, cash and the grand total.
func (h *PortfolioHandler) Index(c *gin.Context) {
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

	render(c, "index.html", "Portfolio", gin.H{"Portfolio": portfolio})
}
