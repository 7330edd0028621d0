package handlers

import (
	"finance/internal/services"

	"github.com/gin-gonic/gin"
)

// QuoteHandler serves symbol lookups.
type QuoteHandler struct {
	quoteService services.QuoteServicer
}

// NewQuoteHandler creates a new QuoteHandler
func NewQuoteHandler(quoteService services.QuoteServicer) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

// Form shows the quote page.
func (h *QuoteHandler) Form(c *gin.Context) {
	render(c, "quote.html", "Quote", nil)
}

// Lookup shows the current price of the submitted symbol.
func (h *QuoteHandler) Lookup(c *gin.Context) {
	q, err := h.quoteService.Quote(c.Request.Context(), c.PostForm("symbol"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	render(c, "quoted.html", "Quoted", gin.H{"Quote": q})
}
