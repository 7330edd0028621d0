package handlers

import (
	"fmt"
	"time"

	apperrors "finance/internal/errors"
	"finance/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const historySheet = "History"

// HistoryHandler shows and exports the transaction ledger.
type HistoryHandler struct {
	ledgerService services.LedgerServicer
}

// NewHistoryHandler creates a new HistoryHandler
func NewHistoryHandler(ledgerService services.LedgerServicer) *HistoryHandler {
	return &HistoryHandler{ledgerService: ledgerService}
}

// History lists every trade, newest first.
func (h *HistoryHandler) History(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entries, err := h.ledgerService.History(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	render(c, "history.html", "History", gin.H{"Entries": entries})
}

// Export downloads the history as an xlsx workbook.
func (h *HistoryHandler) Export(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entries, err := h.ledgerService.History(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	f, err := historyWorkbook(entries)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	defer func() { _ = f.Close() }()

	fileName := fmt.Sprintf("history_%s.xlsx", time.Now().UTC().Format("20060102_150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	if err := f.Write(c.Writer); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
	}
}

func historyWorkbook(entries []services.HistoryEntry) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", historySheet); err != nil {
		return nil, err
	}

	headers := []string{"Symbol", "Type", "Shares", "Price", "Total", "Transacted (UTC)"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(historySheet, cell, header); err != nil {
			return nil, err
		}
	}

	for i, e := range entries {
		row := i + 2
		values := []interface{}{
			e.Symbol,
			string(e.Kind),
			e.Shares,
			e.Price.InexactFloat64(),
			e.Total.InexactFloat64(),
			e.Timestamp.UTC().Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(historySheet, cell, v); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}
