package handlers

import (
	"bytes"
	"net/http"
	"strings"
	"testing"
	"time"

	"finance/internal/models"
	"finance/internal/services"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func sampleHistory() []services.HistoryEntry {
	ts := time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC)
	return []services.HistoryEntry{
		{ID: "2", Symbol: "AAA", Kind: models.TradeKindSell, Shares: 4, Price: decimal.NewFromInt(60), Total: decimal.NewFromInt(240), Timestamp: ts.Add(time.Hour)},
		{ID: "1", Symbol: "AAA", Kind: models.TradeKindBuy, Shares: 10, Price: decimal.NewFromInt(50), Total: decimal.NewFromInt(500), Timestamp: ts},
	}
}

func TestHistoryHandler_History(t *testing.T) {
	ledger := &mockLedgerService{
		historyFn: func(string) ([]services.HistoryEntry, error) { return sampleHistory(), nil },
	}
	r := setupPageRouter(nil, nil, nil, NewHistoryHandler(ledger))

	rec := serve(r, newGet("/history"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	sell := strings.Index(body, "<td>Sell</td>")
	buy := strings.Index(body, "<td>Buy</td>")
	if sell < 0 || buy < 0 || sell > buy {
		t.Errorf("expected Sell listed before Buy")
	}
	if !strings.Contains(body, "2024-03-01 15:30:00") || !strings.Contains(body, "$240.00") {
		t.Errorf("expected timestamp and total in page")
	}
}

func TestHistoryHandler_Export(t *testing.T) {
	ledger := &mockLedgerService{
		historyFn: func(string) ([]services.HistoryEntry, error) { return sampleHistory(), nil },
	}
	r := setupPageRouter(nil, nil, nil, NewHistoryHandler(ledger))

	rec := serve(r, newGet("/history.xlsx"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("unexpected content type %q", ct)
	}

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("response is not a workbook: %v", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(historySheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[1][0] != "AAA" || rows[1][1] != "Sell" || rows[1][2] != "4" {
		t.Errorf("unexpected first row: %v", rows[1])
	}
}
