package models

import (
	"time"

	"finance/internal/uuid"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TradeKind labels a ledger entry for display.
type TradeKind string

const (
	TradeKindBuy  TradeKind = "Buy"
	TradeKindSell TradeKind = "Sell"
)

// Transaction is one committed trade in the ledger. Shares is positive for
// a buy and negative for a sell; Price is the per-share quote at execution.
// This is append-only data: no Base embed, no UpdatedAt.
type Transaction struct {
	ID        string          `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Symbol    string          `gorm:"size:10;not null;index" json:"symbol"`
	Shares    int64           `gorm:"not null" json:"shares"`
	Price     decimal.Decimal `gorm:"type:numeric(16,4);not null" json:"price"`
	CreatedAt time.Time       `gorm:"not null;index" json:"created_at"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New()
	}
	return nil
}

// Kind reports whether the entry is a buy or a sell.
func (t *Transaction) Kind() TradeKind {
	if t.Shares < 0 {
		return TradeKindSell
	}
	return TradeKindBuy
}

// AbsShares returns the share count without its sign.
func (t *Transaction) AbsShares() int64 {
	if t.Shares < 0 {
		return -t.Shares
	}
	return t.Shares
}

// Total returns the cash value moved by the trade, always non-negative.
func (t *Transaction) Total() decimal.Decimal {
	return t.Price.Mul(decimal.NewFromInt(t.AbsShares()))
}
