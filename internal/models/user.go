package models

import "github.com/shopspring/decimal"

// User is a registered trader. Username matching is case-sensitive and the
// value is stored exactly as entered.
type User struct {
	Base
	Username     string          `gorm:"uniqueIndex;not null" json:"username"`
	Hash         string          `gorm:"not null" json:"-"`
	Cash         decimal.Decimal `gorm:"type:numeric(16,4);not null" json:"cash"`
	Transactions []Transaction   `gorm:"foreignKey:UserID" json:"transactions,omitempty"`
}
