package services

import (
	"errors"
	"strings"

	apperrors "finance/internal/errors"
	"finance/internal/models"

	"gorm.io/gorm"
)

// asAppError passes AppErrors through and wraps anything else as an
// internal error.
func asAppError(err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}

// isUniqueConstraintError checks if a GORM error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // SQLite
		strings.Contains(msg, "duplicate key value violates unique constraint") // PostgreSQL
}

// holdingsQuery returns net shares per symbol for the user, only where the
// position is still open, ordered by symbol.
func holdingsQuery(db *gorm.DB, userID string) ([]Holding, error) {
	var holdings []Holding
	err := db.Model(&models.Transaction{}).
		Select("symbol, SUM(shares) AS shares").
		Where("user_id = ?", userID).
		Group("symbol").
		Having("SUM(shares) > 0").
		Order("symbol").
		Scan(&holdings).Error
	if err != nil {
		return nil, err
	}
	if holdings == nil {
		holdings = []Holding{}
	}
	return holdings, nil
}

// netShares returns the user's net position in one symbol.
func netShares(db *gorm.DB, userID, symbol string) (int64, error) {
	var held int64
	err := db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(shares), 0)").
		Where("user_id = ? AND symbol = ?", userID, symbol).
		Scan(&held).Error
	return held, err
}
