package services

import (
	apperrors "finance/internal/errors"
	"finance/internal/models"
	"finance/internal/pagination"

	"gorm.io/gorm"
)

// ledgerService reads the append-only transaction ledger. It has no write
// methods; entries are only created by the trade service.
type ledgerService struct {
	db *gorm.DB
}

// NewLedgerService creates a new LedgerServicer.
func NewLedgerService(db *gorm.DB) LedgerServicer {
	return &ledgerService{db: db}
}

func (s *ledgerService) newestFirst(userID string) *gorm.DB {
	return s.db.Model(&models.Transaction{}).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC")
}

// History returns every trade the user made, newest first.
func (s *ledgerService) History(userID string) ([]HistoryEntry, error) {
	var rows []models.Transaction
	if err := s.newestFirst(userID).Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return toHistory(rows), nil
}

// HistoryPage returns one page of History.
func (s *ledgerService) HistoryPage(userID string, page pagination.PageRequest) (*pagination.PageResponse[HistoryEntry], error) {
	page.Defaults()

	var total int64
	if err := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var rows []models.Transaction
	if err := s.newestFirst(userID).Scopes(pagination.Paginate(page)).Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(toHistory(rows), page.Page, page.PageSize, total)
	return &resp, nil
}

// SellableSymbols lists the symbols the user can currently sell.
func (s *ledgerService) SellableSymbols(userID string) ([]string, error) {
	holdings, err := holdingsQuery(s.db, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	symbols := make([]string, 0, len(holdings))
	for _, h := range holdings {
		symbols = append(symbols, h.Symbol)
	}
	return symbols, nil
}

func toHistory(rows []models.Transaction) []HistoryEntry {
	entries := make([]HistoryEntry, 0, len(rows))
	for i := range rows {
		t := &rows[i]
		entries = append(entries, HistoryEntry{
			ID:        t.ID,
			Symbol:    t.Symbol,
			Kind:      t.Kind(),
			Shares:    t.AbsShares(),
			Price:     t.Price,
			Total:     t.Total(),
			Timestamp: t.CreatedAt,
		})
	}
	return entries
}
