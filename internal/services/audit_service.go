package services

import (
	"encoding/json"

	apperrors "finance/internal/errors"
	"finance/internal/logger"
	"finance/internal/models"

	"gorm.io/gorm"
)

// Audit actions.
const (
	AuditActionRegister       = "REGISTER"
	AuditActionLogin          = "LOGIN"
	AuditActionLogout         = "LOGOUT"
	AuditActionBuy            = "BUY"
	AuditActionSell           = "SELL"
	AuditActionChangePassword = "CHANGE_PASSWORD"
)

// maxAuditEntries caps Recent.
const maxAuditEntries = 500

// auditService handles audit log recording.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log records an audit event. Failures are logged and swallowed so that a
// committed trade is never reported as failed.
func (s *auditService) Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]any) {
	var changesJSON string
	if changes != nil {
		data, err := json.Marshal(changes)
		if err != nil {
			logger.Get().Errorw("failed to marshal audit log changes", "error", err, "action", action)
			changesJSON = "{}"
		} else {
			changesJSON = string(data)
		}
	}

	entry := &models.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Changes:      changesJSON,
	}

	if err := s.db.Create(entry).Error; err != nil {
		logger.Get().Errorw("failed to create audit log entry",
			"error", err,
			"user_id", userID,
			"action", action,
			"resource_type", resourceType,
			"resource_id", resourceID,
		)
	}
}

// Recent returns the user's latest audit entries, newest first.
func (s *auditService) Recent(userID string, limit int) ([]models.AuditLog, error) {
	if limit < 1 || limit > maxAuditEntries {
		limit = maxAuditEntries
	}

	var entries []models.AuditLog
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entries, nil
}
