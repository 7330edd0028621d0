package services

import (
	"errors"
	"strings"

	apperrors "finance/internal/errors"
	"finance/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// maxPasswordBytes is the longest input bcrypt will hash.
const maxPasswordBytes = 72

// userService handles registration and credential checks.
type userService struct {
	db       *gorm.DB
	seedCash decimal.Decimal
}

// NewUserService creates a new UserServicer. New accounts start with seedCash.
func NewUserService(db *gorm.DB, seedCash decimal.Decimal) UserServicer {
	return &userService{db: db, seedCash: seedCash}
}

// Register creates an account. The username is stored exactly as given.
func (s *userService) Register(username, password, confirmation string) (*models.User, error) {
	switch {
	case strings.TrimSpace(username) == "":
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Must provide username")
	case strings.TrimSpace(password) == "":
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Must provide password")
	case strings.TrimSpace(confirmation) == "":
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Must confirm password")
	case len(password) > maxPasswordBytes:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Password must be at most 72 bytes")
	case password != confirmation:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Passwords do not match")
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateUsername
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		Username: username,
		Hash:     string(hash),
		Cash:     s.seedCash,
	}
	if err := s.db.Create(user).Error; err != nil {
		// Lost a race with a concurrent registration.
		if isUniqueConstraintError(err) {
			return nil, apperrors.ErrDuplicateUsername
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return user, nil
}

// Authenticate verifies a username and password pair.
func (s *userService) Authenticate(username, password string) (*models.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Must provide username")
	}
	if password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Must provide password")
	}

	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if !verifyPassword(&user, password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return &user, nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// ChangePassword replaces the user's password after checking the current one.
func (s *userService) ChangePassword(userID, current, password, confirmation string) error {
	switch {
	case current == "":
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Must provide current password")
	case strings.TrimSpace(password) == "":
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Must provide new password")
	case len(password) > maxPasswordBytes:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Password must be at most 72 bytes")
	case password != confirmation:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Passwords do not match")
	}

	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	if !verifyPassword(user, current) {
		return apperrors.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Model(user).Update("hash", string(hash)).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// verifyPassword checks if the provided password matches the stored hash
func verifyPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.Hash), []byte(password)) == nil
}
