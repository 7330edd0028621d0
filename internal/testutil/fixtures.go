package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"finance/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plaintext password of every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a unique username and 10000.00 cash.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithCash(t, db, decimal.NewFromInt(10000))
}

// CreateTestUserWithCash creates a user holding the given cash balance.
func CreateTestUserWithCash(t *testing.T, db *gorm.DB, cash decimal.Decimal) *models.User {
	t.Helper()
	return CreateTestUserWithUsername(t, db, fmt.Sprintf("trader%d", nextID()), cash)
}

// CreateTestUserWithUsername creates a user with the given username and cash.
func CreateTestUserWithUsername(t *testing.T, db *gorm.DB, username string, cash decimal.Decimal) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username: username,
		Hash:     string(hash),
		Cash:     cash,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestTransaction appends a ledger entry. Positive shares record a
// buy, negative a sell. Cash is not touched.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID, symbol string, shares int64, price string) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID: userID,
		Symbol: symbol,
		Shares: shares,
		Price:  decimal.RequireFromString(price),
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// ReloadUser reads the user's current row back from the database.
func ReloadUser(t *testing.T, db *gorm.DB, userID string) *models.User {
	t.Helper()

	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	return &user
}

// CountTransactions returns the number of ledger entries owned by the user.
func CountTransactions(t *testing.T, db *gorm.DB, userID string) int64 {
	t.Helper()

	var count int64
	if err := db.Model(&models.Transaction{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		t.Fatalf("failed to count transactions: %v", err)
	}
	return count
}
