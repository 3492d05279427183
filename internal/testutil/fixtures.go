package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hearth/internal/models"
)

var userCounter atomic.Int64

// TestPassword is the plaintext password every fixture user is created
// with.
const TestPassword = "password123"

// CreateTestUser inserts a user with a unique email and returns it.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	n := userCounter.Add(1)
	hashed, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:       fmt.Sprintf("user%d@example.com", n),
		Password:    string(hashed),
		DisplayName: fmt.Sprintf("User %d", n),
		IsActive:    true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestUsers inserts n users.
func CreateTestUsers(t *testing.T, db *gorm.DB, n int) []*models.User {
	t.Helper()

	users := make([]*models.User, n)
	for i := range users {
		users[i] = CreateTestUser(t, db)
	}
	return users
}

// FixedTick returns a tick source that always yields v.
func FixedTick(v int64) func() int64 {
	return func() int64 { return v }
}
