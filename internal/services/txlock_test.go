package services

import (
	"testing"

	"gorm.io/gorm"

	"hearth/internal/testutil"
)

// The advisory lock is postgres-only; on other dialects every write path
// still runs it, so it must be a clean no-op inside a transaction.
func TestLockHouseholdTxNonPostgres(t *testing.T) {
	env := newTestEnv(t)

	err := env.db.Transaction(func(tx *gorm.DB) error {
		return lockHouseholdTx(tx, 1)
	})
	testutil.AssertNoError(t, err)
}
