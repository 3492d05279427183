package services

import (
	"gorm.io/gorm"

	apperrors "hearth/internal/errors"
)

// lockHouseholdTx takes a transaction-scoped advisory lock on the
// household, serializing writers that run in separate processes against
// the same Postgres (the API and the scheduler binary). The in-process
// mutex registry covers writers within one binary; dialects without
// advisory locks rely on it alone. The lock releases with the
// transaction.
func lockHouseholdTx(tx *gorm.DB, householdID uint) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", int64(householdID)).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
