package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "hearth/internal/errors"
	"hearth/internal/models"
)

// balanceService maintains the directional pairwise balance store.
// Balance(A, B) is what A owes B; the reverse direction is a separate
// row and the two are never netted against each other.
type balanceService struct {
	db *gorm.DB
}

// NewBalanceService creates a new BalanceServicer.
func NewBalanceService(db *gorm.DB) BalanceServicer {
	return &balanceService{db: db}
}

// GetMemberBalance returns what fromUserID owes toUserID. A pair with no
// recorded entry owes zero; this is a total function over any two IDs.
func (s *balanceService) GetMemberBalance(householdID uint, fromUserID, toUserID string) (int64, error) {
	if _, err := getHousehold(s.db, householdID); err != nil {
		return 0, err
	}

	var balance models.Balance
	err := s.db.Where("household_id = ? AND from_user_id = ? AND to_user_id = ?",
		householdID, fromUserID, toUserID).First(&balance).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return balance.Amount, nil
}

// ListHouseholdBalances returns every nonzero debt in the household.
func (s *balanceService) ListHouseholdBalances(householdID uint) ([]models.Balance, error) {
	if _, err := getHousehold(s.db, householdID); err != nil {
		return nil, err
	}

	var balances []models.Balance
	if err := s.db.Where("household_id = ? AND amount > 0", householdID).
		Order("from_user_id ASC, to_user_id ASC").
		Find(&balances).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return balances, nil
}

// AdjustBalance applies a signed delta to the (from, to) entry inside the
// caller's transaction. A result below zero fails with INSUFFICIENT_FUNDS
// and nothing is written. Callers hold the household lock, so the
// read-modify-write is race free.
func (s *balanceService) AdjustBalance(tx *gorm.DB, householdID uint, fromUserID, toUserID string, delta int64) error {
	if delta == 0 {
		return nil
	}

	var balance models.Balance
	err := tx.Where("household_id = ? AND from_user_id = ? AND to_user_id = ?",
		householdID, fromUserID, toUserID).First(&balance).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if delta < 0 {
			return apperrors.ErrInsufficientFunds
		}
		balance = models.Balance{
			HouseholdID: householdID,
			FromUserID:  fromUserID,
			ToUserID:    toUserID,
			Amount:      delta,
		}
		if err := tx.Create(&balance).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	}

	updated := balance.Amount + delta
	if updated < 0 {
		return apperrors.ErrInsufficientFunds
	}
	if err := tx.Model(&balance).Update("amount", updated).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
