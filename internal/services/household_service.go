package services

import (
	"errors"

	"gorm.io/gorm"

	"hearth/internal/allocation"
	apperrors "hearth/internal/errors"
	"hearth/internal/hlock"
	"hearth/internal/models"
)

// householdService implements the household registry: creation, membership,
// and allocation weights. All mutations take the household lock and run in
// a transaction; preconditions are checked under the lock so no partial
// state is ever observable.
type householdService struct {
	db    *gorm.DB
	locks *hlock.Registry
	ticks TickSource
}

// NewHouseholdService creates a new HouseholdServicer.
func NewHouseholdService(db *gorm.DB, locks *hlock.Registry, ticks TickSource) HouseholdServicer {
	return &householdService{db: db, locks: locks, ticks: ticks}
}

// CreateHousehold allocates the next household ID, stores the household,
// initializes its counters, and registers the creator as the sole member
// with the full 10000 bps weight, all in one transaction.
func (s *householdService) CreateHousehold(creatorID, name string) (*models.Household, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "household name is required")
	}
	if creatorID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "creator identity is required")
	}

	tick := s.ticks()
	household := &models.Household{
		Name:        name,
		CreatorID:   creatorID,
		CreatedTick: tick,
		Active:      true,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(household).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		creator := &models.HouseholdMember{
			HouseholdID:   household.ID,
			UserID:        creatorID,
			Position:      0,
			JoinTick:      tick,
			AllocationBPS: allocation.TotalBPS,
			Active:        true,
		}
		if err := tx.Create(creator).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		counter := &models.HouseholdCounter{
			HouseholdID:      household.ID,
			NextExpenseID:    1,
			NextSettlementID: 1,
		}
		if err := tx.Create(counter).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return household, nil
}

// GetHousehold retrieves a household by ID.
func (s *householdService) GetHousehold(householdID uint) (*models.Household, error) {
	return getHousehold(s.db, householdID)
}

// HouseholdExists reports whether a household ID is known, active or not.
func (s *householdService) HouseholdExists(householdID uint) (bool, error) {
	var count int64
	if err := s.db.Model(&models.Household{}).Where("id = ?", householdID).Count(&count).Error; err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count > 0, nil
}

// DeactivateHousehold soft-deletes a household. Creator only. Reads keep
// working afterward; all further mutations are rejected.
func (s *householdService) DeactivateHousehold(callerID string, householdID uint) error {
	unlock := s.locks.Lock(householdID)
	defer unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := lockHouseholdTx(tx, householdID); err != nil {
			return err
		}
		household, err := getActiveHousehold(tx, householdID)
		if err != nil {
			return err
		}
		if household.CreatorID != callerID {
			return apperrors.ErrNotAuthorized
		}

		if err := tx.Model(household).Update("active", false).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// AddMember appends a member to the household list. Creator only. The new
// member's weight is floor(10000 / new_count); existing members' stored
// weights are left untouched; weights are display metadata
// and money splits never read them. A previously removed member is
// reactivated with a fresh weight and join tick.
func (s *householdService) AddMember(callerID string, householdID uint, newMemberID string) (*models.HouseholdMember, error) {
	if newMemberID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "member identity is required")
	}

	unlock := s.locks.Lock(householdID)
	defer unlock()

	var member *models.HouseholdMember
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := lockHouseholdTx(tx, householdID); err != nil {
			return err
		}
		household, err := getActiveHousehold(tx, householdID)
		if err != nil {
			return err
		}
		if household.CreatorID != callerID {
			return apperrors.ErrNotAuthorized
		}

		var existing models.HouseholdMember
		found := true
		if err := tx.Where("household_id = ? AND user_id = ?", householdID, newMemberID).
			First(&existing).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			found = false
		}
		if found && existing.Active {
			return apperrors.ErrAlreadyMember
		}

		var activeCount int64
		if err := tx.Model(&models.HouseholdMember{}).
			Where("household_id = ? AND active = ?", householdID, true).
			Count(&activeCount).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if activeCount >= models.MaxHouseholdMembers {
			return apperrors.ErrCapacityExceeded
		}

		weight, err := allocation.EqualWeight(int(activeCount) + 1)
		if err != nil {
			return err
		}

		if found {
			// Reactivation keeps the original list position.
			updates := map[string]interface{}{
				"active":         true,
				"allocation_bps": weight,
				"join_tick":      s.ticks(),
			}
			if err := tx.Model(&existing).Updates(updates).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			member = &existing
			member.Active = true
			member.AllocationBPS = weight
			return nil
		}

		var maxPosition int
		row := tx.Model(&models.HouseholdMember{}).
			Where("household_id = ?", householdID).
			Select("COALESCE(MAX(position), -1)").
			Row()
		if err := row.Scan(&maxPosition); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		member = &models.HouseholdMember{
			HouseholdID:   householdID,
			UserID:        newMemberID,
			Position:      maxPosition + 1,
			JoinTick:      s.ticks(),
			AllocationBPS: weight,
			Active:        true,
		}
		if err := tx.Create(member).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return member, nil
}

// RemoveMember soft-deactivates a membership. Creator only; the creator
// cannot be removed. Balance entries involving the removed member are
// preserved: outstanding debts survive membership.
func (s *householdService) RemoveMember(callerID string, householdID uint, memberID string) error {
	unlock := s.locks.Lock(householdID)
	defer unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := lockHouseholdTx(tx, householdID); err != nil {
			return err
		}
		household, err := getActiveHousehold(tx, householdID)
		if err != nil {
			return err
		}
		if household.CreatorID != callerID {
			return apperrors.ErrNotAuthorized
		}
		if memberID == household.CreatorID {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "the household creator cannot be removed")
		}

		member, err := getActiveMember(tx, householdID, memberID)
		if err != nil {
			return err
		}

		if err := tx.Model(member).Update("active", false).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// UpdateMemberAllocation overwrites one member's display weight. Creator
// only. Peers are not rebalanced.
func (s *householdService) UpdateMemberAllocation(callerID string, householdID uint, memberID string, bps int) (*models.HouseholdMember, error) {
	if bps < 0 || bps > allocation.TotalBPS {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidAllocation, "allocation must be between 0 and 10000 basis points")
	}

	unlock := s.locks.Lock(householdID)
	defer unlock()

	var member *models.HouseholdMember
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := lockHouseholdTx(tx, householdID); err != nil {
			return err
		}
		household, err := getActiveHousehold(tx, householdID)
		if err != nil {
			return err
		}
		if household.CreatorID != callerID {
			return apperrors.ErrNotAuthorized
		}

		member, err = getActiveMember(tx, householdID, memberID)
		if err != nil {
			return err
		}

		if err := tx.Model(member).Update("allocation_bps", bps).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		member.AllocationBPS = bps
		return nil
	})
	if err != nil {
		return nil, err
	}

	return member, nil
}

// GetMembers returns the household's member list in insertion order,
// including removed members (Active=false).
func (s *householdService) GetMembers(householdID uint) ([]models.HouseholdMember, error) {
	if _, err := getHousehold(s.db, householdID); err != nil {
		return nil, err
	}

	var members []models.HouseholdMember
	if err := s.db.Where("household_id = ?", householdID).
		Order("position ASC").
		Find(&members).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return members, nil
}

// GetActiveMember returns the active membership row for userID.
func (s *householdService) GetActiveMember(householdID uint, userID string) (*models.HouseholdMember, error) {
	if _, err := getHousehold(s.db, householdID); err != nil {
		return nil, err
	}
	return getActiveMember(s.db, householdID, userID)
}

// getHousehold loads a household regardless of its active flag.
func getHousehold(tx *gorm.DB, householdID uint) (*models.Household, error) {
	var household models.Household
	if err := tx.First(&household, householdID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrHouseholdNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &household, nil
}

// getActiveHousehold loads a household and rejects deactivated ones.
// Used by every mutating operation.
func getActiveHousehold(tx *gorm.DB, householdID uint) (*models.Household, error) {
	household, err := getHousehold(tx, householdID)
	if err != nil {
		return nil, err
	}
	if !household.Active {
		return nil, apperrors.ErrHouseholdInactive
	}
	return household, nil
}

// getActiveMember loads an active membership row.
func getActiveMember(tx *gorm.DB, householdID uint, userID string) (*models.HouseholdMember, error) {
	var member models.HouseholdMember
	if err := tx.Where("household_id = ? AND user_id = ? AND active = ?", householdID, userID, true).
		First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotInHousehold
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &member, nil
}

// activeMemberIDs returns the user IDs of all active members.
func activeMemberIDs(tx *gorm.DB, householdID uint) ([]string, error) {
	var ids []string
	if err := tx.Model(&models.HouseholdMember{}).
		Where("household_id = ? AND active = ?", householdID, true).
		Order("position ASC").
		Pluck("user_id", &ids).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return ids, nil
}
