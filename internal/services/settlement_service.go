package services

import (
	"errors"
	"regexp"

	"gorm.io/gorm"

	apperrors "hearth/internal/errors"
	"hearth/internal/events"
	"hearth/internal/hlock"
	"hearth/internal/models"
	"hearth/internal/pagination"
)

var txReferencePattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// settlementService implements the settlement manager. A settlement moves
// money against exactly one directional balance entry; it never nets the
// opposite direction and never overdraws.
type settlementService struct {
	db        *gorm.DB
	locks     *hlock.Registry
	ticks     TickSource
	balances  BalanceServicer
	publisher *events.Publisher
}

// NewSettlementService creates a new SettlementServicer.
func NewSettlementService(db *gorm.DB, locks *hlock.Registry, ticks TickSource, balances BalanceServicer, publisher *events.Publisher) SettlementServicer {
	return &settlementService{
		db:        db,
		locks:     locks,
		ticks:     ticks,
		balances:  balances,
		publisher: publisher,
	}
}

// SettlePayment records that the caller paid toUserID and reduces the
// caller's debt toward them. Fails with INSUFFICIENT_FUNDS when the debt
// is smaller than the payment; partial settlements below the debt are
// fine. On failure the settlement counter does not advance.
func (s *settlementService) SettlePayment(callerID string, householdID uint, toUserID string, amount int64) (*models.Settlement, error) {
	if amount <= 0 {
		return nil, apperrors.ErrInvalidAmount
	}
	if callerID == toUserID {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "cannot settle with yourself")
	}

	unlock := s.locks.Lock(householdID)
	defer unlock()

	var settlement *models.Settlement
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := lockHouseholdTx(tx, householdID); err != nil {
			return err
		}
		if _, err := getActiveHousehold(tx, householdID); err != nil {
			return err
		}
		if _, err := getActiveMember(tx, householdID, callerID); err != nil {
			return err
		}
		if _, err := getActiveMember(tx, householdID, toUserID); err != nil {
			return err
		}

		if err := s.balances.AdjustBalance(tx, householdID, callerID, toUserID, -amount); err != nil {
			return err
		}

		settlementID, err := nextSettlementID(tx, householdID)
		if err != nil {
			return err
		}

		settlement = &models.Settlement{
			HouseholdID:  householdID,
			SettlementID: settlementID,
			FromUserID:   callerID,
			ToUserID:     toUserID,
			Amount:       amount,
			Tick:         s.ticks(),
		}
		if err := tx.Create(settlement).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(events.RoutingKeySettlementRecorded, events.SettlementRecorded{
		HouseholdID:  settlement.HouseholdID,
		SettlementID: settlement.SettlementID,
		FromUserID:   settlement.FromUserID,
		ToUserID:     settlement.ToUserID,
		Amount:       settlement.Amount,
		Tick:         settlement.Tick,
	})

	return settlement, nil
}

// RecordExternalPayment attaches an external transaction reference to an
// existing settlement. Only the settlement's payer may attach, the
// reference must be 64 lowercase hex characters, and a settlement already
// carrying a reference rejects a second one.
func (s *settlementService) RecordExternalPayment(callerID string, householdID uint, settlementID int64, txReference string) (*models.Settlement, error) {
	if !txReferencePattern.MatchString(txReference) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "transaction reference must be 64 lowercase hex characters")
	}

	unlock := s.locks.Lock(householdID)
	defer unlock()

	var settlement *models.Settlement
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := lockHouseholdTx(tx, householdID); err != nil {
			return err
		}
		if _, err := getHousehold(tx, householdID); err != nil {
			return err
		}

		var err error
		settlement, err = getSettlement(tx, householdID, settlementID)
		if err != nil {
			return err
		}
		if settlement.FromUserID != callerID {
			return apperrors.ErrNotAuthorized
		}
		if settlement.TxReference != "" {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "settlement already carries a transaction reference")
		}

		if err := tx.Model(settlement).Update("tx_reference", txReference).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		settlement.TxReference = txReference
		return nil
	})
	if err != nil {
		return nil, err
	}
	return settlement, nil
}

// GetSettlement retrieves one settlement by its per-household ID.
func (s *settlementService) GetSettlement(householdID uint, settlementID int64) (*models.Settlement, error) {
	if _, err := getHousehold(s.db, householdID); err != nil {
		return nil, err
	}
	return getSettlement(s.db, householdID, settlementID)
}

// ListHouseholdSettlements returns a page of settlements, newest first.
func (s *settlementService) ListHouseholdSettlements(householdID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Settlement], error) {
	if _, err := getHousehold(s.db, householdID); err != nil {
		return nil, err
	}
	page.Defaults()

	var total int64
	if err := s.db.Model(&models.Settlement{}).
		Where("household_id = ?", householdID).
		Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var settlements []models.Settlement
	if err := s.db.Where("household_id = ?", householdID).
		Order("settlement_id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&settlements).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(settlements, page.Page, page.PageSize, total)
	return &resp, nil
}

// nextSettlementID increments and returns the household's settlement
// counter. Runs inside the caller's transaction under the household lock.
func nextSettlementID(tx *gorm.DB, householdID uint) (int64, error) {
	var counter models.HouseholdCounter
	if err := tx.First(&counter, "household_id = ?", householdID).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	id := counter.NextSettlementID
	if err := tx.Model(&counter).Update("next_settlement_id", id+1).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return id, nil
}

// getSettlement loads one settlement row.
func getSettlement(tx *gorm.DB, householdID uint, settlementID int64) (*models.Settlement, error) {
	var settlement models.Settlement
	if err := tx.Where("household_id = ? AND settlement_id = ?", householdID, settlementID).
		First(&settlement).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSettlementNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &settlement, nil
}
