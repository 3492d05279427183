package services

import (
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"hearth/internal/allocation"
	apperrors "hearth/internal/errors"
	"hearth/internal/events"
	"hearth/internal/hlock"
	"hearth/internal/logger"
	"hearth/internal/models"
	"hearth/internal/pagination"
)

// schedulerConcurrency bounds how many households the recurring poster
// works on at once.
const schedulerConcurrency = 8

// expenseService implements the expense ledger. Posting an expense is
// all-or-nothing: every precondition is checked before the first write,
// and the counter increment, expense row, allocation rows and balance
// deltas commit in one transaction under the household lock.
type expenseService struct {
	db         *gorm.DB
	locks      *hlock.Registry
	ticks      TickSource
	balances   BalanceServicer
	categories CategoryServicer
	publisher  *events.Publisher
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB, locks *hlock.Registry, ticks TickSource, balances BalanceServicer, categories CategoryServicer, publisher *events.Publisher) ExpenseServicer {
	return &expenseService{
		db:         db,
		locks:      locks,
		ticks:      ticks,
		balances:   balances,
		categories: categories,
		publisher:  publisher,
	}
}

// AddExpense validates and posts a new expense. The caller must be an
// active member; the payer must be an active member; a custom allocation
// must cover only active members and sum to 10000 bps. If any check fails
// the ledger is untouched: the expense counter does not advance and no
// balance moves.
func (s *expenseService) AddExpense(callerID string, householdID uint, in ExpenseInput) (*models.Expense, error) {
	if err := validateExpenseInput(in); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(householdID)
	defer unlock()

	var expense *models.Expense
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
		if _, err := getActiveMember(tx, householdID, in.PayerID); err != nil {
			return err
		}
		if in.CategoryID != nil {
			if _, err := s.categories.GetCategoryByID(householdID, *in.CategoryID); err != nil {
				return err
			}
		}

		members, err := activeMemberIDs(tx, householdID)
		if err != nil {
			return err
		}
		if in.AllocationType == models.AllocationTypeCustom {
			active := make(map[string]bool, len(members))
			for _, m := range members {
				active[m] = true
			}
			for member := range in.CustomAllocations {
				if !active[member] {
					return apperrors.ErrUserNotInHousehold
				}
			}
		}

		shares, err := computeShares(in, members)
		if err != nil {
			return err
		}

		tick := s.ticks()
		expenseID, err := nextExpenseID(tx, householdID)
		if err != nil {
			return err
		}

		expense = &models.Expense{
			HouseholdID:    householdID,
			ExpenseID:      expenseID,
			Name:           in.Name,
			Amount:         in.Amount,
			PayerID:        in.PayerID,
			Type:           in.Type,
			RecurrenceTick: in.RecurrenceTick,
			CreatedTick:    tick,
			AllocationType: in.AllocationType,
			CategoryID:     in.CategoryID,
		}
		if in.Type == models.ExpenseTypeRecurring {
			expense.NextDueTick = tick + in.RecurrenceTick
		}
		if err := tx.Create(expense).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if in.AllocationType == models.AllocationTypeCustom {
			for member, bps := range in.CustomAllocations {
				row := models.ExpenseAllocation{
					HouseholdID: householdID,
					ExpenseID:   expenseID,
					UserID:      member,
					BPS:         bps,
				}
				if err := tx.Create(&row).Error; err != nil {
					return apperrors.Wrap(apperrors.ErrInternalServer, err)
				}
			}
		}

		// Every posting moves money immediately, recurring included; the
		// scheduler only handles the repeats from NextDueTick onward.
		return s.applyShares(tx, householdID, in.PayerID, shares)
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(events.RoutingKeyExpensePosted, events.ExpensePosted{
		HouseholdID: expense.HouseholdID,
		ExpenseID:   expense.ExpenseID,
		Name:        expense.Name,
		Amount:      expense.Amount,
		PayerID:     expense.PayerID,
		Type:        string(expense.Type),
		Tick:        expense.CreatedTick,
	})

	return expense, nil
}

// GetExpense retrieves one expense by its per-household ID.
func (s *expenseService) GetExpense(householdID uint, expenseID int64) (*models.Expense, error) {
	if _, err := getHousehold(s.db, householdID); err != nil {
		return nil, err
	}
	return getExpense(s.db, householdID, expenseID)
}

// GetExpenseAllocations returns the custom allocation rows of an expense.
// Equal-split expenses have none.
func (s *expenseService) GetExpenseAllocations(householdID uint, expenseID int64) ([]models.ExpenseAllocation, error) {
	if _, err := getHousehold(s.db, householdID); err != nil {
		return nil, err
	}
	if _, err := getExpense(s.db, householdID, expenseID); err != nil {
		return nil, err
	}

	var rows []models.ExpenseAllocation
	if err := s.db.Where("household_id = ? AND expense_id = ?", householdID, expenseID).
		Order("user_id ASC").
		Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rows, nil
}

// ListHouseholdExpenses returns a page of the household's expenses, newest
// first.
func (s *expenseService) ListHouseholdExpenses(householdID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error) {
	if _, err := getHousehold(s.db, householdID); err != nil {
		return nil, err
	}
	page.Defaults()

	var total int64
	if err := s.db.Model(&models.Expense{}).
		Where("household_id = ?", householdID).
		Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := s.db.Where("household_id = ?", householdID).
		Order("expense_id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(expenses, page.Page, page.PageSize, total)
	return &resp, nil
}

// MarkExpenseSettled flags an expense as settled. Payer only; flagging an
// already settled expense is rejected. The flag is bookkeeping and does not
// touch balances.
func (s *expenseService) MarkExpenseSettled(callerID string, householdID uint, expenseID int64) (*models.Expense, error) {
	unlock := s.locks.Lock(householdID)
	defer unlock()

	var expense *models.Expense
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := lockHouseholdTx(tx, householdID); err != nil {
			return err
		}
		if _, err := getActiveHousehold(tx, householdID); err != nil {
			return err
		}

		var err error
		expense, err = getExpense(tx, householdID, expenseID)
		if err != nil {
			return err
		}
		if expense.PayerID != callerID {
			return apperrors.ErrNotAuthorized
		}
		if expense.Settled {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "expense is already settled")
		}

		if err := tx.Model(expense).Update("settled", true).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		expense.Settled = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return expense, nil
}

// PostDueRecurring finds every active household holding a recurring
// template whose NextDueTick has passed and posts a fresh one-time expense
// per due template, advancing the template's due tick. Households are
// processed concurrently but each household's postings run under its lock
// in a single transaction. A household that fails is logged and skipped;
// the rest still post.
func (s *expenseService) PostDueRecurring(currentTick int64) (int, error) {
	var householdIDs []uint
	err := s.db.Model(&models.Expense{}).
		Distinct("expenses.household_id").
		Joins("JOIN households ON households.id = expenses.household_id AND households.active = ?", true).
		Where("expenses.type = ? AND expenses.next_due_tick > 0 AND expenses.next_due_tick <= ?",
			models.ExpenseTypeRecurring, currentTick).
		Pluck("expenses.household_id", &householdIDs).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(householdIDs) == 0 {
		return 0, nil
	}

	counts := make([]int, len(householdIDs))
	var g errgroup.Group
	g.SetLimit(schedulerConcurrency)
	for i, hid := range householdIDs {
		g.Go(func() error {
			n, err := s.postDueForHousehold(hid, currentTick)
			if err != nil {
				logger.Get().Errorw("recurring posting failed for household",
					"household_id", hid, "error", err)
				return nil
			}
			counts[i] = n
			return nil
		})
	}
	// Per-household failures are logged inside the goroutines and never
	// returned, so Wait only joins them.
	_ = g.Wait()

	total := 0
	for _, n := range counts {
		total += n
	}
	return total, nil
}

// postDueForHousehold posts every due template of one household.
func (s *expenseService) postDueForHousehold(householdID uint, currentTick int64) (int, error) {
	unlock := s.locks.Lock(householdID)
	defer unlock()

	posted := 0
	var emitted []events.ExpensePosted
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := lockHouseholdTx(tx, householdID); err != nil {
			return err
		}
		if _, err := getActiveHousehold(tx, householdID); err != nil {
			return err
		}

		var templates []models.Expense
		if err := tx.Where("household_id = ? AND type = ? AND next_due_tick > 0 AND next_due_tick <= ?",
			householdID, models.ExpenseTypeRecurring, currentTick).
			Order("expense_id ASC").
			Find(&templates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		members, err := activeMemberIDs(tx, householdID)
		if err != nil {
			return err
		}

		for i := range templates {
			tmpl := &templates[i]
			posting, err := s.postFromTemplate(tx, tmpl, members, currentTick)
			if err != nil {
				// Stale template, e.g. its payer or a weighted member left.
				// Skip it without advancing the due tick so a fixed
				// household picks it up on the next run.
				logger.Get().Warnw("skipping recurring template",
					"household_id", householdID, "expense_id", tmpl.ExpenseID, "error", err)
				continue
			}

			if err := tx.Model(tmpl).
				Update("next_due_tick", tmpl.NextDueTick+tmpl.RecurrenceTick).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			posted++
			emitted = append(emitted, events.ExpensePosted{
				HouseholdID: posting.HouseholdID,
				ExpenseID:   posting.ExpenseID,
				Name:        posting.Name,
				Amount:      posting.Amount,
				PayerID:     posting.PayerID,
				Type:        string(posting.Type),
				Tick:        posting.CreatedTick,
			})
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	for _, ev := range emitted {
		s.publisher.Publish(events.RoutingKeyExpensePosted, ev)
	}
	return posted, nil
}

// postFromTemplate materializes one occurrence of a recurring template as
// a one-time expense with fresh balance deltas.
func (s *expenseService) postFromTemplate(tx *gorm.DB, tmpl *models.Expense, members []string, currentTick int64) (*models.Expense, error) {
	if _, err := getActiveMember(tx, tmpl.HouseholdID, tmpl.PayerID); err != nil {
		return nil, err
	}

	var weights map[string]int
	if tmpl.AllocationType == models.AllocationTypeCustom {
		var rows []models.ExpenseAllocation
		if err := tx.Where("household_id = ? AND expense_id = ?", tmpl.HouseholdID, tmpl.ExpenseID).
			Find(&rows).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		weights = make(map[string]int, len(rows))
		active := make(map[string]bool, len(members))
		for _, m := range members {
			active[m] = true
		}
		for _, row := range rows {
			if !active[row.UserID] {
				return nil, apperrors.ErrUserNotInHousehold
			}
			weights[row.UserID] = row.BPS
		}
	}

	shares, err := computeShares(ExpenseInput{
		Amount:            tmpl.Amount,
		PayerID:           tmpl.PayerID,
		AllocationType:    tmpl.AllocationType,
		CustomAllocations: weights,
	}, members)
	if err != nil {
		return nil, err
	}

	expenseID, err := nextExpenseID(tx, tmpl.HouseholdID)
	if err != nil {
		return nil, err
	}

	posting := &models.Expense{
		HouseholdID:    tmpl.HouseholdID,
		ExpenseID:      expenseID,
		Name:           fmt.Sprintf("%s (recurring)", tmpl.Name),
		Amount:         tmpl.Amount,
		PayerID:        tmpl.PayerID,
		Type:           models.ExpenseTypeOneTime,
		CreatedTick:    currentTick,
		AllocationType: tmpl.AllocationType,
		CategoryID:     tmpl.CategoryID,
	}
	if err := tx.Create(posting).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if tmpl.AllocationType == models.AllocationTypeCustom {
		for member, bps := range weights {
			row := models.ExpenseAllocation{
				HouseholdID: tmpl.HouseholdID,
				ExpenseID:   expenseID,
				UserID:      member,
				BPS:         bps,
			}
			if err := tx.Create(&row).Error; err != nil {
				return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
	}

	if err := s.applyShares(tx, tmpl.HouseholdID, tmpl.PayerID, shares); err != nil {
		return nil, err
	}
	return posting, nil
}

// applyShares increases each non-payer member's debt toward the payer by
// their share. The payer's own share and zero shares post nothing.
func (s *expenseService) applyShares(tx *gorm.DB, householdID uint, payerID string, shares map[string]int64) error {
	for member, share := range shares {
		if member == payerID || share == 0 {
			continue
		}
		if err := s.balances.AdjustBalance(tx, householdID, member, payerID, share); err != nil {
			return err
		}
	}
	return nil
}

// computeShares runs the split appropriate to the allocation type.
func computeShares(in ExpenseInput, members []string) (map[string]int64, error) {
	if in.AllocationType == models.AllocationTypeCustom {
		return allocation.SplitCustom(in.Amount, in.CustomAllocations)
	}
	return allocation.SplitEqual(in.Amount, members)
}

// validateExpenseInput checks the shape of the input before any database
// work: amount, type, recurrence, and allocation-type coherence.
func validateExpenseInput(in ExpenseInput) error {
	if in.Name == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "expense name is required")
	}
	if in.Amount <= 0 {
		return apperrors.ErrInvalidAmount
	}

	switch in.Type {
	case models.ExpenseTypeOneTime:
		if in.RecurrenceTick != 0 {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "one-time expenses cannot carry a recurrence period")
		}
	case models.ExpenseTypeRecurring:
		if in.RecurrenceTick <= 0 {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "recurring expenses require a positive recurrence period")
		}
	default:
		return apperrors.ErrInvalidExpenseType
	}

	switch in.AllocationType {
	case models.AllocationTypeEqual:
		if len(in.CustomAllocations) != 0 {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "equal-split expenses cannot carry custom allocations")
		}
	case models.AllocationTypeCustom:
		if len(in.CustomAllocations) == 0 {
			return apperrors.WithMessage(apperrors.ErrInvalidAllocation, "no allocation entries provided")
		}
	default:
		return apperrors.ErrInvalidExpenseType
	}

	return nil
}

// nextExpenseID increments and returns the household's expense counter.
// Runs inside the caller's transaction under the household lock.
func nextExpenseID(tx *gorm.DB, householdID uint) (int64, error) {
	var counter models.HouseholdCounter
	if err := tx.First(&counter, "household_id = ?", householdID).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	id := counter.NextExpenseID
	if err := tx.Model(&counter).Update("next_expense_id", id+1).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return id, nil
}

// getExpense loads one expense row.
func getExpense(tx *gorm.DB, householdID uint, expenseID int64) (*models.Expense, error) {
	var expense models.Expense
	if err := tx.Where("household_id = ? AND expense_id = ?", householdID, expenseID).
		First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}
