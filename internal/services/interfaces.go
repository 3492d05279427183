package services

import (
	"time"

	"gorm.io/gorm"

	"hearth/internal/models"
	"hearth/internal/pagination"
)

// TickSource supplies the monotonically increasing tick stamped onto ledger
// records. Ticks are opaque to the core: they are stored, never compared
// for control flow inside an operation. Production uses Unix seconds; tests
// inject fixed values.
type TickSource func() int64

// DefaultTickSource returns the current Unix time in seconds.
func DefaultTickSource() int64 {
	return time.Now().Unix()
}

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, displayName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// HouseholdServicer defines the contract for the household registry:
// identity, membership, and allocation weights.
type HouseholdServicer interface {
	CreateHousehold(creatorID, name string) (*models.Household, error)
	GetHousehold(householdID uint) (*models.Household, error)
	HouseholdExists(householdID uint) (bool, error)
	DeactivateHousehold(callerID string, householdID uint) error
	AddMember(callerID string, householdID uint, newMemberID string) (*models.HouseholdMember, error)
	RemoveMember(callerID string, householdID uint, memberID string) error
	UpdateMemberAllocation(callerID string, householdID uint, memberID string, bps int) (*models.HouseholdMember, error)
	GetMembers(householdID uint) ([]models.HouseholdMember, error)

	// GetActiveMember returns the active membership row for userID, or
	// ErrUserNotInHousehold / ErrHouseholdNotFound. Used by the other
	// services for precondition checks.
	GetActiveMember(householdID uint, userID string) (*models.HouseholdMember, error)
}

// BalanceServicer defines the contract for the pairwise balance store.
// AdjustBalance is for the expense and settlement services only; it is
// never routed to callers.
type BalanceServicer interface {
	GetMemberBalance(householdID uint, fromUserID, toUserID string) (int64, error)
	ListHouseholdBalances(householdID uint) ([]models.Balance, error)
	AdjustBalance(tx *gorm.DB, householdID uint, fromUserID, toUserID string, delta int64) error
}

// ExpenseInput carries the caller-supplied fields of a new expense.
type ExpenseInput struct {
	Name              string
	Amount            int64
	PayerID           string
	Type              models.ExpenseType
	RecurrenceTick    int64
	AllocationType    models.AllocationType
	CustomAllocations map[string]int
	CategoryID        *string
}

// ExpenseServicer defines the contract for the expense ledger.
type ExpenseServicer interface {
	AddExpense(callerID string, householdID uint, in ExpenseInput) (*models.Expense, error)
	GetExpense(householdID uint, expenseID int64) (*models.Expense, error)
	GetExpenseAllocations(householdID uint, expenseID int64) ([]models.ExpenseAllocation, error)
	ListHouseholdExpenses(householdID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error)
	MarkExpenseSettled(callerID string, householdID uint, expenseID int64) (*models.Expense, error)

	// PostDueRecurring re-posts every active recurring expense whose next
	// due tick has passed, returning the number of postings. Called by the
	// scheduler worker, never by API handlers.
	PostDueRecurring(currentTick int64) (int, error)
}

// SettlementServicer defines the contract for the settlement manager.
type SettlementServicer interface {
	SettlePayment(callerID string, householdID uint, toUserID string, amount int64) (*models.Settlement, error)
	RecordExternalPayment(callerID string, householdID uint, settlementID int64, txReference string) (*models.Settlement, error)
	GetSettlement(householdID uint, settlementID int64) (*models.Settlement, error)
	ListHouseholdSettlements(householdID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Settlement], error)
}

// CategoryServicer defines the contract for household expense categories.
type CategoryServicer interface {
	CreateCategory(callerID string, householdID uint, name, icon, color string) (*models.Category, error)
	GetHouseholdCategories(householdID uint) ([]models.Category, error)
	GetCategoryByID(householdID uint, categoryID string) (*models.Category, error)
	DeleteCategory(callerID string, householdID uint, categoryID string) error
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
