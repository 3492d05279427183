package models

// ExpenseType distinguishes one-off expenses from recurring templates.
type ExpenseType string

const (
	ExpenseTypeOneTime   ExpenseType = "one_time"
	ExpenseTypeRecurring ExpenseType = "recurring"
)

// AllocationType selects how an expense is divided among members.
type AllocationType string

const (
	AllocationTypeEqual  AllocationType = "equal"
	AllocationTypeCustom AllocationType = "custom"
)

// Expense is a recorded expense event, keyed by (household, expense) where
// ExpenseID increases per household starting at 1. Amounts are in the
// smallest currency unit. Immutable after creation except Settled, and
// NextDueTick on recurring templates (advanced by the scheduler).
type Expense struct {
	HouseholdID    uint           `gorm:"primaryKey" json:"household_id"`
	ExpenseID      int64          `gorm:"primaryKey" json:"expense_id"`
	Name           string         `gorm:"not null" json:"name"`
	Amount         int64          `gorm:"not null" json:"amount"`
	PayerID        string         `gorm:"type:uuid;not null" json:"payer_id"`
	Type           ExpenseType    `gorm:"not null" json:"type"`
	RecurrenceTick int64          `gorm:"not null;default:0" json:"recurrence_tick"`
	NextDueTick    int64          `gorm:"not null;default:0" json:"next_due_tick,omitempty"`
	CreatedTick    int64          `gorm:"not null" json:"created_tick"`
	AllocationType AllocationType `gorm:"not null" json:"allocation_type"`
	CategoryID     *string        `gorm:"type:uuid" json:"category_id,omitempty"`
	Settled        bool           `gorm:"not null;default:false" json:"settled"`
}

// ExpenseAllocation is one member's custom share of an expense in basis
// points. Rows exist only for custom-allocation expenses, and for any one
// expense the BPS values sum to exactly 10000.
type ExpenseAllocation struct {
	HouseholdID uint   `gorm:"primaryKey" json:"household_id"`
	ExpenseID   int64  `gorm:"primaryKey" json:"expense_id"`
	UserID      string `gorm:"type:uuid;primaryKey" json:"user_id"`
	BPS         int    `gorm:"not null" json:"bps"`
}
