package models

// MaxHouseholdMembers caps the member list of a single household.
const MaxHouseholdMembers = 20

// Household is an isolated group of members sharing expenses and a balance
// ledger. IDs are globally increasing integers and are never reused, even
// after deactivation. The creator is immutable and is the household's sole
// admin.
type Household struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	CreatorID   string `gorm:"type:uuid;not null" json:"creator_id"`
	CreatedTick int64  `gorm:"not null" json:"created_tick"`
	Active      bool   `gorm:"not null;default:true" json:"active"`
}

// HouseholdMember is one user's membership in one household, keyed by the
// (household, user) pair. Position preserves insertion order for display;
// it has no bearing on correctness. AllocationBPS is the member's display
// weight in basis points; money splits never read it.
type HouseholdMember struct {
	HouseholdID   uint   `gorm:"primaryKey" json:"household_id"`
	UserID        string `gorm:"type:uuid;primaryKey" json:"user_id"`
	Position      int    `gorm:"not null" json:"position"`
	JoinTick      int64  `gorm:"not null" json:"join_tick"`
	AllocationBPS int    `gorm:"not null" json:"allocation_bps"`
	Active        bool   `gorm:"not null;default:true" json:"active"`
}

// HouseholdCounter owns a household's expense and settlement ID sequences.
// It is the sole source of ID uniqueness within the household; both
// counters start at 1.
type HouseholdCounter struct {
	HouseholdID      uint  `gorm:"primaryKey" json:"household_id"`
	NextExpenseID    int64 `gorm:"not null;default:1" json:"next_expense_id"`
	NextSettlementID int64 `gorm:"not null;default:1" json:"next_settlement_id"`
}
