package models

// Balance is a directed pairwise debt entry: FromUserID owes ToUserID
// Amount. Entries are asymmetric and never auto-netted: (A,B) and (B,A)
// can both be positive at once. An absent row reads as 0. Amount is always
// non-negative: it only grows via expense posting and only shrinks via
// settlement.
type Balance struct {
	HouseholdID uint   `gorm:"primaryKey" json:"household_id"`
	FromUserID  string `gorm:"type:uuid;primaryKey" json:"from_user_id"`
	ToUserID    string `gorm:"type:uuid;primaryKey" json:"to_user_id"`
	Amount      int64  `gorm:"not null;default:0" json:"amount"`
}
