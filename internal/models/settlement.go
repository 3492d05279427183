package models

// TxReferenceLen is the expected length of an external payment reference:
// 32 opaque bytes carried as lowercase hex.
const TxReferenceLen = 64

// Settlement records a payment between two members that reduced a balance
// entry, keyed by (household, settlement) with SettlementID increasing per
// household from 1. Immutable once created, except that an external payment
// reference may be attached exactly once afterward.
type Settlement struct {
	HouseholdID  uint   `gorm:"primaryKey" json:"household_id"`
	SettlementID int64  `gorm:"primaryKey" json:"settlement_id"`
	FromUserID   string `gorm:"type:uuid;not null" json:"from_user_id"`
	ToUserID     string `gorm:"type:uuid;not null" json:"to_user_id"`
	Amount       int64  `gorm:"not null" json:"amount"`
	Tick         int64  `gorm:"not null" json:"tick"`

	// Hex-encoded external transaction reference; empty until attached.
	TxReference string `json:"tx_reference,omitempty"`
}
