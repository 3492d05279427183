package models

// Category labels a household's expenses. Categories are scoped to one
// household and managed by its creator; attaching one to an expense is
// optional.
type Category struct {
	Base
	HouseholdID uint   `gorm:"not null;index" json:"household_id"`
	Name        string `gorm:"not null" json:"name"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}
