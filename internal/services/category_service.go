package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "hearth/internal/errors"
	"hearth/internal/models"
)

// categoryService manages household expense categories.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateCategory adds a category to a household. Creator only.
func (s *categoryService) CreateCategory(callerID string, householdID uint, name, icon, color string) (*models.Category, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	household, err := getActiveHousehold(s.db, householdID)
	if err != nil {
		return nil, err
	}
	if household.CreatorID != callerID {
		return nil, apperrors.ErrNotAuthorized
	}

	category := &models.Category{
		HouseholdID: householdID,
		Name:        name,
		Icon:        icon,
		Color:       color,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// GetHouseholdCategories returns the household's categories by name.
func (s *categoryService) GetHouseholdCategories(householdID uint) ([]models.Category, error) {
	if _, err := getHousehold(s.db, householdID); err != nil {
		return nil, err
	}

	var categories []models.Category
	if err := s.db.Where("household_id = ?", householdID).
		Order("name ASC").
		Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// GetCategoryByID retrieves one category scoped to its household.
func (s *categoryService) GetCategoryByID(householdID uint, categoryID string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("household_id = ? AND id = ?", householdID, categoryID).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// DeleteCategory removes a category. Creator only. Expenses keep their
// category reference; readers treat a dangling one as uncategorized.
func (s *categoryService) DeleteCategory(callerID string, householdID uint, categoryID string) error {
	household, err := getActiveHousehold(s.db, householdID)
	if err != nil {
		return err
	}
	if household.CreatorID != callerID {
		return apperrors.ErrNotAuthorized
	}

	result := s.db.Where("household_id = ? AND id = ?", householdID, categoryID).
		Delete(&models.Category{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrCategoryNotFound
	}
	return nil
}
