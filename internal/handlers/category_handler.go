package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "hearth/internal/errors"
	"hearth/internal/services"
)

// CategoryHandler serves household category endpoints.
type CategoryHandler struct {
	categories services.CategoryServicer
	households services.HouseholdServicer
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categories services.CategoryServicer, households services.HouseholdServicer) *CategoryHandler {
	return &CategoryHandler{categories: categories, households: households}
}

// CreateCategoryRequest is the request body for category creation.
type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=50"`
	Icon  string `json:"icon" binding:"omitempty,max=10"`
	Color string `json:"color" binding:"omitempty,hexcolor"`
}

// Create godoc
// @Summary      Create an expense category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Household ID"
// @Param        request body CreateCategoryRequest true "Category details"
// @Success      201 {object} models.Category
// @Failure      403 {object} map[string]interface{}
// @Router       /households/{id}/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	householdID, ok := parseHouseholdID(c)
	if !ok {
		return
	}

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category, err := h.categories.CreateCategory(userID, householdID, req.Name, req.Icon, req.Color)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// List godoc
// @Summary      List a household's categories
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Household ID"
// @Success      200 {array} models.Category
// @Failure      404 {object} map[string]interface{}
// @Router       /households/{id}/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	householdID, ok := parseHouseholdID(c)
	if !ok {
		return
	}
	if !requireMember(c, h.households, householdID, userID) {
		return
	}

	categories, err := h.categories.GetHouseholdCategories(householdID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// Delete godoc
// @Summary      Delete a category
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Household ID"
// @Param        categoryId path string true "Category ID"
// @Success      204 "No Content"
// @Failure      403 {object} map[string]interface{}
// @Router       /households/{id}/categories/{categoryId} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	householdID, ok := parseHouseholdID(c)
	if !ok {
		return
	}

	if err := h.categories.DeleteCategory(userID, householdID, c.Param("categoryId")); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
