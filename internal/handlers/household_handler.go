package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "hearth/internal/errors"
	"hearth/internal/services"
)

// HouseholdHandler serves household and membership endpoints.
type HouseholdHandler struct {
	households services.HouseholdServicer
	balances   services.BalanceServicer
	audit      services.AuditServicer
}

// NewHouseholdHandler creates a new HouseholdHandler.
func NewHouseholdHandler(households services.HouseholdServicer, balances services.BalanceServicer, audit services.AuditServicer) *HouseholdHandler {
	return &HouseholdHandler{households: households, balances: balances, audit: audit}
}

// CreateHouseholdRequest is the request body for household creation.
type CreateHouseholdRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// AddMemberRequest is the request body for adding a member.
type AddMemberRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}

// UpdateAllocationRequest is the request body for updating a member's
// display weight.
type UpdateAllocationRequest struct {
	AllocationBPS *int `json:"allocation_bps" binding:"required,basis_points"`
}

// Create godoc
// @Summary      Create a household
// @Tags         households
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateHouseholdRequest true "Household details"
// @Success      201 {object} models.Household
// @Failure      400 {object} map[string]interface{}
// @Router       /households [post]
func (h *HouseholdHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req CreateHouseholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	household, err := h.households.CreateHousehold(userID, req.Name)
	if err != nil {
		c.Error(err)
		return
	}

	h.audit.Log(userID, "create_household", "household", strconv.FormatUint(uint64(household.ID), 10), c.ClientIP(), nil)
	c.JSON(http.StatusCreated, household)
}

// Get godoc
// @Summary      Get a household
// @Tags         households
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Household ID"
// @Success      200 {object} models.Household
// @Failure      404 {object} map[string]interface{}
// @Router       /households/{id} [get]
func (h *HouseholdHandler) Get(c *gin.Context) {
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

	household, err := h.households.GetHousehold(householdID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, household)
}

// Deactivate godoc
// @Summary      Deactivate a household
// @Tags         households
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Household ID"
// @Success      204 "No Content"
// @Failure      403 {object} map[string]interface{}
// @Router       /households/{id} [delete]
func (h *HouseholdHandler) Deactivate(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	householdID, ok := parseHouseholdID(c)
	if !ok {
		return
	}

	if err := h.households.DeactivateHousehold(userID, householdID); err != nil {
		c.Error(err)
		return
	}

	h.audit.Log(userID, "deactivate_household", "household", strconv.FormatUint(uint64(householdID), 10), c.ClientIP(), nil)
	c.Status(http.StatusNoContent)
}

// ListMembers godoc
// @Summary      List household members
// @Tags         households
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Household ID"
// @Success      200 {array} models.HouseholdMember
// @Failure      404 {object} map[string]interface{}
// @Router       /households/{id}/members [get]
func (h *HouseholdHandler) ListMembers(c *gin.Context) {
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

	members, err := h.households.GetMembers(householdID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, members)
}

// AddMember godoc
// @Summary      Add a member to a household
// @Tags         households
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Household ID"
// @Param        request body AddMemberRequest true "New member"
// @Success      201 {object} models.HouseholdMember
// @Failure      403 {object} map[string]interface{}
// @Failure      409 {object} map[string]interface{}
// @Router       /households/{id}/members [post]
func (h *HouseholdHandler) AddMember(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	householdID, ok := parseHouseholdID(c)
	if !ok {
		return
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	member, err := h.households.AddMember(userID, householdID, req.UserID)
	if err != nil {
		c.Error(err)
		return
	}

	h.audit.Log(userID, "add_member", "household", strconv.FormatUint(uint64(householdID), 10), c.ClientIP(),
		map[string]interface{}{"member_id": req.UserID})
	c.JSON(http.StatusCreated, member)
}

// RemoveMember godoc
// @Summary      Remove a member from a household
// @Tags         households
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Household ID"
// @Param        userId path string true "Member user ID"
// @Success      204 "No Content"
// @Failure      403 {object} map[string]interface{}
// @Router       /households/{id}/members/{userId} [delete]
func (h *HouseholdHandler) RemoveMember(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	householdID, ok := parseHouseholdID(c)
	if !ok {
		return
	}
	memberID := c.Param("userId")

	if err := h.households.RemoveMember(userID, householdID, memberID); err != nil {
		c.Error(err)
		return
	}

	h.audit.Log(userID, "remove_member", "household", strconv.FormatUint(uint64(householdID), 10), c.ClientIP(),
		map[string]interface{}{"member_id": memberID})
	c.Status(http.StatusNoContent)
}

// UpdateMemberAllocation godoc
// @Summary      Update a member's allocation weight
// @Tags         households
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Household ID"
// @Param        userId path string true "Member user ID"
// @Param        request body UpdateAllocationRequest true "New weight in basis points"
// @Success      200 {object} models.HouseholdMember
// @Failure      400 {object} map[string]interface{}
// @Failure      403 {object} map[string]interface{}
// @Router       /households/{id}/members/{userId}/allocation [put]
func (h *HouseholdHandler) UpdateMemberAllocation(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	householdID, ok := parseHouseholdID(c)
	if !ok {
		return
	}
	memberID := c.Param("userId")

	var req UpdateAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	member, err := h.households.UpdateMemberAllocation(userID, householdID, memberID, *req.AllocationBPS)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, member)
}

// ListBalances godoc
// @Summary      List all nonzero balances in a household
// @Tags         balances
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Household ID"
// @Success      200 {array} models.Balance
// @Failure      404 {object} map[string]interface{}
// @Router       /households/{id}/balances [get]
func (h *HouseholdHandler) ListBalances(c *gin.Context) {
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

	balances, err := h.balances.ListHouseholdBalances(householdID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, balances)
}

// GetBalance godoc
// @Summary      Get the directed balance between two members
// @Tags         balances
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Household ID"
// @Param        from query string true "Debtor user ID"
// @Param        to query string true "Creditor user ID"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} map[string]interface{}
// @Router       /households/{id}/balance [get]
func (h *HouseholdHandler) GetBalance(c *gin.Context) {
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

	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		c.Error(apperrors.WithMessage(apperrors.ErrInvalidInput, "from and to query parameters are required"))
		return
	}

	amount, err := h.balances.GetMemberBalance(householdID, from, to)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"household_id": householdID,
		"from_user_id": from,
		"to_user_id":   to,
		"amount":       amount,
	})
}
