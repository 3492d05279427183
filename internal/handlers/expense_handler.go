package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "hearth/internal/errors"
	"hearth/internal/models"
	"hearth/internal/pagination"
	"hearth/internal/services"
)

// ExpenseHandler serves expense ledger endpoints.
type ExpenseHandler struct {
	expenses   services.ExpenseServicer
	households services.HouseholdServicer
	audit      services.AuditServicer
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenses services.ExpenseServicer, households services.HouseholdServicer, audit services.AuditServicer) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses, households: households, audit: audit}
}

// CreateExpenseRequest is the request body for posting an expense.
type CreateExpenseRequest struct {
	Name              string         `json:"name" binding:"required,min=1,max=200"`
	Amount            int64          `json:"amount" binding:"required,gt=0"`
	PayerID           string         `json:"payer_id" binding:"required,uuid"`
	Type              string         `json:"type" binding:"required,expense_type"`
	RecurrenceTick    int64          `json:"recurrence_tick" binding:"omitempty,gt=0"`
	AllocationType    string         `json:"allocation_type" binding:"required,allocation_type"`
	CustomAllocations map[string]int `json:"custom_allocations" binding:"omitempty"`
	CategoryID        *string        `json:"category_id" binding:"omitempty,uuid"`
}

// Create godoc
// @Summary      Post an expense to a household ledger
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Household ID"
// @Param        request body CreateExpenseRequest true "Expense details"
// @Success      201 {object} models.Expense
// @Failure      400 {object} map[string]interface{}
// @Failure      403 {object} map[string]interface{}
// @Router       /households/{id}/expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	householdID, ok := parseHouseholdID(c)
	if !ok {
		return
	}

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.expenses.AddExpense(userID, householdID, services.ExpenseInput{
		Name:              req.Name,
		Amount:            req.Amount,
		PayerID:           req.PayerID,
		Type:              models.ExpenseType(req.Type),
		RecurrenceTick:    req.RecurrenceTick,
		AllocationType:    models.AllocationType(req.AllocationType),
		CustomAllocations: req.CustomAllocations,
		CategoryID:        req.CategoryID,
	})
	if err != nil {
		c.Error(err)
		return
	}

	h.audit.Log(userID, "add_expense", "expense",
		strconv.FormatInt(expense.ExpenseID, 10), c.ClientIP(),
		map[string]interface{}{"household_id": householdID, "amount": expense.Amount})
	c.JSON(http.StatusCreated, expense)
}

// List godoc
// @Summary      List household expenses
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Household ID"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} pagination.PageResponse[models.Expense]
// @Failure      404 {object} map[string]interface{}
// @Router       /households/{id}/expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
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

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		c.Error(apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	resp, err := h.expenses.ListHouseholdExpenses(householdID, page)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary      Get one expense
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Household ID"
// @Param        expenseId path int true "Expense ID"
// @Success      200 {object} models.Expense
// @Failure      404 {object} map[string]interface{}
// @Router       /households/{id}/expenses/{expenseId} [get]
func (h *ExpenseHandler) Get(c *gin.Context) {
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
	expenseID, ok := parseSequenceID(c, "expenseId")
	if !ok {
		return
	}

	expense, err := h.expenses.GetExpense(householdID, expenseID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, expense)
}

// GetAllocations godoc
// @Summary      Get an expense's custom allocation rows
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Household ID"
// @Param        expenseId path int true "Expense ID"
// @Success      200 {array} models.ExpenseAllocation
// @Failure      404 {object} map[string]interface{}
// @Router       /households/{id}/expenses/{expenseId}/allocations [get]
func (h *ExpenseHandler) GetAllocations(c *gin.Context) {
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
	expenseID, ok := parseSequenceID(c, "expenseId")
	if !ok {
		return
	}

	rows, err := h.expenses.GetExpenseAllocations(householdID, expenseID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// MarkSettled godoc
// @Summary      Mark an expense as settled
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Household ID"
// @Param        expenseId path int true "Expense ID"
// @Success      200 {object} models.Expense
// @Failure      400 {object} map[string]interface{}
// @Failure      403 {object} map[string]interface{}
// @Router       /households/{id}/expenses/{expenseId}/settled [put]
func (h *ExpenseHandler) MarkSettled(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	householdID, ok := parseHouseholdID(c)
	if !ok {
		return
	}
	expenseID, ok := parseSequenceID(c, "expenseId")
	if !ok {
		return
	}

	expense, err := h.expenses.MarkExpenseSettled(userID, householdID, expenseID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, expense)
}
