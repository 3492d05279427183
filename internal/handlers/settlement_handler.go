package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "hearth/internal/errors"
	"hearth/internal/pagination"
	"hearth/internal/services"
)

// SettlementHandler serves settlement endpoints.
type SettlementHandler struct {
	settlements services.SettlementServicer
	households  services.HouseholdServicer
	audit       services.AuditServicer
}

// NewSettlementHandler creates a new SettlementHandler.
func NewSettlementHandler(settlements services.SettlementServicer, households services.HouseholdServicer, audit services.AuditServicer) *SettlementHandler {
	return &SettlementHandler{settlements: settlements, households: households, audit: audit}
}

// SettlePaymentRequest is the request body for recording a payment.
type SettlePaymentRequest struct {
	ToUserID string `json:"to_user_id" binding:"required,uuid"`
	Amount   int64  `json:"amount" binding:"required,gt=0"`
}

// RecordReferenceRequest is the request body for attaching an external
// payment reference.
type RecordReferenceRequest struct {
	TxReference string `json:"tx_reference" binding:"required,tx_reference"`
}

// Create godoc
// @Summary      Settle part or all of a debt
// @Tags         settlements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Household ID"
// @Param        request body SettlePaymentRequest true "Payment details"
// @Success      201 {object} models.Settlement
// @Failure      400 {object} map[string]interface{}
// @Failure      403 {object} map[string]interface{}
// @Router       /households/{id}/settlements [post]
func (h *SettlementHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	householdID, ok := parseHouseholdID(c)
	if !ok {
		return
	}

	var req SettlePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	settlement, err := h.settlements.SettlePayment(userID, householdID, req.ToUserID, req.Amount)
	if err != nil {
		c.Error(err)
		return
	}

	h.audit.Log(userID, "settle_payment", "settlement",
		strconv.FormatInt(settlement.SettlementID, 10), c.ClientIP(),
		map[string]interface{}{"household_id": householdID, "amount": settlement.Amount})
	c.JSON(http.StatusCreated, settlement)
}

// List godoc
// @Summary      List household settlements
// @Tags         settlements
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Household ID"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} pagination.PageResponse[models.Settlement]
// @Failure      404 {object} map[string]interface{}
// @Router       /households/{id}/settlements [get]
func (h *SettlementHandler) List(c *gin.Context) {
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

	resp, err := h.settlements.ListHouseholdSettlements(householdID, page)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary      Get one settlement
// @Tags         settlements
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Household ID"
// @Param        settlementId path int true "Settlement ID"
// @Success      200 {object} models.Settlement
// @Failure      404 {object} map[string]interface{}
// @Router       /households/{id}/settlements/{settlementId} [get]
func (h *SettlementHandler) Get(c *gin.Context) {
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
	settlementID, ok := parseSequenceID(c, "settlementId")
	if !ok {
		return
	}

	settlement, err := h.settlements.GetSettlement(householdID, settlementID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, settlement)
}

// RecordReference godoc
// @Summary      Attach an external payment reference to a settlement
// @Tags         settlements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Household ID"
// @Param        settlementId path int true "Settlement ID"
// @Param        request body RecordReferenceRequest true "Transaction reference"
// @Success      200 {object} models.Settlement
// @Failure      400 {object} map[string]interface{}
// @Failure      403 {object} map[string]interface{}
// @Router       /households/{id}/settlements/{settlementId}/reference [put]
func (h *SettlementHandler) RecordReference(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	householdID, ok := parseHouseholdID(c)
	if !ok {
		return
	}
	settlementID, ok := parseSequenceID(c, "settlementId")
	if !ok {
		return
	}

	var req RecordReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	settlement, err := h.settlements.RecordExternalPayment(userID, householdID, settlementID, req.TxReference)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, settlement)
}
