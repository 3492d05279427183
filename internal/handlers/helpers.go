// Package handlers contains the HTTP layer: request binding, identity
// extraction, and translation of service results into JSON responses.
// All domain rules live in the services; handlers only adapt.
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "hearth/internal/errors"
	"hearth/internal/services"
)

// getUserID extracts the authenticated user's ID set by the auth
// middleware.
func getUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("userID")
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

// requireUserID aborts with UNAUTHORIZED when no identity is present.
func requireUserID(c *gin.Context) (string, bool) {
	id, ok := getUserID(c)
	if !ok {
		c.Error(apperrors.ErrUnauthorized)
		c.Abort()
		return "", false
	}
	return id, true
}

// parseHouseholdID parses the :id path parameter.
func parseHouseholdID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.Error(apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid household id"))
		return 0, false
	}
	return uint(id), true
}

// requireMember rejects callers that are not active members of the
// household. Creators count as members.
func requireMember(c *gin.Context, households services.HouseholdServicer, householdID uint, userID string) bool {
	if _, err := households.GetActiveMember(householdID, userID); err != nil {
		c.Error(err)
		return false
	}
	return true
}

// parseSequenceID parses a per-household sequence ID path parameter such
// as an expense or settlement ID.
func parseSequenceID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.Error(apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid "+name))
		return 0, false
	}
	return id, true
}
