// Package validator provides custom validation functions for Gin's binding
// engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var txReferenceRegex = regexp.MustCompile(`^[0-9a-f]{64}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("expense_type", validateExpenseType)
		_ = v.RegisterValidation("allocation_type", validateAllocationType)
		_ = v.RegisterValidation("basis_points", validateBasisPoints)
		_ = v.RegisterValidation("tx_reference", validateTxReference)
	}
}

func validateExpenseType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "one_time", "recurring":
		return true
	}
	return false
}

func validateAllocationType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "equal", "custom":
		return true
	}
	return false
}

func validateBasisPoints(fl validator.FieldLevel) bool {
	bps := fl.Field().Int()
	return bps >= 0 && bps <= 10000
}

// validateTxReference accepts a 32-byte external payment reference encoded
// as lowercase hex.
func validateTxReference(fl validator.FieldLevel) bool {
	return txReferenceRegex.MatchString(fl.Field().String())
}
