package validator

import (
	"tutortrack/core/controller"
	"tutortrack/modules/payment/dto"
	"tutortrack/modules/payment/entity"

	"github.com/google/uuid"
)

type ValidationResult struct {
	Errors []controller.ValidationError `json:"errors"`
}

func (r *ValidationResult) HasError() bool {
	return len(r.Errors) > 0
}

func (r *ValidationResult) add(field, message string) {
	r.Errors = append(r.Errors, controller.NewValidationError(field, message))
}

func ValidatePaymentRequest(req *dto.PaymentRequest) *ValidationResult {
	result := &ValidationResult{}

	if req.PupilID == uuid.Nil {
		result.add("pupil_id", "pupil_id is required")
	}
	if req.Amount <= 0 {
		result.add("amount", "amount must be greater than zero")
	}
	if req.Month < 1 || req.Month > 12 {
		result.add("month", "month must be between 1 and 12")
	}
	if req.Year < 1900 {
		result.add("year", "year must be 1900 or later")
	}
	if req.PaymentMode != "" && !entity.ValidPaymentMode(req.PaymentMode) {
		result.add("payment_mode", "payment mode must be cash, upi, bank_transfer, card or cheque")
	}

	return result
}
