package validator

import (
	"tutortrack/core/controller"
	"tutortrack/modules/pupil/dto"
	"tutortrack/modules/pupil/entity"
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

func ValidatePupilRequest(req *dto.PupilRequest) *ValidationResult {
	result := &ValidationResult{}

	if req.FullName == "" {
		result.add("full_name", "full name is required")
	}
	if req.Gender != nil && !entity.ValidGender(*req.Gender) {
		result.add("gender", "gender must be M, F or Other")
	}
	if req.DateOfBirth != nil && req.EnrolledOn != nil && req.EnrolledOn.Before(*req.DateOfBirth) {
		result.add("enrolled_on", "enrollment date cannot precede date of birth")
	}

	return result
}
