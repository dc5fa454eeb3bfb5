package validator

import (
	"testing"

	"tutortrack/modules/payment/dto"

	"github.com/google/uuid"
)

func TestValidatePaymentRequest(t *testing.T) {
	pupilID := uuid.New()

	tests := []struct {
		name      string
		req       *dto.PaymentRequest
		wantField string
	}{
		{
			name: "valid",
			req:  &dto.PaymentRequest{PupilID: pupilID, Amount: 1500, Month: 3, Year: 2024},
		},
		{
			name: "valid with mode",
			req:  &dto.PaymentRequest{PupilID: pupilID, Amount: 1500, Month: 3, Year: 2024, PaymentMode: "upi"},
		},
		{
			name:      "missing pupil",
			req:       &dto.PaymentRequest{Amount: 1500, Month: 3, Year: 2024},
			wantField: "pupil_id",
		},
		{
			name:      "zero amount",
			req:       &dto.PaymentRequest{PupilID: pupilID, Amount: 0, Month: 3, Year: 2024},
			wantField: "amount",
		},
		{
			name:      "negative amount",
			req:       &dto.PaymentRequest{PupilID: pupilID, Amount: -10, Month: 3, Year: 2024},
			wantField: "amount",
		},
		{
			name:      "month too high",
			req:       &dto.PaymentRequest{PupilID: pupilID, Amount: 1500, Month: 13, Year: 2024},
			wantField: "month",
		},
		{
			name:      "month too low",
			req:       &dto.PaymentRequest{PupilID: pupilID, Amount: 1500, Month: 0, Year: 2024},
			wantField: "month",
		},
		{
			name:      "ancient year",
			req:       &dto.PaymentRequest{PupilID: pupilID, Amount: 1500, Month: 3, Year: 1850},
			wantField: "year",
		},
		{
			name:      "unknown mode",
			req:       &dto.PaymentRequest{PupilID: pupilID, Amount: 1500, Month: 3, Year: 2024, PaymentMode: "bitcoin"},
			wantField: "payment_mode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidatePaymentRequest(tt.req)
			if tt.wantField == "" {
				if result.HasError() {
					t.Fatalf("expected valid request, got errors %v", result.Errors)
				}
				return
			}
			if !result.HasError() {
				t.Fatalf("expected error on %s, got none", tt.wantField)
			}
			if result.Errors[0].Field != tt.wantField {
				t.Fatalf("expected error on %s, got %s", tt.wantField, result.Errors[0].Field)
			}
		})
	}
}
