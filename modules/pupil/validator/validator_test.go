package validator

import (
	"testing"
	"time"

	"tutortrack/modules/pupil/dto"
)

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func TestValidatePupilRequest(t *testing.T) {
	dob := time.Date(2012, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		req       *dto.PupilRequest
		wantField string
	}{
		{
			name: "valid minimal",
			req:  &dto.PupilRequest{FullName: "Asha Verma"},
		},
		{
			name: "valid full",
			req: &dto.PupilRequest{
				FullName:    "Asha Verma",
				Gender:      strPtr("F"),
				DateOfBirth: timePtr(dob),
				EnrolledOn:  timePtr(dob.AddDate(8, 0, 0)),
			},
		},
		{
			name:      "missing full name",
			req:       &dto.PupilRequest{},
			wantField: "full_name",
		},
		{
			name:      "unknown gender",
			req:       &dto.PupilRequest{FullName: "Asha Verma", Gender: strPtr("X")},
			wantField: "gender",
		},
		{
			name: "enrolled before birth",
			req: &dto.PupilRequest{
				FullName:    "Asha Verma",
				DateOfBirth: timePtr(dob),
				EnrolledOn:  timePtr(dob.AddDate(-1, 0, 0)),
			},
			wantField: "enrolled_on",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidatePupilRequest(tt.req)
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
