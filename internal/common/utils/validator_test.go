// internal/common/utils/validator_test.go
package utils

import (
	"strings"
	"testing"
)

func TestValidateStruct(t *testing.T) {
	type form struct {
		Email  string `validate:"required,email"`
		Rating int    `validate:"required,gte=1,lte=5"`
		Status string `validate:"omitempty,oneof=pending approved rejected"`
	}

	tests := []struct {
		name    string
		input   form
		wantErr string // empty means valid
	}{
		{
			name:  "valid input",
			input: form{Email: "reader@example.com", Rating: 4, Status: "approved"},
		},
		{
			name:    "missing email",
			input:   form{Rating: 4},
			wantErr: "Email is required",
		},
		{
			name:    "bad email",
			input:   form{Email: "not-an-email", Rating: 4},
			wantErr: "Email must be a valid email",
		},
		{
			name:    "rating above range",
			input:   form{Email: "reader@example.com", Rating: 6},
			wantErr: "Rating must be at most 5",
		},
		{
			name:    "bad enum value",
			input:   form{Email: "reader@example.com", Rating: 4, Status: "maybe"},
			wantErr: "Status must be one of: pending approved rejected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.input)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}
