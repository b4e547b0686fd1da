package validator

import "testing"

type testRequest struct {
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	Hours  *int   `json:"work_hours" validate:"required"`
	Remark string `json:"remark"`
}

func TestValidateStructOK(t *testing.T) {
	hours := 40
	req := testRequest{Name: "Ada", Email: "ada@example.com", Hours: &hours}
	if err := ValidateStruct(&req); err != nil {
		t.Errorf("ValidateStruct failed for valid struct: %v", err)
	}
}

func TestValidateStructMissingString(t *testing.T) {
	hours := 40
	req := testRequest{Email: "ada@example.com", Hours: &hours}
	err := ValidateStruct(&req)
	if err == nil {
		t.Fatal("Expected error for missing name")
	}
	if err.Error() != "name is required" {
		t.Errorf("Error = %q, want wire field name in message", err.Error())
	}
}

func TestValidateStructNilPointerRequired(t *testing.T) {
	req := testRequest{Name: "Ada", Email: "ada@example.com"}
	if err := ValidateStruct(&req); err == nil {
		t.Error("Expected error for nil required pointer field")
	}
}

func TestValidateStructZeroPointerAllowed(t *testing.T) {
	// A present zero is not the same as absent.
	zero := 0
	req := testRequest{Name: "Ada", Email: "ada@example.com", Hours: &zero}
	if err := ValidateStruct(&req); err != nil {
		t.Errorf("Zero-valued pointer should pass required: %v", err)
	}
}

func TestValidateStructBadEmail(t *testing.T) {
	hours := 40
	req := testRequest{Name: "Ada", Email: "not-an-email", Hours: &hours}
	if err := ValidateStruct(&req); err == nil {
		t.Error("Expected error for invalid email")
	}
}

func TestValidateEmail(t *testing.T) {
	if err := ValidateEmail("user@example.com"); err != nil {
		t.Errorf("Valid email rejected: %v", err)
	}
	if err := ValidateEmail("nope"); err == nil {
		t.Error("Invalid email accepted")
	}
}
