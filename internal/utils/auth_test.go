package utils

import (
	"testing"

	"github.com/jobdam/jobdam-backend/internal/types"
)

func TestNormalizeUserFields(t *testing.T) {
	user := &types.User{Name: "  jobseeker  ", RealName: "  김취준 "}
	NormalizeUserFields(user)
	if user.Name != "jobseeker" {
		t.Fatalf("name = %q", user.Name)
	}
	if user.RealName != "김취준" {
		t.Fatalf("realName = %q", user.RealName)
	}
}

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name    string
		user    types.User
		wantErr bool
	}{
		{"valid", types.User{Name: "jobseeker", Password: "secret123"}, false},
		{"missing name", types.User{Password: "secret123"}, true},
		{"missing password", types.User{Name: "jobseeker"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateRegistration(&tc.user)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr = %v", err, tc.wantErr)
			}
		})
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	user := &types.User{Name: "jobseeker", Password: "secret123"}
	if err := HashPassword(user); err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if user.Password == "secret123" {
		t.Fatalf("password left in plain text")
	}
	if !CheckPassword(user.Password, "secret123") {
		t.Fatalf("correct password rejected")
	}
	if CheckPassword(user.Password, "wrongpass") {
		t.Fatalf("wrong password accepted")
	}
}
