package utils

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jobdam/jobdam-backend/internal/apierr"
	"github.com/jobdam/jobdam-backend/internal/types"
)

func NormalizeUserFields(user *types.User) {
	user.Name = strings.TrimSpace(user.Name)
	user.Password = strings.TrimSpace(user.Password)
	user.RealName = strings.TrimSpace(user.RealName)
}

func ValidateRegistration(user *types.User) error {
	if user == nil {
		return apierr.Validation("no user given, cannot proceed with registration")
	}
	if user.Name == "" {
		return apierr.Validation("a name is required to register")
	}
	if user.Password == "" {
		return apierr.Validation("a password is required to register")
	}
	return nil
}

func ValidateLogin(name, password string) error {
	if name == "" {
		return apierr.Validation("a name is required to login")
	}
	if password == "" {
		return apierr.Validation("a password is required to login")
	}
	return nil
}

func HashPassword(user *types.User) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return apierr.Upstream(err)
	}
	user.Password = string(hashedPassword)
	return nil
}

func CheckPassword(hashed, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
