package application

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/aryawidjaya/user-accounts/internal/domain/errs"
	"github.com/aryawidjaya/user-accounts/internal/domain/valueobject"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// UserValidator checks user-facing input fields before a use case touches
// the repository. Validation is partial: only keys present in the map are
// checked, so update flows can validate just the fields they received.
// Fields are checked in a stable order (username, email, password) and the
// first violation is returned as a *errs.ValidationError.
type UserValidator struct {
	validate *validator.Validate
}

func NewUserValidator() *UserValidator {
	return &UserValidator{validate: validator.New()}
}

func (uv *UserValidator) Validate(fields map[string]string) error {
	if v, ok := fields["username"]; ok {
		if err := uv.validateUsername(v); err != nil {
			return err
		}
	}
	if v, ok := fields["email"]; ok {
		if err := uv.validateEmail(v); err != nil {
			return err
		}
	}
	if v, ok := fields["password"]; ok {
		if err := uv.validatePassword(v); err != nil {
			return err
		}
	}
	return nil
}

func (uv *UserValidator) validateUsername(username string) error {
	if err := uv.validate.Var(username, "required,min=3,max=50"); err != nil {
		return &errs.ValidationError{Field: "username", Message: "Username must be between 3 and 50 characters"}
	}
	if !usernamePattern.MatchString(username) {
		return &errs.ValidationError{Field: "username", Message: "Username can only contain letters, numbers, underscores and hyphens"}
	}
	return nil
}

func (uv *UserValidator) validateEmail(email string) error {
	if _, err := valueobject.NewEmail(email); err != nil {
		return err
	}
	return nil
}

func (uv *UserValidator) validatePassword(password string) error {
	if err := uv.validate.Var(password, "required,min=8"); err != nil {
		return &errs.ValidationError{Field: "password", Message: "Password must be at least 8 characters long"}
	}
	if err := uv.validate.Var(password, "containsany=ABCDEFGHIJKLMNOPQRSTUVWXYZ"); err != nil {
		return &errs.ValidationError{Field: "password", Message: "Password must contain at least one uppercase letter"}
	}
	if err := uv.validate.Var(password, "containsany=abcdefghijklmnopqrstuvwxyz"); err != nil {
		return &errs.ValidationError{Field: "password", Message: "Password must contain at least one lowercase letter"}
	}
	if err := uv.validate.Var(password, "containsany=0123456789"); err != nil {
		return &errs.ValidationError{Field: "password", Message: "Password must contain at least one number"}
	}
	return nil
}
