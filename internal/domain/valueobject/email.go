package valueobject

import (
	"regexp"

	"github.com/aryawidjaya/user-accounts/internal/domain/errs"
)

// emailPattern accepts local parts of ASCII letters, digits and ._%+-,
// a domain with at least one dot and a TLD of two or more letters.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Email is an immutable, validated email address. The zero value is invalid;
// construct via NewEmail or RestoreEmail.
type Email struct {
	value string
}

func NewEmail(raw string) (Email, error) {
	if !emailPattern.MatchString(raw) {
		return Email{}, &errs.ValidationError{Field: "email", Message: "Invalid email format"}
	}
	return Email{value: raw}, nil
}

// RestoreEmail rehydrates an address that already passed validation on the
// write path (repository rows, cache entries). It performs no checks.
func RestoreEmail(stored string) Email {
	return Email{value: stored}
}

func (e Email) String() string { return e.value }

func (e Email) Equals(other Email) bool { return e.value == other.value }
