package valueobject

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
	"unicode"

	"github.com/aryawidjaya/user-accounts/internal/domain/errs"
)

// Credential holds the SHA-256 hex digest of a password. The plaintext is
// discarded at construction and can never be recovered from the value.
//
// The digest is deterministic so Verify can re-digest a candidate and
// compare against the stored value.
type Credential struct {
	digest string
}

// NewCredential validates password strength and digests the plaintext.
// Policy: at least 8 characters with one uppercase letter, one lowercase
// letter and one digit.
func NewCredential(plain string) (Credential, error) {
	if len(plain) < 8 {
		return Credential{}, &errs.ValidationError{Field: "password", Message: "Password must be at least 8 characters long"}
	}
	if !strings.ContainsFunc(plain, unicode.IsUpper) {
		return Credential{}, &errs.ValidationError{Field: "password", Message: "Password must contain at least one uppercase letter"}
	}
	if !strings.ContainsFunc(plain, unicode.IsLower) {
		return Credential{}, &errs.ValidationError{Field: "password", Message: "Password must contain at least one lowercase letter"}
	}
	if !strings.ContainsFunc(plain, unicode.IsDigit) {
		return Credential{}, &errs.ValidationError{Field: "password", Message: "Password must contain at least one number"}
	}
	return Credential{digest: digestOf(plain)}, nil
}

// RestoreCredential rehydrates a digest loaded from storage.
func RestoreCredential(storedDigest string) Credential {
	return Credential{digest: storedDigest}
}

// Verify reports whether candidate digests to the stored value.
func (c Credential) Verify(candidate string) bool {
	return subtle.ConstantTimeCompare([]byte(c.digest), []byte(digestOf(candidate))) == 1
}

// Digest returns the stored hex digest. Only the repository and cache
// layers should need this.
func (c Credential) Digest() string { return c.digest }

func digestOf(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
