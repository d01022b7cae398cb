package valueobject

import "testing"

func TestNewCredential(t *testing.T) {
	cases := []struct {
		name     string
		password string
		wantMsg  string
	}{
		{"valid", "Password123", ""},
		{"too short", "Pw1", "Password must be at least 8 characters long"},
		{"no uppercase", "password123", "Password must contain at least one uppercase letter"},
		{"no lowercase", "PASSWORD123", "Password must contain at least one lowercase letter"},
		{"no digit", "PasswordOnly", "Password must contain at least one number"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cred, err := NewCredential(tc.password)
			if tc.wantMsg == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if len(cred.Digest()) != 64 {
					t.Errorf("digest length = %d, want 64", len(cred.Digest()))
				}
				if cred.Digest() == tc.password {
					t.Error("digest equals plaintext")
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error %q, got none", tc.wantMsg)
			}
			if err.Error() != tc.wantMsg {
				t.Errorf("error = %q, want %q", err.Error(), tc.wantMsg)
			}
		})
	}
}

func TestCredentialVerify(t *testing.T) {
	cred, err := NewCredential("Password123")
	if err != nil {
		t.Fatalf("NewCredential: %v", err)
	}

	if !cred.Verify("Password123") {
		t.Error("Verify rejects the original password")
	}
	if cred.Verify("password123") {
		t.Error("Verify accepts a different password")
	}
	if cred.Verify("") {
		t.Error("Verify accepts the empty string")
	}
}

func TestCredentialDeterministic(t *testing.T) {
	a, _ := NewCredential("Password123")
	b, _ := NewCredential("Password123")
	if a.Digest() != b.Digest() {
		t.Error("same plaintext must produce the same digest")
	}
}

func TestRestoreCredential(t *testing.T) {
	orig, _ := NewCredential("Password123")
	restored := RestoreCredential(orig.Digest())
	if !restored.Verify("Password123") {
		t.Error("restored credential no longer verifies the original password")
	}
}
