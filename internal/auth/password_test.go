package auth

import (
	"errors"
	"testing"
)

func TestValidateNewPassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
		confirm  string
		wantErr  error
	}{
		{"valid", "longenough1", "longenough1", nil},
		{"exactly minimum", "12345678", "12345678", nil},
		{"too short", "short77", "short77", ErrPasswordTooShort},
		{"empty", "", "", ErrPasswordTooShort},
		{"mismatch", "longenough1", "longenough2", ErrPasswordMismatch},
		{"length checked before match", "short", "different", ErrPasswordTooShort},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateNewPassword(tc.password, tc.confirm)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("ValidateNewPassword(%q, %q) = %v, want %v", tc.password, tc.confirm, err, tc.wantErr)
			}
		})
	}
}

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("correct-horse", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if err := ComparePassword(hash, "correct-horse"); err != nil {
		t.Fatalf("ComparePassword with right password: %v", err)
	}
	if err := ComparePassword(hash, "wrong-horse"); err == nil {
		t.Fatal("ComparePassword accepted wrong password")
	}
}
