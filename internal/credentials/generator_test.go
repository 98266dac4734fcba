package credentials

import (
	"strings"
	"testing"
)

func TestGeneratePassword(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		pw, err := GeneratePassword()
		if err != nil {
			t.Fatalf("GeneratePassword: %v", err)
		}
		if len(pw) != PasswordLength {
			t.Fatalf("password length = %d, want %d", len(pw), PasswordLength)
		}
		for _, ch := range pw {
			if !strings.ContainsRune(PasswordAlphabet, ch) {
				t.Fatalf("password %q contains %q outside alphabet", pw, ch)
			}
		}
		seen[pw] = true
	}
	if len(seen) < 2 {
		t.Fatal("expected distinct passwords across draws")
	}
}

func TestSynthesizeUsername(t *testing.T) {
	cases := []struct {
		name   string
		first  string
		middle string
		last   string
		want   string
	}{
		{"simple", "Sita", "", "Sharma", "sitasharma"},
		{"with middle", "Ram", "Bahadur", "Thapa", "rambahadurthapa"},
		{"internal spaces", "Mary Jane", "", "van Dyke", "maryjanevandyke"},
		{"already lowercase", "gopal", "", "karki", "gopalkarki"},
		{"empty parts", "", "", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SynthesizeUsername(tc.first, tc.middle, tc.last)
			if got != tc.want {
				t.Fatalf("SynthesizeUsername(%q, %q, %q) = %q, want %q",
					tc.first, tc.middle, tc.last, got, tc.want)
			}
			// Same input, same candidate.
			if again := SynthesizeUsername(tc.first, tc.middle, tc.last); again != got {
				t.Fatalf("second call returned %q, want %q", again, got)
			}
		})
	}
}
