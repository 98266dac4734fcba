package credentials

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// PasswordAlphabet mixes upper, lower, digits and symbols. Ambiguous glyphs
// (I, O, l, 0, 1) are left out so printed credentials stay readable.
const PasswordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789!@#$%^&*"

// PasswordLength is fixed for all generated initial passwords.
const PasswordLength = 10

// GeneratePassword draws a fresh initial password uniformly from the
// alphabet. Two calls for the same record are not expected to agree.
func GeneratePassword() (string, error) {
	max := big.NewInt(int64(len(PasswordAlphabet)))
	var b strings.Builder
	b.Grow(PasswordLength)
	for i := 0; i < PasswordLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(PasswordAlphabet[n.Int64()])
	}
	return b.String(), nil
}

// SynthesizeUsername builds the candidate username from name parts:
// lower-cased first+middle+last with all whitespace stripped. Identical
// inputs always produce the identical candidate; uniqueness against existing
// accounts is resolved by the caller.
func SynthesizeUsername(first, middle, last string) string {
	var b strings.Builder
	for _, part := range []string{first, middle, last} {
		for _, r := range strings.ToLower(part) {
			if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
				continue
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}
