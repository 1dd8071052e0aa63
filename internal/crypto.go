package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ===== Checkout Verification Code =====

// DefaultVerificationCode is accepted when no hash is configured.
const DefaultVerificationCode = "123456"

const codeHashFile = "code.hash"

// HashVerificationCode returns a bcrypt hash of a six-digit code.
func HashVerificationCode(code string) ([]byte, error) {
	if !validCodeFormat(code) {
		return nil, errors.New("verification code must be six digits")
	}
	return bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
}

// ReadCodeHash looks up the verification hash in STOREFRONT_CODE_HASH, then
// in code.hash under dir. It falls back to a hash of DefaultVerificationCode.
func ReadCodeHash(dir string) ([]byte, error) {
	h := os.Getenv("STOREFRONT_CODE_HASH")
	if h == "" {
		data, err := os.ReadFile(filepath.Join(dir, codeHashFile))
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read %s: %w", codeHashFile, err)
			}
			return bcrypt.GenerateFromPassword([]byte(DefaultVerificationCode), bcrypt.MinCost)
		}
		h = string(data)
	}
	h = strings.TrimSpace(h)
	if _, err := bcrypt.Cost([]byte(h)); err != nil {
		return nil, fmt.Errorf("verification hash: %w", err)
	}
	return []byte(h), nil
}

// CodeVerifier checks checkout verification codes against a bcrypt hash.
type CodeVerifier struct {
	hash []byte
}

func NewCodeVerifier(hash []byte) *CodeVerifier {
	return &CodeVerifier{hash: hash}
}

func (v *CodeVerifier) Verify(code string) bool {
	if !validCodeFormat(code) {
		return false
	}
	return bcrypt.CompareHashAndPassword(v.hash, []byte(code)) == nil
}

func validCodeFormat(code string) bool {
	if len(code) != 6 {
		return false
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
