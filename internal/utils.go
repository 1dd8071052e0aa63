package internal

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"
)

// ===== Paths =====

// GetProjectRoot returns the nearest directory at or above the working
// directory that holds a go.mod, or "." when there is none.
func GetProjectRoot() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	if root, ok := moduleRoot(wd); ok {
		return root
	}
	return "."
}

func moduleRoot(start string) (string, bool) {
	for dir := start; ; {
		if fi, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil && !fi.IsDir() {
			return dir, true
		}
		up := filepath.Dir(dir)
		if up == dir {
			return "", false
		}
		dir = up
	}
}

// ===== Input Parsing =====

// ParseQuantity reads a quantity the way a numeric text field is read: leading
// spaces and an optional sign, then the longest run of digits. Trailing text
// is ignored ("3 pcs" is 3). Anything without leading digits, or a value
// below one, is ErrInvalidQuantity. A digit run past the int range reads as
// math.MaxInt so the stock check can name the maximum.
func ParseQuantity(raw string) (int, error) {
	s := strings.TrimLeftFunc(raw, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, ErrInvalidQuantity
	}
	n, err := strconv.Atoi(s[:end])
	if errors.Is(err, strconv.ErrRange) && n > 0 {
		// Larger than any stock; the caller reports the stock limit.
		return n, nil
	}
	if err != nil || n <= 0 {
		return 0, ErrInvalidQuantity
	}
	return n, nil
}
