package id

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var id32 = regexp.MustCompile(`^[0-9a-f]{32}$`)

// NewID32 returns a random (v4) UUID as 32 lowercase hex characters.
func NewID32() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Valid reports whether s has the NewID32 shape.
func Valid(s string) bool { return id32.MatchString(s) }
