package domain

import (
	"fmt"
	"strings"
)

// NameMatching selects how a person lookup compares names.
type NameMatching string

const (
	NameMatchingExact           NameMatching = "exact"
	NameMatchingCaseInsensitive NameMatching = "case_insensitive"
)

// ParseNameMatching validates a configured matching mode. Empty means exact.
func ParseNameMatching(raw string) (NameMatching, error) {
	switch NameMatching(strings.ToLower(strings.TrimSpace(raw))) {
	case "", NameMatchingExact:
		return NameMatchingExact, nil
	case NameMatchingCaseInsensitive:
		return NameMatchingCaseInsensitive, nil
	default:
		return "", fmt.Errorf("unknown name matching %q", raw)
	}
}
