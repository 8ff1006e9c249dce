// Package dates converts between the ISO form dates are stored in and the
// DD/MM/YYYY form users type and read.
package dates

import (
	"fmt"
	"strings"
	"time"
)

const (
	brLayout     = "02/01/2006"
	legacyLayout = "02-01-2006"
)

// ParseBR converts a DD/MM/YYYY date into its ISO form.
func ParseBR(s string) (string, error) {
	t, err := time.Parse(brLayout, strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("invalid date %q, expected DD/MM/YYYY: %w", s, err)
	}

	return t.Format(time.DateOnly), nil
}

// FormatBR renders an ISO date as DD/MM/YYYY. Values that are not ISO dates
// are returned unchanged so they stay visible in listings.
func FormatBR(iso string) string {
	t, err := time.Parse(time.DateOnly, iso)
	if err != nil {
		return iso
	}

	return t.Format(brLayout)
}

func IsISO(s string) bool {
	_, err := time.Parse(time.DateOnly, s)
	return err == nil
}

// FromLegacy rewrites a DD-MM-YYYY date into ISO form. It reports false for
// anything else, including dates already in ISO form.
func FromLegacy(s string) (string, bool) {
	if len(s) != len(legacyLayout) || s[2] != '-' || s[5] != '-' {
		return "", false
	}

	t, err := time.Parse(legacyLayout, s)
	if err != nil {
		return "", false
	}

	return t.Format(time.DateOnly), true
}

// Parse accepts ISO or DD/MM/YYYY input and returns the ISO form.
func Parse(s string) (string, error) {
	s = strings.TrimSpace(s)
	if IsISO(s) {
		return s, nil
	}

	if iso, ok := FromLegacy(s); ok {
		return iso, nil
	}

	return ParseBR(s)
}
