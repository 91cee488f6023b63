package utils

import (
	"strconv"
	"strings"
)

// NormalizeHeader canonicalizes a raw column header for matching: surrounding
// whitespace and quotes removed, internal whitespace collapsed, lower-cased.
func NormalizeHeader(h string) string {
	h = strings.TrimSpace(h)
	h = strings.ReplaceAll(h, `"`, "")
	h = strings.Join(strings.Fields(h), " ")
	return strings.ToLower(h)
}

// ParseFloat parses a numeric cell. Thousands separators and surrounding
// whitespace are tolerated; empty and non-numeric cells report !ok.
func ParseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ParseYear parses an integer year cell. A trailing ".0" (spreadsheet export
// artifact) is tolerated.
func ParseYear(s string) (int, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ".0")
	if s == "" {
		return 0, false
	}
	y, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return y, true
}
