package core

import "strings"

// ListSeparator joins list fields stored in a single cell.
const ListSeparator = ", "

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// CleanList trims every item of `items` and drops the blank ones.
func CleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = CleanString(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// SplitList parses a comma-separated cell.
func SplitList(cell string) []string {
	return CleanList(strings.Split(cell, ","))
}

// JoinList serializes a list into a single cell.
func JoinList(items []string) string {
	return strings.Join(items, ListSeparator)
}

// ContainsFold reports whether substr is within any of fields, ignoring case.
func ContainsFold(substr string, fields ...string) bool {
	substr = strings.ToLower(substr)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), substr) {
			return true
		}
	}
	return false
}
