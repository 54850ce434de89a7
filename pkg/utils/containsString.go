package utils

import "slices"

// ContainsString reports whether needle is one of the values in haystack.
func ContainsString(haystack []string, needle string) bool {
	return slices.Contains(haystack, needle)
}
