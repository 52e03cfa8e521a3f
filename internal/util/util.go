package util

import (
	"errors"
	"strings"
)

var (
	ErrNotFoundInContext = errors.New("value not found in context")
)

// NonEmpty trims every value and drops the empty ones.
func NonEmpty(values []string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			result = append(result, v)
		}
	}

	return result
}
