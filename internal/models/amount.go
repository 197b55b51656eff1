package models

import (
	"strconv"
	"strings"
)

// ParseCommaInt parses a thousands-comma-formatted integer string such as
// "4,950" or "-1,200" into its integer value.
func ParseCommaInt(amountStr string) (int64, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(amountStr, ",", ""))
	return strconv.ParseInt(cleaned, 10, 64)
}
