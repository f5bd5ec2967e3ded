package handler

import (
	"strconv"
	"strings"
)

func parsePositiveInt(s string, defaultVal int) int {
	if val, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && val > 0 {
		return val
	}
	return defaultVal
}
