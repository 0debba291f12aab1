package domain

import (
	"fmt"
	"time"
)

// FormatDuration renders d as HH:MM:SS. Hours are total hours and may exceed 24.
func FormatDuration(d time.Duration) string {
	return FormatSeconds(int64(d / time.Second))
}

// FormatSeconds renders a number of seconds as HH:MM:SS
func FormatSeconds(total int64) string {
	sign := ""
	if total < 0 {
		sign = "-"
		total = -total
	}
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%s%02d:%02d:%02d", sign, h, m, s)
}
