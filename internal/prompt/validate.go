package prompt

import (
	"strconv"
	"strings"
)

// Index accepts an integer in [0, n)
func Index(n int) Validator[int] {
	return func(raw string) (int, bool) {
		i, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || i < 0 || i >= n {
			return 0, false
		}
		return i, true
	}
}

// IndexOrExit accepts an integer in [0, n) or the exit answer, which
// yields -1
func IndexOrExit(n int, exit string) Validator[int] {
	index := Index(n)
	return func(raw string) (int, bool) {
		if strings.TrimSpace(raw) == exit {
			return -1, true
		}
		return index(raw)
	}
}

// Choice accepts one of the given answers
func Choice(options ...string) Validator[string] {
	return func(raw string) (string, bool) {
		raw = strings.TrimSpace(raw)
		for _, o := range options {
			if raw == o {
				return raw, true
			}
		}
		return "", false
	}
}

// NonNegative accepts a whole number >= 0
func NonNegative(raw string) (int64, bool) {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

// Text accepts any answer
func Text(raw string) (string, bool) {
	return raw, true
}
