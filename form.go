package main

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var errRequired = errors.New("required")

// requiredFloat parses a finite number.
func requiredFloat(input string) (float64, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, errRequired
	}
	v, err := strconv.ParseFloat(input, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", input)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("must be finite")
	}
	return v, nil
}

// optionalFloat parses a finite number, resolving empty input to fallback.
func optionalFloat(input string, fallback float64) (float64, error) {
	if strings.TrimSpace(input) == "" {
		return fallback, nil
	}
	return requiredFloat(input)
}

// optionalString resolves empty input to fallback.
func optionalString(input, fallback string) string {
	if s := strings.TrimSpace(input); s != "" {
		return s
	}
	return fallback
}

// ordered returns a and b in ascending order.
func ordered(a, b float64) (lo, hi float64) {
	if a > b {
		return b, a
	}
	return a, b
}
