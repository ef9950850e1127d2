package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequiredFloat(t *testing.T) {
	type testcase struct {
		name     string
		input    string
		expected float64
		err      bool
	}
	for _, tc := range []testcase{
		{name: "integer", input: "3", expected: 3},
		{name: "spaces", input: "  -2.5 ", expected: -2.5},
		{name: "exponent", input: "1e-3", expected: 0.001},
		{name: "empty", input: "", err: true},
		{name: "blank", input: "   ", err: true},
		{name: "garbage", input: "pi", err: true},
		{name: "nan", input: "NaN", err: true},
		{name: "inf", input: "-Inf", err: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			v, err := requiredFloat(tc.input)
			if tc.err {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, v)
		})
	}
	_, err := requiredFloat("")
	assert.ErrorIs(t, err, errRequired)
}

func TestOptionalFloat(t *testing.T) {
	v, err := optionalFloat("", 7)
	assert.NoError(t, err)
	assert.Equal(t, 7.0, v)

	v, err = optionalFloat(" 1.5", 7)
	assert.NoError(t, err)
	assert.Equal(t, 1.5, v)

	_, err = optionalFloat("x", 7)
	assert.Error(t, err)
}

func TestOptionalString(t *testing.T) {
	assert.Equal(t, "x^2", optionalString("  ", "x^2"))
	assert.Equal(t, "f", optionalString(" f ", "x^2"))
}

func TestOrdered(t *testing.T) {
	lo, hi := ordered(3, -1)
	assert.Equal(t, -1.0, lo)
	assert.Equal(t, 3.0, hi)
	lo, hi = ordered(-1, 3)
	assert.Equal(t, -1.0, lo)
	assert.Equal(t, 3.0, hi)
}
