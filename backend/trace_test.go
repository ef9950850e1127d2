package backend

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~whereswaldon/fnplot/plot"
)

func TestParseTrace(t *testing.T) {
	input := strings.Join([]string{
		"x, sin(x) / x",
		"-1, 0.841",
		"# evaluator note",
		"0, NaN",
		"1, 0.841",
		"",
	}, "\n")
	trace, err := ParseTrace(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "sin(x) / x", trace.Expression)
	require.Len(t, trace.Samples, 3)
	assert.Equal(t, plot.Pt(-1, 0.841), trace.Samples[0])
	assert.True(t, math.IsNaN(trace.Samples[1].Y))
	assert.Equal(t, plot.Pt(1, 0.841), trace.Samples[2])
	assert.Empty(t, trace.Skipped)
}

func TestParseTraceUndefinedValues(t *testing.T) {
	input := "x,1/x\n-1,-1\n0,+Inf\n0.5,\n2,1e999\n3,oops\n"
	trace, err := ParseTrace(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, trace.Samples, 5)
	assert.True(t, math.IsInf(trace.Samples[1].Y, 1))
	assert.True(t, math.IsNaN(trace.Samples[2].Y), "empty y reads as NaN")
	assert.True(t, math.IsInf(trace.Samples[3].Y, 1), "overflow keeps its sign")
	assert.True(t, math.IsNaN(trace.Samples[4].Y))
	require.Len(t, trace.Skipped, 1)
	assert.Equal(t, 6, trace.Skipped[0].Line)
	assert.ErrorContains(t, trace.Skipped[0], "bad y")
}

func TestParseTraceDropsBadX(t *testing.T) {
	input := "x,x^2\n1,1\nwhat,4\n3,9\n"
	trace, err := ParseTrace(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []plot.Sample{plot.Pt(1, 1), plot.Pt(3, 9)}, trace.Samples)
	require.Len(t, trace.Skipped, 1)
	assert.Equal(t, 3, trace.Skipped[0].Line)
}

func TestParseTraceErrors(t *testing.T) {
	type testcase struct {
		name     string
		input    string
		expected error
	}
	for _, tc := range []testcase{
		{
			name:     "empty",
			input:    "",
			expected: ErrMalformedHeading,
		},
		{
			name:     "single column heading",
			input:    "x\n1,2\n",
			expected: ErrMalformedHeading,
		},
		{
			name:     "heading only",
			input:    "x,tan(x)\n",
			expected: ErrNoSamples,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseTrace(strings.NewReader(tc.input))
			assert.ErrorIs(t, err, tc.expected)
		})
	}
}

func TestParseTraceReadsFinalRow(t *testing.T) {
	type testcase struct {
		name     string
		input    string
		expected int
	}
	for _, tc := range []testcase{
		{name: "single row", input: "x, x\n0, 0", expected: 1},
		{name: "several rows", input: "x, x\n0, 0\n1, 1\n2, 2", expected: 3},
		{name: "terminated", input: "x, x\n0, 0\n1, 1\n", expected: 2},
	} {
		t.Run(tc.name, func(t *testing.T) {
			trace, err := ParseTrace(strings.NewReader(tc.input))
			require.NoError(t, err)
			assert.Len(t, trace.Samples, tc.expected)
		})
	}
}

func TestTraceDomain(t *testing.T) {
	_, _, ok := Trace{}.Domain()
	assert.False(t, ok)

	lo, hi, ok := Trace{Samples: []plot.Sample{plot.Pt(4, 0), plot.Pt(2, 0), plot.Pt(-3, 0)}}.Domain()
	require.True(t, ok)
	assert.Equal(t, -3.0, lo)
	assert.Equal(t, 4.0, hi)
}

func TestWriteTrace(t *testing.T) {
	trace := Trace{
		Expression: "1/x",
		Samples:    []plot.Sample{plot.Pt(-1, -1), plot.Pt(0, math.Inf(1)), plot.Pt(0.5, math.NaN()), plot.Pt(1, 1)},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteTrace(&buf, trace))
	assert.Equal(t, "x,1/x\n-1,-1\n0,+Inf\n0.5,NaN\n1,1\n", buf.String())

	parsed, err := ParseTrace(&buf)
	require.NoError(t, err)
	assert.Equal(t, trace.Expression, parsed.Expression)
	require.Len(t, parsed.Samples, 4)
	assert.True(t, math.IsInf(parsed.Samples[1].Y, 1))
	assert.True(t, math.IsNaN(parsed.Samples[2].Y))
	assert.Empty(t, parsed.Skipped)
}
