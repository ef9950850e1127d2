package backend

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"git.sr.ht/~whereswaldon/fnplot/plot"
)

var (
	// ErrMalformedHeading is returned when the first row of a trace is not
	// an "x, <expression>" heading.
	ErrMalformedHeading = errors.New("malformed trace heading")
	// ErrNoSamples is returned for a trace that has a heading but no rows.
	ErrNoSamples = errors.New("trace contains no samples")
)

// Trace is one sampled expression.
type Trace struct {
	Expression string
	Samples    []plot.Sample
	// Skipped describes rows that were dropped or read as undefined.
	Skipped []RowError
}

// RowError describes a problem with a single row of a trace.
type RowError struct {
	Line int
	Err  error
}

func (r RowError) Error() string {
	return fmt.Sprintf("line %d: %v", r.Line, r.Err)
}

func (r RowError) Unwrap() error {
	return r.Err
}

// Domain returns the x values of the first and last samples. ok is false
// for an empty trace.
func (t Trace) Domain() (xMin, xMax float64, ok bool) {
	if len(t.Samples) == 0 {
		return 0, 0, false
	}
	xMin, xMax = t.Samples[0].X, t.Samples[len(t.Samples)-1].X
	if xMax < xMin {
		xMin, xMax = xMax, xMin
	}
	return xMin, xMax, true
}

// ParseTrace reads a CSV trace. The first row is a heading whose second
// column names the expression; every following row is "x, y". A y of NaN,
// Inf, +Inf or -Inf is kept as-is, and an empty or unparsable y is read as
// NaN. Rows with an unparsable x are dropped. Both kinds of problems are
// recorded in Trace.Skipped rather than failing the parse. Lines starting
// with '#' are ignored.
//
// The input is read to EOF, so a final row without a trailing newline is
// still parsed. Use ParseTraceInProgress for files that may still be written.
func ParseTrace(r io.Reader) (Trace, error) {
	return parseTrace(r)
}

// ParseTraceInProgress is like ParseTrace, but holds back a final row that
// has no trailing newline because the evaluator may still be writing it.
func ParseTraceInProgress(r io.Reader) (Trace, error) {
	return parseTrace(NewLineReader(r))
}

func parseTrace(r io.Reader) (Trace, error) {
	csvReader := csv.NewReader(r)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1
	csvReader.Comment = '#'

	heading, err := csvReader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Trace{}, fmt.Errorf("%w: empty input", ErrMalformedHeading)
		}
		return Trace{}, fmt.Errorf("failed reading trace heading: %w", err)
	}
	if len(heading) < 2 {
		return Trace{}, fmt.Errorf("%w: expected 2 columns, got %d", ErrMalformedHeading, len(heading))
	}
	trace := Trace{Expression: strings.TrimSpace(heading[1])}

	for {
		rec, err := csvReader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				trace.Skipped = append(trace.Skipped, RowError{Line: parseErr.Line, Err: parseErr.Err})
				continue
			}
			return trace, fmt.Errorf("failed reading trace: %w", err)
		}
		line, _ := csvReader.FieldPos(0)
		x, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
		if err != nil {
			trace.Skipped = append(trace.Skipped, RowError{Line: line, Err: fmt.Errorf("bad x: %w", err)})
			continue
		}
		y := math.NaN()
		if len(rec) > 1 {
			if field := strings.TrimSpace(rec[1]); field != "" {
				y, err = strconv.ParseFloat(field, 64)
				if err != nil && !errors.Is(err, strconv.ErrRange) {
					trace.Skipped = append(trace.Skipped, RowError{Line: line, Err: fmt.Errorf("bad y: %w", err)})
					y = math.NaN()
				}
			}
		}
		trace.Samples = append(trace.Samples, plot.Pt(x, y))
	}
	if len(trace.Samples) == 0 {
		return trace, ErrNoSamples
	}
	return trace, nil
}

// WriteTrace writes t in the format read by ParseTrace. Undefined samples
// are written as NaN or signed Inf.
func WriteTrace(w io.Writer, t Trace) error {
	csvWriter := csv.NewWriter(w)
	if err := csvWriter.Write([]string{"x", t.Expression}); err != nil {
		return fmt.Errorf("failed writing trace heading: %w", err)
	}
	record := make([]string, 2)
	for _, s := range t.Samples {
		record[0] = strconv.FormatFloat(s.X, 'g', -1, 64)
		record[1] = strconv.FormatFloat(s.Y, 'g', -1, 64)
		if err := csvWriter.Write(record); err != nil {
			return fmt.Errorf("failed writing sample: %w", err)
		}
	}
	csvWriter.Flush()
	return csvWriter.Error()
}
