package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"git.sr.ht/~whereswaldon/fnplot/backend"
	"git.sr.ht/~whereswaldon/fnplot/plot"
)

type function struct {
	expression string
	eval       func(x float64) float64
}

// catalog holds the functions this tool can sample. They were picked to
// cover poles, gaps in the domain and jump discontinuities.
var catalog = map[string]function{
	"sin":        {expression: "sin(x)", eval: math.Sin},
	"sinc":       {expression: "sin(x) / x", eval: func(x float64) float64 { return math.Sin(x) / x }},
	"tan":        {expression: "tan(x)", eval: math.Tan},
	"reciprocal": {expression: "1 / x", eval: func(x float64) float64 { return 1 / x }},
	"sqrt":       {expression: "sqrt(x)", eval: math.Sqrt},
	"log":        {expression: "ln(x)", eval: math.Log},
	"square":     {expression: "x^2", eval: func(x float64) float64 { return x * x }},
	"floor":      {expression: "floor(x)", eval: math.Floor},
}

func catalogNames() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// sample evaluates f at n evenly spaced points across [xMin, xMax].
func sample(f function, xMin, xMax float64, n int) backend.Trace {
	t := backend.Trace{
		Expression: f.expression,
		Samples:    make([]plot.Sample, 0, n),
	}
	if n == 1 {
		t.Samples = append(t.Samples, plot.Pt(xMin, f.eval(xMin)))
		return t
	}
	step := (xMax - xMin) / float64(n-1)
	for i := 0; i < n; i++ {
		x := xMin + float64(i)*step
		if i == n-1 {
			x = xMax
		}
		t.Samples = append(t.Samples, plot.Pt(x, f.eval(x)))
	}
	return t
}

func newRootCmd() *cobra.Command {
	var (
		xMin, xMax float64
		count      int
		outputName string
	)
	cmd := &cobra.Command{
		Use:   "fnplot-sample <function>",
		Short: "Write a trace of a built-in function",
		Long: heredoc.Docf(`
			Sample one of a fixed set of functions and write the result as a
			trace that fnplot can display.

			Available functions: %s
		`, strings.Join(catalogNames(), ", ")),
		Example: heredoc.Doc(`
			# Plot tan(x) directly
			$ fnplot-sample tan --x-min -6 --x-max 6 | fnplot -

			# Write a trace to a file that fnplot is watching
			$ fnplot-sample reciprocal --samples 2000 --output trace.csv
		`),
		Args:         cobra.ExactArgs(1),
		ValidArgs:    catalogNames(),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, ok := catalog[args[0]]
			if !ok {
				return fmt.Errorf("unknown function %q, expected one of: %s", args[0], strings.Join(catalogNames(), ", "))
			}
			if xMin >= xMax {
				return fmt.Errorf("x-min (%v) must be less than x-max (%v)", xMin, xMax)
			}
			if count < 1 {
				return fmt.Errorf("samples must be positive, got %d", count)
			}

			var output io.WriteCloser
			if outputName == "-" {
				output = os.Stdout
			} else {
				file, err := os.Create(outputName)
				if err != nil {
					return fmt.Errorf("failed opening output file %q: %w", outputName, err)
				}
				output = file
			}
			trace := sample(f, xMin, xMax, count)
			if err := backend.WriteTrace(output, trace); err != nil {
				output.Close()
				return err
			}
			log.Debug("wrote trace", "expression", trace.Expression, "samples", len(trace.Samples), "output", outputName)
			return output.Close()
		},
	}
	cmd.Flags().Float64Var(&xMin, "x-min", -10, "Lower end of the sampled range")
	cmd.Flags().Float64Var(&xMax, "x-max", 10, "Upper end of the sampled range")
	cmd.Flags().IntVarP(&count, "samples", "n", 1000, "Number of samples")
	cmd.Flags().StringVarP(&outputName, "output", "o", "-", "Output file for the trace")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error("failed writing trace", "error", err)
		os.Exit(1)
	}
}
