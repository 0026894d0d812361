// Package report formats benchmark results into comparison tables, JSON and
// the CSV layout consumed by the analysis tooling.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/weiihann/contactbench/harness"
)

// ErrNoResults is returned when there is nothing to report.
var ErrNoResults = errors.New("no results to report")

// Generate writes markdown comparison tables for the given results.
func Generate(w io.Writer, results []harness.Result) error {
	if len(results) == 0 {
		return ErrNoResults
	}

	structures, sizes := axes(results)

	fmt.Fprintln(w, "## Benchmark Results")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "### Insert (ms per batch)")
	fmt.Fprintln(w)
	writePivot(w, results, structures, sizes, 3,
		func(r harness.Result) float64 { return r.InsertMs })

	fmt.Fprintln(w, "### Search (ms per operation)")
	fmt.Fprintln(w)
	writePivot(w, results, structures, sizes, 6,
		func(r harness.Result) float64 { return r.SearchMs })

	largest := sizes[len(sizes)-1]

	fmt.Fprintf(w, "### Best at %d contacts\n", largest)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "| Operation | Structure | Time (ms) |")
	fmt.Fprintln(w, "|-----------|-----------|-----------|")

	for _, op := range operations {
		best, ok := findFastest(results, largest, op.value)
		if !ok {
			continue
		}

		fmt.Fprintf(w, "| %s | %s | %s |\n",
			op.name, best.Structure, formatMs(op.value(best)))
	}

	fmt.Fprintln(w)

	// Full detail.
	fmt.Fprintln(w, "| Structure | Size | Insert | Search | Update | Delete |")
	fmt.Fprintln(w, "|-----------|------|--------|--------|--------|--------|")

	for _, r := range results {
		fmt.Fprintf(w, "| %s | %d | %s | %s | %s | %s |\n",
			r.Structure,
			r.Size,
			formatSpread(r.InsertMs, r.InsertSpread),
			formatSpread(r.SearchMs, r.SearchSpread),
			formatSpread(r.UpdateMs, r.UpdateSpread),
			formatSpread(r.DeleteMs, r.DeleteSpread),
		)
	}

	return nil
}

// GenerateJSON writes results as JSON to w.
func GenerateJSON(w io.Writer, results []harness.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(results)
}

type operation struct {
	name  string
	value func(harness.Result) float64
}

var operations = []operation{
	{"Insert", func(r harness.Result) float64 { return r.InsertMs }},
	{"Search", func(r harness.Result) float64 { return r.SearchMs }},
	{"Update", func(r harness.Result) float64 { return r.UpdateMs }},
	{"Delete", func(r harness.Result) float64 { return r.DeleteMs }},
}

// axes returns structures in first-seen order and sizes ascending.
func axes(results []harness.Result) ([]string, []int) {
	var (
		structures []string
		sizes      []int
	)

	for _, r := range results {
		if !slices.Contains(structures, r.Structure) {
			structures = append(structures, r.Structure)
		}

		if !slices.Contains(sizes, r.Size) {
			sizes = append(sizes, r.Size)
		}
	}

	slices.Sort(sizes)

	return structures, sizes
}

// writePivot writes a table with one row per size and one column per
// structure. Repeated (structure, size) pairs are averaged.
func writePivot(
	w io.Writer,
	results []harness.Result,
	structures []string,
	sizes []int,
	decimals int,
	value func(harness.Result) float64,
) {
	fmt.Fprintf(w, "| Size | %s |\n", strings.Join(structures, " | "))
	fmt.Fprintf(w, "|------%s|\n", strings.Repeat("|------", len(structures)))

	for _, size := range sizes {
		cells := make([]string, 0, len(structures))

		for _, s := range structures {
			var (
				sum float64
				n   int
			)

			for _, r := range results {
				if r.Structure == s && r.Size == size {
					sum += value(r)
					n++
				}
			}

			if n == 0 {
				cells = append(cells, "-")

				continue
			}

			cells = append(cells, fmt.Sprintf("%.*f", decimals, sum/float64(n)))
		}

		fmt.Fprintf(w, "| %d | %s |\n", size, strings.Join(cells, " | "))
	}

	fmt.Fprintln(w)
}

func findFastest(
	results []harness.Result,
	size int,
	value func(harness.Result) float64,
) (harness.Result, bool) {
	var (
		best  harness.Result
		found bool
	)

	for _, r := range results {
		if r.Size != size {
			continue
		}

		if !found || value(r) < value(best) {
			best = r
			found = true
		}
	}

	return best, found
}

func formatMs(ms float64) string {
	switch {
	case ms >= 1000:
		return fmt.Sprintf("%.2fs", ms/1000)
	case ms >= 1:
		return fmt.Sprintf("%.3fms", ms)
	default:
		return fmt.Sprintf("%.6fms", ms)
	}
}

func formatSpread(ms, spread float64) string {
	return formatMs(ms) + " ±" + formatMs(spread)
}
