package report

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/weiihann/contactbench/harness"
)

// Complexity labels assigned by Growth.
const (
	Constant    = "O(1)"
	Logarithmic = "O(log n)"
	Linear      = "O(n)"
	Superlinear = "O(n^2) or worse"
)

// GrowthEstimate compares one operation's time at the largest and smallest
// dataset size of a structure.
type GrowthEstimate struct {
	Structure  string  `json:"structure"`
	Operation  string  `json:"operation"`
	Factor     float64 `json:"growth_factor"`
	SizeFactor float64 `json:"size_factor"`
	Complexity string  `json:"complexity"`
}

// Growth estimates how each operation scales per structure. Structures
// measured at fewer than two sizes, and operations whose smallest-size time
// is zero, are skipped.
func Growth(results []harness.Result) []GrowthEstimate {
	structures, _ := axes(results)

	var estimates []GrowthEstimate

	for _, s := range structures {
		var rows []harness.Result
		for _, r := range results {
			if r.Structure == s {
				rows = append(rows, r)
			}
		}

		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].Size < rows[j].Size
		})

		first, last := rows[0], rows[len(rows)-1]
		if len(rows) < 2 || first.Size <= 0 || first.Size == last.Size {
			continue
		}

		sizeFactor := float64(last.Size) / float64(first.Size)

		for _, op := range operations {
			base := op.value(first)
			if base <= 0 {
				continue
			}

			factor := op.value(last) / base
			estimates = append(estimates, GrowthEstimate{
				Structure:  s,
				Operation:  op.name,
				Factor:     factor,
				SizeFactor: sizeFactor,
				Complexity: classify(factor, sizeFactor),
			})
		}
	}

	return estimates
}

func classify(factor, sizeFactor float64) string {
	switch {
	case factor <= math.Pow(sizeFactor, 0.1):
		return Constant
	case factor <= math.Pow(sizeFactor, 0.5):
		return Logarithmic
	case factor <= sizeFactor*1.2:
		return Linear
	default:
		return Superlinear
	}
}

// GenerateGrowth writes the growth estimates as a markdown table.
func GenerateGrowth(w io.Writer, results []harness.Result) error {
	if len(results) == 0 {
		return ErrNoResults
	}

	estimates := Growth(results)

	fmt.Fprintln(w, "## Growth Rates")
	fmt.Fprintln(w)

	if len(estimates) == 0 {
		fmt.Fprintln(w, "Not enough dataset sizes to estimate growth.")

		return nil
	}

	fmt.Fprintln(w, "| Structure | Operation | Growth | Estimate |")
	fmt.Fprintln(w, "|-----------|-----------|--------|----------|")

	for _, e := range estimates {
		fmt.Fprintf(w, "| %s | %s | %.1fx over %.0fx | %s |\n",
			e.Structure, e.Operation, e.Factor, e.SizeFactor, e.Complexity)
	}

	return nil
}
