package refine

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/vk/cogroup/internal/sample"
)

// check is the outcome of testing one variable over one group.
type check struct {
	variable string
	// checked is false when the group had no usable values for the variable.
	checked bool
	flagged bool
	reason  string
}

// values collects the non-missing values of name across rows.
func values(rows []sample.Row, name string) []sample.Value {
	var out []sample.Value
	for _, row := range rows {
		if v, ok := row[name]; ok {
			out = append(out, v)
		}
	}
	return out
}

// distinct returns the sorted distinct text forms of vals.
func distinct(vals []sample.Value) []string {
	seen := make(map[string]struct{}, len(vals))
	var out []string
	for _, v := range vals {
		s := v.String()
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// isCategorical decides how a variable is tested. The declared kind is
// overridden by the data: few distinct values, or any non-numeric value,
// always means categorical.
func isCategorical(kind sample.VariableKind, vals []sample.Value, uniques, cutoff int) bool {
	if kind == sample.Categorical || uniques <= cutoff {
		return true
	}
	for _, v := range vals {
		if !v.IsNumeric() {
			return true
		}
	}
	return false
}

// coefficientOfVariation uses the sample standard deviation (n-1). A zero
// mean yields +Inf.
func coefficientOfVariation(xs []float64) float64 {
	n := float64(len(xs))
	var sum float64
	for _, x := range xs {
		sum += x
	}
	mean := sum / n
	var ss float64
	for _, x := range xs {
		ss += (x - mean) * (x - mean)
	}
	std := math.Sqrt(ss / (n - 1))
	if mean == 0 {
		return math.Inf(1)
	}
	return std / mean
}

func checkVariable(v sample.Variable, rows []sample.Row, opts Options) check {
	c := check{variable: v.Name}
	vals := values(rows, v.Name)
	if len(vals) == 0 {
		return c
	}
	c.checked = true

	uniques := distinct(vals)
	if isCategorical(v.Kind, vals, len(uniques), opts.CategoricalCutoff) {
		if len(uniques) > 1 {
			c.flagged = true
			c.reason = fmt.Sprintf("different %s values: [%s]", v.Name, strings.Join(uniques, " "))
		}
		return c
	}

	if len(vals) < 2 {
		return c
	}
	xs := make([]float64, 0, len(vals))
	for _, val := range vals {
		f, _ := val.Float()
		xs = append(xs, f)
	}
	cv := coefficientOfVariation(xs)
	if cv > opts.CVThreshold {
		c.flagged = true
		c.reason = fmt.Sprintf("high variability in %s (CV=%.2f)", v.Name, cv)
	}
	return c
}
