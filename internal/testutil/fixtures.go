package testutil

import (
	"fmt"
	"strings"

	"github.com/vk/cogroup/internal/sample"
)

// SimilarityCSV renders edges as a pairwise_similarities.csv table.
func SimilarityCSV(edges ...sample.SimilarityEdge) string {
	var b strings.Builder
	b.WriteString("Sample1,Sample2,Similarity\n")
	for _, e := range edges {
		fmt.Fprintf(&b, "%s,%s,%g\n", e.A, e.B, e.Similarity)
	}
	return b.String()
}

// Edge is shorthand for a similarity edge in test tables.
func Edge(a, b string, s float64) sample.SimilarityEdge {
	return sample.SimilarityEdge{A: sample.ID(a), B: sample.ID(b), Similarity: s}
}

// Unindent removes common leading whitespace from a multi-line string,
// allowing for readable, indented CSV and HCL snippets in Go tests.
func Unindent(s string) string {
	lines := strings.Split(s, "\n")

	// Remove leading/trailing empty lines that are common with multi-line literals
	if len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return ""
	}

	// Find the minimum indentation of non-empty lines
	minIndent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if minIndent == -1 || indent < minIndent {
			minIndent = indent
		}
	}

	minIndent = max(minIndent, 0)

	var b strings.Builder
	for _, line := range lines {
		if len(line) >= minIndent {
			line = line[minIndent:]
		} else {
			line = strings.TrimSpace(line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
