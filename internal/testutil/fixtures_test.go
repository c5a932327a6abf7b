package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnindent(t *testing.T) {
	in := `
		Sample,Location
		  S1,Lake
		S2,River
	`
	assert.Equal(t, "Sample,Location\n  S1,Lake\nS2,River\n", Unindent(in))
	assert.Equal(t, "", Unindent("\n\n"))
}

func TestSimilarityCSV(t *testing.T) {
	got := SimilarityCSV(Edge("S1", "S2", 0.9), Edge("S2", "S3", 0.85))
	assert.Equal(t, "Sample1,Sample2,Similarity\nS1,S2,0.9\nS2,S3,0.85\n", got)
}
