package tables

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"path/filepath"
	"strconv"

	"github.com/vk/cogroup/internal/sample"
	"github.com/vk/cogroup/internal/similarity"
)

// SimilarityFile is the pairwise table inside the similarity directory.
const SimilarityFile = "pairwise_similarities.csv"

// LoadSimilarity reads the pairwise similarity table from dir. Edge values
// are validated by the similarity stage, not here; only cells that are not
// numbers at all are rejected. Missing cells become NaN, which keeps both
// samples without linking them.
func LoadSimilarity(dir string) ([]sample.SimilarityEdge, error) {
	path := filepath.Join(dir, SimilarityFile)
	t, err := readTable(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: pairwise similarities file not found: %s", similarity.ErrNoSimilarityData, path)
	}
	if err != nil {
		return nil, err
	}
	if len(t.rows) == 0 {
		return nil, fmt.Errorf("%w: %s has no rows", similarity.ErrNoSimilarityData, path)
	}

	idx, err := t.require("Sample1", "Sample2", "Similarity")
	if err != nil {
		return nil, err
	}

	edges := make([]sample.SimilarityEdge, 0, len(t.rows))
	for i, rec := range t.rows {
		raw := cell(rec, idx[2])
		s, err := strconv.ParseFloat(raw, 64)
		if IsMissing(raw) {
			s, err = math.NaN(), nil
		}
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w: similarity %q is not a number",
				path, i+1, similarity.ErrInvalidEdge, raw)
		}
		edges = append(edges, sample.SimilarityEdge{
			A:          sample.ID(cell(rec, idx[0])),
			B:          sample.ID(cell(rec, idx[1])),
			Similarity: s,
		})
	}
	return edges, nil
}
