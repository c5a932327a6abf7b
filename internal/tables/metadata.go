package tables

import (
	"errors"
	"io/fs"

	"github.com/vk/cogroup/internal/diag"
	"github.com/vk/cogroup/internal/sample"
)

// SampleColumn identifies the sample of each metadata row.
const SampleColumn = "Sample"

// LoadMetadata reads the metadata table at path. A missing file yields nil
// metadata and a warning. Missing cells are left out of the row.
func LoadMetadata(path string) (sample.Metadata, []diag.Event, error) {
	ev := diag.For(Stage)

	t, err := readTable(path)
	if errors.Is(err, fs.ErrNotExist) {
		ev.Warn("Metadata file not found.", "path", path)
		return nil, ev.List(), nil
	}
	if err != nil {
		return nil, nil, err
	}

	idx, err := t.require(SampleColumn)
	if err != nil {
		return nil, nil, err
	}
	sampleIdx := idx[0]

	md := make(sample.Metadata, len(t.rows))
	for n, rec := range t.rows {
		id := sample.ID(cell(rec, sampleIdx))
		if id == "" {
			ev.Debug("Skipping metadata row without a sample.", "row", n+1)
			continue
		}
		if _, dup := md[id]; dup {
			ev.Warn("Duplicate metadata row; the later row wins.", "sample", string(id))
		}

		row := make(sample.Row, len(t.header))
		for i, col := range t.header {
			if i == sampleIdx || col == "" {
				continue
			}
			raw := cell(rec, i)
			if IsMissing(raw) {
				continue
			}
			row[col] = sample.ParseValue(raw)
		}
		md[id] = row
	}

	ev.Info("Loaded metadata.", "samples", len(md), "path", path)
	return md, ev.List(), nil
}
