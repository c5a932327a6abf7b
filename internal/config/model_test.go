package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/cogroup/internal/balance"
	"github.com/vk/cogroup/internal/sample"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestEngineOptions(t *testing.T) {
	m := Default()
	m.Balance.Remainder = "last"
	opts := m.EngineOptions()

	assert.Equal(t, 0.8, opts.Similarity.Threshold)
	assert.Equal(t, 8, opts.Similarity.MaxGroupSize)
	assert.Equal(t, 8, opts.Balance.MaxGroupSize)
	assert.Equal(t, 4, opts.Balance.TargetGroupSize)
	assert.Equal(t, balance.RemainderLast, opts.Balance.Remainder)
	assert.Equal(t, 10, opts.Refine.CategoricalCutoff)
	assert.Equal(t, int64(10_000_000), opts.Estimate.AvgReadsPerSample)
	require.Contains(t, opts.Estimate.Profiles, sample.CoAssembly)
	assert.Equal(t, 16.0, opts.Estimate.Profiles[sample.CoAssembly].MemoryMinGB)
}

func TestClone(t *testing.T) {
	m := Default()
	c := m.Clone()
	c.Resources.Profiles["individual"] = Profile{}
	c.Grouping.MaxGroupSize = 99
	assert.Equal(t, 8, m.Grouping.MaxGroupSize)
	assert.Equal(t, 4.0, m.Resources.Profiles["individual"].MemoryMinGB)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(m *Model)
		wantErr string
	}{
		{
			name:    "threshold above one",
			mutate:  func(m *Model) { m.Grouping.SimilarityThreshold = 1.5 },
			wantErr: "grouping.similaritythreshold must be at most 1",
		},
		{
			name:    "zero max group size",
			mutate:  func(m *Model) { m.Grouping.MaxGroupSize = 0 },
			wantErr: "grouping.maxgroupsize must be at least 1",
		},
		{
			name:    "target below min",
			mutate:  func(m *Model) { m.Balance.TargetGroupSize = 1 },
			wantErr: "balance.targetgroupsize must not be less than mingroupsize",
		},
		{
			name:    "target above max",
			mutate:  func(m *Model) { m.Balance.TargetGroupSize = 9 },
			wantErr: "must not exceed grouping.maxgroupsize",
		},
		{
			name:    "unknown remainder",
			mutate:  func(m *Model) { m.Balance.Remainder = "spread" },
			wantErr: "balance.remainder must be one of: clamp last",
		},
		{
			name:    "bad output format",
			mutate:  func(m *Model) { m.Output.Format = "xml" },
			wantErr: "output.format must be one of",
		},
		{
			name:    "missing profile",
			mutate:  func(m *Model) { delete(m.Resources.Profiles, "individual") },
			wantErr: `missing the "individual" profile`,
		},
		{
			name: "inverted profile bounds",
			mutate: func(m *Model) {
				p := m.Resources.Profiles["co-assembly"]
				p.MemoryMaxGB = 1
				m.Resources.Profiles["co-assembly"] = p
			},
			wantErr: "memorymaxgb must not be less than memorymingb",
		},
		{
			name:    "unknown profile key",
			mutate:  func(m *Model) { m.Resources.Profiles["hybrid"] = m.Resources.Profiles["individual"] },
			wantErr: "must be one of: individual co-assembly",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := Default()
			tc.mutate(m)
			err := m.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}
