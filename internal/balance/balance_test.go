package balance

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/cogroup/internal/diag"
	"github.com/vk/cogroup/internal/sample"
)

func ids(n int) []sample.ID {
	out := make([]sample.ID, n)
	for i := range out {
		out[i] = sample.ID(fmt.Sprintf("S%03d", i))
	}
	return out
}

func defaultOpts() Options {
	return Options{MinGroupSize: 2, TargetGroupSize: 4, MaxGroupSize: 8}
}

func TestBalance_PassThrough(t *testing.T) {
	groups := []sample.Group{
		sample.Single("A", "no similar samples"),
		{Samples: ids(8), Strategy: sample.CoAssembly, Basis: "k-mer similarity"},
	}
	out, _, err := Balance(groups, defaultOpts())
	require.NoError(t, err)
	assert.Equal(t, groups, out)
}

func TestBalance_SplitsLargeGroup(t *testing.T) {
	all := ids(11)
	groups := []sample.Group{{Samples: all, Strategy: sample.CoAssembly, Basis: "k-mer similarity"}}

	out, _, err := Balance(groups, defaultOpts())
	require.NoError(t, err)
	// ceil(11/4)=3 sub-groups of floor(11/3)=3, remainder 2 on the last.
	require.Len(t, out, 3)
	assert.Equal(t, all[0:3], out[0].Samples)
	assert.Equal(t, all[3:6], out[1].Samples)
	assert.Equal(t, all[6:11], out[2].Samples)
	for _, g := range out {
		assert.Equal(t, sample.CoAssembly, g.Strategy)
		assert.Equal(t, "k-mer similarity (size-optimized)", g.Basis)
	}
	assert.NoError(t, sample.CheckPartition(all, out))
}

func TestSplitSizes(t *testing.T) {
	for _, tc := range []struct {
		n      int
		policy RemainderPolicy
		want   []int
	}{
		{9, RemainderClamp, []int{3, 3, 3}},
		{11, RemainderClamp, []int{3, 3, 5}},
		{11, RemainderLast, []int{3, 3, 5}},
		// 23 samples: 6 sub-groups of 3, remainder 5 -> last would be 8 > 7.
		{23, RemainderLast, []int{3, 3, 3, 3, 3, 8}},
		{23, RemainderClamp, []int{3, 4, 4, 4, 4, 4}},
		// 14 samples: 4 sub-groups of 3, remainder 2 -> last is 5, which fits.
		{14, RemainderClamp, []int{3, 3, 3, 5}},
		// 39 samples: 10 sub-groups of 3, remainder 9 -> last would be 12.
		{39, RemainderLast, []int{3, 3, 3, 3, 3, 3, 3, 3, 3, 12}},
		{39, RemainderClamp, []int{3, 4, 4, 4, 4, 4, 4, 4, 4, 4}},
	} {
		t.Run(fmt.Sprintf("%d/%s", tc.n, tc.policy), func(t *testing.T) {
			opts := defaultOpts()
			opts.Remainder = tc.policy
			assert.Equal(t, tc.want, SplitSizes(tc.n, opts))
		})
	}
}

func TestBalance_MaxSizeConformance(t *testing.T) {
	for _, sizes := range []Options{
		{MinGroupSize: 2, TargetGroupSize: 4, MaxGroupSize: 8},
		{MinGroupSize: 2, TargetGroupSize: 3, MaxGroupSize: 5},
		{MinGroupSize: 1, TargetGroupSize: 5, MaxGroupSize: 5},
		{MinGroupSize: 2, TargetGroupSize: 6, MaxGroupSize: 12},
	} {
		for n := sizes.MaxGroupSize + 1; n <= 120; n++ {
			all := ids(n)
			groups := []sample.Group{{Samples: all, Strategy: sample.CoAssembly}}
			out, _, err := Balance(groups, sizes)
			require.NoError(t, err)
			require.NoError(t, sample.CheckPartition(all, out))

			for i, g := range out {
				if i < len(out)-1 {
					assert.LessOrEqual(t, g.Size(), sizes.TargetGroupSize, "n=%d sub-group %d", n, i)
				} else {
					assert.LessOrEqual(t, g.Size(), sizes.MaxGroupSize, "n=%d last sub-group", n)
					assert.LessOrEqual(t, g.Size(), 2*sizes.TargetGroupSize-1, "n=%d last sub-group", n)
				}
				assert.Greater(t, g.Size(), 0)
			}
		}
	}
}

func TestBalance_DefaultSizesKeepLastBelowTwiceTarget(t *testing.T) {
	all := ids(23)
	out, _, err := Balance([]sample.Group{{Samples: all, Strategy: sample.CoAssembly}}, defaultOpts())
	require.NoError(t, err)
	require.Len(t, out, 6)

	var sizes []int
	for _, g := range out {
		sizes = append(sizes, g.Size())
	}
	assert.Equal(t, []int{3, 4, 4, 4, 4, 4}, sizes)
	assert.Equal(t, all[19:], out[5].Samples)
	assert.NoError(t, sample.CheckPartition(all, out))
}

func TestOptions_LastLimit(t *testing.T) {
	assert.Equal(t, 7, defaultOpts().LastLimit())
	assert.Equal(t, 5, Options{MinGroupSize: 1, TargetGroupSize: 5, MaxGroupSize: 5}.LastLimit())
}

func TestBalance_LegacyRemainderStaysOnLast(t *testing.T) {
	opts := defaultOpts()
	opts.Remainder = RemainderLast
	for n := 9; n <= 60; n++ {
		out, _, err := Balance([]sample.Group{{Samples: ids(n), Strategy: sample.CoAssembly}}, opts)
		require.NoError(t, err)
		k := len(out)
		base := n / k
		for i := 0; i < k-1; i++ {
			assert.Equal(t, base, out[i].Size())
			assert.LessOrEqual(t, out[i].Size(), opts.TargetGroupSize)
		}
		assert.Equal(t, base+n%k, out[k-1].Size())
	}
}

func TestBalance_WarnsBelowMinimum(t *testing.T) {
	opts := Options{MinGroupSize: 3, TargetGroupSize: 3, MaxGroupSize: 3}
	// 4 samples -> 2 sub-groups of 2.
	_, events, err := Balance([]sample.Group{{Samples: ids(4), Strategy: sample.CoAssembly}}, opts)
	require.NoError(t, err)
	assert.Equal(t, 2, diag.Count(events)[diag.LevelWarn])
}

func TestOptionsValidate(t *testing.T) {
	assert.NoError(t, defaultOpts().Validate())
	for _, o := range []Options{
		{MinGroupSize: 0, TargetGroupSize: 4, MaxGroupSize: 8},
		{MinGroupSize: 5, TargetGroupSize: 4, MaxGroupSize: 8},
		{MinGroupSize: 2, TargetGroupSize: 9, MaxGroupSize: 8},
	} {
		_, _, err := Balance(nil, o)
		assert.ErrorIs(t, err, ErrInvalidSizes)
	}
}

func TestParseRemainderPolicy(t *testing.T) {
	p, err := ParseRemainderPolicy("last")
	require.NoError(t, err)
	assert.Equal(t, RemainderLast, p)
	p, err = ParseRemainderPolicy("")
	require.NoError(t, err)
	assert.Equal(t, RemainderClamp, p)
	_, err = ParseRemainderPolicy("spread")
	assert.Error(t, err)
}
