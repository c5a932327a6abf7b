// Package balance enforces group size limits by splitting oversized
// co-assembly groups into contiguous sub-groups close to a target size.
package balance

import (
	"errors"
	"fmt"

	"github.com/vk/cogroup/internal/diag"
	"github.com/vk/cogroup/internal/sample"
)

// Stage is the diagnostics tag of this package.
const Stage = "balance"

const basisSuffix = " (size-optimized)"

// ErrInvalidSizes is returned unless 1 <= min <= target <= max.
var ErrInvalidSizes = errors.New("balance: invalid group sizes")

// RemainderPolicy decides where the samples left over by an uneven split go.
type RemainderPolicy int

const (
	// RemainderClamp appends the remainder to the last sub-group unless that
	// pushes it over LastLimit, in which case the remainder is spread one
	// sample at a time over the trailing sub-groups.
	RemainderClamp RemainderPolicy = iota
	// RemainderLast always appends the remainder to the last sub-group. The
	// last sub-group is not checked against the maximum size.
	RemainderLast
)

func (p RemainderPolicy) String() string {
	switch p {
	case RemainderClamp:
		return "clamp"
	case RemainderLast:
		return "last"
	default:
		return fmt.Sprintf("RemainderPolicy(%d)", int(p))
	}
}

// ParseRemainderPolicy is the inverse of RemainderPolicy.String.
func ParseRemainderPolicy(s string) (RemainderPolicy, error) {
	switch s {
	case "clamp", "":
		return RemainderClamp, nil
	case "last":
		return RemainderLast, nil
	default:
		return 0, fmt.Errorf("unknown remainder policy %q (want \"clamp\" or \"last\")", s)
	}
}

// Options holds the size limits.
type Options struct {
	MinGroupSize    int
	TargetGroupSize int
	MaxGroupSize    int
	Remainder       RemainderPolicy
}

// Validate checks 1 <= min <= target <= max.
func (o Options) Validate() error {
	if o.MinGroupSize < 1 || o.MinGroupSize > o.TargetGroupSize || o.TargetGroupSize > o.MaxGroupSize {
		return fmt.Errorf("%w: need 1 <= min (%d) <= target (%d) <= max (%d)",
			ErrInvalidSizes, o.MinGroupSize, o.TargetGroupSize, o.MaxGroupSize)
	}
	return nil
}

// Balance splits every co-assembly group larger than the maximum size.
// Individual groups and groups within the limit pass through unchanged.
func Balance(groups []sample.Group, opts Options) ([]sample.Group, []diag.Event, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	ev := diag.For(Stage)

	out := make([]sample.Group, 0, len(groups))
	for i, g := range groups {
		if g.Strategy != sample.CoAssembly || g.Size() <= opts.MaxGroupSize {
			out = append(out, g.Clone())
			continue
		}

		sizes := SplitSizes(g.Size(), opts)
		ev.Info("Splitting large group.", "group", i, "samples", g.Size(), "sub_groups", len(sizes))

		start := 0
		for _, size := range sizes {
			sub := sample.Group{
				Samples:  append([]sample.ID(nil), g.Samples[start:start+size]...),
				Strategy: sample.CoAssembly,
				Basis:    g.Basis + basisSuffix,
			}
			if size < opts.MinGroupSize {
				ev.Warn("Sub-group is below the minimum group size.",
					"group", i, "size", size, "min_group_size", opts.MinGroupSize)
			}
			out = append(out, sub)
			start += size
		}
	}
	ev.Info("Optimized group sizes.", "groups_in", len(groups), "groups_out", len(out))
	return out, ev.List(), nil
}

// LastLimit is the largest last sub-group RemainderClamp accepts:
// min(max, 2*target-1).
func (o Options) LastLimit() int {
	return min(o.MaxGroupSize, 2*o.TargetGroupSize-1)
}

// SplitSizes returns the sub-group sizes for a group of n samples:
// ceil(n/target) sub-groups of floor(n/k) samples, with the remainder placed
// according to opts.Remainder.
func SplitSizes(n int, opts Options) []int {
	k := (n + opts.TargetGroupSize - 1) / opts.TargetGroupSize
	base := n / k
	rem := n - base*k

	sizes := make([]int, k)
	for i := range sizes {
		sizes[i] = base
	}
	if opts.Remainder == RemainderClamp && base+rem > opts.LastLimit() {
		// rem < k, so every trailing sub-group gets at most one extra and
		// base+1 <= ceil(n/k) <= target.
		for i := 0; i < rem; i++ {
			sizes[k-1-i]++
		}
		return sizes
	}
	sizes[k-1] += rem
	return sizes
}
