package sample

import (
	"fmt"
	"strings"
)

// Strategy says how a group is assembled.
type Strategy int

const (
	Individual Strategy = iota
	CoAssembly
)

const (
	individualText = "individual"
	coAssemblyText = "co-assembly"
)

func (s Strategy) String() string {
	switch s {
	case Individual:
		return individualText
	case CoAssembly:
		return coAssemblyText
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy is the inverse of Strategy.String.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case individualText:
		return Individual, nil
	case coAssemblyText, "coassembly", "co_assembly":
		return CoAssembly, nil
	default:
		return 0, fmt.Errorf("unknown strategy %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler, used by both the JSON and
// YAML encoders.
func (s Strategy) MarshalText() ([]byte, error) {
	switch s {
	case Individual, CoAssembly:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("cannot marshal %s", s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strategy) UnmarshalText(b []byte) error {
	parsed, err := ParseStrategy(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Group is a set of samples assembled together (or a single sample
// assembled alone), with the reason it was formed and its resource
// estimate. Estimates are zero until the estimator stage has run.
type Group struct {
	Samples            []ID     `json:"samples" yaml:"samples"`
	Strategy           Strategy `json:"strategy" yaml:"strategy"`
	Basis              string   `json:"basis" yaml:"basis"`
	EstimatedMemoryGB  int      `json:"estimated_memory_gb" yaml:"estimated_memory_gb"`
	EstimatedTimeHours int      `json:"estimated_time_hours" yaml:"estimated_time_hours"`
	EstimatedReads     int64    `json:"estimated_reads" yaml:"estimated_reads"`
}

// Single returns an Individual group for id.
func Single(id ID, basis string) Group {
	return Group{Samples: []ID{id}, Strategy: Individual, Basis: basis}
}

// Clone returns a deep copy of g so the caller can change it freely.
func (g Group) Clone() Group {
	out := g
	out.Samples = append([]ID(nil), g.Samples...)
	return out
}

// Size is the number of samples in g.
func (g Group) Size() int { return len(g.Samples) }

// Validate checks the structural invariants of a single group.
func (g Group) Validate() error {
	if len(g.Samples) == 0 {
		return fmt.Errorf("group has no samples")
	}
	if g.Strategy == Individual && len(g.Samples) != 1 {
		return fmt.Errorf("individual group has %d samples", len(g.Samples))
	}
	return nil
}

// CheckPartition verifies that groups cover want exactly once each. It
// returns a descriptive error naming the first missing, duplicated or
// unexpected sample.
func CheckPartition(want []ID, groups []Group) error {
	expected := make(map[ID]struct{}, len(want))
	for _, id := range want {
		expected[id] = struct{}{}
	}
	seen := make(map[ID]struct{}, len(want))
	for i, g := range groups {
		if err := g.Validate(); err != nil {
			return fmt.Errorf("group %d: %w", i, err)
		}
		for _, id := range g.Samples {
			if _, dup := seen[id]; dup {
				return fmt.Errorf("sample %q appears in more than one group", id)
			}
			if _, ok := expected[id]; !ok {
				return fmt.Errorf("sample %q is not part of the input", id)
			}
			seen[id] = struct{}{}
		}
	}
	for _, id := range want {
		if _, ok := seen[id]; !ok {
			return fmt.Errorf("sample %q is missing from the output", id)
		}
	}
	return nil
}
