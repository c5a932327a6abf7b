package sample

import (
	"fmt"
	"sort"
)

// ID identifies a single sequenced specimen.
type ID string

// SimilarityEdge is one row of the pairwise similarity table. Edges are
// undirected. A NaN Similarity means the pair was not measured.
type SimilarityEdge struct {
	A          ID
	B          ID
	Similarity float64
}

// VariableKind is the declared kind of an important metadata variable.
type VariableKind int

const (
	Categorical VariableKind = iota
	Continuous
)

func (k VariableKind) String() string {
	switch k {
	case Categorical:
		return "categorical"
	case Continuous:
		return "continuous"
	default:
		return fmt.Sprintf("VariableKind(%d)", int(k))
	}
}

// Variable is a metadata column flagged as important by an upstream
// significance test.
type Variable struct {
	Name string
	Kind VariableKind
}

// Names returns the names of vars in their given order.
func Names(vars []Variable) []string {
	out := make([]string, 0, len(vars))
	for _, v := range vars {
		out = append(out, v.Name)
	}
	return out
}

// SortIDs sorts ids in place lexicographically and returns them.
func SortIDs(ids []ID) []ID {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Strings converts ids to plain strings.
func Strings(ids []ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
