// Package sample defines the value types shared by every stage of the
// co-assembly grouping engine: sample identifiers, similarity edges,
// important variables, per-sample metadata and the Group record itself.
//
// # Groups
//
// A Group is an immutable value record. Stages never modify a Group they
// receive; they build new ones (see Group.Clone) and return a fresh slice.
// Two invariants hold for every Group produced by the engine:
//
//   - a Group with Strategy Individual has exactly one sample
//   - a sample appears in exactly one Group of a result
//
// The JSON and YAML encodings of Group match the groups file consumed by
// downstream tooling:
//
//	{
//	  "samples": ["S1", "S2"],
//	  "strategy": "co-assembly",
//	  "basis": "k-mer similarity",
//	  "estimated_memory_gb": 16,
//	  "estimated_time_hours": 2,
//	  "estimated_reads": 20000000
//	}
package sample
