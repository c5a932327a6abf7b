// Package grouping composes the engine stages into a single pipeline:
//
//	similarity table ──► similarity.Build ──► refine.Refine ──► balance.Balance ──► estimate.Estimate
//
// Every stage consumes and returns []sample.Group plus diagnostics, so the
// pipeline is a straight fold over the stages. After the last stage the
// partition invariant (every input sample in exactly one group) is checked;
// a violation is a programming error and is returned as ErrPartitionViolated.
//
// The pipeline does not log. Diagnostics from every stage are returned in
// Result.Events for the caller to report.
package grouping
