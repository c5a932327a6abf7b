// Package refine is the consistency stage of the grouping engine. It checks
// every co-assembly candidate against the important metadata variables and
// shatters any group whose samples disagree on one of them into individual
// assemblies.
//
// The decision is binary on purpose: a group either stays whole or is split
// into singletons. No finer clustering is attempted.
package refine
