// Package similarity is the first stage of the grouping engine. It turns the
// pairwise k-mer similarity table into an undirected graph and discovers
// size-bounded connected components, each of which becomes a candidate
// assembly group.
//
// # Traversal order
//
// Component discovery is a breadth-first search whose growth stops once a
// component reaches the configured maximum size. Because growth is capped,
// the result depends on the order in which samples are visited. This package
// fixes that order:
//
//   - seeds are taken in lexicographic order of sample ID
//   - neighbours of a sample are enqueued in lexicographic order
//
// A neighbour that could not join a capped component stays unvisited and
// becomes a seed (or member) of a later component in the same order. The
// output is therefore a pure function of the edge set.
package similarity
