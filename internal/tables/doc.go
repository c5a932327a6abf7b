// Package tables reads the upstream analysis tables the grouping engine
// consumes.
//
// Three CSV inputs are understood:
//
//   - pairwise_similarities.csv with columns Sample1, Sample2 and Similarity.
//     It is mandatory: a missing file or a file without data rows is fatal.
//   - permanova_results.csv with columns Variable, p_value and R_squared.
//     Variables that pass the significance filter become the important
//     variables of the refine stage. The file is optional.
//   - a metadata table with a Sample column plus one column per variable.
//     It is optional as well.
//
// Columns are located by header name, so extra columns (for example a
// leading index column) are ignored. Empty cells and the tokens NA, NaN,
// nan, null and None are treated as missing values.
//
// Optional inputs that are absent do not produce errors. Instead the loaders
// return diag events that the caller replays into its logger.
package tables
