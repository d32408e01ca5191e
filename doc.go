// Package spass mines statistically significant, non-redundant higher-order
// feature interactions (itemset patterns) from a binary dataset, optionally
// stratified by group labels.
//
// 🚀 What is spass?
//
//	A library that mines which combinations of binary columns occur together
//	far more often than chance would predict, under a null model that is
//	updated as patterns are found — so later tests reject only patterns that
//	carry information beyond what earlier, accepted patterns already explain.
//
// ✨ Why choose spass?
//
//   - Principled  — the null model is a maximum-entropy distribution fit to
//     the patterns accepted so far, not a fixed independence assumption.
//   - Controlled  — both family-wise (FWER) and false-discovery-rate (FDR,
//     via sequential LORD) error control are first-class adjustment modes.
//   - Concurrent  — candidate scoring fans out across a fixed worker pool;
//     model mutation happens only between batches, so there is no lock on
//     the hot path.
//
// Under the hood, the work is split across single-purpose packages:
//
//	bitset/        — word-packed row-set representation and set algebra
//	binomial/      — exact and Chernoff-bounded upper-tail probabilities
//	maxent/        — the factorized maximum-entropy null model
//	lattice/       — the prefix-ordered itemset search space
//	significance/  — FWER and sequential-FDR (LORD) admission control
//	discover/      — the concurrent breadth-first lattice search
//	dataset/       — the abstract "rows as sets of columns" view
//	internal/obs/  — structured logging and metrics, wired but never
//	                 load-bearing for the mining result itself
//
// Fit (this package) is the single entry point: it wires a dataset.View and
// an Adjustment strategy through lattice, discover, maxent and significance
// and returns one fitted *maxent.Model per group (or a length-1 slice in
// single-group mode).
//
//	go get github.com/sdall/spass
package spass
