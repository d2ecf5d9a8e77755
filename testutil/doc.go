// Package testutil provides testing utilities for crewpram.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating sorted sequences and a reference
// search to compare results against.
//
// # Sequence Generation
//
//	rng := testutil.NewRNG(seed)
//	seq := rng.SortedDistinct(500, 7) // strictly increasing, random gaps in [1, 7]
//	seq := testutil.Ascending(500)    // 1..500
//
// # Ground Truth
//
//	want := testutil.ReferenceSearch(seq, target) // 1-based, 0 when absent
package testutil
