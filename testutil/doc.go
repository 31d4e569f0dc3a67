// Package testutil provides testing utilities for netcmp.
//
// This package is intended for use in tests and benchmarks only.
// It provides seeded generators for graphlet signatures and networks and
// helpers that render them in the on-disk input formats.
//
// # Signatures
//
//	rng := testutil.NewRNG(seed)
//	sig := rng.Signature(50, 10)           // 50 nodes, counts in [0, 10)
//	same := testutil.UniformSignature(5, 2) // every count is 2
//	text := testutil.FormatSignature(sig)  // .ndump2 content
//
// # Networks
//
//	edges := rng.Edges(20, 0.2)               // G(n, p), 1-based endpoints
//	text := testutil.FormatLEDA(20, edges)    // .gw content
package testutil
