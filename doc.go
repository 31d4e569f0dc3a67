// Package netcmp computes pairwise alignment-free distances between networks.
//
// Each network is an entity: a graphlet signature file (<name>.ndump2) and,
// for the property and spectral metrics, a LEDA graph file (<name>.gw) next
// to it. A Comparer discovers the entities in a blobstore.Store, derives the
// per-entity data on a worker pool, computes every unordered pair on the same
// pool and writes one tab-delimited distance matrix per output.
//
// # Quick Start
//
//	ctx := context.Background()
//	store := blobstore.NewLocalStore("./networks")
//
//	cmp, _ := netcmp.New(store, netcmp.WithWorkers(8))
//	report, err := cmp.Run(ctx, distance.MetricGCD73)
//	// ./networks/gcd73.txt
//
// # Metrics
//
//	gcd11, gcd15, gcd58, gcd73   graphlet correlation distance
//	rgf                          relative graphlet frequency distance
//	gdda                         GDD agreement (gdda.txt and gddg.txt)
//	degree                       degree distribution and average degree
//	clustering                   average clustering coefficient
//	diameter                     diameter of the largest component
//	spectral                     Laplacian spectrum distance
//
// # Failure Model
//
// Every item of every stage reports its own outcome. Failed items are
// retried up to WithRetries times; remaining failures abort the run with an
// error wrapping *engine.BatchError, and no output is written. Cancelling the
// context stops the workers cooperatively.
//
// # Remote Stores
//
//	s3Store, _ := s3.New(ctx, "my-bucket", s3.WithPrefix("networks/"))
//	cmp, _ := netcmp.New(s3Store, netcmp.WithWorkers(16))
package netcmp
