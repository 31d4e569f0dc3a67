// Package distance provides the alignment-free network distances.
//
// All functions are stateless and safe for concurrent use. Per-entity
// derivations (correlation matrices, graphlet vectors, orbit distributions)
// are computed once and then compared pairwise.
//
// # Supported Metrics
//
//   - MetricGCD11, MetricGCD15, MetricGCD58, MetricGCD73: graphlet correlation distance
//   - MetricRGF: relative graphlet frequency distance
//   - MetricGDDA: graphlet degree distribution agreement (arithmetic and geometric)
//   - MetricDegree: degree distribution and average degree distances
//   - MetricClustering: average clustering coefficient distance
//   - MetricDiameter: diameter distance
//   - MetricSpectral: Laplacian spectrum distance
//
// # Usage
//
//	m, err := distance.ParseMetric("gcd11")
//	gcm1, _ := distance.GraphletCorrelation(sig1, m.OrbitSet())
//	gcm2, _ := distance.GraphletCorrelation(sig2, m.OrbitSet())
//	d, _ := distance.GCD(gcm1, gcm2)
package distance
