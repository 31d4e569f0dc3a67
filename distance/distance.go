package distance

import "fmt"

// Metric represents a network distance selectable for a run.
type Metric int

const (
	MetricGCD11 Metric = iota
	MetricGCD15
	MetricGCD58
	MetricGCD73
	MetricRGF
	MetricGDDA
	MetricDegree
	MetricClustering
	MetricDiameter
	MetricSpectral
)

var metricNames = map[Metric]string{
	MetricGCD11:      "gcd11",
	MetricGCD15:      "gcd15",
	MetricGCD58:      "gcd58",
	MetricGCD73:      "gcd73",
	MetricRGF:        "rgf",
	MetricGDDA:       "gdda",
	MetricDegree:     "degree",
	MetricClustering: "clustering",
	MetricDiameter:   "diameter",
	MetricSpectral:   "spectral",
}

var metricDescriptions = map[Metric]string{
	MetricRGF:        "RGF distance",
	MetricGDDA:       "GDD Agreement (both arithmetic and geometric)",
	MetricDegree:     "Degree distribution and average degree distances",
	MetricClustering: "Clustering coefficient",
	MetricDiameter:   "Diameter",
	MetricGCD11:      "Graphlet correlation distance with non-redundant 2-to-4 node graphlet orbits",
	MetricGCD15:      "Graphlet correlation distance with all 2-to-4 node graphlet orbits",
	MetricGCD58:      "Graphlet correlation distance with non-redundant 2-to-5 node graphlet orbits",
	MetricGCD73:      "Graphlet correlation distance with all 2-to-5 node graphlet orbits",
	MetricSpectral:   "Spectral distance using the eigenvalues of the Laplacian of the network",
}

func (m Metric) String() string {
	if name, ok := metricNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", int(m))
}

// Description returns a one-line human readable description of the metric.
func (m Metric) Description() string {
	return metricDescriptions[m]
}

// IsGCD reports whether m is one of the graphlet correlation distances.
func (m Metric) IsGCD() bool {
	return m >= MetricGCD11 && m <= MetricGCD73
}

// NeedsNetwork reports whether the metric is computed from the network file
// rather than from the graphlet signature.
func (m Metric) NeedsNetwork() bool {
	switch m {
	case MetricDegree, MetricClustering, MetricDiameter, MetricSpectral:
		return true
	default:
		return false
	}
}

// OrbitSet returns the orbit selection of a GCD metric.
// It returns nil for every other metric.
func (m Metric) OrbitSet() OrbitSet {
	switch m {
	case MetricGCD11:
		return Orbits11
	case MetricGCD15:
		return Orbits15
	case MetricGCD58:
		return Orbits58
	case MetricGCD73:
		return Orbits73
	default:
		return nil
	}
}

// Metrics returns every supported metric in the order they are presented to users.
func Metrics() []Metric {
	return []Metric{
		MetricRGF,
		MetricGDDA,
		MetricDegree,
		MetricClustering,
		MetricDiameter,
		MetricGCD11,
		MetricGCD15,
		MetricGCD58,
		MetricGCD73,
		MetricSpectral,
	}
}

// ParseMetric returns the metric with the given selector name. Names are
// matched exactly, case and surrounding whitespace included.
func ParseMetric(name string) (Metric, error) {
	for m, n := range metricNames {
		if n == name {
			return m, nil
		}
	}
	return 0, &ErrUnknownMetric{Name: name}
}
