package distcache

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/hupe1980/netcmp/distance"
	"github.com/hupe1980/netcmp/signature"
)

// ErrMalformed is returned when a cached blob cannot be parsed.
var ErrMalformed = errors.New("distcache: malformed distribution")

// Marshal encodes d as 73 newline-terminated lines. Pairs within a line are
// ordered by ascending degree.
func Marshal(d *distance.Distributions) []byte {
	var buf bytes.Buffer
	for orbit := 0; orbit < signature.Orbits; orbit++ {
		dist := d[orbit]
		keys := make([]float64, 0, len(dist))
		for deg := range dist {
			keys = append(keys, deg)
		}
		slices.Sort(keys)

		for i, deg := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(strconv.FormatFloat(deg, 'g', -1, 64))
			buf.WriteByte('_')
			buf.WriteString(strconv.FormatFloat(dist[deg], 'g', -1, 64))
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// Unmarshal parses data produced by Marshal.
func Unmarshal(data []byte) (*distance.Distributions, error) {
	text := strings.TrimSuffix(string(data), "\n")
	lines := strings.Split(text, "\n")
	if len(lines) != signature.Orbits {
		return nil, fmt.Errorf("%w: %d lines, want %d", ErrMalformed, len(lines), signature.Orbits)
	}

	var out distance.Distributions
	for orbit, line := range lines {
		dist := make(distance.Distribution)
		line = strings.TrimSpace(line)
		if line != "" {
			for _, pair := range strings.Split(line, ",") {
				degText, freqText, ok := strings.Cut(pair, "_")
				if !ok {
					return nil, fmt.Errorf("%w: orbit %d: pair %q", ErrMalformed, orbit, pair)
				}
				deg, err := strconv.ParseFloat(degText, 64)
				if err != nil {
					return nil, fmt.Errorf("%w: orbit %d: degree %q", ErrMalformed, orbit, degText)
				}
				freq, err := strconv.ParseFloat(freqText, 64)
				if err != nil {
					return nil, fmt.Errorf("%w: orbit %d: frequency %q", ErrMalformed, orbit, freqText)
				}
				dist[deg] = freq
			}
		}
		out[orbit] = dist
	}
	return &out, nil
}
