package signature

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Orbits is the number of 2-to-5 node graphlet orbits.
const Orbits = 73

// Vector holds the orbit counts of one node.
type Vector [Orbits]float64

// Signature holds the orbit count vectors of every node of a network.
type Signature []Vector

// Nodes returns the number of nodes in the signature.
func (s Signature) Nodes() int { return len(s) }

// Column returns the counts of a single orbit across all nodes.
func (s Signature) Column(orbit int) []float64 {
	col := make([]float64, len(s))
	for i := range s {
		col[i] = s[i][orbit]
	}
	return col
}

// ParseError reports a malformed signature line.
type ParseError struct {
	Line   int
	Reason string
	cause  error
}

func (e *ParseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("signature: line %d: %s: %v", e.Line, e.Reason, e.cause)
	}
	return fmt.Sprintf("signature: line %d: %s", e.Line, e.Reason)
}

func (e *ParseError) Unwrap() error { return e.cause }

// Read parses a signature from r. Blank lines are skipped.
func Read(r io.Reader) (Signature, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	var sig Signature
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < Orbits {
			return nil, &ParseError{
				Line:   line,
				Reason: fmt.Sprintf("expected at least %d fields, got %d", Orbits, len(fields)),
			}
		}

		var v Vector
		for k, f := range fields[len(fields)-Orbits:] {
			x, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, &ParseError{Line: line, Reason: fmt.Sprintf("orbit %d", k), cause: err}
			}
			v[k] = x
		}
		sig = append(sig, v)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("signature: read: %w", err)
	}
	return sig, nil
}

// FromRows builds a signature from raw per-node rows. Every row must hold
// exactly Orbits values.
func FromRows(rows [][]float64) (Signature, error) {
	sig := make(Signature, len(rows))
	for i, row := range rows {
		if len(row) != Orbits {
			return nil, &ParseError{
				Line:   i + 1,
				Reason: fmt.Sprintf("expected %d values, got %d", Orbits, len(row)),
			}
		}
		copy(sig[i][:], row)
	}
	return sig, nil
}
