package testutil

import (
	"context"
	"math/rand"
	"strconv"
	"strings"
	"sync"

	"github.com/hupe1980/netcmp/blobstore"
	"github.com/hupe1980/netcmp/signature"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Signature returns a signature of nodes vectors with integer counts in [0, maxCount).
// Locks only once per call.
func (r *RNG) Signature(nodes, maxCount int) signature.Signature {
	r.mu.Lock()
	defer r.mu.Unlock()

	sig := make(signature.Signature, nodes)
	for i := range sig {
		for orbit := range sig[i] {
			sig[i][orbit] = float64(r.rand.Intn(maxCount))
		}
	}
	return sig
}

// Shuffle returns a copy of sig with its node rows permuted.
func (r *RNG) Shuffle(sig signature.Signature) signature.Signature {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(signature.Signature, len(sig))
	for i, j := range r.rand.Perm(len(sig)) {
		out[i] = sig[j]
	}
	return out
}

// Edges returns the edges of a G(n, p) random graph with 1-based endpoints.
func (r *RNG) Edges(n int, p float64) [][2]int {
	r.mu.Lock()
	defer r.mu.Unlock()

	var edges [][2]int
	for u := 1; u <= n; u++ {
		for v := u + 1; v <= n; v++ {
			if r.rand.Float64() < p {
				edges = append(edges, [2]int{u, v})
			}
		}
	}
	return edges
}

// UniformSignature returns a signature whose every count equals value.
func UniformSignature(nodes int, value float64) signature.Signature {
	sig := make(signature.Signature, nodes)
	for i := range sig {
		for orbit := range sig[i] {
			sig[i][orbit] = value
		}
	}
	return sig
}

// FormatSignature renders sig as .ndump2 text: a node name followed by the
// 73 orbit counts per line.
func FormatSignature(sig signature.Signature) string {
	var b strings.Builder
	for i, v := range sig {
		b.WriteString("node")
		b.WriteString(strconv.Itoa(i))
		for _, c := range v {
			b.WriteByte(' ')
			b.WriteString(strconv.FormatFloat(c, 'g', -1, 64))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// FormatLEDA renders an undirected graph with n nodes as LEDA .gw text.
// Edge endpoints are 1-based.
func FormatLEDA(n int, edges [][2]int) string {
	var b strings.Builder
	b.WriteString("LEDA.GRAPH\nstring\nshort\n-2\n")
	b.WriteString(strconv.Itoa(n))
	b.WriteByte('\n')
	for i := 0; i < n; i++ {
		b.WriteString("|{v")
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString("}|\n")
	}
	b.WriteString(strconv.Itoa(len(edges)))
	b.WriteByte('\n')
	for _, e := range edges {
		b.WriteString(strconv.Itoa(e[0]))
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(e[1]))
		b.WriteString(" 0 |{}|\n")
	}
	return b.String()
}

// Entity is one generated input pair.
type Entity struct {
	Name      string
	Signature signature.Signature
	Nodes     int
	Edges     [][2]int
}

// PutEntities writes <name>.ndump2 for every entity, plus <name>.gw when the
// entity has nodes.
func PutEntities(ctx context.Context, store blobstore.Store, entities []Entity) error {
	for _, e := range entities {
		if err := store.Put(ctx, e.Name+".ndump2", []byte(FormatSignature(e.Signature))); err != nil {
			return err
		}
		if e.Nodes > 0 {
			if err := store.Put(ctx, e.Name+".gw", []byte(FormatLEDA(e.Nodes, e.Edges))); err != nil {
				return err
			}
		}
	}
	return nil
}
