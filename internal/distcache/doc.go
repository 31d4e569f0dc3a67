// Package distcache persists per-entity graphlet degree distributions for the
// duration of one comparison run.
//
// Each entity's 73 orbit distributions are encoded as text, one line per
// orbit holding comma-separated degree_frequency pairs, compressed with a
// codec.Codec and written to a blobstore.Store under a run-scoped prefix.
// Decoded distributions are kept in a bounded LRU so the pairwise pass reads
// each blob at most a few times. Purge removes everything the run wrote.
package distcache
