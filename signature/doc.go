// Package signature reads graphlet degree signatures.
//
// A signature file (conventionally "*.ndump2") holds one node per line. Each
// line carries whitespace separated fields; the last 73 are the node's
// graphlet orbit counts and anything before them (typically the node name)
// is ignored.
package signature
