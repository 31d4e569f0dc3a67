// Package codec provides block compression for transient run artifacts.
//
// Compressed blocks are framed as [UncompressedSize uint32][CompressedSize
// uint32][Data...] in little endian. A CompressedSize of 0 marks a block that
// is stored uncompressed because compression did not help.
package codec

import (
	"encoding/binary"
	"errors"
	"sort"
)

// Codec compresses and decompresses byte blocks.
// Implementations must be safe for concurrent use.
type Codec interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
	Name() string
}

// Default is the codec used when none is configured.
var Default Codec = Zstd{}

var (
	// ErrCorrupt is returned for blocks that cannot be decoded.
	ErrCorrupt = errors.New("codec: corrupt block")
)

var builtin = map[string]Codec{
	None{}.Name(): None{},
	Zstd{}.Name(): Zstd{},
	LZ4{}.Name():  LZ4{},
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	c, ok := builtin[name]
	return c, ok
}

// Names returns the names of the built-in codecs, sorted.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

const blockHeaderSize = 8

// frame wraps payload with the block header. A nil payload stores data raw.
func frame(data, compressed []byte) []byte {
	// If compression doesn't help (ratio > 0.9), store uncompressed
	if compressed == nil || float64(len(compressed)) > float64(len(data))*0.9 {
		out := make([]byte, blockHeaderSize+len(data))
		binary.LittleEndian.PutUint32(out[0:], uint32(len(data)))
		binary.LittleEndian.PutUint32(out[4:], 0)
		copy(out[blockHeaderSize:], data)
		return out
	}
	out := make([]byte, blockHeaderSize+len(compressed))
	binary.LittleEndian.PutUint32(out[0:], uint32(len(data)))
	binary.LittleEndian.PutUint32(out[4:], uint32(len(compressed)))
	copy(out[blockHeaderSize:], compressed)
	return out
}

// unframe splits a block into its payload. raw reports an uncompressed payload.
func unframe(block []byte) (payload []byte, size uint32, raw bool, err error) {
	if len(block) < blockHeaderSize {
		return nil, 0, false, ErrCorrupt
	}
	size = binary.LittleEndian.Uint32(block[0:])
	compressed := binary.LittleEndian.Uint32(block[4:])
	if compressed == 0 {
		if uint32(len(block)-blockHeaderSize) < size {
			return nil, 0, false, ErrCorrupt
		}
		return block[blockHeaderSize : blockHeaderSize+int(size)], size, true, nil
	}
	if uint32(len(block)-blockHeaderSize) < compressed {
		return nil, 0, false, ErrCorrupt
	}
	return block[blockHeaderSize : blockHeaderSize+int(compressed)], size, false, nil
}

// None stores blocks as they are.
type None struct{}

// Compress returns a copy of data.
func (None) Compress(data []byte) ([]byte, error) {
	return append([]byte(nil), data...), nil
}

// Decompress returns a copy of data.
func (None) Decompress(data []byte) ([]byte, error) {
	return append([]byte(nil), data...), nil
}

// Name returns "none".
func (None) Name() string { return "none" }
