package codec

import "github.com/pierrec/lz4/v4"

// LZ4 compresses blocks with LZ4 block compression.
type LZ4 struct{}

// Compress compresses data into a framed block.
func (LZ4) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return frame(data, nil), nil
	}
	compressed := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, compressed, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// Incompressible
		return frame(data, nil), nil
	}
	return frame(data, compressed[:n]), nil
}

// Decompress decodes a framed block.
func (LZ4) Decompress(block []byte) ([]byte, error) {
	payload, size, raw, err := unframe(block)
	if err != nil {
		return nil, err
	}
	if raw {
		return append([]byte(nil), payload...), nil
	}

	out := make([]byte, size)
	n, err := lz4.UncompressBlock(payload, out)
	if err != nil {
		return nil, err
	}
	if uint32(n) != size {
		return nil, ErrCorrupt
	}
	return out, nil
}

// Name returns "lz4".
func (LZ4) Name() string { return "lz4" }
