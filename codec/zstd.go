package codec

import (
	"sync"

	"github.com/klauspost/compress/zstd"
)

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// Zstd compresses blocks with Zstandard.
type Zstd struct{}

// Compress compresses data into a framed block.
func (Zstd) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return frame(data, nil), nil
	}
	enc := getZstdEncoder()
	defer zstdEncoderPool.Put(enc)

	return frame(data, enc.EncodeAll(data, nil)), nil
}

// Decompress decodes a framed block.
func (Zstd) Decompress(block []byte) ([]byte, error) {
	payload, size, raw, err := unframe(block)
	if err != nil {
		return nil, err
	}
	if raw {
		return append([]byte(nil), payload...), nil
	}

	dec := getZstdDecoder()
	defer zstdDecoderPool.Put(dec)

	decoded, err := dec.DecodeAll(payload, make([]byte, 0, size))
	if err != nil {
		return nil, err
	}
	if uint32(len(decoded)) != size {
		return nil, ErrCorrupt
	}
	return decoded, nil
}

// Name returns "zstd".
func (Zstd) Name() string { return "zstd" }
