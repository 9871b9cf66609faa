// Package snapshot encodes and decodes bulk exports: a map from store key
// to that key's raw value. A nil value marks a known key with nothing
// stored. JSON output is a flat object of string values, readable by any
// earlier folio export; CBOR with zstd or LZ4 compression is available
// for compact archives.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/mesh-intelligence/folio/internal/atomicfile"
	"github.com/mesh-intelligence/folio/pkg/types"
)

// Snapshot maps store keys to raw values.
type Snapshot map[string]*string

// Keys returns the snapshot keys, sorted.
func (s Snapshot) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Format selects the serialization.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatCBOR Format = "cbor"
)

// Compression selects the outer compression applied after encoding.
type Compression string

// Supported compressions. zstd gives the better ratio on JSON text; LZ4
// is faster to write and read.
const (
	CompressionNone Compression = "none"
	CompressionZstd Compression = "zstd"
	CompressionLZ4  Compression = "lz4"
)

// Options controls Encode.
type Options struct {
	Format      Format
	Compression Compression
}

// Frame magic numbers, used by Decode to detect compression.
var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

var (
	encMode     cbor.EncMode
	decMode     cbor.DecMode
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	// Core deterministic encoding: the same snapshot always yields the
	// same bytes.
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("snapshot: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("snapshot: CBOR decoder initialization failed: " + err.Error())
	}
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("snapshot: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("snapshot: zstd decoder initialization failed: " + err.Error())
	}
}

// ParseFormat validates a format name. An empty name selects JSON.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatCBOR:
		return FormatCBOR, nil
	default:
		return "", fmt.Errorf("unknown snapshot format %q (valid: json, cbor)", name)
	}
}

// ParseCompression validates a compression name. An empty name selects
// no compression.
func ParseCompression(name string) (Compression, error) {
	switch Compression(name) {
	case "", CompressionNone:
		return CompressionNone, nil
	case CompressionZstd:
		return CompressionZstd, nil
	case CompressionLZ4:
		return CompressionLZ4, nil
	default:
		return "", fmt.Errorf("unknown compression %q (valid: none, zstd, lz4)", name)
	}
}

// Encode serializes s.
func Encode(s Snapshot, opts Options) ([]byte, error) {
	if s == nil {
		s = Snapshot{}
	}
	var (
		data []byte
		err  error
	)
	switch opts.Format {
	case "", FormatJSON:
		data, err = json.Marshal(s)
	case FormatCBOR:
		data, err = encMode.Marshal(s)
	default:
		return nil, fmt.Errorf("unknown snapshot format %q", opts.Format)
	}
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	switch opts.Compression {
	case "", CompressionNone:
		return data, nil
	case CompressionZstd:
		return zstdEncoder.EncodeAll(data, nil), nil
	case CompressionLZ4:
		return compressLZ4(data)
	default:
		return nil, fmt.Errorf("unknown compression %q", opts.Compression)
	}
}

// compressLZ4 wraps data in a single LZ4 frame. The frame format carries
// its own magic and content checksum, unlike raw LZ4 blocks.
func compressLZ4(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses data produced by Encode or a hand-written JSON export.
// Compression and format are detected from the content. Any parse failure
// wraps types.ErrSnapshotCorrupt.
func Decode(data []byte) (Snapshot, error) {
	if bytes.HasPrefix(data, zstdMagic) {
		raw, err := zstdDecoder.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: zstd: %v", types.ErrSnapshotCorrupt, err)
		}
		data = raw
	} else if bytes.HasPrefix(data, lz4Magic) {
		raw, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
		if err != nil {
			return nil, fmt.Errorf("%w: lz4: %v", types.ErrSnapshotCorrupt, err)
		}
		data = raw
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty input", types.ErrSnapshotCorrupt)
	}
	if trimmed[0] == '{' {
		return decodeJSON(trimmed)
	}
	var s Snapshot
	if err := decMode.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: cbor: %v", types.ErrSnapshotCorrupt, err)
	}
	if s == nil {
		return nil, fmt.Errorf("%w: not a map", types.ErrSnapshotCorrupt)
	}
	return s, nil
}

// decodeJSON accepts string or null values. A value written as nested JSON
// (an array or object) is kept as its JSON text.
func decodeJSON(data []byte) (Snapshot, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: json: %v", types.ErrSnapshotCorrupt, err)
	}
	s := make(Snapshot, len(fields))
	for k, raw := range fields {
		raw = bytes.TrimSpace(raw)
		switch {
		case bytes.Equal(raw, []byte("null")):
			s[k] = nil
		case len(raw) > 0 && raw[0] == '"':
			var v string
			if err := json.Unmarshal(raw, &v); err != nil {
				return nil, fmt.Errorf("%w: key %s: %v", types.ErrSnapshotCorrupt, k, err)
			}
			s[k] = &v
		default:
			v := string(raw)
			s[k] = &v
		}
	}
	return s, nil
}

// WriteFile encodes s and atomically writes it to path.
func WriteFile(path string, s Snapshot, opts Options) error {
	data, err := Encode(s, opts)
	if err != nil {
		return err
	}
	return atomicfile.WriteFile(path, data, 0o644)
}

// ReadFile reads and decodes the snapshot at path.
func ReadFile(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	return Decode(data)
}
