// compress.go decompresses SWORD text blocks. ZIP here means zlib/DEFLATE,
// the SWORD conf spelling, not a zip archive.
package modfile

import (
	"bytes"
	"compress/bzip2"
	"compress/zlib"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ulikunitz/xz"
	"github.com/ulikunitz/xz/lzma"
)

// ErrUnsupportedCompression is returned when a module declares a
// compression algorithm this reader cannot decode. Distinct from data
// corruption: this is a configuration error and fails fast.
var ErrUnsupportedCompression = errors.New("unsupported compression algorithm")

// Compression identifies the block compression algorithm, as declared in
// the module's conf CompressType.
type Compression int

// Supported compression algorithms. LZSS is recognized but not
// implemented; decoding an LZSS module fails with
// ErrUnsupportedCompression.
const (
	CompressZip Compression = iota
	CompressBzip2
	CompressXZ
	CompressLZSS
)

// ParseCompression maps a conf CompressType value to its Compression.
// The empty string defaults to ZIP.
func ParseCompression(s string) (Compression, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ZIP", "":
		return CompressZip, nil
	case "BZIP2":
		return CompressBzip2, nil
	case "XZ", "LZMA":
		return CompressXZ, nil
	case "LZSS":
		return CompressLZSS, nil
	default:
		return 0, fmt.Errorf("compress type %q is not supported", s)
	}
}

// String returns the conf CompressType spelling of the algorithm.
func (c Compression) String() string {
	switch c {
	case CompressZip:
		return "ZIP"
	case CompressBzip2:
		return "BZIP2"
	case CompressXZ:
		return "XZ"
	case CompressLZSS:
		return "LZSS"
	default:
		return fmt.Sprintf("Compression(%d)", int(c))
	}
}

// decompress inflates one compressed block. Corrupt data surfaces as an
// ordinary error; the caller downgrades that to an empty block. LZSS
// always fails with ErrUnsupportedCompression.
func (c Compression) decompress(data []byte) ([]byte, error) {
	switch c {
	case CompressZip:
		zr, err := zlib.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("zlib init failed: %w", err)
		}
		defer zr.Close()
		out, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("zlib decompression failed: %w", err)
		}
		return out, nil

	case CompressBzip2:
		out, err := io.ReadAll(bzip2.NewReader(bytes.NewReader(data)))
		if err != nil {
			return nil, fmt.Errorf("bzip2 decompression failed: %w", err)
		}
		return out, nil

	case CompressXZ:
		// Modules ship either full xz containers or headerless
		// LZMA-alone streams; try the container format first.
		if xr, err := xz.NewReader(bytes.NewReader(data)); err == nil {
			if out, err := io.ReadAll(xr); err == nil {
				return out, nil
			}
		}
		lr, err := lzma.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("lzma init failed: %w", err)
		}
		out, err := io.ReadAll(lr)
		if err != nil {
			return nil, fmt.Errorf("lzma decompression failed: %w", err)
		}
		return out, nil

	case CompressLZSS:
		return nil, fmt.Errorf("%w: LZSS", ErrUnsupportedCompression)

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCompression, c)
	}
}
