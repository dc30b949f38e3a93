// reader.go resolves linear verse indices to raw text bytes.
//
// Every lookup is bounds-checked against the file sizes recorded at open
// time. An index that points outside the files is not an error: partial
// modules legitimately omit verses, so the lookup resolves to no text.
package modfile

import (
	"encoding/binary"
	"errors"
	"log/slog"

	"github.com/FocuswithJustin/swordtext/core/cache"
)

// blockLocationSize is the fixed size of one block-location record:
// file offset[4] + compressed size[4] + uncompressed size[4].
const blockLocationSize = 12

// defaultBlockCacheSize bounds the per-testament decompressed-block LRU.
// Verse-granularity modules produce many small blocks; book-granularity
// modules rarely need more than one or two.
const defaultBlockCacheSize = 8

// Reader decodes verse text from one testament's data files. The layout
// variant and compression algorithm are fixed at construction.
type Reader struct {
	variant     Variant
	compression Compression
	testament   *Testament
	blocks      cache.Cache[uint32, []byte]
}

// NewReader creates a reader over an open testament. The testament's
// lifetime is managed by the caller.
func NewReader(variant Variant, compression Compression, t *Testament) *Reader {
	r := &Reader{
		variant:     variant,
		compression: compression,
		testament:   t,
	}
	if variant.Compressed() {
		r.blocks = cache.NewLRU[uint32, []byte](defaultBlockCacheSize)
	}
	return r
}

// TextAt returns the raw text bytes for a linear verse index. A nil result
// with a nil error means the module has no text for the index. The only
// error a lookup can produce is ErrUnsupportedCompression; I/O failures on
// files that were healthy at open time are treated as absent data.
func (r *Reader) TextAt(index int) ([]byte, error) {
	recSize := r.variant.recordSize()
	if recSize*int64(index+1) > r.testament.indexSize {
		slog.Debug("verse index beyond index file", "index", index)
		return nil, nil
	}

	raw := make([]byte, recSize)
	if err := readAt(r.testament.index, recSize*int64(index), raw); err != nil {
		slog.Debug("verse index read failed", "index", index, "error", err)
		return nil, nil
	}
	rec := r.variant.decodeRecord(raw)

	if r.variant.Compressed() {
		return r.compressedText(index, rec)
	}
	return r.rawText(index, rec), nil
}

// rawText reads the verse bytes straight out of the text file.
func (r *Reader) rawText(index int, rec verseRecord) []byte {
	if int64(rec.Start)+int64(rec.Length) > r.testament.textSize {
		slog.Debug("verse record beyond text file", "index", index,
			"start", rec.Start, "length", rec.Length)
		return nil
	}
	buf := make([]byte, rec.Length)
	if err := readAt(r.testament.text, int64(rec.Start), buf); err != nil {
		slog.Debug("verse read failed", "index", index, "error", err)
		return nil
	}
	return buf
}

// compressedText resolves the verse's compression block and slices the
// verse bytes out of the decompressed buffer.
func (r *Reader) compressedText(index int, rec verseRecord) ([]byte, error) {
	block, err := r.blockData(rec.Block)
	if err != nil {
		return nil, err
	}
	if int64(rec.Start)+int64(rec.Length) > int64(len(block)) {
		slog.Debug("verse record beyond decompressed block", "index", index,
			"block", rec.Block, "start", rec.Start, "length", rec.Length)
		return nil, nil
	}
	out := make([]byte, rec.Length)
	copy(out, block[rec.Start:rec.Start+rec.Length])
	return out, nil
}

// blockData returns the decompressed bytes of one compression block.
// Corrupt blocks resolve to empty: a single damaged block must not make
// the whole module unusable. ErrUnsupportedCompression propagates, since
// that is a configuration error rather than bad data.
func (r *Reader) blockData(blockNum uint32) ([]byte, error) {
	if data, ok := r.blocks.Get(blockNum); ok {
		return data, nil
	}

	if blockLocationSize*(int64(blockNum)+1) > r.testament.locationSize {
		slog.Debug("block beyond location file", "block", blockNum)
		return nil, nil
	}
	raw := make([]byte, blockLocationSize)
	if err := readAt(r.testament.location, blockLocationSize*int64(blockNum), raw); err != nil {
		slog.Debug("block location read failed", "block", blockNum, "error", err)
		return nil, nil
	}
	offset := binary.LittleEndian.Uint32(raw[0:4])
	size := binary.LittleEndian.Uint32(raw[4:8])

	if int64(offset)+int64(size) > r.testament.textSize {
		slog.Debug("block beyond text file", "block", blockNum,
			"offset", offset, "size", size)
		return nil, nil
	}
	compressed := make([]byte, size)
	if err := readAt(r.testament.text, int64(offset), compressed); err != nil {
		slog.Debug("block read failed", "block", blockNum, "error", err)
		return nil, nil
	}

	data, err := r.compression.decompress(compressed)
	if err != nil {
		if errors.Is(err, ErrUnsupportedCompression) {
			return nil, err
		}
		slog.Debug("block decompression failed", "block", blockNum, "error", err)
		return nil, nil
	}

	r.blocks.Put(blockNum, data)
	return data, nil
}
