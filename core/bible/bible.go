// Package bible decodes verse text from SWORD Bible modules: binary
// indexed, optionally block-compressed text archives keyed by a canonical
// book/chapter/verse hierarchy. A Bible composes the versification
// structure, a per-testament binary reader and a markup cleaner behind one
// reference-to-text query API.
//
// A Bible owns its file handles and is not safe for concurrent use from
// multiple goroutines; independent Bible instances are, since they share
// no state.
package bible

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"strings"

	"github.com/FocuswithJustin/swordtext/core/cleaner"
	"github.com/FocuswithJustin/swordtext/core/modfile"
)

// ErrNoTestaments is returned by Open when neither testament's data files
// could be opened.
var ErrNoTestaments = errors.New("could not open OT or NT for module")

// Bible is an open, read-only SWORD Bible module.
type Bible struct {
	structure *Structure
	cleaner   cleaner.Cleaner

	testaments map[TestamentID]*modfile.Testament
	readers    map[TestamentID]*modfile.Reader

	encoding encodingState
}

// Open opens a module from a resolved configuration record. Configuration
// errors (unknown versification, unknown module type) and the absence of
// both testaments are fatal; a single missing testament is not.
func Open(cfg Config) (*Bible, error) {
	variant, err := modfile.ParseVariant(cfg.ModuleType)
	if err != nil {
		return nil, err
	}
	compression, err := modfile.ParseCompression(cfg.Compression)
	if err != nil {
		return nil, err
	}
	structure, err := NewStructure(cfg.Versification)
	if err != nil {
		return nil, err
	}

	b := &Bible{
		structure:  structure,
		cleaner:    cleaner.ForSourceType(cfg.SourceType),
		testaments: make(map[TestamentID]*modfile.Testament),
		readers:    make(map[TestamentID]*modfile.Reader),
		encoding:   declaredEncoding(cfg.Encoding),
	}

	for tid, fs := range map[TestamentID]*modfile.FileSet{
		OldTestament: cfg.OT,
		NewTestament: cfg.NT,
	} {
		if fs == nil {
			continue
		}
		t, err := modfile.OpenTestament(*fs)
		if err != nil {
			slog.Debug("testament unavailable", "testament", tid, "error", err)
			continue
		}
		b.testaments[tid] = t
		b.readers[tid] = modfile.NewReader(variant, compression, t)
	}
	if len(b.testaments) == 0 {
		return nil, ErrNoTestaments
	}
	return b, nil
}

// Close releases the module's file handles.
func (b *Bible) Close() error {
	var firstErr error
	for _, t := range b.testaments {
		if err := t.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Structure returns the versification structure of this Bible.
func (b *Bible) Structure() *Structure {
	return b.structure
}

// HasTestament reports whether the module provides the given testament.
func (b *Bible) HasTestament(tid TestamentID) bool {
	_, ok := b.testaments[tid]
	return ok
}

// Verses resolves a reference selection and returns a lazy sequence of
// verse texts, testament by testament in resolution order. Verses the
// module has no text for are skipped, so the sequence may be shorter than
// the resolved selection. With clean set, embedded markup is stripped.
//
// Reference errors (unknown book, chapter or verse out of range) surface
// here, before any file I/O. Iterating can still fail for modules
// declaring an unsupported compression; that configuration error is
// yielded as the pair's error value and ends the sequence, so lazy
// callers see the same fail-fast failure Get returns.
func (b *Bible) Verses(books []string, chapters, verses []int, clean bool) (iter.Seq2[string, error], error) {
	refs, err := b.structure.RefToIndices(books, chapters, verses)
	if err != nil {
		return nil, err
	}

	return func(yield func(string, error) bool) {
		for _, tid := range testamentOrder {
			reader, ok := b.readers[tid]
			if !ok {
				continue
			}
			for _, idx := range refs[tid] {
				raw, err := reader.TextAt(idx)
				if err != nil {
					yield("", fmt.Errorf("verse at index %d: %w", idx, err))
					return
				}
				if len(raw) == 0 {
					continue
				}
				text := b.decode(raw)
				if clean && cleaner.NeedsCleaning(text) {
					text = b.cleaner.Clean(text)
				}
				if !yield(text, nil) {
					return
				}
			}
		}
	}, nil
}

// Get returns the text of a reference selection as a single string, one
// verse per join separator. It is the strict form of Verses: an
// unsupported compression algorithm fails with
// modfile.ErrUnsupportedCompression instead of truncating the output.
func (b *Bible) Get(books []string, chapters, verses []int, clean bool, join string) (string, error) {
	refs, err := b.structure.RefToIndices(books, chapters, verses)
	if err != nil {
		return "", err
	}

	var out []string
	for _, tid := range testamentOrder {
		reader, ok := b.readers[tid]
		if !ok {
			continue
		}
		for _, idx := range refs[tid] {
			raw, err := reader.TextAt(idx)
			if err != nil {
				return "", fmt.Errorf("verse at index %d: %w", idx, err)
			}
			if len(raw) == 0 {
				continue
			}
			text := b.decode(raw)
			if clean && cleaner.NeedsCleaning(text) {
				text = b.cleaner.Clean(text)
			}
			out = append(out, text)
		}
	}
	return strings.Join(out, join), nil
}
