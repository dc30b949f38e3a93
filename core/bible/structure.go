// structure.go maps reference selectors onto linear verse indices.
//
// SWORD index files are flat per-testament arrays with heading slots
// interleaved: slot 0 and 1 lead the testament, each book gets a heading
// slot, each chapter gets a heading slot, then the verses follow. The
// Structure walks the canon to turn (book, chapter, verse) selections into
// positions in that array.
package bible

import (
	"errors"
	"fmt"
	"strings"

	"github.com/FocuswithJustin/swordtext/core/canon"
)

// ErrBookNotFound is returned when no book in either testament matches a
// requested name.
var ErrBookNotFound = errors.New("book not found")

// TestamentID names one of the two top-level divisions of a module.
type TestamentID string

// The two testaments, spelled the way SWORD data files are named.
const (
	OldTestament TestamentID = "ot"
	NewTestament TestamentID = "nt"
)

// testamentOrder fixes iteration order: OT before NT, always.
var testamentOrder = []TestamentID{OldTestament, NewTestament}

// Structure binds a versification's book lists to the linear index layout
// of a module. It is immutable after construction; the book-offset table
// is computed eagerly since the canon can never change underneath it.
type Structure struct {
	books   map[TestamentID][]canon.BookEntry
	offsets map[string]int
}

// NewStructure builds the structure for a versification name. Fails with
// canon.ErrUnknownVersification for names the canon table does not carry.
func NewStructure(versification string) (*Structure, error) {
	c, err := canon.Lookup(versification)
	if err != nil {
		return nil, err
	}

	s := &Structure{
		books: map[TestamentID][]canon.BookEntry{
			OldTestament: c.OT,
			NewTestament: c.NT,
		},
		offsets: make(map[string]int),
	}

	// Slots 0 and 1 of each testament are reserved headings; the first
	// book starts at index 2.
	for _, tid := range testamentOrder {
		idx := 2
		for i := range s.books[tid] {
			book := &s.books[tid][i]
			s.offsets[strings.ToLower(book.Name)] = idx
			idx += book.Size()
		}
	}
	return s, nil
}

// FindBook locates a book by any of its names. The match is
// case-insensitive over full name, OSIS abbreviation and preferred
// abbreviation.
func (s *Structure) FindBook(name string) (TestamentID, *canon.BookEntry, error) {
	for _, tid := range testamentOrder {
		books := s.books[tid]
		for i := range books {
			if books[i].NameMatches(name) {
				return tid, &books[i], nil
			}
		}
	}
	return "", nil, fmt.Errorf("%w: %q", ErrBookNotFound, name)
}

// BookOffset returns the starting linear index of a book within its
// testament. The name must be the book's full name.
func (s *Structure) BookOffset(name string) int {
	return s.offsets[strings.ToLower(name)]
}

// Books returns the book list of one testament in canon order.
func (s *Structure) Books(tid TestamentID) []canon.BookEntry {
	return s.books[tid]
}

// RefToIndices expands a reference selection into per-testament linear
// verse indices. A nil books selection covers every book of both
// testaments in canon order; chapters and verses narrow per
// canon.BookEntry.Indices. Result order follows the expansion: book
// order, then chapter order, then verse order — callers rely on that to
// reassemble contiguous passages.
func (s *Structure) RefToIndices(books []string, chapters, verses []int) (map[TestamentID][]int, error) {
	if books == nil {
		for _, tid := range testamentOrder {
			for i := range s.books[tid] {
				books = append(books, s.books[tid][i].Name)
			}
		}
	}

	refs := make(map[TestamentID][]int)
	for _, name := range books {
		tid, book, err := s.FindBook(name)
		if err != nil {
			return nil, err
		}
		idxs, err := book.Indices(chapters, verses, s.BookOffset(book.Name))
		if err != nil {
			return nil, err
		}
		refs[tid] = append(refs[tid], idxs...)
	}
	return refs, nil
}
