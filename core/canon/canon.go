// Package canon provides the static versification tables used by SWORD
// Bible modules. A versification (canon) is a published book/chapter/verse
// numbering scheme; the tables here are fixed data transcribed from the
// SWORD project header files and are never derived from module content.
package canon

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned by canon lookups and index resolution.
var (
	// ErrUnknownVersification is returned when a versification name has no
	// table. This is a configuration error, not a data error.
	ErrUnknownVersification = errors.New("unknown versification")

	// ErrChapterOutOfRange is returned when a requested chapter exceeds the
	// book's chapter count.
	ErrChapterOutOfRange = errors.New("chapter out of range")

	// ErrVerseOutOfRange is returned when the last requested verse exceeds
	// the chapter's verse count.
	ErrVerseOutOfRange = errors.New("verse out of range")
)

// BookEntry describes one book of a canon: its names and the verse count of
// each chapter. Entries are immutable once constructed.
type BookEntry struct {
	Name      string // Full English name, e.g. "Genesis"
	OSIS      string // Canonical OSIS abbreviation, e.g. "Gen"
	Preferred string // Preferred short abbreviation, e.g. "Psa" for Psalms
	Chapters  []int  // Verse count per chapter
}

// Canon holds the ordered book lists of a versification, split by testament.
type Canon struct {
	OT []BookEntry
	NT []BookEntry
}

// ChapterCount returns the number of chapters in the book.
func (b *BookEntry) ChapterCount() int {
	return len(b.Chapters)
}

// Size returns the number of linear index slots the book occupies: one per
// verse, one heading slot per chapter, and one for the book heading.
func (b *BookEntry) Size() int {
	total := 0
	for _, n := range b.Chapters {
		total += n
	}
	return total + len(b.Chapters) + 1
}

// NameMatches reports whether candidate names this book. The comparison is
// case-insensitive against the full name, the OSIS abbreviation, and the
// preferred abbreviation.
func (b *BookEntry) NameMatches(candidate string) bool {
	c := strings.ToLower(candidate)
	return c == strings.ToLower(b.Name) ||
		c == strings.ToLower(b.OSIS) ||
		c == strings.ToLower(b.Preferred)
}

// ChapterOffset returns the linear offset of the given 0-based chapter
// within the book: the verses of all earlier chapters, one heading slot per
// chapter up to and including this one, and one for the book heading.
// ChapterOffset(0) is always 2.
func (b *BookEntry) ChapterOffset(chapterIndex int) int {
	sum := 0
	for _, n := range b.Chapters[:chapterIndex] {
		sum += n
	}
	return sum + chapterIndex + 2
}

// Indices expands a chapter/verse selection into linear verse indices,
// relative to offset (the book's starting slot within its testament).
//
// A nil chapters selection expands to every chapter; chapters outside
// 1..ChapterCount fail with ErrChapterOutOfRange. When more than one
// chapter is selected any verse filter is dropped; verse filters only apply
// to single-chapter selections. A nil or empty verses selection expands to
// every verse of the chapter. Only the last requested verse is checked
// against the chapter length.
func (b *BookEntry) Indices(chapters, verses []int, offset int) ([]int, error) {
	if chapters == nil {
		chapters = make([]int, b.ChapterCount())
		for i := range chapters {
			chapters[i] = i + 1
		}
	}
	if len(chapters) != 1 {
		verses = nil
	}

	var refs []int
	for _, chapter := range chapters {
		if chapter < 1 || chapter > b.ChapterCount() {
			return nil, fmt.Errorf("book %q has no chapter %d (chapters 1 to %d): %w",
				b.Name, chapter, b.ChapterCount(), ErrChapterOutOfRange)
		}
		vv := verses
		if len(vv) == 0 {
			vv = make([]int, b.Chapters[chapter-1])
			for i := range vv {
				vv[i] = i + 1
			}
		}
		// Verse numbers below 1 address heading slots rather than
		// failing; only the last requested verse is bounds-checked.
		if vv[len(vv)-1] > b.Chapters[chapter-1] {
			return nil, fmt.Errorf("book %q chapter %d only has %d verses: %w",
				b.Name, chapter, b.Chapters[chapter-1], ErrVerseOutOfRange)
		}
		for _, verse := range vv {
			refs = append(refs, offset+b.ChapterOffset(chapter-1)+verse-1)
		}
	}
	return refs, nil
}

// Lookup returns the canon for a versification name. Names are matched
// case-insensitively and common aliases are accepted (e.g. "catholic" for
// the Vulgate book set, "lds" for KJV). Unknown names fail with
// ErrUnknownVersification.
func Lookup(versification string) (Canon, error) {
	switch strings.ToLower(strings.TrimSpace(versification)) {
	case "kjv", "nrsv", "lds", "":
		// NRSV and LDS verse numbering match KJV for canonical books.
		return kjvCanon, nil
	case "vulgate", "vulg", "catholic":
		return vulgateCanon, nil
	case "ethiopian", "orthodox", "tewahedo":
		return ethiopianCanon, nil
	default:
		return Canon{}, fmt.Errorf("%w: %q", ErrUnknownVersification, versification)
	}
}

// Names returns the versification names Lookup accepts, aliases included.
func Names() []string {
	return []string{
		"kjv", "nrsv", "lds",
		"vulgate", "vulg", "catholic",
		"ethiopian", "orthodox", "tewahedo",
	}
}

// withPreferred fills empty Preferred abbreviations with the OSIS
// abbreviation so table literals only spell out the ones that differ.
func withPreferred(books []BookEntry) []BookEntry {
	for i := range books {
		if books[i].Preferred == "" {
			books[i].Preferred = books[i].OSIS
		}
	}
	return books
}
