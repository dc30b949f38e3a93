// Package refparse parses human Bible references ("Gen 1:1", "John 3:16-18",
// "Matt.5.3") into the selector values the bible package queries with.
// The core matches book names against the canon itself; this package only
// handles the reference grammar plus a few extra aliases the canon tables
// do not carry.
package refparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Selector is a parsed reference selection. Nil Chapters selects the whole
// book; nil Verses selects whole chapters.
type Selector struct {
	Book     string
	Chapters []int
	Verses   []int
}

// aliases maps common short forms the canon tables do not list to a name
// they do.
var aliases = map[string]string{
	"ex":         "Exod",
	"dt":         "Deut",
	"pss":        "Ps",
	"psalm":      "Ps",
	"qoh":        "Eccl",
	"sos":        "Song",
	"canticles":  "Song",
	"mt":         "Matt",
	"mk":         "Mark",
	"lk":         "Luke",
	"jn":         "John",
	"1jn":        "1John",
	"2jn":        "2John",
	"3jn":        "3John",
	"apocalypse": "Rev",
}

// Reference grammars. Verse ranges stay within one chapter; the index
// model cannot apply a verse filter across chapters.
var (
	// "Gen 1:1", "Genesis 1:1-5", "1 John 3:16", "Matt.5.3-12"
	fullPattern = regexp.MustCompile(`^(\d?\s*[A-Za-z ]+?)\s*[.\s]\s*(\d+)\s*[.:]\s*(\d+)(?:\s*[-–]\s*(\d+))?$`)

	// "Gen 1", "Song of Solomon 3"
	chapterPattern = regexp.MustCompile(`^(\d?\s*[A-Za-z ]+?)\s*[.\s]\s*(\d+)$`)

	// "Gen", "1 John"
	bookPattern = regexp.MustCompile(`^(\d?\s*[A-Za-z ]+)$`)
)

// Parse parses a reference string into a Selector.
func Parse(s string) (*Selector, error) {
	s = strings.TrimSpace(s)

	if m := fullPattern.FindStringSubmatch(s); m != nil {
		chapter, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, err
		}
		verse, err := strconv.Atoi(m[3])
		if err != nil {
			return nil, err
		}
		verses := []int{verse}
		if m[4] != "" {
			end, err := strconv.Atoi(m[4])
			if err != nil {
				return nil, err
			}
			if end < verse {
				return nil, fmt.Errorf("invalid verse range %d-%d", verse, end)
			}
			verses = verses[:0]
			for v := verse; v <= end; v++ {
				verses = append(verses, v)
			}
		}
		return &Selector{
			Book:     normalize(m[1]),
			Chapters: []int{chapter},
			Verses:   verses,
		}, nil
	}

	if m := chapterPattern.FindStringSubmatch(s); m != nil {
		chapter, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, err
		}
		return &Selector{Book: normalize(m[1]), Chapters: []int{chapter}}, nil
	}

	if m := bookPattern.FindStringSubmatch(s); m != nil {
		return &Selector{Book: normalize(m[1])}, nil
	}

	return nil, fmt.Errorf("unable to parse reference: %q", s)
}

// normalize trims the book part and rewrites known aliases.
func normalize(book string) string {
	book = strings.Join(strings.Fields(book), " ")
	if canonical, ok := aliases[strings.ToLower(book)]; ok {
		return canonical
	}
	return book
}
