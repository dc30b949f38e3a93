package canon

import (
	"errors"
	"testing"
)

func TestLookupKnownNames(t *testing.T) {
	for _, name := range []string{"kjv", "KJV", "nrsv", "lds", "", "vulgate", "vulg", "catholic", "ethiopian", "orthodox", "tewahedo"} {
		if _, err := Lookup(name); err != nil {
			t.Errorf("Lookup(%q): unexpected error: %v", name, err)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("septuagint")
	if !errors.Is(err, ErrUnknownVersification) {
		t.Fatalf("Lookup(septuagint): got %v, want ErrUnknownVersification", err)
	}
}

func TestBookSize(t *testing.T) {
	for _, name := range []string{"kjv", "vulgate", "ethiopian"} {
		cn, err := Lookup(name)
		if err != nil {
			t.Fatal(err)
		}
		for _, books := range [][]BookEntry{cn.OT, cn.NT} {
			for _, b := range books {
				sum := 0
				for _, n := range b.Chapters {
					sum += n
				}
				want := sum + b.ChapterCount() + 1
				if got := b.Size(); got != want {
					t.Errorf("%s/%s: Size() = %d, want %d", name, b.Name, got, want)
				}
			}
		}
	}
}

func TestChapterOffsetFirstChapter(t *testing.T) {
	cn, _ := Lookup("kjv")
	for _, b := range cn.OT {
		if got := b.ChapterOffset(0); got != 2 {
			t.Fatalf("%s: ChapterOffset(0) = %d, want 2", b.Name, got)
		}
	}
}

func TestChapterOffsetAccumulates(t *testing.T) {
	b := BookEntry{Name: "Example", Chapters: []int{31, 25, 24}}
	// 31 verses in chapter 1, plus its header, plus the book and
	// chapter-2 headers.
	if got := b.ChapterOffset(1); got != 31+1+2 {
		t.Fatalf("ChapterOffset(1) = %d, want %d", got, 31+1+2)
	}
	if got := b.ChapterOffset(2); got != 31+25+2+2 {
		t.Fatalf("ChapterOffset(2) = %d, want %d", got, 31+25+2+2)
	}
}

func TestNameMatches(t *testing.T) {
	b := BookEntry{Name: "Genesis", OSIS: "Gen", Preferred: "Gen"}
	for _, name := range []string{"genesis", "GENESIS", "gen", "Gen"} {
		if !b.NameMatches(name) {
			t.Errorf("NameMatches(%q) = false, want true", name)
		}
	}
	if b.NameMatches("exodus") {
		t.Error("NameMatches(exodus) = true, want false")
	}
}

func TestIndicesSingleChapterVerseFilter(t *testing.T) {
	b := BookEntry{Name: "Example", Chapters: []int{31, 25}}
	got, err := b.Indices([]int{1}, []int{1, 3}, 100)
	if err != nil {
		t.Fatal(err)
	}
	want := []int{100 + 2 + 0, 100 + 2 + 2}
	if len(got) != len(want) {
		t.Fatalf("Indices = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Indices = %v, want %v", got, want)
		}
	}
}

func TestIndicesMultiChapterDropsVerseFilter(t *testing.T) {
	// Selecting more than one chapter ignores the verse list and
	// returns every verse of each chapter.
	b := BookEntry{Name: "Example", Chapters: []int{3, 2}}
	got, err := b.Indices([]int{1, 2}, []int{1}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 5 {
		t.Fatalf("got %d indices, want 5 (all verses of both chapters)", len(got))
	}
}

func TestIndicesOnlyLastVerseBoundsChecked(t *testing.T) {
	// A single-chapter selection validates only the last requested
	// verse against the chapter length.
	b := BookEntry{Name: "Example", Chapters: []int{5}}
	if _, err := b.Indices([]int{1}, []int{99, 3}, 0); err != nil {
		t.Fatalf("leading out-of-range verse: unexpected error %v", err)
	}
	_, err := b.Indices([]int{1}, []int{3, 99}, 0)
	if !errors.Is(err, ErrVerseOutOfRange) {
		t.Fatalf("trailing out-of-range verse: got %v, want ErrVerseOutOfRange", err)
	}
}

func TestIndicesChapterOutOfRange(t *testing.T) {
	b := BookEntry{Name: "Example", Chapters: []int{5, 4}}
	_, err := b.Indices([]int{3}, nil, 0)
	if !errors.Is(err, ErrChapterOutOfRange) {
		t.Fatalf("got %v, want ErrChapterOutOfRange", err)
	}
}

func TestIndicesChapterBelowOne(t *testing.T) {
	b := BookEntry{Name: "Example", Chapters: []int{31, 25}}
	for _, chapter := range []int{0, -1} {
		_, err := b.Indices([]int{chapter}, []int{1}, 2)
		if !errors.Is(err, ErrChapterOutOfRange) {
			t.Fatalf("Indices(chapter %d): got %v, want ErrChapterOutOfRange", chapter, err)
		}
	}
}

func TestIndicesEmptyVerseSliceExpands(t *testing.T) {
	b := BookEntry{Name: "Example", Chapters: []int{3}}
	got, err := b.Indices([]int{1}, []int{}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d indices, want all 3 verses", len(got))
	}
}

func TestIndicesAllChaptersStrictlyIncreasing(t *testing.T) {
	cn, _ := Lookup("kjv")
	b := cn.OT[0] // Genesis
	got, err := b.Indices(nil, nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	total := 0
	for _, n := range b.Chapters {
		total += n
	}
	if len(got) != total {
		t.Fatalf("got %d indices, want %d", len(got), total)
	}
	for i := 1; i < len(got); i++ {
		if got[i] <= got[i-1] {
			t.Fatalf("indices not strictly increasing at %d: %d then %d", i, got[i-1], got[i])
		}
	}
	if got[0] != 2 {
		t.Fatalf("first verse index = %d, want 2", got[0])
	}
}

func TestCanonShapes(t *testing.T) {
	cases := []struct {
		name   string
		ot, nt int
	}{
		{"kjv", 39, 27},
		{"vulgate", 46, 27},
		{"ethiopian", 50, 27},
	}
	for _, tc := range cases {
		cn, err := Lookup(tc.name)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", tc.name, err)
		}
		if len(cn.OT) != tc.ot || len(cn.NT) != tc.nt {
			t.Errorf("%s: got %d OT / %d NT books, want %d/%d",
				tc.name, len(cn.OT), len(cn.NT), tc.ot, tc.nt)
		}
	}
}
