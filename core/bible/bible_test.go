package bible

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/FocuswithJustin/swordtext/core/canon"
	"github.com/FocuswithJustin/swordtext/core/modfile"
)

// buildRawFiles writes a rawtext index/text file pair holding the given
// verses, keyed by linear index. Index slots without text stay empty.
func buildRawFiles(t *testing.T, dir, prefix string, verses map[int][]byte) *modfile.FileSet {
	t.Helper()

	maxIdx := 0
	for idx := range verses {
		if idx > maxIdx {
			maxIdx = idx
		}
	}

	var text []byte
	index := make([]byte, 6*(maxIdx+1))
	for idx, v := range verses {
		rec := index[6*idx : 6*idx+6]
		binary.LittleEndian.PutUint32(rec[0:4], uint32(len(text)))
		binary.LittleEndian.PutUint16(rec[4:6], uint16(len(v)))
		text = append(text, v...)
	}

	fs := &modfile.FileSet{
		Index: filepath.Join(dir, prefix+".vss"),
		Text:  filepath.Join(dir, prefix),
	}
	if err := os.WriteFile(fs.Index, index, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(fs.Text, text, 0o644); err != nil {
		t.Fatal(err)
	}
	return fs
}

// openRawBible opens a KJV rawtext module whose OT holds the given verses.
func openRawBible(t *testing.T, otVerses map[int][]byte) *Bible {
	t.Helper()
	cfg := Config{
		ModuleType: "rawtext",
		OT:         buildRawFiles(t, t.TempDir(), "ot", otVerses),
	}
	b, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { b.Close() })
	return b
}

// Genesis starts at index 2 and chapter 1 at relative offset 2, so
// Genesis 1:1 is linear index 4.
const gen11 = 4

func TestGetSingleVerse(t *testing.T) {
	b := openRawBible(t, map[int][]byte{
		gen11: []byte("In the beginning God created the heaven and the earth."),
	})

	got, err := b.Get([]string{"Genesis"}, []int{1}, []int{1}, true, "\n")
	if err != nil {
		t.Fatal(err)
	}
	want := "In the beginning God created the heaven and the earth."
	if got != want {
		t.Fatalf("Get = %q, want %q", got, want)
	}
}

func TestGetByAbbreviation(t *testing.T) {
	b := openRawBible(t, map[int][]byte{gen11: []byte("first verse")})
	for _, name := range []string{"gen", "Gen", "GENESIS"} {
		got, err := b.Get([]string{name}, []int{1}, []int{1}, true, "\n")
		if err != nil {
			t.Fatalf("Get(%q): %v", name, err)
		}
		if got != "first verse" {
			t.Fatalf("Get(%q) = %q", name, got)
		}
	}
}

func TestGetCleansMarkup(t *testing.T) {
	b := openRawBible(t, map[int][]byte{
		gen11: []byte(`<w lemma="strong:H7225">In the beginning</w><note>punctuate</note>`),
	})

	got, err := b.Get([]string{"Genesis"}, []int{1}, []int{1}, true, "")
	if err != nil {
		t.Fatal(err)
	}
	if got != "In the beginning" {
		t.Fatalf("cleaned Get = %q, want %q", got, "In the beginning")
	}

	raw, err := b.Get([]string{"Genesis"}, []int{1}, []int{1}, false, "")
	if err != nil {
		t.Fatal(err)
	}
	if raw == got {
		t.Fatal("raw Get should retain markup")
	}
}

func TestGetJoinSkipsMissingVerses(t *testing.T) {
	// Verse 2 has no text; the joined output holds verses 1 and 3 only.
	b := openRawBible(t, map[int][]byte{
		gen11:     []byte("one"),
		gen11 + 2: []byte("three"),
	})

	got, err := b.Get([]string{"Genesis"}, []int{1}, []int{1, 2, 3}, true, " ")
	if err != nil {
		t.Fatal(err)
	}
	if got != "one three" {
		t.Fatalf("Get = %q, want %q", got, "one three")
	}
}

func TestVersesSequence(t *testing.T) {
	b := openRawBible(t, map[int][]byte{
		gen11:     []byte("one"),
		gen11 + 1: []byte("two"),
		gen11 + 2: []byte("three"),
	})

	seq, err := b.Verses([]string{"Genesis"}, []int{1}, []int{1, 2, 3}, true)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for v, err := range seq {
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, v)
	}
	want := []string{"one", "two", "three"}
	if len(got) != len(want) {
		t.Fatalf("got %d verses, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("verse %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestVersesEarlyStop(t *testing.T) {
	b := openRawBible(t, map[int][]byte{
		gen11:     []byte("one"),
		gen11 + 1: []byte("two"),
	})

	seq, err := b.Verses([]string{"Genesis"}, []int{1}, nil, true)
	if err != nil {
		t.Fatal(err)
	}
	count := 0
	for range seq {
		count++
		break
	}
	if count != 1 {
		t.Fatalf("iterated %d verses after break, want 1", count)
	}
}

// buildZFiles writes ztext index/location/text files with a single block
// holding the given (already compressed) bytes and one verse record for
// Genesis 1:1.
func buildZFiles(t *testing.T, dir string, compressed []byte) *modfile.FileSet {
	t.Helper()

	index := make([]byte, 10*(gen11+1))
	rec := index[10*gen11:]
	binary.LittleEndian.PutUint32(rec[0:4], 0)
	binary.LittleEndian.PutUint32(rec[4:8], 0)
	binary.LittleEndian.PutUint16(rec[8:10], 5)

	location := make([]byte, 12)
	binary.LittleEndian.PutUint32(location[4:8], uint32(len(compressed)))

	fs := &modfile.FileSet{
		Index:    filepath.Join(dir, "ot.bzv"),
		Location: filepath.Join(dir, "ot.bzs"),
		Text:     filepath.Join(dir, "ot.bzz"),
	}
	for _, f := range []struct {
		path string
		data []byte
	}{
		{fs.Index, index},
		{fs.Location, location},
		{fs.Text, compressed},
	} {
		if err := os.WriteFile(f.path, f.data, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return fs
}

func TestVersesLZSSSurfacesConfigurationError(t *testing.T) {
	// A module declaring LZSS must fail the lazy surface with the same
	// distinct error Get returns, not end the sequence silently.
	cfg := Config{
		ModuleType:  "ztext",
		Compression: "LZSS",
		OT:          buildZFiles(t, t.TempDir(), []byte("irrelevant")),
	}
	b, err := Open(cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()

	seq, err := b.Verses([]string{"Genesis"}, []int{1}, []int{1}, true)
	if err != nil {
		t.Fatal(err)
	}
	var iterErr error
	for _, err := range seq {
		if err != nil {
			iterErr = err
			break
		}
	}
	if !errors.Is(iterErr, modfile.ErrUnsupportedCompression) {
		t.Fatalf("got %v, want ErrUnsupportedCompression", iterErr)
	}

	if _, err := b.Get([]string{"Genesis"}, []int{1}, []int{1}, true, "\n"); !errors.Is(err, modfile.ErrUnsupportedCompression) {
		t.Fatalf("Get: got %v, want ErrUnsupportedCompression", err)
	}
}

func TestVersesReferenceErrorBeforeIO(t *testing.T) {
	b := openRawBible(t, map[int][]byte{gen11: []byte("x")})

	if _, err := b.Verses([]string{"NotABook"}, nil, nil, true); !errors.Is(err, ErrBookNotFound) {
		t.Fatalf("unknown book: got %v, want ErrBookNotFound", err)
	}
	if _, err := b.Verses([]string{"Genesis"}, []int{99}, nil, true); !errors.Is(err, canon.ErrChapterOutOfRange) {
		t.Fatalf("chapter 99: got %v, want ErrChapterOutOfRange", err)
	}
	if _, err := b.Verses([]string{"Genesis"}, []int{0}, []int{1}, true); !errors.Is(err, canon.ErrChapterOutOfRange) {
		t.Fatalf("chapter 0: got %v, want ErrChapterOutOfRange", err)
	}
	if _, err := b.Verses([]string{"Genesis"}, []int{1}, []int{99}, true); !errors.Is(err, canon.ErrVerseOutOfRange) {
		t.Fatalf("verse 99: got %v, want ErrVerseOutOfRange", err)
	}
}

func TestEncodingAutoDetectUTF8(t *testing.T) {
	b := openRawBible(t, map[int][]byte{gen11: []byte("Б-же, Б-же")})
	got, err := b.Get([]string{"Genesis"}, []int{1}, []int{1}, true, "")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Б-же, Б-же" {
		t.Fatalf("Get = %q", got)
	}
}

func TestEncodingFallbackSticky(t *testing.T) {
	// Verse 1 is cp1252 (0xe9 = é), which pins the module to the
	// fallback; verse 2 holds bytes that would be valid UTF-8 but must
	// still decode as cp1252.
	b := openRawBible(t, map[int][]byte{
		gen11:     {'c', 'a', 'f', 0xe9},
		gen11 + 1: {0xc3, 0xa9},
	})

	got, err := b.Get([]string{"Genesis"}, []int{1}, []int{1, 2}, true, "|")
	if err != nil {
		t.Fatal(err)
	}
	if got != "café|Ã©" {
		t.Fatalf("Get = %q, want %q", got, "café|Ã©")
	}
}

func TestEncodingDeclaredLatin1(t *testing.T) {
	cfg := Config{
		ModuleType: "rawtext",
		Encoding:   "latin1",
		OT: buildRawFiles(t, t.TempDir(), "ot", map[int][]byte{
			gen11: {'n', 0xf8, 'r'},
		}),
	}
	b, err := Open(cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()

	got, err := b.Get([]string{"Genesis"}, []int{1}, []int{1}, true, "")
	if err != nil {
		t.Fatal(err)
	}
	if got != "nør" {
		t.Fatalf("Get = %q, want %q", got, "nør")
	}
}

func TestOpenUnknownVersification(t *testing.T) {
	cfg := Config{
		ModuleType:    "rawtext",
		Versification: "septuagint",
		OT:            buildRawFiles(t, t.TempDir(), "ot", map[int][]byte{gen11: []byte("x")}),
	}
	if _, err := Open(cfg); !errors.Is(err, canon.ErrUnknownVersification) {
		t.Fatalf("got %v, want ErrUnknownVersification", err)
	}
}

func TestOpenNoTestaments(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		ModuleType: "rawtext",
		OT: &modfile.FileSet{
			Index: filepath.Join(dir, "missing.vss"),
			Text:  filepath.Join(dir, "missing"),
		},
	}
	if _, err := Open(cfg); !errors.Is(err, ErrNoTestaments) {
		t.Fatalf("got %v, want ErrNoTestaments", err)
	}
}

func TestOpenSingleTestament(t *testing.T) {
	b := openRawBible(t, map[int][]byte{gen11: []byte("x")})
	if !b.HasTestament(OldTestament) {
		t.Error("HasTestament(ot) = false")
	}
	if b.HasTestament(NewTestament) {
		t.Error("HasTestament(nt) = true for OT-only module")
	}
}

func TestStructureOffsets(t *testing.T) {
	s, err := NewStructure("kjv")
	if err != nil {
		t.Fatal(err)
	}

	if got := s.BookOffset("Genesis"); got != 2 {
		t.Fatalf("BookOffset(Genesis) = %d, want 2", got)
	}
	// Exodus follows Genesis immediately.
	gen := s.Books(OldTestament)[0]
	if got := s.BookOffset("Exodus"); got != 2+gen.Size() {
		t.Fatalf("BookOffset(Exodus) = %d, want %d", got, 2+gen.Size())
	}
	// Each testament's index space starts over at 2.
	if got := s.BookOffset("Matthew"); got != 2 {
		t.Fatalf("BookOffset(Matthew) = %d, want 2", got)
	}
}

func TestRefToIndicesAllBooksSpansTestaments(t *testing.T) {
	s, err := NewStructure("kjv")
	if err != nil {
		t.Fatal(err)
	}
	refs, err := s.RefToIndices(nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(refs[OldTestament]) == 0 || len(refs[NewTestament]) == 0 {
		t.Fatalf("nil books must cover both testaments, got %d/%d",
			len(refs[OldTestament]), len(refs[NewTestament]))
	}
}

func TestRefToIndicesTestamentStrictlyIncreasing(t *testing.T) {
	// Resolving every verse of a testament walks the linear index space
	// without duplicates or regressions.
	s, err := NewStructure("kjv")
	if err != nil {
		t.Fatal(err)
	}
	refs, err := s.RefToIndices(nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, tid := range []TestamentID{OldTestament, NewTestament} {
		idxs := refs[tid]
		if idxs[0] != 4 {
			t.Errorf("%s: first verse index = %d, want 4", tid, idxs[0])
		}
		for i := 1; i < len(idxs); i++ {
			if idxs[i] <= idxs[i-1] {
				t.Fatalf("%s: indices not strictly increasing at %d: %d then %d",
					tid, i, idxs[i-1], idxs[i])
			}
		}
	}
}

func TestFindBookAcrossTestaments(t *testing.T) {
	s, _ := NewStructure("kjv")

	tid, book, err := s.FindBook("john")
	if err != nil {
		t.Fatal(err)
	}
	if tid != NewTestament || book.Name != "John" {
		t.Fatalf("FindBook(john) = %s/%s", tid, book.Name)
	}

	if _, _, err := s.FindBook("Atlantis"); !errors.Is(err, ErrBookNotFound) {
		t.Fatalf("got %v, want ErrBookNotFound", err)
	}
}
