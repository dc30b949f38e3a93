// testament.go manages the open data files of one testament.
//
// A testament is backed by two files for raw layouts (verse index + text)
// and three for compressed layouts (verse index + block location + text).
// Handles are opened once at module-open time and held until Close; file
// sizes are recorded at open time for the bounds checks every lookup runs.
package modfile

import (
	"fmt"
	"io"
	"os"
)

// FileSet names the data files of one testament. Location is empty for raw
// layouts.
type FileSet struct {
	Index    string // verse-index file (.vss / .bzv / .czv / .vzv)
	Location string // block-location file (.bzs / .czs / .vzs), compressed only
	Text     string // text data file
}

// Testament holds the open file handles and sizes for one testament.
// A Testament is exclusively owned by one Bible instance; the shared file
// offsets make it unsafe for concurrent use without external serialization.
type Testament struct {
	index    *os.File
	location *os.File
	text     *os.File

	indexSize    int64
	locationSize int64
	textSize     int64
}

// OpenTestament opens the testament's data files. A missing or unreadable
// file fails the whole open; callers treat that as "testament absent",
// which is only fatal when no testament opens at all.
func OpenTestament(fs FileSet) (*Testament, error) {
	t := &Testament{}

	var err error
	if t.index, t.indexSize, err = openSized(fs.Index); err != nil {
		return nil, fmt.Errorf("open verse index: %w", err)
	}
	if fs.Location != "" {
		if t.location, t.locationSize, err = openSized(fs.Location); err != nil {
			t.Close()
			return nil, fmt.Errorf("open block location index: %w", err)
		}
	}
	if t.text, t.textSize, err = openSized(fs.Text); err != nil {
		t.Close()
		return nil, fmt.Errorf("open text data: %w", err)
	}
	return t, nil
}

// Close closes all open file handles. Safe to call more than once.
func (t *Testament) Close() error {
	var firstErr error
	for _, f := range []**os.File{&t.index, &t.location, &t.text} {
		if *f == nil {
			continue
		}
		if err := (*f).Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		*f = nil
	}
	return firstErr
}

// openSized opens a file and records its byte length.
func openSized(path string) (*os.File, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, err
	}
	return f, info.Size(), nil
}

// readAt seeks and reads exactly len(buf) bytes from f.
func readAt(f *os.File, offset int64, buf []byte) error {
	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return err
	}
	_, err := io.ReadFull(f, buf)
	return err
}
