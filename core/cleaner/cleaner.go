// Package cleaner strips embedded source markup (OSIS, GBF or ThML) from
// raw SWORD verse text, leaving readable text behind. Each dialect gets its
// own engine; which one applies is module configuration, never inferred
// from the text itself.
package cleaner

import "strings"

// Cleaner removes markup tags from verse text. Clean is idempotent on text
// that carries no tags.
type Cleaner interface {
	Clean(text string) string
}

// Source markup dialects as spelled in SWORD conf files.
const (
	SourceOSIS = "OSIS"
	SourceGBF  = "GBF"
	SourceThML = "ThML"
)

// ForSourceType returns the cleaner for a module's SourceType value.
// Unrecognized or empty values fall back to OSIS, the SWORD default.
func ForSourceType(sourceType string) Cleaner {
	switch strings.ToUpper(strings.TrimSpace(sourceType)) {
	case "THML":
		return NewThML()
	case "GBF":
		return NewGBF()
	default:
		return NewOSIS()
	}
}

// NeedsCleaning reports whether text can contain markup at all. Text
// without a tag-start character never changes under Clean, so callers may
// skip the call entirely.
func NeedsCleaning(text string) bool {
	return strings.Contains(text, "<")
}
