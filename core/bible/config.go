// config.go defines the fully-resolved configuration record a Bible is
// opened from. Producing this record — locating modules on disk and
// parsing .conf metadata — is the collaborator's job (see internal/conf);
// the core only consumes it.
package bible

import "github.com/FocuswithJustin/swordtext/core/modfile"

// Config describes one openable module. String fields use the SWORD conf
// spellings; empty values take the SWORD defaults.
type Config struct {
	// ModuleType selects the binary layout: rawtext, rawtext4, ztext or
	// ztext4. Default ztext.
	ModuleType string

	// Versification names the canon table. Default kjv.
	Versification string

	// Encoding is the declared text encoding. Empty means auto-detect:
	// strict UTF-8 first, pinned to a cp1252 fallback on failure.
	Encoding string

	// SourceType names the embedded markup dialect: OSIS, GBF or ThML.
	// Default OSIS.
	SourceType string

	// Compression names the block compression algorithm for ztext
	// layouts: ZIP, BZIP2, XZ or LZSS. Default ZIP. LZSS is recognized
	// but unimplemented; lookups fail at the first decompression.
	Compression string

	// OT and NT name each testament's data files. Either may be nil when
	// the module omits that testament; at least one must open.
	OT *modfile.FileSet
	NT *modfile.FileSet
}
