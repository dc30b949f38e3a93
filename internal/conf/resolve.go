// resolve.go turns parsed conf metadata into the data-file layout the core
// opens. Compressed modules name their files by block granularity:
// ot.bzv/.bzs/.bzz for book blocks, czv/czs/czz for chapter, vzv/vzs/vzz
// for verse. Raw modules use ot.vss plus a bare ot text file.
package conf

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/FocuswithJustin/swordtext/core/bible"
	"github.com/FocuswithJustin/swordtext/core/modfile"
)

// blockLetter returns the file-extension letter for a BlockType value.
// SWORD defaults to book-sized blocks.
func blockLetter(blockType string) string {
	switch strings.ToUpper(strings.TrimSpace(blockType)) {
	case "CHAPTER":
		return "c"
	case "VERSE":
		return "v"
	default:
		return "b"
	}
}

// Resolve builds the core configuration record for a module. swordPath is
// the installation root the conf's DataPath is relative to.
func (c *ModuleConf) Resolve(swordPath string) (bible.Config, error) {
	if !c.IsBible() {
		return bible.Config{}, fmt.Errorf("module %q is not a Bible text (ModDrv=%s)", c.ModuleName, c.ModDrv)
	}

	dataPath := c.DataPath
	if !filepath.IsAbs(dataPath) {
		dataPath = filepath.Join(swordPath, dataPath)
	}
	dataPath = filepath.Clean(dataPath)

	cfg := bible.Config{
		ModuleType:    strings.ToLower(c.ModDrv),
		Versification: strings.ToLower(c.Versification),
		Encoding:      c.Encoding,
		SourceType:    c.SourceType,
		Compression:   c.CompressType,
		OT:            testamentFiles(dataPath, "ot", strings.ToLower(c.ModDrv), c.BlockType),
		NT:            testamentFiles(dataPath, "nt", strings.ToLower(c.ModDrv), c.BlockType),
	}
	return cfg, nil
}

// testamentFiles names one testament's data files for the module layout.
func testamentFiles(dataPath, testament, modDrv, blockType string) *modfile.FileSet {
	switch modDrv {
	case "rawtext", "rawtext4":
		return &modfile.FileSet{
			Index: filepath.Join(dataPath, testament+".vss"),
			Text:  filepath.Join(dataPath, testament),
		}
	default:
		l := blockLetter(blockType)
		return &modfile.FileSet{
			Index:    filepath.Join(dataPath, testament+"."+l+"zv"),
			Location: filepath.Join(dataPath, testament+"."+l+"zs"),
			Text:     filepath.Join(dataPath, testament+"."+l+"zz"),
		}
	}
}
