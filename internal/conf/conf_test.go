package conf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConf(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const kjvConf = `[KJV]
DataPath=./modules/texts/ztext/kjv/
ModDrv=zText
Encoding=UTF-8
Lang=en
Version=3.1
SourceType=OSIS
CompressType=ZIP
BlockType=BOOK
Versification=KJV
Description=King James Version (1769)
`

func TestParseBasic(t *testing.T) {
	path := writeConf(t, t.TempDir(), "kjv.conf", kjvConf)
	m, err := Parse(path)
	if err != nil {
		t.Fatal(err)
	}

	if m.ModuleName != "KJV" {
		t.Errorf("ModuleName = %q", m.ModuleName)
	}
	if m.ModDrv != "zText" {
		t.Errorf("ModDrv = %q", m.ModDrv)
	}
	if m.DataPath != "./modules/texts/ztext/kjv/" {
		t.Errorf("DataPath = %q", m.DataPath)
	}
	if m.CompressType != "ZIP" || m.BlockType != "BOOK" {
		t.Errorf("CompressType/BlockType = %q/%q", m.CompressType, m.BlockType)
	}
	if m.Description != "King James Version (1769)" {
		t.Errorf("Description = %q", m.Description)
	}
	if m.Properties["Lang"] != "en" {
		t.Errorf("Properties[Lang] = %q", m.Properties["Lang"])
	}
}

func TestParseCommentsAndBlankLines(t *testing.T) {
	content := `# leading comment
[Mod]

# another comment
ModDrv=rawText

Description=Some module
`
	m, err := Parse(writeConf(t, t.TempDir(), "mod.conf", content))
	if err != nil {
		t.Fatal(err)
	}
	if m.ModuleName != "Mod" || m.ModDrv != "rawText" || m.Description != "Some module" {
		t.Fatalf("parsed %+v", m)
	}
}

func TestParseMultilineValue(t *testing.T) {
	content := `[Mod]
ModDrv=zText
About=First line \
 second line
Description=after
`
	m, err := Parse(writeConf(t, t.TempDir(), "mod.conf", content))
	if err != nil {
		t.Fatal(err)
	}
	about := m.Properties["About"]
	if !strings.Contains(about, "First line") || !strings.Contains(about, "second line") {
		t.Errorf("About = %q", about)
	}
	if m.Description != "after" {
		t.Errorf("Description = %q", m.Description)
	}
}

func TestIsBible(t *testing.T) {
	cases := []struct {
		drv  string
		want bool
	}{
		{"zText", true},
		{"ztext4", true},
		{"RawText", true},
		{"rawtext4", true},
		{"zLD", false},
		{"RawGenBook", false},
		{"zCom", false},
		{"", false},
	}
	for _, tc := range cases {
		m := &ModuleConf{ModDrv: tc.drv}
		if got := m.IsBible(); got != tc.want {
			t.Errorf("IsBible(%q) = %v, want %v", tc.drv, got, tc.want)
		}
	}
}

// mockInstall lays out a minimal SWORD directory with one conf file.
func mockInstall(t *testing.T, confs map[string]string) string {
	t.Helper()
	root := t.TempDir()
	modsDir := filepath.Join(root, "mods.d")
	if err := os.MkdirAll(modsDir, 0o755); err != nil {
		t.Fatal(err)
	}
	for name, content := range confs {
		writeConf(t, modsDir, name, content)
	}
	return root
}

func TestLoadModules(t *testing.T) {
	root := mockInstall(t, map[string]string{
		"kjv.conf":   kjvConf,
		"notes.txt":  "not a conf file",
		"other.conf": "[Other]\nModDrv=zLD\n",
	})

	modules, err := LoadModules(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(modules) != 2 {
		t.Fatalf("loaded %d modules, want 2", len(modules))
	}
}

func TestFindModuleCaseInsensitive(t *testing.T) {
	root := mockInstall(t, map[string]string{"kjv.conf": kjvConf})

	m, err := FindModule(root, "kjv")
	if err != nil {
		t.Fatal(err)
	}
	if m.ModuleName != "KJV" {
		t.Errorf("ModuleName = %q", m.ModuleName)
	}

	if _, err := FindModule(root, "esv"); err == nil {
		t.Error("FindModule(esv): expected error")
	}
}

func TestResolveCompressed(t *testing.T) {
	root := mockInstall(t, map[string]string{"kjv.conf": kjvConf})
	m, err := FindModule(root, "KJV")
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := m.Resolve(root)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ModuleType != "ztext" || cfg.Versification != "kjv" {
		t.Errorf("ModuleType/Versification = %q/%q", cfg.ModuleType, cfg.Versification)
	}

	dataDir := filepath.Join(root, "modules", "texts", "ztext", "kjv")
	if cfg.OT.Index != filepath.Join(dataDir, "ot.bzv") {
		t.Errorf("OT.Index = %q", cfg.OT.Index)
	}
	if cfg.OT.Location != filepath.Join(dataDir, "ot.bzs") {
		t.Errorf("OT.Location = %q", cfg.OT.Location)
	}
	if cfg.NT.Text != filepath.Join(dataDir, "nt.bzz") {
		t.Errorf("NT.Text = %q", cfg.NT.Text)
	}
}

func TestResolveBlockGranularity(t *testing.T) {
	cases := []struct {
		blockType string
		letter    string
	}{
		{"BOOK", "b"},
		{"CHAPTER", "c"},
		{"VERSE", "v"},
		{"", "b"},
	}
	for _, tc := range cases {
		m := &ModuleConf{
			ModuleName: "Mod",
			DataPath:   "./data/",
			ModDrv:     "zText",
			BlockType:  tc.blockType,
		}
		cfg, err := m.Resolve("/sword")
		if err != nil {
			t.Fatal(err)
		}
		want := filepath.Join("/sword", "data", "ot."+tc.letter+"zv")
		if cfg.OT.Index != want {
			t.Errorf("BlockType %q: OT.Index = %q, want %q", tc.blockType, cfg.OT.Index, want)
		}
	}
}

func TestResolveRaw(t *testing.T) {
	m := &ModuleConf{
		ModuleName: "Mod",
		DataPath:   "./data/",
		ModDrv:     "rawText",
	}
	cfg, err := m.Resolve("/sword")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OT.Index != filepath.Join("/sword", "data", "ot.vss") {
		t.Errorf("OT.Index = %q", cfg.OT.Index)
	}
	if cfg.OT.Location != "" {
		t.Errorf("raw layout must have no location file, got %q", cfg.OT.Location)
	}
	if cfg.OT.Text != filepath.Join("/sword", "data", "ot") {
		t.Errorf("OT.Text = %q", cfg.OT.Text)
	}
}

func TestResolveNonBible(t *testing.T) {
	m := &ModuleConf{ModuleName: "Dict", ModDrv: "zLD", DataPath: "./d/"}
	if _, err := m.Resolve("/sword"); err == nil {
		t.Error("Resolve on dictionary module: expected error")
	}
}
