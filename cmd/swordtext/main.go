// Command swordtext reads SWORD Bible modules from disk: list installed
// modules, inspect their metadata and data files, and print verse text for
// a reference.
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/swordtext/core/bible"
	"github.com/FocuswithJustin/swordtext/core/canon"
	"github.com/FocuswithJustin/swordtext/core/modfile"
	"github.com/FocuswithJustin/swordtext/internal/conf"
	"github.com/FocuswithJustin/swordtext/internal/logging"
	"github.com/FocuswithJustin/swordtext/internal/refparse"
)

const version = "0.1.0"

// CLI defines the command-line interface for swordtext.
var CLI struct {
	SwordPath string `name:"sword-path" short:"p" help:"SWORD installation path (default: ~/.sword)" type:"path"`
	LogLevel  string `name:"log-level" default:"info" enum:"debug,info,warn,error" help:"Log level"`
	LogJSON   bool   `name:"log-json" help:"Log as JSON instead of text"`

	List    ListCmd    `cmd:"" help:"List installed Bible modules"`
	Info    InfoCmd    `cmd:"" help:"Show module metadata and data-file digests"`
	Get     GetCmd     `cmd:"" help:"Print verse text for a reference"`
	Books   BooksCmd   `cmd:"" help:"List the books of a versification"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// swordPath resolves the installation path flag, defaulting to the
// platform-conventional ~/.sword.
func swordPath() string {
	if CLI.SwordPath != "" {
		return CLI.SwordPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sword"
	}
	return home + "/.sword"
}

// ListCmd lists installed Bible modules.
type ListCmd struct{}

// Run executes the list command.
func (c *ListCmd) Run() error {
	modules, err := conf.LoadModules(swordPath())
	if err != nil {
		return err
	}
	for _, m := range modules {
		if !m.IsBible() {
			continue
		}
		fmt.Printf("%-16s %-10s %s\n", m.ModuleName, m.Lang, m.Description)
	}
	return nil
}

// InfoCmd shows module metadata and blake3 digests of its data files.
type InfoCmd struct {
	Module string `arg:"" help:"Module name"`
}

// Run executes the info command.
func (c *InfoCmd) Run() error {
	m, err := conf.FindModule(swordPath(), c.Module)
	if err != nil {
		return err
	}

	fmt.Printf("Name:          %s\n", m.ModuleName)
	fmt.Printf("Description:   %s\n", m.Description)
	fmt.Printf("Language:      %s\n", m.Lang)
	fmt.Printf("Version:       %s\n", m.Version)
	fmt.Printf("ModDrv:        %s\n", m.ModDrv)
	fmt.Printf("Versification: %s\n", orDefault(m.Versification, "kjv"))
	fmt.Printf("Encoding:      %s\n", orDefault(m.Encoding, "(auto)"))
	fmt.Printf("SourceType:    %s\n", orDefault(m.SourceType, "OSIS"))
	if m.CompressType != "" {
		fmt.Printf("CompressType:  %s\n", m.CompressType)
	}

	cfg, err := m.Resolve(swordPath())
	if err != nil {
		return err
	}
	for _, path := range append(fileList(cfg.OT), fileList(cfg.NT)...) {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		sum := blake3.Sum256(data)
		fmt.Printf("%s  %10d  %s\n", hex.EncodeToString(sum[:]), len(data), path)
	}
	return nil
}

// fileList flattens a file set for digesting; nil sets produce nothing.
func fileList(fs *modfile.FileSet) []string {
	if fs == nil {
		return nil
	}
	var out []string
	for _, p := range []string{fs.Index, fs.Location, fs.Text} {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// GetCmd prints verse text for a reference.
type GetCmd struct {
	Module string `arg:"" help:"Module name"`
	Ref    string `arg:"" optional:"" help:"Reference, e.g. 'Gen 1:1' or 'John 3:16-18' (omit for whole module)"`
	Raw    bool   `help:"Keep embedded markup instead of cleaning it"`
	Join   string `default:"\n" help:"Verse separator"`
}

// Run executes the get command.
func (c *GetCmd) Run() error {
	m, err := conf.FindModule(swordPath(), c.Module)
	if err != nil {
		return err
	}
	cfg, err := m.Resolve(swordPath())
	if err != nil {
		return err
	}
	b, err := bible.Open(cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	var books []string
	var chapters, verses []int
	if c.Ref != "" {
		sel, err := refparse.Parse(c.Ref)
		if err != nil {
			return err
		}
		books = []string{sel.Book}
		chapters = sel.Chapters
		verses = sel.Verses
	}

	text, err := b.Get(books, chapters, verses, !c.Raw, c.Join)
	if err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}

// BooksCmd lists the books of a versification.
type BooksCmd struct {
	Versification string `arg:"" optional:"" default:"kjv" help:"Versification name"`
}

// Run executes the books command.
func (c *BooksCmd) Run() error {
	cn, err := canon.Lookup(c.Versification)
	if err != nil {
		return err
	}
	for _, part := range []struct {
		label string
		books []canon.BookEntry
	}{
		{"Old Testament", cn.OT},
		{"New Testament", cn.NT},
	} {
		fmt.Printf("%s:\n", part.label)
		for _, b := range part.books {
			fmt.Printf("  %-24s %-8s %d chapters\n", b.Name, b.OSIS, b.ChapterCount())
		}
	}
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

// Run executes the version command.
func (c *VersionCmd) Run() error {
	fmt.Printf("swordtext %s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("swordtext"),
		kong.Description("Read-only SWORD Bible module reader"),
		kong.UsageOnError(),
	)

	format := logging.FormatText
	if CLI.LogJSON {
		format = logging.FormatJSON
	}
	logging.InitLogger(logging.ParseLevel(CLI.LogLevel), format)

	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}

// orDefault returns s, or def when s is empty.
func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
