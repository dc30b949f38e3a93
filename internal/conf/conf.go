// Package conf locates SWORD module installations and parses their
// INI-like .conf metadata into the resolved configuration record the core
// consumes. It is the producer side of bible.Config; nothing under core/
// depends on it.
package conf

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ModuleConf represents a parsed SWORD .conf file.
type ModuleConf struct {
	ModuleName    string
	Description   string
	DataPath      string
	ModDrv        string
	Encoding      string
	Lang          string
	Version       string
	SourceType    string
	BlockType     string
	CompressType  string
	Versification string
	Properties    map[string]string
	FilePath      string
}

// Parse parses a SWORD .conf file.
func Parse(path string) (*ModuleConf, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open conf file: %w", err)
	}
	defer f.Close()

	conf := &ModuleConf{
		Properties: make(map[string]string),
		FilePath:   path,
	}

	scanner := bufio.NewScanner(f)
	var multilineKey string
	var multilineValue strings.Builder

	flush := func() {
		if multilineKey != "" {
			conf.setProperty(multilineKey, strings.TrimSpace(multilineValue.String()))
			multilineKey = ""
			multilineValue.Reset()
		}
	}

	for scanner.Scan() {
		line := scanner.Text()

		// Section header [ModuleName]
		if strings.HasPrefix(line, "[") && strings.HasSuffix(strings.TrimSpace(line), "]") {
			flush()
			if conf.ModuleName == "" {
				conf.ModuleName = strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(line), "["), "]")
			}
			continue
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		// Continuation lines start with whitespace.
		if (line[0] == ' ' || line[0] == '\t') && multilineKey != "" {
			multilineValue.WriteString(" ")
			multilineValue.WriteString(trimmed)
			continue
		}
		flush()

		idx := strings.Index(line, "=")
		if idx == -1 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		value := strings.TrimSpace(line[idx+1:])

		if strings.HasSuffix(value, "\\") {
			multilineKey = key
			multilineValue.WriteString(strings.TrimSuffix(value, "\\"))
			continue
		}
		conf.setProperty(key, value)
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading conf file: %w", err)
	}
	return conf, nil
}

// setProperty stores a key/value pair, mapping known keys to struct fields.
func (c *ModuleConf) setProperty(key, value string) {
	c.Properties[key] = value

	switch strings.ToLower(key) {
	case "description":
		c.Description = value
	case "datapath":
		c.DataPath = value
	case "moddrv":
		c.ModDrv = value
	case "encoding":
		c.Encoding = value
	case "lang":
		c.Lang = value
	case "version":
		c.Version = value
	case "sourcetype":
		c.SourceType = value
	case "blocktype":
		c.BlockType = value
	case "compresstype":
		c.CompressType = value
	case "versification":
		c.Versification = value
	}
}

// IsBible reports whether the module is a Bible text this reader can
// decode. Commentaries, dictionaries and genbooks use other drivers.
func (c *ModuleConf) IsBible() bool {
	switch strings.ToLower(c.ModDrv) {
	case "ztext", "ztext4", "rawtext", "rawtext4":
		return true
	default:
		return false
	}
}

// FindConfFiles finds all .conf files in a mods.d directory.
func FindConfFiles(modsDir string) ([]string, error) {
	entries, err := os.ReadDir(modsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read mods.d directory: %w", err)
	}

	var confFiles []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(entry.Name()), ".conf") {
			confFiles = append(confFiles, filepath.Join(modsDir, entry.Name()))
		}
	}
	return confFiles, nil
}

// LoadModules parses every conf file under swordPath/mods.d. Files that
// fail to parse are skipped with a warning.
func LoadModules(swordPath string) ([]*ModuleConf, error) {
	confFiles, err := FindConfFiles(filepath.Join(swordPath, "mods.d"))
	if err != nil {
		return nil, err
	}

	var modules []*ModuleConf
	for _, confPath := range confFiles {
		conf, err := Parse(confPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to parse conf file %s: %v\n", confPath, err)
			continue
		}
		modules = append(modules, conf)
	}
	return modules, nil
}

// FindModule loads the named module's conf from swordPath. The name match
// is case-insensitive.
func FindModule(swordPath, name string) (*ModuleConf, error) {
	modules, err := LoadModules(swordPath)
	if err != nil {
		return nil, err
	}
	for _, m := range modules {
		if strings.EqualFold(m.ModuleName, name) {
			return m, nil
		}
	}
	return nil, fmt.Errorf("module %q not found under %s", name, swordPath)
}
