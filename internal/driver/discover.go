package driver

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"

	"cocomig/internal/config"
)

// skipDirs are never descended into.
var skipDirs = map[string]struct{}{
	"site-packages": {},
	".venv":         {},
	"venv":          {},
	"__pycache__":   {},
	".git":          {},
}

// Discover returns the source files under root, sorted. A root that is a file
// is returned as is, whatever its extension. Files ending in the configured
// output suffix are skipped so earlier sibling outputs are not migrated again.
func Discover(root string, cfg *config.Config) ([]string, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Errorf("discover %s: %w", root, err)
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if path == root {
				return nil
			}
			if _, skip := skipDirs[d.Name()]; skip || excluded(rel, cfg.Files.Exclude) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		name := d.Name()
		if !hasExtension(name, cfg.Files.Extensions) || excluded(rel, cfg.Files.Exclude) {
			return nil
		}
		if cfg.Files.Suffix != "" && strings.HasSuffix(name, cfg.Files.Suffix) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("discover %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

// DiscoverAll runs Discover for every root and drops duplicates.
func DiscoverAll(roots []string, cfg *config.Config) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	for _, root := range roots {
		files, err := Discover(root, cfg)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			key := filepath.Clean(f)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, f)
		}
	}
	sort.Strings(out)
	return out, nil
}

func hasExtension(name string, exts []string) bool {
	ext := filepath.Ext(name)
	for _, want := range exts {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}

// excluded matches rel against the exclude globs. Patterns are validated by
// config, so match errors are impossible here.
func excluded(rel string, patterns []string) bool {
	for _, pat := range patterns {
		if ok, _ := doublestar.Match(pat, rel); ok {
			return true
		}
	}
	return false
}
