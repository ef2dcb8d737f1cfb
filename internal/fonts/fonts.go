// Package fonts locates the TTF/OTF file used for overlay text.
package fonts

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Exts are the extensions treated as font files.
var Exts = []string{".ttf", ".otf"}

// ErrNotFound is returned when no font matches.
var ErrNotFound = errors.New("fonts: no matching font")

// BaseDirs returns candidate base directories for fonts (relative to process cwd).
func BaseDirs() []string {
	return []string{"assets/fonts", "../../assets/fonts"}
}

// ScanDir returns relative paths of all font files under dir (e.g. "Inter/Inter-Regular.ttf").
// Paths use forward slashes. A missing dir yields no paths and no error.
func ScanDir(dir string) ([]string, error) {
	var out []string
	dir = filepath.Clean(dir)
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() || !isFont(path) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	return out, err
}

func isFont(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Exts {
		if ext == e {
			return true
		}
	}
	return false
}

// normalizeForMatch lowercases and removes spaces, dashes, and underscores for fuzzy matching.
func normalizeForMatch(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

// SearchCandidates returns search terms to try in order for a font name or path.
// "Lato-Bold.otf" -> ["Lato-Bold.otf", "Lato", "Lato-Bold"].
func SearchCandidates(pathOrName string) []string {
	pathOrName = strings.TrimSpace(pathOrName)
	seen := map[string]bool{pathOrName: true}
	candidates := []string{pathOrName}
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			candidates = append(candidates, s)
		}
	}
	if i := strings.IndexAny(pathOrName, "/\\"); i > 0 {
		add(pathOrName[:i])
	}
	if i := strings.Index(pathOrName, "-"); i > 0 {
		add(pathOrName[:i])
	}
	for _, ext := range Exts {
		if strings.HasSuffix(strings.ToLower(pathOrName), ext) {
			add(pathOrName[:len(pathOrName)-len(ext)])
			break
		}
	}
	return candidates
}

// FindFont searches dirs for a font file whose path matches search (e.g. "Inter",
// "Inter-Regular"). An empty search matches every font. When several match, a path containing
// "regular" wins; otherwise the first in walk order.
func FindFont(dirs []string, search string) (string, error) {
	norm := normalizeForMatch(search)
	var matches []string
	for _, base := range dirs {
		list, err := ScanDir(base)
		if err != nil {
			continue
		}
		for _, rel := range list {
			if strings.Contains(normalizeForMatch(rel), norm) {
				matches = append(matches, filepath.Join(base, filepath.FromSlash(rel)))
			}
		}
	}
	if len(matches) == 0 {
		return "", ErrNotFound
	}
	for _, m := range matches {
		if strings.Contains(strings.ToLower(filepath.Base(m)), "regular") {
			return m, nil
		}
	}
	return matches[0], nil
}

// Resolve returns the font file for the user's preference: an existing file path is used as
// is, a name is searched in dirs through SearchCandidates, and an empty preference picks any
// font found.
func Resolve(dirs []string, pref string) (string, error) {
	pref = strings.TrimSpace(pref)
	if pref == "" {
		return FindFont(dirs, "")
	}
	if info, err := os.Stat(pref); err == nil && !info.IsDir() {
		return pref, nil
	}
	for _, c := range SearchCandidates(pref) {
		if path, err := FindFont(dirs, c); err == nil {
			return path, nil
		}
	}
	return "", ErrNotFound
}
