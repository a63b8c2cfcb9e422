// Package assets locates model and font files on disk, whether the binary runs from the
// repository root or from its cmd directory.
package assets

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ModelExts are the model formats the loader understands.
	ModelExts = []string{".glb", ".gltf", ".obj", ".iqm", ".vox", ".m3d"}
	// FontExts are the font formats the UI can load.
	FontExts = []string{".ttf", ".otf"}
)

// SearchDirs returns dir followed by its location relative to a cmd/<name> working directory.
func SearchDirs(dir string) []string {
	dir = filepath.Clean(dir)
	if filepath.IsAbs(dir) {
		return []string{dir}
	}
	return []string{dir, filepath.Join("..", "..", dir)}
}

// Scan returns the slash-separated paths, relative to dir, of every file with one of exts.
// A missing dir yields no files and no error.
func Scan(dir string, exts []string) ([]string, error) {
	var out []string
	dir = filepath.Clean(dir)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() || !hasExt(path, exts) {
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

func hasExt(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// Resolve returns the first existing dirs[i]/rel.
func Resolve(dirs []string, rel string) (string, error) {
	for _, d := range dirs {
		full := filepath.Join(d, filepath.FromSlash(rel))
		if st, err := os.Stat(full); err == nil && !st.IsDir() {
			return full, nil
		}
	}
	return "", &fs.PathError{Op: "resolve", Path: rel, Err: fs.ErrNotExist}
}

// normalize lowercases and removes spaces, dashes, and underscores for fuzzy matching.
func normalize(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(s))
}

// Find searches dirs for a file with one of exts whose path fuzzily contains search,
// e.g. "Inter" finds "Inter/Inter-Regular.ttf". When several match, a file named
// *regular* wins, then the first in scan order.
func Find(dirs []string, exts []string, search string) (string, error) {
	norm := normalize(search)
	if norm == "" {
		return "", fs.ErrNotExist
	}
	var matches []string
	for _, base := range dirs {
		list, err := Scan(base, exts)
		if err != nil {
			continue
		}
		for _, rel := range list {
			if strings.Contains(normalize(rel), norm) {
				matches = append(matches, filepath.Join(base, filepath.FromSlash(rel)))
			}
		}
	}
	if len(matches) == 0 {
		return "", fs.ErrNotExist
	}
	for _, m := range matches {
		if strings.Contains(strings.ToLower(filepath.Base(m)), "regular") {
			return m, nil
		}
	}
	return matches[0], nil
}
