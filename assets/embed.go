package assets

import (
	"embed"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed *.wav
var assetsFS embed.FS

// LoadFile loads an embedded asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	return assetsFS.ReadFile(cleanAssetPath(path))
}

// LoadAudio loads an embedded audio asset by assets-relative path.
func LoadAudio(path string) ([]byte, error) {
	return LoadFile(path)
}

// Audio lists the embedded audio files matching prefix, sorted by name.
func Audio(prefix string) []string {
	entries, err := fs.ReadDir(assetsFS, ".")
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, prefix) || !strings.EqualFold(filepath.Ext(name), ".wav") {
			continue
		}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if strings.HasPrefix(s, "assets/") {
		return strings.TrimPrefix(s, "assets/")
	}
	return s
}
