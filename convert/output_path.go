package convert

import (
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"hdx/config"
	"hdx/state"
)

// buildOutputPath derives the destination file name from the source path
// (relative, always including base name) and the destination directory.
func buildOutputPath(src, dst string, env *state.LocalEnv) string {
	name := strings.TrimSuffix(src, filepath.Ext(src)) + ".docx"
	if env.NoDirs {
		name = filepath.Base(name)
	}
	if env.Cfg.Document.FileNameTransliterate {
		name = transliterate(name)
	}

	// sanitize each path component separately, keeping the directory layout
	parts := strings.Split(filepath.ToSlash(name), "/")
	for i, p := range parts {
		parts[i] = config.CleanFileName(p)
	}
	return filepath.Join(append([]string{dst}, parts...)...)
}

// transliterate strips combining marks so file names stay ASCII-friendly on
// legacy filesystems.
func transliterate(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
