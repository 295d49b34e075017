package shared

import (
	"os"
	"path/filepath"
	"strings"
)

// Staged file extensions. A raw download is VideoExt; the transcoded result is AudioExt.
const (
	VideoExt   = ".mp4"
	AudioExt   = ".mp3"
	PartialExt = ".part"
)

var separators = strings.NewReplacer("/", "", "\\", "")

// SanitizeName strips path separators so the value can be used as a single path element.
func SanitizeName(s string) string {
	return separators.Replace(s)
}

// StagedPath returns the path of title with the given extension inside dir.
func StagedPath(dir, title, ext string) string {
	return filepath.Join(dir, title+ext)
}

// IsStaged reports whether dir already holds a raw or transcoded file for title.
//
// This is the only resume mechanism: any hit means the track is skipped without a network call.
func IsStaged(dir, title string) bool {
	for _, ext := range []string{VideoExt, AudioExt} {
		if FileExists(StagedPath(dir, title, ext)) {
			return true
		}
	}
	return false
}

// FileExists reports whether path exists and is not a directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// SwapExt replaces the extension of path with ext.
func SwapExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
