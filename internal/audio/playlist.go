package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/playdl/internal/models"
	"github.com/desertthunder/playdl/internal/shared"
)

// M3UExt is the extension of generated playlist files.
const M3UExt = ".m3u"

// CreateM3U renders an extended M3U listing the tracks of playlist whose MP3 exists in dir.
//
// Paths are relative to dir, so the playlist file must live next to the tracks.
func CreateM3U(playlist *models.Playlist, dir string) (string, int) {
	var sb strings.Builder
	sb.WriteString("#EXTM3U\n")

	count := 0
	for _, track := range playlist.Tracks {
		name := track.Title + shared.AudioExt
		if !shared.FileExists(filepath.Join(dir, name)) {
			continue
		}
		fmt.Fprintf(&sb, "#EXTINF:-1,%s - %s\n%s\n", track.Artist, track.Title, name)
		count++
	}

	return sb.String(), count
}

// WritePlaylist writes <dir>/<playlist name>.m3u and returns its path and the number of entries.
func WritePlaylist(playlist *models.Playlist, dir string) (string, int, error) {
	content, count := CreateM3U(playlist, dir)
	path := filepath.Join(dir, playlist.DirName()+M3UExt)

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", 0, fmt.Errorf("failed to write playlist file: %w", err)
	}

	return path, count, nil
}
