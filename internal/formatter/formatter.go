// package formatter renders resolved playlists in various formats (CSV, JSON, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/desertthunder/playdl/internal/models"
	"github.com/desertthunder/playdl/internal/shared"
)

// Format names accepted by [Export].
const (
	FormatText     = "text"
	FormatCSV      = "csv"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// Formats lists every supported format name.
var Formats = []string{FormatText, FormatCSV, FormatJSON, FormatMarkdown}

// ExportToCSV converts a Playlist to CSV format with columns: Position, Title, Artist
func ExportToCSV(playlist *models.Playlist) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Position", "Title", "Artist"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, track := range playlist.Tracks {
		if err := writer.Write([]string{strconv.Itoa(i + 1), track.Title, track.Artist}); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a Playlist to a Markdown document with a numbered track list
func ExportToMarkdown(playlist *models.Playlist) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", playlist.Name)
	if playlist.ID != "" {
		fmt.Fprintf(&buf, "**ID**: %s\n", playlist.ID)
	}
	fmt.Fprintf(&buf, "**Tracks**: %d\n\n", len(playlist.Tracks))

	buf.WriteString("## Tracks\n\n")
	for i, track := range playlist.Tracks {
		fmt.Fprintf(&buf, "%d. %s - %s\n", i+1, track.Artist, track.Title)
	}

	return buf.Bytes(), nil
}

// ExportToText converts a Playlist to plain text, one "title --- artist" descriptor per line
func ExportToText(playlist *models.Playlist) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Playlist: %s\n", playlist.Name)
	fmt.Fprintf(&buf, "Tracks: %d\n\n", len(playlist.Tracks))

	for _, track := range playlist.Tracks {
		buf.WriteString(track.String())
		buf.WriteByte('\n')
	}

	return buf.Bytes(), nil
}

// ExportToJSON marshals the playlist, tracks included
func ExportToJSON(playlist *models.Playlist, pretty bool) ([]byte, error) {
	var data []byte
	var err error
	if pretty {
		data, err = json.MarshalIndent(playlist, "", "  ")
	} else {
		data, err = json.Marshal(playlist)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// Export renders playlist in the named format.
func Export(playlist *models.Playlist, format string) ([]byte, error) {
	switch format {
	case FormatText, "":
		return ExportToText(playlist)
	case FormatCSV:
		return ExportToCSV(playlist)
	case FormatJSON:
		return ExportToJSON(playlist, true)
	case FormatMarkdown, "md":
		return ExportToMarkdown(playlist)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}
}

// WriteExport renders playlist in the named format and writes it to path.
func WriteExport(playlist *models.Playlist, format, path string) error {
	data, err := Export(playlist, format)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s file: %w", format, err)
	}
	return nil
}
