package audio

import (
	"fmt"

	"github.com/bogem/id3v2"
	"github.com/desertthunder/playdl/internal/models"
	"github.com/desertthunder/playdl/internal/shared"
)

// Tagger writes ID3v2 frames to transcoded MP3 files.
type Tagger struct {
	encoding id3v2.Encoding
}

// NewTagger creates a Tagger that writes UTF-8 text frames.
func NewTagger() *Tagger {
	return &Tagger{encoding: id3v2.EncodingUTF8}
}

// Tag sets TIT2 (title), TPE1 (artist) and TALB (album) on the file at path.
//
// Existing frames are parsed and kept; only those three are replaced.
func (t *Tagger) Tag(path string, track models.Track, album string) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("%w: %s: %v", shared.ErrTagFailed, path, err)
	}
	defer tag.Close()

	tag.SetDefaultEncoding(t.encoding)
	tag.SetTitle(track.Title)
	tag.SetArtist(track.Artist)
	if album != "" {
		tag.SetAlbum(album)
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("%w: %s: %v", shared.ErrTagFailed, path, err)
	}
	return nil
}
