package audio

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bogem/id3v2"
	"github.com/desertthunder/playdl/internal/models"
	"github.com/desertthunder/playdl/internal/shared"
	th "github.com/desertthunder/playdl/internal/testing"
)

func TestTagger(t *testing.T) {
	t.Run("writes title artist and album", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "Song.mp3")
		th.MustWriteFile(t, path, "not really audio")

		track := models.Track{Title: "Song", Artist: "Bänd"}
		if err := NewTagger().Tag(path, track, "Road Trip"); err != nil {
			t.Fatalf("Tag() error = %v", err)
		}

		tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
		if err != nil {
			t.Fatalf("failed to reopen: %v", err)
		}
		defer tag.Close()

		if tag.Title() != "Song" {
			t.Errorf("expected title Song, got %q", tag.Title())
		}
		if tag.Artist() != "Bänd" {
			t.Errorf("expected artist Bänd, got %q", tag.Artist())
		}
		if tag.Album() != "Road Trip" {
			t.Errorf("expected album Road Trip, got %q", tag.Album())
		}
	})

	t.Run("keeps audio payload", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "Song.mp3")
		th.MustWriteFile(t, path, "payload-audio-frames")

		if err := NewTagger().Tag(path, models.Track{Title: "Song", Artist: "Band"}, ""); err != nil {
			t.Fatalf("Tag() error = %v", err)
		}

		if content := th.MustReadFile(t, path); !strings.HasSuffix(content, "payload-audio-frames") {
			t.Errorf("audio payload lost")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		err := NewTagger().Tag(filepath.Join(t.TempDir(), "missing.mp3"), models.Track{}, "")
		if !errors.Is(err, shared.ErrTagFailed) {
			t.Errorf("expected ErrTagFailed, got %v", err)
		}
	})
}
