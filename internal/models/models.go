package models

import (
	"fmt"
	"sort"
	"strings"

	"github.com/desertthunder/playdl/internal/shared"
)

// TrackDelimiter separates title and artist in a track descriptor.
const TrackDelimiter = " --- "

// Track is a playlist entry: its title and its first listed artist.
type Track struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

// String renders the descriptor form "title --- artist".
func (t Track) String() string {
	return t.Title + TrackDelimiter + t.Artist
}

// Sanitized returns a copy with path separators removed from both fields.
func (t Track) Sanitized() Track {
	return Track{Title: shared.SanitizeName(t.Title), Artist: shared.SanitizeName(t.Artist)}
}

// ParseTrack splits a "title --- artist" descriptor. The delimiter must occur exactly once.
func ParseTrack(s string) (Track, error) {
	if n := strings.Count(s, TrackDelimiter); n != 1 {
		return Track{}, fmt.Errorf("%w: %q has %d delimiters, want 1", shared.ErrInvalidDescriptor, s, n)
	}
	title, artist, _ := strings.Cut(s, TrackDelimiter)
	return Track{Title: title, Artist: artist}, nil
}

// SortTracks orders tracks by their full descriptor string.
func SortTracks(tracks []Track) {
	sort.SliceStable(tracks, func(i, j int) bool {
		return tracks[i].String() < tracks[j].String()
	})
}

// Playlist is a resolved playlist. Tracks holds exactly TotalTracks entries once resolution succeeds.
type Playlist struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	TotalTracks int     `json:"total_tracks"`
	Tracks      []Track `json:"tracks"`
}

// DirName is the sanitized playlist name used for the staging directory.
//
// A name that is empty or only dots becomes "_" so the directory stays inside the output root.
func (p *Playlist) DirName() string {
	name := shared.SanitizeName(p.Name)
	if strings.Trim(name, ".") == "" {
		return "_"
	}
	return name
}

// TrackByTitle returns the track whose title equals title.
func (p *Playlist) TrackByTitle(title string) (Track, bool) {
	for _, t := range p.Tracks {
		if t.Title == title {
			return t, true
		}
	}
	return Track{}, false
}
