package models

import (
	"errors"
	"testing"

	"github.com/desertthunder/playdl/internal/shared"
)

func TestTrack(t *testing.T) {
	t.Run("String", func(t *testing.T) {
		track := Track{Title: "Song", Artist: "Artist"}
		if got := track.String(); got != "Song --- Artist" {
			t.Errorf("String() = %q", got)
		}
	})

	t.Run("Sanitized", func(t *testing.T) {
		track := Track{Title: "Either/Or", Artist: "AC/DC"}.Sanitized()
		if track.Title != "EitherOr" || track.Artist != "ACDC" {
			t.Errorf("Sanitized() = %+v", track)
		}
	})
}

func TestParseTrack(t *testing.T) {
	tt := []struct {
		name    string
		input   string
		want    Track
		wantErr bool
	}{
		{name: "valid", input: "Song --- Artist", want: Track{Title: "Song", Artist: "Artist"}},
		{name: "empty artist", input: "Song --- ", want: Track{Title: "Song", Artist: ""}},
		{name: "missing delimiter", input: "Song - Artist", wantErr: true},
		{name: "two delimiters", input: "A --- B --- C", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseTrack(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseTrack() error = %v, wantErr %v", err, tc.wantErr)
			}
			if tc.wantErr {
				if !errors.Is(err, shared.ErrInvalidDescriptor) {
					t.Errorf("expected ErrInvalidDescriptor, got %v", err)
				}
				return
			}
			if got != tc.want {
				t.Errorf("ParseTrack() = %+v, want %+v", got, tc.want)
			}
			if got.String() != tc.input {
				t.Errorf("round trip = %q, want %q", got.String(), tc.input)
			}
		})
	}
}

func TestSortTracks(t *testing.T) {
	t.Run("lexicographic on full descriptor", func(t *testing.T) {
		tracks := []Track{
			{Title: "Zebra", Artist: "A"},
			{Title: "Apple", Artist: "B"},
		}
		SortTracks(tracks)

		if tracks[0].String() != "Apple --- B" || tracks[1].String() != "Zebra --- A" {
			t.Errorf("unexpected order: %v", tracks)
		}
	})

	t.Run("byte order, not title then artist", func(t *testing.T) {
		// "Song --- Z" < "Song 2 --- A" because '-' (0x2d) sorts before '2' (0x32) at index 5.
		tracks := []Track{
			{Title: "Song 2", Artist: "A"},
			{Title: "Song", Artist: "Z"},
			{Title: "song", Artist: "A"},
		}
		SortTracks(tracks)

		want := []string{"Song --- Z", "Song 2 --- A", "song --- A"}
		for i, w := range want {
			if tracks[i].String() != w {
				t.Errorf("tracks[%d] = %q, want %q", i, tracks[i].String(), w)
			}
		}
	})
}

func TestPlaylist(t *testing.T) {
	p := &Playlist{
		Name: "Road/Trip",
		Tracks: []Track{
			{Title: "One", Artist: "A"},
			{Title: "Two", Artist: "B"},
		},
	}

	if got := p.DirName(); got != "RoadTrip" {
		t.Errorf("DirName() = %q", got)
	}

	if track, ok := p.TrackByTitle("Two"); !ok || track.Artist != "B" {
		t.Errorf("TrackByTitle(Two) = %+v, %v", track, ok)
	}

	if _, ok := p.TrackByTitle("Three"); ok {
		t.Error("expected TrackByTitle(Three) to miss")
	}
}

func TestPlaylistDirName(t *testing.T) {
	tt := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "Road Trip", want: "Road Trip"},
		{name: "separators", in: "AC/DC\\Live", want: "ACDCLive"},
		{name: "dot", in: ".", want: "_"},
		{name: "dot dot", in: "..", want: "_"},
		{name: "dots around slash", in: "../..", want: "_"},
		{name: "empty", in: "", want: "_"},
		{name: "leading dots kept", in: "...Ready", want: "...Ready"},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			if got := (&Playlist{Name: tc.in}).DirName(); got != tc.want {
				t.Errorf("DirName(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
