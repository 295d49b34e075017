package tasks

import (
	"fmt"

	"github.com/desertthunder/playdl/internal/audio"
	"github.com/desertthunder/playdl/internal/models"
)

// ProgressUpdate represents a progress event during a run.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Operation phase enumeration
type Phase int

const (
	Authorize Phase = iota
	ResolvePlaylist
	DownloadTracks
	TranscodeFiles
	TagFiles
	WritePlaylist
)

func (p Phase) String() string {
	switch p {
	case Authorize:
		return "authorize"
	case ResolvePlaylist:
		return "resolve_playlist"
	case DownloadTracks:
		return "download_tracks"
	case TranscodeFiles:
		return "transcode_files"
	case TagFiles:
		return "tag_files"
	case WritePlaylist:
		return "write_playlist"
	default:
		return ""
	}
}

func authorizeUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   Authorize,
		Step:    1,
		Total:   1,
		Message: "Requesting access token from Spotify...",
	}
}

func resolvingUpdate(ref string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolvePlaylist,
		Step:    0,
		Total:   1,
		Message: fmt.Sprintf("Resolving playlist %s...", ref),
	}
}

func resolvedUpdate(pl *models.Playlist) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolvePlaylist,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found playlist: %s (%d tracks)", pl.Name, pl.TotalTracks),
		Data:    pl,
	}
}

func trackUpdate(step, total int, tr models.Track, status string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   DownloadTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s - %s: %s", step, total, tr.Artist, tr.Title, status),
		Data:    tr,
	}
}

func transcodeUpdate(step, total int, r audio.TranscodeResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   TranscodeFiles,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s: %s", step, total, r.Title(), r.Status),
		Data:    r,
	}
}

func tagUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   TagFiles,
		Step:    count,
		Total:   count,
		Message: fmt.Sprintf("Tagged %d files", count),
	}
}

func m3uUpdate(path string, entries int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WritePlaylist,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Wrote %s (%d entries)", path, entries),
	}
}
