// YouTube search-page scraping and progressive stream downloads
//
// Search uses the public results page (no API key); streams are resolved and fetched with
// [youtube.Client] from github.com/kkdai/youtube/v2.
package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strings"

	"github.com/desertthunder/playdl/internal/models"
	"github.com/desertthunder/playdl/internal/shared"
	"github.com/kkdai/youtube/v2"
	"golang.org/x/time/rate"
)

const (
	defaultSearchURL = "https://www.youtube.com/results"
	watchMarker      = "watch?v="
	searchKeyword    = "lyrics"
	mp4MimeType      = "video/mp4"

	// VideoURLTemplate formats a watch URL from a video id.
	VideoURLTemplate = "https://www.youtube.com/watch?v=%s"
)

// SearchLocator resolves a track to a video id by scraping the search results page.
type SearchLocator struct {
	searchURL  string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewSearchLocator creates a locator for searchURL, paced at perSecond requests (0 means unpaced).
func NewSearchLocator(searchURL string, perSecond float64) *SearchLocator {
	if searchURL == "" {
		searchURL = defaultSearchURL
	}

	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}

	return &SearchLocator{
		searchURL:  searchURL,
		httpClient: http.DefaultClient,
		limiter:    rate.NewLimiter(limit, 1),
	}
}

// WithHTTPClient replaces the HTTP client used for search requests.
func (l *SearchLocator) WithHTTPClient(c *http.Client) *SearchLocator {
	if c != nil {
		l.httpClient = c
	}
	return l
}

// SearchQuery builds the free-text query for a track.
func SearchQuery(track models.Track) string {
	return fmt.Sprintf("%s %s %s", track.Title, track.Artist, searchKeyword)
}

// Locate returns the first video id on the results page for track, or [shared.ErrNoMatch].
func (l *SearchLocator) Locate(ctx context.Context, track models.Track) (string, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return "", err
	}

	searchURL := l.searchURL + "?" + url.Values{"search_query": {SearchQuery(track)}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: search request: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if err := checkStatus("youtube search", resp); err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read search page: %v", shared.ErrAPIRequest, err)
	}

	id, ok := ExtractVideoID(string(body))
	if !ok {
		return "", fmt.Errorf("%w: %s", shared.ErrNoMatch, track)
	}

	return id, nil
}

// ExtractVideoID scans page line by line and returns the text following the first "watch?v=" up to the next double quote.
//
// An empty id after the first marker counts as no match.
func ExtractVideoID(page string) (string, bool) {
	for line := range strings.SplitSeq(page, "\n") {
		_, after, found := strings.Cut(line, watchMarker)
		if !found {
			continue
		}
		id, _, _ := strings.Cut(after, `"`)
		return id, id != ""
	}
	return "", false
}

// streamClient is the part of [youtube.Client] the fetcher needs.
type streamClient interface {
	GetVideoContext(ctx context.Context, id string) (*youtube.Video, error)
	GetStreamContext(ctx context.Context, video *youtube.Video, format *youtube.Format) (io.ReadCloser, int64, error)
}

// StreamFetcher downloads the best progressive MP4 stream of a video into a playlist directory.
type StreamFetcher struct {
	client streamClient
}

// NewStreamFetcher creates a fetcher backed by [youtube.Client] using httpClient (nil means the default client).
func NewStreamFetcher(httpClient *http.Client) *StreamFetcher {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &StreamFetcher{client: &youtube.Client{HTTPClient: httpClient}}
}

// SelectFormat picks the highest-resolution progressive (audio+video) MP4 format.
func SelectFormat(formats youtube.FormatList) (*youtube.Format, bool) {
	candidates := make([]*youtube.Format, 0, len(formats))
	for i := range formats {
		f := &formats[i]
		if f.AudioChannels == 0 || f.Height == 0 {
			continue
		}
		if !strings.HasPrefix(f.MimeType, mp4MimeType) {
			continue
		}
		candidates = append(candidates, f)
	}

	if len(candidates) == 0 {
		return nil, false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Height > candidates[j].Height
	})

	return candidates[0], true
}

// Fetch downloads videoID to dir/title.mp4 and returns the written path.
//
// Nothing is requested when dir already holds title.mp4 or title.mp3 ([shared.ErrAlreadyStaged]).
// The stream is written to a .part file and renamed once complete.
func (f *StreamFetcher) Fetch(ctx context.Context, videoID, dir, title string) (string, error) {
	if shared.IsStaged(dir, title) {
		return "", shared.ErrAlreadyStaged
	}

	video, err := f.client.GetVideoContext(ctx, videoID)
	if err != nil {
		return "", fmt.Errorf("%w: video %s: %v", shared.ErrDownloadFailed, videoID, err)
	}

	format, ok := SelectFormat(video.Formats)
	if !ok {
		return "", fmt.Errorf("%w: video %s", shared.ErrNoStream, videoID)
	}

	stream, _, err := f.client.GetStreamContext(ctx, video, format)
	if err != nil {
		return "", fmt.Errorf("%w: starting stream for %s: %v", shared.ErrDownloadFailed, videoID, err)
	}
	defer stream.Close()

	target := shared.StagedPath(dir, title, shared.VideoExt)
	partial := target + shared.PartialExt

	if err := writeStream(partial, stream); err != nil {
		os.Remove(partial)
		return "", fmt.Errorf("%w: %s: %v", shared.ErrDownloadFailed, videoID, err)
	}

	if err := os.Rename(partial, target); err != nil {
		os.Remove(partial)
		return "", fmt.Errorf("%w: failed to finalize %s: %v", shared.ErrDownloadFailed, target, err)
	}

	return target, nil
}

func writeStream(path string, r io.Reader) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(file, r); err != nil {
		file.Close()
		return fmt.Errorf("failed to write stream: %w", err)
	}

	return file.Close()
}
