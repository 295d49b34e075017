// Spotify Web API client for the client-credentials flow
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/desertthunder/playdl/internal/models"
	"github.com/desertthunder/playdl/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"
	spotifyMarket   = "BR"

	// PageSize is the number of playlist items requested per page.
	PageSize = 20

	playlistTrackFields = "items(track(name,artists(name)))"
)

// SpotifyArtist represents a Spotify artist as returned inside a track.
type SpotifyArtist struct {
	Name string `json:"name"`
}

// SpotifyTrack represents the subset of a Spotify track needed to build a descriptor.
type SpotifyTrack struct {
	Name    string          `json:"name"`
	Artists []SpotifyArtist `json:"artists"`
}

// SpotifyPlaylistTrack represents a track within a playlist context. Track is null for removed items.
type SpotifyPlaylistTrack struct {
	Track *SpotifyTrack `json:"track"`
}

type playlistTrackTotal struct {
	Total int `json:"total"`
}

// SpotifyPlaylist represents playlist-level metadata.
type SpotifyPlaylist struct {
	ID     string             `json:"id"`
	Name   string             `json:"name"`
	Tracks playlistTrackTotal `json:"tracks"`
}

// SpotifyPlaylistTracks represents one page of the playlist tracks endpoint.
type SpotifyPlaylistTracks struct {
	Items []SpotifyPlaylistTrack `json:"items"`
}

// toTrack maps a playlist item to a descriptor using only the first listed artist.
func (i SpotifyPlaylistTrack) toTrack() models.Track {
	if i.Track == nil {
		return models.Track{}
	}
	track := models.Track{Title: i.Track.Name}
	if len(i.Track.Artists) > 0 {
		track.Artist = i.Track.Artists[0].Name
	}
	return track
}

// SpotifyService talks to the Spotify accounts and Web API endpoints with an app-only token.
type SpotifyService struct {
	credentials *clientcredentials.Config
	baseURL     string
	market      string
	httpClient  *http.Client
}

// NewSpotifyService creates a new Spotify service with the given client credentials.
//
// Recognized keys: client_id, client_secret (required), token_url, api_url, market.
func NewSpotifyService(credentials map[string]string) (*SpotifyService, error) {
	clientID, ok := credentials["client_id"]
	if !ok || clientID == "" {
		return nil, fmt.Errorf("%w: missing client_id", shared.ErrMissingCredentials)
	}

	clientSecret, ok := credentials["client_secret"]
	if !ok || clientSecret == "" {
		return nil, fmt.Errorf("%w: missing client_secret", shared.ErrMissingCredentials)
	}

	tokenURL := credentials["token_url"]
	if tokenURL == "" {
		tokenURL = spotifyTokenURL
	}

	baseURL := credentials["api_url"]
	if baseURL == "" {
		baseURL = spotifyBaseURL
	}

	market := credentials["market"]
	if market == "" {
		market = spotifyMarket
	}

	return &SpotifyService{
		credentials: &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     tokenURL,
			AuthStyle:    oauth2.AuthStyleInParams,
		},
		baseURL:    strings.TrimRight(baseURL, "/"),
		market:     market,
		httpClient: http.DefaultClient,
	}, nil
}

// WithHTTPClient replaces the HTTP client used for every request, including the token exchange.
func (s *SpotifyService) WithHTTPClient(c *http.Client) *SpotifyService {
	if c != nil {
		s.httpClient = c
	}
	return s
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// Authorize exchanges the client id and secret for a bearer token.
//
// The token is returned as a plain string; it is never refreshed.
func (s *SpotifyService) Authorize(ctx context.Context) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)

	token, err := s.credentials.Token(ctx)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
			return "", fmt.Errorf("%w: token endpoint returned status %d", shared.ErrAuthFailed, retrieveErr.Response.StatusCode)
		}
		return "", fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	if token.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access_token", shared.ErrAuthFailed)
	}

	return token.AccessToken, nil
}

// doRequest performs an authenticated GET against the Web API and decodes the JSON body into result.
func (s *SpotifyService) doRequest(ctx context.Context, token, endpoint string, query url.Values, result any) error {
	apiURL := s.baseURL + endpoint
	if len(query) > 0 {
		apiURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if err := checkStatus("spotify API", resp); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", shared.ErrAPIRequest, err)
	}

	return nil
}

// Playlist retrieves playlist metadata (name and declared track total) by ID.
func (s *SpotifyService) Playlist(ctx context.Context, token, playlistID string) (*SpotifyPlaylist, error) {
	endpoint := fmt.Sprintf("/playlists/%s", url.PathEscape(playlistID))

	var playlist SpotifyPlaylist
	if err := s.doRequest(ctx, token, endpoint, nil, &playlist); err != nil {
		return nil, err
	}

	return &playlist, nil
}

// PlaylistTracks retrieves one page of playlist items.
func (s *SpotifyService) PlaylistTracks(ctx context.Context, token, playlistID string, limit, offset int) (*SpotifyPlaylistTracks, error) {
	endpoint := fmt.Sprintf("/playlists/%s/tracks", url.PathEscape(playlistID))
	query := url.Values{
		"market": {s.market},
		"fields": {playlistTrackFields},
		"limit":  {strconv.Itoa(limit)},
		"offset": {strconv.Itoa(offset)},
	}

	var page SpotifyPlaylistTracks
	if err := s.doRequest(ctx, token, endpoint, query, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

// ResolvePlaylist fetches playlist metadata and every track descriptor behind ref.
//
// Pagination stops at the declared total or at the first failed page. The result must hold exactly
// the declared number of tracks; otherwise [shared.ErrTrackCountMismatch] is returned (joined with
// the page error, when there was one). Tracks are sorted by their full descriptor and then
// stripped of path separators.
func (s *SpotifyService) ResolvePlaylist(ctx context.Context, token, ref string) (*models.Playlist, error) {
	playlistID := PlaylistID(ref)
	if playlistID == "" {
		return nil, fmt.Errorf("%w: no playlist id in %q", shared.ErrInvalidArgument, ref)
	}

	meta, err := s.Playlist(ctx, token, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch playlist %s: %w", playlistID, err)
	}

	total := meta.Tracks.Total
	tracks := make([]models.Track, 0, total)

	var pageErr error
	for offset := 0; offset < total; {
		page, err := s.PlaylistTracks(ctx, token, playlistID, PageSize, offset)
		if err != nil {
			pageErr = fmt.Errorf("failed to fetch tracks at offset %d: %w", offset, err)
			break
		}
		if len(page.Items) == 0 {
			pageErr = fmt.Errorf("%w: empty page at offset %d", shared.ErrAPIRequest, offset)
			break
		}

		for _, item := range page.Items {
			tracks = append(tracks, item.toTrack())
		}
		offset += len(page.Items)
	}

	if len(tracks) != total {
		mismatch := fmt.Errorf("%w: playlist %q declares %d tracks, resolved %d", shared.ErrTrackCountMismatch, meta.Name, total, len(tracks))
		return nil, errors.Join(mismatch, pageErr)
	}

	models.SortTracks(tracks)
	for i := range tracks {
		tracks[i] = tracks[i].Sanitized()
	}

	return &models.Playlist{
		ID:          playlistID,
		Name:        meta.Name,
		TotalTracks: total,
		Tracks:      tracks,
	}, nil
}

// PlaylistID extracts the playlist identifier from a URL or bare id: the last path segment, without query string.
func PlaylistID(ref string) string {
	ref = strings.TrimSpace(ref)
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		ref = ref[i+1:]
	}
	id, _, _ := strings.Cut(ref, "?")
	return id
}
