// Package services implements the external collaborators of a playlist run.
//
// # Spotify
//
// [SpotifyService] performs the client-credentials token exchange ([SpotifyService.Authorize])
// and resolves a playlist reference into sorted track descriptors ([SpotifyService.ResolvePlaylist]).
//
// The bearer token is obtained once and passed explicitly to every Web API call; there is no
// automatic refresh, so a run that outlives the token fails its remaining metadata calls.
//
// # YouTube
//
// [SearchLocator] scrapes the public search results page: the first "watch?v=" occurrence wins.
// [StreamFetcher] resolves the video with github.com/kkdai/youtube/v2, selects the highest
// progressive MP4 format and writes it under the playlist directory.
//
// # Error Handling
//
// Services never log. They return errors wrapping sentinels from the shared package:
//   - [shared.ErrAuthFailed] : token exchange failed
//   - [shared.ErrAPIRequest] : transport or non-2xx response
//   - [shared.ErrTrackCountMismatch] : resolved tracks differ from the declared total
//   - [shared.ErrNoMatch] : search page had no video link
//   - [shared.ErrNoStream] : no progressive MP4 format
//   - [shared.ErrAlreadyStaged] : file already present, nothing fetched
//   - [shared.ErrDownloadFailed] : stream resolution or transfer failed
package services
