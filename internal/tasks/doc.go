// Package tasks sequences a playlist download run.
//
// # Stages
//
// [Pipeline.Run] performs, strictly in order and on the calling goroutine:
//
//  1. Authorize : exchange client credentials for a bearer token
//  2. Resolve : fetch playlist metadata and every page of tracks
//     - a track count that differs from the playlist total aborts the run
//  3. Download : for each track, in resolved order
//     - skip when a raw or transcoded file already exists
//     - locate a video id, then fetch its progressive stream
//  4. Transcode : convert every raw file in the playlist directory
//  5. Tag : write title, artist and album frames to newly converted files (optional)
//  6. Playlist : write an M3U file next to the tracks (optional)
//
// Errors from stages 1 and 2, and failure to create the playlist directory, end the run.
// Per-track and per-file errors are logged, counted in [RunResult], and the run continues.
//
// # Progress Reporting
//
// Run accepts an optional channel of [ProgressUpdate]. Sends never block; updates are
// dropped when the channel is full.
package tasks
