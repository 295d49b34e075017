// Package models defines the values that flow through a playlist download run.
//
//   - [Track] : a title/artist pair, rendered as "title --- artist"
//   - [Playlist] : playlist metadata plus its resolved tracks
//
// Both are plain values held in memory for one run; nothing here is persisted.
package models
