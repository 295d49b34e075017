// Package audio turns staged downloads into finished MP3 files.
//
// # Transcoding
//
// [Transcoder.TranscodeDir] walks a playlist directory and converts every raw .mp4 whose .mp3
// sibling is missing by running ffmpeg with fixed parameters (audio only, 2 channels, 44100 Hz,
// 192 kbit/s, mp3 format). The raw file is removed after a successful conversion. A failed
// conversion leaves the raw file in place and removes the partial output, so the next run
// retries it.
//
// # Tagging
//
// [Tagger] writes ID3v2 title, artist and album frames with github.com/bogem/id3v2.
//
// # Playlists
//
// [WritePlaylist] writes an extended M3U file listing the MP3 files of a playlist in track order.
package audio
