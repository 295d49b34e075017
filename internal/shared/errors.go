package shared

import "fmt"

var (
	// Configuration errors
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Authentication errors
	ErrAuthFailed = fmt.Errorf("authentication failed")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrTrackCountMismatch = fmt.Errorf("resolved track count does not match playlist total")
	ErrNoMatch            = fmt.Errorf("no video found")
	ErrNoStream           = fmt.Errorf("no suitable stream found")
	ErrDownloadFailed     = fmt.Errorf("download failed")
	ErrAlreadyStaged      = fmt.Errorf("already downloaded")

	// Media errors
	ErrTranscodeFailed = fmt.Errorf("transcode failed")
	ErrTagFailed       = fmt.Errorf("tagging failed")

	// Input validation errors
	ErrMissingArgument   = fmt.Errorf("missing required argument")
	ErrInvalidArgument   = fmt.Errorf("invalid argument")
	ErrInvalidDescriptor = fmt.Errorf("invalid track descriptor")
)
