// package services implements the HTTP clients a playlist run talks to
//
// Spotify (token exchange, playlist metadata), YouTube (search page, media streams)
package services

import (
	"fmt"
	"io"
	"net/http"
)

// checkStatus returns an error for any non-2xx response, including a short prefix of the body.
func checkStatus(service string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
	if len(snippet) > 0 {
		return fmt.Errorf("%s error (status %d): %s", service, resp.StatusCode, snippet)
	}
	return fmt.Errorf("%s error: status %d", service, resp.StatusCode)
}
