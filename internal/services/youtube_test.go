package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/playdl/internal/models"
	"github.com/desertthunder/playdl/internal/shared"
	th "github.com/desertthunder/playdl/internal/testing"
	"github.com/kkdai/youtube/v2"
)

func TestSearchLocator(t *testing.T) {
	t.Run("returns first watch id", func(t *testing.T) {
		var gotQuery string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query().Get("search_query")
			w.Write([]byte("<html>\n<a href=\"/watch?v=first123abc\">one</a>\n<a href=\"/watch?v=second456de\">two</a>\n</html>"))
		}))
		defer server.Close()

		locator := NewSearchLocator(server.URL, 0).WithHTTPClient(server.Client())
		id, err := locator.Locate(context.Background(), models.Track{Title: "Song", Artist: "Band"})
		if err != nil {
			t.Fatalf("Locate() error = %v", err)
		}

		if id != "first123abc" {
			t.Errorf("expected first123abc, got %s", id)
		}
		if gotQuery != "Song Band lyrics" {
			t.Errorf("unexpected search query %q", gotQuery)
		}
	})

	t.Run("no marker is ErrNoMatch", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>nothing here</html>"))
		}))
		defer server.Close()

		locator := NewSearchLocator(server.URL, 0).WithHTTPClient(server.Client())
		id, err := locator.Locate(context.Background(), models.Track{Title: "Song", Artist: "Band"})
		if !errors.Is(err, shared.ErrNoMatch) {
			t.Fatalf("expected ErrNoMatch, got %v", err)
		}
		if id != "" {
			t.Errorf("expected empty id, got %s", id)
		}
	})

	t.Run("non-2xx is ErrAPIRequest", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		locator := NewSearchLocator(server.URL, 0).WithHTTPClient(server.Client())
		if _, err := locator.Locate(context.Background(), models.Track{Title: "Song"}); !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		locator := NewSearchLocator("http://127.0.0.1:0", 0.001)
		locator.limiter.Wait(context.Background())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := locator.Locate(ctx, models.Track{Title: "Song"}); err == nil {
			t.Error("expected error for canceled context")
		}
	})
}

func TestExtractVideoID(t *testing.T) {
	tt := []struct {
		name   string
		page   string
		want   string
		wantOK bool
	}{
		{name: "href", page: `<a href="/watch?v=abc123">`, want: "abc123", wantOK: true},
		{name: "json blob", page: `{"url":"/watch?v=dQw4w9WgXcQ","x":1}`, want: "dQw4w9WgXcQ", wantOK: true},
		{name: "first line wins", page: "a\nb /watch?v=one\"\nc /watch?v=two\"", want: "one", wantOK: true},
		{name: "first on line wins", page: `"/watch?v=aa" "/watch?v=bb"`, want: "aa", wantOK: true},
		{name: "no quote takes rest of line", page: "/watch?v=tail\nnext", want: "tail", wantOK: true},
		{name: "missing", page: "watch?x=1", wantOK: false},
		{name: "empty id", page: `<a href="/watch?v=">` + "\n" + `<a href="/watch?v=later">`, wantOK: false},
		{name: "empty", page: "", wantOK: false},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractVideoID(tc.page)
			if ok != tc.wantOK || got != tc.want {
				t.Errorf("ExtractVideoID() = %q, %v; want %q, %v", got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestSelectFormat(t *testing.T) {
	formats := youtube.FormatList{
		{ItagNo: 18, MimeType: `video/mp4; codecs="avc1.42001E, mp4a.40.2"`, Height: 360, AudioChannels: 2},
		{ItagNo: 22, MimeType: `video/mp4; codecs="avc1.64001F, mp4a.40.2"`, Height: 720, AudioChannels: 2},
		{ItagNo: 137, MimeType: `video/mp4; codecs="avc1.640028"`, Height: 1080},
		{ItagNo: 43, MimeType: `video/webm; codecs="vp8.0, vorbis"`, Height: 1440, AudioChannels: 2},
		{ItagNo: 140, MimeType: `audio/mp4; codecs="mp4a.40.2"`, AudioChannels: 2},
	}

	t.Run("highest progressive mp4", func(t *testing.T) {
		f, ok := SelectFormat(formats)
		if !ok {
			t.Fatal("expected a format")
		}
		if f.ItagNo != 22 {
			t.Errorf("expected itag 22, got %d", f.ItagNo)
		}
	})

	t.Run("none suitable", func(t *testing.T) {
		if _, ok := SelectFormat(formats[2:]); ok {
			t.Error("expected no suitable format")
		}
	})
}

type fakeStreamClient struct {
	video      *youtube.Video
	videoErr   error
	streamErr  error
	body       io.Reader
	videoCalls int
}

func (f *fakeStreamClient) GetVideoContext(ctx context.Context, id string) (*youtube.Video, error) {
	f.videoCalls++
	if f.videoErr != nil {
		return nil, f.videoErr
	}
	return f.video, nil
}

func (f *fakeStreamClient) GetStreamContext(ctx context.Context, video *youtube.Video, format *youtube.Format) (io.ReadCloser, int64, error) {
	if f.streamErr != nil {
		return nil, 0, f.streamErr
	}
	return io.NopCloser(f.body), 0, nil
}

func progressiveVideo() *youtube.Video {
	return &youtube.Video{
		ID: "vid",
		Formats: youtube.FormatList{
			{ItagNo: 18, MimeType: "video/mp4", Height: 360, AudioChannels: 2},
		},
	}
}

func TestStreamFetcher(t *testing.T) {
	t.Run("downloads to title.mp4", func(t *testing.T) {
		dir := t.TempDir()
		client := &fakeStreamClient{video: progressiveVideo(), body: strings.NewReader("media-bytes")}
		fetcher := &StreamFetcher{client: client}

		path, err := fetcher.Fetch(context.Background(), "vid", dir, "Song")
		if err != nil {
			t.Fatalf("Fetch() error = %v", err)
		}

		want := filepath.Join(dir, "Song.mp4")
		if path != want {
			t.Errorf("expected %s, got %s", want, path)
		}
		if got := th.MustReadFile(t, want); got != "media-bytes" {
			t.Errorf("unexpected content %q", got)
		}
		th.AssertNoFile(t, want+shared.PartialExt)
	})

	t.Run("staged title makes no calls", func(t *testing.T) {
		for _, ext := range []string{shared.VideoExt, shared.AudioExt} {
			t.Run(ext, func(t *testing.T) {
				dir := t.TempDir()
				th.MustWriteFile(t, filepath.Join(dir, "Song"+ext), "old")

				client := &fakeStreamClient{video: progressiveVideo(), body: strings.NewReader("new")}
				_, err := (&StreamFetcher{client: client}).Fetch(context.Background(), "vid", dir, "Song")
				if !errors.Is(err, shared.ErrAlreadyStaged) {
					t.Errorf("expected ErrAlreadyStaged, got %v", err)
				}
				if client.videoCalls != 0 {
					t.Errorf("expected no video lookups, got %d", client.videoCalls)
				}
			})
		}
	})

	t.Run("no progressive stream", func(t *testing.T) {
		dir := t.TempDir()
		client := &fakeStreamClient{video: &youtube.Video{ID: "vid", Formats: youtube.FormatList{{MimeType: "audio/mp4", AudioChannels: 2}}}}

		_, err := (&StreamFetcher{client: client}).Fetch(context.Background(), "vid", dir, "Song")
		if !errors.Is(err, shared.ErrNoStream) {
			t.Errorf("expected ErrNoStream, got %v", err)
		}
		th.AssertNoFile(t, filepath.Join(dir, "Song.mp4"))
	})

	t.Run("video lookup failure", func(t *testing.T) {
		client := &fakeStreamClient{videoErr: youtube.ErrVideoPrivate}

		_, err := (&StreamFetcher{client: client}).Fetch(context.Background(), "vid", t.TempDir(), "Song")
		if !errors.Is(err, shared.ErrDownloadFailed) {
			t.Errorf("expected ErrDownloadFailed, got %v", err)
		}
	})

	t.Run("interrupted transfer leaves nothing staged", func(t *testing.T) {
		dir := t.TempDir()
		client := &fakeStreamClient{video: progressiveVideo(), body: io.MultiReader(strings.NewReader("half"), &th.FReader{})}

		_, err := (&StreamFetcher{client: client}).Fetch(context.Background(), "vid", dir, "Song")
		if !errors.Is(err, shared.ErrDownloadFailed) {
			t.Fatalf("expected ErrDownloadFailed, got %v", err)
		}
		if shared.IsStaged(dir, "Song") {
			t.Error("partial download should not count as staged")
		}
		entries, _ := os.ReadDir(dir)
		if len(entries) != 0 {
			t.Errorf("expected empty directory, got %d entries", len(entries))
		}
	})
}
