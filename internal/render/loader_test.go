package render

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/marchand/easel/internal/domain"
	applog "github.com/marchand/easel/internal/log"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestLoadFromDataURL(t *testing.T) {
	data := encodePNG(t, 2, 3)
	a := &domain.Artwork{
		Title:    "Cached",
		ImageURL: "https://example.org/cached.png",
		DataURL:  "data:image/png;base64," + base64.StdEncoding.EncodeToString(data),
	}

	l := NewLoader(time.Second, applog.NullLogger())

	img, err := l.Load(context.Background(), a)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if img.Width != 2 || img.Height != 3 {
		t.Errorf("dimensions = %dx%d, want 2x3", img.Width, img.Height)
	}
	if img.Format != "png" {
		t.Errorf("format = %q", img.Format)
	}
	if !bytes.Equal(img.Bytes, data) {
		t.Error("bytes mismatch")
	}
}

func TestLoadFetchesWhenNotEmbedded(t *testing.T) {
	data := encodePNG(t, 4, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(data)
	}))
	defer srv.Close()

	l := NewLoader(time.Second, applog.NullLogger())

	img, err := l.Load(context.Background(), &domain.Artwork{Title: "Remote", ImageURL: srv.URL})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if img.Width != 4 || img.MIME != "image/png" {
		t.Errorf("got %dx%d %q", img.Width, img.Height, img.MIME)
	}
}

func TestLoadRejectsUndecodableImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>hotlink protection</html>"))
	}))
	defer srv.Close()

	l := NewLoader(time.Second, applog.NullLogger())

	if _, err := l.Load(context.Background(), &domain.Artwork{Title: "Bad", ImageURL: srv.URL}); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestHTMLFileEmbedsImage(t *testing.T) {
	data := encodePNG(t, 1, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(data)
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "tab.html")
	h := NewHTMLFile(path, NewLoader(time.Second, applog.NullLogger()), applog.NullLogger())

	a := &domain.Artwork{
		Title:    "Haystacks",
		Artist:   "Claude Monet",
		Year:     "1891",
		ImageURL: srv.URL,
		Source:   domain.SourceMet,
	}
	if err := h.RenderArtwork(a); err != nil {
		t.Fatalf("RenderArtwork: %v", err)
	}

	page, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(page, []byte("data:image/png;base64,")) {
		t.Error("page must embed the image as a data URL")
	}
	if !bytes.Contains(page, []byte("Haystacks")) {
		t.Error("page must carry the title")
	}
}

func TestTerminalPlainOutput(t *testing.T) {
	data := encodePNG(t, 2, 2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(data)
	}))
	defer srv.Close()

	var out bytes.Buffer
	term := NewTerminal(&out, NewLoader(time.Second, applog.NullLogger()), "", true, applog.NullLogger())

	a := &domain.Artwork{
		Title:    "Haystacks",
		Artist:   "Claude Monet",
		Year:     "1891",
		ImageURL: srv.URL,
		Source:   domain.SourceMet,
	}
	if err := term.RenderArtwork(a); err != nil {
		t.Fatalf("RenderArtwork: %v", err)
	}
	if !bytes.Contains(out.Bytes(), []byte("Claude Monet, 1891")) {
		t.Errorf("missing attribution in output:\n%s", out.String())
	}
}
