package render

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"log/slog"

	"github.com/natefinch/atomic"

	"github.com/marchand/easel/internal/domain"
)

// pageTemplate is a self-contained new-tab page: the image is embedded as a
// data URL so the file needs no network access to display.
var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}} — {{.Artist}}</title>
<style>
  body { margin: 0; background: #111827; color: #f9fafb; font-family: Georgia, serif;
         display: flex; flex-direction: column; align-items: center; min-height: 100vh; justify-content: center; }
  img  { max-width: 92vw; max-height: 82vh; box-shadow: 0 8px 40px rgba(0,0,0,.6); }
  .caption { margin: 1.5rem 0; text-align: center; }
  .title { font-size: 1.3rem; }
  .attribution { color: #9ca3af; font-size: 1rem; margin-top: .3rem; }
  .source { color: #6b7280; font-size: .8rem; margin-top: .3rem; }
</style>
</head>
<body>
<img src="{{.ImageSrc}}" alt="{{.Title}}">
<div class="caption">
  <div class="title">{{.Title}}</div>
  <div class="attribution">{{.Attribution}}</div>
  <div class="source">{{.Source}}</div>
</div>
</body>
</html>
`))

type pageData struct {
	Title       string
	Artist      string
	Attribution string
	Source      string
	ImageSrc    template.URL
}

// HTMLFile renders an artwork as a standalone HTML page on disk.
type HTMLFile struct {
	path   string
	loader *Loader
	logger *slog.Logger
}

// NewHTMLFile creates an HTML page renderer writing to path.
func NewHTMLFile(path string, loader *Loader, logger *slog.Logger) *HTMLFile {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTMLFile{path: path, loader: loader, logger: logger}
}

// RenderArtwork preloads the image and writes the page.
func (h *HTMLFile) RenderArtwork(a *domain.Artwork) error {
	img, err := h.loader.Load(context.Background(), a)
	if err != nil {
		return err
	}

	src := a.DataURL
	if src == "" {
		src = fmt.Sprintf("data:%s;base64,%s", img.MIME, base64.StdEncoding.EncodeToString(img.Bytes))
	}

	var buf bytes.Buffer
	err = pageTemplate.Execute(&buf, pageData{
		Title:       a.Title,
		Artist:      a.Artist,
		Attribution: a.Attribution(),
		Source:      a.Source,
		ImageSrc:    template.URL(src),
	})
	if err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}

	if err := atomic.WriteFile(h.path, &buf); err != nil {
		return fmt.Errorf("failed to write page: %w", err)
	}

	h.logger.Info("page written", "path", h.path, "title", a.Title)
	return nil
}

// ShowError writes a minimal error page.
func (h *HTMLFile) ShowError() {
	page := "<!DOCTYPE html><html><body><p>No artwork could be displayed.</p></body></html>\n"
	if err := atomic.WriteFile(h.path, bytes.NewReader([]byte(page))); err != nil {
		h.logger.Error("failed to write error page", "path", h.path, "error", err)
	}
}
