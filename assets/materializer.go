package assets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/malzubaidi/portfolio-sync/logger"
)

const (
	downloadTimeout = 30 * time.Second
	maxRedirects    = 5
	defaultExt      = ".jpg"
)

var allowedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".svg":  true,
	".avif": true,
}

// Materializer downloads remote images into a local directory with
// deterministic names so that re-running the sync overwrites in place. Every
// failure mode falls back to the original URL; a broken image reference is
// never worth failing a record over.
type Materializer struct {
	dir     string // filesystem directory downloads are written into
	relBase string // path prefix recorded in snapshot fields
	client  *http.Client
	log     logger.Logger
}

// New creates a materializer writing into dir. relBase is the site-relative
// prefix used in rewritten references, usually the same path the web root
// serves dir under.
func New(dir, relBase string, log logger.Logger) *Materializer {
	return &Materializer{
		dir:     dir,
		relBase: relBase,
		client: &http.Client{
			Timeout: downloadTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
		log: log,
	}
}

// CoverName returns the deterministic base name for a record's cover image.
func CoverName(recordID string) string {
	return recordID + "-cover"
}

// ContentName returns the deterministic base name for the index-th inline
// body image of a record.
func ContentName(recordID string, index int) string {
	return fmt.Sprintf("%s-content-%d", recordID, index)
}

// Download fetches rawURL into the materializer's directory under baseName
// plus the extension derived from the URL, and returns the site-relative
// path. On any failure (malformed URL, network error, timeout, non-200
// status) it returns rawURL unchanged and leaves no local file behind.
func (m *Materializer) Download(ctx context.Context, rawURL, baseName string) string {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return rawURL
	}

	ext := extensionFor(u.Path)
	filename := baseName + ext

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return rawURL
	}

	resp, err := m.client.Do(req)
	if err != nil {
		m.log.Warn("image download failed, keeping remote URL",
			logger.String("url", rawURL), logger.Err(err))
		return rawURL
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		m.log.Warn("image download returned non-200, keeping remote URL",
			logger.String("url", rawURL), logger.Int("status", resp.StatusCode))
		return rawURL
	}

	if err := m.save(filename, resp.Body); err != nil {
		m.log.Warn("image write failed, keeping remote URL",
			logger.String("file", filename), logger.Err(err))
		return rawURL
	}

	return path.Join(m.relBase, filename)
}

func (m *Materializer) save(filename string, body io.Reader) error {
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create asset directory: %w", err)
	}

	target := filepath.Join(m.dir, filename)
	f, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("failed to create asset file: %w", err)
	}

	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(target)
		return fmt.Errorf("failed to write asset file: %w", err)
	}
	return f.Close()
}

// extensionFor derives the file extension from a URL path. Unknown or absent
// extensions fall back to the default.
func extensionFor(urlPath string) string {
	ext := strings.ToLower(path.Ext(urlPath))
	if allowedExts[ext] {
		return ext
	}
	return defaultExt
}
