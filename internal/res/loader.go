// Package res resolves pixel sources and markup documents from files,
// search paths, HTTP URLs, and data URLs, with a per-loader cache.
package res

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/srwiley/oksvg"

	"github.com/azbo/typeset/logging"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// Resource is a loaded resource. It doubles as the opaque pixel source
// handle the box tree carries for images.
type Resource struct {
	URL      string
	Data     []byte
	MimeType string
}

// Key identifies the resource for caching and diagnostics.
func (r *Resource) Key() string { return r.URL }

// Bytes returns the resource's raw data.
func (r *Resource) Bytes() ([]byte, error) { return r.Data, nil }

// GetString returns the resource data as a string.
func (r *Resource) GetString() string { return string(r.Data) }

// ImageSize returns the intrinsic pixel dimensions of an image
// resource. SVG sources report their viewbox size.
func (r *Resource) ImageSize() (float64, float64, error) {
	if strings.Contains(r.MimeType, "svg") || bytes.Contains(firstBytes(r.Data, 512), []byte("<svg")) {
		icon, err := oksvg.ReadIconStream(bytes.NewReader(r.Data))
		if err != nil {
			return 0, 0, fmt.Errorf("parse svg %q: %w", r.URL, err)
		}
		return icon.ViewBox.W, icon.ViewBox.H, nil
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(r.Data))
	if err != nil {
		return 0, 0, fmt.Errorf("decode image %q: %w", r.URL, err)
	}
	return float64(cfg.Width), float64(cfg.Height), nil
}

func firstBytes(b []byte, n int) []byte {
	if len(b) < n {
		return b
	}
	return b[:n]
}

// Loader resolves and caches resources.
type Loader struct {
	// BaseURL is the URL or file path relative references resolve from.
	BaseURL string

	cache     map[string]*Resource
	cacheLock sync.RWMutex

	searchPaths []string

	client *http.Client
}

// NewLoader creates a loader resolving relative to baseURL.
func NewLoader(baseURL string) *Loader {
	return &Loader{
		BaseURL: baseURL,
		cache:   make(map[string]*Resource),
		client:  &http.Client{},
	}
}

// AddSearchPath adds a directory to search for local resources.
func (l *Loader) AddSearchPath(path string) {
	l.searchPaths = append(l.searchPaths, path)
}

// Load loads a resource from a URL, file path, or data URL.
func (l *Loader) Load(urlStr string) (*Resource, error) {
	l.cacheLock.RLock()
	if res, ok := l.cache[urlStr]; ok {
		l.cacheLock.RUnlock()
		return res, nil
	}
	l.cacheLock.RUnlock()

	res, err := l.load(urlStr)
	if err != nil {
		return nil, err
	}

	l.cacheLock.Lock()
	l.cache[urlStr] = res
	l.cacheLock.Unlock()
	logging.Logger().Debug("loaded resource", "url", urlStr, "bytes", len(res.Data))
	return res, nil
}

func (l *Loader) load(urlStr string) (*Resource, error) {
	if strings.HasPrefix(urlStr, "data:") {
		return parseDataURL(urlStr)
	}
	resolved, err := l.resolveURL(urlStr)
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(resolved, "http://") || strings.HasPrefix(resolved, "https://") {
		return l.loadRemote(resolved)
	}
	return l.loadLocal(resolved)
}

// parseDataURL parses a data URL (RFC 2397):
//
//	data:image/png;base64,<base64>
//	data:text/plain,Hello%20World
func parseDataURL(u string) (*Resource, error) {
	s := strings.TrimPrefix(u, "data:")
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid data URL")
	}
	meta, dataPart := parts[0], parts[1]

	mime := "application/octet-stream"
	isBase64 := false
	comps := strings.Split(meta, ";")
	if len(comps) > 0 && comps[0] != "" {
		mime = comps[0]
	}
	for _, c := range comps[1:] {
		if strings.EqualFold(strings.TrimSpace(c), "base64") {
			isBase64 = true
		}
	}

	var data []byte
	if isBase64 {
		decoded, err := base64.StdEncoding.DecodeString(dataPart)
		if err != nil {
			return nil, fmt.Errorf("invalid base64 data URL: %w", err)
		}
		data = decoded
	} else if d, err := url.QueryUnescape(dataPart); err == nil {
		data = []byte(d)
	} else {
		data = []byte(dataPart)
	}

	return &Resource{URL: u, Data: data, MimeType: mime}, nil
}

// resolveURL resolves a reference against the base URL or path.
func (l *Loader) resolveURL(urlStr string) (string, error) {
	if strings.HasPrefix(urlStr, "http://") || strings.HasPrefix(urlStr, "https://") {
		return urlStr, nil
	}
	if filepath.IsAbs(urlStr) {
		return urlStr, nil
	}
	if !strings.HasPrefix(l.BaseURL, "http://") && !strings.HasPrefix(l.BaseURL, "https://") {
		if l.BaseURL == "" {
			return urlStr, nil
		}
		return filepath.Join(filepath.Dir(l.BaseURL), urlStr), nil
	}
	baseURL, err := url.Parse(l.BaseURL)
	if err != nil {
		return "", err
	}
	relURL, err := url.Parse(urlStr)
	if err != nil {
		return "", err
	}
	return baseURL.ResolveReference(relURL).String(), nil
}

func (l *Loader) loadRemote(urlStr string) (*Resource, error) {
	resp, err := l.client.Get(urlStr)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %s", resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &Resource{
		URL:      urlStr,
		Data:     data,
		MimeType: resp.Header.Get("Content-Type"),
	}, nil
}

func (l *Loader) loadLocal(path string) (*Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return l.loadFromSearchPaths(path)
		}
		return nil, err
	}
	return &Resource{URL: path, Data: data, MimeType: mimeFromPath(path)}, nil
}

// loadFromSearchPaths tries each search path for the file's base name.
func (l *Loader) loadFromSearchPaths(filename string) (*Resource, error) {
	base := filepath.Base(filename)
	for _, dir := range l.searchPaths {
		candidate := filepath.Join(dir, base)
		data, err := os.ReadFile(candidate)
		if err != nil {
			continue
		}
		return &Resource{URL: candidate, Data: data, MimeType: mimeFromPath(candidate)}, nil
	}
	return nil, fmt.Errorf("resource not found: %s", filename)
}

func mimeFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".bmp":
		return "image/bmp"
	case ".tif", ".tiff":
		return "image/tiff"
	case ".webp":
		return "image/webp"
	case ".svg":
		return "image/svg+xml"
	case ".html", ".htm":
		return "text/html"
	default:
		return "application/octet-stream"
	}
}
