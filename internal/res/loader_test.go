package res

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDataURLBase64(t *testing.T) {
	r, err := parseDataURL("data:image/png;base64,aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "image/png", r.MimeType)
	assert.Equal(t, []byte("hello"), r.Data)
}

func TestParseDataURLPlain(t *testing.T) {
	r, err := parseDataURL("data:text/plain,hello%20world")
	require.NoError(t, err)
	assert.Equal(t, "text/plain", r.MimeType)
	assert.Equal(t, "hello world", r.GetString())
}

func TestParseDataURLDefaultsMime(t *testing.T) {
	r, err := parseDataURL("data:,raw")
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", r.MimeType)
}

func TestParseDataURLRejectsMalformed(t *testing.T) {
	_, err := parseDataURL("data:no-comma")
	assert.Error(t, err)

	_, err = parseDataURL("data:image/png;base64,!!!")
	assert.Error(t, err)
}

func TestLoadLocalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pic.png")
	require.NoError(t, os.WriteFile(path, []byte("fake"), 0o644))

	l := NewLoader("")
	r, err := l.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("fake"), r.Data)
	assert.Equal(t, "image/png", r.MimeType)
}

func TestLoadRelativeToBasePath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logo.svg"), []byte("<svg/>"), 0o644))

	l := NewLoader(filepath.Join(dir, "input.html"))
	r, err := l.Load("logo.svg")
	require.NoError(t, err)
	assert.Equal(t, "image/svg+xml", r.MimeType)
}

func TestLoadFallsBackToSearchPaths(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "asset.jpg"), []byte("jpg"), 0o644))

	l := NewLoader("")
	l.AddSearchPath(dir)
	r, err := l.Load("elsewhere/asset.jpg")
	require.NoError(t, err)
	assert.Equal(t, []byte("jpg"), r.Data)
	assert.Equal(t, "image/jpeg", r.MimeType)
}

func TestLoadMissingResourceFails(t *testing.T) {
	l := NewLoader("")
	_, err := l.Load("definitely/not/here.png")
	assert.Error(t, err)
}

func TestLoadCachesByURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.gif")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	l := NewLoader("")
	first, err := l.Load(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("v2"), 0o644))
	second, err := l.Load(path)
	require.NoError(t, err)
	assert.Same(t, first, second, "repeat loads hit the cache")
}

func TestResourceImageSizePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 7, 5))))

	r := &Resource{URL: "mem.png", Data: buf.Bytes(), MimeType: "image/png"}
	w, h, err := r.ImageSize()
	require.NoError(t, err)
	assert.Equal(t, 7.0, w)
	assert.Equal(t, 5.0, h)
}

func TestResourceImageSizeSVG(t *testing.T) {
	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 16"><rect width="24" height="16"/></svg>`
	r := &Resource{URL: "mem.svg", Data: []byte(svg), MimeType: "image/svg+xml"}
	w, h, err := r.ImageSize()
	require.NoError(t, err)
	assert.Equal(t, 24.0, w)
	assert.Equal(t, 16.0, h)
}

func TestResourceKeyIsURL(t *testing.T) {
	r := &Resource{URL: "x/y.png"}
	assert.Equal(t, "x/y.png", r.Key())
	b, err := r.Bytes()
	require.NoError(t, err)
	assert.Nil(t, b)
}
