package server

import (
	"io/fs"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// streamFS hides Seek from the files of an fs.FS.
type streamFS struct {
	fs.FS
}

type streamFile struct {
	f fs.File
}

func (s streamFS) Open(name string) (fs.File, error) {
	f, err := s.FS.Open(name)
	if err != nil {
		return nil, err
	}
	return streamFile{f: f}, nil
}

func (f streamFile) Stat() (fs.FileInfo, error) { return f.f.Stat() }
func (f streamFile) Read(p []byte) (int, error) { return f.f.Read(p) }
func (f streamFile) Close() error               { return f.f.Close() }

func assetFS() fstest.MapFS {
	return fstest.MapFS{
		"index.html":    {Data: []byte(indexHTML)},
		"assets/app.js": {Data: []byte("console.log('app');")},
		"assets/img":    {Mode: fs.ModeDir},
	}
}

func serveStatic(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestStaticFS_ServesAssetsAndFallback(t *testing.T) {
	tests := []struct {
		name   string
		fsys   fs.FS
		target string
		body   string
	}{
		{"asset", assetFS(), "/assets/app.js", "console.log('app');"},
		{"root", assetFS(), "/", indexHTML},
		{"client route", assetFS(), "/services/web", indexHTML},
		{"directory", assetFS(), "/assets/img", indexHTML},
		{"dot segments", assetFS(), "/assets/../../index.html", indexHTML},
		{"non-seeking asset", streamFS{assetFS()}, "/assets/app.js", "console.log('app');"},
		{"non-seeking fallback", streamFS{assetFS()}, "/about", indexHTML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serveStatic(NewStaticHandlerFS(tt.fsys, zap.NewNop()), tt.target)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.body, rec.Body.String())
		})
	}
}

func TestStaticFS_MissingIndex(t *testing.T) {
	fsys := fstest.MapFS{"assets/app.js": {Data: []byte("x")}}
	h := NewStaticHandlerFS(streamFS{fsys}, zap.NewNop())

	assert.Equal(t, http.StatusNotFound, serveStatic(h, "/").Code)
	assert.Equal(t, http.StatusOK, serveStatic(h, "/assets/app.js").Code)
}
