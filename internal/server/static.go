package server

import (
	"bytes"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"

	"go.uber.org/zap"
)

const indexDocument = "index.html"

// StaticHandler serves the built single-page application. Unknown paths get
// the index document so that client-side routes resolve. Files are read
// through an os.Root, which refuses names that escape the asset directory,
// including via symlinks.
type StaticHandler struct {
	fsys   fs.FS
	logger *zap.Logger
}

// NewStaticHandler opens dir as the asset root. A missing directory is
// logged and every static request then answers 404.
func NewStaticHandler(dir string, logger *zap.Logger) *StaticHandler {
	logger = logger.Named("http")
	h := &StaticHandler{logger: logger}

	root, err := os.OpenRoot(dir)
	if err != nil {
		logger.Warn("Static asset directory unavailable", zap.String("dir", dir), zap.Error(err))
		return h
	}
	h.fsys = root.FS()
	return h
}

// NewStaticHandlerFS serves assets from fsys.
func NewStaticHandlerFS(fsys fs.FS, logger *zap.Logger) *StaticHandler {
	return &StaticHandler{fsys: fsys, logger: logger.Named("http")}
}

func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.fsys == nil {
		http.NotFound(w, r)
		return
	}

	name := assetName(r.URL.Path)
	if name != "" && h.serveFile(w, r, name) {
		return
	}
	if !h.serveFile(w, r, indexDocument) {
		h.logger.Warn("Index document missing")
		http.NotFound(w, r)
	}
}

// assetName maps a URL path to a name relative to the asset root. The
// path is cleaned as if rooted, so ".." can never climb above the root.
func assetName(urlPath string) string {
	return strings.TrimPrefix(path.Clean("/"+urlPath), "/")
}

// serveFile writes the regular file name and reports whether it did.
func (h *StaticHandler) serveFile(w http.ResponseWriter, r *http.Request, name string) bool {
	if !fs.ValidPath(name) {
		return false
	}

	f, err := h.fsys.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		return false
	}

	if rs, ok := f.(io.ReadSeeker); ok {
		http.ServeContent(w, r, info.Name(), info.ModTime(), rs)
		return true
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return false
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), bytes.NewReader(data))
	return true
}
