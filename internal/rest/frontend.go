package rest

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// FrontendHandler serves the static single-page frontend. Unknown paths fall
// back to the index document so client-side routing keeps working after a
// page reload.
type FrontendHandler struct {
	dir   string
	index string
}

func NewFrontendHandler(dir string, index string) *FrontendHandler {
	return &FrontendHandler{dir: dir, index: index}
}

func (h *FrontendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(h.dir, filepath.Clean("/"+r.URL.Path))

	if info, err := os.Stat(path); err != nil || info.IsDir() {
		if !strings.HasPrefix(r.URL.Path, "/api/") {
			http.ServeFile(w, r, filepath.Join(h.dir, h.index))
			return
		}
		http.NotFound(w, r)
		return
	}

	http.FileServer(http.Dir(h.dir)).ServeHTTP(w, r)
}
