package server

import (
	"net/http"
	"os"
	"path/filepath"
)

// StaticFileServer serves client assets from dir, falling back to
// fallbackPath for unknown routes so an SPA router can take over.
func StaticFileServer(dir string, fallbackPath string) http.Handler {
	fs := http.FileServer(http.Dir(dir))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := os.Stat(filepath.Join(dir, r.URL.Path)); err == nil {
			fs.ServeHTTP(w, r)
			return
		}
		http.ServeFile(w, r, filepath.Join(dir, fallbackPath))
	})
}
