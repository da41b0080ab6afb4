package http

import (
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
)

// SPAHandler serves a single-page frontend from an embedded filesystem.
// Requests for existing files are served as-is; everything else falls
// back to index.html so client-side routing keeps working after a
// page reload.
type SPAHandler struct {
	frontend fs.FS
	fileSrv  http.Handler
	logger   *slog.Logger
}

// NewSPAHandler creates a handler over frontend. frontend may be nil
// when no frontend was embedded, in which case every request gets a
// short plain-text notice instead of a 404.
func NewSPAHandler(frontend fs.FS, logger *slog.Logger) *SPAHandler {
	h := &SPAHandler{
		frontend: frontend,
		logger:   logger.With(slog.String("handler", "spa")),
	}
	if frontend != nil {
		h.fileSrv = http.FileServerFS(frontend)
	}
	return h
}

func (h *SPAHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.frontend == nil {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("frontend not bundled with this build\n"))
		return
	}

	name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
	if name == "" {
		name = "index.html"
	}

	if _, err := fs.Stat(h.frontend, name); err != nil {
		// Unknown path: hand index.html to the client router.
		r.URL.Path = "/"
	}

	h.fileSrv.ServeHTTP(w, r)
}
