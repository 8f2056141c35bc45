package banner

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/waldirborbajr/versioncheck/logger"
	"github.com/waldirborbajr/versioncheck/updater"
)

// Handler runs one update check per request and serves the banner fragment
// or the raw result.
type Handler struct {
	checker        updater.VersionChecker
	currentVersion string
	mux            *http.ServeMux
}

// NewHandler returns a handler checking for releases newer than currentVersion
func NewHandler(checker updater.VersionChecker, currentVersion string) *Handler {
	h := &Handler{checker: checker, currentVersion: currentVersion, mux: http.NewServeMux()}
	h.mux.HandleFunc("GET /{$}", h.serveBanner)
	h.mux.HandleFunc("GET /update-banner", h.serveBanner)
	h.mux.HandleFunc("GET /api/v1/update-check", h.serveResult)
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) serveBanner(w http.ResponseWriter, r *http.Request) {
	log := logger.GetLogger()

	page := NewPage()
	res := updater.RunCheck(r.Context(), h.checker, h.currentVersion, page)

	var buf bytes.Buffer
	if err := Render(&buf, page, res.ReleaseURL); err != nil {
		log.Error().Err(err).Msg("Failed to render update banner")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) serveResult(w http.ResponseWriter, r *http.Request) {
	res := updater.RunCheck(r.Context(), h.checker, h.currentVersion, nil)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		logger.Error().Err(err).Msg("Failed to encode update check result")
	}
}
