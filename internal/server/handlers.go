package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/fractional-sitemap/internal/sitemap"
	"github.com/jonathan/fractional-sitemap/internal/types"
)

const healthPingTimeout = 2 * time.Second

func (s *Server) handleSitemapXML(w http.ResponseWriter, r *http.Request) {
	s.serveManifest(w, r, "application/xml; charset=utf-8", sitemap.WriteXML)
}

func (s *Server) handleSitemapJSON(w http.ResponseWriter, r *http.Request) {
	s.serveManifest(w, r, "application/json", sitemap.WriteJSON)
}

// serveManifest runs a fresh build and writes it with encode. The body is
// buffered so an encoding failure can still become a 500.
func (s *Server) serveManifest(w http.ResponseWriter, r *http.Request, contentType string, encode func(io.Writer, []types.RouteEntry) error) {
	ctx, cancel := context.WithTimeout(r.Context(), s.buildTimeout)
	defer cancel()

	m := s.builder.Build(ctx)

	var buf bytes.Buffer
	if err := encode(&buf, m.Entries); err != nil {
		s.logger.Error("failed to encode manifest", zap.String("build_id", m.BuildID.String()), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to encode manifest")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.Header().Set("X-Build-ID", m.BuildID.String())
	if m.Degraded() {
		w.Header().Set("X-Manifest-Degraded", "true")
	}
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = w.Write(buf.Bytes())
	}
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	store := "disabled"
	if s.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
		defer cancel()
		store = "connected"
		if err := s.store.Ping(ctx); err != nil {
			store = "unavailable"
		}
	}
	// A down store only shrinks the manifest, so the server stays healthy.
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok", "store": store})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
