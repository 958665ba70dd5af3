// Package inspect serves a read-only JSON view of an overlay registry.
//
//	GET /healthz          {"status":"ok","overlays":3}
//	GET /overlays         every overlay in draw order
//	GET /overlays/{name}  one overlay
//	GET /layers           overlays grouped by effective layer
//	GET /layers/{layer}   one layer, e.g. /layers/above_widgets
//
// Errors are returned as {"code":"...","error":"..."} with the status from
// errors.HTTPStatus.
package inspect

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	apperrors "github.com/FunnySam/runelite/pkg/errors"
	"github.com/FunnySam/runelite/pkg/overlay"
)

// Registry is the read side of overlay.Manager.
type Registry interface {
	Overlays() []overlay.Overlay
	Layers() map[overlay.Layer][]overlay.Overlay
	LayerOverlays(l overlay.Layer) []overlay.Overlay
}

// OverlayView is the JSON form of one overlay. Preferences are omitted when
// unset.
type OverlayView struct {
	Name              string             `json:"name"`
	Layer             overlay.Layer      `json:"layer"`
	EffectiveLayer    overlay.Layer      `json:"effectiveLayer"`
	Position          overlay.Position   `json:"position"`
	Priority          overlay.Priority   `json:"priority"`
	PreferredLocation *overlay.Point     `json:"preferredLocation,omitempty"`
	PreferredSize     *overlay.Dimension `json:"preferredSize,omitempty"`
	PreferredPosition *overlay.Position  `json:"preferredPosition,omitempty"`
}

// LayerView is one layer and the names drawn on it, in order.
type LayerView struct {
	Layer    overlay.Layer `json:"layer"`
	Overlays []string      `json:"overlays"`
}

// NewView captures o's current state.
func NewView(o overlay.Overlay) OverlayView {
	return OverlayView{
		Name:              o.Name(),
		Layer:             o.Layer(),
		EffectiveLayer:    overlay.EffectiveLayer(o),
		Position:          o.Position(),
		Priority:          o.Priority(),
		PreferredLocation: o.PreferredLocation(),
		PreferredSize:     o.PreferredSize(),
		PreferredPosition: o.PreferredPosition(),
	}
}

// Server is the inspection HTTP handler.
type Server struct {
	reg    Registry
	logger *log.Logger
	router chi.Router
}

// NewServer builds the router over reg. A nil logger falls back to
// log.Default().
func NewServer(reg Registry, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{reg: reg, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Get("/healthz", s.handleHealth)
	r.Get("/overlays", s.handleOverlays)
	r.Get("/overlays/{name}", s.handleOverlay)
	r.Get("/layers", s.handleLayers)
	r.Get("/layers/{layer}", s.handleLayer)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, apperrors.New(apperrors.ErrCodeNotFound, "no route for %s", r.URL.Path))
	})
	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "status", ww.Status(), "took", time.Since(start))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"overlays": len(s.reg.Overlays()),
	})
}

func (s *Server) handleOverlays(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, views(s.reg.Overlays()))
}

func (s *Server) handleOverlay(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	for _, o := range s.reg.Overlays() {
		if o.Name() == name {
			s.writeJSON(w, http.StatusOK, NewView(o))
			return
		}
	}
	s.writeError(w, apperrors.New(apperrors.ErrCodeNotFound, "overlay %q is not registered", name))
}

func (s *Server) handleLayers(w http.ResponseWriter, r *http.Request) {
	layers := s.reg.Layers()
	out := make([]LayerView, 0, len(layers))
	for _, l := range overlay.AllLayers() {
		if list, ok := layers[l]; ok {
			out = append(out, LayerView{Layer: l, Overlays: names(list)})
		}
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleLayer(w http.ResponseWriter, r *http.Request) {
	l, err := overlay.ParseLayer(chi.URLParam(r, "layer"))
	if err != nil {
		s.writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidLayer, err, "lookup layer"))
		return
	}
	s.writeJSON(w, http.StatusOK, views(s.reg.LayerOverlays(l)))
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("encode response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	s.writeJSON(w, apperrors.HTTPStatus(err), map[string]string{
		"code":  string(apperrors.GetCode(err)),
		"error": err.Error(),
	})
}

func views(list []overlay.Overlay) []OverlayView {
	out := make([]OverlayView, len(list))
	for i, o := range list {
		out[i] = NewView(o)
	}
	return out
}

func names(list []overlay.Overlay) []string {
	out := make([]string, len(list))
	for i, o := range list {
		out[i] = o.Name()
	}
	return out
}
