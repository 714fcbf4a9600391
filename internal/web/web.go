// Package web serves the landing page and headless text renders of the map.
package web

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tomz197/raycaster/internal/draw"
	"github.com/tomz197/raycaster/internal/geom"
	"github.com/tomz197/raycaster/internal/loop"
	"github.com/tomz197/raycaster/internal/loop/config"
	"github.com/tomz197/raycaster/internal/world"
)

//go:embed index.html
var htmlPage string

// Options configures the router.
type Options struct {
	SSHHost string
	Map     *world.Map
	Logger  *log.Logger
}

// NewRouter configures all routes and returns the router.
func NewRouter(opts Options) http.Handler {
	m := opts.Map
	if m == nil {
		m = world.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	h := &handler{sshHost: opts.SSHHost, m: m, log: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/", h.index)
	r.Get("/frame", h.frame)
	r.Get("/map", h.grid)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}

type handler struct {
	sshHost string
	m       *world.Map
	log     *log.Logger
}

// index handles GET / with the SSH connect instructions.
func (h *handler) index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	page := strings.ReplaceAll(htmlPage, "{{.SSHHost}}", h.sshHost)
	fmt.Fprint(w, page)
}

// frame handles GET /frame?x=&y=&angle= with one rendered view as text.
// Missing parameters default to the map's start pose.
func (h *handler) frame(w http.ResponseWriter, r *http.Request) {
	pose, err := h.pose(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	f := draw.NewFrame(config.ScreenWidth, config.ScreenHeight)
	loop.RenderFrame(f, h.m, pose)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, f.String())
}

// grid handles GET /map, marking the player when x and y are given.
func (h *handler) grid(w http.ResponseWriter, r *http.Request) {
	m := h.m.Clone()
	if r.URL.Query().Has("x") || r.URL.Query().Has("y") {
		pose, err := h.pose(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		m.Track(&pose)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := m.WriteTo(w); err != nil {
		h.log.Error("failed to write map", "err", err)
	}
}

// pose reads x, y and angle from the query. The position must be on an
// empty tile, as it would be in the game.
func (h *handler) pose(r *http.Request) (geom.Direction, error) {
	pose := h.m.Start()
	q := r.URL.Query()

	for _, p := range []struct {
		name string
		dst  *float64
	}{
		{"x", &pose.X},
		{"y", &pose.Y},
		{"angle", &pose.Angle},
	} {
		s := q.Get(p.name)
		if s == "" {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return pose, fmt.Errorf("invalid %s %q", p.name, s)
		}
		*p.dst = v
	}

	if tile := h.m.Tile(pose.Point); !tile.IsEmpty() {
		return pose, fmt.Errorf("position %v is inside tile %q", pose.Point, string(rune(tile)))
	}
	return pose, nil
}

// requestLogger logs one line per request.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("request", "method", r.Method, "path", r.URL.Path,
				"status", ww.Status(), "bytes", ww.BytesWritten(), "took", time.Since(start))
		})
	}
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
