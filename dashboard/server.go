// Package dashboard serves the reconstructed trade data over HTTP: a JSON
// API for the browser frontend plus a server-rendered index page. It is a
// pure consumer of the loader's snapshots; every request works against
// whichever immutable snapshot it grabbed, so a poll replacing the snapshot
// mid-request is harmless.
package dashboard

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/Millionaireguardian/polymarket-dashboard/loader"
	"github.com/Millionaireguardian/polymarket-dashboard/reconcile"
	"github.com/Millionaireguardian/polymarket-dashboard/summary"
	"github.com/Millionaireguardian/polymarket-dashboard/trades"
)

//go:embed web/templates/*.html
var templateFS embed.FS

// Config configures the HTTP server.
type Config struct {
	Listen       string
	PollInterval time.Duration
	Reconcile    reconcile.Options
}

// Server is the dashboard HTTP server.
type Server struct {
	cfg    Config
	loader *loader.Loader
	log    zerolog.Logger
	tmpl   *template.Template
	http   *http.Server
}

// NewServer builds the server and its routes.
func NewServer(cfg Config, l *loader.Loader, log zerolog.Logger) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "web/templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		cfg:    cfg,
		loader: l,
		log:    log.With().Str("component", "dashboard").Logger(),
		tmpl:   tmpl,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/summary", s.handleSummary)
	mux.HandleFunc("/api/trades", s.handleTrades)
	mux.HandleFunc("/api/chart", s.handleChart)
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/refresh", s.handleRefresh)

	s.http = &http.Server{
		Addr:              cfg.Listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s, nil
}

// Handler returns the server's route handler.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Start begins serving in a background goroutine.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.http.Addr, err)
	}
	s.log.Info().Str("addr", ln.Addr().String()).Msg("dashboard listening")

	go func() {
		if err := s.http.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.log.Error().Err(err).Msg("dashboard server stopped")
		}
	}()
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// view assembles everything the handlers derive from one snapshot.
func (s *Server) view(now time.Time) (loader.Snapshot, reconcile.Result, summary.Summary) {
	snap := s.loader.Snapshot()
	rec := reconcile.Reconstruct(snap.Trades, s.cfg.Reconcile)
	sum := summary.Aggregate(snap.Trades, rec, now)
	return snap, rec, sum
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("encode response")
	}
}

// GET /api/summary
func (s *Server) handleSummary(w http.ResponseWriter, _ *http.Request) {
	_, _, sum := s.view(time.Now())
	s.writeJSON(w, sum)
}

// GET /api/trades?q=<market substring>&sort=<column>&dir=asc|desc
func (s *Server) handleTrades(w http.ResponseWriter, r *http.Request) {
	snap := s.loader.Snapshot()
	rec := reconcile.Reconstruct(snap.Trades, s.cfg.Reconcile)
	display := rec.DisplayTrades()

	q := r.URL.Query().Get("q")
	display = trades.Search(display, q)

	col := trades.ColTimestamp
	if c, ok := trades.ParseColumn(r.URL.Query().Get("sort")); ok {
		col = c
	}
	asc := r.URL.Query().Get("dir") == "asc"
	display = trades.SortBy(display, col, asc)

	s.writeJSON(w, tradesResponse{
		Rows:  buildRows(display),
		Count: len(display),
		Total: len(snap.Trades),
		Query: q,
	})
}

// GET /api/chart?period=all|24h|7d
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	snap := s.loader.Snapshot()
	rec := reconcile.Reconstruct(snap.Trades, s.cfg.Reconcile)
	sum := summary.Aggregate(snap.Trades, rec, now)

	period := trades.ParsePeriod(r.URL.Query().Get("period"))
	s.writeJSON(w, buildChart(rec, sum, period, now))
}

// GET /api/status
func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	now := time.Now()
	st := s.loader.Status()
	_, _, sum := s.view(now)

	s.writeJSON(w, statusResponse{
		Status:       st,
		BotActive:    sum.BotActive(now),
		PollInterval: s.cfg.PollInterval.String(),
	})
}

// POST /api/refresh triggers a manual poll. Reports refreshed=false when a
// fetch was already in flight.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ok := s.loader.Refresh(r.Context())
	s.writeJSON(w, map[string]bool{"refreshed": ok})
}

// GET /
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	now := time.Now()
	snap, rec, sum := s.view(now)
	st := s.loader.Status()

	display := trades.SortBy(rec.DisplayTrades(), trades.ColTimestamp, false)

	data := indexData{
		Summary:      newSummaryView(sum, now),
		Rows:         buildRows(display),
		Degraded:     !st.Healthy && !st.LastAttempt.IsZero(),
		LastError:    st.LastError,
		Empty:        st.Healthy && len(snap.Trades) == 0,
		PollInterval: s.cfg.PollInterval.String(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "index.html", data); err != nil {
		s.log.Error().Err(err).Msg("render index")
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}
