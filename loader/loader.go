// Package loader polls the bot's trade log and holds the current snapshot.
// The loader fully owns the failure path: a bad fetch or payload keeps the
// last good snapshot in place and marks the status degraded, and the next
// successful poll resets it. Nothing here is fatal.
package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/Millionaireguardian/polymarket-dashboard/trades"
)

// Config configures the loader.
type Config struct {
	// Source is an http(s) URL or a local file path holding the JSON
	// trade log array.
	Source string

	// PollInterval is the time between automatic refreshes.
	PollInterval time.Duration

	// HTTPTimeout bounds a single fetch. Zero means 15 seconds.
	HTTPTimeout time.Duration
}

// Snapshot is one immutable load of the trade log. The Trades slice must
// not be modified by consumers; derive copies instead.
type Snapshot struct {
	ID       string // ULID, time-sortable across snapshots
	Trades   []trades.Trade
	LoadedAt time.Time
}

// Status is the connectivity view surfaced to the dashboard.
type Status struct {
	Healthy     bool      `json:"healthy"`
	LastError   string    `json:"lastError,omitempty"`
	LastSuccess time.Time `json:"lastSuccess"`
	LastAttempt time.Time `json:"lastAttempt"`
	SnapshotID  string    `json:"snapshotId,omitempty"`
	TradeCount  int       `json:"tradeCount"`
}

// Loader periodically fetches the trade log and retains the latest good
// snapshot. One goroutine (Run) performs the writes; any number of readers
// may call Snapshot and Status concurrently.
type Loader struct {
	cfg    Config
	log    zerolog.Logger
	client *http.Client

	mu     sync.RWMutex
	snap   Snapshot
	status Status

	inflight atomic.Bool
}

// New creates a Loader. Run must be started (or Refresh called) before
// Snapshot returns anything useful.
func New(cfg Config, log zerolog.Logger) *Loader {
	timeout := cfg.HTTPTimeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Loader{
		cfg:    cfg,
		log:    log.With().Str("component", "loader").Logger(),
		client: &http.Client{Timeout: timeout},
	}
}

// Run performs an immediate refresh and then polls on the configured
// interval until ctx is cancelled.
func (l *Loader) Run(ctx context.Context) {
	l.Refresh(ctx)

	ticker := time.NewTicker(l.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Refresh(ctx)
		}
	}
}

// Refresh fetches the source once. It reports false without doing anything
// when another fetch is still in flight, so a manual trigger cannot overlap
// a poll tick. Errors never escape: they are absorbed into the status.
func (l *Loader) Refresh(ctx context.Context) bool {
	if !l.inflight.CompareAndSwap(false, true) {
		l.log.Debug().Msg("refresh skipped, previous fetch still in flight")
		return false
	}
	defer l.inflight.Store(false)

	attempt := ulid.Make().String()
	now := time.Now()

	data, err := l.fetch(ctx, attempt)
	if err != nil {
		l.mu.Lock()
		l.status.Healthy = false
		l.status.LastError = err.Error()
		l.status.LastAttempt = now
		l.mu.Unlock()

		l.log.Warn().Err(err).Str("source", l.cfg.Source).Msg("trade log fetch failed, keeping last snapshot")
		return true
	}

	ts := trades.DecodePayload(data)
	snap := Snapshot{ID: attempt, Trades: ts, LoadedAt: now}

	l.mu.Lock()
	l.snap = snap
	l.status = Status{
		Healthy:     true,
		LastSuccess: now,
		LastAttempt: now,
		SnapshotID:  snap.ID,
		TradeCount:  len(ts),
	}
	l.mu.Unlock()

	l.log.Info().Str("snapshot", snap.ID).Int("trades", len(ts)).Msg("trade log refreshed")
	return true
}

// Snapshot returns the latest good snapshot. It is the zero value until
// the first successful refresh.
func (l *Loader) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snap
}

// Status returns the current connectivity view.
func (l *Loader) Status() Status {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.status
}

func (l *Loader) fetch(ctx context.Context, attempt string) ([]byte, error) {
	if strings.HasPrefix(l.cfg.Source, "http://") || strings.HasPrefix(l.cfg.Source, "https://") {
		return l.fetchHTTP(ctx, attempt)
	}

	data, err := os.ReadFile(l.cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("read trade log: %w", err)
	}
	return data, nil
}

// fetchHTTP requests the source with cache-busting query parameters and
// no-cache headers so every poll observes fresh content even through
// intermediaries that ignore one mechanism or the other.
func (l *Loader) fetchHTTP(ctx context.Context, attempt string) ([]byte, error) {
	sep := "?"
	if strings.Contains(l.cfg.Source, "?") {
		sep = "&"
	}
	url := l.cfg.Source + sep + "t=" + strconv.FormatInt(time.Now().UnixMilli(), 10) + "&v=" + attempt

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch trade log: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch trade log: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return data, nil
}
