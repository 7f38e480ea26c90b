package services

import (
	"context"
	"errors"
	"time"

	"github.com/mmarada/AI-portfolio/internal/marketdata"
	log "github.com/sirupsen/logrus"
)

// DefaultRefreshInterval is how often the active portfolio's quotes refresh
const DefaultRefreshInterval = 60 * time.Second

// MarketRefresher periodically re-fetches market data for a session's blended
// ticker set. Each refresh cycle is independent; the last completed response
// wins. A failed fetch is logged and the previous quotes stay visible.
type MarketRefresher struct {
	sandbox  *SandboxService
	sim      *marketdata.Simulator
	interval time.Duration
}

// NewMarketRefresher creates a MarketRefresher
func NewMarketRefresher(sandbox *SandboxService, sim *marketdata.Simulator, interval time.Duration) *MarketRefresher {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &MarketRefresher{
		sandbox:  sandbox,
		sim:      sim,
		interval: interval,
	}
}

// Start begins the refresh loop for a session and registers its stop function
// with the session, cancelling any previous loop. The loop ends when the
// session is deleted, replaced, or the parent context is cancelled.
func (r *MarketRefresher) Start(ctx context.Context, sessionID string) error {
	ctx, cancel := context.WithCancel(ctx)
	if err := r.sandbox.SetRefreshStop(sessionID, cancel); err != nil {
		cancel()
		return err
	}

	go r.loop(ctx, sessionID)
	return nil
}

func (r *MarketRefresher) loop(ctx context.Context, sessionID string) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if done := r.refresh(ctx, sessionID); done {
				return
			}
		}
	}
}

// refresh runs one cycle. It reports true when the session no longer exists
// and the loop should end.
func (r *MarketRefresher) refresh(ctx context.Context, sessionID string) bool {
	tickers, err := r.sandbox.Tickers(sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return true
		}
		log.Warnf("market refresh skipped for session %s: %v", sessionID, err)
		return false
	}
	if len(tickers) == 0 {
		return false
	}

	quotes, err := r.sim.Quotes(ctx, tickers)
	if err != nil {
		// Stale-on-error: keep showing the previous quotes
		log.Warnf("market refresh failed for session %s: %v", sessionID, err)
		return false
	}

	if err := r.sandbox.UpdateMarketData(sessionID, quotes); err != nil {
		return errors.Is(err, ErrSessionNotFound)
	}

	log.Debugf("refreshed %d quotes for session %s", len(quotes), sessionID)
	return false
}
