package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mmarada/AI-portfolio/internal/marketdata"
	"github.com/mmarada/AI-portfolio/internal/models"
)

var (
	ErrSessionNotFound     = errors.New("session not found")
	ErrEmptyTicker         = errors.New("ticker is required")
	ErrInvalidAllocation   = errors.New("allocation must be greater than 0 and less than 100")
	ErrDuplicateTicker     = errors.New("ticker is already present in the portfolio")
	ErrAllocationExhausted = errors.New("combined user-added allocation must stay below 100")
	ErrAssetNotFound       = errors.New("asset not found among user additions")
)

// SandboxSession is one user's editable overlay on a base portfolio. The base
// comes from an AI suggestion or the simulated brokerage link; user additions
// are kept separately in insertion order and blended on read.
type SandboxSession struct {
	ID         string
	Base       models.PortfolioDetails
	UserAssets []models.Asset
	CreatedAt  time.Time
	UpdatedAt  time.Time

	stopRefresh func()
}

// SandboxService owns all sandbox sessions for the process. Sessions live in
// memory only and disappear on restart.
type SandboxService struct {
	mu         sync.RWMutex
	sessions   map[string]*SandboxSession
	financials *marketdata.FinancialsGenerator
}

// NewSandboxService creates a new SandboxService
func NewSandboxService(financials *marketdata.FinancialsGenerator) *SandboxService {
	return &SandboxService{
		sessions:   make(map[string]*SandboxSession),
		financials: financials,
	}
}

// CreateSession opens a sandbox over the given base portfolio and returns the
// new session ID with the initial blended view.
func (s *SandboxService) CreateSession(base models.PortfolioDetails) (string, models.PortfolioDetails) {
	now := time.Now()
	session := &SandboxSession{
		ID:        uuid.NewString(),
		Base:      base,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return session.ID, BlendPortfolio(base, nil)
}

// Portfolio returns the blended view of a session
func (s *SandboxService) Portfolio(id string) (models.PortfolioDetails, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, exists := s.sessions[id]
	if !exists {
		return models.PortfolioDetails{}, ErrSessionNotFound
	}
	return BlendPortfolio(session.Base, session.UserAssets), nil
}

// Tickers returns the blended ticker list of a session
func (s *SandboxService) Tickers(id string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, exists := s.sessions[id]
	if !exists {
		return nil, ErrSessionNotFound
	}

	tickers := make([]string, 0, len(session.Base.Assets)+len(session.UserAssets))
	for _, a := range session.Base.Assets {
		tickers = append(tickers, a.Ticker)
	}
	for _, a := range session.UserAssets {
		tickers = append(tickers, a.Ticker)
	}
	return tickers, nil
}

// AddAsset validates and adds a user asset to the session, then returns the
// new blended view. Validation happens before the (slow) financials fetch so
// bad input is rejected immediately.
func (s *SandboxService) AddAsset(ctx context.Context, id string, req models.AddAssetRequest) (models.PortfolioDetails, error) {
	ticker := strings.ToUpper(strings.TrimSpace(req.Ticker))
	if ticker == "" {
		return models.PortfolioDetails{}, ErrEmptyTicker
	}
	if req.Allocation <= 0 || req.Allocation >= 100 {
		return models.PortfolioDetails{}, ErrInvalidAllocation
	}

	if err := s.validateAdd(id, ticker, req.Allocation); err != nil {
		return models.PortfolioDetails{}, err
	}

	generated, err := s.financials.Financials(ctx, ticker)
	if err != nil {
		return models.PortfolioDetails{}, fmt.Errorf("failed to generate financials for %s: %w", ticker, err)
	}

	asset := *generated
	asset.Allocation = req.Allocation
	asset.UserAdded = true
	if asset.MarketData != nil {
		price := asset.MarketData.CurrentPrice
		asset.PurchasePrice = &price
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, exists := s.sessions[id]
	if !exists {
		return models.PortfolioDetails{}, ErrSessionNotFound
	}
	session.UserAssets = append(session.UserAssets, asset)
	session.UpdatedAt = time.Now()

	return BlendPortfolio(session.Base, session.UserAssets), nil
}

// validateAdd rejects duplicates and user allocations reaching 100 before any
// asynchronous work starts. Concurrent adds can still interleave; the UI
// serializes edits and this service does not.
func (s *SandboxService) validateAdd(id, ticker string, allocation float64) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, exists := s.sessions[id]
	if !exists {
		return ErrSessionNotFound
	}

	for _, a := range session.Base.Assets {
		if strings.EqualFold(a.Ticker, ticker) {
			return ErrDuplicateTicker
		}
	}
	totalUser := 0.0
	for _, a := range session.UserAssets {
		if strings.EqualFold(a.Ticker, ticker) {
			return ErrDuplicateTicker
		}
		totalUser += a.Allocation
	}
	if totalUser+allocation >= 100 {
		return ErrAllocationExhausted
	}
	return nil
}

// RemoveAsset removes a user-added asset by ticker and returns the new
// blended view. Base assets cannot be removed.
func (s *SandboxService) RemoveAsset(id, ticker string) (models.PortfolioDetails, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, exists := s.sessions[id]
	if !exists {
		return models.PortfolioDetails{}, ErrSessionNotFound
	}

	for i, a := range session.UserAssets {
		if strings.EqualFold(a.Ticker, ticker) {
			session.UserAssets = append(session.UserAssets[:i], session.UserAssets[i+1:]...)
			session.UpdatedAt = time.Now()
			return BlendPortfolio(session.Base, session.UserAssets), nil
		}
	}
	return models.PortfolioDetails{}, ErrAssetNotFound
}

// ApplyOptimized replaces the session's base with the optimized asset list
// and clears the user additions. The base/user distinction collapses here:
// every optimized asset becomes base-derived, matching the dashboard's
// original behavior. Metrics are recomputed from the new allocations.
func (s *SandboxService) ApplyOptimized(id string, assets []models.Asset) (models.PortfolioDetails, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, exists := s.sessions[id]
	if !exists {
		return models.PortfolioDetails{}, ErrSessionNotFound
	}

	for i := range assets {
		assets[i].UserAdded = false
	}
	session.Base.Assets = assets
	session.Base.Strategy.Metrics = ComputeMetrics(assets)
	session.UserAssets = nil
	session.UpdatedAt = time.Now()

	return BlendPortfolio(session.Base, nil), nil
}

// UpdateMarketData writes refreshed quotes onto matching assets. Unknown
// tickers are ignored; a refresh racing a base replacement simply loses.
func (s *SandboxService) UpdateMarketData(id string, quotes map[string]models.MarketData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, exists := s.sessions[id]
	if !exists {
		return ErrSessionNotFound
	}

	apply := func(assets []models.Asset) {
		for i := range assets {
			if quote, ok := quotes[strings.ToUpper(assets[i].Ticker)]; ok {
				q := quote
				assets[i].MarketData = &q
			}
		}
	}
	apply(session.Base.Assets)
	apply(session.UserAssets)
	session.UpdatedAt = time.Now()

	return nil
}

// SetRefreshStop registers the cancel function of the session's periodic
// market refresher, stopping any previous one first.
func (s *SandboxService) SetRefreshStop(id string, stop func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, exists := s.sessions[id]
	if !exists {
		return ErrSessionNotFound
	}
	if session.stopRefresh != nil {
		session.stopRefresh()
	}
	session.stopRefresh = stop
	return nil
}

// DeleteSession tears down a session and cancels its refresher
func (s *SandboxService) DeleteSession(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, exists := s.sessions[id]
	if !exists {
		return ErrSessionNotFound
	}
	if session.stopRefresh != nil {
		session.stopRefresh()
	}
	delete(s.sessions, id)
	return nil
}
