package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mmarada/AI-portfolio/internal/models"
)

var (
	ErrInvalidAmount        = errors.New("amount must be greater than zero")
	ErrInvalidRiskTolerance = errors.New("invalid risk tolerance")
	ErrInvalidHorizon       = errors.New("horizon must be at least one year")
	ErrNoUnrealizedLosses   = errors.New("no holdings show an unrealized loss")
	ErrInvalidGoal          = errors.New("invalid optimization goal")

	ValidRiskTolerances = map[models.RiskTolerance]struct{}{
		models.RiskToleranceConservative: {},
		models.RiskToleranceBalanced:     {},
		models.RiskToleranceAggressive:   {},
	}
)

// Advisor is the external AI boundary as the services layer sees it
type Advisor interface {
	SuggestPortfolio(ctx context.Context, req models.SuggestionRequest) (*models.PortfolioSuggestion, error)
	SuggestDiversification(ctx context.Context, portfolio models.PortfolioDetails) ([]models.DiversificationIdea, error)
	AdvancedAnalytics(ctx context.Context, portfolio models.PortfolioDetails) (*models.AdvancedAnalytics, error)
	SuggestTaxLossHarvesting(ctx context.Context, losers []models.Asset) ([]models.TaxLossCandidate, error)
	OptimizeAllocations(ctx context.Context, assets []models.Asset, goal models.OptimizationGoal) ([]models.Asset, error)
}

// AdvisorService orchestrates AI requests around sandbox state
type AdvisorService struct {
	advisor Advisor
	sandbox *SandboxService
}

// NewAdvisorService creates a new AdvisorService
func NewAdvisorService(advisor Advisor, sandbox *SandboxService) *AdvisorService {
	return &AdvisorService{
		advisor: advisor,
		sandbox: sandbox,
	}
}

// Suggest validates the request and asks the advisor for a portfolio
// suggestion (primary plus two alternatives).
func (s *AdvisorService) Suggest(ctx context.Context, req models.SuggestionRequest) (*models.PortfolioSuggestion, error) {
	defer TrackTime("Suggest", time.Now())

	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if _, ok := ValidRiskTolerances[req.RiskTolerance]; !ok {
		return nil, ErrInvalidRiskTolerance
	}
	if req.HorizonYears < 1 {
		return nil, ErrInvalidHorizon
	}

	suggestion, err := s.advisor.SuggestPortfolio(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("portfolio suggestion failed: %w", err)
	}
	return suggestion, nil
}

// Diversify asks the advisor for three diversification ideas for the
// session's blended portfolio.
func (s *AdvisorService) Diversify(ctx context.Context, sessionID string) ([]models.DiversificationIdea, error) {
	defer TrackTime("Diversify", time.Now())

	portfolio, err := s.sandbox.Portfolio(sessionID)
	if err != nil {
		return nil, err
	}

	ideas, err := s.advisor.SuggestDiversification(ctx, portfolio)
	if err != nil {
		return nil, fmt.Errorf("diversification suggestions failed: %w", err)
	}
	return ideas, nil
}

// Analytics asks the advisor for risk analytics over the session's blended
// portfolio.
func (s *AdvisorService) Analytics(ctx context.Context, sessionID string) (*models.AdvancedAnalytics, error) {
	defer TrackTime("Analytics", time.Now())

	portfolio, err := s.sandbox.Portfolio(sessionID)
	if err != nil {
		return nil, err
	}

	analytics, err := s.advisor.AdvancedAnalytics(ctx, portfolio)
	if err != nil {
		return nil, fmt.Errorf("advanced analytics failed: %w", err)
	}
	return analytics, nil
}

// TaxLoss asks the advisor for harvesting candidates. It only fires when at
// least one holding shows an unrealized loss against its purchase price.
func (s *AdvisorService) TaxLoss(ctx context.Context, sessionID string) ([]models.TaxLossCandidate, error) {
	defer TrackTime("TaxLoss", time.Now())

	portfolio, err := s.sandbox.Portfolio(sessionID)
	if err != nil {
		return nil, err
	}

	var losers []models.Asset
	for _, a := range portfolio.Assets {
		if a.PurchasePrice != nil && a.MarketData != nil && a.MarketData.CurrentPrice < *a.PurchasePrice {
			losers = append(losers, a)
		}
	}
	if len(losers) == 0 {
		return nil, ErrNoUnrealizedLosses
	}

	candidates, err := s.advisor.SuggestTaxLossHarvesting(ctx, losers)
	if err != nil {
		return nil, fmt.Errorf("tax-loss harvesting suggestions failed: %w", err)
	}
	return candidates, nil
}

// Optimize re-weights the session's blended assets through the advisor and
// installs the result as the session's new base, collapsing any user
// additions into it.
func (s *AdvisorService) Optimize(ctx context.Context, sessionID string, goal models.OptimizationGoal) (models.PortfolioDetails, error) {
	defer TrackTime("Optimize", time.Now())

	if goal != models.OptimizeMinRisk && goal != models.OptimizeMaxReturn {
		return models.PortfolioDetails{}, ErrInvalidGoal
	}

	portfolio, err := s.sandbox.Portfolio(sessionID)
	if err != nil {
		return models.PortfolioDetails{}, err
	}

	optimized, err := s.advisor.OptimizeAllocations(ctx, portfolio.Assets, goal)
	if err != nil {
		return models.PortfolioDetails{}, fmt.Errorf("allocation optimization failed: %w", err)
	}

	return s.sandbox.ApplyOptimized(sessionID, optimized)
}
