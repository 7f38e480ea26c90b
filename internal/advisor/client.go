// Package advisor wraps the generative AI service that produces portfolio
// suggestions and analytics. The portfolio intelligence lives entirely in the
// externally hosted model; this package only builds prompts, constrains the
// output to a JSON schema and validates structural completeness.
package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/mmarada/AI-portfolio/internal/models"
)

const (
	// DefaultModel is the Gemini model used when none is configured
	DefaultModel = "gemini-3-flash-preview"

	// DefaultRateLimit is the advisor request budget in requests per second
	DefaultRateLimit = 2
)

var (
	ErrInvalidResponse    = errors.New("advisor returned an invalid response")
	ErrIncompleteResponse = errors.New("advisor returned an incomplete response")
)

// generateFunc produces the raw JSON response for a prompt constrained by a
// schema. It is the seam tests use to stub the model.
type generateFunc func(ctx context.Context, prompt string, schema *genai.Schema) (string, error)

// Client issues structured requests against the generative AI service
type Client struct {
	generate generateFunc
	model    string
	limiter  *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithModel sets the model to use
func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithRateLimit sets the request budget in requests per second
func WithRateLimit(rps float64) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewClient creates an advisor client backed by the Gemini API
func NewClient(ctx context.Context, apiKey string, opts ...ClientOption) (*Client, error) {
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	c := &Client{
		model:   DefaultModel,
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), 1),
	}
	c.generate = func(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
		config := &genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema,
		}
		result, err := genaiClient.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
		if err != nil {
			return "", fmt.Errorf("failed to generate content: %w", err)
		}
		return extractTextFromResponse(result)
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// newClientWithGenerator builds a client over a stubbed model (tests only)
func newClientWithGenerator(g generateFunc) *Client {
	return &Client{
		generate: g,
		model:    DefaultModel,
		limiter:  rate.NewLimiter(rate.Inf, 1),
	}
}

// extractTextFromResponse extracts text from a generate content response
func extractTextFromResponse(result *genai.GenerateContentResponse) (string, error) {
	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: no content generated", ErrInvalidResponse)
	}

	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return sb.String(), nil
}

func (c *Client) request(ctx context.Context, prompt string, schema *genai.Schema, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait failed: %w", err)
	}

	text, err := c.generate(ctx, prompt, schema)
	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

// SuggestPortfolio asks the model to construct a portfolio for the user's
// amount, risk tolerance, horizon and goal. The response must contain a
// primary portfolio and exactly two alternatives.
func (c *Client) SuggestPortfolio(ctx context.Context, req models.SuggestionRequest) (*models.PortfolioSuggestion, error) {
	var suggestion models.PortfolioSuggestion
	if err := c.request(ctx, buildSuggestionPrompt(req), suggestionSchema(), &suggestion); err != nil {
		return nil, err
	}

	if suggestion.Primary.Title == "" || len(suggestion.Primary.Assets) == 0 {
		return nil, fmt.Errorf("%w: missing primary portfolio", ErrIncompleteResponse)
	}
	if len(suggestion.Alternatives) != 2 {
		return nil, fmt.Errorf("%w: expected 2 alternative portfolios, got %d", ErrIncompleteResponse, len(suggestion.Alternatives))
	}

	normalizePortfolio(&suggestion.Primary)
	for i := range suggestion.Alternatives {
		normalizePortfolio(&suggestion.Alternatives[i])
	}

	return &suggestion, nil
}

// SuggestDiversification asks the model for exactly three tickers that would
// improve the portfolio's diversification.
func (c *Client) SuggestDiversification(ctx context.Context, portfolio models.PortfolioDetails) ([]models.DiversificationIdea, error) {
	var resp struct {
		Suggestions []models.DiversificationIdea `json:"suggestions"`
	}
	if err := c.request(ctx, buildDiversificationPrompt(portfolio), diversificationSchema(), &resp); err != nil {
		return nil, err
	}

	if len(resp.Suggestions) != 3 {
		return nil, fmt.Errorf("%w: expected 3 diversification suggestions, got %d", ErrIncompleteResponse, len(resp.Suggestions))
	}

	for i := range resp.Suggestions {
		resp.Suggestions[i].Ticker = strings.ToUpper(resp.Suggestions[i].Ticker)
	}
	return resp.Suggestions, nil
}

// AdvancedAnalytics asks the model for value-at-risk, three named stress
// scenarios and a pairwise correlation matrix over the portfolio's tickers.
func (c *Client) AdvancedAnalytics(ctx context.Context, portfolio models.PortfolioDetails) (*models.AdvancedAnalytics, error) {
	var analytics models.AdvancedAnalytics
	if err := c.request(ctx, buildAnalyticsPrompt(portfolio), analyticsSchema(), &analytics); err != nil {
		return nil, err
	}

	if analytics.ValueAtRisk.Percent == 0 && analytics.ValueAtRisk.Narrative == "" {
		return nil, fmt.Errorf("%w: missing value-at-risk", ErrIncompleteResponse)
	}
	if len(analytics.StressScenarios) != 3 {
		return nil, fmt.Errorf("%w: expected 3 stress scenarios, got %d", ErrIncompleteResponse, len(analytics.StressScenarios))
	}
	if len(analytics.Tickers) == 0 || len(analytics.CorrelationMatrix) != len(analytics.Tickers) {
		return nil, fmt.Errorf("%w: correlation matrix does not cover all tickers", ErrIncompleteResponse)
	}
	for _, row := range analytics.CorrelationMatrix {
		if len(row) != len(analytics.Tickers) {
			return nil, fmt.Errorf("%w: correlation matrix is not square", ErrIncompleteResponse)
		}
	}

	return &analytics, nil
}

// SuggestTaxLossHarvesting asks the model for up to three harvesting
// candidates among the given losing holdings. Callers are responsible for
// only invoking it when at least one holding shows an unrealized loss.
func (c *Client) SuggestTaxLossHarvesting(ctx context.Context, losers []models.Asset) ([]models.TaxLossCandidate, error) {
	var resp struct {
		Candidates []models.TaxLossCandidate `json:"candidates"`
	}
	if err := c.request(ctx, buildTaxLossPrompt(losers), taxLossSchema(), &resp); err != nil {
		return nil, err
	}

	if len(resp.Candidates) > 3 {
		resp.Candidates = resp.Candidates[:3]
	}
	for i := range resp.Candidates {
		resp.Candidates[i].Ticker = strings.ToUpper(resp.Candidates[i].Ticker)
	}
	return resp.Candidates, nil
}

// OptimizeAllocations asks the model to re-weight the given assets toward
// minimum risk or maximum return, constrained to the same set of tickers.
// Returned allocations are normalized to sum to 100 whenever they deviate
// from 100 by more than 1 point.
func (c *Client) OptimizeAllocations(ctx context.Context, assets []models.Asset, goal models.OptimizationGoal) ([]models.Asset, error) {
	var resp struct {
		Allocations []models.OptimizedAllocation `json:"allocations"`
	}
	if err := c.request(ctx, buildOptimizationPrompt(assets, goal), optimizationSchema(), &resp); err != nil {
		return nil, err
	}

	byTicker := make(map[string]float64, len(resp.Allocations))
	for _, a := range resp.Allocations {
		byTicker[strings.ToUpper(a.Ticker)] = a.Allocation
	}
	if len(byTicker) != len(assets) {
		return nil, fmt.Errorf("%w: optimization covered %d of %d tickers", ErrIncompleteResponse, len(byTicker), len(assets))
	}

	total := 0.0
	optimized := make([]models.Asset, len(assets))
	for i, asset := range assets {
		alloc, ok := byTicker[strings.ToUpper(asset.Ticker)]
		if !ok {
			return nil, fmt.Errorf("%w: optimization dropped ticker %s", ErrIncompleteResponse, asset.Ticker)
		}
		optimized[i] = asset
		optimized[i].Allocation = alloc
		total += alloc
	}

	if total > 0 && (total > 101 || total < 99) {
		for i := range optimized {
			optimized[i].Allocation = roundAllocation(optimized[i].Allocation / total * 100)
		}
	}

	return optimized, nil
}

func roundAllocation(v float64) float64 {
	return math.Round(v*100) / 100
}

// normalizePortfolio uppercases tickers and recomputes nothing else; metric
// consistency is the model's responsibility at this boundary.
func normalizePortfolio(p *models.PortfolioDetails) {
	for i := range p.Assets {
		p.Assets[i].Ticker = strings.ToUpper(p.Assets[i].Ticker)
	}
}
