package advisor

import (
	"fmt"
	"strings"

	"github.com/mmarada/AI-portfolio/internal/models"
)

// buildSuggestionPrompt creates a prompt for a full portfolio suggestion
func buildSuggestionPrompt(req models.SuggestionRequest) string {
	return fmt.Sprintf(`You are an investment advisor constructing portfolios for a retail investor.

Investor profile:
- Investment amount: $%.2f
- Risk tolerance: %s
- Time horizon: %d years
- Goal: %s

Construct one primary portfolio best suited to this profile, plus exactly two
alternative portfolios with meaningfully different risk/return trade-offs.
Each portfolio needs 4 to 8 assets whose allocations sum to 100, a strategy
summary, risk measures, an outlook, aggregate metrics consistent with the
holdings, and 2 to 3 named benchmarks for comparison.`,
		req.Amount, req.RiskTolerance, req.HorizonYears, req.Goal)
}

// buildDiversificationPrompt creates a prompt for diversification suggestions
func buildDiversificationPrompt(portfolio models.PortfolioDetails) string {
	return fmt.Sprintf(`The investor currently holds the portfolio below.

%s
Recommend exactly 3 tickers not already held that would most improve its
diversification across sectors and risk factors. Explain each briefly.`,
		formatHoldings(portfolio.Assets))
}

// buildAnalyticsPrompt creates a prompt for advanced risk analytics
func buildAnalyticsPrompt(portfolio models.PortfolioDetails) string {
	return fmt.Sprintf(`Perform a risk analysis of the portfolio below.

%s
Provide:
1. A 1-day value-at-risk estimate at 95%% confidence, as a percent of
   portfolio value, with a short narrative.
2. Exactly 3 named stress scenarios (for example a rate shock, a sector
   drawdown, a broad market correction) with estimated signed impact in
   percent.
3. A pairwise correlation matrix over the portfolio's tickers, listing the
   tickers in row/column order.`,
		formatHoldings(portfolio.Assets))
}

// buildTaxLossPrompt creates a prompt for tax-loss harvesting suggestions
func buildTaxLossPrompt(losers []models.Asset) string {
	var sb strings.Builder
	sb.WriteString("The following holdings show an unrealized loss:\n\n")
	for _, a := range losers {
		loss := 0.0
		if a.PurchasePrice != nil && a.MarketData != nil && *a.PurchasePrice > 0 {
			loss = (a.MarketData.CurrentPrice - *a.PurchasePrice) / *a.PurchasePrice * 100
		}
		sb.WriteString(fmt.Sprintf("- %s (%s): %.2f%% unrealized\n", a.Ticker, a.Sector, loss))
	}
	sb.WriteString(`
Suggest up to 3 tax-loss harvesting moves. For each, name the ticker to sell,
its unrealized loss in percent, a replacement ticker that preserves the
portfolio's exposure without triggering a wash sale, and a short rationale.`)
	return sb.String()
}

// buildOptimizationPrompt creates a prompt for allocation optimization
func buildOptimizationPrompt(assets []models.Asset, goal models.OptimizationGoal) string {
	objective := "minimize overall portfolio risk"
	if goal == models.OptimizeMaxReturn {
		objective = "maximize expected return"
	}
	return fmt.Sprintf(`Re-weight the portfolio below to %s.

%s
Rules:
- Use only the tickers already present; do not add or remove any.
- Every ticker must receive an allocation greater than 0.
- Allocations must sum to 100.`,
		objective, formatHoldings(assets))
}

// formatHoldings renders an asset list for inclusion in a prompt
func formatHoldings(assets []models.Asset) string {
	var sb strings.Builder
	sb.WriteString("Holdings:\n")
	for _, a := range assets {
		sb.WriteString(fmt.Sprintf("- %s (%s, %s): %.2f%% allocation, beta %.2f, expected return %.2f%%, volatility %.2f%%\n",
			a.Ticker, a.Name, a.Sector, a.Allocation, a.Beta, a.ExpectedReturn, a.Volatility))
	}
	return sb.String()
}
