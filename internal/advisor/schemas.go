package advisor

import "google.golang.org/genai"

// Response schemas constraining the model's JSON output. Property names must
// match the json tags on the corresponding models types.

func assetSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"ticker":          {Type: genai.TypeString},
			"name":            {Type: genai.TypeString},
			"sector":          {Type: genai.TypeString},
			"allocation":      {Type: genai.TypeNumber, Description: "Percent of portfolio, 0-100"},
			"beta":            {Type: genai.TypeNumber},
			"expected_return": {Type: genai.TypeNumber, Description: "Annualized, percent"},
			"volatility":      {Type: genai.TypeNumber, Description: "Annualized, percent"},
			"rationale":       {Type: genai.TypeString},
		},
		Required: []string{"ticker", "name", "sector", "allocation", "beta", "expected_return", "volatility", "rationale"},
	}
}

func metricsSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"expected_return": {Type: genai.TypeNumber},
			"volatility":      {Type: genai.TypeNumber},
			"weighted_beta":   {Type: genai.TypeNumber},
			"risk_score":      {Type: genai.TypeNumber, Description: "1 to 10"},
		},
		Required: []string{"expected_return", "volatility", "weighted_beta", "risk_score"},
	}
}

func portfolioSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":  {Type: genai.TypeString},
			"assets": {Type: genai.TypeArray, Items: assetSchema()},
			"strategy": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"summary":  {Type: genai.TypeString},
					"measures": {Type: genai.TypeString},
					"outlook":  {Type: genai.TypeString},
					"metrics":  metricsSchema(),
					"benchmarks": {
						Type: genai.TypeArray,
						Items: &genai.Schema{
							Type: genai.TypeObject,
							Properties: map[string]*genai.Schema{
								"name":            {Type: genai.TypeString},
								"expected_return": {Type: genai.TypeNumber},
								"volatility":      {Type: genai.TypeNumber},
							},
							Required: []string{"name", "expected_return", "volatility"},
						},
					},
				},
				Required: []string{"summary", "measures", "outlook", "metrics", "benchmarks"},
			},
		},
		Required: []string{"title", "assets", "strategy"},
	}
}

func suggestionSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"primary":      portfolioSchema(),
			"alternatives": {Type: genai.TypeArray, Items: portfolioSchema()},
		},
		Required: []string{"primary", "alternatives"},
	}
}

func diversificationSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"suggestions": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"ticker":    {Type: genai.TypeString},
						"name":      {Type: genai.TypeString},
						"sector":    {Type: genai.TypeString},
						"rationale": {Type: genai.TypeString},
					},
					Required: []string{"ticker", "name", "sector", "rationale"},
				},
			},
		},
		Required: []string{"suggestions"},
	}
}

func analyticsSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"value_at_risk": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"confidence":   {Type: genai.TypeNumber},
					"horizon_days": {Type: genai.TypeInteger},
					"percent":      {Type: genai.TypeNumber},
					"narrative":    {Type: genai.TypeString},
				},
				Required: []string{"confidence", "horizon_days", "percent", "narrative"},
			},
			"stress_scenarios": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name":           {Type: genai.TypeString},
						"description":    {Type: genai.TypeString},
						"impact_percent": {Type: genai.TypeNumber},
					},
					Required: []string{"name", "description", "impact_percent"},
				},
			},
			"tickers": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"correlation_matrix": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeNumber}},
			},
		},
		Required: []string{"value_at_risk", "stress_scenarios", "tickers", "correlation_matrix"},
	}
}

func taxLossSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"candidates": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"ticker":              {Type: genai.TypeString},
						"unrealized_loss_pct": {Type: genai.TypeNumber},
						"replacement":         {Type: genai.TypeString},
						"rationale":           {Type: genai.TypeString},
					},
					Required: []string{"ticker", "unrealized_loss_pct", "replacement", "rationale"},
				},
			},
		},
		Required: []string{"candidates"},
	}
}

func optimizationSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"allocations": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"ticker":     {Type: genai.TypeString},
						"allocation": {Type: genai.TypeNumber},
					},
					Required: []string{"ticker", "allocation"},
				},
			},
		},
		Required: []string{"allocations"},
	}
}
