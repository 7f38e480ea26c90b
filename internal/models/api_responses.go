package models

// SuggestionRequest represents the request body for a portfolio suggestion
type SuggestionRequest struct {
	Amount        float64       `json:"amount" binding:"required"`
	RiskTolerance RiskTolerance `json:"risk_tolerance" binding:"required"`
	HorizonYears  int           `json:"horizon_years" binding:"required"`
	Goal          string        `json:"goal" binding:"required"`
}

// CreateSessionRequest represents the request body for opening a sandbox session
type CreateSessionRequest struct {
	Portfolio PortfolioDetails `json:"portfolio" binding:"required"`
}

// AddAssetRequest represents the request body for adding a user asset to a sandbox
type AddAssetRequest struct {
	Ticker     string  `json:"ticker"`
	Allocation float64 `json:"allocation"`
}

// OptimizeRequest represents the request body for allocation optimization
type OptimizeRequest struct {
	Goal OptimizationGoal `json:"goal" binding:"required"`
}

// SessionResponse pairs a session ID with the current blended portfolio view
type SessionResponse struct {
	SessionID string           `json:"session_id"`
	Portfolio PortfolioDetails `json:"portfolio"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
