package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mmarada/AI-portfolio/internal/marketdata"
	"github.com/mmarada/AI-portfolio/internal/models"
	"github.com/mmarada/AI-portfolio/internal/services"
)

// MarketHandler handles market data and performance history endpoints
type MarketHandler struct {
	sim        *marketdata.Simulator
	perf       *marketdata.PerformanceSimulator
	sandboxSvc *services.SandboxService
}

// NewMarketHandler creates a new MarketHandler
func NewMarketHandler(sim *marketdata.Simulator, perf *marketdata.PerformanceSimulator, sandboxSvc *services.SandboxService) *MarketHandler {
	return &MarketHandler{
		sim:        sim,
		perf:       perf,
		sandboxSvc: sandboxSvc,
	}
}

// Quotes handles GET /market/quotes?tickers=VTI,AAPL
func (h *MarketHandler) Quotes(c *gin.Context) {
	raw := c.Query("tickers")
	var tickers []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tickers = append(tickers, t)
		}
	}
	if len(tickers) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: "tickers query parameter is required",
		})
		return
	}

	quotes, err := h.sim.Quotes(c.Request.Context(), tickers)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, quotes)
}

// Performance handles GET /sessions/:id/performance
func (h *MarketHandler) Performance(c *gin.Context) {
	// Validate the session exists; history is simulated per request
	if _, err := h.sandboxSvc.Portfolio(c.Param("id")); err != nil {
		respondSessionError(c, err)
		return
	}

	points, err := h.perf.History(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"points": points})
}
