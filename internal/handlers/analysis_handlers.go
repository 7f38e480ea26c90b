package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmarada/AI-portfolio/internal/advisor"
	"github.com/mmarada/AI-portfolio/internal/models"
	"github.com/mmarada/AI-portfolio/internal/services"
)

// AnalysisHandler handles the AI analysis endpoints for a session
type AnalysisHandler struct {
	advisorSvc *services.AdvisorService
}

// NewAnalysisHandler creates a new AnalysisHandler
func NewAnalysisHandler(advisorSvc *services.AdvisorService) *AnalysisHandler {
	return &AnalysisHandler{
		advisorSvc: advisorSvc,
	}
}

// Diversification handles GET /sessions/:id/diversification
func (h *AnalysisHandler) Diversification(c *gin.Context) {
	ideas, err := h.advisorSvc.Diversify(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondAnalysisError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": ideas})
}

// Analytics handles GET /sessions/:id/analytics
func (h *AnalysisHandler) Analytics(c *gin.Context) {
	analytics, err := h.advisorSvc.Analytics(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondAnalysisError(c, err)
		return
	}

	c.JSON(http.StatusOK, analytics)
}

// TaxLoss handles GET /sessions/:id/tax-loss
func (h *AnalysisHandler) TaxLoss(c *gin.Context) {
	candidates, err := h.advisorSvc.TaxLoss(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrNoUnrealizedLosses) {
			c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
				Error:   "no_losses",
				Message: err.Error(),
			})
			return
		}
		respondAnalysisError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"candidates": candidates})
}

// Optimize handles POST /sessions/:id/optimize
func (h *AnalysisHandler) Optimize(c *gin.Context) {
	var req models.OptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}

	portfolio, err := h.advisorSvc.Optimize(c.Request.Context(), c.Param("id"), req.Goal)
	if err != nil {
		if errors.Is(err, services.ErrInvalidGoal) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "bad_request",
				Message: err.Error(),
			})
			return
		}
		respondAnalysisError(c, err)
		return
	}

	c.JSON(http.StatusOK, portfolio)
}

// respondAnalysisError maps advisor and session failures onto HTTP statuses.
// Advisor failures are never retried here; the user retries the action.
func respondAnalysisError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: "session not found",
		})
	case errors.Is(err, advisor.ErrInvalidResponse),
		errors.Is(err, advisor.ErrIncompleteResponse):
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "advisor_error",
			Message: err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
	}
}
