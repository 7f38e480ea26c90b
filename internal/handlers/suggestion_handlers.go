package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmarada/AI-portfolio/internal/advisor"
	"github.com/mmarada/AI-portfolio/internal/models"
	"github.com/mmarada/AI-portfolio/internal/services"
)

// SuggestionHandler handles portfolio suggestion endpoints
type SuggestionHandler struct {
	advisorSvc *services.AdvisorService
}

// NewSuggestionHandler creates a new SuggestionHandler
func NewSuggestionHandler(advisorSvc *services.AdvisorService) *SuggestionHandler {
	return &SuggestionHandler{
		advisorSvc: advisorSvc,
	}
}

// Suggest handles POST /suggestions
func (h *SuggestionHandler) Suggest(c *gin.Context) {
	var req models.SuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}

	suggestion, err := h.advisorSvc.Suggest(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidAmount),
			errors.Is(err, services.ErrInvalidRiskTolerance),
			errors.Is(err, services.ErrInvalidHorizon):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "bad_request",
				Message: err.Error(),
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
		return
	}

	c.JSON(http.StatusOK, suggestion)
}
