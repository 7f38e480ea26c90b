package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmarada/AI-portfolio/internal/models"
	"github.com/mmarada/AI-portfolio/internal/services"
)

// SandboxHandler handles sandbox session endpoints
type SandboxHandler struct {
	sandboxSvc *services.SandboxService
	refresher  *services.MarketRefresher
}

// NewSandboxHandler creates a new SandboxHandler
func NewSandboxHandler(sandboxSvc *services.SandboxService, refresher *services.MarketRefresher) *SandboxHandler {
	return &SandboxHandler{
		sandboxSvc: sandboxSvc,
		refresher:  refresher,
	}
}

// CreateSession handles POST /sessions
func (h *SandboxHandler) CreateSession(c *gin.Context) {
	var req models.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}

	h.openSession(c, req.Portfolio)
}

// LinkAccount handles POST /brokerage/link
func (h *SandboxHandler) LinkAccount(c *gin.Context) {
	h.openSession(c, services.LinkedAccountPortfolio())
}

func (h *SandboxHandler) openSession(c *gin.Context, base models.PortfolioDetails) {
	id, portfolio := h.sandboxSvc.CreateSession(base)

	// The refresher outlives this request; it is bound to the session, not
	// the request context.
	if err := h.refresher.Start(context.Background(), id); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, models.SessionResponse{
		SessionID: id,
		Portfolio: portfolio,
	})
}

// GetPortfolio handles GET /sessions/:id/portfolio
func (h *SandboxHandler) GetPortfolio(c *gin.Context) {
	portfolio, err := h.sandboxSvc.Portfolio(c.Param("id"))
	if err != nil {
		respondSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, portfolio)
}

// AddAsset handles POST /sessions/:id/assets
func (h *SandboxHandler) AddAsset(c *gin.Context) {
	var req models.AddAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}

	portfolio, err := h.sandboxSvc.AddAsset(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSessionNotFound):
			respondSessionError(c, err)
		case errors.Is(err, services.ErrDuplicateTicker):
			c.JSON(http.StatusConflict, models.ErrorResponse{
				Error:   "conflict",
				Message: err.Error(),
			})
		case errors.Is(err, services.ErrEmptyTicker),
			errors.Is(err, services.ErrInvalidAllocation),
			errors.Is(err, services.ErrAllocationExhausted):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "bad_request",
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

	c.JSON(http.StatusOK, portfolio)
}

// RemoveAsset handles DELETE /sessions/:id/assets/:ticker
func (h *SandboxHandler) RemoveAsset(c *gin.Context) {
	portfolio, err := h.sandboxSvc.RemoveAsset(c.Param("id"), c.Param("ticker"))
	if err != nil {
		if errors.Is(err, services.ErrAssetNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:   "not_found",
				Message: err.Error(),
			})
			return
		}
		respondSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, portfolio)
}

// DeleteSession handles DELETE /sessions/:id
func (h *SandboxHandler) DeleteSession(c *gin.Context) {
	if err := h.sandboxSvc.DeleteSession(c.Param("id")); err != nil {
		respondSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "session deleted"})
}

// respondSessionError maps session lookup failures onto HTTP statuses
func respondSessionError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: "session not found",
		})
		return
	}
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	})
}
