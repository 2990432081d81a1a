package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/privacyweave/backend/internal/services"
	"github.com/privacyweave/backend/internal/utils"
)

type ListingHandler struct {
	svc services.ListingService
}

func NewListingHandler(svc services.ListingService) *ListingHandler {
	return &ListingHandler{svc: svc}
}

// ListActive serves the public careers page: active listings only.
func (h *ListingHandler) ListActive(c *gin.Context) {
	rows, err := h.svc.ListActive(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *ListingHandler) Get(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	l, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

type ListingRequest struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description" binding:"required"`
	Requirements string `json:"requirements"`
	Type         string `json:"type"`
	Location     string `json:"location"`
	Experience   string `json:"experience"`
	IsActive     *bool  `json:"is_active"`
}

// Create is admin-only, enforced by the route group.
func (h *ListingHandler) Create(c *gin.Context) {
	var req ListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ListingHandler.Create", "invalid request body", err))
		return
	}

	l, err := h.svc.Create(c.Request.Context(), services.ListingInput{
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
		Type:         req.Type,
		Location:     req.Location,
		Experience:   req.Experience,
		IsActive:     req.IsActive,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, l)
}
