package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/privacyweave/backend/internal/services"
	"github.com/privacyweave/backend/internal/utils"
)

type InquiryHandler struct {
	svc services.InquiryService
}

func NewInquiryHandler(svc services.InquiryService) *InquiryHandler {
	return &InquiryHandler{svc: svc}
}

type InquiryRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Company   string `json:"company" binding:"required"`
	Industry  string `json:"industry" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

func (h *InquiryHandler) Submit(c *gin.Context) {
	var req InquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "InquiryHandler.Submit", "invalid request body", err))
		return
	}

	inq, err := h.svc.Submit(c.Request.Context(), services.InquiryInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Company:   req.Company,
		Industry:  req.Industry,
		Message:   req.Message,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, inq)
}

// List is admin-only, enforced by the route group.
func (h *InquiryHandler) List(c *gin.Context) {
	rows, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
