package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/privacyweave/backend/internal/models"
	"github.com/privacyweave/backend/internal/services"
	"github.com/privacyweave/backend/internal/utils"
)

type ChatHandler struct {
	svc services.ChatService
}

func NewChatHandler(svc services.ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

type ChatMessageRequest struct {
	// SessionID correlates widget messages; the server mints one for the
	// first message if the client didn't.
	SessionID            string          `json:"session_id"`
	Content              string          `json:"content" binding:"required"`
	UserName             string          `json:"user_name"`
	UserEmail            string          `json:"user_email"`
	AttachmentURL        *string         `json:"attachment_url"`
	AttachmentType       *string         `json:"attachment_type"`
	IsApplicationRequest bool            `json:"is_application_request"`
	Metadata             json.RawMessage `json:"metadata"`
}

type ChatMessageResponse struct {
	SessionID     string              `json:"session_id"`
	Reply         *models.ChatMessage `json:"reply"`
	ApplicationID int                 `json:"application_id,omitempty"`
}

func (h *ChatHandler) PostMessage(c *gin.Context) {
	var req ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ChatHandler.PostMessage", "invalid request body", err))
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	res, err := h.svc.HandleMessage(c.Request.Context(), services.IncomingMessage{
		SessionID:            req.SessionID,
		Content:              req.Content,
		UserName:             req.UserName,
		UserEmail:            req.UserEmail,
		AttachmentURL:        req.AttachmentURL,
		AttachmentType:       req.AttachmentType,
		IsApplicationRequest: req.IsApplicationRequest,
		Metadata:             req.Metadata,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ChatMessageResponse{
		SessionID:     res.Conversation.SessionID,
		Reply:         res.BotMessage,
		ApplicationID: res.ApplicationID,
	})
}

func (h *ChatHandler) Transcript(c *gin.Context) {
	sessionID := c.Param("session_id")

	conv, msgs, err := h.svc.Transcript(c.Request.Context(), sessionID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"conversation": conv,
		"messages":     msgs,
	})
}
