package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/privacyweave/backend/internal/chatbot"
	"github.com/privacyweave/backend/internal/models"
	"github.com/privacyweave/backend/internal/notifier"
	"github.com/privacyweave/backend/internal/repositories"
	"github.com/privacyweave/backend/internal/utils"
)

// IncomingMessage is one visitor message from the chat widget.
// IsApplicationRequest is supplied by the client once it has collected the
// structured metadata through the apply prompt; the responder never sets it.
type IncomingMessage struct {
	SessionID            string
	Content              string
	UserName             string
	UserEmail            string
	AttachmentURL        *string
	AttachmentType       *string
	IsApplicationRequest bool
	Metadata             json.RawMessage
}

// ChatResult is everything a single chat round-trip produced.
type ChatResult struct {
	Conversation *models.ChatConversation
	UserMessage  *models.ChatMessage
	BotMessage   *models.ChatMessage
	// ApplicationID is set when the message was an application request
	// and the derived application was stored.
	ApplicationID int
}

type ChatService interface {
	HandleMessage(ctx context.Context, in IncomingMessage) (*ChatResult, error)
	Transcript(ctx context.Context, sessionID string) (*models.ChatConversation, []models.ChatMessage, error)
}

type chatService struct {
	chat         repositories.ChatRepository
	applications repositories.JobApplicationRepository
	responder    *chatbot.Responder
	notify       notifier.Notifier
	log          *logrus.Logger
}

func NewChatService(
	chat repositories.ChatRepository,
	applications repositories.JobApplicationRepository,
	responder *chatbot.Responder,
	notify notifier.Notifier,
	log *logrus.Logger,
) ChatService {
	return &chatService{
		chat:         chat,
		applications: applications,
		responder:    responder,
		notify:       notify,
		log:          log,
	}
}

func (s *chatService) HandleMessage(ctx context.Context, in IncomingMessage) (*ChatResult, error) {
	const op = "ChatService.HandleMessage"

	if in.SessionID == "" || in.Content == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "session_id and content are required", nil)
	}

	conv, err := s.getOrCreateConversation(ctx, in)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to resolve conversation", err)
	}

	userMsg := &models.ChatMessage{
		ConversationID:       conv.ID,
		Sender:               models.SenderUser,
		Content:              in.Content,
		AttachmentURL:        in.AttachmentURL,
		AttachmentType:       in.AttachmentType,
		IsApplicationRequest: in.IsApplicationRequest,
		Metadata:             datatypes.JSON(in.Metadata),
	}
	if err := s.chat.CreateMessage(ctx, userMsg); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to store message", err)
	}

	reply := s.responder.Respond(ctx, in.Content)

	botMsg := &models.ChatMessage{
		ConversationID: conv.ID,
		Sender:         models.SenderBot,
		Content:        reply.Text,
	}
	if err := s.chat.CreateMessage(ctx, botMsg); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to store bot reply", err)
	}

	if err := s.touchConversation(ctx, conv, in, botMsg.Timestamp); err != nil {
		s.log.WithError(err).WithField("conversation_id", conv.ID).Warn("conversation update failed")
	}

	result := &ChatResult{Conversation: conv, UserMessage: userMsg, BotMessage: botMsg}

	// Filing the derived application is strictly best-effort: the visitor
	// gets the bot reply even if this write fails.
	if in.IsApplicationRequest {
		if appID, err := s.fileApplication(ctx, userMsg, conv); err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{
				"conversation_id": conv.ID,
				"message_id":      userMsg.ID,
			}).Error("failed to file application from chat")
		} else {
			result.ApplicationID = appID
		}
	}
	return result, nil
}

func (s *chatService) Transcript(ctx context.Context, sessionID string) (*models.ChatConversation, []models.ChatMessage, error) {
	const op = "ChatService.Transcript"

	if sessionID == "" {
		return nil, nil, utils.E(utils.CodeInvalidArgument, op, "session_id is required", nil)
	}

	conv, err := s.chat.GetConversationBySessionID(ctx, sessionID)
	if errors.Is(err, utils.ErrNotFound) {
		return nil, nil, utils.E(utils.CodeNotFound, op, "conversation not found", err)
	}
	if err != nil {
		return nil, nil, utils.E(utils.CodeInternal, op, "failed to get conversation", err)
	}

	msgs, err := s.chat.ListMessages(ctx, conv.ID)
	if err != nil {
		return nil, nil, utils.E(utils.CodeInternal, op, "failed to list messages", err)
	}
	return conv, msgs, nil
}

// getOrCreateConversation resolves the session's conversation; the first
// message with an unseen session id creates it, classified off that
// message's intent. The repository does the get-or-create atomically, so
// concurrent first messages for one session never fork into two
// conversations.
func (s *chatService) getOrCreateConversation(ctx context.Context, in IncomingMessage) (*models.ChatConversation, error) {
	seed := &models.ChatConversation{
		SessionID: in.SessionID,
		Category:  chatbot.CategoryForIntent(s.responder.Classify(in.Content)),
		Status:    models.ConversationActive,
	}
	if in.UserName != "" {
		seed.UserName = &in.UserName
	}
	if in.UserEmail != "" {
		seed.UserEmail = &in.UserEmail
	}
	return s.chat.GetOrCreateConversation(ctx, seed)
}

// touchConversation bumps lastMessageAt and back-fills contact details the
// visitor supplied mid-conversation.
func (s *chatService) touchConversation(ctx context.Context, conv *models.ChatConversation, in IncomingMessage, at time.Time) error {
	upd := repositories.ConversationUpdate{LastMessageAt: &at}
	if in.UserName != "" && conv.UserName == nil {
		upd.UserName = &in.UserName
		conv.UserName = &in.UserName
	}
	if in.UserEmail != "" && conv.UserEmail == nil {
		upd.UserEmail = &in.UserEmail
		conv.UserEmail = &in.UserEmail
	}
	conv.LastMessageAt = at
	return s.chat.UpdateConversation(ctx, conv.ID, upd)
}

// fileApplication derives a JobApplication from the flagged message,
// stores it, and back-fills the message metadata with the new id.
func (s *chatService) fileApplication(ctx context.Context, msg *models.ChatMessage, conv *models.ChatConversation) (int, error) {
	app, err := chatbot.DeriveApplication(*msg, *conv)
	if err != nil {
		return 0, err
	}
	if err := s.applications.Create(ctx, &app); err != nil {
		return 0, err
	}

	md, err := models.DecodeApplicationMetadata(msg.Metadata)
	if err != nil {
		return 0, err
	}
	md.CreatedJobApplicationID = app.ID
	raw, err := json.Marshal(md)
	if err != nil {
		return 0, err
	}
	if err := s.chat.UpdateMessageMetadata(ctx, msg.ID, raw); err != nil {
		return 0, err
	}
	msg.Metadata = datatypes.JSON(raw)

	if err := s.notify.ApplicationReceived(ctx, &app); err != nil {
		s.log.WithError(err).WithField("application_id", app.ID).Warn("application notification failed")
	}
	return app.ID, nil
}
