package chatbot

import (
	"github.com/privacyweave/backend/internal/models"
)

// Fallbacks used when the chat metadata leaves a field blank.
const (
	fallbackName       = "Unknown"
	fallbackEmail      = "unknown@example.com"
	fallbackPhone      = "Not provided"
	fallbackPosition   = "Position via chatbot"
	fallbackExperience = "Not specified"
)

// DeriveApplication turns a chat message flagged as an application request
// into a JobApplication. Metadata fields win; the conversation's stored
// name/email are the second choice; fixed fallbacks cover the rest. The
// message text itself becomes the application's cover message, and a chat
// attachment doubles as the resume.
func DeriveApplication(msg models.ChatMessage, conv models.ChatConversation) (models.JobApplication, error) {
	md, err := models.DecodeApplicationMetadata(msg.Metadata)
	if err != nil {
		return models.JobApplication{}, err
	}

	app := models.JobApplication{
		FullName:   firstOf(md.FullName, deref(conv.UserName), fallbackName),
		Email:      firstOf(md.Email, deref(conv.UserEmail), fallbackEmail),
		Phone:      firstOf(md.Phone, fallbackPhone),
		Position:   firstOf(md.Position, fallbackPosition),
		Experience: firstOf(md.Experience, fallbackExperience),
	}

	content := msg.Content
	app.Message = &content
	if msg.AttachmentURL != nil && *msg.AttachmentURL != "" {
		url := *msg.AttachmentURL
		app.ResumePath = &url
	}
	return app, nil
}

func firstOf(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
