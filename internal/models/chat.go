package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type ConversationCategory string

const (
	CategoryCareer  ConversationCategory = "career"
	CategoryService ConversationCategory = "service"
	CategoryGeneral ConversationCategory = "general"
)

type ConversationStatus string

const (
	ConversationActive ConversationStatus = "active"
	ConversationClosed ConversationStatus = "closed"
)

type MessageSender string

const (
	SenderUser MessageSender = "user"
	SenderBot  MessageSender = "bot"
)

// ChatConversation groups the messages of one widget session. SessionID is
// the client-supplied correlation key; exactly one conversation exists per
// session id.
type ChatConversation struct {
	ID            int                  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	SessionID     string               `gorm:"column:session_id;type:text;uniqueIndex" json:"session_id"`
	UserEmail     *string              `gorm:"column:user_email;type:text" json:"user_email,omitempty"`
	UserName      *string              `gorm:"column:user_name;type:text" json:"user_name,omitempty"`
	StartedAt     time.Time            `gorm:"column:started_at;type:timestamptz" json:"started_at"`
	LastMessageAt time.Time            `gorm:"column:last_message_at;type:timestamptz" json:"last_message_at"`
	Category      ConversationCategory `gorm:"column:category;type:text" json:"category"`
	Status        ConversationStatus   `gorm:"column:status;type:text" json:"status"`
}

func (ChatConversation) TableName() string { return "chat_conversations" }

// ChatMessage is one entry in a conversation's append-only transcript.
// Metadata is back-filled with the derived application id when a message
// produces a JobApplication; no other field is ever mutated.
type ChatMessage struct {
	ID                   int            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ConversationID       int            `gorm:"column:conversation_id;index" json:"conversation_id"`
	Sender               MessageSender  `gorm:"column:sender;type:text" json:"sender"`
	Content              string         `gorm:"column:content;type:text" json:"content"`
	Timestamp            time.Time      `gorm:"column:timestamp;type:timestamptz;index" json:"timestamp"`
	AttachmentURL        *string        `gorm:"column:attachment_url;type:text" json:"attachment_url,omitempty"`
	AttachmentType       *string        `gorm:"column:attachment_type;type:text" json:"attachment_type,omitempty"`
	IsApplicationRequest bool           `gorm:"column:is_application_request" json:"is_application_request"`
	Metadata             datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata,omitempty"`
}

func (ChatMessage) TableName() string { return "chat_messages" }

// ApplicationMetadata is the structured payload the chat client attaches
// after walking a visitor through the apply prompt.
type ApplicationMetadata struct {
	FullName   string `json:"fullName,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Position   string `json:"position,omitempty"`
	Experience string `json:"experience,omitempty"`

	// CreatedJobApplicationID is set once the derived application is stored.
	CreatedJobApplicationID int `json:"createdJobApplicationId,omitempty"`
}

// DecodeApplicationMetadata parses a message's metadata blob; an empty or
// absent blob decodes to the zero value.
func DecodeApplicationMetadata(raw datatypes.JSON) (ApplicationMetadata, error) {
	var md ApplicationMetadata
	if len(raw) == 0 {
		return md, nil
	}
	err := json.Unmarshal(raw, &md)
	return md, err
}
