// Package repositories defines the storage contracts for every entity kind.
// Implementations live in the memory, postgres, and mongo subpackages; the
// services only ever see these interfaces, so the backing store can be
// swapped through configuration.
package repositories

import (
	"context"
	"time"

	"github.com/privacyweave/backend/internal/models"
)

// Absent records are reported as utils.ErrNotFound by every Get/Update.

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type InquiryRepository interface {
	Create(ctx context.Context, inq *models.Inquiry) error
	GetByID(ctx context.Context, id int) (*models.Inquiry, error)
	// List returns all inquiries, newest first.
	List(ctx context.Context) ([]models.Inquiry, error)
}

type JobListingRepository interface {
	Create(ctx context.Context, l *models.JobListing) error
	GetByID(ctx context.Context, id int) (*models.JobListing, error)
	List(ctx context.Context) ([]models.JobListing, error)
	// ListActive returns listings with IsActive set, newest first.
	ListActive(ctx context.Context) ([]models.JobListing, error)
}

type JobApplicationRepository interface {
	Create(ctx context.Context, a *models.JobApplication) error
	GetByID(ctx context.Context, id int) (*models.JobApplication, error)
	List(ctx context.Context) ([]models.JobApplication, error)
	// AttachResumePath sets the resume path on an existing application,
	// leaving every other field untouched.
	AttachResumePath(ctx context.Context, id int, path string) error
}

// ConversationUpdate is a partial update; nil fields are left as-is.
type ConversationUpdate struct {
	UserEmail     *string
	UserName      *string
	LastMessageAt *time.Time
	Category      *models.ConversationCategory
	Status        *models.ConversationStatus
}

type ChatRepository interface {
	CreateConversation(ctx context.Context, c *models.ChatConversation) error
	// GetOrCreateConversation resolves the conversation owning
	// seed.SessionID, creating it from seed if none exists yet. The
	// check and the create happen atomically, so concurrent first
	// messages for one session id always land in a single conversation.
	GetOrCreateConversation(ctx context.Context, seed *models.ChatConversation) (*models.ChatConversation, error)
	GetConversation(ctx context.Context, id int) (*models.ChatConversation, error)
	GetConversationBySessionID(ctx context.Context, sessionID string) (*models.ChatConversation, error)
	UpdateConversation(ctx context.Context, id int, upd ConversationUpdate) error

	CreateMessage(ctx context.Context, m *models.ChatMessage) error
	// ListMessages returns a conversation's transcript in ascending
	// timestamp order.
	ListMessages(ctx context.Context, conversationID int) ([]models.ChatMessage, error)
	UpdateMessageMetadata(ctx context.Context, id int, metadata []byte) error
}
