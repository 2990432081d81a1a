package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/privacyweave/backend/internal/models"
	"github.com/privacyweave/backend/internal/repositories"
	"github.com/privacyweave/backend/internal/utils"
)

type chatRepo struct {
	db *gorm.DB
}

func NewChatRepo(db *gorm.DB) repositories.ChatRepository {
	return &chatRepo{db: db}
}

func (r *chatRepo) CreateConversation(ctx context.Context, c *models.ChatConversation) error {
	now := time.Now().UTC()
	c.StartedAt = now
	c.LastMessageAt = now
	if c.Status == "" {
		c.Status = models.ConversationActive
	}
	return r.db.WithContext(ctx).Create(c).Error
}

// GetOrCreateConversation leans on the unique session_id index: the
// insert is ON CONFLICT DO NOTHING, and a conflicted (or lost) insert
// falls through to reading the row the winner created.
func (r *chatRepo) GetOrCreateConversation(ctx context.Context, seed *models.ChatConversation) (*models.ChatConversation, error) {
	now := time.Now().UTC()
	seed.StartedAt = now
	seed.LastMessageAt = now
	if seed.Status == "" {
		seed.Status = models.ConversationActive
	}

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			DoNothing: true,
		}).
		Create(seed)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected > 0 {
		return seed, nil
	}
	return r.GetConversationBySessionID(ctx, seed.SessionID)
}

func (r *chatRepo) GetConversation(ctx context.Context, id int) (*models.ChatConversation, error) {
	var c models.ChatConversation
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &c, err
}

func (r *chatRepo) GetConversationBySessionID(ctx context.Context, sessionID string) (*models.ChatConversation, error) {
	var c models.ChatConversation
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &c, err
}

func (r *chatRepo) UpdateConversation(ctx context.Context, id int, upd repositories.ConversationUpdate) error {
	fields := map[string]any{}
	if upd.UserEmail != nil {
		fields["user_email"] = *upd.UserEmail
	}
	if upd.UserName != nil {
		fields["user_name"] = *upd.UserName
	}
	if upd.LastMessageAt != nil {
		fields["last_message_at"] = *upd.LastMessageAt
	}
	if upd.Category != nil {
		fields["category"] = *upd.Category
	}
	if upd.Status != nil {
		fields["status"] = *upd.Status
	}
	if len(fields) == 0 {
		return nil
	}

	res := r.db.WithContext(ctx).
		Model(&models.ChatConversation{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *chatRepo) CreateMessage(ctx context.Context, m *models.ChatMessage) error {
	// messages only attach to live conversations
	if _, err := r.GetConversation(ctx, m.ConversationID); err != nil {
		return err
	}

	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *chatRepo) ListMessages(ctx context.Context, conversationID int) ([]models.ChatMessage, error) {
	var rows []models.ChatMessage
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("timestamp ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *chatRepo) UpdateMessageMetadata(ctx context.Context, id int, metadata []byte) error {
	res := r.db.WithContext(ctx).
		Model(&models.ChatMessage{}).
		Where("id = ?", id).
		Update("metadata", metadata)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}
