package memory

import (
	"context"
	"sort"

	"gorm.io/datatypes"

	"github.com/privacyweave/backend/internal/models"
	"github.com/privacyweave/backend/internal/repositories"
	"github.com/privacyweave/backend/internal/utils"
)

type chatRepo struct {
	s *Store
}

func (s *Store) Chat() repositories.ChatRepository { return &chatRepo{s: s} }

func (r *chatRepo) CreateConversation(ctx context.Context, c *models.ChatConversation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.createConversationLocked(c)
	return nil
}

func (r *chatRepo) createConversationLocked(c *models.ChatConversation) {
	now := r.s.now()
	c.ID = r.s.convoSeq.Next()
	c.StartedAt = now
	c.LastMessageAt = now
	if c.Status == "" {
		c.Status = models.ConversationActive
	}
	r.s.convos[c.ID] = *c
}

// GetOrCreateConversation holds the store lock across the lookup and the
// create, so two racing first messages for one session id cannot both
// miss and insert.
func (r *chatRepo) GetOrCreateConversation(ctx context.Context, seed *models.ChatConversation) (*models.ChatConversation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, c := range r.s.convos {
		if c.SessionID == seed.SessionID {
			c := c
			return &c, nil
		}
	}
	r.createConversationLocked(seed)
	return seed, nil
}

func (r *chatRepo) GetConversation(ctx context.Context, id int) (*models.ChatConversation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.convos[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return &c, nil
}

func (r *chatRepo) GetConversationBySessionID(ctx context.Context, sessionID string) (*models.ChatConversation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, c := range r.s.convos {
		if c.SessionID == sessionID {
			c := c
			return &c, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r *chatRepo) UpdateConversation(ctx context.Context, id int, upd repositories.ConversationUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.convos[id]
	if !ok {
		return utils.ErrNotFound
	}
	if upd.UserEmail != nil {
		c.UserEmail = upd.UserEmail
	}
	if upd.UserName != nil {
		c.UserName = upd.UserName
	}
	if upd.LastMessageAt != nil {
		c.LastMessageAt = *upd.LastMessageAt
	}
	if upd.Category != nil {
		c.Category = *upd.Category
	}
	if upd.Status != nil {
		c.Status = *upd.Status
	}
	r.s.convos[id] = c
	return nil
}

func (r *chatRepo) CreateMessage(ctx context.Context, m *models.ChatMessage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.convos[m.ConversationID]; !ok {
		return utils.ErrNotFound
	}
	m.ID = r.s.messageSeq.Next()
	if m.Timestamp.IsZero() {
		m.Timestamp = r.s.now()
	}
	r.s.messages[m.ID] = *m
	return nil
}

func (r *chatRepo) ListMessages(ctx context.Context, conversationID int) ([]models.ChatMessage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]models.ChatMessage, 0)
	for _, m := range r.s.messages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	// ascending transcript order; id breaks timestamp ties
	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].ID < out[j].ID
		}
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}

func (r *chatRepo) UpdateMessageMetadata(ctx context.Context, id int, metadata []byte) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m, ok := r.s.messages[id]
	if !ok {
		return utils.ErrNotFound
	}
	m.Metadata = datatypes.JSON(metadata)
	r.s.messages[id] = m
	return nil
}
