// Package mongo stores chat transcripts in MongoDB for deployments that
// want conversations to outlive the process while the rest of the record
// store stays in memory or Postgres.
package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/datatypes"

	"github.com/privacyweave/backend/internal/models"
	"github.com/privacyweave/backend/internal/repositories"
	"github.com/privacyweave/backend/internal/utils"
)

type chatRepo struct {
	convos   *mongo.Collection
	messages *mongo.Collection
	counters *mongo.Collection
}

func NewChatRepo(db *mongo.Database) repositories.ChatRepository {
	return &chatRepo{
		convos:   db.Collection("chat_conversations"),
		messages: db.Collection("chat_messages"),
		counters: db.Collection("counters"),
	}
}

// conversationDoc and messageDoc mirror the models with bson tags; the
// integer id contract is kept by a counter document per entity kind.
type conversationDoc struct {
	ID            int       `bson:"_id"`
	SessionID     string    `bson:"session_id"`
	UserEmail     *string   `bson:"user_email,omitempty"`
	UserName      *string   `bson:"user_name,omitempty"`
	StartedAt     time.Time `bson:"started_at"`
	LastMessageAt time.Time `bson:"last_message_at"`
	Category      string    `bson:"category"`
	Status        string    `bson:"status"`
}

type messageDoc struct {
	ID                   int       `bson:"_id"`
	ConversationID       int       `bson:"conversation_id"`
	Sender               string    `bson:"sender"`
	Content              string    `bson:"content"`
	Timestamp            time.Time `bson:"timestamp"`
	AttachmentURL        *string   `bson:"attachment_url,omitempty"`
	AttachmentType       *string   `bson:"attachment_type,omitempty"`
	IsApplicationRequest bool      `bson:"is_application_request"`
	Metadata             []byte    `bson:"metadata,omitempty"`
}

func (r *chatRepo) nextID(ctx context.Context, kind string) (int, error) {
	res := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": kind},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	)
	var out struct {
		Seq int `bson:"seq"`
	}
	if err := res.Decode(&out); err != nil {
		return 0, err
	}
	return out.Seq, nil
}

func (r *chatRepo) CreateConversation(ctx context.Context, c *models.ChatConversation) error {
	id, err := r.nextID(ctx, "chat_conversations")
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	c.ID = id
	c.StartedAt = now
	c.LastMessageAt = now
	if c.Status == "" {
		c.Status = models.ConversationActive
	}

	_, err = r.convos.InsertOne(ctx, conversationDoc{
		ID:            c.ID,
		SessionID:     c.SessionID,
		UserEmail:     c.UserEmail,
		UserName:      c.UserName,
		StartedAt:     c.StartedAt,
		LastMessageAt: c.LastMessageAt,
		Category:      string(c.Category),
		Status:        string(c.Status),
	})
	return err
}

func (r *chatRepo) GetConversation(ctx context.Context, id int) (*models.ChatConversation, error) {
	return r.findConversation(ctx, bson.M{"_id": id})
}

func (r *chatRepo) GetConversationBySessionID(ctx context.Context, sessionID string) (*models.ChatConversation, error) {
	return r.findConversation(ctx, bson.M{"session_id": sessionID})
}

func (r *chatRepo) findConversation(ctx context.Context, filter bson.M) (*models.ChatConversation, error) {
	var doc conversationDoc
	err := r.convos.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.model(), nil
}

func (d conversationDoc) model() *models.ChatConversation {
	return &models.ChatConversation{
		ID:            d.ID,
		SessionID:     d.SessionID,
		UserEmail:     d.UserEmail,
		UserName:      d.UserName,
		StartedAt:     d.StartedAt,
		LastMessageAt: d.LastMessageAt,
		Category:      models.ConversationCategory(d.Category),
		Status:        models.ConversationStatus(d.Status),
	}
}

// GetOrCreateConversation is a single upsert on session_id: $setOnInsert
// only takes effect when no conversation for the session exists, and the
// returned document is authoritative either way. The pre-allocated id is
// wasted on the existing-conversation path; ids only have to stay
// monotonic, not dense.
func (r *chatRepo) GetOrCreateConversation(ctx context.Context, seed *models.ChatConversation) (*models.ChatConversation, error) {
	id, err := r.nextID(ctx, "chat_conversations")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	status := seed.Status
	if status == "" {
		status = models.ConversationActive
	}
	insert := conversationDoc{
		ID:            id,
		SessionID:     seed.SessionID,
		UserEmail:     seed.UserEmail,
		UserName:      seed.UserName,
		StartedAt:     now,
		LastMessageAt: now,
		Category:      string(seed.Category),
		Status:        string(status),
	}

	var doc conversationDoc
	err = r.convos.FindOneAndUpdate(ctx,
		bson.M{"session_id": seed.SessionID},
		bson.M{"$setOnInsert": insert},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if mongo.IsDuplicateKeyError(err) {
		// lost the race against another upsert; the winner's row exists now
		return r.findConversation(ctx, bson.M{"session_id": seed.SessionID})
	}
	if err != nil {
		return nil, err
	}
	return doc.model(), nil
}

func (r *chatRepo) UpdateConversation(ctx context.Context, id int, upd repositories.ConversationUpdate) error {
	set := bson.M{}
	if upd.UserEmail != nil {
		set["user_email"] = *upd.UserEmail
	}
	if upd.UserName != nil {
		set["user_name"] = *upd.UserName
	}
	if upd.LastMessageAt != nil {
		set["last_message_at"] = upd.LastMessageAt.UTC()
	}
	if upd.Category != nil {
		set["category"] = string(*upd.Category)
	}
	if upd.Status != nil {
		set["status"] = string(*upd.Status)
	}
	if len(set) == 0 {
		return nil
	}

	res, err := r.convos.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *chatRepo) CreateMessage(ctx context.Context, m *models.ChatMessage) error {
	// the foreign-key invariant: messages only attach to live conversations
	if _, err := r.GetConversation(ctx, m.ConversationID); err != nil {
		return err
	}

	id, err := r.nextID(ctx, "chat_messages")
	if err != nil {
		return err
	}
	m.ID = id
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now().UTC()
	}

	_, err = r.messages.InsertOne(ctx, messageDoc{
		ID:                   m.ID,
		ConversationID:       m.ConversationID,
		Sender:               string(m.Sender),
		Content:              m.Content,
		Timestamp:            m.Timestamp,
		AttachmentURL:        m.AttachmentURL,
		AttachmentType:       m.AttachmentType,
		IsApplicationRequest: m.IsApplicationRequest,
		Metadata:             []byte(m.Metadata),
	})
	return err
}

func (r *chatRepo) ListMessages(ctx context.Context, conversationID int) ([]models.ChatMessage, error) {
	cur, err := r.messages.Find(ctx,
		bson.M{"conversation_id": conversationID},
		options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}, {Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.ChatMessage
	for cur.Next(ctx) {
		var doc messageDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, models.ChatMessage{
			ID:                   doc.ID,
			ConversationID:       doc.ConversationID,
			Sender:               models.MessageSender(doc.Sender),
			Content:              doc.Content,
			Timestamp:            doc.Timestamp,
			AttachmentURL:        doc.AttachmentURL,
			AttachmentType:       doc.AttachmentType,
			IsApplicationRequest: doc.IsApplicationRequest,
			Metadata:             datatypes.JSON(doc.Metadata),
		})
	}
	return out, cur.Err()
}

func (r *chatRepo) UpdateMessageMetadata(ctx context.Context, id int, metadata []byte) error {
	res, err := r.messages.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"metadata": metadata}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}
