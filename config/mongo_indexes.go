package config

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureMongoIndexes creates the chat collection indexes. The unique
// session index is load-bearing: the repository's get-or-create is an
// upsert on session_id, and without the index two racing upserts could
// both insert.
func EnsureMongoIndexes() error {
	if MongoDB == nil {
		return errors.New("MongoDB is nil; call InitMongo() first")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	convos := MongoDB.Collection("chat_conversations")
	_, err := convos.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "session_id", Value: 1}},
		Options: options.Index().
			SetName("uniq_session").
			SetUnique(true),
	})
	if err != nil {
		return err
	}

	messages := MongoDB.Collection("chat_messages")
	_, err = messages.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "conversation_id", Value: 1}, {Key: "timestamp", Value: 1}},
		Options: options.Index().SetName("by_conversation_ts"),
	})
	return err
}
