package postgres

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/privacyweave/backend/internal/models"
	"github.com/privacyweave/backend/internal/utils"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "store.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	return db
}

func TestCreateMessageRequiresConversation(t *testing.T) {
	ctx := context.Background()
	repo := NewChatRepo(newTestDB(t))

	err := repo.CreateMessage(ctx, &models.ChatMessage{
		ConversationID: 999,
		Sender:         models.SenderUser,
		Content:        "orphan",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrNotFound))

	conv := &models.ChatConversation{SessionID: "sess-1", Category: models.CategoryGeneral}
	require.NoError(t, repo.CreateConversation(ctx, conv))

	msg := &models.ChatMessage{
		ConversationID: conv.ID,
		Sender:         models.SenderUser,
		Content:        "hello",
	}
	require.NoError(t, repo.CreateMessage(ctx, msg))
	assert.NotZero(t, msg.ID)
}

func TestGetOrCreateConversationSingleRow(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewChatRepo(db)

	name := "Dana"
	first, err := repo.GetOrCreateConversation(ctx, &models.ChatConversation{
		SessionID: "sess-1",
		Category:  models.CategoryCareer,
		UserName:  &name,
	})
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	// a racing loser's seed resolves to the winner's row untouched
	second, err := repo.GetOrCreateConversation(ctx, &models.ChatConversation{
		SessionID: "sess-1",
		Category:  models.CategoryGeneral,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, models.CategoryCareer, second.Category)

	var count int64
	require.NoError(t, db.Model(&models.ChatConversation{}).
		Where("session_id = ?", "sess-1").
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAttachResumePathOnStoredApplication(t *testing.T) {
	ctx := context.Background()
	repo := NewJobApplicationRepo(newTestDB(t))

	err := repo.AttachResumePath(ctx, 42, "/uploads/resume-1.pdf")
	assert.True(t, errors.Is(err, utils.ErrNotFound))

	app := &models.JobApplication{
		FullName:   "Sam Okafor",
		Email:      "sam@example.test",
		Phone:      "+1 555 0100",
		Position:   "Privacy Engineer",
		Experience: "6 years",
	}
	require.NoError(t, repo.Create(ctx, app))
	require.NoError(t, repo.AttachResumePath(ctx, app.ID, "/uploads/resume-1.pdf"))

	stored, err := repo.GetByID(ctx, app.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ResumePath)
	assert.Equal(t, "/uploads/resume-1.pdf", *stored.ResumePath)
	assert.Equal(t, "Sam Okafor", stored.FullName)
}
