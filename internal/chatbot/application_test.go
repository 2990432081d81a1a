package chatbot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/privacyweave/backend/internal/models"
)

func strptr(s string) *string { return &s }

func TestDeriveApplicationMetadataWins(t *testing.T) {
	msg := models.ChatMessage{
		Content:  "I would like to join your team",
		Metadata: datatypes.JSON(`{"fullName":"Jane Doe","email":"jane@x.com","phone":"123","position":"Engineer","experience":"2 years"}`),
	}
	conv := models.ChatConversation{UserName: strptr("Someone Else"), UserEmail: strptr("other@x.com")}

	app, err := DeriveApplication(msg, conv)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", app.FullName)
	assert.Equal(t, "jane@x.com", app.Email)
	assert.Equal(t, "123", app.Phone)
	assert.Equal(t, "Engineer", app.Position)
	assert.Equal(t, "2 years", app.Experience)
	require.NotNil(t, app.Message)
	assert.Equal(t, msg.Content, *app.Message)
	assert.Nil(t, app.ResumePath)
}

func TestDeriveApplicationConversationFallback(t *testing.T) {
	msg := models.ChatMessage{
		Content:  "apply me please",
		Metadata: datatypes.JSON(`{"position":"Analyst"}`),
	}
	conv := models.ChatConversation{UserName: strptr("Ravi K"), UserEmail: strptr("ravi@x.com")}

	app, err := DeriveApplication(msg, conv)
	require.NoError(t, err)
	assert.Equal(t, "Ravi K", app.FullName)
	assert.Equal(t, "ravi@x.com", app.Email)
	assert.Equal(t, "Analyst", app.Position)
	assert.Equal(t, "Not provided", app.Phone)
	assert.Equal(t, "Not specified", app.Experience)
}

func TestDeriveApplicationFixedFallbacks(t *testing.T) {
	// metadata names the candidate but omits the email, and the
	// conversation never captured one
	msg := models.ChatMessage{
		Content:  "ready to apply",
		Metadata: datatypes.JSON(`{"fullName":"Jane Doe","position":"Engineer"}`),
	}

	app, err := DeriveApplication(msg, models.ChatConversation{})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", app.FullName)
	assert.Equal(t, "unknown@example.com", app.Email)
	assert.Equal(t, "Engineer", app.Position)
}

func TestDeriveApplicationEmptyMetadata(t *testing.T) {
	app, err := DeriveApplication(models.ChatMessage{Content: "hi"}, models.ChatConversation{})
	require.NoError(t, err)
	assert.Equal(t, "Unknown", app.FullName)
	assert.Equal(t, "unknown@example.com", app.Email)
	assert.Equal(t, "Not provided", app.Phone)
	assert.Equal(t, "Position via chatbot", app.Position)
	assert.Equal(t, "Not specified", app.Experience)
}

func TestDeriveApplicationAttachmentBecomesResume(t *testing.T) {
	msg := models.ChatMessage{
		Content:       "here's my resume",
		AttachmentURL: strptr("/uploads/resume-abc.pdf"),
	}

	app, err := DeriveApplication(msg, models.ChatConversation{})
	require.NoError(t, err)
	require.NotNil(t, app.ResumePath)
	assert.Equal(t, "/uploads/resume-abc.pdf", *app.ResumePath)
}

func TestDeriveApplicationBadMetadata(t *testing.T) {
	msg := models.ChatMessage{
		Content:  "apply",
		Metadata: datatypes.JSON(`{not json`),
	}
	_, err := DeriveApplication(msg, models.ChatConversation{})
	assert.Error(t, err)
}
