package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/privacyweave/backend/internal/chatbot"
	"github.com/privacyweave/backend/internal/models"
	memrepo "github.com/privacyweave/backend/internal/repositories/memory"
)

type recordingNotifier struct {
	inquiries    int
	applications int
	fail         bool
}

func (n *recordingNotifier) InquiryReceived(context.Context, *models.Inquiry) error {
	n.inquiries++
	if n.fail {
		return errors.New("smtp down")
	}
	return nil
}

func (n *recordingNotifier) ApplicationReceived(context.Context, *models.JobApplication) error {
	n.applications++
	if n.fail {
		return errors.New("smtp down")
	}
	return nil
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newChatFixture(t *testing.T) (ChatService, *memrepo.Store, *recordingNotifier) {
	t.Helper()
	store := memrepo.NewStore()
	require.NoError(t, store.SeedJobListings(context.Background()))

	notify := &recordingNotifier{}
	svc := NewChatService(
		store.Chat(),
		store.JobApplications(),
		chatbot.New(store.JobListings()),
		notify,
		testLogger(),
	)
	return svc, store, notify
}

func TestHandleMessageCreatesConversationOnce(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newChatFixture(t)

	first, err := svc.HandleMessage(ctx, IncomingMessage{SessionID: "sess-1", Content: "hello"})
	require.NoError(t, err)
	second, err := svc.HandleMessage(ctx, IncomingMessage{SessionID: "sess-1", Content: "tell me about jobs"})
	require.NoError(t, err)

	// same session id, exactly one conversation
	assert.Equal(t, first.Conversation.ID, second.Conversation.ID)

	conv, err := store.Chat().GetConversationBySessionID(ctx, "sess-1")
	require.NoError(t, err)
	// category was classified off the first message
	assert.Equal(t, models.CategoryGeneral, conv.Category)

	msgs, err := store.Chat().ListMessages(ctx, conv.ID)
	require.NoError(t, err)
	assert.Len(t, msgs, 4) // two user messages, two bot replies
}

func TestHandleMessageCareerCategoryAndReply(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newChatFixture(t)

	res, err := svc.HandleMessage(ctx, IncomingMessage{SessionID: "sess-2", Content: "what careers do you offer?"})
	require.NoError(t, err)

	assert.Equal(t, models.CategoryCareer, res.Conversation.Category)
	assert.Equal(t, models.SenderBot, res.BotMessage.Sender)
	assert.Contains(t, res.BotMessage.Content, "1. ")

	conv, err := store.Chat().GetConversation(ctx, res.Conversation.ID)
	require.NoError(t, err)
	assert.True(t, conv.LastMessageAt.Equal(res.BotMessage.Timestamp))
}

func TestHandleMessageFilesApplication(t *testing.T) {
	ctx := context.Background()
	svc, store, notify := newChatFixture(t)

	md, _ := json.Marshal(models.ApplicationMetadata{
		FullName: "Jane Doe", Email: "jane@x.com", Position: "AI/ML Engineer",
	})
	res, err := svc.HandleMessage(ctx, IncomingMessage{
		SessionID:            "sess-3",
		Content:              "Here is my application",
		IsApplicationRequest: true,
		Metadata:             md,
	})
	require.NoError(t, err)
	require.NotZero(t, res.ApplicationID)

	app, err := store.JobApplications().GetByID(ctx, res.ApplicationID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", app.FullName)
	assert.Equal(t, "jane@x.com", app.Email)
	require.NotNil(t, app.Message)
	assert.Equal(t, "Here is my application", *app.Message)
	assert.Equal(t, 1, notify.applications)

	// the originating message carries the application id for traceability
	msgs, err := store.Chat().ListMessages(ctx, res.Conversation.ID)
	require.NoError(t, err)
	got, err := models.DecodeApplicationMetadata(msgs[0].Metadata)
	require.NoError(t, err)
	assert.Equal(t, res.ApplicationID, got.CreatedJobApplicationID)
}

func TestHandleMessageApplicationFallsBackToConversationContact(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newChatFixture(t)

	_, err := svc.HandleMessage(ctx, IncomingMessage{
		SessionID: "sess-4",
		Content:   "hi",
		UserName:  "Ravi K",
		UserEmail: "ravi@x.com",
	})
	require.NoError(t, err)

	md, _ := json.Marshal(models.ApplicationMetadata{Position: "Full Stack Developer"})
	res, err := svc.HandleMessage(ctx, IncomingMessage{
		SessionID:            "sess-4",
		Content:              "please file my application",
		IsApplicationRequest: true,
		Metadata:             md,
	})
	require.NoError(t, err)
	require.NotZero(t, res.ApplicationID)

	app, err := store.JobApplications().GetByID(ctx, res.ApplicationID)
	require.NoError(t, err)
	assert.Equal(t, "Ravi K", app.FullName)
	assert.Equal(t, "ravi@x.com", app.Email)
	assert.Equal(t, "Full Stack Developer", app.Position)
}

func TestHandleMessageApplicationFailureDoesNotAbortReply(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newChatFixture(t)

	// malformed metadata makes derivation fail; the reply must survive
	res, err := svc.HandleMessage(ctx, IncomingMessage{
		SessionID:            "sess-5",
		Content:              "broken apply",
		IsApplicationRequest: true,
		Metadata:             json.RawMessage(`{not json`),
	})
	require.NoError(t, err)
	assert.Zero(t, res.ApplicationID)
	assert.NotEmpty(t, res.BotMessage.Content)
}

func TestHandleMessageNotifierFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	svc, _, notify := newChatFixture(t)
	notify.fail = true

	md, _ := json.Marshal(models.ApplicationMetadata{FullName: "Jane"})
	res, err := svc.HandleMessage(ctx, IncomingMessage{
		SessionID:            "sess-6",
		Content:              "apply",
		IsApplicationRequest: true,
		Metadata:             md,
	})
	require.NoError(t, err)
	assert.NotZero(t, res.ApplicationID)
	assert.Equal(t, 1, notify.applications)
}

func TestHandleMessageValidation(t *testing.T) {
	svc, _, _ := newChatFixture(t)

	_, err := svc.HandleMessage(context.Background(), IncomingMessage{Content: "hi"})
	assert.Error(t, err)
	_, err = svc.HandleMessage(context.Background(), IncomingMessage{SessionID: "s"})
	assert.Error(t, err)
}

func TestTranscript(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newChatFixture(t)

	_, _, err := svc.Transcript(ctx, "missing")
	assert.Error(t, err)

	_, err = svc.HandleMessage(ctx, IncomingMessage{SessionID: "sess-7", Content: "hello"})
	require.NoError(t, err)

	conv, msgs, err := svc.Transcript(ctx, "sess-7")
	require.NoError(t, err)
	assert.Equal(t, "sess-7", conv.SessionID)
	require.Len(t, msgs, 2)
	assert.Equal(t, models.SenderUser, msgs[0].Sender)
	assert.Equal(t, models.SenderBot, msgs[1].Sender)
}

func TestHandleMessageConcurrentFirstMessagesShareConversation(t *testing.T) {
	svc, store, _ := newChatFixture(t)
	ctx := context.Background()

	const workers = 16
	results := make([]*ChatResult, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.HandleMessage(ctx, IncomingMessage{
				SessionID: "sess-shared",
				Content:   "hello there",
			})
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		require.NotNil(t, results[i])
		assert.Equal(t, results[0].Conversation.ID, results[i].Conversation.ID,
			"one session id must map to one conversation")
	}

	conv, err := store.Chat().GetConversationBySessionID(ctx, "sess-shared")
	require.NoError(t, err)
	msgs, err := store.Chat().ListMessages(ctx, conv.ID)
	require.NoError(t, err)
	assert.Len(t, msgs, workers*2, "every exchange lands in the single conversation")
}
