package services

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	memrepo "github.com/privacyweave/backend/internal/repositories/memory"
)

type fakeUploader struct {
	objects map[string]string
}

func (u *fakeUploader) Upload(_ context.Context, objectName, _ string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if u.objects == nil {
		u.objects = map[string]string{}
	}
	u.objects[objectName] = string(b)
	return "/uploads/" + objectName, nil
}

func TestSubmitApplicationWithoutResume(t *testing.T) {
	ctx := context.Background()
	store := memrepo.NewStore()
	notify := &recordingNotifier{}
	svc := NewApplicationService(store.JobApplications(), &fakeUploader{}, notify, testLogger())

	app, err := svc.Submit(ctx, ApplicationInput{
		FullName:   "Jane Doe",
		Email:      "jane@x.com",
		Phone:      "12345",
		Position:   "Engineer",
		Experience: "1 year",
	}, nil)
	require.NoError(t, err)
	assert.NotZero(t, app.ID)
	assert.Nil(t, app.ResumePath)
	assert.Equal(t, 1, notify.applications)
}

func TestSubmitApplicationAttachesResume(t *testing.T) {
	ctx := context.Background()
	store := memrepo.NewStore()
	up := &fakeUploader{}
	svc := NewApplicationService(store.JobApplications(), up, &recordingNotifier{}, testLogger())

	app, err := svc.Submit(ctx, ApplicationInput{
		FullName:   "Ravi K",
		Email:      "ravi@x.com",
		Phone:      "999",
		Position:   "Analyst",
		Experience: "0-1",
	}, &ResumeUpload{
		FileName:    "cv.pdf",
		ContentType: "application/pdf",
		Reader:      strings.NewReader("%PDF-1.4 fake"),
	})
	require.NoError(t, err)
	require.NotNil(t, app.ResumePath)
	assert.True(t, strings.HasPrefix(*app.ResumePath, "/uploads/resume-"))
	assert.True(t, strings.HasSuffix(*app.ResumePath, ".pdf"))

	// the stored record carries the path too
	got, err := store.JobApplications().GetByID(ctx, app.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ResumePath)
	assert.Equal(t, *app.ResumePath, *got.ResumePath)

	assert.Len(t, up.objects, 1)
}

func TestSubmitApplicationNotifierFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	store := memrepo.NewStore()
	notify := &recordingNotifier{fail: true}
	svc := NewApplicationService(store.JobApplications(), &fakeUploader{}, notify, testLogger())

	_, err := svc.Submit(ctx, ApplicationInput{
		FullName: "X", Email: "x@x.com", Phone: "1", Position: "Y", Experience: "1",
	}, nil)
	assert.NoError(t, err)
}
