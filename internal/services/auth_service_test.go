package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/privacyweave/backend/internal/models"
	memrepo "github.com/privacyweave/backend/internal/repositories/memory"
	"github.com/privacyweave/backend/internal/utils"
)

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(memrepo.NewStore().Users(), "test-secret")

	u, err := svc.Register(ctx, RegisterInput{
		Username: "priya",
		Email:    "priya@example.com",
		Name:     "Priya S",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, models.RoleUser, u.Role)
	// stored hash, not the plaintext
	assert.NotEqual(t, "s3cret-pass", u.Password)

	token, logged, err := svc.Login(ctx, "priya", "s3cret-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, u.ID, logged.ID)

	_, _, err = svc.Login(ctx, "priya", "wrong-pass")
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))

	_, _, err = svc.Login(ctx, "nobody", "s3cret-pass")
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))
}

func TestRegisterUniqueness(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(memrepo.NewStore().Users(), "test-secret")

	_, err := svc.Register(ctx, RegisterInput{Username: "priya", Email: "priya@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Username: "priya", Email: "other@example.com", Password: "s3cret-pass"})
	assert.True(t, utils.IsCode(err, utils.CodeConflict))

	_, err = svc.Register(ctx, RegisterInput{Username: "other", Email: "priya@example.com", Password: "s3cret-pass"})
	assert.True(t, utils.IsCode(err, utils.CodeConflict))
}

func TestRegisterValidation(t *testing.T) {
	svc := NewAuthService(memrepo.NewStore().Users(), "test-secret")

	_, err := svc.Register(context.Background(), RegisterInput{Username: "x"})
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}
