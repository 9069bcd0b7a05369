package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodshelfapp/moodshelf-server/internal/store"
)

func TestUserCreateAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := testUser("usr-1", "reader@example.com")
	user.DisplayName = "Reader"
	require.NoError(t, s.CreateUser(ctx, user))

	got, err := s.GetUser(ctx, "usr-1")
	require.NoError(t, err)
	assert.Equal(t, "reader@example.com", got.Email)
	assert.Equal(t, "Reader", got.DisplayName)
	assert.Nil(t, got.LastLoginAt)
}

func TestGetUserByEmailCaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, testUser("usr-1", "Reader@Example.com")))

	got, err := s.GetUserByEmail(ctx, "reader@example.com")
	require.NoError(t, err)
	assert.Equal(t, "usr-1", got.ID)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, testUser("usr-1", "dup@example.com")))

	err := s.CreateUser(ctx, testUser("usr-2", "DUP@example.com"))
	assert.True(t, errors.Is(err, store.ErrAlreadyExists))
}

func TestUpdateUserLastLogin(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := testUser("usr-1", "reader@example.com")
	require.NoError(t, s.CreateUser(ctx, user))

	now := time.Now().UTC().Truncate(time.Millisecond)
	user.LastLoginAt = &now
	user.Touch()
	require.NoError(t, s.UpdateUser(ctx, user))

	got, err := s.GetUser(ctx, "usr-1")
	require.NoError(t, err)
	require.NotNil(t, got.LastLoginAt)
	assert.WithinDuration(t, now, *got.LastLoginAt, 0)
}
