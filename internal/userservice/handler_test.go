package userservice

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sushihentaime/bloggraph/internal/common"
	"github.com/sushihentaime/bloggraph/internal/store"
	"github.com/sushihentaime/bloggraph/internal/store/memstore"
)

func testUser() *CreateUserRequest {
	return &CreateUserRequest{
		Name:       "Test User",
		Username:   "testuser",
		Email:      "testuser@example.com",
		Bio:        "writes tests",
		ProfilePic: "https://example.com/testuser.png",
		IsAuthor:   true,
	}
}

func setupTestEnvironment(t *testing.T) (*UserService, *common.MockMessageProducer) {
	t.Helper()

	mb := &common.MockMessageProducer{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewUserService(memstore.New(memstore.Options{UniquePairs: true}).Users, mb, logger), mb
}

func TestCreateUser(t *testing.T) {
	s, mb := setupTestEnvironment(t)
	ctx := context.Background()

	u, err := s.CreateUser(ctx, testUser())
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)

	got, err := s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u, got)
	assert.Equal(t, "Test User", got.Name)
	assert.Equal(t, "https://example.com/testuser.png", got.ProfilePic)
	assert.True(t, got.IsAuthor)

	require.Len(t, mb.Messages, 1)
	assert.Equal(t, common.UserCreatedKey, mb.Messages[0].Key)
	assert.Equal(t, common.BlogExchange, mb.Messages[0].Exchange)

	var event store.User
	require.NoError(t, json.Unmarshal(mb.Messages[0].Body, &event))
	assert.Equal(t, *u, event)
}

func TestCreateUserPublishFailure(t *testing.T) {
	s, mb := setupTestEnvironment(t)
	mb.Err = errors.New("broker down")

	u, err := s.CreateUser(context.Background(), testUser())
	assert.NoError(t, err)
	assert.NotNil(t, u)
}

func TestGetUser(t *testing.T) {
	s, _ := setupTestEnvironment(t)
	ctx := context.Background()

	u, err := s.CreateUser(ctx, testUser())
	require.NoError(t, err)

	testCases := []struct {
		name        string
		id          string
		expectedErr error
	}{
		{name: "existing user", id: u.ID},
		{name: "missing user", id: "does-not-exist", expectedErr: store.ErrRecordNotFound},
		{name: "empty id", id: "", expectedErr: store.ErrRecordNotFound},
		{name: "blank id", id: "   ", expectedErr: store.ErrRecordNotFound},
		{name: "over-long id", id: strings.Repeat("x", 65), expectedErr: store.ErrRecordNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.GetUser(ctx, tc.id)
			if tc.expectedErr != nil {
				assert.Equal(t, tc.expectedErr, err)
				assert.Nil(t, got)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, u.ID, got.ID)
		})
	}
}

func TestGetAuthors(t *testing.T) {
	s, _ := setupTestEnvironment(t)
	ctx := context.Background()

	author, err := s.CreateUser(ctx, testUser())
	require.NoError(t, err)

	reader := testUser()
	reader.Username = "reader"
	reader.IsAuthor = false
	_, err = s.CreateUser(ctx, reader)
	require.NoError(t, err)

	users, err := s.GetUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	authors, err := s.GetAuthors(ctx)
	require.NoError(t, err)
	require.Len(t, authors, 1)
	assert.Equal(t, author.ID, authors[0].ID)
}

func TestDeleteUser(t *testing.T) {
	s, mb := setupTestEnvironment(t)
	ctx := context.Background()

	u, err := s.CreateUser(ctx, testUser())
	require.NoError(t, err)

	deleted, err := s.DeleteUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, deleted.ID)
	assert.Equal(t, []common.BindingKey{common.UserCreatedKey, common.UserDeletedKey}, mb.Keys())

	_, err = s.GetUser(ctx, u.ID)
	assert.ErrorIs(t, err, store.ErrRecordNotFound)

	_, err = s.DeleteUser(ctx, u.ID)
	assert.ErrorIs(t, err, store.ErrRecordNotFound)
	assert.Len(t, mb.Messages, 2)
}
