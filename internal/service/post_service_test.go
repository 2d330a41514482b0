package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"problem-hunt-api/internal/model"
	"problem-hunt-api/internal/store"
)

func TestPostService_CreateValidation(t *testing.T) {
	svc := NewPostService(store.NewMemory())
	ctx := context.Background()

	_, err := svc.Create(ctx, "u1", model.CreatePostRequest{Title: "only title"})
	assertStatus(t, err, http.StatusBadRequest)

	_, err = svc.Create(ctx, "u1", model.CreatePostRequest{Content: "only content"})
	assertStatus(t, err, http.StatusBadRequest)

	post, err := svc.Create(ctx, "u1", model.CreatePostRequest{Title: "hello", Content: "world"})
	require.NoError(t, err)
	assert.Equal(t, "u1", post.UserID)
	assert.Equal(t, model.StringList{}, post.Tags)
}

func TestPostService_ListScopedToUser(t *testing.T) {
	svc := NewPostService(store.NewMemory())
	ctx := context.Background()

	_, err := svc.Create(ctx, "u1", model.CreatePostRequest{Title: "mine", Content: "x"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "u2", model.CreatePostRequest{Title: "theirs", Content: "y"})
	require.NoError(t, err)

	list, err := svc.List(ctx, "u1", 10, 0)
	require.NoError(t, err)
	require.Len(t, list.Posts, 1)
	assert.Equal(t, "mine", list.Posts[0].Title)
	assert.Equal(t, 1, list.Total)
}

func TestPostService_DeleteOwnership(t *testing.T) {
	svc := NewPostService(store.NewMemory())
	ctx := context.Background()

	post, err := svc.Create(ctx, "u1", model.CreatePostRequest{Title: "t", Content: "c"})
	require.NoError(t, err)

	err = svc.Delete(ctx, "u2", post.ID)
	assertStatus(t, err, http.StatusForbidden)

	require.NoError(t, svc.Delete(ctx, "u1", post.ID))

	err = svc.Delete(ctx, "u1", post.ID)
	assertStatus(t, err, http.StatusNotFound)
}
