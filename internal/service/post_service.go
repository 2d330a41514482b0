package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"problem-hunt-api/internal/model"
	"problem-hunt-api/internal/store"
	"problem-hunt-api/pkg/apierror"
)

type PostService struct {
	store store.Store
}

func NewPostService(st store.Store) *PostService {
	return &PostService{store: st}
}

func (s *PostService) Create(ctx context.Context, userID string, req model.CreatePostRequest) (*model.Post, error) {
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		return nil, apierror.BadRequest("title and content are required")
	}

	now := nowStamp()
	post := &model.Post{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Content:   content,
		Tags:      req.Tags,
		Upvotes:   0,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if post.Tags == nil {
		post.Tags = model.StringList{}
	}

	if err := s.store.Create(ctx, store.CollectionPosts, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (s *PostService) List(ctx context.Context, userID string, limit int, offset int) (*model.PostList, error) {
	docs, err := s.store.Query(ctx, store.CollectionPosts, store.Filter{"user_id": userID})
	if err != nil {
		return nil, err
	}

	posts := make([]model.Post, 0, len(docs))
	for _, doc := range docs {
		var post model.Post
		if err := json.Unmarshal(doc, &post); err != nil {
			return nil, fmt.Errorf("decode post: %w", err)
		}
		posts = append(posts, post)
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt > posts[j].CreatedAt
	})

	limit, offset = clampPage(limit, offset)
	total := len(posts)
	start, end := pageBounds(total, limit, offset)

	return &model.PostList{
		Posts:  posts[start:end],
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}, nil
}

func (s *PostService) Delete(ctx context.Context, subject string, postID string) error {
	raw, err := s.store.Find(ctx, store.CollectionPosts, postID)
	if errors.Is(err, model.ErrNotFound) {
		return apierror.NotFound("post not found")
	}
	if err != nil {
		return err
	}

	var post model.Post
	if err := json.Unmarshal(raw, &post); err != nil {
		return fmt.Errorf("decode post %s: %w", postID, err)
	}

	if err := requireOwner(subject, post.UserID, "you can only delete your own posts"); err != nil {
		return err
	}

	return s.store.Delete(ctx, store.CollectionPosts, postID, post.UserID)
}
