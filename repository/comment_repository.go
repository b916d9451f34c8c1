package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/HimanshuNaik19/Blog-Platform/models"
	"github.com/HimanshuNaik19/Blog-Platform/storage"
)

// CommentRepository is append-only: comments are never edited or removed.
// ListByPost keeps insertion order, which is also display order.
type CommentRepository interface {
	ListByPost(ctx context.Context, postID string) ([]models.Comment, error)
	Add(ctx context.Context, postID, author, text string) (*models.Comment, error)
	AddReply(ctx context.Context, postID, parentID, author, text string) (*models.Comment, error)
}

// StoreCommentRepository keeps the whole comment collection under a single
// storage key and filters per post on read. At this scale a full scan is
// fine; an index by postId would be the first change for a bigger deployment.
type StoreCommentRepository struct {
	store storage.Adapter
	mu    sync.Mutex
}

// NewStoreCommentRepository creates a CommentRepository over the given adapter.
func NewStoreCommentRepository(store storage.Adapter) *StoreCommentRepository {
	return &StoreCommentRepository{store: store}
}

// ListByPost returns the post's top-level comments, replies nested, in the
// order they were added.
func (r *StoreCommentRepository) ListByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	comments, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	out := []models.Comment{}
	for _, c := range comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}

// Add appends a top-level comment. The postID is not checked against live
// posts; comments for deleted or never-existing posts are accepted and
// simply never listed.
func (r *StoreCommentRepository) Add(ctx context.Context, postID, author, text string) (*models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	comments, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	comment := models.Comment{
		ID:        uuid.NewString(),
		PostID:    postID,
		Author:    author,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	comments = append(comments, comment)
	if err := r.save(ctx, comments); err != nil {
		return nil, err
	}
	return &comment, nil
}

// AddReply appends a reply to an existing top-level comment. Replies never
// nest further: the structure is a fixed two-tier tree. Returns (nil, nil)
// when the parent is absent or is itself a reply.
func (r *StoreCommentRepository) AddReply(ctx context.Context, postID, parentID, author, text string) (*models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	comments, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range comments {
		if comments[i].ID == parentID && comments[i].PostID == postID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, nil
	}

	reply := models.Comment{
		ID:        uuid.NewString(),
		PostID:    postID,
		Author:    author,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	comments[idx].Replies = append(comments[idx].Replies, reply)
	if err := r.save(ctx, comments); err != nil {
		return nil, err
	}
	return &reply, nil
}

func (r *StoreCommentRepository) load(ctx context.Context) ([]models.Comment, error) {
	data, err := r.store.Read(ctx, storage.CommentsKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []models.Comment{}, nil
		}
		return nil, fmt.Errorf("load comments: %w", err)
	}
	var comments []models.Comment
	if err := json.Unmarshal(data, &comments); err != nil {
		return nil, fmt.Errorf("decode comments: %w", err)
	}
	return comments, nil
}

func (r *StoreCommentRepository) save(ctx context.Context, comments []models.Comment) error {
	data, err := json.Marshal(comments)
	if err != nil {
		return fmt.Errorf("encode comments: %w", err)
	}
	if err := r.store.Write(ctx, storage.CommentsKey, data); err != nil {
		return fmt.Errorf("save comments: %w", err)
	}
	return nil
}
