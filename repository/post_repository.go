// Package repository implements the post and comment persistence contracts
// over a storage.Adapter. Collections are loaded, mutated and written back
// wholesale; a per-repository mutex serializes read-modify-write cycles
// within the process, and concurrent processes are last-write-wins.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/HimanshuNaik19/Blog-Platform/auth"
	"github.com/HimanshuNaik19/Blog-Platform/models"
	"github.com/HimanshuNaik19/Blog-Platform/storage"
)

// ErrForbidden is returned when the viewer fails the authorization guard.
// Mutations re-check the guard here regardless of what the handler already
// verified.
var ErrForbidden = errors.New("repository: action not permitted")

// excerptLength is how many leading characters of content form a derived excerpt.
const excerptLength = 150

// PostInput carries the caller-supplied fields for a new post.
type PostInput struct {
	Title   string
	Content string
	Excerpt string
	Tags    []string
}

// PostChanges carries a partial update. Nil fields are left untouched;
// a nil Tags slice keeps the existing tags.
type PostChanges struct {
	Title   *string
	Content *string
	Excerpt *string
	Tags    []string
}

// PostRepository defines CRUD over posts. Lookups fail softly: a missing id
// yields (nil, nil), not an error.
type PostRepository interface {
	ListAll(ctx context.Context) ([]models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	Create(ctx context.Context, viewer *models.User, input PostInput) (*models.Post, error)
	Update(ctx context.Context, viewer *models.User, id string, changes PostChanges) (*models.Post, error)
	Delete(ctx context.Context, viewer *models.User, id string) (bool, error)
}

// StorePostRepository is the storage.Adapter backed implementation.
type StorePostRepository struct {
	store storage.Adapter
	mu    sync.Mutex
}

// NewStorePostRepository creates a PostRepository over the given adapter.
func NewStorePostRepository(store storage.Adapter) *StorePostRepository {
	return &StorePostRepository{store: store}
}

// ListAll returns the full collection in stored order, newest first.
func (r *StorePostRepository) ListAll(ctx context.Context) ([]models.Post, error) {
	return r.load(ctx)
}

// GetByID returns the post or (nil, nil) when the id has no match.
func (r *StorePostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	posts, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if posts[i].ID == id {
			return &posts[i], nil
		}
	}
	return nil, nil
}

// Create persists a new post, prepending it so listings stay newest first.
// The author snapshot is taken from the viewer; a blank excerpt is derived
// from content once, here, and never recomputed on read.
func (r *StorePostRepository) Create(ctx context.Context, viewer *models.User, input PostInput) (*models.Post, error) {
	if !auth.CanMutate(viewer, nil, auth.ActionCreate) {
		return nil, ErrForbidden
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	posts, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	post := models.Post{
		ID:      uuid.NewString(),
		Title:   input.Title,
		Content: input.Content,
		Excerpt: input.Excerpt,
		Author: models.Author{
			ID:       viewer.ID,
			Username: viewer.Username,
		},
		Tags:      NormalizeTags(input.Tags),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if strings.TrimSpace(post.Excerpt) == "" {
		post.Excerpt = DeriveExcerpt(post.Content)
	}

	posts = append([]models.Post{post}, posts...)
	if err := r.save(ctx, posts); err != nil {
		return nil, err
	}
	return &post, nil
}

// Update merges changes over the stored record and refreshes UpdatedAt.
// The id and CreatedAt never change. Returns (nil, nil) when id is unmatched.
func (r *StorePostRepository) Update(ctx context.Context, viewer *models.User, id string, changes PostChanges) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	posts, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range posts {
		if posts[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, nil
	}

	if !auth.CanMutate(viewer, &posts[idx], auth.ActionEdit) {
		return nil, ErrForbidden
	}

	post := &posts[idx]
	if changes.Title != nil {
		post.Title = *changes.Title
	}
	if changes.Content != nil {
		post.Content = *changes.Content
	}
	if changes.Excerpt != nil {
		post.Excerpt = *changes.Excerpt
	}
	if changes.Tags != nil {
		post.Tags = NormalizeTags(changes.Tags)
	}
	// A blank excerpt after the merge is re-derived from the merged content.
	// This happens only on explicit update, matching creation semantics.
	if strings.TrimSpace(post.Excerpt) == "" {
		post.Excerpt = DeriveExcerpt(post.Content)
	}
	post.UpdatedAt = time.Now().UTC()

	if err := r.save(ctx, posts); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes the post and reports whether a record was removed.
// Associated comments are left in place; they dangle by design.
func (r *StorePostRepository) Delete(ctx context.Context, viewer *models.User, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	posts, err := r.load(ctx)
	if err != nil {
		return false, err
	}

	idx := -1
	for i := range posts {
		if posts[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false, nil
	}

	if !auth.CanMutate(viewer, &posts[idx], auth.ActionDelete) {
		return false, ErrForbidden
	}

	posts = append(posts[:idx], posts[idx+1:]...)
	if err := r.save(ctx, posts); err != nil {
		return false, err
	}
	return true, nil
}

func (r *StorePostRepository) load(ctx context.Context) ([]models.Post, error) {
	data, err := r.store.Read(ctx, storage.PostsKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []models.Post{}, nil
		}
		return nil, fmt.Errorf("load posts: %w", err)
	}
	var posts []models.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	return posts, nil
}

func (r *StorePostRepository) save(ctx context.Context, posts []models.Post) error {
	data, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("encode posts: %w", err)
	}
	if err := r.store.Write(ctx, storage.PostsKey, data); err != nil {
		return fmt.Errorf("save posts: %w", err)
	}
	return nil
}

// DeriveExcerpt produces the listing summary for a post whose caller supplied
// no excerpt: the first 150 characters of content, always followed by an
// ellipsis marker, even when content is shorter than the cutoff.
func DeriveExcerpt(content string) string {
	runes := []rune(content)
	if len(runes) > excerptLength {
		return string(runes[:excerptLength]) + "..."
	}
	return content + "..."
}

// NormalizeTags trims surrounding whitespace and drops empty entries.
// Duplicates are preserved; order is the caller's.
func NormalizeTags(tags []string) []string {
	out := []string{}
	for _, tag := range tags {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
