// Package storage abstracts the persistence medium for the post and comment
// collections. Collections are read and written wholesale as JSON documents;
// a write replaces the entire collection or fails, never partially applies.
package storage

import (
	"context"
	"errors"
)

// Collection keys used by the repositories.
const (
	PostsKey    = "blog_posts"
	CommentsKey = "blog_comments"
)

// ErrNotFound reports that a collection key has never been written.
var ErrNotFound = errors.New("storage: collection not found")

// Adapter is the capability interface every backend satisfies. Backends are
// swappable without changing repository logic. Concurrent writers follow a
// last-write-wins policy; there is no cross-process locking.
type Adapter interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, data []byte) error
}
