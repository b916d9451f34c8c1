package repository_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HimanshuNaik19/Blog-Platform/models"
	"github.com/HimanshuNaik19/Blog-Platform/repository"
	"github.com/HimanshuNaik19/Blog-Platform/storage"
)

func newPostRepo(t *testing.T) *repository.StorePostRepository {
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return repository.NewStorePostRepository(store)
}

func authorUser() *models.User {
	return &models.User{ID: "u2", Username: "john", Role: models.RoleAuthor}
}

func TestCreateDerivesExcerptFromLongContent(t *testing.T) {
	repo := newPostRepo(t)
	content := strings.Repeat("x", 300)

	post, err := repo.Create(context.Background(), authorUser(), repository.PostInput{
		Title:   "A",
		Content: content,
	})
	require.NoError(t, err)

	assert.Equal(t, content[:150]+"...", post.Excerpt)
}

func TestCreateDerivesExcerptFromShortContent(t *testing.T) {
	repo := newPostRepo(t)

	post, err := repo.Create(context.Background(), authorUser(), repository.PostInput{
		Title:   "short",
		Content: "hello world",
	})
	require.NoError(t, err)

	// Content at or under the cutoff is used verbatim, ellipsis still appended.
	assert.Equal(t, "hello world...", post.Excerpt)
}

func TestCreateKeepsCallerExcerpt(t *testing.T) {
	repo := newPostRepo(t)

	post, err := repo.Create(context.Background(), authorUser(), repository.PostInput{
		Title:   "A",
		Content: strings.Repeat("x", 300),
		Excerpt: "my own summary",
	})
	require.NoError(t, err)

	assert.Equal(t, "my own summary", post.Excerpt)
}

func TestCreateNormalizesTags(t *testing.T) {
	repo := newPostRepo(t)

	post, err := repo.Create(context.Background(), authorUser(), repository.PostInput{
		Title:   "A",
		Content: "x",
		Tags:    []string{"a", " b ", "b", "", "  "},
	})
	require.NoError(t, err)

	// Trimmed, empties dropped, duplicates preserved.
	assert.Equal(t, []string{"a", "b", "b"}, post.Tags)
}

func TestCreateSnapshotsAuthor(t *testing.T) {
	repo := newPostRepo(t)
	viewer := authorUser()

	post, err := repo.Create(context.Background(), viewer, repository.PostInput{Title: "A", Content: "x"})
	require.NoError(t, err)

	assert.Equal(t, models.Author{ID: "u2", Username: "john"}, post.Author)
	assert.Equal(t, post.CreatedAt, post.UpdatedAt)
	assert.NotEmpty(t, post.ID)
}

func TestCreateDeniedForReaderAndUnauthenticated(t *testing.T) {
	repo := newPostRepo(t)
	input := repository.PostInput{Title: "A", Content: "x"}

	_, err := repo.Create(context.Background(), &models.User{ID: "u3", Role: models.RoleUser}, input)
	assert.ErrorIs(t, err, repository.ErrForbidden)

	_, err = repo.Create(context.Background(), nil, input)
	assert.ErrorIs(t, err, repository.ErrForbidden)
}

func TestGetByIDRoundTrip(t *testing.T) {
	repo := newPostRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, authorUser(), repository.PostInput{
		Title:   "Round trip",
		Content: "body",
		Tags:    []string{"go"},
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *created, *got)
}

func TestGetByIDMissingFailsSoftly(t *testing.T) {
	repo := newPostRepo(t)

	got, err := repo.GetByID(context.Background(), "nope")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestListAllNewestFirst(t *testing.T) {
	repo := newPostRepo(t)
	ctx := context.Background()
	viewer := authorUser()

	first, err := repo.Create(ctx, viewer, repository.PostInput{Title: "first", Content: "x"})
	require.NoError(t, err)
	second, err := repo.Create(ctx, viewer, repository.PostInput{Title: "second", Content: "x"})
	require.NoError(t, err)

	posts, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, second.ID, posts[0].ID)
	assert.Equal(t, first.ID, posts[1].ID)
}

func TestUpdateMergesAndBumpsUpdatedAt(t *testing.T) {
	repo := newPostRepo(t)
	ctx := context.Background()
	viewer := authorUser()

	created, err := repo.Create(ctx, viewer, repository.PostInput{
		Title:   "before",
		Content: "body",
		Excerpt: "summary",
		Tags:    []string{"a"},
	})
	require.NoError(t, err)

	title := "after"
	updated, err := repo.Update(ctx, viewer, created.ID, repository.PostChanges{Title: &title})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "after", updated.Title)
	assert.Equal(t, "body", updated.Content)
	assert.Equal(t, "summary", updated.Excerpt)
	assert.Equal(t, []string{"a"}, updated.Tags)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
}

func TestUpdateRederivesBlankExcerpt(t *testing.T) {
	repo := newPostRepo(t)
	ctx := context.Background()
	viewer := authorUser()

	created, err := repo.Create(ctx, viewer, repository.PostInput{
		Title:   "A",
		Content: "old content",
		Excerpt: "keep me",
	})
	require.NoError(t, err)

	content := strings.Repeat("y", 200)
	blank := ""
	updated, err := repo.Update(ctx, viewer, created.ID, repository.PostChanges{
		Content: &content,
		Excerpt: &blank,
	})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, content[:150]+"...", updated.Excerpt)
}

func TestUpdateMissingFailsSoftly(t *testing.T) {
	repo := newPostRepo(t)

	title := "x"
	updated, err := repo.Update(context.Background(), authorUser(), "nope", repository.PostChanges{Title: &title})
	assert.NoError(t, err)
	assert.Nil(t, updated)
}

func TestUpdateDeniedForNonOwner(t *testing.T) {
	repo := newPostRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, authorUser(), repository.PostInput{Title: "A", Content: "x"})
	require.NoError(t, err)

	title := "hijacked"
	other := &models.User{ID: "u9", Username: "eve", Role: models.RoleAuthor}
	_, err = repo.Update(ctx, other, created.ID, repository.PostChanges{Title: &title})
	assert.ErrorIs(t, err, repository.ErrForbidden)

	// Admin may edit anyone's post.
	admin := &models.User{ID: "u1", Username: "root", Role: models.RoleAdmin}
	updated, err := repo.Update(ctx, admin, created.ID, repository.PostChanges{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "hijacked", updated.Title)
}

func TestDeleteRemovesPost(t *testing.T) {
	repo := newPostRepo(t)
	ctx := context.Background()
	viewer := authorUser()

	created, err := repo.Create(ctx, viewer, repository.PostInput{Title: "A", Content: "x"})
	require.NoError(t, err)

	removed, err := repo.Delete(ctx, viewer, created.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	posts, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, posts)

	removed, err = repo.Delete(ctx, viewer, created.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestDeriveExcerptBoundary(t *testing.T) {
	exact := strings.Repeat("a", 150)
	assert.Equal(t, exact+"...", repository.DeriveExcerpt(exact))

	over := strings.Repeat("a", 151)
	assert.Equal(t, over[:150]+"...", repository.DeriveExcerpt(over))

	// Multi-byte runes count as single characters.
	wide := strings.Repeat("好", 160)
	assert.Equal(t, strings.Repeat("好", 150)+"...", repository.DeriveExcerpt(wide))
}
