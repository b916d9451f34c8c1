package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HimanshuNaik19/Blog-Platform/repository"
	"github.com/HimanshuNaik19/Blog-Platform/storage"
)

func newCommentRepo(t *testing.T) *repository.StoreCommentRepository {
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return repository.NewStoreCommentRepository(store)
}

func TestAddAndListInsertionOrder(t *testing.T) {
	repo := newCommentRepo(t)
	ctx := context.Background()

	first, err := repo.Add(ctx, "p1", "jane", "first!")
	require.NoError(t, err)
	second, err := repo.Add(ctx, "p1", "john", "second")
	require.NoError(t, err)
	_, err = repo.Add(ctx, "p2", "jane", "other post")
	require.NoError(t, err)

	comments, err := repo.ListByPost(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, first.ID, comments[0].ID)
	assert.Equal(t, second.ID, comments[1].ID)
	assert.Equal(t, "jane", comments[0].Author)
}

func TestListByPostEmptyForUnknownPost(t *testing.T) {
	repo := newCommentRepo(t)

	comments, err := repo.ListByPost(context.Background(), "nope")
	require.NoError(t, err)
	assert.Empty(t, comments)
}

// Comment creation does not validate that the post exists: dangling comments
// are accepted and simply never surface once the post is gone.
func TestAddIsPermissiveAboutPostID(t *testing.T) {
	repo := newCommentRepo(t)
	ctx := context.Background()

	comment, err := repo.Add(ctx, "never-existed", "jane", "hello?")
	require.NoError(t, err)
	require.NotNil(t, comment)

	comments, err := repo.ListByPost(ctx, "never-existed")
	require.NoError(t, err)
	assert.Len(t, comments, 1)
}

func TestAddReplyNestsOneTier(t *testing.T) {
	repo := newCommentRepo(t)
	ctx := context.Background()

	parent, err := repo.Add(ctx, "p1", "jane", "question")
	require.NoError(t, err)

	reply, err := repo.AddReply(ctx, "p1", parent.ID, "john", "answer")
	require.NoError(t, err)
	require.NotNil(t, reply)
	assert.Empty(t, reply.Replies)

	comments, err := repo.ListByPost(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	require.Len(t, comments[0].Replies, 1)
	assert.Equal(t, "answer", comments[0].Replies[0].Text)

	// A reply is not addressable as a parent: the tree stays two tiers deep.
	nested, err := repo.AddReply(ctx, "p1", reply.ID, "jane", "nested?")
	require.NoError(t, err)
	assert.Nil(t, nested)
}

func TestAddReplyMissingParentFailsSoftly(t *testing.T) {
	repo := newCommentRepo(t)

	reply, err := repo.AddReply(context.Background(), "p1", "ghost", "john", "hello")
	require.NoError(t, err)
	assert.Nil(t, reply)
}

func TestAddReplyParentMustMatchPost(t *testing.T) {
	repo := newCommentRepo(t)
	ctx := context.Background()

	parent, err := repo.Add(ctx, "p1", "jane", "on p1")
	require.NoError(t, err)

	reply, err := repo.AddReply(ctx, "p2", parent.ID, "john", "wrong post")
	require.NoError(t, err)
	assert.Nil(t, reply)
}

func TestRepliesKeepInsertionOrder(t *testing.T) {
	repo := newCommentRepo(t)
	ctx := context.Background()

	parent, err := repo.Add(ctx, "p1", "jane", "thread")
	require.NoError(t, err)
	for _, text := range []string{"r1", "r2", "r3"} {
		_, err := repo.AddReply(ctx, "p1", parent.ID, "john", text)
		require.NoError(t, err)
	}

	comments, err := repo.ListByPost(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	require.Len(t, comments[0].Replies, 3)
	assert.Equal(t, "r1", comments[0].Replies[0].Text)
	assert.Equal(t, "r3", comments[0].Replies[2].Text)
}
