package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openwave-social/openwave/internal/domain"
)

func TestCreateAndGetPost(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice")

	post := env.createPost(t, alice.User.ID, "hello world")
	assert.Equal(t, "alice", post.AuthorUsername)
	assert.Equal(t, int64(0), post.LikeCount)

	got, err := env.postService.GetPost(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got.Content)

	_, err = env.postService.GetPost(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestPostMutationsAuthorOnly(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	ctx := context.Background()

	post := env.createPost(t, alice.User.ID, "original")

	_, err := env.postService.ReplacePost(ctx, bob.User.ID, post.ID, &domain.CreatePostRequest{Content: "hijacked"})
	assert.ErrorIs(t, err, ErrNotAuthor)

	err = env.postService.DeletePost(ctx, bob.User.ID, post.ID)
	assert.ErrorIs(t, err, ErrNotAuthor)

	updated, err := env.postService.ReplacePost(ctx, alice.User.ID, post.ID, &domain.CreatePostRequest{Content: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
}

func TestPatchPostPartialUpdate(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	ctx := context.Background()

	post := env.createPost(t, alice.User.ID, "original")

	// empty patch leaves the post untouched
	got, err := env.postService.PatchPost(ctx, alice.User.ID, post.ID, &domain.UpdatePostRequest{})
	require.NoError(t, err)
	assert.Equal(t, "original", got.Content)

	content := "patched"
	got, err = env.postService.PatchPost(ctx, alice.User.ID, post.ID, &domain.UpdatePostRequest{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, "patched", got.Content)
}

func TestPatchPostRejectsBlankContent(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	ctx := context.Background()

	post := env.createPost(t, alice.User.ID, "original")

	for _, blank := range []string{"", "   ", "\n\t"} {
		content := blank
		_, err := env.postService.PatchPost(ctx, alice.User.ID, post.ID, &domain.UpdatePostRequest{Content: &content})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "Content must not be blank", verr.Fields["content"])
	}

	// the post is untouched
	got, err := env.postService.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", got.Content)
}

func TestLikeTwiceConflictsAndCountsOnce(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	ctx := context.Background()

	post := env.createPost(t, alice.User.ID, "likeable")

	require.NoError(t, env.postService.Like(ctx, bob.User.ID, post.ID))
	assert.ErrorIs(t, env.postService.Like(ctx, bob.User.ID, post.ID), ErrAlreadyLiked)

	got, err := env.postService.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.LikeCount)

	// the author gets exactly one like notification
	list, err := env.notificationService.List(ctx, alice.User.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.NotificationLike, list[0].Type)
	assert.Equal(t, "bob", list[0].SenderUsername)
}

func TestLikeOwnPostSkipsNotification(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	ctx := context.Background()

	post := env.createPost(t, alice.User.ID, "self like")
	require.NoError(t, env.postService.Like(ctx, alice.User.ID, post.ID))

	list, err := env.notificationService.List(ctx, alice.User.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUnlikeWithoutLikeConflicts(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	ctx := context.Background()

	post := env.createPost(t, alice.User.ID, "post")

	assert.ErrorIs(t, env.postService.Unlike(ctx, bob.User.ID, post.ID), ErrNotLiked)

	require.NoError(t, env.postService.Like(ctx, bob.User.ID, post.ID))
	require.NoError(t, env.postService.Unlike(ctx, bob.User.ID, post.ID))

	got, err := env.postService.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.LikeCount)
}

func TestCommentsLifecycle(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	ctx := context.Background()

	post := env.createPost(t, alice.User.ID, "post")

	comment, err := env.postService.CreateComment(ctx, bob.User.ID, post.ID, &domain.CreateCommentRequest{Content: "nice"})
	require.NoError(t, err)
	assert.Equal(t, "bob", comment.AuthorUsername)

	// comment on someone else's post notifies the author
	list, err := env.notificationService.List(ctx, alice.User.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.NotificationComment, list[0].Type)

	// author-only comment mutation
	_, err = env.postService.ReplaceComment(ctx, alice.User.ID, post.ID, comment.ID, &domain.CreateCommentRequest{Content: "edit"})
	assert.ErrorIs(t, err, ErrNotAuthor)

	updated, err := env.postService.ReplaceComment(ctx, bob.User.ID, post.ID, comment.ID, &domain.CreateCommentRequest{Content: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)

	require.NoError(t, env.postService.DeleteComment(ctx, bob.User.ID, post.ID, comment.ID))
	_, err = env.postService.GetComment(ctx, post.ID, comment.ID)
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestCommentOnMissingPost(t *testing.T) {
	env := newTestEnv(t)
	bob := env.register(t, "bob")

	_, err := env.postService.CreateComment(context.Background(), bob.User.ID, "missing", &domain.CreateCommentRequest{Content: "hi"})
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, err = env.postService.ListComments(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestDeletePostRemovesComments(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	ctx := context.Background()

	post := env.createPost(t, alice.User.ID, "post")
	comment, err := env.postService.CreateComment(ctx, bob.User.ID, post.ID, &domain.CreateCommentRequest{Content: "hi"})
	require.NoError(t, err)

	require.NoError(t, env.postService.DeletePost(ctx, alice.User.ID, post.ID))

	_, err = env.postService.GetComment(ctx, post.ID, comment.ID)
	assert.ErrorIs(t, err, ErrCommentNotFound)
}
