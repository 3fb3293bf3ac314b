package service

import (
	"context"
	"testing"

	"github.com/IDobkov90/ufc/internal/model"
	"github.com/IDobkov90/ufc/pkg/e"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost(t *testing.T) {
	svcs, db := newTestServices(t)
	ctx := context.Background()
	author := seedUser(t, db, "author", model.RoleUser)
	replier := seedUser(t, db, "replier", model.RoleUser)
	topic := seedTopic(t, svcs, author.ID, "UFC 296 predictions")

	post, err := svcs.Post.CreatePost(ctx, topic.ID, replier.ID, "Edwards retains by decision.", nil)
	require.NoError(t, err)
	assert.False(t, post.IsEdited)
	assert.Nil(t, post.QuotedPostID)

	stored := getTopic(t, db, topic.ID)
	assert.Equal(t, 1, stored.ReplyCount)
	assert.Equal(t, replier.ID, stored.LastPostUserID)
	assert.True(t, stored.LastPostAt.After(topic.CreatedAt) || stored.LastPostAt.Equal(topic.CreatedAt))

	replierRow := getUser(t, db, replier.ID)
	assert.Equal(t, 1, replierRow.PostCount)
	assert.Equal(t, model.ReputationNewPost, replierRow.Reputation)

	_, err = svcs.Post.CreatePost(ctx, 9999, replier.ID, "ghost topic reply here", nil)
	assert.ErrorIs(t, err, e.ErrTopicNotFound)
}

func TestCreatePostValidation(t *testing.T) {
	svcs, db := newTestServices(t)
	ctx := context.Background()
	author := seedUser(t, db, "author", model.RoleUser)
	topic := seedTopic(t, svcs, author.ID, "Validation check topic")

	var valErr *e.Error
	_, err := svcs.Post.CreatePost(ctx, topic.ID, author.ID, "too short", nil)
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "content", valErr.Field)

	assert.Zero(t, getTopic(t, db, topic.ID).ReplyCount)
}

func TestCreatePostWithQuote(t *testing.T) {
	svcs, db := newTestServices(t)
	ctx := context.Background()
	author := seedUser(t, db, "author", model.RoleUser)
	topic := seedTopic(t, svcs, author.ID, "Quoting mechanics")
	quoted := seedPost(t, svcs, topic.ID, author.ID, "the original hot take")

	post, err := svcs.Post.CreatePost(ctx, topic.ID, author.ID, "quoting the original take", &quoted.ID)
	require.NoError(t, err)
	require.NotNil(t, post.QuotedPostID)
	assert.Equal(t, quoted.ID, *post.QuotedPostID)
	assert.Equal(t, 1, getPost(t, db, quoted.ID).QuoteCount)

	ghost := uint(9999)
	_, err = svcs.Post.CreatePost(ctx, topic.ID, author.ID, "quoting a missing post", &ghost)
	assert.ErrorIs(t, err, e.ErrPostNotFound)
}

func TestUpdatePost(t *testing.T) {
	svcs, db := newTestServices(t)
	ctx := context.Background()
	author := seedUser(t, db, "author", model.RoleUser)
	stranger := seedUser(t, db, "stranger", model.RoleUser)
	topic := seedTopic(t, svcs, author.ID, "Edit flow topic")
	post := seedPost(t, svcs, topic.ID, author.ID, "original post content")

	_, err := svcs.Post.UpdatePost(ctx, post.ID, "rewritten by a stranger", "", stranger.ID, model.RoleUser)
	assert.ErrorIs(t, err, e.ErrPermission)

	updated, err := svcs.Post.UpdatePost(ctx, post.ID, "corrected post content", "fixed a typo", author.ID, model.RoleUser)
	require.NoError(t, err)
	assert.True(t, updated.IsEdited)
	require.NotNil(t, updated.EditedAt)
	assert.Equal(t, "fixed a typo", updated.EditReason)
	assert.Equal(t, "corrected post content", getPost(t, db, post.ID).Content)

	// moderators may edit content they don't own
	_, err = svcs.Post.UpdatePost(ctx, post.ID, "moderated post content", "rule 3", stranger.ID, model.RoleModerator)
	assert.NoError(t, err)
}

func TestDeletePostRefreshesLastPost(t *testing.T) {
	svcs, db := newTestServices(t)
	ctx := context.Background()
	author := seedUser(t, db, "author", model.RoleUser)
	first := seedUser(t, db, "first", model.RoleUser)
	second := seedUser(t, db, "second", model.RoleUser)
	topic := seedTopic(t, svcs, author.ID, "Last post bookkeeping")

	p1 := seedPost(t, svcs, topic.ID, first.ID, "the earliest surviving reply")
	p2 := seedPost(t, svcs, topic.ID, second.ID, "the newest reply of them all")
	assert.Equal(t, second.ID, getTopic(t, db, topic.ID).LastPostUserID)

	require.NoError(t, svcs.Post.DeletePost(ctx, p2.ID, second.ID, model.RoleUser))
	stored := getTopic(t, db, topic.ID)
	assert.Equal(t, 1, stored.ReplyCount)
	assert.Equal(t, first.ID, stored.LastPostUserID, "markers fall back to the previous reply")

	require.NoError(t, svcs.Post.DeletePost(ctx, p1.ID, first.ID, model.RoleUser))
	stored = getTopic(t, db, topic.ID)
	assert.Zero(t, stored.ReplyCount)
	assert.Equal(t, author.ID, stored.LastPostUserID, "empty topic points back at its creation")
	assert.Zero(t, getUser(t, db, first.ID).PostCount)
}

func TestDeletePostCleansReferences(t *testing.T) {
	svcs, db := newTestServices(t)
	ctx := context.Background()
	author := seedUser(t, db, "author", model.RoleUser)
	topic := seedTopic(t, svcs, author.ID, "Reference cleanup")
	quoted := seedPost(t, svcs, topic.ID, author.ID, "post that will be quoted")
	quoting, err := svcs.Post.CreatePost(ctx, topic.ID, author.ID, "post that does the quoting", &quoted.ID)
	require.NoError(t, err)
	_, err = svcs.Comment.AddComment(ctx, quoted.ID, author.ID, "comment on the quoted post")
	require.NoError(t, err)

	require.NoError(t, svcs.Post.DeletePost(ctx, quoted.ID, author.ID, model.RoleUser))

	// quoting post survives, its back-reference is nulled
	assert.Nil(t, getPost(t, db, quoting.ID).QuotedPostID)

	var comments int64
	require.NoError(t, db.Model(&model.Comment{}).Where("post_id=?", quoted.ID).Count(&comments).Error)
	assert.Zero(t, comments)

	_, err = svcs.Post.GetPost(ctx, quoted.ID)
	assert.ErrorIs(t, err, e.ErrPostNotFound)
}

func TestVotePost(t *testing.T) {
	svcs, db := newTestServices(t)
	ctx := context.Background()
	author := seedUser(t, db, "author", model.RoleUser)
	voter := seedUser(t, db, "voter", model.RoleUser)
	topic := seedTopic(t, svcs, author.ID, "Voting mechanics")
	post := seedPost(t, svcs, topic.ID, author.ID, "a post worth voting on")
	baseRep := getUser(t, db, author.ID).Reputation

	// upvote
	require.NoError(t, svcs.Post.VotePost(ctx, post.ID, voter.ID, true))
	assert.Equal(t, 1, getPost(t, db, post.ID).LikeCount)
	assert.Equal(t, baseRep+model.ReputationUpvote, getUser(t, db, author.ID).Reputation)

	// repeating the same vote retracts it
	require.NoError(t, svcs.Post.VotePost(ctx, post.ID, voter.ID, true))
	assert.Zero(t, getPost(t, db, post.ID).LikeCount)
	assert.Equal(t, baseRep, getUser(t, db, author.ID).Reputation)

	// downvote only touches reputation
	require.NoError(t, svcs.Post.VotePost(ctx, post.ID, voter.ID, false))
	assert.Zero(t, getPost(t, db, post.ID).LikeCount)
	assert.Equal(t, baseRep+model.ReputationDownvote, getUser(t, db, author.ID).Reputation)

	// switching direction undoes the old delta and applies the new one
	require.NoError(t, svcs.Post.VotePost(ctx, post.ID, voter.ID, true))
	assert.Equal(t, 1, getPost(t, db, post.ID).LikeCount)
	assert.Equal(t, baseRep+model.ReputationUpvote, getUser(t, db, author.ID).Reputation)

	// retracting must fully free the vote slot for a fresh same-direction vote
	require.NoError(t, svcs.Post.VotePost(ctx, post.ID, voter.ID, true))
	require.NoError(t, svcs.Post.VotePost(ctx, post.ID, voter.ID, true))
	assert.Equal(t, 1, getPost(t, db, post.ID).LikeCount)
	assert.Equal(t, baseRep+model.ReputationUpvote, getUser(t, db, author.ID).Reputation)

	assert.ErrorIs(t, svcs.Post.VotePost(ctx, 9999, voter.ID, true), e.ErrPostNotFound)
}

func TestListByTopic(t *testing.T) {
	svcs, db := newTestServices(t)
	ctx := context.Background()
	author := seedUser(t, db, "author", model.RoleUser)
	topic := seedTopic(t, svcs, author.ID, "Thread ordering")
	seedPost(t, svcs, topic.ID, author.ID, "the first reply arrives")
	seedPost(t, svcs, topic.ID, author.ID, "the second reply arrives")

	posts, err := svcs.Post.ListByTopic(ctx, topic.ID, 1, 20)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "the first reply arrives", posts[0].Content)
}
