package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/IDobkov90/ufc/internal/model"
	"github.com/IDobkov90/ufc/pkg/e"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchBlankQuery(t *testing.T) {
	svcs, _ := newTestServices(t)

	result, err := svcs.Search.Search(context.Background(), "   ", "all")
	require.NoError(t, err)
	assert.Empty(t, result.Query)
	assert.Empty(t, result.Topics)
	assert.Empty(t, result.Posts)
	assert.Empty(t, result.Users)
}

func TestSearchInvalidKind(t *testing.T) {
	svcs, _ := newTestServices(t)

	_, err := svcs.Search.Search(context.Background(), "edwards", "fighters")
	assert.ErrorIs(t, err, e.ErrInvalidArgs)
}

func TestSearchMatchesPerKind(t *testing.T) {
	svcs, db := newTestServices(t)
	ctx := context.Background()
	author := seedUser(t, db, "cagewatcher", model.RoleUser)
	topic := seedTopic(t, svcs, author.ID, "Leon Edwards headkick rewatch")
	seedPost(t, svcs, topic.ID, author.ID, "that EDWARDS headkick still gives me chills")
	require.NoError(t, db.Model(author).Update("bio", "Edwards fan since 2015").Error)

	result, err := svcs.Search.Search(ctx, "edwards", "all")
	require.NoError(t, err)
	assert.Equal(t, "edwards", result.Query)
	require.Len(t, result.Topics, 1)
	require.Len(t, result.Posts, 1)
	require.Len(t, result.Users, 1)
	assert.Equal(t, "cagewatcher", result.Topics[0].AuthorUsername)
	assert.Equal(t, "General UFC Discussion", result.Topics[0].CategoryName)
	assert.Equal(t, topic.ID, result.Posts[0].TopicID)
	assert.Equal(t, "cagewatcher", result.Users[0].Username)

	// kind filtering: a post-only match leaves the other kinds empty
	result, err = svcs.Search.Search(ctx, "chills", "all")
	require.NoError(t, err)
	assert.Empty(t, result.Topics)
	require.Len(t, result.Posts, 1)
	assert.Empty(t, result.Users)

	result, err = svcs.Search.Search(ctx, "edwards", "users")
	require.NoError(t, err)
	assert.Empty(t, result.Topics)
	assert.Empty(t, result.Posts)
	require.Len(t, result.Users, 1)
}

func TestSearchCaseInsensitive(t *testing.T) {
	svcs, db := newTestServices(t)
	author := seedUser(t, db, "shouter", model.RoleUser)
	seedTopic(t, svcs, author.ID, "PEREIRA VS ANKALAEV REMATCH")

	result, err := svcs.Search.Search(context.Background(), "pereira", "topics")
	require.NoError(t, err)
	require.Len(t, result.Topics, 1)
}

func TestSearchCaps(t *testing.T) {
	svcs, db := newTestServices(t)
	ctx := context.Background()
	author := seedUser(t, db, "prolific", model.RoleUser)
	for i := 0; i < model.SearchLimitAll+5; i++ {
		seedTopic(t, svcs, author.ID, fmt.Sprintf("Grappling breakdown number %d", i))
	}

	result, err := svcs.Search.Search(ctx, "grappling", "all")
	require.NoError(t, err)
	assert.Len(t, result.Topics, model.SearchLimitAll)

	result, err = svcs.Search.Search(ctx, "grappling", "topics")
	require.NoError(t, err)
	assert.Len(t, result.Topics, model.SearchLimitAll+5, "single-kind search uses the wider cap")
}

func TestExcerpt(t *testing.T) {
	short := "fits entirely"
	assert.Equal(t, short, Excerpt(short, model.ExcerptMaxLength))

	long := strings.Repeat("b", model.ExcerptMaxLength+40)
	got := Excerpt(long, model.ExcerptMaxLength)
	assert.Len(t, got, model.ExcerptMaxLength+3)
	assert.True(t, strings.HasSuffix(got, "..."))

	exact := strings.Repeat("c", model.ExcerptMaxLength)
	assert.Equal(t, exact, Excerpt(exact, model.ExcerptMaxLength))
}
