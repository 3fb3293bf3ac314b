package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/IDobkov90/ufc/internal/model"
	"github.com/IDobkov90/ufc/internal/repository"
	"github.com/IDobkov90/ufc/pkg/e"

	"golang.org/x/sync/singleflight"
)

// Unindexed substring search over topics, posts and users. It deliberately
// matches the store's natural iteration order (id order) and does no
// ranking; optimizing this scan is out of scope.
type SearchService struct {
	topicRepo *repository.TopicRepository
	postRepo  *repository.PostRepository
	userRepo  *repository.UserRepository
	sf        singleflight.Group
}

func NewSearchService(topicRepo *repository.TopicRepository, postRepo *repository.PostRepository,
	userRepo *repository.UserRepository) *SearchService {
	return &SearchService{topicRepo: topicRepo, postRepo: postRepo, userRepo: userRepo}
}

const (
	SearchKindAll    = "all"
	SearchKindTopics = "topics"
	SearchKindPosts  = "posts"
	SearchKindUsers  = "users"
)

func emptyResult(query string) *SearchResult {
	return &SearchResult{
		Query:  query,
		Topics: []TopicSearchResult{},
		Posts:  []PostSearchResult{},
		Users:  []UserSearchResult{},
	}
}

// Search returns a bounded result set per entity kind. A blank query yields
// an empty result immediately without touching the store; the caller tells
// "no query yet" apart from "no matches" by the Query field.
func (s *SearchService) Search(ctx context.Context, query, kind string) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return emptyResult(""), nil
	}
	if kind == "" {
		kind = SearchKindAll
	}
	switch kind {
	case SearchKindAll, SearchKindTopics, SearchKindPosts, SearchKindUsers:
	default:
		return nil, e.ErrInvalidArgs
	}
	// collapse identical concurrent scans
	v, err, _ := s.sf.Do(kind+"\x00"+query, func() (interface{}, error) {
		return s.search(ctx, query, kind)
	})
	if err != nil {
		return nil, err
	}
	return v.(*SearchResult), nil
}

func (s *SearchService) search(ctx context.Context, query, kind string) (*SearchResult, error) {
	result := emptyResult(query)
	limit := model.SearchLimitSingle
	if kind == SearchKindAll {
		limit = model.SearchLimitAll
	}
	needle := strings.ToLower(query)

	if kind == SearchKindAll || kind == SearchKindTopics {
		topics, err := s.topicRepo.FindAllTopics(ctx, nil)
		if err != nil {
			return nil, e.ErrServer
		}
		for _, topic := range topics {
			if len(result.Topics) >= limit {
				break
			}
			if matchesTopic(&topic, needle) {
				result.Topics = append(result.Topics, TopicSearchResult{
					ID:             topic.ID,
					Title:          topic.Title,
					Excerpt:        Excerpt(topic.Content, model.ExcerptMaxLength),
					AuthorUsername: topic.Author.Username,
					CategoryName:   topic.Category.DisplayName(),
					ViewCount:      topic.ViewCount,
					ReplyCount:     topic.ReplyCount,
					CreatedAt:      topic.CreatedAt,
				})
			}
		}
	}
	if kind == SearchKindAll || kind == SearchKindPosts {
		posts, err := s.postRepo.FindAllPosts(ctx, nil)
		if err != nil {
			return nil, e.ErrServer
		}
		for _, post := range posts {
			if len(result.Posts) >= limit {
				break
			}
			if matchesPost(&post, needle) {
				result.Posts = append(result.Posts, PostSearchResult{
					ID:             post.ID,
					Excerpt:        Excerpt(post.Content, model.ExcerptMaxLength),
					AuthorUsername: post.Author.Username,
					TopicID:        post.TopicID,
					TopicTitle:     post.Topic.Title,
					CreatedAt:      post.CreatedAt,
				})
			}
		}
	}
	if kind == SearchKindAll || kind == SearchKindUsers {
		users, err := s.userRepo.FindAllUsers(ctx, nil)
		if err != nil {
			return nil, e.ErrServer
		}
		for _, user := range users {
			if len(result.Users) >= limit {
				break
			}
			if matchesUser(&user, needle) {
				result.Users = append(result.Users, UserSearchResult{
					ID:         user.ID,
					Username:   user.Username,
					Bio:        user.Bio,
					Role:       user.Role,
					TopicCount: user.TopicCount,
					PostCount:  user.PostCount,
					JoinDate:   user.CreatedAt,
				})
			}
		}
	}
	return result, nil
}

func matchesTopic(topic *model.Topic, needle string) bool {
	return strings.Contains(strings.ToLower(topic.Title), needle) ||
		strings.Contains(strings.ToLower(topic.Content), needle)
}

func matchesPost(post *model.Post, needle string) bool {
	return strings.Contains(strings.ToLower(post.Content), needle)
}

func matchesUser(user *model.User, needle string) bool {
	return strings.Contains(strings.ToLower(user.Username), needle) ||
		strings.Contains(strings.ToLower(user.Bio), needle)
}

// Excerpt truncates content to maxLen runes with an ellipsis marker, or
// returns it verbatim when it already fits.
func Excerpt(content string, maxLen int) string {
	if utf8.RuneCountInString(content) <= maxLen {
		return content
	}
	runes := []rune(content)
	return string(runes[:maxLen]) + "..."
}
