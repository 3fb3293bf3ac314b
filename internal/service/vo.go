package service

import (
	"time"

	"github.com/IDobkov90/ufc/internal/model"
)

type LoginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Public profile projection; never carries the credential hash.
type UserProfileVO struct {
	ID         uint       `json:"id"`
	Username   string     `json:"username"`
	Role       model.Role `json:"role"`
	Bio        string     `json:"bio"`
	AvatarURL  string     `json:"avatar_url"`
	PostCount  int        `json:"post_count"`
	TopicCount int        `json:"topic_count"`
	Reputation int        `json:"reputation"`
	JoinDate   time.Time  `json:"join_date"`
	LastActive *time.Time `json:"last_active"`
}

// Search projections: lightweight summaries per entity kind.
type TopicSearchResult struct {
	ID             uint      `json:"id"`
	Title          string    `json:"title"`
	Excerpt        string    `json:"excerpt"`
	AuthorUsername string    `json:"author_username"`
	CategoryName   string    `json:"category_name"`
	ViewCount      int       `json:"view_count"`
	ReplyCount     int       `json:"reply_count"`
	CreatedAt      time.Time `json:"created_at"`
}

type PostSearchResult struct {
	ID             uint      `json:"id"`
	Excerpt        string    `json:"excerpt"`
	AuthorUsername string    `json:"author_username"`
	TopicID        uint      `json:"topic_id"`
	TopicTitle     string    `json:"topic_title"`
	CreatedAt      time.Time `json:"created_at"`
}

type UserSearchResult struct {
	ID         uint       `json:"id"`
	Username   string     `json:"username"`
	Bio        string     `json:"bio"`
	Role       model.Role `json:"role"`
	TopicCount int        `json:"topic_count"`
	PostCount  int        `json:"post_count"`
	JoinDate   time.Time  `json:"join_date"`
}

type SearchResult struct {
	Query  string              `json:"query"`
	Topics []TopicSearchResult `json:"topics"`
	Posts  []PostSearchResult  `json:"posts"`
	Users  []UserSearchResult  `json:"users"`
}

// Admin dashboard counters
type ForumStats struct {
	TotalUsers    int64            `json:"total_users"`
	ActiveUsers   int64            `json:"active_users"`
	BannedUsers   int64            `json:"banned_users"`
	TotalTopics   int64            `json:"total_topics"`
	PinnedTopics  int64            `json:"pinned_topics"`
	LockedTopics  int64            `json:"locked_topics"`
	TotalPosts    int64            `json:"total_posts"`
	TotalComments int64            `json:"total_comments"`
	ByCategory    map[string]int64 `json:"by_category"`
}
