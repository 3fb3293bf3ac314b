package model

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleUser      Role = "USER"
	RoleModerator Role = "MODERATOR"
	RoleAdmin     Role = "ADMIN"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleModerator || r == RoleAdmin
}

// Forum member
type User struct {
	gorm.Model
	Username      string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Email         string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	Password      string     `gorm:"type:varchar(128);not null" json:"-"`
	Role          Role       `gorm:"type:varchar(16);not null;default:USER" json:"role"`
	IsActive      bool       `gorm:"not null;default:true" json:"is_active"`
	EmailVerified bool       `gorm:"not null;default:false" json:"email_verified"`
	Bio           string     `gorm:"type:varchar(500)" json:"bio"`
	AvatarURL     string     `gorm:"type:varchar(255)" json:"avatar_url"`
	PostCount     int        `gorm:"not null;default:0" json:"post_count"`
	TopicCount    int        `gorm:"not null;default:0" json:"topic_count"`
	Reputation    int        `gorm:"not null;default:0" json:"reputation"`
	LastActive    *time.Time `gorm:"index" json:"last_active"`

	Topics []Topic `gorm:"foreignKey:AuthorID" json:"topics,omitempty"`
	Posts  []Post  `gorm:"foreignKey:AuthorID" json:"posts,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsModerator() bool {
	return u.Role == RoleModerator || u.Role == RoleAdmin
}

// Top-level discussion thread. LastPostAt/LastPostUserID track the most
// recent post, or the topic's own creation while it has none.
type Topic struct {
	gorm.Model
	Title          string        `gorm:"type:varchar(200);not null" json:"title"`
	Content        string        `gorm:"type:longtext;not null" json:"content"`
	Category       TopicCategory `gorm:"type:varchar(32);not null;index:idx_topic_category" json:"category"`
	AuthorID       uint          `gorm:"not null;index:idx_topic_author" json:"author_id"`
	ViewCount      int           `gorm:"not null;default:0" json:"view_count"`
	ReplyCount     int           `gorm:"not null;default:0" json:"reply_count"`
	IsPinned       bool          `gorm:"not null;default:false;index:idx_topic_pinned" json:"is_pinned"`
	IsLocked       bool          `gorm:"not null;default:false" json:"is_locked"`
	LastPostAt     time.Time     `gorm:"index" json:"last_post_at"`
	LastPostUserID uint          `json:"last_post_user_id"`

	Author User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

// Reply inside a topic. QuotedPostID is a non-owning back-reference;
// deleting the quoted post nulls it out instead of cascading.
type Post struct {
	gorm.Model
	Content      string     `gorm:"type:longtext;not null" json:"content"`
	TopicID      uint       `gorm:"not null;index:idx_post_topic" json:"topic_id"`
	AuthorID     uint       `gorm:"not null;index:idx_post_author" json:"author_id"`
	QuotedPostID *uint      `gorm:"index" json:"quoted_post_id,omitempty"`
	LikeCount    int        `gorm:"not null;default:0" json:"like_count"`
	QuoteCount   int        `gorm:"not null;default:0" json:"quote_count"`
	IsEdited     bool       `gorm:"not null;default:false" json:"is_edited"`
	EditedAt     *time.Time `json:"edited_at,omitempty"`
	EditReason   string     `gorm:"type:varchar(255)" json:"edit_reason,omitempty"`

	Author User  `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Topic  Topic `gorm:"foreignKey:TopicID" json:"topic,omitempty"`
}

// Lightweight reply attached to a post, lifecycle independent of Post
type Comment struct {
	gorm.Model
	Content  string `gorm:"type:text;not null" json:"content"`
	PostID   uint   `gorm:"not null;index:idx_comment_post" json:"post_id"`
	AuthorID uint   `gorm:"not null;index:idx_comment_author" json:"author_id"`

	Author User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

// One vote per (user, post); Value is +1 or -1
type PostVote struct {
	gorm.Model
	UserID uint `gorm:"not null;uniqueIndex:idx_vote_user_post" json:"user_id"`
	PostID uint `gorm:"not null;uniqueIndex:idx_vote_user_post" json:"post_id"`
	Value  int  `gorm:"not null" json:"value"`
}
