package repository

import (
	"context"
	"time"

	"github.com/IDobkov90/ufc/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// user lookups && state updates
func (r *UserRepository) CreateUser(ctx context.Context, tx *gorm.DB, user *model.User) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) FindByUsername(ctx context.Context, tx *gorm.DB, username string) (*model.User, error) {
	db := r.DB
	if tx != nil {
		db = tx
	}
	var user model.User
	err := db.WithContext(ctx).Where("username=?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, tx *gorm.DB, email string) (*model.User, error) {
	db := r.DB
	if tx != nil {
		db = tx
	}
	var user model.User
	err := db.WithContext(ctx).Where("email=?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindUserByID(ctx context.Context, tx *gorm.DB, id uint) (*model.User, error) {
	db := r.DB
	if tx != nil {
		db = tx
	}
	var user model.User
	err := db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, tx *gorm.DB, username string) (bool, error) {
	db := r.DB
	if tx != nil {
		db = tx
	}
	var count int64
	err := db.WithContext(ctx).Model(&model.User{}).Where("username=?", username).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	db := r.DB
	if tx != nil {
		db = tx
	}
	var count int64
	err := db.WithContext(ctx).Model(&model.User{}).Where("email=?", email).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) UpdateProfile(ctx context.Context, tx *gorm.DB, userID uint, bio, avatarURL string) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Model(&model.User{}).Where("id=?", userID).
		Updates(map[string]interface{}{"bio": bio, "avatar_url": avatarURL}).Error
}

func (r *UserRepository) TouchLastActive(ctx context.Context, tx *gorm.DB, userID uint) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	now := time.Now()
	return db.WithContext(ctx).Model(&model.User{}).Where("id=?", userID).Update("last_active", now).Error
}

// Counter updates run as single atomic UPDATEs. Decrements clamp at zero
// through the WHERE guard instead of read-modify-write in Go.
func (r *UserRepository) AddReputation(ctx context.Context, tx *gorm.DB, userID uint, delta int) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Model(&model.User{}).Where("id=?", userID).
		Update("reputation", gorm.Expr("reputation + ?", delta)).Error
}

func (r *UserRepository) IncrementTopicCount(ctx context.Context, tx *gorm.DB, userID uint) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Model(&model.User{}).Where("id=?", userID).
		Update("topic_count", gorm.Expr("topic_count + 1")).Error
}

func (r *UserRepository) DecrementTopicCount(ctx context.Context, tx *gorm.DB, userID uint) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Model(&model.User{}).Where("id=? AND topic_count > 0", userID).
		Update("topic_count", gorm.Expr("topic_count - 1")).Error
}

func (r *UserRepository) IncrementPostCount(ctx context.Context, tx *gorm.DB, userID uint) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Model(&model.User{}).Where("id=?", userID).
		Update("post_count", gorm.Expr("post_count + 1")).Error
}

func (r *UserRepository) DecrementPostCount(ctx context.Context, tx *gorm.DB, userID uint) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Model(&model.User{}).Where("id=? AND post_count > 0", userID).
		Update("post_count", gorm.Expr("post_count - 1")).Error
}

func (r *UserRepository) DecrementPostCountBy(ctx context.Context, tx *gorm.DB, userID uint, n int) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Model(&model.User{}).Where("id=?", userID).
		Update("post_count", gorm.Expr("CASE WHEN post_count >= ? THEN post_count - ? ELSE 0 END", n, n)).Error
}

func (r *UserRepository) SetCounts(ctx context.Context, tx *gorm.DB, userID uint, postCount, topicCount int) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Model(&model.User{}).Where("id=?", userID).
		Updates(map[string]interface{}{"post_count": postCount, "topic_count": topicCount}).Error
}

func (r *UserRepository) BanUser(ctx context.Context, tx *gorm.DB, id uint) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Model(&model.User{}).Where("id=?", id).Update("is_active", false).Error
}

func (r *UserRepository) UnbanUser(ctx context.Context, tx *gorm.DB, id uint) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Model(&model.User{}).Where("id=?", id).Update("is_active", true).Error
}

func (r *UserRepository) IsUserBanned(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	db := r.DB
	if tx != nil {
		db = tx
	}
	var user model.User
	err := db.WithContext(ctx).Select("is_active").First(&user, id).Error
	if err != nil {
		return false, err
	}
	return !user.IsActive, nil
}

// full scan for the search engine, natural id order
func (r *UserRepository) FindAllUsers(ctx context.Context, tx *gorm.DB) ([]model.User, error) {
	db := r.DB
	if tx != nil {
		db = tx
	}
	var users []model.User
	err := db.WithContext(ctx).Order("id").Find(&users).Error
	return users, err
}

func (r *UserRepository) CountUsers(ctx context.Context, tx *gorm.DB) (int64, error) {
	db := r.DB
	if tx != nil {
		db = tx
	}
	var count int64
	err := db.WithContext(ctx).Model(&model.User{}).Count(&count).Error
	return count, err
}

func (r *UserRepository) CountByActive(ctx context.Context, tx *gorm.DB, active bool) (int64, error) {
	db := r.DB
	if tx != nil {
		db = tx
	}
	var count int64
	err := db.WithContext(ctx).Model(&model.User{}).Where("is_active=?", active).Count(&count).Error
	return count, err
}

type TopicRepository struct {
	DB *gorm.DB
}

func NewTopicRepository(db *gorm.DB) *TopicRepository {
	return &TopicRepository{DB: db}
}

func (r *TopicRepository) CreateTopic(ctx context.Context, tx *gorm.DB, topic *model.Topic) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Create(topic).Error
}

func (r *TopicRepository) FindTopicByID(ctx context.Context, tx *gorm.DB, id uint) (*model.Topic, error) {
	db := r.DB
	if tx != nil {
		db = tx
	}
	var topic model.Topic
	err := db.WithContext(ctx).Preload("Author").First(&topic, id).Error
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

func (r *TopicRepository) DeleteTopic(ctx context.Context, tx *gorm.DB, id uint) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Delete(&model.Topic{}, id).Error
}

// Best effort: zero rows affected (absent topic) is not an error.
func (r *TopicRepository) IncrementViewCount(ctx context.Context, tx *gorm.DB, topicID uint) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Model(&model.Topic{}).Where("id=?", topicID).
		Update("view_count", gorm.Expr("view_count + 1")).Error
}

// Bumps the reply counter and last-post markers in one UPDATE.
func (r *TopicRepository) IncrementReplyCount(ctx context.Context, tx *gorm.DB, topicID, lastPostUserID uint, lastPostAt time.Time) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Model(&model.Topic{}).Where("id=?", topicID).
		Updates(map[string]interface{}{
			"reply_count":       gorm.Expr("reply_count + 1"),
			"last_post_at":      lastPostAt,
			"last_post_user_id": lastPostUserID,
		}).Error
}

func (r *TopicRepository) DecrementReplyCount(ctx context.Context, tx *gorm.DB, topicID uint) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Model(&model.Topic{}).Where("id=? AND reply_count > 0", topicID).
		Update("reply_count", gorm.Expr("reply_count - 1")).Error
}

func (r *TopicRepository) SetLastPost(ctx context.Context, tx *gorm.DB, topicID, lastPostUserID uint, lastPostAt time.Time) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Model(&model.Topic{}).Where("id=?", topicID).
		Updates(map[string]interface{}{
			"last_post_at":      lastPostAt,
			"last_post_user_id": lastPostUserID,
		}).Error
}

func (r *TopicRepository) SetPinned(ctx context.Context, tx *gorm.DB, topicID uint, pinned bool) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Model(&model.Topic{}).Where("id=?", topicID).Update("is_pinned", pinned).Error
}

func (r *TopicRepository) SetLocked(ctx context.Context, tx *gorm.DB, topicID uint, locked bool) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Model(&model.Topic{}).Where("id=?", topicID).Update("is_locked", locked).Error
}

func (r *TopicRepository) SetReplyCount(ctx context.Context, tx *gorm.DB, topicID uint, n int) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Model(&model.Topic{}).Where("id=?", topicID).Update("reply_count", n).Error
}

// board order: pinned first, freshest conversation next
func (r *TopicRepository) ListTopics(ctx context.Context, tx *gorm.DB, offset, limit int) ([]model.Topic, error) {
	db := r.DB
	if tx != nil {
		db = tx
	}
	var topics []model.Topic
	err := db.WithContext(ctx).Preload("Author").
		Order("is_pinned DESC, last_post_at DESC").Offset(offset).Limit(limit).Find(&topics).Error
	return topics, err
}

func (r *TopicRepository) ListByCategory(ctx context.Context, tx *gorm.DB, category model.TopicCategory, offset, limit int) ([]model.Topic, error) {
	db := r.DB
	if tx != nil {
		db = tx
	}
	var topics []model.Topic
	err := db.WithContext(ctx).Preload("Author").Where("category=?", category).
		Order("is_pinned DESC, last_post_at DESC").Offset(offset).Limit(limit).Find(&topics).Error
	return topics, err
}

func (r *TopicRepository) RecentTopics(ctx context.Context, tx *gorm.DB, limit int) ([]model.Topic, error) {
	db := r.DB
	if tx != nil {
		db = tx
	}
	var topics []model.Topic
	err := db.WithContext(ctx).Preload("Author").Order("created_at DESC").Limit(limit).Find(&topics).Error
	return topics, err
}

// full scan for the search engine, natural id order
func (r *TopicRepository) FindAllTopics(ctx context.Context, tx *gorm.DB) ([]model.Topic, error) {
	db := r.DB
	if tx != nil {
		db = tx
	}
	var topics []model.Topic
	err := db.WithContext(ctx).Preload("Author").Order("id").Find(&topics).Error
	return topics, err
}

func (r *TopicRepository) CountTopics(ctx context.Context, tx *gorm.DB) (int64, error) {
	db := r.DB
	if tx != nil {
		db = tx
	}
	var count int64
	err := db.WithContext(ctx).Model(&model.Topic{}).Count(&count).Error
	return count, err
}

func (r *TopicRepository) CountPinned(ctx context.Context, tx *gorm.DB) (int64, error) {
	db := r.DB
	if tx != nil {
		db = tx
	}
	var count int64
	err := db.WithContext(ctx).Model(&model.Topic{}).Where("is_pinned=?", true).Count(&count).Error
	return count, err
}

func (r *TopicRepository) CountLocked(ctx context.Context, tx *gorm.DB) (int64, error) {
	db := r.DB
	if tx != nil {
		db = tx
	}
	var count int64
	err := db.WithContext(ctx).Model(&model.Topic{}).Where("is_locked=?", true).Count(&count).Error
	return count, err
}

func (r *TopicRepository) CountByCategory(ctx context.Context, tx *gorm.DB, category model.TopicCategory) (int64, error) {
	db := r.DB
	if tx != nil {
		db = tx
	}
	var count int64
	err := db.WithContext(ctx).Model(&model.Topic{}).Where("category=?", category).Count(&count).Error
	return count, err
}

func (r *TopicRepository) CountByAuthor(ctx context.Context, tx *gorm.DB, authorID uint) (int64, error) {
	db := r.DB
	if tx != nil {
		db = tx
	}
	var count int64
	err := db.WithContext(ctx).Model(&model.Topic{}).Where("author_id=?", authorID).Count(&count).Error
	return count, err
}

type PostRepository struct {
	DB *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{DB: db}
}

func (r *PostRepository) CreatePost(ctx context.Context, tx *gorm.DB, post *model.Post) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Create(post).Error
}

func (r *PostRepository) FindPostByID(ctx context.Context, tx *gorm.DB, id uint) (*model.Post, error) {
	db := r.DB
	if tx != nil {
		db = tx
	}
	var post model.Post
	err := db.WithContext(ctx).Preload("Author").First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostRepository) UpdatePost(ctx context.Context, tx *gorm.DB, post *model.Post) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Save(post).Error
}

func (r *PostRepository) DeletePost(ctx context.Context, tx *gorm.DB, id uint) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Delete(&model.Post{}, id).Error
}

func (r *PostRepository) DeleteByTopic(ctx context.Context, tx *gorm.DB, topicID uint) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Where("topic_id=?", topicID).Delete(&model.Post{}).Error
}

func (r *PostRepository) ListByTopic(ctx context.Context, tx *gorm.DB, topicID uint, offset, limit int) ([]model.Post, error) {
	db := r.DB
	if tx != nil {
		db = tx
	}
	var posts []model.Post
	err := db.WithContext(ctx).Preload("Author").Where("topic_id=?", topicID).
		Order("created_at ASC").Offset(offset).Limit(limit).Find(&posts).Error
	return posts, err
}

func (r *PostRepository) FindLatestByTopic(ctx context.Context, tx *gorm.DB, topicID uint) (*model.Post, error) {
	db := r.DB
	if tx != nil {
		db = tx
	}
	var post model.Post
	err := db.WithContext(ctx).Where("topic_id=?", topicID).
		Order("created_at DESC, id DESC").First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// full scan for the search engine, natural id order
func (r *PostRepository) FindAllPosts(ctx context.Context, tx *gorm.DB) ([]model.Post, error) {
	db := r.DB
	if tx != nil {
		db = tx
	}
	var posts []model.Post
	err := db.WithContext(ctx).Preload("Author").Preload("Topic").Order("id").Find(&posts).Error
	return posts, err
}

func (r *PostRepository) IncrementQuoteCount(ctx context.Context, tx *gorm.DB, postID uint) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Model(&model.Post{}).Where("id=?", postID).
		Update("quote_count", gorm.Expr("quote_count + 1")).Error
}

func (r *PostRepository) DecrementQuoteCount(ctx context.Context, tx *gorm.DB, postID uint) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Model(&model.Post{}).Where("id=? AND quote_count > 0", postID).
		Update("quote_count", gorm.Expr("quote_count - 1")).Error
}

// Nulls out back-references from quoting posts; the quoting posts survive.
func (r *PostRepository) ClearQuotedReferences(ctx context.Context, tx *gorm.DB, postID uint) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Model(&model.Post{}).Where("quoted_post_id=?", postID).
		Update("quoted_post_id", nil).Error
}

// Quoted post ids referenced from inside one topic. Not deduplicated: the
// caller decrements one quote count per quoting post, so a post quoted twice
// appears twice.
func (r *PostRepository) FindQuotedIDsByTopic(ctx context.Context, tx *gorm.DB, topicID uint) ([]uint, error) {
	db := r.DB
	if tx != nil {
		db = tx
	}
	var ids []uint
	err := db.WithContext(ctx).Model(&model.Post{}).
		Where("topic_id=? AND quoted_post_id IS NOT NULL", topicID).
		Pluck("quoted_post_id", &ids).Error
	return ids, err
}

// Nulls out back-references pointing at any post of the given topic.
func (r *PostRepository) ClearQuotedReferencesByTopic(ctx context.Context, tx *gorm.DB, topicID uint) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	sub := db.Session(&gorm.Session{NewDB: true}).Model(&model.Post{}).Select("id").Where("topic_id=?", topicID)
	return db.WithContext(ctx).Model(&model.Post{}).Where("quoted_post_id IN (?)", sub).
		Update("quoted_post_id", nil).Error
}

func (r *PostRepository) AddLikeCount(ctx context.Context, tx *gorm.DB, postID uint, delta int) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	if delta < 0 {
		return db.WithContext(ctx).Model(&model.Post{}).Where("id=? AND like_count >= ?", postID, -delta).
			Update("like_count", gorm.Expr("like_count + ?", delta)).Error
	}
	return db.WithContext(ctx).Model(&model.Post{}).Where("id=?", postID).
		Update("like_count", gorm.Expr("like_count + ?", delta)).Error
}

func (r *PostRepository) SetCounts(ctx context.Context, tx *gorm.DB, postID uint, likeCount, quoteCount int) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Model(&model.Post{}).Where("id=?", postID).
		Updates(map[string]interface{}{"like_count": likeCount, "quote_count": quoteCount}).Error
}

func (r *PostRepository) CountByTopic(ctx context.Context, tx *gorm.DB, topicID uint) (int64, error) {
	db := r.DB
	if tx != nil {
		db = tx
	}
	var count int64
	err := db.WithContext(ctx).Model(&model.Post{}).Where("topic_id=?", topicID).Count(&count).Error
	return count, err
}

func (r *PostRepository) CountByAuthor(ctx context.Context, tx *gorm.DB, authorID uint) (int64, error) {
	db := r.DB
	if tx != nil {
		db = tx
	}
	var count int64
	err := db.WithContext(ctx).Model(&model.Post{}).Where("author_id=?", authorID).Count(&count).Error
	return count, err
}

func (r *PostRepository) CountQuotesOf(ctx context.Context, tx *gorm.DB, postID uint) (int64, error) {
	db := r.DB
	if tx != nil {
		db = tx
	}
	var count int64
	err := db.WithContext(ctx).Model(&model.Post{}).Where("quoted_post_id=?", postID).Count(&count).Error
	return count, err
}

func (r *PostRepository) CountPosts(ctx context.Context, tx *gorm.DB) (int64, error) {
	db := r.DB
	if tx != nil {
		db = tx
	}
	var count int64
	err := db.WithContext(ctx).Model(&model.Post{}).Count(&count).Error
	return count, err
}

type AuthorPostCount struct {
	AuthorID uint
	N        int
}

// per-author post tallies inside one topic, for cascade bookkeeping
func (r *PostRepository) CountByTopicPerAuthor(ctx context.Context, tx *gorm.DB, topicID uint) ([]AuthorPostCount, error) {
	db := r.DB
	if tx != nil {
		db = tx
	}
	var rows []AuthorPostCount
	err := db.WithContext(ctx).Model(&model.Post{}).
		Select("author_id, COUNT(*) AS n").Where("topic_id=?", topicID).
		Group("author_id").Scan(&rows).Error
	return rows, err
}

type CommentRepository struct {
	DB *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{DB: db}
}

func (r *CommentRepository) CreateComment(ctx context.Context, tx *gorm.DB, comment *model.Comment) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Create(comment).Error
}

func (r *CommentRepository) FindCommentByID(ctx context.Context, tx *gorm.DB, id uint) (*model.Comment, error) {
	db := r.DB
	if tx != nil {
		db = tx
	}
	var comment model.Comment
	err := db.WithContext(ctx).First(&comment, id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *CommentRepository) ListByPost(ctx context.Context, tx *gorm.DB, postID uint) ([]model.Comment, error) {
	db := r.DB
	if tx != nil {
		db = tx
	}
	var comments []model.Comment
	err := db.WithContext(ctx).Preload("Author").Where("post_id=?", postID).
		Order("created_at ASC").Find(&comments).Error
	return comments, err
}

func (r *CommentRepository) DeleteComment(ctx context.Context, tx *gorm.DB, id uint) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Delete(&model.Comment{}, id).Error
}

func (r *CommentRepository) DeleteByPost(ctx context.Context, tx *gorm.DB, postID uint) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Where("post_id=?", postID).Delete(&model.Comment{}).Error
}

// Removes every comment hanging off the posts of a topic. Must run before
// the posts themselves are deleted.
func (r *CommentRepository) DeleteByTopicPosts(ctx context.Context, tx *gorm.DB, topicID uint) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	sub := db.Session(&gorm.Session{NewDB: true}).Model(&model.Post{}).Select("id").Where("topic_id=?", topicID)
	return db.WithContext(ctx).Where("post_id IN (?)", sub).Delete(&model.Comment{}).Error
}

func (r *CommentRepository) CountComments(ctx context.Context, tx *gorm.DB) (int64, error) {
	db := r.DB
	if tx != nil {
		db = tx
	}
	var count int64
	err := db.WithContext(ctx).Model(&model.Comment{}).Count(&count).Error
	return count, err
}

type VoteRepository struct {
	DB *gorm.DB
}

func NewVoteRepository(db *gorm.DB) *VoteRepository {
	return &VoteRepository{DB: db}
}

func (r *VoteRepository) FindVote(ctx context.Context, tx *gorm.DB, userID, postID uint) (*model.PostVote, error) {
	db := r.DB
	if tx != nil {
		db = tx
	}
	var vote model.PostVote
	err := db.WithContext(ctx).Where("user_id=? AND post_id=?", userID, postID).First(&vote).Error
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

func (r *VoteRepository) CreateVote(ctx context.Context, tx *gorm.DB, vote *model.PostVote) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Create(vote).Error
}

func (r *VoteRepository) UpdateVoteValue(ctx context.Context, tx *gorm.DB, voteID uint, value int) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Model(&model.PostVote{}).Where("id=?", voteID).Update("value", value).Error
}

// Hard delete: a soft-deleted row would keep holding the (user_id, post_id)
// unique slot and block a later re-vote.
func (r *VoteRepository) DeleteVote(ctx context.Context, tx *gorm.DB, voteID uint) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Unscoped().Delete(&model.PostVote{}, voteID).Error
}

func (r *VoteRepository) CountUpvotes(ctx context.Context, tx *gorm.DB, postID uint) (int64, error) {
	db := r.DB
	if tx != nil {
		db = tx
	}
	var count int64
	err := db.WithContext(ctx).Model(&model.PostVote{}).Where("post_id=? AND value > 0", postID).Count(&count).Error
	return count, err
}
