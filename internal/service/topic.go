package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/IDobkov90/ufc/internal/model"
	"github.com/IDobkov90/ufc/internal/repository"
	"github.com/IDobkov90/ufc/pkg/e"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type TopicService struct {
	db          *gorm.DB
	rdb         *redis.Client
	repo        *repository.TopicRepository
	postRepo    *repository.PostRepository
	userRepo    *repository.UserRepository
	commentRepo *repository.CommentRepository
}

func NewTopicService(db *gorm.DB, rdb *redis.Client, repo *repository.TopicRepository,
	postRepo *repository.PostRepository, userRepo *repository.UserRepository,
	commentRepo *repository.CommentRepository) *TopicService {
	return &TopicService{db: db, rdb: rdb, repo: repo, postRepo: postRepo, userRepo: userRepo, commentRepo: commentRepo}
}

const cacheKeyTopicDetail = "topic:detail:%d"

// CreateTopic runs the creation, the author's topic counter and the
// reputation award inside one transaction.
func (s *TopicService) CreateTopic(ctx context.Context, authorID uint, title, content string, category model.TopicCategory) (*model.Topic, error) {
	if n := utf8.RuneCountInString(title); n < model.TopicTitleMinLength || n > model.TopicTitleMaxLength {
		return nil, e.Validation("title", "title must be 5-200 characters")
	}
	if content == "" {
		return nil, e.Validation("content", "content is required")
	}
	if !category.Valid() {
		return nil, e.Validation("category", "unknown category")
	}
	now := time.Now()
	topic := &model.Topic{
		Title:          title,
		Content:        content,
		Category:       category,
		AuthorID:       authorID,
		LastPostAt:     now,
		LastPostUserID: authorID,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.CreateTopic(ctx, tx, topic); err != nil {
			return err
		}
		if err := s.userRepo.IncrementTopicCount(ctx, tx, authorID); err != nil {
			return err
		}
		return s.userRepo.AddReputation(ctx, tx, authorID, model.ReputationNewTopic)
	})
	if err != nil {
		return nil, e.ErrServer
	}
	return topic, nil
}

func (s *TopicService) GetTopic(ctx context.Context, topicID uint) (*model.Topic, error) {
	cacheKey := fmt.Sprintf(cacheKeyTopicDetail, topicID)
	if s.rdb != nil {
		val, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			if val == CacheNullPlaceholder {
				return nil, e.ErrTopicNotFound
			}
			var topic model.Topic
			if json.Unmarshal([]byte(val), &topic) == nil {
				return &topic, nil
			}
		}
	}
	topic, err := s.repo.FindTopicByID(ctx, nil, topicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if s.rdb != nil {
				s.rdb.Set(ctx, cacheKey, CacheNullPlaceholder, time.Minute)
			}
			return nil, e.ErrTopicNotFound
		}
		return nil, e.ErrServer
	}
	if s.rdb != nil {
		data, _ := json.Marshal(topic)
		s.rdb.Set(ctx, cacheKey, data, getRandomExpire(5*time.Minute))
	}
	return topic, nil
}

func (s *TopicService) ListTopics(ctx context.Context, page, pageSize int) ([]model.Topic, error) {
	offset := (page - 1) * pageSize
	return s.repo.ListTopics(ctx, nil, offset, pageSize)
}

func (s *TopicService) ListByCategory(ctx context.Context, category model.TopicCategory, page, pageSize int) ([]model.Topic, error) {
	if !category.Valid() {
		return nil, e.Validation("category", "unknown category")
	}
	offset := (page - 1) * pageSize
	return s.repo.ListByCategory(ctx, nil, category, offset, pageSize)
}

func (s *TopicService) RecentTopics(ctx context.Context, limit int) ([]model.Topic, error) {
	return s.repo.RecentTopics(ctx, nil, limit)
}

// IncrementViewCount is best effort: no permission check, and an absent
// topic is a silent no-op rather than an error. The increment itself is a
// single atomic UPDATE so concurrent viewers never lose counts.
func (s *TopicService) IncrementViewCount(ctx context.Context, topicID uint) {
	_ = s.repo.IncrementViewCount(ctx, nil, topicID)
}

// Moderation toggles. Each is idempotent: re-applying the current state is a
// no-op success.
func (s *TopicService) PinTopic(ctx context.Context, topicID uint, actorRole model.Role) error {
	return s.setTopicFlag(ctx, topicID, actorRole, "pin")
}

func (s *TopicService) UnpinTopic(ctx context.Context, topicID uint, actorRole model.Role) error {
	return s.setTopicFlag(ctx, topicID, actorRole, "unpin")
}

func (s *TopicService) LockTopic(ctx context.Context, topicID uint, actorRole model.Role) error {
	return s.setTopicFlag(ctx, topicID, actorRole, "lock")
}

func (s *TopicService) UnlockTopic(ctx context.Context, topicID uint, actorRole model.Role) error {
	return s.setTopicFlag(ctx, topicID, actorRole, "unlock")
}

func (s *TopicService) setTopicFlag(ctx context.Context, topicID uint, actorRole model.Role, action string) error {
	if !HasPermission(actorRole, "MODERATE_TOPICS") {
		return e.ErrPermission
	}
	if _, err := s.repo.FindTopicByID(ctx, nil, topicID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return e.ErrTopicNotFound
		}
		return e.ErrServer
	}
	var err error
	switch action {
	case "pin":
		err = s.repo.SetPinned(ctx, nil, topicID, true)
	case "unpin":
		err = s.repo.SetPinned(ctx, nil, topicID, false)
	case "lock":
		err = s.repo.SetLocked(ctx, nil, topicID, true)
	case "unlock":
		err = s.repo.SetLocked(ctx, nil, topicID, false)
	}
	if err != nil {
		return e.ErrServer
	}
	s.dropTopicCache(topicID)
	return nil
}

// DeleteTopic cascades to the topic's posts and their comments, keeps every
// author counter consistent, and never leaves a dangling quote reference.
func (s *TopicService) DeleteTopic(ctx context.Context, topicID uint, actorID uint, actorRole model.Role) error {
	topic, err := s.repo.FindTopicByID(ctx, nil, topicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return e.ErrTopicNotFound
		}
		return e.ErrServer
	}
	if !CanModify(actorID, topic.AuthorID, actorRole) {
		return e.ErrPermission
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		quotedIDs, err := s.postRepo.FindQuotedIDsByTopic(ctx, tx, topicID)
		if err != nil {
			return err
		}
		for _, quotedID := range quotedIDs {
			if err := s.postRepo.DecrementQuoteCount(ctx, tx, quotedID); err != nil {
				return err
			}
		}
		if err := s.postRepo.ClearQuotedReferencesByTopic(ctx, tx, topicID); err != nil {
			return err
		}
		perAuthor, err := s.postRepo.CountByTopicPerAuthor(ctx, tx, topicID)
		if err != nil {
			return err
		}
		for _, row := range perAuthor {
			if err := s.userRepo.DecrementPostCountBy(ctx, tx, row.AuthorID, row.N); err != nil {
				return err
			}
		}
		if err := s.commentRepo.DeleteByTopicPosts(ctx, tx, topicID); err != nil {
			return err
		}
		if err := s.postRepo.DeleteByTopic(ctx, tx, topicID); err != nil {
			return err
		}
		if err := s.repo.DeleteTopic(ctx, tx, topicID); err != nil {
			return err
		}
		return s.userRepo.DecrementTopicCount(ctx, tx, topic.AuthorID)
	})
	if err != nil {
		return e.ErrServer
	}
	s.dropTopicCache(topicID)
	return nil
}

func (s *TopicService) dropTopicCache(topicID uint) {
	if s.rdb == nil {
		return
	}
	s.rdb.Del(context.Background(), fmt.Sprintf(cacheKeyTopicDetail, topicID))
}
