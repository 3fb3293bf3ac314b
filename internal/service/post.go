package service

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/IDobkov90/ufc/internal/model"
	"github.com/IDobkov90/ufc/internal/repository"
	"github.com/IDobkov90/ufc/pkg/e"

	"gorm.io/gorm"
)

type PostService struct {
	db          *gorm.DB
	repo        *repository.PostRepository
	topicRepo   *repository.TopicRepository
	userRepo    *repository.UserRepository
	commentRepo *repository.CommentRepository
	voteRepo    *repository.VoteRepository
}

func NewPostService(db *gorm.DB, repo *repository.PostRepository, topicRepo *repository.TopicRepository,
	userRepo *repository.UserRepository, commentRepo *repository.CommentRepository,
	voteRepo *repository.VoteRepository) *PostService {
	return &PostService{db: db, repo: repo, topicRepo: topicRepo, userRepo: userRepo,
		commentRepo: commentRepo, voteRepo: voteRepo}
}

func validPostContent(content string) error {
	n := utf8.RuneCountInString(content)
	if n < model.PostContentMin || n > model.PostContentMax {
		return e.Validation("content", "content must be 10-10000 characters")
	}
	return nil
}

// CreatePost rejects locked topics, then updates the post row, the topic's
// reply/last-post markers, the author's counters and the quoted post's
// counter inside one transaction.
func (s *PostService) CreatePost(ctx context.Context, topicID, authorID uint, content string, quotedPostID *uint) (*model.Post, error) {
	if err := validPostContent(content); err != nil {
		return nil, err
	}
	topic, err := s.topicRepo.FindTopicByID(ctx, nil, topicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, e.ErrTopicNotFound
		}
		return nil, e.ErrServer
	}
	if topic.IsLocked {
		return nil, e.ErrTopicLocked
	}
	if quotedPostID != nil {
		if _, err := s.repo.FindPostByID(ctx, nil, *quotedPostID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, e.ErrPostNotFound
			}
			return nil, e.ErrServer
		}
	}
	post := &model.Post{
		Content:      content,
		TopicID:      topicID,
		AuthorID:     authorID,
		QuotedPostID: quotedPostID,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.CreatePost(ctx, tx, post); err != nil {
			return err
		}
		if err := s.topicRepo.IncrementReplyCount(ctx, tx, topicID, authorID, time.Now()); err != nil {
			return err
		}
		if err := s.userRepo.IncrementPostCount(ctx, tx, authorID); err != nil {
			return err
		}
		if err := s.userRepo.AddReputation(ctx, tx, authorID, model.ReputationNewPost); err != nil {
			return err
		}
		if quotedPostID != nil {
			return s.repo.IncrementQuoteCount(ctx, tx, *quotedPostID)
		}
		return nil
	})
	if err != nil {
		return nil, e.ErrServer
	}
	return post, nil
}

func (s *PostService) GetPost(ctx context.Context, postID uint) (*model.Post, error) {
	post, err := s.repo.FindPostByID(ctx, nil, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, e.ErrPostNotFound
		}
		return nil, e.ErrServer
	}
	return post, nil
}

func (s *PostService) ListByTopic(ctx context.Context, topicID uint, page, pageSize int) ([]model.Post, error) {
	offset := (page - 1) * pageSize
	return s.repo.ListByTopic(ctx, nil, topicID, offset, pageSize)
}

// UpdatePost is gated by CanModify and marks the post as edited.
func (s *PostService) UpdatePost(ctx context.Context, postID uint, newContent, editReason string, actorID uint, actorRole model.Role) (*model.Post, error) {
	post, err := s.repo.FindPostByID(ctx, nil, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, e.ErrPostNotFound
		}
		return nil, e.ErrServer
	}
	if !CanModify(actorID, post.AuthorID, actorRole) {
		return nil, e.ErrPermission
	}
	if err := validPostContent(newContent); err != nil {
		return nil, err
	}
	now := time.Now()
	post.Content = newContent
	post.IsEdited = true
	post.EditedAt = &now
	post.EditReason = editReason
	if err := s.repo.UpdatePost(ctx, nil, post); err != nil {
		return nil, e.ErrServer
	}
	return post, nil
}

// DeletePost removes the post and its comments, decrements the topic and
// author counters (floor-clamped), nulls out incoming quote references and
// repairs the topic's last-post markers.
func (s *PostService) DeletePost(ctx context.Context, postID uint, actorID uint, actorRole model.Role) error {
	post, err := s.repo.FindPostByID(ctx, nil, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return e.ErrPostNotFound
		}
		return e.ErrServer
	}
	if !CanModify(actorID, post.AuthorID, actorRole) {
		return e.ErrPermission
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if post.QuotedPostID != nil {
			if err := s.repo.DecrementQuoteCount(ctx, tx, *post.QuotedPostID); err != nil {
				return err
			}
		}
		if err := s.repo.ClearQuotedReferences(ctx, tx, postID); err != nil {
			return err
		}
		if err := s.commentRepo.DeleteByPost(ctx, tx, postID); err != nil {
			return err
		}
		if err := s.repo.DeletePost(ctx, tx, postID); err != nil {
			return err
		}
		if err := s.topicRepo.DecrementReplyCount(ctx, tx, post.TopicID); err != nil {
			return err
		}
		if err := s.userRepo.DecrementPostCount(ctx, tx, post.AuthorID); err != nil {
			return err
		}
		return s.refreshLastPost(ctx, tx, post.TopicID)
	})
	if err != nil {
		return e.ErrServer
	}
	return nil
}

// Last-post markers must always point at the newest surviving post, or back
// at the topic's own creation when none remain.
func (s *PostService) refreshLastPost(ctx context.Context, tx *gorm.DB, topicID uint) error {
	latest, err := s.repo.FindLatestByTopic(ctx, tx, topicID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		topic, err := s.topicRepo.FindTopicByID(ctx, tx, topicID)
		if err != nil {
			return err
		}
		return s.topicRepo.SetLastPost(ctx, tx, topicID, topic.AuthorID, topic.CreatedAt)
	}
	return s.topicRepo.SetLastPost(ctx, tx, topicID, latest.AuthorID, latest.CreatedAt)
}

// VotePost toggles the caller's vote: a repeated vote retracts, an opposite
// vote switches. The like counter tracks upvotes; the author's reputation
// moves by the fixed deltas.
func (s *PostService) VotePost(ctx context.Context, postID, voterID uint, up bool) error {
	post, err := s.repo.FindPostByID(ctx, nil, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return e.ErrPostNotFound
		}
		return e.ErrServer
	}
	value := 1
	repDelta := model.ReputationUpvote
	if !up {
		value = -1
		repDelta = model.ReputationDownvote
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.voteRepo.FindVote(ctx, tx, voterID, postID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		switch {
		case existing == nil:
			vote := &model.PostVote{UserID: voterID, PostID: postID, Value: value}
			if err := s.voteRepo.CreateVote(ctx, tx, vote); err != nil {
				return err
			}
			if up {
				if err := s.repo.AddLikeCount(ctx, tx, postID, 1); err != nil {
					return err
				}
			}
			return s.userRepo.AddReputation(ctx, tx, post.AuthorID, repDelta)
		case existing.Value == value:
			// same vote again retracts it
			if err := s.voteRepo.DeleteVote(ctx, tx, existing.ID); err != nil {
				return err
			}
			if up {
				if err := s.repo.AddLikeCount(ctx, tx, postID, -1); err != nil {
					return err
				}
			}
			return s.userRepo.AddReputation(ctx, tx, post.AuthorID, -repDelta)
		default:
			// switching direction: undo the old delta, apply the new one
			if err := s.voteRepo.UpdateVoteValue(ctx, tx, existing.ID, value); err != nil {
				return err
			}
			likeDelta := 1
			oldRep := model.ReputationDownvote
			if !up {
				likeDelta = -1
				oldRep = model.ReputationUpvote
			}
			if err := s.repo.AddLikeCount(ctx, tx, postID, likeDelta); err != nil {
				return err
			}
			return s.userRepo.AddReputation(ctx, tx, post.AuthorID, repDelta-oldRep)
		}
	})
	if err != nil {
		return e.ErrServer
	}
	return nil
}
