package service

import (
	"context"

	"github.com/IDobkov90/ufc/internal/model"
	"github.com/IDobkov90/ufc/internal/repository"
	"github.com/IDobkov90/ufc/pkg/e"

	"gorm.io/gorm"
)

type StatsService struct {
	db    *gorm.DB
	repos *repository.Repositories
}

func NewStatsService(db *gorm.DB, repos *repository.Repositories) *StatsService {
	return &StatsService{db: db, repos: repos}
}

// GetForumStats assembles the admin dashboard counters.
func (s *StatsService) GetForumStats(ctx context.Context) (*ForumStats, error) {
	stats := &ForumStats{ByCategory: make(map[string]int64)}

	var err error
	if stats.TotalUsers, err = s.repos.User.CountUsers(ctx, nil); err != nil {
		return nil, e.ErrServer
	}
	if stats.ActiveUsers, err = s.repos.User.CountByActive(ctx, nil, true); err != nil {
		return nil, e.ErrServer
	}
	if stats.BannedUsers, err = s.repos.User.CountByActive(ctx, nil, false); err != nil {
		return nil, e.ErrServer
	}
	if stats.TotalTopics, err = s.repos.Topic.CountTopics(ctx, nil); err != nil {
		return nil, e.ErrServer
	}
	if stats.PinnedTopics, err = s.repos.Topic.CountPinned(ctx, nil); err != nil {
		return nil, e.ErrServer
	}
	if stats.LockedTopics, err = s.repos.Topic.CountLocked(ctx, nil); err != nil {
		return nil, e.ErrServer
	}
	if stats.TotalPosts, err = s.repos.Post.CountPosts(ctx, nil); err != nil {
		return nil, e.ErrServer
	}
	if stats.TotalComments, err = s.repos.Comment.CountComments(ctx, nil); err != nil {
		return nil, e.ErrServer
	}
	for _, info := range model.Categories() {
		n, err := s.repos.Topic.CountByCategory(ctx, nil, info.Tag)
		if err != nil {
			return nil, e.ErrServer
		}
		stats.ByCategory[string(info.Tag)] = n
	}
	return stats, nil
}

// ReconcileCounters recomputes every denormalized counter from the source
// tables. Meant for an admin to run after manual data surgery; normal
// operation keeps the counters consistent transactionally.
func (s *StatsService) ReconcileCounters(ctx context.Context) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users, err := s.repos.User.FindAllUsers(ctx, tx)
		if err != nil {
			return err
		}
		for _, user := range users {
			posts, err := s.repos.Post.CountByAuthor(ctx, tx, user.ID)
			if err != nil {
				return err
			}
			topics, err := s.repos.Topic.CountByAuthor(ctx, tx, user.ID)
			if err != nil {
				return err
			}
			if err := s.repos.User.SetCounts(ctx, tx, user.ID, int(posts), int(topics)); err != nil {
				return err
			}
		}

		topics, err := s.repos.Topic.FindAllTopics(ctx, tx)
		if err != nil {
			return err
		}
		for _, topic := range topics {
			n, err := s.repos.Post.CountByTopic(ctx, tx, topic.ID)
			if err != nil {
				return err
			}
			if err := s.repos.Topic.SetReplyCount(ctx, tx, topic.ID, int(n)); err != nil {
				return err
			}
		}

		posts, err := s.repos.Post.FindAllPosts(ctx, tx)
		if err != nil {
			return err
		}
		for _, post := range posts {
			likes, err := s.repos.Vote.CountUpvotes(ctx, tx, post.ID)
			if err != nil {
				return err
			}
			quotes, err := s.repos.Post.CountQuotesOf(ctx, tx, post.ID)
			if err != nil {
				return err
			}
			if err := s.repos.Post.SetCounts(ctx, tx, post.ID, int(likes), int(quotes)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return e.ErrServer
	}
	return nil
}
