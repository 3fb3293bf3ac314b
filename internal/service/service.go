package service

import (
	"math/rand"
	"time"

	"github.com/IDobkov90/ufc/internal/repository"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type Services struct {
	User    *UserService
	Topic   *TopicService
	Post    *PostService
	Comment *CommentService
	Search  *SearchService
	Stats   *StatsService
}

func NewServices(db *gorm.DB, rdb *redis.Client, repos *repository.Repositories, jwtSecret string, jwtExpireHours int) *Services {
	return &Services{
		User:    NewUserService(db, rdb, repos.User, repos.Topic, repos.Post, jwtSecret, jwtExpireHours),
		Topic:   NewTopicService(db, rdb, repos.Topic, repos.Post, repos.User, repos.Comment),
		Post:    NewPostService(db, repos.Post, repos.Topic, repos.User, repos.Comment, repos.Vote),
		Comment: NewCommentService(db, repos.Comment, repos.Post),
		Search:  NewSearchService(repos.Topic, repos.Post, repos.User),
		Stats:   NewStatsService(db, repos),
	}
}

const CacheNullPlaceholder = "NULL"

// jittered TTL so cache entries don't expire in lockstep
func getRandomExpire(base time.Duration) time.Duration {
	jitter := time.Duration(rand.Int63n(int64(base) / 5))
	return base + jitter
}
