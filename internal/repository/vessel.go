package repository

import "gorm.io/gorm"

type Repositories struct {
	User    *UserRepository
	Topic   *TopicRepository
	Post    *PostRepository
	Comment *CommentRepository
	Vote    *VoteRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:    NewUserRepository(db),
		Topic:   NewTopicRepository(db),
		Post:    NewPostRepository(db),
		Comment: NewCommentRepository(db),
		Vote:    NewVoteRepository(db),
	}
}
