package service

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/IDobkov90/ufc/internal/model"
	"github.com/IDobkov90/ufc/internal/repository"
	"github.com/IDobkov90/ufc/pkg/e"

	"gorm.io/gorm"
)

type CommentService struct {
	db       *gorm.DB
	repo     *repository.CommentRepository
	postRepo *repository.PostRepository
}

func NewCommentService(db *gorm.DB, repo *repository.CommentRepository, postRepo *repository.PostRepository) *CommentService {
	return &CommentService{db: db, repo: repo, postRepo: postRepo}
}

func (s *CommentService) AddComment(ctx context.Context, postID, authorID uint, content string) (*model.Comment, error) {
	if n := utf8.RuneCountInString(content); n < model.CommentMinLength || n > model.CommentMaxLength {
		return nil, e.Validation("content", "comment must be 1-1000 characters")
	}
	if _, err := s.postRepo.FindPostByID(ctx, nil, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, e.ErrPostNotFound
		}
		return nil, e.ErrServer
	}
	comment := &model.Comment{
		Content:  content,
		PostID:   postID,
		AuthorID: authorID,
	}
	if err := s.repo.CreateComment(ctx, nil, comment); err != nil {
		return nil, e.ErrServer
	}
	return comment, nil
}

func (s *CommentService) GetComments(ctx context.Context, postID uint) ([]model.Comment, error) {
	if _, err := s.postRepo.FindPostByID(ctx, nil, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, e.ErrPostNotFound
		}
		return nil, e.ErrServer
	}
	return s.repo.ListByPost(ctx, nil, postID)
}

func (s *CommentService) DeleteComment(ctx context.Context, commentID uint, actorID uint, actorRole model.Role) error {
	comment, err := s.repo.FindCommentByID(ctx, nil, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return e.ErrCommentNotFound
		}
		return e.ErrServer
	}
	if !CanModify(actorID, comment.AuthorID, actorRole) {
		return e.ErrPermission
	}
	if err := s.repo.DeleteComment(ctx, nil, commentID); err != nil {
		return e.ErrServer
	}
	return nil
}
