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
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	db          *gorm.DB
	rdb         *redis.Client
	repo        *repository.UserRepository
	topicRepo   *repository.TopicRepository
	postRepo    *repository.PostRepository
	secret      string
	expireHours int
}

func NewUserService(db *gorm.DB, rdb *redis.Client, repo *repository.UserRepository,
	topicRepo *repository.TopicRepository, postRepo *repository.PostRepository,
	secret string, expireHours int) *UserService {
	if expireHours <= 0 {
		expireHours = 24 * 7
	}
	return &UserService{db: db, rdb: rdb, repo: repo, topicRepo: topicRepo, postRepo: postRepo,
		secret: secret, expireHours: expireHours}
}

const cacheKeyUserProfile = "user:profile:%d"

// Register enforces username/email uniqueness and stores only the bcrypt
// hash. New accounts start as USER, unverified, active, all counters zero.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	if n := utf8.RuneCountInString(username); n < model.UsernameMinLength || n > model.UsernameMaxLength {
		return nil, e.Validation("username", "username must be 3-50 characters")
	}
	if n := len(password); n < model.PasswordMinLength || n > model.PasswordMaxLength {
		return nil, e.Validation("password", "password must be 6-100 characters")
	}
	if email == "" || len(email) > model.EmailMaxLength {
		return nil, e.Validation("email", "email is required")
	}
	taken, err := s.repo.ExistsByUsername(ctx, nil, username)
	if err != nil {
		return nil, e.ErrServer
	}
	if taken {
		return nil, e.ErrUsernameTaken
	}
	taken, err = s.repo.ExistsByEmail(ctx, nil, email)
	if err != nil {
		return nil, e.ErrServer
	}
	if taken {
		return nil, e.ErrEmailTaken
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, e.ErrServer
	}
	user := &model.User{
		Username:      username,
		Email:         email,
		Password:      string(hashedPassword),
		Role:          model.RoleUser,
		IsActive:      true,
		EmailVerified: false,
	}
	if err := s.repo.CreateUser(ctx, nil, user); err != nil {
		return nil, e.ErrServer
	}
	return user, nil
}

func (s *UserService) generateToken(user *model.User) (string, error) {
	claims := &jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     string(user.Role),
		"exp":      time.Now().Add(time.Hour * time.Duration(s.expireHours)).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

func (s *UserService) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	user, err := s.repo.FindByUsername(ctx, nil, username)
	if err != nil {
		// an unknown user gets the same answer as a wrong password
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, e.ErrPassword
		}
		return nil, e.ErrServer
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, e.ErrPassword
	}
	if !user.IsActive {
		return nil, e.ErrUserBanned
	}
	token, err := s.generateToken(user)
	if err != nil {
		return nil, e.ErrToken
	}
	_ = s.repo.TouchLastActive(ctx, nil, user.ID)
	return &LoginResponse{Token: token, User: user}, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uint, bio, avatarURL string) error {
	if utf8.RuneCountInString(bio) > model.BioMaxLength {
		return e.Validation("bio", "bio must be at most 500 characters")
	}
	if err := s.repo.UpdateProfile(ctx, nil, userID, bio, avatarURL); err != nil {
		return e.ErrServer
	}
	s.dropProfileCache(userID)
	return nil
}

// BanUser is admin-only and flips the active flag; the user's content stays.
func (s *UserService) BanUser(ctx context.Context, targetID uint, actorRole model.Role) error {
	if actorRole != model.RoleAdmin {
		return e.ErrPermission
	}
	user, err := s.repo.FindUserByID(ctx, nil, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return e.ErrUserNotFound
		}
		return e.ErrServer
	}
	if user.Role == model.RoleAdmin {
		return e.ErrPermission
	}
	if err := s.repo.BanUser(ctx, nil, targetID); err != nil {
		return e.ErrServer
	}
	s.dropProfileCache(targetID)
	return nil
}

func (s *UserService) UnbanUser(ctx context.Context, targetID uint, actorRole model.Role) error {
	if actorRole != model.RoleAdmin {
		return e.ErrPermission
	}
	if _, err := s.repo.FindUserByID(ctx, nil, targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return e.ErrUserNotFound
		}
		return e.ErrServer
	}
	if err := s.repo.UnbanUser(ctx, nil, targetID); err != nil {
		return e.ErrServer
	}
	s.dropProfileCache(targetID)
	return nil
}

// GetUserProfile serves the public projection, redis-cached with a NULL
// placeholder so missing users don't hammer the store.
func (s *UserService) GetUserProfile(ctx context.Context, targetID uint) (*UserProfileVO, error) {
	cacheKey := fmt.Sprintf(cacheKeyUserProfile, targetID)
	if s.rdb != nil {
		val, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			if val == CacheNullPlaceholder {
				return nil, e.ErrUserNotFound
			}
			var profile UserProfileVO
			if json.Unmarshal([]byte(val), &profile) == nil {
				return &profile, nil
			}
		}
	}
	user, err := s.repo.FindUserByID(ctx, nil, targetID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, e.ErrServer
		}
		if s.rdb != nil {
			s.rdb.Set(ctx, cacheKey, CacheNullPlaceholder, time.Minute)
		}
		return nil, e.ErrUserNotFound
	}
	profile := &UserProfileVO{
		ID:         user.ID,
		Username:   user.Username,
		Role:       user.Role,
		Bio:        user.Bio,
		AvatarURL:  user.AvatarURL,
		PostCount:  user.PostCount,
		TopicCount: user.TopicCount,
		Reputation: user.Reputation,
		JoinDate:   user.CreatedAt,
		LastActive: user.LastActive,
	}
	if s.rdb != nil {
		data, _ := json.Marshal(profile)
		s.rdb.Set(ctx, cacheKey, data, getRandomExpire(30*time.Minute))
	}
	return profile, nil
}

func (s *UserService) dropProfileCache(userID uint) {
	if s.rdb == nil {
		return
	}
	s.rdb.Del(context.Background(), fmt.Sprintf(cacheKeyUserProfile, userID))
}
