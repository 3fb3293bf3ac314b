package service

import (
	"context"
	"strings"
	"testing"

	"github.com/IDobkov90/ufc/internal/model"
	"github.com/IDobkov90/ufc/pkg/e"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterDefaults(t *testing.T) {
	svcs, db := newTestServices(t)
	ctx := context.Background()

	user, err := svcs.User.Register(ctx, "octagonfan", "octagonfan@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.True(t, user.IsActive)
	assert.False(t, user.EmailVerified)
	assert.Zero(t, user.PostCount)
	assert.Zero(t, user.TopicCount)
	assert.Zero(t, user.Reputation)
	assert.NotEqual(t, "secret123", user.Password, "stored credential must be hashed")

	stored := getUser(t, db, user.ID)
	assert.Equal(t, "octagonfan", stored.Username)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svcs, db := newTestServices(t)
	ctx := context.Background()

	_, err := svcs.User.Register(ctx, "octagonfan", "first@example.com", "secret123")
	require.NoError(t, err)
	_, err = svcs.User.Register(ctx, "octagonfan", "second@example.com", "secret123")
	assert.ErrorIs(t, err, e.ErrUsernameTaken)

	var count int64
	require.NoError(t, db.Model(&model.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "exactly one account persists")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()

	_, err := svcs.User.Register(ctx, "first", "shared@example.com", "secret123")
	require.NoError(t, err)
	_, err = svcs.User.Register(ctx, "second", "shared@example.com", "secret123")
	assert.ErrorIs(t, err, e.ErrEmailTaken)
}

func TestRegisterValidation(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()

	var valErr *e.Error

	_, err := svcs.User.Register(ctx, "ab", "a@example.com", "secret123")
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "username", valErr.Field)

	_, err = svcs.User.Register(ctx, strings.Repeat("x", 51), "a@example.com", "secret123")
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "username", valErr.Field)

	_, err = svcs.User.Register(ctx, "valid", "a@example.com", "short")
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "password", valErr.Field)

	_, err = svcs.User.Register(ctx, "valid", "", "secret123")
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "email", valErr.Field)
}

func TestLogin(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()

	_, err := svcs.User.Register(ctx, "octagonfan", "octagonfan@example.com", "secret123")
	require.NoError(t, err)

	resp, err := svcs.User.Login(ctx, "octagonfan", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "octagonfan", resp.User.Username)

	_, err = svcs.User.Login(ctx, "octagonfan", "wrongpass")
	assert.ErrorIs(t, err, e.ErrPassword)

	// unknown user gets the same error as a wrong password
	_, err = svcs.User.Login(ctx, "nobody", "secret123")
	assert.ErrorIs(t, err, e.ErrPassword)
}

func TestBanUser(t *testing.T) {
	svcs, db := newTestServices(t)
	ctx := context.Background()

	user, err := svcs.User.Register(ctx, "troublemaker", "tm@example.com", "secret123")
	require.NoError(t, err)
	admin := seedUser(t, db, "admin", model.RoleAdmin)

	err = svcs.User.BanUser(ctx, user.ID, model.RoleModerator)
	assert.ErrorIs(t, err, e.ErrPermission)

	require.NoError(t, svcs.User.BanUser(ctx, user.ID, model.RoleAdmin))
	assert.False(t, getUser(t, db, user.ID).IsActive)

	_, err = svcs.User.Login(ctx, "troublemaker", "secret123")
	assert.ErrorIs(t, err, e.ErrUserBanned)

	// admins cannot be banned, even by another admin
	err = svcs.User.BanUser(ctx, admin.ID, model.RoleAdmin)
	assert.ErrorIs(t, err, e.ErrPermission)

	require.NoError(t, svcs.User.UnbanUser(ctx, user.ID, model.RoleAdmin))
	assert.True(t, getUser(t, db, user.ID).IsActive)

	err = svcs.User.BanUser(ctx, 9999, model.RoleAdmin)
	assert.ErrorIs(t, err, e.ErrUserNotFound)
}

func TestUpdateProfile(t *testing.T) {
	svcs, db := newTestServices(t)
	ctx := context.Background()
	user := seedUser(t, db, "writer", model.RoleUser)

	require.NoError(t, svcs.User.UpdateProfile(ctx, user.ID, "BJJ purple belt", "https://cdn.example.com/a.png"))
	stored := getUser(t, db, user.ID)
	assert.Equal(t, "BJJ purple belt", stored.Bio)
	assert.Equal(t, "https://cdn.example.com/a.png", stored.AvatarURL)

	err := svcs.User.UpdateProfile(ctx, user.ID, strings.Repeat("x", 501), "")
	var valErr *e.Error
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "bio", valErr.Field)
}

func TestStoreFailureIsNotMisreported(t *testing.T) {
	svcs, db := newTestServices(t)
	ctx := context.Background()

	_, err := svcs.User.Register(ctx, "octagonfan", "octagonfan@example.com", "secret123")
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	// a dead store must not read as a wrong password or a missing user
	_, err = svcs.User.Login(ctx, "octagonfan", "secret123")
	assert.ErrorIs(t, err, e.ErrServer)

	_, err = svcs.User.GetUserProfile(ctx, 1)
	assert.ErrorIs(t, err, e.ErrServer)

	assert.ErrorIs(t, svcs.User.BanUser(ctx, 1, model.RoleAdmin), e.ErrServer)
	assert.ErrorIs(t, svcs.User.UnbanUser(ctx, 1, model.RoleAdmin), e.ErrServer)
}

func TestGetUserProfile(t *testing.T) {
	svcs, db := newTestServices(t)
	ctx := context.Background()
	user := seedUser(t, db, "veteran", model.RoleModerator)
	require.NoError(t, db.Model(user).Updates(map[string]interface{}{
		"reputation": 42, "post_count": 7, "topic_count": 3,
	}).Error)

	profile, err := svcs.User.GetUserProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "veteran", profile.Username)
	assert.Equal(t, model.RoleModerator, profile.Role)
	assert.Equal(t, 42, profile.Reputation)
	assert.Equal(t, 7, profile.PostCount)
	assert.Equal(t, 3, profile.TopicCount)

	_, err = svcs.User.GetUserProfile(ctx, 9999)
	assert.ErrorIs(t, err, e.ErrUserNotFound)
}
