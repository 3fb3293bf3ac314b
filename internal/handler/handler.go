package handler

import (
	"context"

	"github.com/IDobkov90/ufc/internal/model"
	"github.com/IDobkov90/ufc/internal/service"
	"github.com/IDobkov90/ufc/pkg/e"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Services *service.Services
}

func NewHandler(services *service.Services) *Handler {
	return &Handler{Services: services}
}

type RegisterReq struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
type LoginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
type UpdateProfileReq struct {
	Bio       string `json:"bio" binding:"omitempty,max=500"`
	AvatarURL string `json:"avatar_url" binding:"omitempty"`
}

// registration and login live on the public group
func (h *Handler) Register(c *gin.Context) {
	var req RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		e.ErrorResponse(c, e.ErrInvalidArgs)
		return
	}
	user, err := h.Services.User.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		e.ErrorResponse(c, err)
		return
	}
	e.SuccessResponse(c, user)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		e.ErrorResponse(c, e.ErrInvalidArgs)
		return
	}
	resp, err := h.Services.User.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		e.ErrorResponse(c, err)
		return
	}
	e.SuccessResponse(c, resp)
}

func (h *Handler) GetProfile(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		e.ErrorResponse(c, e.ErrInvalidArgs)
		return
	}
	profile, err := h.Services.User.GetUserProfile(c.Request.Context(), id)
	if err != nil {
		e.ErrorResponse(c, err)
		return
	}
	e.SuccessResponse(c, profile)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req UpdateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		e.ErrorResponse(c, e.ErrInvalidArgs)
		return
	}
	if err := h.Services.User.UpdateProfile(c.Request.Context(), uid, req.Bio, req.AvatarURL); err != nil {
		e.ErrorResponse(c, err)
		return
	}
	e.SuccessResponse(c, nil)
}

type CreateTopicReq struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Category string `json:"category" binding:"required"`
}

func (h *Handler) CreateTopic(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CreateTopicReq
	if err := c.ShouldBindJSON(&req); err != nil {
		e.ErrorResponse(c, e.ErrInvalidArgs)
		return
	}
	topic, err := h.Services.Topic.CreateTopic(c.Request.Context(), uid, req.Title, req.Content, model.TopicCategory(req.Category))
	if err != nil {
		e.ErrorResponse(c, err)
		return
	}
	e.SuccessResponse(c, topic)
}

// GetTopic also bumps the view counter; a failed bump never fails the read.
func (h *Handler) GetTopic(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		e.ErrorResponse(c, e.ErrInvalidArgs)
		return
	}
	topic, err := h.Services.Topic.GetTopic(c.Request.Context(), id)
	if err != nil {
		e.ErrorResponse(c, err)
		return
	}
	h.Services.Topic.IncrementViewCount(c.Request.Context(), id)
	e.SuccessResponse(c, topic)
}

func (h *Handler) ListTopics(c *gin.Context) {
	page, pageSize := parsePaging(c)
	category := c.Query("category")
	var (
		topics []model.Topic
		err    error
	)
	if category != "" {
		topics, err = h.Services.Topic.ListByCategory(c.Request.Context(), model.TopicCategory(category), page, pageSize)
	} else {
		topics, err = h.Services.Topic.ListTopics(c.Request.Context(), page, pageSize)
	}
	if err != nil {
		e.ErrorResponse(c, err)
		return
	}
	e.SuccessResponse(c, topics)
}

func (h *Handler) RecentTopics(c *gin.Context) {
	_, pageSize := parsePaging(c)
	topics, err := h.Services.Topic.RecentTopics(c.Request.Context(), pageSize)
	if err != nil {
		e.ErrorResponse(c, err)
		return
	}
	e.SuccessResponse(c, topics)
}

func (h *Handler) DeleteTopic(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		e.ErrorResponse(c, e.ErrInvalidArgs)
		return
	}
	if err := h.Services.Topic.DeleteTopic(c.Request.Context(), id, uid, getRole(c)); err != nil {
		e.ErrorResponse(c, err)
		return
	}
	e.SuccessResponse(c, nil)
}

// moderation toggles
func (h *Handler) PinTopic(c *gin.Context)    { h.moderateTopic(c, h.Services.Topic.PinTopic) }
func (h *Handler) UnpinTopic(c *gin.Context)  { h.moderateTopic(c, h.Services.Topic.UnpinTopic) }
func (h *Handler) LockTopic(c *gin.Context)   { h.moderateTopic(c, h.Services.Topic.LockTopic) }
func (h *Handler) UnlockTopic(c *gin.Context) { h.moderateTopic(c, h.Services.Topic.UnlockTopic) }

func (h *Handler) moderateTopic(c *gin.Context, action func(ctx context.Context, topicID uint, actorRole model.Role) error) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		e.ErrorResponse(c, e.ErrInvalidArgs)
		return
	}
	if err := action(c.Request.Context(), id, getRole(c)); err != nil {
		e.ErrorResponse(c, err)
		return
	}
	e.SuccessResponse(c, nil)
}

type CreatePostReq struct {
	Content      string `json:"content" binding:"required"`
	QuotedPostID *uint  `json:"quoted_post_id"`
}

func (h *Handler) CreatePost(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	topicID, err := parseIDParam(c, "id")
	if err != nil {
		e.ErrorResponse(c, e.ErrInvalidArgs)
		return
	}
	var req CreatePostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		e.ErrorResponse(c, e.ErrInvalidArgs)
		return
	}
	post, err := h.Services.Post.CreatePost(c.Request.Context(), topicID, uid, req.Content, req.QuotedPostID)
	if err != nil {
		e.ErrorResponse(c, err)
		return
	}
	e.SuccessResponse(c, post)
}

func (h *Handler) GetPost(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		e.ErrorResponse(c, e.ErrInvalidArgs)
		return
	}
	post, err := h.Services.Post.GetPost(c.Request.Context(), id)
	if err != nil {
		e.ErrorResponse(c, err)
		return
	}
	e.SuccessResponse(c, post)
}

func (h *Handler) ListTopicPosts(c *gin.Context) {
	topicID, err := parseIDParam(c, "id")
	if err != nil {
		e.ErrorResponse(c, e.ErrInvalidArgs)
		return
	}
	page, pageSize := parsePaging(c)
	posts, err := h.Services.Post.ListByTopic(c.Request.Context(), topicID, page, pageSize)
	if err != nil {
		e.ErrorResponse(c, err)
		return
	}
	e.SuccessResponse(c, posts)
}

type UpdatePostReq struct {
	Content    string `json:"content" binding:"required"`
	EditReason string `json:"edit_reason" binding:"omitempty,max=200"`
}

func (h *Handler) UpdatePost(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		e.ErrorResponse(c, e.ErrInvalidArgs)
		return
	}
	var req UpdatePostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		e.ErrorResponse(c, e.ErrInvalidArgs)
		return
	}
	post, err := h.Services.Post.UpdatePost(c.Request.Context(), id, req.Content, req.EditReason, uid, getRole(c))
	if err != nil {
		e.ErrorResponse(c, err)
		return
	}
	e.SuccessResponse(c, post)
}

func (h *Handler) DeletePost(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		e.ErrorResponse(c, e.ErrInvalidArgs)
		return
	}
	if err := h.Services.Post.DeletePost(c.Request.Context(), id, uid, getRole(c)); err != nil {
		e.ErrorResponse(c, err)
		return
	}
	e.SuccessResponse(c, nil)
}

type VoteReq struct {
	Up *bool `json:"up" binding:"required"`
}

func (h *Handler) VotePost(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		e.ErrorResponse(c, e.ErrInvalidArgs)
		return
	}
	var req VoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		e.ErrorResponse(c, e.ErrInvalidArgs)
		return
	}
	if err := h.Services.Post.VotePost(c.Request.Context(), id, uid, *req.Up); err != nil {
		e.ErrorResponse(c, err)
		return
	}
	e.SuccessResponse(c, nil)
}

type AddCommentReq struct {
	Content string `json:"content" binding:"required"`
}

func (h *Handler) AddComment(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	postID, err := parseIDParam(c, "id")
	if err != nil {
		e.ErrorResponse(c, e.ErrInvalidArgs)
		return
	}
	var req AddCommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		e.ErrorResponse(c, e.ErrInvalidArgs)
		return
	}
	comment, err := h.Services.Comment.AddComment(c.Request.Context(), postID, uid, req.Content)
	if err != nil {
		e.ErrorResponse(c, err)
		return
	}
	e.SuccessResponse(c, comment)
}

func (h *Handler) GetComments(c *gin.Context) {
	postID, err := parseIDParam(c, "id")
	if err != nil {
		e.ErrorResponse(c, e.ErrInvalidArgs)
		return
	}
	comments, err := h.Services.Comment.GetComments(c.Request.Context(), postID)
	if err != nil {
		e.ErrorResponse(c, err)
		return
	}
	e.SuccessResponse(c, comments)
}

func (h *Handler) DeleteComment(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		e.ErrorResponse(c, e.ErrInvalidArgs)
		return
	}
	if err := h.Services.Comment.DeleteComment(c.Request.Context(), id, uid, getRole(c)); err != nil {
		e.ErrorResponse(c, err)
		return
	}
	e.SuccessResponse(c, nil)
}

// Search: ?q= and optional ?kind= (all|topics|posts|users)
func (h *Handler) Search(c *gin.Context) {
	result, err := h.Services.Search.Search(c.Request.Context(), c.Query("q"), c.Query("kind"))
	if err != nil {
		e.ErrorResponse(c, err)
		return
	}
	e.SuccessResponse(c, result)
}

func (h *Handler) ListCategories(c *gin.Context) {
	e.SuccessResponse(c, model.Categories())
}

// admin surface
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.Services.Stats.GetForumStats(c.Request.Context())
	if err != nil {
		e.ErrorResponse(c, err)
		return
	}
	e.SuccessResponse(c, stats)
}

func (h *Handler) ReconcileCounters(c *gin.Context) {
	if err := h.Services.Stats.ReconcileCounters(c.Request.Context()); err != nil {
		e.ErrorResponse(c, err)
		return
	}
	e.SuccessResponse(c, nil)
}

func (h *Handler) BanUser(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		e.ErrorResponse(c, e.ErrInvalidArgs)
		return
	}
	if err := h.Services.User.BanUser(c.Request.Context(), id, getRole(c)); err != nil {
		e.ErrorResponse(c, err)
		return
	}
	e.SuccessResponse(c, nil)
}

func (h *Handler) UnbanUser(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		e.ErrorResponse(c, e.ErrInvalidArgs)
		return
	}
	if err := h.Services.User.UnbanUser(c.Request.Context(), id, getRole(c)); err != nil {
		e.ErrorResponse(c, err)
		return
	}
	e.SuccessResponse(c, nil)
}
