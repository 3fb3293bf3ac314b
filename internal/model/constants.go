package model

// Validation limits
const (
	UsernameMinLength   = 3
	UsernameMaxLength   = 50
	PasswordMinLength   = 6
	PasswordMaxLength   = 100
	EmailMaxLength      = 100
	BioMaxLength        = 500
	TopicTitleMinLength = 5
	TopicTitleMaxLength = 200
	PostContentMin      = 10
	PostContentMax      = 10000
	CommentMinLength    = 1
	CommentMaxLength    = 1000
)

// Reputation deltas. Reputation is adjusted by these, never recomputed.
const (
	ReputationNewTopic = 5
	ReputationNewPost  = 2
	ReputationUpvote   = 10
	ReputationDownvote = -2
)

// Search result caps and excerpt length
const (
	SearchLimitAll    = 10
	SearchLimitSingle = 50
	ExcerptMaxLength  = 150
)
