package e

import "fmt"

const (
	Success            = 0
	ErrorServer        = 500
	ErrorInvalidParams = 400
	// user error codes
	ErrorUsernameTaken = 10001
	ErrorEmailTaken    = 10002
	ErrorUserNotFound  = 10003
	ErrorPassword      = 10004
	ErrorUserBanned    = 10005
	ErrorPermission    = 10006
	ErrorToken         = 10007
	// content error codes
	ErrorTopicNotFound   = 20001
	ErrorTopicLocked     = 20002
	ErrorPostNotFound    = 20003
	ErrorCommentNotFound = 20004
	ErrorValidation      = 20005
)

type Error struct {
	Code  int    `json:"code"`
	Msg   string `json:"msg"`
	Field string `json:"field,omitempty"`
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("code:%d,field:%s,msg:%s", e.Code, e.Field, e.Msg)
	}
	return fmt.Sprintf("code:%d,msg:%s", e.Code, e.Msg)
}

func New(code int, msg string) *Error {
	return &Error{Code: code, Msg: msg}
}

// Validation builds a field-level validation error so the caller can attach
// the message to the offending input.
func Validation(field, msg string) *Error {
	return &Error{Code: ErrorValidation, Msg: msg, Field: field}
}

var (
	ErrServer        = New(ErrorServer, "internal server error")
	ErrInvalidArgs   = New(ErrorInvalidParams, "invalid parameters")
	ErrUsernameTaken = &Error{Code: ErrorUsernameTaken, Msg: "username is already taken", Field: "username"}
	ErrEmailTaken    = &Error{Code: ErrorEmailTaken, Msg: "email is already registered", Field: "email"}
	ErrUserNotFound  = New(ErrorUserNotFound, "user not found")
	ErrPassword      = New(ErrorPassword, "invalid username or password")
	ErrUserBanned    = New(ErrorUserBanned, "account is banned")
	ErrPermission    = New(ErrorPermission, "you don't have permission for this action")
	ErrToken         = New(ErrorToken, "could not issue token")
	ErrTopicNotFound = New(ErrorTopicNotFound, "topic not found")
	ErrTopicLocked   = New(ErrorTopicLocked, "topic is locked and accepts no new posts")
	ErrPostNotFound  = New(ErrorPostNotFound, "post not found")
	ErrCommentNotFound = New(ErrorCommentNotFound, "comment not found")
)
