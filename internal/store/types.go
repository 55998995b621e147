package store

import (
	"context"
	"errors"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrConflict       = errors.New("record already exists")
)

// Vote values accepted by the BlogVote collection.
const (
	VoteUp   = "upvote"
	VoteDown = "downvote"
)

type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Bio        string `json:"bio"`
	ProfilePic string `json:"profilePic"`
	IsAuthor   bool   `json:"isAuthor"`
}

type Blog struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	AuthorID string `json:"authorId"`
}

// BlogReader records that a user has read a blog.
type BlogReader struct {
	ID     string `json:"id"`
	BlogID string `json:"blogId"`
	UserID string `json:"userId"`
}

type BlogVote struct {
	ID     string `json:"id"`
	BlogID string `json:"blogId"`
	UserID string `json:"userId"`
	Vote   string `json:"vote"`
}

// Filters match by equality on every non-nil field. A zero filter matches all records.

type UserFilter struct {
	IsAuthor *bool
}

type BlogFilter struct {
	AuthorID *string
}

type ReaderFilter struct {
	BlogID *string
	UserID *string
}

type VoteFilter struct {
	BlogID *string
	UserID *string
	Vote   *string
}

// BlogPatch holds the blog fields an update may change. Nil fields are left untouched.
type BlogPatch struct {
	Title   *string
	Content *string
}

type UserStore interface {
	FindByID(ctx context.Context, id string) (*User, error)
	FindMany(ctx context.Context, f UserFilter) ([]User, error)
	Insert(ctx context.Context, u *User) error
	DeleteByID(ctx context.Context, id string) (*User, error)
}

type BlogStore interface {
	FindByID(ctx context.Context, id string) (*Blog, error)
	FindMany(ctx context.Context, f BlogFilter) ([]Blog, error)
	Insert(ctx context.Context, b *Blog) error
	UpdateByID(ctx context.Context, id string, patch BlogPatch) (*Blog, error)
	DeleteByID(ctx context.Context, id string) (*Blog, error)
}

type ReaderStore interface {
	FindMany(ctx context.Context, f ReaderFilter) ([]BlogReader, error)
	Insert(ctx context.Context, r *BlogReader) error
}

type VoteStore interface {
	FindMany(ctx context.Context, f VoteFilter) ([]BlogVote, error)
	Insert(ctx context.Context, v *BlogVote) error
	UpdateByID(ctx context.Context, id string, vote string) (*BlogVote, error)
}

// Store groups the four collections. Every lookup that misses returns ErrRecordNotFound.
type Store struct {
	Users   UserStore
	Blogs   BlogStore
	Readers ReaderStore
	Votes   VoteStore
}

func StringPtr(s string) *string {
	return &s
}

func BoolPtr(b bool) *bool {
	return &b
}
