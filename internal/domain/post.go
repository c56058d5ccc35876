package domain

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrPostNotFound     = errors.New("post not found")
	ErrPostAlreadyLiked = errors.New("post already liked")
	ErrInvalidSorting   = errors.New("invalid sorting")
)

// PostNotFoundError names the post that does not exist. It matches
// ErrPostNotFound.
type PostNotFoundError struct {
	ID int64
}

func (e *PostNotFoundError) Error() string {
	return fmt.Sprintf("Post with id %d not found", e.ID)
}

func (e *PostNotFoundError) Is(target error) bool {
	return target == ErrPostNotFound
}

type PostSorting string

const (
	SortNew       PostSorting = "new"
	SortOld       PostSorting = "old"
	SortMostLikes PostSorting = "most_likes"
)

func ParsePostSorting(raw string) (PostSorting, error) {
	switch PostSorting(raw) {
	case "":
		return SortNew, nil
	case SortNew, SortOld, SortMostLikes:
		return PostSorting(raw), nil
	default:
		return "", ErrInvalidSorting
	}
}

type Post struct {
	ID        int64     `json:"id"`
	Body      string    `json:"body"`
	UserID    int64     `json:"user_id"`
	ImageURL  *string   `json:"image_url"`
	Likes     int64     `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
}

type Comment struct {
	ID        int64     `json:"id"`
	Body      string    `json:"body"`
	PostID    int64     `json:"post_id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Like struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post_id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type PostWithComments struct {
	Post     *Post      `json:"post"`
	Comments []*Comment `json:"comments"`
}

type PostListOptions struct {
	ListOptions
	Sorting PostSorting
}

type PostCreateRequest struct {
	Body   string `json:"body" validate:"required"`
	Prompt string `json:"prompt,omitempty"`
}

type CommentCreateRequest struct {
	Body   string `json:"body" validate:"required"`
	PostID int64  `json:"post_id" validate:"required,gt=0"`
}

type LikeCreateRequest struct {
	PostID int64 `json:"post_id" validate:"required,gt=0"`
}

type PostRepository interface {
	List(ctx context.Context, opts PostListOptions) ([]*Post, int64, error)
	GetByID(ctx context.Context, postID int64) (*Post, error)
	Create(ctx context.Context, p *Post) (*Post, error)
	SetImageURL(ctx context.Context, postID int64, imageURL string) error

	ListComments(ctx context.Context, postID int64) ([]*Comment, error)
	CreateComment(ctx context.Context, c *Comment) (*Comment, error)

	CreateLike(ctx context.Context, l *Like) (*Like, error)
}

type PostService interface {
	List(ctx context.Context, opts PostListOptions) (*ListResult[*Post], error)
	Get(ctx context.Context, postID int64) (*PostWithComments, error)
	Create(ctx context.Context, user *User, req PostCreateRequest) (*Post, error)
	ListComments(ctx context.Context, postID int64) ([]*Comment, error)
	CreateComment(ctx context.Context, user *User, req CommentCreateRequest) (*Comment, error)
	Like(ctx context.Context, user *User, req LikeCreateRequest) (*Like, error)
	AttachImage(ctx context.Context, postID int64, imageURL string) error
}

type EventPostCreated struct {
	Post   *Post  `json:"post"`
	Prompt string `json:"-"`
}

type EventCommentCreated struct {
	Comment *Comment `json:"comment"`
}

type EventPostLiked struct {
	Like *Like `json:"like"`
}
