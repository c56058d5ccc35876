// Package post
package post

import (
	"context"
	"errors"
	"math"
	"strings"

	"social/internal/domain"
	"social/internal/event"
)

const maxListLimit = 1000

type Service struct {
	repo domain.PostRepository
	bus  *event.Bus
}

func NewService(repo domain.PostRepository, bus *event.Bus) domain.PostService {
	return &Service{
		repo: repo,
		bus:  bus,
	}
}

func (s *Service) List(ctx context.Context, opts domain.PostListOptions) (*domain.ListResult[*domain.Post], error) {
	if opts.IsPaginate {
		if opts.Page <= 0 {
			opts.Page = 1
		}
		if opts.Limit <= 0 {
			opts.Limit = 10
		}
	} else {
		if opts.Limit <= 0 {
			opts.Limit = 1000
		}
	}
	if opts.Limit > maxListLimit {
		opts.Limit = maxListLimit
	}
	// (page-1)*limit must stay representable as an offset.
	if maxPage := math.MaxInt / opts.Limit; opts.Page > maxPage {
		opts.Page = maxPage
	}
	if opts.Sorting == "" {
		opts.Sorting = domain.SortNew
	}

	posts, total, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, err
	}

	res := &domain.ListResult[*domain.Post]{
		Data: posts,
		Meta: nil,
	}

	if opts.IsPaginate {
		res.Meta = domain.CalculateMeta(total, opts.Page, opts.Limit)
	}

	return res, nil
}

func (s *Service) Get(ctx context.Context, postID int64) (*domain.PostWithComments, error) {
	p, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return nil, postErr(err, postID)
	}

	comments, err := s.repo.ListComments(ctx, postID)
	if err != nil {
		return nil, err
	}

	return &domain.PostWithComments{Post: p, Comments: comments}, nil
}

func (s *Service) Create(ctx context.Context, user *domain.User, req domain.PostCreateRequest) (*domain.Post, error) {
	p, err := s.repo.Create(ctx, &domain.Post{
		Body:   req.Body,
		UserID: user.ID,
	})
	if err != nil {
		return nil, err
	}

	if s.bus != nil {
		s.bus.Publish(domain.TopicPostCreated, domain.EventPostCreated{
			Post:   p,
			Prompt: strings.TrimSpace(req.Prompt),
		})
	}

	return p, nil
}

func (s *Service) ListComments(ctx context.Context, postID int64) ([]*domain.Comment, error) {
	if _, err := s.repo.GetByID(ctx, postID); err != nil {
		return nil, postErr(err, postID)
	}
	return s.repo.ListComments(ctx, postID)
}

func (s *Service) CreateComment(ctx context.Context, user *domain.User, req domain.CommentCreateRequest) (*domain.Comment, error) {
	c, err := s.repo.CreateComment(ctx, &domain.Comment{
		Body:   req.Body,
		PostID: req.PostID,
		UserID: user.ID,
	})
	if err != nil {
		return nil, postErr(err, req.PostID)
	}

	if s.bus != nil {
		s.bus.Publish(domain.TopicCommentCreated, domain.EventCommentCreated{Comment: c})
	}

	return c, nil
}

func (s *Service) Like(ctx context.Context, user *domain.User, req domain.LikeCreateRequest) (*domain.Like, error) {
	l, err := s.repo.CreateLike(ctx, &domain.Like{
		PostID: req.PostID,
		UserID: user.ID,
	})
	if err != nil {
		return nil, postErr(err, req.PostID)
	}

	if s.bus != nil {
		s.bus.Publish(domain.TopicPostLiked, domain.EventPostLiked{Like: l})
	}

	return l, nil
}

func (s *Service) AttachImage(ctx context.Context, postID int64, imageURL string) error {
	return postErr(s.repo.SetImageURL(ctx, postID, imageURL), postID)
}

// postErr names the missing post in a not-found error.
func postErr(err error, postID int64) error {
	if errors.Is(err, domain.ErrPostNotFound) {
		return &domain.PostNotFoundError{ID: postID}
	}
	return err
}
