package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"social/internal/domain"
)

type PostRepository struct {
	mu       sync.RWMutex
	posts    []*domain.Post
	comments []*domain.Comment
	likes    []*domain.Like

	nextPostID    int64
	nextCommentID int64
	nextLikeID    int64
}

func NewPostRepository() *PostRepository {
	return &PostRepository{}
}

func (r *PostRepository) List(ctx context.Context, opts domain.PostListOptions) ([]*domain.Post, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(opts.Search)

	posts := make([]*domain.Post, 0, len(r.posts))
	for _, p := range r.posts {
		if search != "" && !strings.Contains(strings.ToLower(p.Body), search) {
			continue
		}
		posts = append(posts, r.withLikes(p))
	}

	switch opts.Sorting {
	case domain.SortOld:
		sort.SliceStable(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })
	case domain.SortMostLikes:
		sort.SliceStable(posts, func(i, j int) bool {
			if posts[i].Likes == posts[j].Likes {
				return posts[i].ID > posts[j].ID
			}
			return posts[i].Likes > posts[j].Likes
		})
	default:
		sort.SliceStable(posts, func(i, j int) bool { return posts[i].ID > posts[j].ID })
	}

	total := int64(len(posts))

	offset := 0
	if opts.IsPaginate && opts.Page > 1 {
		offset = (opts.Page - 1) * opts.Limit
	}
	if offset < 0 || offset >= len(posts) {
		return []*domain.Post{}, total, nil
	}
	posts = posts[offset:]
	if opts.Limit > 0 && len(posts) > opts.Limit {
		posts = posts[:opts.Limit]
	}

	return posts, total, nil
}

func (r *PostRepository) GetByID(ctx context.Context, postID int64) (*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p := r.find(postID)
	if p == nil {
		return nil, domain.ErrPostNotFound
	}
	return r.withLikes(p), nil
}

func (r *PostRepository) Create(ctx context.Context, p *domain.Post) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextPostID++
	cp := *p
	cp.ID = r.nextPostID
	cp.CreatedAt = time.Now().UTC()
	r.posts = append(r.posts, &cp)

	out := cp
	return &out, nil
}

func (r *PostRepository) SetImageURL(ctx context.Context, postID int64, imageURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.find(postID)
	if p == nil {
		return domain.ErrPostNotFound
	}
	p.ImageURL = &imageURL
	return nil
}

func (r *PostRepository) ListComments(ctx context.Context, postID int64) ([]*domain.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	comments := []*domain.Comment{}
	for _, c := range r.comments {
		if c.PostID == postID {
			cp := *c
			comments = append(comments, &cp)
		}
	}
	return comments, nil
}

func (r *PostRepository) CreateComment(ctx context.Context, c *domain.Comment) (*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.find(c.PostID) == nil {
		return nil, domain.ErrPostNotFound
	}

	r.nextCommentID++
	cp := *c
	cp.ID = r.nextCommentID
	cp.CreatedAt = time.Now().UTC()
	r.comments = append(r.comments, &cp)

	out := cp
	return &out, nil
}

func (r *PostRepository) CreateLike(ctx context.Context, l *domain.Like) (*domain.Like, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.find(l.PostID) == nil {
		return nil, domain.ErrPostNotFound
	}
	for _, existing := range r.likes {
		if existing.PostID == l.PostID && existing.UserID == l.UserID {
			return nil, domain.ErrPostAlreadyLiked
		}
	}

	r.nextLikeID++
	cp := *l
	cp.ID = r.nextLikeID
	cp.CreatedAt = time.Now().UTC()
	r.likes = append(r.likes, &cp)

	out := cp
	return &out, nil
}

func (r *PostRepository) find(postID int64) *domain.Post {
	for _, p := range r.posts {
		if p.ID == postID {
			return p
		}
	}
	return nil
}

// withLikes returns a copy of p with its like count filled in. Caller holds the lock.
func (r *PostRepository) withLikes(p *domain.Post) *domain.Post {
	cp := *p
	cp.Likes = 0
	for _, l := range r.likes {
		if l.PostID == p.ID {
			cp.Likes++
		}
	}
	return &cp
}
