package memory

import (
	"context"
	"math"
	"testing"

	"social/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_InsertFindActivate(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	u, err := repo.Insert(ctx, "bob@x.com", "hash")
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	assert.False(t, u.IsActive)

	_, err = repo.Insert(ctx, "bob@x.com", "other")
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = repo.FindByEmail(ctx, "BOB@x.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	require.NoError(t, repo.SetActivated(ctx, "bob@x.com"))
	got, err := repo.FindByEmail(ctx, "bob@x.com")
	require.NoError(t, err)
	assert.True(t, got.IsActive)

	require.NoError(t, repo.UpdatePassword(ctx, u.ID, "new-hash"))
	byID, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", byID.Password)

	assert.ErrorIs(t, repo.SetActivated(ctx, "ghost@x.com"), domain.ErrUserNotFound)
}

func TestPostRepository_SortingAndLikes(t *testing.T) {
	ctx := context.Background()
	repo := NewPostRepository()

	first, err := repo.Create(ctx, &domain.Post{Body: "first", UserID: 1})
	require.NoError(t, err)
	second, err := repo.Create(ctx, &domain.Post{Body: "second", UserID: 1})
	require.NoError(t, err)

	_, err = repo.CreateLike(ctx, &domain.Like{PostID: first.ID, UserID: 1})
	require.NoError(t, err)
	_, err = repo.CreateLike(ctx, &domain.Like{PostID: first.ID, UserID: 1})
	assert.ErrorIs(t, err, domain.ErrPostAlreadyLiked)
	_, err = repo.CreateLike(ctx, &domain.Like{PostID: 99, UserID: 1})
	assert.ErrorIs(t, err, domain.ErrPostNotFound)

	posts, total, err := repo.List(ctx, domain.PostListOptions{Sorting: domain.SortNew})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, second.ID, posts[0].ID)

	posts, _, err = repo.List(ctx, domain.PostListOptions{Sorting: domain.SortOld})
	require.NoError(t, err)
	assert.Equal(t, first.ID, posts[0].ID)

	posts, _, err = repo.List(ctx, domain.PostListOptions{Sorting: domain.SortMostLikes})
	require.NoError(t, err)
	assert.Equal(t, first.ID, posts[0].ID)
	assert.Equal(t, int64(1), posts[0].Likes)

	posts, _, err = repo.List(ctx, domain.PostListOptions{
		ListOptions: domain.ListOptions{Page: 2, Limit: 1, IsPaginate: true},
		Sorting:     domain.SortOld,
	})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, second.ID, posts[0].ID)

	posts, total, err = repo.List(ctx, domain.PostListOptions{ListOptions: domain.ListOptions{Search: "SEC"}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, posts, 1)
	assert.Equal(t, second.ID, posts[0].ID)
}

func TestPostRepository_OffsetOverflow(t *testing.T) {
	ctx := context.Background()
	repo := NewPostRepository()

	_, err := repo.Create(ctx, &domain.Post{Body: "only", UserID: 1})
	require.NoError(t, err)

	posts, total, err := repo.List(ctx, domain.PostListOptions{
		ListOptions: domain.ListOptions{Page: math.MaxInt / 2, Limit: 10, IsPaginate: true},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Empty(t, posts)
}

func TestPostRepository_Comments(t *testing.T) {
	ctx := context.Background()
	repo := NewPostRepository()

	_, err := repo.CreateComment(ctx, &domain.Comment{PostID: 1, Body: "x"})
	assert.ErrorIs(t, err, domain.ErrPostNotFound)

	p, err := repo.Create(ctx, &domain.Post{Body: "p"})
	require.NoError(t, err)
	c, err := repo.CreateComment(ctx, &domain.Comment{PostID: p.ID, Body: "nice", UserID: 3})
	require.NoError(t, err)

	comments, err := repo.ListComments(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []*domain.Comment{c}, comments)

	require.NoError(t, repo.SetImageURL(ctx, p.ID, "https://img.test/1.png"))
	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ImageURL)
	assert.Equal(t, "https://img.test/1.png", *got.ImageURL)
}

func TestTaskQueue_PendingAck(t *testing.T) {
	ctx := context.Background()
	q := NewTaskQueue()

	for range 3 {
		require.NoError(t, q.Enqueue(ctx, domain.Task{Type: domain.TaskSendEmail}))
	}

	pending, err := q.Pending(ctx, 2)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "1", pending[0].ID)

	require.NoError(t, q.Ack(ctx, []string{pending[0].ID, pending[1].ID}))
	assert.Equal(t, 1, q.Len())
}
