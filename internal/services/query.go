package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/omoide-app/backend/internal/apperr"
	"github.com/omoide-app/backend/internal/models"
	"github.com/omoide-app/backend/internal/store"
)

const (
	categoryLimit    = 10
	categoryPageSize = 9
	defaultPageSize  = 10
	topLimit         = 3
)

// QueryService answers the read patterns over posts. Every method returns
// an empty slice, not an error, when nothing matches; "newest-first"
// means descending creation time with unspecified order on ties.
type QueryService struct {
	users store.UserStore
	posts store.PostStore
}

func NewQueryService(users store.UserStore, posts store.PostStore) *QueryService {
	return &QueryService{users: users, posts: posts}
}

// ByOwnerLink resolves the user by public link, then lists their posts.
func (s *QueryService) ByOwnerLink(ctx context.Context, userLink string) ([]models.Post, error) {
	user, err := s.users.FindByLink(ctx, userLink)
	if err != nil {
		return nil, err
	}
	return s.posts.List(ctx, store.ListOptions{OwnerID: user.ID})
}

// ByOwnerID lists a user's posts after confirming the user exists.
func (s *QueryService) ByOwnerID(ctx context.Context, idHex string) ([]models.Post, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, apperr.ErrNotFound
	}
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.posts.List(ctx, store.ListOptions{OwnerID: id})
}

// ByCategory returns the 10 newest posts in a category.
func (s *QueryService) ByCategory(ctx context.Context, category string) ([]models.Post, error) {
	return s.posts.List(ctx, store.ListOptions{
		Category: category,
		SortBy:   store.SortByCreatedAt,
		Limit:    categoryLimit,
	})
}

// ByCategoryPaginated pages through a category newest-first, 9 per page.
// Pages are 1-indexed; out-of-range pages yield an empty slice.
func (s *QueryService) ByCategoryPaginated(ctx context.Context, category string, page int) ([]models.Post, error) {
	return s.posts.List(ctx, store.ListOptions{
		Category: category,
		SortBy:   store.SortByCreatedAt,
		Skip:     pageOffset(page, categoryPageSize),
		Limit:    categoryPageSize,
	})
}

// All returns every post, newest-first.
func (s *QueryService) All(ctx context.Context) ([]models.Post, error) {
	return s.posts.List(ctx, store.ListOptions{SortBy: store.SortByCreatedAt})
}

// Paginated pages through all posts newest-first, 10 per page.
func (s *QueryService) Paginated(ctx context.Context, page int) ([]models.Post, error) {
	return s.posts.List(ctx, store.ListOptions{
		SortBy: store.SortByCreatedAt,
		Skip:   pageOffset(page, defaultPageSize),
		Limit:  defaultPageSize,
	})
}

// TopByRecency returns the 3 newest posts.
func (s *QueryService) TopByRecency(ctx context.Context) ([]models.Post, error) {
	return s.top(ctx, store.SortByCreatedAt)
}

// TopByLikes returns the 3 most-liked posts.
func (s *QueryService) TopByLikes(ctx context.Context) ([]models.Post, error) {
	return s.top(ctx, store.SortByLikes)
}

// TopByReads returns the 3 most-read posts.
func (s *QueryService) TopByReads(ctx context.Context) ([]models.Post, error) {
	return s.top(ctx, store.SortByReads)
}

func (s *QueryService) top(ctx context.Context, field store.SortField) ([]models.Post, error) {
	return s.posts.List(ctx, store.ListOptions{SortBy: field, Limit: topLimit})
}

// Search matches the text case-insensitively against title or content.
// The result set is unbounded and carries no ordering guarantee.
func (s *QueryService) Search(ctx context.Context, text string) ([]models.Post, error) {
	return s.posts.Search(ctx, text)
}

func pageOffset(page, pageSize int) int64 {
	if page < 1 {
		page = 1
	}
	return int64(pageSize) * int64(page-1)
}
