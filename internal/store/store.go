// Package store holds the persistence abstractions for the two record
// collections. The interfaces cover the operations the core needs from the
// document store: lookups by id and unique fields, single-record inserts
// and patches, filtered/sorted/paginated reads, atomic counter increments,
// and bulk deletes.
package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/omoide-app/backend/internal/models"
)

// SortField values double as the document field names sorted on.
type SortField string

const (
	SortByCreatedAt SortField = "createdAt"
	SortByLikes     SortField = "likes"
	SortByReads     SortField = "reads"
)

// ListOptions shapes a post query. All sorts are descending; documents
// with equal sort values have unspecified relative order. Limit 0 means
// unbounded.
type ListOptions struct {
	Category string
	OwnerID  primitive.ObjectID // filter when non-zero
	SortBy   SortField
	Skip     int64
	Limit    int64
}

// UserPatch is the set of profile fields a user update may change.
// Password is the already-hashed value.
type UserPatch struct {
	Name     string
	Email    string
	Password string
}

// PostPatch is the set of fields a post update may change.
type PostPatch struct {
	Title    string
	Content  string
	Category string
}

// UserStore owns user records. Inserts against taken unique fields
// (email, link) fail with apperr.ErrDuplicateKey; missing records are
// apperr.ErrNotFound.
type UserStore interface {
	Insert(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByLink(ctx context.Context, link string) (*models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, patch UserPatch) (*models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// PostStore owns post records. Update and Delete are scoped by
// (link, owner) in a single selector so ownership cannot change between
// check and write. Counter increments are atomic at the store layer.
type PostStore interface {
	Insert(ctx context.Context, p *models.Post) error
	FindByLink(ctx context.Context, link string) (*models.Post, error)
	UpdateByLinkAndOwner(ctx context.Context, link string, owner primitive.ObjectID, patch PostPatch) (*models.Post, error)
	DeleteByLinkAndOwner(ctx context.Context, link string, owner primitive.ObjectID) (*models.Post, error)
	DeleteByOwner(ctx context.Context, owner primitive.ObjectID) (int64, error)
	CountByOwner(ctx context.Context, owner primitive.ObjectID) (int64, error)
	IncrementLikes(ctx context.Context, link string) (*models.Post, error)
	IncrementReads(ctx context.Context, link string) (*models.Post, error)
	List(ctx context.Context, opts ListOptions) ([]models.Post, error)
	Search(ctx context.Context, text string) ([]models.Post, error)
}
