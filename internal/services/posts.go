package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/omoide-app/backend/internal/apperr"
	"github.com/omoide-app/backend/internal/auth"
	"github.com/omoide-app/backend/internal/models"
	"github.com/omoide-app/backend/internal/store"
	"github.com/omoide-app/backend/pkg/utils"
)

const (
	postLinkLength     = 10
	linkInsertAttempts = 3
)

// PostService orchestrates the post lifecycle: creation under the quota
// policy, owner-scoped update and delete, and counter increments.
type PostService struct {
	posts store.PostStore
	quota *QuotaPolicy
}

func NewPostService(posts store.PostStore, quota *QuotaPolicy) *PostService {
	return &PostService{posts: posts, quota: quota}
}

// Create validates fields, consults the quota policy, and inserts the
// post with a fresh link. A duplicate-key rejection from the link index
// retries with a new link up to linkInsertAttempts times.
func (s *PostService) Create(ctx context.Context, ident auth.Identity, title, content, category string) (*models.Post, error) {
	owner, err := ownerID(ident)
	if err != nil {
		return nil, err
	}
	if err := validatePost(title, content, category); err != nil {
		return nil, err
	}
	if err := s.quota.CanCreatePost(ctx, ident); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < linkInsertAttempts; attempt++ {
		link, err := utils.NewLink(postLinkLength)
		if err != nil {
			return nil, err
		}
		now := time.Now().UTC()
		post := &models.Post{
			ID:        primitive.NewObjectID(),
			UserID:    owner,
			CreatedAt: now,
			UpdatedAt: now,
			Title:     title,
			Content:   content,
			Category:  category,
			Link:      link,
		}
		err = s.posts.Insert(ctx, post)
		if errors.Is(err, apperr.ErrDuplicateKey) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return post, nil
	}
	return nil, fmt.Errorf("post link generation: %d collisions in a row", linkInsertAttempts)
}

// Update patches title/content/category through a single (link, owner)
// selector so a post owned by someone else is indistinguishable from a
// missing one.
func (s *PostService) Update(ctx context.Context, ident auth.Identity, link, title, content, category string) (*models.Post, error) {
	owner, err := ownerID(ident)
	if err != nil {
		return nil, err
	}
	return s.posts.UpdateByLinkAndOwner(ctx, link, owner, store.PostPatch{
		Title:    title,
		Content:  content,
		Category: category,
	})
}

// Delete removes the caller's post by link, scoped by owner like Update.
func (s *PostService) Delete(ctx context.Context, ident auth.Identity, link string) (*models.Post, error) {
	owner, err := ownerID(ident)
	if err != nil {
		return nil, err
	}
	return s.posts.DeleteByLinkAndOwner(ctx, link, owner)
}

// IncrementLikes bumps the like counter. Any authenticated identity may
// like any post, repeatedly.
func (s *PostService) IncrementLikes(ctx context.Context, link string) (*models.Post, error) {
	return s.posts.IncrementLikes(ctx, link)
}

// RecordReadAndFetch returns the post by link with its read counter
// already incremented. Open to unauthenticated callers.
func (s *PostService) RecordReadAndFetch(ctx context.Context, link string) (*models.Post, error) {
	return s.posts.IncrementReads(ctx, link)
}

// ownerID parses the verified token subject. A subject that is not a
// store id means the assertion is unusable here.
func ownerID(ident auth.Identity) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(ident.UserID)
	if err != nil {
		return primitive.NilObjectID, apperr.ErrInvalidToken
	}
	return id, nil
}
