package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/omoide-app/backend/internal/apperr"
	"github.com/omoide-app/backend/internal/auth"
	"github.com/omoide-app/backend/internal/store"
)

// tierCaps is the capability table for the closed set of account tiers.
type tierCaps struct {
	canMutateSelf bool
	maxPosts      int // <0 means no cap
}

var (
	fullTier = tierCaps{canMutateSelf: true, maxPosts: -1}
	demoTier = tierCaps{canMutateSelf: false, maxPosts: 3}
)

func capsFor(ident auth.Identity) tierCaps {
	if ident.IsDemo {
		return demoTier
	}
	return fullTier
}

// QuotaPolicy decides whether an identity may perform mutating content
// operations. Checks run against current store state on every request;
// the count-then-create window under concurrent creates is tolerated.
type QuotaPolicy struct {
	posts store.PostStore
}

func NewQuotaPolicy(posts store.PostStore) *QuotaPolicy {
	return &QuotaPolicy{posts: posts}
}

// CanCreatePost denies capped tiers that already own maxPosts posts.
func (q *QuotaPolicy) CanCreatePost(ctx context.Context, ident auth.Identity) error {
	caps := capsFor(ident)
	if caps.maxPosts < 0 {
		return nil
	}
	owner, err := primitive.ObjectIDFromHex(ident.UserID)
	if err != nil {
		return apperr.ErrInvalidToken
	}
	count, err := q.posts.CountByOwner(ctx, owner)
	if err != nil {
		return err
	}
	if count >= int64(caps.maxPosts) {
		return apperr.ErrQuotaExceeded
	}
	return nil
}

// CanMutateAccount denies profile updates and deletion for demo accounts.
func (q *QuotaPolicy) CanMutateAccount(ident auth.Identity) error {
	if !capsFor(ident).canMutateSelf {
		return apperr.ErrImmutableDemo
	}
	return nil
}
