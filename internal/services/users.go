package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/omoide-app/backend/internal/apperr"
	"github.com/omoide-app/backend/internal/auth"
	"github.com/omoide-app/backend/internal/models"
	"github.com/omoide-app/backend/internal/store"
	"github.com/omoide-app/backend/pkg/utils"
)

const userLinkLength = 7

// UserService owns the user lifecycle. Registration and profile updates
// issue a fresh assertion; account deletion cascades to the user's posts.
type UserService struct {
	users  store.UserStore
	posts  store.PostStore
	tokens *auth.TokenManager
	quota  *QuotaPolicy
}

func NewUserService(users store.UserStore, posts store.PostStore, tokens *auth.TokenManager, quota *QuotaPolicy) *UserService {
	return &UserService{users: users, posts: posts, tokens: tokens, quota: quota}
}

// Register creates a full-tier account and returns it with an issued
// assertion. Demo accounts are provisioned out of band, never here.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	if err := validateUser(name, email, password); err != nil {
		return nil, "", err
	}
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, "", apperr.ErrEmailTaken
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, "", err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	for attempt := 0; attempt < linkInsertAttempts; attempt++ {
		link, err := utils.NewLink(userLinkLength)
		if err != nil {
			return nil, "", err
		}
		now := time.Now().UTC()
		user := &models.User{
			ID:        primitive.NewObjectID(),
			CreatedAt: now,
			UpdatedAt: now,
			Name:      name,
			Email:     email,
			Password:  hash,
			Link:      link,
		}
		err = s.users.Insert(ctx, user)
		if errors.Is(err, apperr.ErrDuplicateKey) {
			// Either a link collision (retry) or an email registered
			// between the pre-check and the insert.
			continue
		}
		if err != nil {
			return nil, "", err
		}
		token, err := s.tokens.Issue(user.ID.Hex(), user.IsDemo)
		if err != nil {
			return nil, "", err
		}
		return user, token, nil
	}
	return nil, "", apperr.ErrEmailTaken
}

// Authenticate checks credentials and issues an assertion. Unknown email
// and wrong password are deliberately indistinguishable.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, "", apperr.ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}
	ok, err := utils.VerifyPassword(password, user.Password)
	if err != nil || !ok {
		return nil, "", apperr.ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(user.ID.Hex(), user.IsDemo)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Update changes name/email/password for the caller's own account and
// re-issues the assertion. Demo accounts are immutable; the tier is read
// from the store, not from the token, so it cannot be spoofed.
func (s *UserService) Update(ctx context.Context, ident auth.Identity, name, email, password string) (*models.User, string, error) {
	id, err := ownerID(ident)
	if err != nil {
		return nil, "", err
	}
	current, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if err := s.quota.CanMutateAccount(auth.Identity{UserID: ident.UserID, IsDemo: current.IsDemo}); err != nil {
		return nil, "", err
	}
	if err := validateUser(name, email, password); err != nil {
		return nil, "", err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, "", err
	}
	updated, err := s.users.Update(ctx, id, store.UserPatch{Name: name, Email: email, Password: hash})
	if errors.Is(err, apperr.ErrDuplicateKey) {
		return nil, "", apperr.ErrEmailTaken
	}
	if err != nil {
		return nil, "", err
	}
	token, err := s.tokens.Issue(updated.ID.Hex(), updated.IsDemo)
	if err != nil {
		return nil, "", err
	}
	return updated, token, nil
}

// Delete removes the caller's account and all posts it owns. Returns the
// deleted user and the number of cascaded posts.
func (s *UserService) Delete(ctx context.Context, ident auth.Identity) (*models.User, int64, error) {
	id, err := ownerID(ident)
	if err != nil {
		return nil, 0, err
	}
	current, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	if err := s.quota.CanMutateAccount(auth.Identity{UserID: ident.UserID, IsDemo: current.IsDemo}); err != nil {
		return nil, 0, err
	}
	deleted, err := s.users.Delete(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.posts.DeleteByOwner(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	return deleted, count, nil
}

func (s *UserService) GetByLink(ctx context.Context, link string) (*models.User, error) {
	return s.users.FindByLink(ctx, link)
}

func (s *UserService) GetByID(ctx context.Context, idHex string) (*models.User, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, apperr.ErrNotFound
	}
	return s.users.FindByID(ctx, id)
}
