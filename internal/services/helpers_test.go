package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/omoide-app/backend/internal/auth"
	"github.com/omoide-app/backend/internal/models"
	"github.com/omoide-app/backend/internal/store"
	"github.com/omoide-app/backend/pkg/utils"
)

type fixture struct {
	users  *store.InMemUserStore
	posts  *store.InMemPostStore
	tokens *auth.TokenManager

	userSvc  *UserService
	postSvc  *PostService
	querySvc *QueryService
}

func newFixture() *fixture {
	users := store.NewInMemUserStore()
	posts := store.NewInMemPostStore()
	tokens := auth.NewTokenManager("test-secret")
	quota := NewQuotaPolicy(posts)
	return &fixture{
		users:    users,
		posts:    posts,
		tokens:   tokens,
		userSvc:  NewUserService(users, posts, tokens, quota),
		postSvc:  NewPostService(posts, quota),
		querySvc: NewQueryService(users, posts),
	}
}

// seedUser inserts a user directly, bypassing registration, so tests can
// provision demo accounts the way operations does.
func (f *fixture) seedUser(t *testing.T, name string, isDemo bool) (*models.User, auth.Identity) {
	t.Helper()
	hash, err := utils.HashPassword("seeded-password")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	link, err := utils.NewLink(7)
	if err != nil {
		t.Fatalf("new link: %v", err)
	}
	now := time.Now().UTC()
	u := &models.User{
		ID:        primitive.NewObjectID(),
		CreatedAt: now,
		UpdatedAt: now,
		Name:      name,
		Email:     fmt.Sprintf("%s@example.com", name),
		Password:  hash,
		Link:      link,
		IsDemo:    isDemo,
	}
	if err := f.users.Insert(context.Background(), u); err != nil {
		t.Fatalf("insert user: %v", err)
	}
	return u, auth.Identity{UserID: u.ID.Hex(), IsDemo: u.IsDemo}
}

// seedPost inserts a post directly with a controlled creation time.
func (f *fixture) seedPost(t *testing.T, owner primitive.ObjectID, title, content, category string, createdAt time.Time, likes, reads int64) *models.Post {
	t.Helper()
	link, err := utils.NewLink(10)
	if err != nil {
		t.Fatalf("new link: %v", err)
	}
	p := &models.Post{
		ID:        primitive.NewObjectID(),
		UserID:    owner,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
		Title:     title,
		Content:   content,
		Category:  category,
		Link:      link,
		Likes:     likes,
		Reads:     reads,
	}
	if err := f.posts.Insert(context.Background(), p); err != nil {
		t.Fatalf("insert post: %v", err)
	}
	return p
}
