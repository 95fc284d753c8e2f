package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/omoide-app/backend/internal/apperr"
	"github.com/omoide-app/backend/internal/models"
)

// InMemUserStore is a map-backed UserStore with the same semantics as the
// mongo implementation, used by tests and local development.
type InMemUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]models.User
}

func NewInMemUserStore() *InMemUserStore {
	return &InMemUserStore{users: make(map[primitive.ObjectID]models.User)}
}

func (s *InMemUserStore) Insert(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email || existing.Link == u.Link {
			return apperr.ErrDuplicateKey
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	s.users[u.ID] = *u
	return nil
}

func (s *InMemUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &u, nil
}

func (s *InMemUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return s.findBy(func(u models.User) bool { return u.Email == email })
}

func (s *InMemUserStore) FindByLink(_ context.Context, link string) (*models.User, error) {
	return s.findBy(func(u models.User) bool { return u.Link == link })
}

func (s *InMemUserStore) findBy(match func(models.User) bool) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if match(u) {
			found := u
			return &found, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (s *InMemUserStore) Update(_ context.Context, id primitive.ObjectID, patch UserPatch) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	for otherID, other := range s.users {
		if otherID != id && other.Email == patch.Email {
			return nil, apperr.ErrDuplicateKey
		}
	}
	u.Name = patch.Name
	u.Email = patch.Email
	u.Password = patch.Password
	u.UpdatedAt = time.Now().UTC()
	s.users[id] = u
	return &u, nil
}

func (s *InMemUserStore) Delete(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	delete(s.users, id)
	return &u, nil
}

// InMemPostStore is a slice-backed PostStore mirroring the mongo
// implementation, including atomic-under-lock counter increments.
type InMemPostStore struct {
	mu    sync.Mutex
	posts []models.Post
}

func NewInMemPostStore() *InMemPostStore {
	return &InMemPostStore{}
}

func (s *InMemPostStore) Insert(_ context.Context, p *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.posts {
		if existing.Link == p.Link {
			return apperr.ErrDuplicateKey
		}
	}
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	s.posts = append(s.posts, *p)
	return nil
}

func (s *InMemPostStore) FindByLink(_ context.Context, link string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.posts {
		if p.Link == link {
			found := p
			return &found, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (s *InMemPostStore) UpdateByLinkAndOwner(_ context.Context, link string, owner primitive.ObjectID, patch PostPatch) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].Link == link && s.posts[i].UserID == owner {
			s.posts[i].Title = patch.Title
			s.posts[i].Content = patch.Content
			s.posts[i].Category = patch.Category
			s.posts[i].UpdatedAt = time.Now().UTC()
			found := s.posts[i]
			return &found, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (s *InMemPostStore) DeleteByLinkAndOwner(_ context.Context, link string, owner primitive.ObjectID) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].Link == link && s.posts[i].UserID == owner {
			found := s.posts[i]
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			return &found, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (s *InMemPostStore) DeleteByOwner(_ context.Context, owner primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.posts[:0]
	var deleted int64
	for _, p := range s.posts {
		if p.UserID == owner {
			deleted++
			continue
		}
		kept = append(kept, p)
	}
	s.posts = kept
	return deleted, nil
}

func (s *InMemPostStore) CountByOwner(_ context.Context, owner primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, p := range s.posts {
		if p.UserID == owner {
			n++
		}
	}
	return n, nil
}

func (s *InMemPostStore) IncrementLikes(_ context.Context, link string) (*models.Post, error) {
	return s.increment(link, func(p *models.Post) { p.Likes++ })
}

func (s *InMemPostStore) IncrementReads(_ context.Context, link string) (*models.Post, error) {
	return s.increment(link, func(p *models.Post) { p.Reads++ })
}

func (s *InMemPostStore) increment(link string, bump func(*models.Post)) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].Link == link {
			bump(&s.posts[i])
			found := s.posts[i]
			return &found, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (s *InMemPostStore) List(_ context.Context, opts ListOptions) ([]models.Post, error) {
	s.mu.Lock()
	matched := []models.Post{}
	for _, p := range s.posts {
		if opts.Category != "" && p.Category != opts.Category {
			continue
		}
		if !opts.OwnerID.IsZero() && p.UserID != opts.OwnerID {
			continue
		}
		matched = append(matched, p)
	}
	s.mu.Unlock()

	if opts.SortBy != "" {
		sort.SliceStable(matched, func(i, j int) bool {
			switch opts.SortBy {
			case SortByLikes:
				return matched[i].Likes > matched[j].Likes
			case SortByReads:
				return matched[i].Reads > matched[j].Reads
			default:
				return matched[i].CreatedAt.After(matched[j].CreatedAt)
			}
		})
	}

	if opts.Skip > 0 {
		if opts.Skip >= int64(len(matched)) {
			return []models.Post{}, nil
		}
		matched = matched[opts.Skip:]
	}
	if opts.Limit > 0 && opts.Limit < int64(len(matched)) {
		matched = matched[:opts.Limit]
	}
	return matched, nil
}

func (s *InMemPostStore) Search(_ context.Context, text string) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	needle := strings.ToLower(text)
	matched := []models.Post{}
	for _, p := range s.posts {
		if strings.Contains(strings.ToLower(p.Title), needle) ||
			strings.Contains(strings.ToLower(p.Content), needle) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}
