package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/omoide-app/backend/internal/apperr"
	"github.com/omoide-app/backend/internal/models"
)

func TestInMemUserStoreUniqueFields(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewInMemUserStore()

	first := &models.User{Name: "A", Email: "a@example.com", Link: "aaaaaaa"}
	if err := s.Insert(ctx, first); err != nil {
		t.Fatalf("insert error: %v", err)
	}

	err := s.Insert(ctx, &models.User{Name: "B", Email: "a@example.com", Link: "bbbbbbb"})
	if !errors.Is(err, apperr.ErrDuplicateKey) {
		t.Fatalf("duplicate email: got %v", err)
	}
	err = s.Insert(ctx, &models.User{Name: "B", Email: "b@example.com", Link: "aaaaaaa"})
	if !errors.Is(err, apperr.ErrDuplicateKey) {
		t.Fatalf("duplicate link: got %v", err)
	}
}

func TestInMemPostStoreListSortSkipLimit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewInMemPostStore()
	owner := primitive.NewObjectID()
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		err := s.Insert(ctx, &models.Post{
			UserID:    owner,
			Title:     "title",
			Content:   "content",
			Category:  "travel",
			Link:      string(rune('a'+i)) + "linklink0",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			Likes:     int64(i),
		})
		if err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}

	got, err := s.List(ctx, ListOptions{SortBy: SortByCreatedAt, Skip: 1, Limit: 2})
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if !got[0].CreatedAt.After(got[1].CreatedAt) {
		t.Fatal("not sorted newest-first")
	}
	if got[0].CreatedAt != base.Add(3*time.Minute) {
		t.Fatalf("skip not applied, first createdAt = %v", got[0].CreatedAt)
	}

	got, err = s.List(ctx, ListOptions{SortBy: SortByLikes, Limit: 1})
	if err != nil {
		t.Fatalf("list by likes error: %v", err)
	}
	if got[0].Likes != 4 {
		t.Fatalf("top by likes = %d, want 4", got[0].Likes)
	}

	got, err = s.List(ctx, ListOptions{SortBy: SortByCreatedAt, Skip: 100})
	if err != nil {
		t.Fatalf("out-of-range skip error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("out-of-range skip returned %d posts", len(got))
	}
}

func TestInMemPostStoreIncrementIsAtomicPerCall(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewInMemPostStore()
	if err := s.Insert(ctx, &models.Post{UserID: primitive.NewObjectID(), Link: "linklink01"}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			if _, err := s.IncrementLikes(ctx, "linklink01"); err != nil {
				t.Errorf("increment: %v", err)
			}
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}

	p, err := s.FindByLink(ctx, "linklink01")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if p.Likes != 10 {
		t.Fatalf("likes = %d, want 10", p.Likes)
	}
}
