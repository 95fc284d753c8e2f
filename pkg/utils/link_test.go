package utils

import (
	"regexp"
	"testing"
)

var urlSafe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func TestNewLinkLengthAndAlphabet(t *testing.T) {
	t.Parallel()

	for _, n := range []int{7, 10} {
		link, err := NewLink(n)
		if err != nil {
			t.Fatalf("NewLink(%d) error: %v", n, err)
		}
		if len(link) != n {
			t.Fatalf("NewLink(%d) length = %d", n, len(link))
		}
		if !urlSafe.MatchString(link) {
			t.Fatalf("NewLink(%d) not URL-safe: %q", n, link)
		}
	}
}

func TestNewLinkUniqueness(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		link, err := NewLink(10)
		if err != nil {
			t.Fatalf("NewLink error: %v", err)
		}
		if _, dup := seen[link]; dup {
			t.Fatalf("duplicate link after %d draws: %q", i, link)
		}
		seen[link] = struct{}{}
	}
}
