package services

import (
	"strings"

	"github.com/omoide-app/backend/internal/apperr"
)

// Field length constraints for posts, matching the stored schema.
const (
	titleMin    = 5
	titleMax    = 255
	contentMin  = 5
	contentMax  = 2048
	categoryMin = 3
	categoryMax = 255
)

// validatePost reports the first violated field, in field order.
func validatePost(title, content, category string) error {
	if len(title) < titleMin || len(title) > titleMax {
		return apperr.Validation("title", "must be between 5 and 255 characters")
	}
	if len(content) < contentMin || len(content) > contentMax {
		return apperr.Validation("content", "must be between 5 and 2048 characters")
	}
	if len(category) < categoryMin || len(category) > categoryMax {
		return apperr.Validation("category", "must be between 3 and 255 characters")
	}
	return nil
}

func validateUser(name, email, password string) error {
	if n := strings.TrimSpace(name); len(n) < 2 || len(n) > 255 {
		return apperr.Validation("name", "must be between 2 and 255 characters")
	}
	if !strings.Contains(email, "@") || len(email) > 255 {
		return apperr.Validation("email", "must be a valid email address")
	}
	if len(password) < 8 || len(password) > 1024 {
		return apperr.Validation("password", "must be between 8 and 1024 characters")
	}
	return nil
}
