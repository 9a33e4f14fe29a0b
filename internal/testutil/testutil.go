package testutil

import (
	"time"

	"wordquiz/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestUser creates a test user
func NewTestUser(userID int64, authorized bool) *domain.User {
	return &domain.User{
		UserID:     userID,
		Authorized: authorized,
		CreatedAt:  time.Now(),
	}
}

// NewTestEntry creates a test vocabulary entry on a numeric page
func NewTestEntry(id int64, word, translation string, page int) domain.VocabEntry {
	return domain.VocabEntry{
		ID:          id,
		Word:        word,
		Translation: translation,
		Page:        domain.NumberPage(page),
	}
}

// NewTestEntries creates a small collection spread over two pages
func NewTestEntries() []domain.VocabEntry {
	return []domain.VocabEntry{
		NewTestEntry(1, "the cat", "die Katze", 1),
		NewTestEntry(2, "the dog", "der Hund", 1),
		NewTestEntry(3, "to run", "laufen", 1),
		NewTestEntry(4, "the sea", "das Meer", 2),
		NewTestEntry(5, "the sky", "der Himmel", 2),
	}
}
