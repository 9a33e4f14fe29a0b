package service

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"wordquiz/internal/domain"
	"wordquiz/internal/storage"
	"wordquiz/internal/vocab"

	"go.uber.org/zap"
)

var (
	// ErrEntryNotFound is returned for an unknown entry id
	ErrEntryNotFound = errors.New("entry not found")
	// ErrEmptyWord is returned when adding a pair with a blank side
	ErrEmptyWord = errors.New("word and translation cannot be empty")
)

// VocabService owns each user's word collection. Collections are loaded on
// first use and written back through the debouncer after every change.
type VocabService struct {
	loader *storage.Loader
	saver  *storage.Debouncer
	logger *zap.Logger

	mu          sync.Mutex
	collections map[int64][]domain.VocabEntry
}

// NewVocabService creates a new vocabulary service
func NewVocabService(loader *storage.Loader, saver *storage.Debouncer, logger *zap.Logger) *VocabService {
	return &VocabService{
		loader:      loader,
		saver:       saver,
		logger:      logger,
		collections: make(map[int64][]domain.VocabEntry),
	}
}

// Entries returns a copy of the user's collection
func (s *VocabService) Entries(userID int64) []domain.VocabEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.collection(userID))
}

// View returns the entries visible for a page key and learned filter
func (s *VocabService) View(userID int64, pageKey string, filter domain.LearnedFilter) []domain.VocabEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return vocab.View(s.collection(userID), pageKey, filter)
}

// Pages returns the user's distinct pages
func (s *VocabService) Pages(userID int64) []domain.Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return vocab.Pages(s.collection(userID))
}

// ToggleLearned flips the learned flag of an entry
func (s *VocabService) ToggleLearned(userID, id int64) (domain.VocabEntry, error) {
	return s.update(userID, id, func(e *domain.VocabEntry) {
		e.Learned = !e.Learned
	})
}

// MoveToPage assigns an entry to another page. An empty key removes the page.
func (s *VocabService) MoveToPage(userID, id int64, pageKey string) (domain.VocabEntry, error) {
	page := domain.PageFromKey(pageKey)
	return s.update(userID, id, func(e *domain.VocabEntry) {
		e.Page = page
	})
}

// Add appends a new pair on the given page
func (s *VocabService) Add(userID int64, word, translation, pageKey string) (domain.VocabEntry, error) {
	word = strings.TrimSpace(word)
	translation = strings.TrimSpace(translation)
	if word == "" || translation == "" {
		return domain.VocabEntry{}, ErrEmptyWord
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.collection(userID)
	entry := domain.VocabEntry{
		ID:          vocab.NextID(entries),
		Word:        word,
		Translation: translation,
		Page:        domain.PageFromKey(pageKey),
	}
	s.commit(userID, append(entries, entry))

	s.logger.Info("Word added",
		zap.Int64("user_id", userID),
		zap.Int64("entry_id", entry.ID),
	)
	return entry, nil
}

// Delete removes an entry
func (s *VocabService) Delete(userID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.collection(userID)
	for i := range entries {
		if entries[i].ID != id {
			continue
		}
		next := make([]domain.VocabEntry, 0, len(entries)-1)
		next = append(next, entries[:i]...)
		next = append(next, entries[i+1:]...)
		s.commit(userID, next)

		s.logger.Info("Word deleted",
			zap.Int64("user_id", userID),
			zap.Int64("entry_id", id),
		)
		return nil
	}
	return ErrEntryNotFound
}

// Reset throws away the user's collection and starts again from the seed
func (s *VocabService) Reset(userID int64) ([]domain.VocabEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.saver.Cancel(userID)
	delete(s.collections, userID)
	if err := s.loader.Reset(userID); err != nil {
		return nil, fmt.Errorf("failed to reset words: %w", err)
	}

	s.logger.Info("Words reset", zap.Int64("user_id", userID))
	return clone(s.collection(userID)), nil
}

// Flush writes all pending changes immediately
func (s *VocabService) Flush() {
	s.saver.Flush()
}

func (s *VocabService) update(userID, id int64, fn func(*domain.VocabEntry)) (domain.VocabEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := clone(s.collection(userID))
	for i := range entries {
		if entries[i].ID == id {
			fn(&entries[i])
			s.commit(userID, entries)
			return entries[i], nil
		}
	}
	return domain.VocabEntry{}, ErrEntryNotFound
}

// collection must be called with s.mu held
func (s *VocabService) collection(userID int64) []domain.VocabEntry {
	entries, ok := s.collections[userID]
	if !ok {
		entries = s.loader.Load(userID)
		s.collections[userID] = entries
	}
	return entries
}

// commit must be called with s.mu held
func (s *VocabService) commit(userID int64, entries []domain.VocabEntry) {
	s.collections[userID] = entries
	snapshot := clone(entries)
	s.saver.Schedule(userID, func() {
		if err := s.loader.Save(userID, snapshot); err != nil {
			s.logger.Error("Failed to save words",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
		}
	})
}

func clone(entries []domain.VocabEntry) []domain.VocabEntry {
	out := make([]domain.VocabEntry, len(entries))
	copy(out, entries)
	return out
}
