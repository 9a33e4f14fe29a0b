// Package storage loads a user's word collection from the key/value store,
// migrating older stored shapes, and writes it back.
package storage

import (
	"encoding/json"
	"fmt"

	"wordquiz/internal/domain"
	"wordquiz/internal/repository"
	"wordquiz/internal/vocab"

	"go.uber.org/zap"
)

const (
	// CanonicalKey holds the current flat word list
	CanonicalKey = "kidsWordsPages"
	// LessonsKey holds a list of lessons, each with an "entries" list
	LessonsKey = "kidsWordsLessons"
	// LegacyKey holds the oldest flat word list
	LegacyKey = "kidsWords"
)

// Decoder turns stored bytes into a raw word list.
// It returns false when the data does not hold a usable list.
type Decoder func(data []byte) ([]any, bool)

// Source is one place a word list may be found
type Source struct {
	Name   string
	Key    string
	Decode Decoder
}

// DefaultSources lists the stored shapes in the order they are tried
func DefaultSources() []Source {
	return []Source{
		{Name: "canonical", Key: CanonicalKey, Decode: DecodeList},
		{Name: "lessons", Key: LessonsKey, Decode: DecodeLessons},
		{Name: "legacy", Key: LegacyKey, Decode: DecodeList},
	}
}

// DecodeList accepts a non-empty JSON array
func DecodeList(data []byte) ([]any, bool) {
	var list []any
	if err := json.Unmarshal(data, &list); err != nil || len(list) == 0 {
		return nil, false
	}
	return list, true
}

// DecodeLessons flattens the entries of every lesson into one list
func DecodeLessons(data []byte) ([]any, bool) {
	lessons, ok := DecodeList(data)
	if !ok {
		return nil, false
	}

	var flat []any
	for _, l := range lessons {
		lesson, ok := l.(map[string]any)
		if !ok {
			continue
		}
		if entries, ok := lesson["entries"].([]any); ok {
			flat = append(flat, entries...)
		}
	}
	if len(flat) == 0 {
		return nil, false
	}
	return flat, true
}

// Loader resolves a user's collection through the source chain
type Loader struct {
	store   repository.KVStore
	sources []Source
	seed    []byte
	logger  *zap.Logger
}

// NewLoader creates a loader over the default sources.
// seed is the JSON word list used when nothing is stored.
func NewLoader(store repository.KVStore, seed []byte, logger *zap.Logger) *Loader {
	return &Loader{
		store:   store,
		sources: DefaultSources(),
		seed:    seed,
		logger:  logger,
	}
}

// Load returns the first usable stored collection, or the seed.
// Whatever was found is written back under the canonical key.
func (l *Loader) Load(userID int64) []domain.VocabEntry {
	for _, src := range l.sources {
		data, err := l.store.Get(userID, src.Key)
		if err != nil {
			l.logger.Warn("Failed to read stored words",
				zap.Int64("user_id", userID),
				zap.String("source", src.Name),
				zap.Error(err),
			)
			continue
		}
		if len(data) == 0 {
			continue
		}

		raw, ok := src.Decode(data)
		if !ok {
			l.logger.Debug("Stored words not usable, trying next source",
				zap.Int64("user_id", userID),
				zap.String("source", src.Name),
			)
			continue
		}

		entries := vocab.Normalize(raw)
		l.logger.Info("Loaded words",
			zap.Int64("user_id", userID),
			zap.String("source", src.Name),
			zap.Int("count", len(entries)),
		)
		l.writeBack(userID, entries)
		return entries
	}

	var raw any
	if err := json.Unmarshal(l.seed, &raw); err != nil {
		l.logger.Error("Failed to decode seed words", zap.Error(err))
	}
	entries := vocab.Normalize(raw)
	l.logger.Info("Seeded words",
		zap.Int64("user_id", userID),
		zap.Int("count", len(entries)),
	)
	l.writeBack(userID, entries)
	return entries
}

// Save writes the collection under the canonical key
func (l *Loader) Save(userID int64, entries []domain.VocabEntry) error {
	if entries == nil {
		entries = []domain.VocabEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode words: %w", err)
	}
	if err := l.store.Put(userID, CanonicalKey, data); err != nil {
		return fmt.Errorf("failed to save words: %w", err)
	}
	return nil
}

// Reset removes every stored shape of the user's collection
func (l *Loader) Reset(userID int64) error {
	for _, src := range l.sources {
		if err := l.store.Delete(userID, src.Key); err != nil {
			return fmt.Errorf("failed to delete %s words: %w", src.Name, err)
		}
	}
	return nil
}

func (l *Loader) writeBack(userID int64, entries []domain.VocabEntry) {
	if err := l.Save(userID, entries); err != nil {
		l.logger.Error("Failed to write back words",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}
}
