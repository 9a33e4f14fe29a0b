package repository

import "wordquiz/internal/domain"

// UserRepository defines user data operations
type UserRepository interface {
	// Touch creates the user if needed, marks them as seen and returns them
	Touch(userID int64) (*domain.User, error)
	AuthorizeUser(userID int64) error
}

// KVStore is an opaque per-user key/value store.
// Get returns nil data without error when the key is absent.
type KVStore interface {
	Get(userID int64, key string) ([]byte, error)
	Put(userID int64, key string, value []byte) error
	Delete(userID int64, key string) error
}
