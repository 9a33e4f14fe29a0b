package testutil

import (
	"sync"

	"wordquiz/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Touch(userID int64) (*domain.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) AuthorizeUser(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

// MockKVStore is a mock for KVStore
type MockKVStore struct {
	mock.Mock
}

func (m *MockKVStore) Get(userID int64, key string) ([]byte, error) {
	args := m.Called(userID, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockKVStore) Put(userID int64, key string, value []byte) error {
	args := m.Called(userID, key, value)
	return args.Error(0)
}

func (m *MockKVStore) Delete(userID int64, key string) error {
	args := m.Called(userID, key)
	return args.Error(0)
}

// MemoryStore is an in-memory KVStore
type MemoryStore struct {
	mu     sync.Mutex
	values map[int64]map[string][]byte
	puts   int
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[int64]map[string][]byte)}
}

func (s *MemoryStore) Get(userID int64, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[userID][key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

func (s *MemoryStore) Put(userID int64, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values[userID] == nil {
		s.values[userID] = make(map[string][]byte)
	}
	s.values[userID][key] = append([]byte(nil), value...)
	s.puts++
	return nil
}

func (s *MemoryStore) Delete(userID int64, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values[userID], key)
	return nil
}

// Puts returns how many writes the store has received
func (s *MemoryStore) Puts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.puts
}
