package postgres

import (
	"database/sql"
)

// KVRepo implements repository.KVStore
type KVRepo struct {
	db *sql.DB
}

// NewKVRepo creates a new key/value repository
func NewKVRepo(db *sql.DB) *KVRepo {
	return &KVRepo{db: db}
}

// Get returns the stored value, or nil if the key does not exist
func (r *KVRepo) Get(userID int64, key string) ([]byte, error) {
	var value string
	query := `SELECT value FROM kv_store WHERE user_id = $1 AND key = $2`
	err := r.db.QueryRow(query, userID, key).Scan(&value)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return []byte(value), nil
}

// Put creates or replaces the value under key
func (r *KVRepo) Put(userID int64, key string, value []byte) error {
	query := `
		INSERT INTO kv_store (user_id, key, value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`
	_, err := r.db.Exec(query, userID, key, string(value))
	return err
}

// Delete removes the key
func (r *KVRepo) Delete(userID int64, key string) error {
	query := `DELETE FROM kv_store WHERE user_id = $1 AND key = $2`
	_, err := r.db.Exec(query, userID, key)
	return err
}
