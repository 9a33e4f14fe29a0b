package postgres

import (
	"database/sql"

	"wordquiz/internal/domain"
)

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Touch registers the user on first contact, records the visit and returns the stored row
func (r *UserRepo) Touch(userID int64) (*domain.User, error) {
	query := `
		INSERT INTO users (user_id, authorized)
		VALUES ($1, FALSE)
		ON CONFLICT (user_id)
		DO UPDATE SET last_seen_at = NOW()
		RETURNING user_id, authorized, created_at, last_seen_at
	`
	user := &domain.User{}
	err := r.db.QueryRow(query, userID).Scan(
		&user.UserID,
		&user.Authorized,
		&user.CreatedAt,
		&user.LastSeenAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// AuthorizeUser marks user as authorized
func (r *UserRepo) AuthorizeUser(userID int64) error {
	query := `
		INSERT INTO users (user_id, authorized)
		VALUES ($1, TRUE)
		ON CONFLICT (user_id)
		DO UPDATE SET authorized = TRUE, last_seen_at = NOW()
	`
	_, err := r.db.Exec(query, userID)
	return err
}
