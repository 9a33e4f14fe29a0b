package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepo_Touch(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	seen := created.Add(48 * time.Hour)

	tests := []struct {
		name          string
		userID        int64
		mockRows      *sqlmock.Rows
		mockError     error
		expectedAuth  bool
		expectedError bool
	}{
		{
			name:   "authorized user",
			userID: 123,
			mockRows: sqlmock.NewRows([]string{"user_id", "authorized", "created_at", "last_seen_at"}).
				AddRow(123, true, created, seen),
			expectedAuth: true,
		},
		{
			name:   "new user",
			userID: 456,
			mockRows: sqlmock.NewRows([]string{"user_id", "authorized", "created_at", "last_seen_at"}).
				AddRow(456, false, created, created),
			expectedAuth: false,
		},
		{
			name:          "database error",
			userID:        789,
			mockError:     errors.New("connection refused"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			repo := NewUserRepo(db)

			expect := mock.ExpectQuery("INSERT INTO users .* RETURNING user_id, authorized, created_at, last_seen_at").
				WithArgs(tt.userID)
			if tt.mockError != nil {
				expect.WillReturnError(tt.mockError)
			} else {
				expect.WillReturnRows(tt.mockRows)
			}

			user, err := repo.Touch(tt.userID)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.userID, user.UserID)
				assert.Equal(t, tt.expectedAuth, user.Authorized)
				assert.True(t, user.CreatedAt.Equal(created))
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepo_AuthorizeUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db)

	userID := int64(123)

	// Only userID is a parameter, TRUE is a SQL constant
	mock.ExpectExec("INSERT INTO users").
		WithArgs(userID).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repo.AuthorizeUser(userID)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
