package service

import (
	"fmt"
	"testing"

	"wordquiz/internal/domain"
	"wordquiz/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func TestAuthService_CheckPassword(t *testing.T) {
	tests := []struct {
		name           string
		botPassword    string
		inputPassword  string
		expectedResult bool
	}{
		{
			name:           "correct password",
			botPassword:    "secret123",
			inputPassword:  "secret123",
			expectedResult: true,
		},
		{
			name:           "incorrect password",
			botPassword:    "secret123",
			inputPassword:  "wrong",
			expectedResult: false,
		},
		{
			name:           "empty password",
			botPassword:    "secret123",
			inputPassword:  "",
			expectedResult: false,
		},
		{
			name:           "case sensitive",
			botPassword:    "Secret123",
			inputPassword:  "secret123",
			expectedResult: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockUserRepository)
			service := NewAuthService(mockRepo, tt.botPassword)

			result := service.CheckPassword(tt.inputPassword)

			assert.Equal(t, tt.expectedResult, result)
		})
	}
}

func TestAuthService_Check(t *testing.T) {
	tests := []struct {
		name          string
		user          *domain.User
		mockError     error
		expectedAuth  bool
		expectedError bool
	}{
		{
			name:         "authorized user",
			user:         testutil.NewTestUser(123, true),
			expectedAuth: true,
		},
		{
			name:         "unauthorized user",
			user:         testutil.NewTestUser(123, false),
			expectedAuth: false,
		},
		{
			name:          "repository error",
			mockError:     fmt.Errorf("db error"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockUserRepository)
			mockRepo.On("Touch", int64(123)).Return(tt.user, tt.mockError)

			service := NewAuthService(mockRepo, "password")

			authorized, err := service.Check(123)

			if tt.expectedError {
				assert.Error(t, err)
				assert.False(t, authorized)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedAuth, authorized)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	user := testutil.NewTestUser(123, false)

	tests := []struct {
		name          string
		password      string
		repoError     error
		expectedLogin bool
		expectedError bool
	}{
		{
			name:          "correct password",
			password:      "password",
			expectedLogin: true,
		},
		{
			name:          "wrong password",
			password:      "nope",
			expectedLogin: false,
		},
		{
			name:          "repository error",
			password:      "password",
			repoError:     fmt.Errorf("db error"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockUserRepository)
			if tt.password == "password" {
				mockRepo.On("AuthorizeUser", user.UserID).Return(tt.repoError)
			}

			service := NewAuthService(mockRepo, "password")

			ok, err := service.Login(user.UserID, tt.password)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expectedLogin, ok)

			mockRepo.AssertExpectations(t)
		})
	}
}
