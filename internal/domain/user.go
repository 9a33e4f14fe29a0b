package domain

import "time"

// User represents a bot user
type User struct {
	UserID     int64
	Authorized bool
	CreatedAt  time.Time
	LastSeenAt time.Time
}

// UserState represents user's current interaction state
type UserState string

const (
	StateIdle               UserState = "idle"
	StateWaitingWord        UserState = "waiting_word"
	StateWaitingTranslation UserState = "waiting_translation"
	StateWaitingPassword    UserState = "waiting_password"
	StateQuizSetup          UserState = "quiz_setup"
	StateQuizAnswer         UserState = "quiz_answer"
)

// LearnedFilter narrows the word list by learned status
type LearnedFilter string

const (
	FilterAll       LearnedFilter = "all"
	FilterLearned   LearnedFilter = "learned"
	FilterUnlearned LearnedFilter = "unlearned"
)

// StateData holds temporary data for user's current state
type StateData struct {
	State       UserState
	CurrentWord string
	MessageID   int // For editing messages

	// Word list view
	PageKey string // "" means all pages
	Filter  LearnedFilter

	// Quiz setup
	QuizFormat    Format
	QuizDirection Direction
	QuizPages     []string // empty means all pages
}
