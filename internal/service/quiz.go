package service

import (
	"errors"
	"math"
	"sync"
	"time"

	"wordquiz/internal/domain"
	"wordquiz/internal/quiz"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrNotEnoughWords = errors.New("not enough words for a quiz")
	ErrNoSession      = errors.New("no active quiz")
	ErrStaleSession   = errors.New("quiz session is no longer active")
	ErrAlreadyGraded  = errors.New("question already answered")
	ErrNotGraded      = errors.New("question not answered yet")
	ErrInvalidOption  = errors.New("invalid option")
)

// Session is one user's quiz in progress
type Session struct {
	ID         string
	Format     domain.Format
	Direction  domain.Direction
	Questions  []domain.QuizQuestion
	Index      int
	Score      int
	Feedback   *quiz.Feedback // feedback for the current question, nil until graded
	LastActive time.Time
}

// Current returns the question being asked
func (s *Session) Current() domain.QuizQuestion {
	return s.Questions[s.Index]
}

// Result is the outcome of a finished quiz
type Result struct {
	Score   int
	Total   int
	Percent int
}

// QuizService runs quiz sessions, one per user
type QuizService struct {
	logger *zap.Logger
	now    func() time.Time

	rngMu sync.Mutex
	rng   quiz.Rand

	mu       sync.Mutex
	sessions map[int64]*Session
}

// NewQuizService creates a new quiz service
func NewQuizService(rng quiz.Rand, logger *zap.Logger) *QuizService {
	return &QuizService{
		logger:   logger,
		now:      time.Now,
		rng:      rng,
		sessions: make(map[int64]*Session),
	}
}

// Start builds a new quiz for the user, replacing any running one
func (s *QuizService) Start(userID int64, entries []domain.VocabEntry, scope quiz.Scope, dir domain.Direction, format domain.Format) (Session, error) {
	if !dir.Valid() {
		dir = domain.WordToTranslation
	}

	s.rngMu.Lock()
	var questions []domain.QuizQuestion
	if format == domain.FormatChoice {
		questions = quiz.BuildChoice(entries, scope, dir, s.rng)
	} else {
		format = domain.FormatFreeText
		questions = quiz.Build(entries, scope, dir, s.rng)
	}
	s.rngMu.Unlock()

	if len(questions) == 0 {
		return Session{}, ErrNotEnoughWords
	}

	session := &Session{
		ID:         uuid.NewString(),
		Format:     format,
		Direction:  dir,
		Questions:  questions,
		LastActive: s.now(),
	}

	s.mu.Lock()
	s.sessions[userID] = session
	s.mu.Unlock()

	s.logger.Info("Quiz started",
		zap.Int64("user_id", userID),
		zap.String("session_id", session.ID),
		zap.String("format", string(format)),
		zap.String("direction", string(dir)),
		zap.Strings("pages", scope.Keys()),
		zap.Int("questions", len(questions)),
	)
	return *session, nil
}

// Session returns a copy of the user's running quiz
func (s *QuizService) Session(userID int64) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		return Session{}, ErrNoSession
	}
	return *session, nil
}

// Answer grades a free text answer for the current question.
// A blank answer returns quiz.ErrEmptyAnswer and leaves the session unchanged.
func (s *QuizService) Answer(userID int64, raw string) (Session, error) {
	return s.grade(userID, "", func(session *Session) (quiz.Feedback, error) {
		return quiz.Grade(session.Current(), raw)
	})
}

// Choose grades the option picked by index. sessionID must name the running quiz.
func (s *QuizService) Choose(userID int64, sessionID string, option int) (Session, error) {
	return s.grade(userID, sessionID, func(session *Session) (quiz.Feedback, error) {
		q := session.Current()
		if option < 0 || option >= len(q.Options) {
			return quiz.Feedback{}, ErrInvalidOption
		}
		return quiz.GradeChoice(q, q.Options[option]), nil
	})
}

func (s *QuizService) grade(userID int64, sessionID string, fn func(*Session) (quiz.Feedback, error)) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		return Session{}, ErrNoSession
	}
	if sessionID != "" && sessionID != session.ID {
		return Session{}, ErrStaleSession
	}
	if session.Feedback != nil {
		return *session, ErrAlreadyGraded
	}

	fb, err := fn(session)
	if err != nil {
		return *session, err
	}

	session.Feedback = &fb
	if fb.Correct() {
		session.Score++
	}
	session.LastActive = s.now()

	s.logger.Debug("Answer graded",
		zap.Int64("user_id", userID),
		zap.Int64("entry_id", session.Current().ID),
		zap.String("status", string(fb.Status)),
	)
	return *session, nil
}

// Retry lets the user answer the current question again after a wrong answer
func (s *QuizService) Retry(userID int64) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		return Session{}, ErrNoSession
	}
	if session.Feedback == nil {
		return *session, ErrNotGraded
	}
	if session.Feedback.Correct() {
		return *session, ErrAlreadyGraded
	}

	session.Feedback = nil
	session.LastActive = s.now()
	return *session, nil
}

// Next moves to the following question. When the last question has been
// graded the session ends and its result is returned.
func (s *QuizService) Next(userID int64) (Session, *Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		return Session{}, nil, ErrNoSession
	}
	if session.Feedback == nil {
		return *session, nil, ErrNotGraded
	}

	if session.Index+1 >= len(session.Questions) {
		delete(s.sessions, userID)
		result := newResult(session.Score, len(session.Questions))
		s.logger.Info("Quiz finished",
			zap.Int64("user_id", userID),
			zap.String("session_id", session.ID),
			zap.Int("score", result.Score),
			zap.Int("total", result.Total),
		)
		return *session, result, nil
	}

	session.Index++
	session.Feedback = nil
	session.LastActive = s.now()
	return *session, nil, nil
}

// Stop abandons the user's quiz
func (s *QuizService) Stop(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// CleanupIdle drops quizzes untouched for longer than maxIdle
func (s *QuizService) CleanupIdle(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxIdle)
	removed := 0
	for userID, session := range s.sessions {
		if session.LastActive.Before(cutoff) {
			delete(s.sessions, userID)
			removed++
		}
	}
	if removed > 0 {
		s.logger.Info("Idle quizzes removed", zap.Int("count", removed))
	}
	return removed
}

func newResult(score, total int) *Result {
	percent := 0
	if total > 0 {
		percent = int(math.Round(float64(score) * 100 / float64(total)))
	}
	return &Result{Score: score, Total: total, Percent: percent}
}
