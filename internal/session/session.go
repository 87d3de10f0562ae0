package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/estudia-labs/estudia-eval/internal/quiz"
)

// Status is the lifecycle state of one evaluation attempt.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusGenerating Status = "generating"
	StatusActive     Status = "active"
	StatusReviewing  Status = "reviewing"
)

// CourseRef identifies the material an evaluation is generated from.
type CourseRef struct {
	Course string `json:"course"`
	Book   string `json:"book"`
	Topic  string `json:"topic"`
}

// Generator produces the question list for a course reference.
type Generator interface {
	Generate(ctx context.Context, ref CourseRef) ([]quiz.RawQuestion, error)
}

// Recorder stores a finished evaluation's grade. Best-effort: a failure is
// logged and never blocks the transition to review.
type Recorder interface {
	RecordResult(ctx context.Context, learnerID string, ref CourseRef, grade float64) error
}

// ErrGeneration wraps any failure to obtain a usable question list.
var ErrGeneration = errors.New("question generation failed")

// Session is the per-learner, per-attempt evaluation state machine. Every
// mutating operation (including the timer tick) takes the session mutex, so
// operations on one session are totally ordered.
type Session struct {
	mu sync.Mutex

	learnerID string
	attemptID string
	ref       CourseRef
	status    Status

	questions []quiz.Question
	answers   map[int]any
	current   int

	result *quiz.Result

	timeLimitSec int
	remaining    int
	timer        *timer
	tick         time.Duration

	gen Generator
	rec Recorder
}

type Option func(*Session)

// WithTimeLimit sets the default countdown in seconds; 0 disables the timer.
func WithTimeLimit(sec int) Option {
	return func(s *Session) { s.timeLimitSec = sec }
}

// WithTickInterval overrides the one-second tick, for tests.
func WithTickInterval(d time.Duration) Option {
	return func(s *Session) { s.tick = d }
}

func New(learnerID string, gen Generator, rec Recorder, opts ...Option) *Session {
	s := &Session{
		learnerID: learnerID,
		status:    StatusIdle,
		gen:       gen,
		rec:       rec,
		tick:      time.Second,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Start requests questions from the generator and activates the session.
// timeLimitSec < 0 means use the session default; 0 disables the timer.
// All-or-nothing: any invalid question aborts the whole start and the
// session returns to idle. No-op when a run is already underway.
func (s *Session) Start(ctx context.Context, ref CourseRef, timeLimitSec int) error {
	s.mu.Lock()
	if s.status != StatusIdle {
		s.mu.Unlock()
		return nil
	}
	s.status = StatusGenerating
	s.ref = ref
	s.mu.Unlock()

	raw, err := s.gen.Generate(ctx, ref)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusGenerating {
		// Reset won while we were waiting on the generator.
		return nil
	}
	if err != nil {
		s.status = StatusIdle
		return fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	if len(raw) == 0 {
		s.status = StatusIdle
		return fmt.Errorf("%w: generator returned no questions", ErrGeneration)
	}
	questions, err := quiz.BuildQuestions(raw)
	if err != nil {
		s.status = StatusIdle
		return err
	}

	s.attemptID = uuid.NewString()
	s.questions = questions
	s.answers = map[int]any{}
	s.current = 0
	s.result = nil
	s.status = StatusActive

	limit := s.timeLimitSec
	if timeLimitSec >= 0 {
		limit = timeLimitSec
	}
	if limit > 0 {
		s.startTimerLocked(limit)
	}
	return nil
}

// SetAnswer records the learner's answer for the current question,
// overwriting any prior value. No-op outside the active state.
func (s *Session) SetAnswer(value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusActive {
		return
	}
	s.answers[s.current] = value
}

// Next advances to the following question, clamped at the last one.
func (s *Session) Next() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusActive {
		return
	}
	if s.current < len(s.questions)-1 {
		s.current++
	}
}

// Prev moves back one question, clamped at the first one.
func (s *Session) Prev() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusActive {
		return
	}
	if s.current > 0 {
		s.current--
	}
}

// Finish scores the attempt and moves to review. Safe to call at any time
// and idempotent: a second call (learner submit racing the timer) is a
// no-op, so the grade is computed and persisted exactly once.
func (s *Session) Finish() {
	s.mu.Lock()
	job := s.finishLocked()
	s.mu.Unlock()
	if job != nil {
		s.persist(job)
	}
}

type persistJob struct {
	learnerID string
	ref       CourseRef
	grade     float64
}

// finishLocked performs the Active→Reviewing transition. Returns a non-nil
// job exactly once per attempt; the caller runs it outside the lock.
func (s *Session) finishLocked() *persistJob {
	if s.status != StatusActive {
		return nil
	}
	if s.timer != nil {
		s.timer.cancel()
		s.timer = nil
	}
	s.remaining = 0

	res, faults := quiz.Score(s.questions, s.answers)
	for _, f := range faults {
		log.Printf("session %s: %v", s.attemptID, f)
	}
	s.result = &res
	s.status = StatusReviewing
	return &persistJob{learnerID: s.learnerID, ref: s.ref, grade: res.Grade}
}

func (s *Session) persist(job *persistJob) {
	if s.rec == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.rec.RecordResult(ctx, job.learnerID, job.ref, job.grade); err != nil {
		log.Printf("record result for %s: %v", job.learnerID, err)
	}
}

// Reset discards everything and returns to idle. Valid from any state.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.cancel()
		s.timer = nil
	}
	s.attemptID = ""
	s.ref = CourseRef{}
	s.questions = nil
	s.answers = nil
	s.current = 0
	s.result = nil
	s.remaining = 0
	s.status = StatusIdle
}
