package session

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/futig/interview-bot/internal/entity"
	"github.com/google/uuid"
)

// Session is one interview attempt. All fields are guarded by mu; callers
// read them through Snapshot.
type Session struct {
	mu sync.Mutex

	id              string
	view            entity.View
	setup           entity.InterviewSetup
	questionNumber  int
	history         []entity.Turn
	currentQuestion string
	feedback        string
	summary         string
	lastError       string
	createdAt       time.Time

	inFlight bool
	// epoch changes on NewInterview so results of abandoned calls are dropped.
	epoch uint64
}

// Snapshot is a consistent copy of a session for rendering.
type Snapshot struct {
	ID              string
	View            entity.View
	Setup           entity.InterviewSetup
	QuestionNumber  int
	History         []entity.Turn
	CurrentQuestion string
	Feedback        string
	Summary         string
	LastError       string
	CreatedAt       time.Time
}

func NewSession() *Session {
	return &Session{
		id:        uuid.NewString(),
		view:      entity.ViewSetup,
		createdAt: time.Now(),
	}
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		ID:              s.id,
		View:            s.view,
		Setup:           s.setup,
		QuestionNumber:  s.questionNumber,
		History:         slices.Clone(s.history),
		CurrentQuestion: s.currentQuestion,
		Feedback:        s.feedback,
		Summary:         s.summary,
		LastError:       s.lastError,
		CreatedAt:       s.createdAt,
	}
}

// pendingTurn returns the last turn when it is a user turn that no bot turn
// has acknowledged yet.
func (s *Session) pendingTurn() (entity.Turn, bool) {
	if len(s.history) == 0 {
		return entity.Turn{}, false
	}
	last := s.history[len(s.history)-1]
	return last, last.Speaker == entity.SpeakerUser
}

func (s *Session) lastBotTurn() string {
	for i := len(s.history) - 1; i >= 0; i-- {
		if s.history[i].Speaker == entity.SpeakerBot {
			return s.history[i].Text
		}
	}
	return ""
}

// begin claims the session for one request after the checks pass.
// Must be called with mu held.
func (s *Session) begin(view entity.View, checks ...func() error) error {
	if s.inFlight {
		return entity.ErrRequestInFlight
	}
	if s.view != view {
		return entity.ErrInvalidTransition
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	s.inFlight = true
	return nil
}

// unlockWith releases mu and reports a rejected operation.
func (s *Session) unlockWith(err error) (Snapshot, error) {
	snap := s.snapshotLocked()
	s.mu.Unlock()
	return snap, err
}

func (s *Session) questionAsked() error {
	if s.questionNumber == 0 {
		return fmt.Errorf("no question asked yet: %w", entity.ErrInvalidTransition)
	}
	return nil
}

// commit runs apply if the session was not reset since the request began,
// records the outcome and releases the session.
func (s *Session) commit(epoch uint64, err error, apply func()) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.epoch != epoch {
		return s.snapshotLocked()
	}

	s.inFlight = false
	if err != nil {
		s.lastError = err.Error()
		return s.snapshotLocked()
	}

	s.lastError = ""
	apply()
	return s.snapshotLocked()
}
