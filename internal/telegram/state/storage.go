package state

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/futig/interview-bot/internal/entity"
	"github.com/futig/interview-bot/internal/session"
	"github.com/patrickmn/go-cache"
)

// SetupStep tracks the guided setup that precedes an interview.
type SetupStep string

const (
	StepIdle   SetupStep = "IDLE"
	StepRole   SetupStep = "ASK_ROLE"
	StepMode   SetupStep = "ASK_MODE"
	StepDomain SetupStep = "ASK_DOMAIN"
	StepDone   SetupStep = "DONE"
)

// ChatState is everything the bot keeps for one chat. Interview state lives
// in Session; the setup fields are guarded by mu.
type ChatState struct {
	ChatID  int64
	Session *session.Session

	mu        sync.Mutex
	step      SetupStep
	setup     entity.InterviewSetup
	updatedAt time.Time
}

func NewChatState(chatID int64) *ChatState {
	return &ChatState{
		ChatID:    chatID,
		Session:   session.NewSession(),
		step:      StepIdle,
		updatedAt: time.Now(),
	}
}

func (c *ChatState) Step() SetupStep {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

// Advance applies fn to the setup draft and moves to the given step.
func (c *ChatState) Advance(next SetupStep, fn func(*entity.InterviewSetup)) entity.InterviewSetup {
	c.mu.Lock()
	defer c.mu.Unlock()
	if fn != nil {
		fn(&c.setup)
	}
	c.step = next
	c.updatedAt = time.Now()
	return c.setup
}

// ResetSetup clears the draft and starts asking for the role again.
func (c *ChatState) ResetSetup() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setup = entity.InterviewSetup{}
	c.step = StepRole
	c.updatedAt = time.Now()
}

// Storage defines the interface for chat state persistence
type Storage interface {
	Get(ctx context.Context, chatID int64) (*ChatState, error)
	Set(ctx context.Context, state *ChatState) error
	Delete(ctx context.Context, chatID int64) error
}

// MemoryStorage keeps chat states in process memory and forgets them after
// the configured idle TTL.
type MemoryStorage struct {
	cache *cache.Cache
	ttl   time.Duration
}

func NewMemoryStorage(ttl time.Duration) *MemoryStorage {
	return &MemoryStorage{
		cache: cache.New(ttl, ttl/2),
		ttl:   ttl,
	}
}

func (s *MemoryStorage) Get(_ context.Context, chatID int64) (*ChatState, error) {
	v, ok := s.cache.Get(key(chatID))
	if !ok {
		return nil, entity.ErrSessionNotFound
	}
	return v.(*ChatState), nil
}

func (s *MemoryStorage) Set(_ context.Context, state *ChatState) error {
	s.cache.Set(key(state.ChatID), state, s.ttl)
	return nil
}

func (s *MemoryStorage) Delete(_ context.Context, chatID int64) error {
	s.cache.Delete(key(chatID))
	return nil
}

func (s *MemoryStorage) Count() int {
	return s.cache.ItemCount()
}

func key(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}
