package state

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/futig/interview-bot/internal/entity"
)

// Manager manages telegram chat states
type Manager struct {
	storage Storage
	// mu serializes get-or-create so two updates of one chat share a state.
	mu sync.Mutex
}

func NewManager(storage Storage) *Manager {
	return &Manager{storage: storage}
}

// GetOrCreate returns the chat state, creating an idle one on first contact.
// Every access refreshes the storage TTL.
func (m *Manager) GetOrCreate(ctx context.Context, chatID int64) (*ChatState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, err := m.storage.Get(ctx, chatID)
	switch {
	case errors.Is(err, entity.ErrSessionNotFound):
		st = NewChatState(chatID)
	case err != nil:
		return nil, fmt.Errorf("get chat state from storage: %w", err)
	}

	if err := m.storage.Set(ctx, st); err != nil {
		return nil, fmt.Errorf("save chat state to storage: %w", err)
	}
	return st, nil
}

// Get returns an existing chat state or entity.ErrSessionNotFound.
func (m *Manager) Get(ctx context.Context, chatID int64) (*ChatState, error) {
	st, err := m.storage.Get(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("get chat state from storage: %w", err)
	}
	return st, nil
}

func (m *Manager) Delete(ctx context.Context, chatID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.storage.Delete(ctx, chatID); err != nil {
		return fmt.Errorf("delete chat state from storage: %w", err)
	}
	return nil
}
