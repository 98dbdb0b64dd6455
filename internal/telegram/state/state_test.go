package state

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/futig/interview-bot/internal/entity"
)

func TestManagerGetOrCreateReusesState(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStorage(time.Hour))

	first, err := m.GetOrCreate(ctx, 42)
	if err != nil {
		t.Fatal(err)
	}
	if first.Step() != StepIdle {
		t.Errorf("expected idle step, got %s", first.Step())
	}

	second, err := m.GetOrCreate(ctx, 42)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("expected the same state for the same chat")
	}

	other, _ := m.GetOrCreate(ctx, 43)
	if other == first {
		t.Error("expected a separate state per chat")
	}
}

func TestManagerDelete(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStorage(time.Hour))

	if _, err := m.GetOrCreate(ctx, 1); err != nil {
		t.Fatal(err)
	}
	if err := m.Delete(ctx, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Get(ctx, 1); !errors.Is(err, entity.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestMemoryStorageExpires(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage(20 * time.Millisecond)

	if err := s.Set(ctx, NewChatState(7)); err != nil {
		t.Fatal(err)
	}
	if s.Count() != 1 {
		t.Fatalf("expected one item, got %d", s.Count())
	}

	time.Sleep(50 * time.Millisecond)

	if _, err := s.Get(ctx, 7); !errors.Is(err, entity.ErrSessionNotFound) {
		t.Fatalf("expected expired state, got %v", err)
	}
}

func TestChatStateSetupFlow(t *testing.T) {
	st := NewChatState(1)
	st.ResetSetup()
	if st.Step() != StepRole {
		t.Fatalf("expected role step, got %s", st.Step())
	}

	st.Advance(StepMode, func(s *entity.InterviewSetup) { s.Role = "SRE" })
	got := st.Advance(StepDomain, func(s *entity.InterviewSetup) { s.Mode = "technical" })

	if got.Role != "SRE" || got.Mode != "technical" {
		t.Errorf("unexpected setup %+v", got)
	}
	if st.Step() != StepDomain {
		t.Errorf("expected domain step, got %s", st.Step())
	}
}
