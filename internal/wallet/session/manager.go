package session

import (
	"context"
	"sync"

	"github.com/dropbox/godropbox/time2"
	"github.com/pkg/errors"
	"github/chapool/child-wallet/internal/util"
	"github/chapool/child-wallet/internal/wallet/keycache"
	"github/chapool/child-wallet/internal/wallet/signer"
)

type manager struct {
	signers signer.Service
	clock   time2.Clock

	mu          sync.Mutex
	sessions    map[string]*Session
	generations map[string]uint64
}

//nolint:ireturn // Returning interface is intentional for dependency injection
func NewManager(signers signer.Service, clock time2.Clock) Manager {
	return &manager{
		signers:     signers,
		clock:       clock,
		sessions:    make(map[string]*Session),
		generations: make(map[string]uint64),
	}
}

func (m *manager) Login(ctx context.Context, owner string, slot uint32) (*Session, error) {
	if owner == "" {
		return nil, ErrEmptyOwner
	}
	if slot == 0 {
		slot = keycache.DefaultSlot
	}
	if slot > keycache.MaxSlot {
		return nil, errors.Wrapf(keycache.ErrInvalidSlot, "slot %d", slot)
	}

	m.mu.Lock()
	if current, ok := m.sessions[owner]; ok && current.Slot == slot {
		m.mu.Unlock()
		return current, nil
	}
	m.mu.Unlock()

	identity := m.signers.Identity(owner, slot)
	if _, err := identity.Address(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to resolve session address")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if current, ok := m.sessions[owner]; ok && current.Slot == slot {
		return current, nil
	}

	m.generations[owner]++
	s := &Session{
		Owner:      owner,
		Slot:       slot,
		Identity:   identity,
		Generation: m.generations[owner],
		StartedAt:  m.clock.Now().UTC(),
	}
	m.sessions[owner] = s

	util.LogFromContext(ctx).Debug().
		Str("component", "session").
		Str("owner", owner).
		Uint32("slot", slot).
		Uint64("generation", s.Generation).
		Msg("Session started")

	return s, nil
}

func (m *manager) Logout(ctx context.Context, owner string) error {
	if owner == "" {
		return ErrEmptyOwner
	}

	m.mu.Lock()
	_, ok := m.sessions[owner]
	if ok {
		delete(m.sessions, owner)
		m.generations[owner]++
	}
	m.mu.Unlock()

	if !ok {
		return ErrNoSession
	}

	m.signers.Forget(owner)

	util.LogFromContext(ctx).Debug().
		Str("component", "session").
		Str("owner", owner).
		Msg("Session ended")

	return nil
}

func (m *manager) Get(owner string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[owner]
	if !ok {
		return nil, ErrNoSession
	}

	return s, nil
}

func (m *manager) Check(s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.generations[s.Owner] != s.Generation {
		return ErrSessionEnded
	}

	return nil
}
