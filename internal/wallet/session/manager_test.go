package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/dropbox/godropbox/time2"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/child-wallet/internal/test"
	"github/chapool/child-wallet/internal/wallet/keycache"
	"github/chapool/child-wallet/internal/wallet/remote"
	"github/chapool/child-wallet/internal/wallet/session"
	"github/chapool/child-wallet/internal/wallet/signer"
)

func newManager(t *testing.T, fake *test.FakeSigner) session.Manager {
	t.Helper()

	clock := time2.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	keys := keycache.NewService(fake, keycache.NewMemoryStore(), clock, nil)
	return session.NewManager(signer.NewService(keys, fake, nil), clock)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	fake := test.NewFakeSigner()
	key := fake.Provision("alice", keycache.DefaultSlot)
	m := newManager(t, fake)

	s, err := m.Login(ctx, "alice", 0)
	require.NoError(t, err)
	assert.Equal(t, "alice", s.Owner)
	assert.Equal(t, keycache.DefaultSlot, s.Slot)
	assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), s.StartedAt)

	addr, err := s.Identity.Address(ctx)
	require.NoError(t, err)
	assert.Equal(t, crypto.PubkeyToAddress(key.PublicKey), addr)

	again, err := m.Login(ctx, "alice", keycache.DefaultSlot)
	require.NoError(t, err)
	assert.Same(t, s, again)
	assert.Equal(t, 1, fake.CallCount(test.OpGetPublicKey))

	got, err := m.Get("alice")
	require.NoError(t, err)
	assert.Same(t, s, got)
	require.NoError(t, m.Check(s))
}

func TestLoginValidation(t *testing.T) {
	m := newManager(t, test.NewFakeSigner())

	_, err := m.Login(context.Background(), "", 1)
	require.ErrorIs(t, err, session.ErrEmptyOwner)

	_, err = m.Login(context.Background(), "alice", keycache.MaxSlot+1)
	require.ErrorIs(t, err, keycache.ErrInvalidSlot)

	_, err = m.Get("nobody")
	require.ErrorIs(t, err, session.ErrNoSession)
}

func TestLoginSignerUnavailable(t *testing.T) {
	fake := test.NewFakeSigner()
	fake.GetErr = errors.New("connection refused")
	m := newManager(t, fake)

	_, err := m.Login(context.Background(), "alice", 1)
	require.ErrorIs(t, err, remote.ErrSignerUnavailable)

	_, err = m.Get("alice")
	require.ErrorIs(t, err, session.ErrNoSession)
}

func TestLogoutEndsSession(t *testing.T) {
	ctx := context.Background()
	fake := test.NewFakeSigner()
	fake.Provision("alice", keycache.DefaultSlot)
	m := newManager(t, fake)

	s, err := m.Login(ctx, "alice", 1)
	require.NoError(t, err)

	require.NoError(t, m.Logout(ctx, "alice"))
	require.ErrorIs(t, m.Check(s), session.ErrSessionEnded)

	_, err = m.Get("alice")
	require.ErrorIs(t, err, session.ErrNoSession)
	require.ErrorIs(t, m.Logout(ctx, "alice"), session.ErrNoSession)

	// the persisted record serves the next login
	next, err := m.Login(ctx, "alice", 1)
	require.NoError(t, err)
	assert.NotSame(t, s, next)
	assert.Greater(t, next.Generation, s.Generation)
	assert.NotSame(t, s.Identity, next.Identity)
	assert.Equal(t, 1, fake.CallCount(test.OpGetPublicKey))
	require.ErrorIs(t, m.Check(s), session.ErrSessionEnded)
	require.NoError(t, m.Check(next))
}

func TestLoginOtherSlotEndsPreviousSession(t *testing.T) {
	ctx := context.Background()
	fake := test.NewFakeSigner()
	first := fake.Provision("alice", 1)
	second := fake.Provision("alice", 2)
	m := newManager(t, fake)

	s1, err := m.Login(ctx, "alice", 1)
	require.NoError(t, err)
	s2, err := m.Login(ctx, "alice", 2)
	require.NoError(t, err)

	require.ErrorIs(t, m.Check(s1), session.ErrSessionEnded)
	require.NoError(t, m.Check(s2))

	a1, err := s1.Identity.Address(ctx)
	require.NoError(t, err)
	a2, err := s2.Identity.Address(ctx)
	require.NoError(t, err)
	assert.Equal(t, crypto.PubkeyToAddress(first.PublicKey), a1)
	assert.Equal(t, crypto.PubkeyToAddress(second.PublicKey), a2)
}
