package signer

import (
	"sync"

	"github/chapool/child-wallet/internal/wallet/keycache"
	"github/chapool/child-wallet/internal/wallet/remote"
)

type service struct {
	keys     keycache.Service
	remote   remote.Signer
	observer Observer

	mu         sync.Mutex
	identities map[identityKey]*Identity
}

type identityKey struct {
	owner string
	slot  uint32
}

// NewService creates the identity registry. observer may be nil.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(keys keycache.Service, signer remote.Signer, observer Observer) Service {
	return &service{
		keys:       keys,
		remote:     signer,
		observer:   observer,
		identities: make(map[identityKey]*Identity),
	}
}

func (s *service) Identity(owner string, slot uint32) *Identity {
	key := identityKey{owner: owner, slot: slot}

	s.mu.Lock()
	defer s.mu.Unlock()

	if identity, ok := s.identities[key]; ok {
		return identity
	}

	identity := newIdentity(owner, slot, s.keys, s.remote, s.observer)
	s.identities[key] = identity
	return identity
}

func (s *service) Forget(owner string) {
	s.mu.Lock()
	for key := range s.identities {
		if key.owner == owner {
			delete(s.identities, key)
		}
	}
	s.mu.Unlock()

	s.keys.Invalidate(owner)
}
