package keycache

import (
	"context"
	"strconv"
	"sync"

	"github.com/dropbox/godropbox/time2"
	"github.com/pkg/errors"
	"github/chapool/child-wallet/internal/util"
	"github/chapool/child-wallet/internal/wallet/address"
	"github/chapool/child-wallet/internal/wallet/remote"
	"golang.org/x/sync/singleflight"
)

type service struct {
	signer   remote.Signer
	store    Store
	clock    time2.Clock
	observer Observer

	group singleflight.Group

	mu          sync.RWMutex
	records     map[recordKey]*PublicKeyRecord
	generations map[string]uint64
}

// NewService creates the key material cache. store and observer may be nil.
//
//nolint:ireturn
func NewService(signer remote.Signer, store Store, clock time2.Clock, observer Observer) Service {
	if clock == nil {
		clock = time2.DefaultClock
	}

	return &service{
		signer:      signer,
		store:       store,
		clock:       clock,
		observer:    observer,
		records:     make(map[recordKey]*PublicKeyRecord),
		generations: make(map[string]uint64),
	}
}

type recordKey struct {
	owner string
	slot  uint32
}

// flightKey puts the slot first; owner identities may contain any character.
func (k recordKey) flightKey() string {
	return strconv.FormatUint(uint64(k.slot), 10) + ":" + k.owner
}

// Resolve walks memory, durable store and remote signer in that order. Concurrent
// calls for the same (owner, slot) share one lookup.
func (s *service) Resolve(ctx context.Context, owner string, slot uint32) (*PublicKeyRecord, error) {
	if owner == "" {
		return nil, ErrEmptyOwner
	}
	if slot > MaxSlot {
		return nil, errors.Wrapf(ErrInvalidSlot, "slot %d", slot)
	}

	key := recordKey{owner: owner, slot: slot}
	if rec := s.lookup(key); rec != nil {
		s.observe(SourceMemory)
		return rec, nil
	}

	v, err, _ := s.group.Do(key.flightKey(), func() (any, error) {
		if rec := s.lookup(key); rec != nil {
			s.observe(SourceMemory)
			return rec, nil
		}

		generation := s.generation(owner)

		if rec := s.loadFromStore(ctx, owner, slot); rec != nil {
			s.remember(key, owner, generation, rec)
			s.observe(SourceStore)
			return rec, nil
		}

		rec, err := s.fetchRemote(ctx, owner, slot)
		if err != nil {
			return nil, err
		}

		s.remember(key, owner, generation, rec)
		s.persist(ctx, rec)
		s.observe(SourceRemote)

		return rec, nil
	})
	if err != nil {
		return nil, err
	}

	rec, ok := v.(*PublicKeyRecord)
	if !ok {
		return nil, errors.New("unexpected key record type")
	}

	return rec, nil
}

// Invalidate drops the owner's records. Lookups already in flight still return
// their result to their callers but no longer populate the cache.
func (s *service) Invalidate(owner string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.records {
		if key.owner == owner {
			delete(s.records, key)
		}
	}
	s.generations[owner]++
}

func (s *service) lookup(key recordKey) *PublicKeyRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.records[key]
}

func (s *service) generation(owner string) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.generations[owner]
}

func (s *service) remember(key recordKey, owner string, generation uint64, rec *PublicKeyRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generations[owner] != generation {
		return
	}
	s.records[key] = rec
}

func (s *service) loadFromStore(ctx context.Context, owner string, slot uint32) *PublicKeyRecord {
	if s.store == nil {
		return nil
	}

	log := util.LogFromContext(ctx).With().Str("component", "keycache").Uint32("slot", slot).Logger()

	blob, err := s.store.Load(ctx, owner)
	if err != nil {
		if !errors.Is(err, ErrRecordNotFound) {
			log.Debug().Err(err).Msg("Failed to read persisted key record, treating as miss")
		}
		return nil
	}

	rec, err := decodeRecord(blob, owner, slot)
	if err != nil {
		log.Debug().Err(err).Msg("Ignoring unusable persisted key record")
		return nil
	}

	return rec
}

func (s *service) fetchRemote(ctx context.Context, owner string, slot uint32) (*PublicKeyRecord, error) {
	publicKey, err := s.signer.GetPublicKey(ctx, owner, slot)
	if errors.Is(err, remote.ErrPublicKeyNotFound) {
		util.LogFromContext(ctx).Info().
			Str("component", "keycache").
			Uint32("slot", slot).
			Msg("No remote key for slot yet, creating it")

		if _, err = s.signer.CreatePublicKey(ctx, owner, slot); err != nil {
			return nil, remote.Unavailable("create_public_key", err)
		}

		publicKey, err = s.signer.GetPublicKey(ctx, owner, slot)
	}
	if err != nil {
		return nil, remote.Unavailable("get_public_key", err)
	}

	derived, err := address.DeriveAddress(publicKey)
	if err != nil {
		return nil, errors.Wrap(err, "remote signer returned an unusable public key")
	}

	rec := &PublicKeyRecord{
		OwnerIdentity: owner,
		Slot:          slot,
		Address:       derived,
		ResolvedAt:    s.clock.Now().UTC(),
	}
	copy(rec.PublicKey[:], publicKey)

	return rec, nil
}

func (s *service) persist(ctx context.Context, rec *PublicKeyRecord) {
	if s.store == nil {
		return
	}

	log := util.LogFromContext(ctx).With().Str("component", "keycache").Uint32("slot", rec.Slot).Logger()

	blob, err := encodeRecord(rec)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to encode key record")
		return
	}

	if err := s.store.Save(ctx, rec.OwnerIdentity, blob); err != nil {
		log.Warn().Err(err).Msg("Failed to persist key record")
	}
}

func (s *service) observe(source string) {
	if s.observer != nil {
		s.observer.ObserveKeyResolution(source)
	}
}
