package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github/chapool/child-wallet/internal/util"
	"github/chapool/child-wallet/internal/wallet/chain"
)

// Pool dials one RPCClient per chain on first use and keeps it.
type Pool struct {
	chains       chain.Service
	pollInterval time.Duration

	mu      sync.Mutex
	clients map[uint64]*RPCClient
}

var _ Provider = (*Pool)(nil)

func NewPool(chains chain.Service, pollInterval time.Duration) *Pool {
	return &Pool{
		chains:       chains,
		pollInterval: pollInterval,
		clients:      make(map[uint64]*RPCClient),
	}
}

// Client returns the chain's client. A new client is checked to actually serve chainID.
func (p *Pool) Client(ctx context.Context, chainID uint64) (Client, error) { //nolint:ireturn
	p.mu.Lock()
	defer p.mu.Unlock()

	if client, ok := p.clients[chainID]; ok {
		return client, nil
	}

	c, err := p.chains.GetChain(chainID)
	if err != nil {
		return nil, err
	}

	client, err := NewRPCClient(ctx, c.RPCURLs, p.pollInterval)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect to chain %d", chainID)
	}

	served, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, err
	}
	if !served.IsUint64() || served.Uint64() != chainID {
		client.Close()
		return nil, errors.Wrapf(ErrChainMismatch, "expected %d, got %s", chainID, served)
	}

	util.LogFromContext(ctx).Info().
		Uint64("chain_id", chainID).
		Str("chain", c.Name).
		Msg("Connected to ledger")

	p.clients[chainID] = client
	return client, nil
}

// Close closes every dialed client.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for id, client := range p.clients {
		client.Close()
		delete(p.clients, id)
	}
}
