package transfer

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
)

type senderKey struct {
	chainID uint64
	from    common.Address
}

// sender is held from nonce assignment until the transaction was broadcast.
type sender struct {
	sem chan struct{}

	// next is the nonce after the last broadcast of this process, valid once sent is set
	next uint64
	sent bool
}

type nonceTracker struct {
	mu      sync.Mutex
	senders map[senderKey]*sender
}

func newNonceTracker() *nonceTracker {
	return &nonceTracker{senders: make(map[senderKey]*sender)}
}

func (t *nonceTracker) acquire(ctx context.Context, key senderKey) (*sender, error) {
	t.mu.Lock()
	snd, ok := t.senders[key]
	if !ok {
		snd = &sender{sem: make(chan struct{}, 1)}
		t.senders[key] = snd
	}
	t.mu.Unlock()

	select {
	case snd.sem <- struct{}{}:
		return snd, nil
	case <-ctx.Done():
		return nil, errors.Wrap(ctx.Err(), "waiting for pending transfer of sender")
	}
}

func (snd *sender) release() {
	<-snd.sem
}

// nonce is the larger of the ledger's pending nonce and the one after our last broadcast.
func (snd *sender) nonce(pending uint64) uint64 {
	if snd.sent && snd.next > pending {
		return snd.next
	}
	return pending
}

func (snd *sender) broadcasted(nonce uint64) {
	snd.next = nonce + 1
	snd.sent = true
}

// withNonce returns tx with nonce. Plans are always dynamic fee transactions.
func withNonce(tx *types.Transaction, nonce uint64) *types.Transaction {
	if tx.Nonce() == nonce {
		return tx
	}

	return types.NewTx(&types.DynamicFeeTx{
		ChainID:    tx.ChainId(),
		Nonce:      nonce,
		GasTipCap:  tx.GasTipCap(),
		GasFeeCap:  tx.GasFeeCap(),
		Gas:        tx.Gas(),
		To:         tx.To(),
		Value:      tx.Value(),
		Data:       tx.Data(),
		AccessList: tx.AccessList(),
	})
}
