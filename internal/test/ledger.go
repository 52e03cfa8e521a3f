package test

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
	"github/chapool/child-wallet/internal/wallet/chain"
	"github/chapool/child-wallet/internal/wallet/ledger"
)

// FakeLedger is an in-memory ledger of one chain. It also serves as its own
// ledger.Provider.
type FakeLedger struct {
	mu sync.Mutex

	chainID       uint64
	balances      map[common.Address]*big.Int
	tokenBalances map[common.Address]map[common.Address]*big.Int
	nonces        map[common.Address]uint64
	sent          []*types.Transaction

	Tip           *big.Int
	BaseFee       *big.Int
	ReceiptStatus uint64

	SendErr error
	WaitErr error

	// OnSend runs before a transaction is accepted.
	OnSend func(ctx context.Context, tx *types.Transaction)
}

var (
	_ ledger.Client   = (*FakeLedger)(nil)
	_ ledger.Provider = (*FakeLedger)(nil)
)

func NewFakeLedger(chainID uint64) *FakeLedger {
	return &FakeLedger{
		chainID:       chainID,
		balances:      make(map[common.Address]*big.Int),
		tokenBalances: make(map[common.Address]map[common.Address]*big.Int),
		nonces:        make(map[common.Address]uint64),
		Tip:           big.NewInt(1_500_000_000),
		BaseFee:       big.NewInt(10_000_000_000),
		ReceiptStatus: types.ReceiptStatusSuccessful,
	}
}

func (l *FakeLedger) Client(_ context.Context, chainID uint64) (ledger.Client, error) { //nolint:ireturn
	if chainID != l.chainID {
		return nil, errors.Wrapf(chain.ErrChainNotFound, "chain %d", chainID)
	}
	return l, nil
}

func (l *FakeLedger) SetBalance(account common.Address, balance *big.Int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.balances[account] = balance
}

func (l *FakeLedger) SetTokenBalance(token common.Address, account common.Address, balance *big.Int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.tokenBalances[token] == nil {
		l.tokenBalances[token] = make(map[common.Address]*big.Int)
	}
	l.tokenBalances[token][account] = balance
}

func (l *FakeLedger) SetNonce(account common.Address, nonce uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nonces[account] = nonce
}

// Sent returns the transactions broadcast so far.
func (l *FakeLedger) Sent() []*types.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]*types.Transaction(nil), l.sent...)
}

func (l *FakeLedger) ChainID(_ context.Context) (*big.Int, error) {
	return new(big.Int).SetUint64(l.chainID), nil
}

func (l *FakeLedger) BalanceAt(_ context.Context, account common.Address) (*big.Int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if b, ok := l.balances[account]; ok {
		return new(big.Int).Set(b), nil
	}
	return big.NewInt(0), nil
}

func (l *FakeLedger) TokenBalance(_ context.Context, token common.Address, account common.Address) (*big.Int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if b, ok := l.tokenBalances[token][account]; ok {
		return new(big.Int).Set(b), nil
	}
	return big.NewInt(0), nil
}

func (l *FakeLedger) PendingNonceAt(_ context.Context, account common.Address) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.nonces[account], nil
}

func (l *FakeLedger) SuggestGasTipCap(_ context.Context) (*big.Int, error) {
	return new(big.Int).Set(l.Tip), nil
}

func (l *FakeLedger) LatestBaseFee(_ context.Context) (*big.Int, error) {
	return new(big.Int).Set(l.BaseFee), nil
}

func (l *FakeLedger) EstimateGas(_ context.Context, _ ethereum.CallMsg) (uint64, error) {
	return 21000, nil
}

// SendRawTransaction accepts the transaction and bumps the sender's nonce.
func (l *FakeLedger) SendRawTransaction(ctx context.Context, raw []byte) (common.Hash, error) {
	tx := new(types.Transaction)
	if err := tx.UnmarshalBinary(raw); err != nil {
		return common.Hash{}, errors.Wrap(err, "failed to unmarshal signed transaction")
	}

	if l.OnSend != nil {
		l.OnSend(ctx, tx)
	}
	if l.SendErr != nil {
		return common.Hash{}, l.SendErr
	}

	from, err := types.Sender(types.LatestSignerForChainID(tx.ChainId()), tx)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "invalid sender")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sent = append(l.sent, tx)
	l.nonces[from] = tx.Nonce() + 1

	return tx.Hash(), nil
}

func (l *FakeLedger) WaitForReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if l.WaitErr != nil {
		return nil, l.WaitErr
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for i, tx := range l.sent {
		if tx.Hash() == hash {
			return &types.Receipt{
				Status:      l.ReceiptStatus,
				TxHash:      hash,
				GasUsed:     tx.Gas() / 2,
				BlockNumber: big.NewInt(int64(i) + 1),
			}, nil
		}
	}

	return nil, ethereum.NotFound
}
