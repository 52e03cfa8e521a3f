package ledger_test

import (
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"
	"github/chapool/child-wallet/internal/wallet/erc20"
)

type callArgs struct {
	From  *common.Address `json:"from"`
	To    *common.Address `json:"to"`
	Input hexutil.Bytes   `json:"input"`
	Data  hexutil.Bytes   `json:"data"`
}

func (a callArgs) payload() []byte {
	if len(a.Input) > 0 {
		return a.Input
	}
	return a.Data
}

// fakeNode answers the eth_ methods the ledger client uses.
type fakeNode struct {
	mu sync.Mutex

	chainID       uint64
	balances      map[common.Address]*big.Int
	tokenBalances map[common.Address]map[common.Address]*big.Int
	nonces        map[common.Address]uint64
	tip           *big.Int
	baseFee       *big.Int
	gas           uint64

	sent            []*types.Transaction
	receipts        map[common.Hash]*types.Receipt
	receiptAfter    int
	receiptRequests int
	chainIDRequests int
}

func newFakeNode(chainID uint64) *fakeNode {
	return &fakeNode{
		chainID:       chainID,
		balances:      make(map[common.Address]*big.Int),
		tokenBalances: make(map[common.Address]map[common.Address]*big.Int),
		nonces:        make(map[common.Address]uint64),
		tip:           big.NewInt(1_000_000_000),
		baseFee:       big.NewInt(7),
		gas:           21000,
		receipts:      make(map[common.Hash]*types.Receipt),
	}
}

func (n *fakeNode) ChainId() *hexutil.Big { //nolint:revive,stylecheck
	n.mu.Lock()
	n.chainIDRequests++
	n.mu.Unlock()

	return (*hexutil.Big)(new(big.Int).SetUint64(n.chainID))
}

func (n *fakeNode) GetBalance(account common.Address, _ string) *hexutil.Big {
	n.mu.Lock()
	defer n.mu.Unlock()

	if b, ok := n.balances[account]; ok {
		return (*hexutil.Big)(b)
	}
	return (*hexutil.Big)(big.NewInt(0))
}

func (n *fakeNode) Call(args callArgs, _ *string) (hexutil.Bytes, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if args.To == nil {
		return nil, errors.New("missing to")
	}

	data := args.payload()
	for account, balance := range n.tokenBalances[*args.To] {
		expected, err := erc20.BalanceOfCalldata(account)
		if err != nil {
			return nil, err
		}
		if string(expected) == string(data) {
			return common.LeftPadBytes(balance.Bytes(), 32), nil
		}
	}
	return make([]byte, 32), nil
}

func (n *fakeNode) GetTransactionCount(account common.Address, _ string) hexutil.Uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()

	return hexutil.Uint64(n.nonces[account])
}

func (n *fakeNode) MaxPriorityFeePerGas() *hexutil.Big {
	return (*hexutil.Big)(n.tip)
}

func (n *fakeNode) GetBlockByNumber(_ string, _ bool) *types.Header {
	return &types.Header{
		Number:     big.NewInt(1),
		Difficulty: big.NewInt(0),
		BaseFee:    n.baseFee,
	}
}

func (n *fakeNode) EstimateGas(_ callArgs, _ *string) hexutil.Uint64 {
	return hexutil.Uint64(n.gas)
}

func (n *fakeNode) SendRawTransaction(raw hexutil.Bytes) (common.Hash, error) {
	tx := new(types.Transaction)
	if err := tx.UnmarshalBinary(raw); err != nil {
		return common.Hash{}, err
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	n.sent = append(n.sent, tx)
	n.receipts[tx.Hash()] = &types.Receipt{
		Status:            types.ReceiptStatusSuccessful,
		CumulativeGasUsed: tx.Gas(),
		GasUsed:           tx.Gas(),
		TxHash:            tx.Hash(),
		Logs:              []*types.Log{},
	}
	return tx.Hash(), nil
}

func (n *fakeNode) GetTransactionReceipt(hash common.Hash) *types.Receipt {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.receiptRequests++
	if n.receiptRequests <= n.receiptAfter {
		return nil
	}
	return n.receipts[hash]
}

func (n *fakeNode) chainIDCalls() int {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.chainIDRequests
}

func (n *fakeNode) sentTransactions() []*types.Transaction {
	n.mu.Lock()
	defer n.mu.Unlock()

	return append([]*types.Transaction(nil), n.sent...)
}

func startNode(t *testing.T, node *fakeNode) string {
	t.Helper()

	srv := rpc.NewServer()
	if err := srv.RegisterName("eth", node); err != nil {
		t.Fatalf("failed to register fake node: %v", err)
	}

	ts := httptest.NewServer(srv)
	t.Cleanup(func() {
		ts.Close()
		srv.Stop()
	})

	return ts.URL
}

func startBrokenNode(t *testing.T) string {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(ts.Close)

	return ts.URL
}
