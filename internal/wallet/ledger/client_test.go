package ledger_test

import (
	"context"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/child-wallet/internal/wallet/chain"
	"github/chapool/child-wallet/internal/wallet/ledger"
)

var (
	account = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	token   = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
)

func newClient(t *testing.T, urls ...string) *ledger.RPCClient {
	t.Helper()

	client, err := ledger.NewRPCClient(context.Background(), urls, 10*time.Millisecond)
	require.NoError(t, err)
	t.Cleanup(client.Close)

	return client
}

func signedTransfer(t *testing.T, chainID uint64) []byte {
	t.Helper()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	id := new(big.Int).SetUint64(chainID)
	tx, err := types.SignTx(types.NewTx(&types.DynamicFeeTx{
		ChainID:   id,
		Nonce:     3,
		GasTipCap: big.NewInt(1),
		GasFeeCap: big.NewInt(100),
		Gas:       21000,
		To:        &account,
		Value:     big.NewInt(5),
	}), types.LatestSignerForChainID(id), key)
	require.NoError(t, err)

	raw, err := tx.MarshalBinary()
	require.NoError(t, err)

	return raw
}

func TestNewRPCClientRequiresURL(t *testing.T) {
	_, err := ledger.NewRPCClient(context.Background(), nil, time.Second)
	require.ErrorIs(t, err, ledger.ErrNoRPCURLs)
}

func TestReads(t *testing.T) {
	node := newFakeNode(chain.AnvilChainID)
	node.balances[account] = big.NewInt(42)
	node.tokenBalances[token] = map[common.Address]*big.Int{account: big.NewInt(1_000_000)}
	node.nonces[account] = 9
	node.gas = 65000

	client := newClient(t, startNode(t, node))
	ctx := context.Background()

	chainID, err := client.ChainID(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(chain.AnvilChainID), chainID.Uint64())

	balance, err := client.BalanceAt(ctx, account)
	require.NoError(t, err)
	assert.Equal(t, int64(42), balance.Int64())

	tokenBalance, err := client.TokenBalance(ctx, token, account)
	require.NoError(t, err)
	assert.Equal(t, int64(1_000_000), tokenBalance.Int64())

	other, err := client.TokenBalance(ctx, token, common.HexToAddress("0x01"))
	require.NoError(t, err)
	assert.Zero(t, other.Sign())

	nonce, err := client.PendingNonceAt(ctx, account)
	require.NoError(t, err)
	assert.Equal(t, uint64(9), nonce)

	tip, err := client.SuggestGasTipCap(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1_000_000_000), tip.Int64())

	baseFee, err := client.LatestBaseFee(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), baseFee.Int64())

	gas, err := client.EstimateGas(ctx, ethereum.CallMsg{From: account, To: &token})
	require.NoError(t, err)
	assert.Equal(t, uint64(65000), gas)
}

func TestSendAndWait(t *testing.T) {
	node := newFakeNode(chain.AnvilChainID)
	node.receiptAfter = 2

	client := newClient(t, startNode(t, node))
	ctx := context.Background()

	raw := signedTransfer(t, chain.AnvilChainID)
	hash, err := client.SendRawTransaction(ctx, raw)
	require.NoError(t, err)

	sent := node.sentTransactions()
	require.Len(t, sent, 1)
	assert.Equal(t, sent[0].Hash(), hash)
	assert.Equal(t, uint64(3), sent[0].Nonce())

	receipt, err := client.WaitForReceipt(ctx, hash)
	require.NoError(t, err)
	assert.Equal(t, types.ReceiptStatusSuccessful, receipt.Status)
	assert.Equal(t, hash, receipt.TxHash)
}

func TestSendRawTransactionRejectsGarbage(t *testing.T) {
	client := newClient(t, startNode(t, newFakeNode(chain.AnvilChainID)))

	_, err := client.SendRawTransaction(context.Background(), []byte{0x02, 0x01})
	require.Error(t, err)
}

func TestWaitForReceiptHonorsContext(t *testing.T) {
	client := newClient(t, startNode(t, newFakeNode(chain.AnvilChainID)))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.WaitForReceipt(ctx, common.HexToHash("0xabcdef"))
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFailover(t *testing.T) {
	node := newFakeNode(chain.AnvilChainID)
	node.balances[account] = big.NewInt(11)

	client := newClient(t, startBrokenNode(t), startNode(t, node))

	balance, err := client.BalanceAt(context.Background(), account)
	require.NoError(t, err)
	assert.Equal(t, int64(11), balance.Int64())
}

func TestHealthCheckOnlyAfterFailure(t *testing.T) {
	node := newFakeNode(chain.AnvilChainID)
	node.balances[account] = big.NewInt(11)
	client := newClient(t, startNode(t, node))
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			balance, err := client.BalanceAt(ctx, account)
			assert.NoError(t, err)
			assert.Equal(t, int64(11), balance.Int64())
		}()
	}
	wg.Wait()

	assert.Zero(t, node.chainIDCalls())
}

func TestFailoverSticksToHealthyNode(t *testing.T) {
	node := newFakeNode(chain.AnvilChainID)
	node.balances[account] = big.NewInt(11)
	client := newClient(t, startBrokenNode(t), startNode(t, node))
	ctx := context.Background()

	for range 3 {
		_, err := client.BalanceAt(ctx, account)
		require.NoError(t, err)
	}

	assert.Zero(t, node.chainIDCalls())
}

func TestAllNodesDown(t *testing.T) {
	client := newClient(t, startBrokenNode(t), startBrokenNode(t))

	_, err := client.BalanceAt(context.Background(), account)
	require.ErrorIs(t, err, ledger.ErrAllNodesDown)
}

func TestPool(t *testing.T) {
	url := startNode(t, newFakeNode(chain.AnvilChainID))

	chains, err := chain.NewService([]*chain.Chain{
		{ChainID: chain.AnvilChainID, Name: "anvil", RPCURLs: []string{url}, IsActive: true},
		{ChainID: chain.SepoliaChainID, Name: "sepolia", RPCURLs: []string{url}, IsActive: true},
	}, chain.AnvilChainID)
	require.NoError(t, err)

	pool := ledger.NewPool(chains, 10*time.Millisecond)
	defer pool.Close()

	ctx := context.Background()

	first, err := pool.Client(ctx, chain.AnvilChainID)
	require.NoError(t, err)
	second, err := pool.Client(ctx, chain.AnvilChainID)
	require.NoError(t, err)
	assert.Same(t, first, second)

	_, err = pool.Client(ctx, chain.SepoliaChainID)
	require.ErrorIs(t, err, ledger.ErrChainMismatch)

	_, err = pool.Client(ctx, 5)
	require.ErrorIs(t, err, chain.ErrChainNotFound)
}
