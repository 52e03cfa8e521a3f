package ledger

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github/chapool/child-wallet/internal/wallet/erc20"
)

const defaultPollInterval = 2 * time.Second

// RPCClient wraps go-ethereum clients of several RPC URLs of one chain and fails
// over to the next URL when the current one stops answering.
type RPCClient struct {
	urls         []string
	pollInterval time.Duration

	mu      sync.Mutex
	clients []*ethclient.Client
	current int
}

var _ Client = (*RPCClient)(nil)

// NewRPCClient creates a client over urls. Unreachable URLs are dialed again on use.
func NewRPCClient(ctx context.Context, urls []string, pollInterval time.Duration) (*RPCClient, error) {
	if len(urls) == 0 {
		return nil, ErrNoRPCURLs
	}
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}

	clients := make([]*ethclient.Client, len(urls))
	connected := 0
	for i, url := range urls {
		client, err := ethclient.DialContext(ctx, url)
		if err != nil {
			log.Warn().
				Str("url", url).
				Err(err).
				Msg("Failed to connect to RPC node, will retry on use")
			continue
		}
		clients[i] = client
		connected++
	}

	if connected == 0 {
		return nil, errors.New("failed to connect to any RPC node")
	}

	return &RPCClient{
		urls:         urls,
		pollInterval: pollInterval,
		clients:      clients,
	}, nil
}

// Close closes all client connections.
func (c *RPCClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, client := range c.clients {
		if client != nil {
			client.Close()
			c.clients[i] = nil
		}
	}
}

func (c *RPCClient) ChainID(ctx context.Context) (*big.Int, error) {
	var chainID *big.Int
	err := c.do(ctx, func(client *ethclient.Client) (err error) {
		chainID, err = client.ChainID(ctx)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get chain ID")
	}

	return chainID, nil
}

// BalanceAt returns the native balance of an account at the latest block.
func (c *RPCClient) BalanceAt(ctx context.Context, account common.Address) (*big.Int, error) {
	var balance *big.Int
	err := c.do(ctx, func(client *ethclient.Client) (err error) {
		balance, err = client.BalanceAt(ctx, account, nil)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get balance")
	}

	return balance, nil
}

// TokenBalance returns the ERC-20 token balance of account.
func (c *RPCClient) TokenBalance(ctx context.Context, token common.Address, account common.Address) (*big.Int, error) {
	data, err := erc20.BalanceOfCalldata(account)
	if err != nil {
		return nil, err
	}

	var resp []byte
	err = c.do(ctx, func(client *ethclient.Client) (err error) {
		resp, err = client.CallContract(ctx, ethereum.CallMsg{To: &token, Data: data}, nil)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to call balanceOf")
	}

	return erc20.UnpackBalance(resp)
}

// PendingNonceAt returns the pending nonce of account.
func (c *RPCClient) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	var nonce uint64
	err := c.do(ctx, func(client *ethclient.Client) (err error) {
		nonce, err = client.PendingNonceAt(ctx, account)
		return err
	})
	if err != nil {
		return 0, errors.Wrap(err, "failed to get pending nonce")
	}

	return nonce, nil
}

// SuggestGasTipCap suggests a priority fee (EIP-1559).
func (c *RPCClient) SuggestGasTipCap(ctx context.Context) (*big.Int, error) {
	var tipCap *big.Int
	err := c.do(ctx, func(client *ethclient.Client) (err error) {
		tipCap, err = client.SuggestGasTipCap(ctx)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to suggest gas tip cap")
	}

	return tipCap, nil
}

// LatestBaseFee returns the base fee of the latest block.
func (c *RPCClient) LatestBaseFee(ctx context.Context) (*big.Int, error) {
	var header *types.Header
	err := c.do(ctx, func(client *ethclient.Client) (err error) {
		header, err = client.HeaderByNumber(ctx, nil)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get latest header")
	}
	if header.BaseFee == nil {
		return nil, ErrBaseFeeUnavailable
	}

	return header.BaseFee, nil
}

// EstimateGas estimates the gas a call needs.
func (c *RPCClient) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	var gas uint64
	err := c.do(ctx, func(client *ethclient.Client) (err error) {
		gas, err = client.EstimateGas(ctx, msg)
		return err
	})
	if err != nil {
		return 0, errors.Wrap(err, "failed to estimate gas")
	}

	return gas, nil
}

// SendRawTransaction decodes and broadcasts a signed transaction.
func (c *RPCClient) SendRawTransaction(ctx context.Context, raw []byte) (common.Hash, error) {
	tx := new(types.Transaction)
	if err := tx.UnmarshalBinary(raw); err != nil {
		return common.Hash{}, errors.Wrap(err, "failed to unmarshal signed transaction")
	}

	err := c.do(ctx, func(client *ethclient.Client) error {
		return client.SendTransaction(ctx, tx)
	})
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "failed to send transaction")
	}

	return tx.Hash(), nil
}

// WaitForReceipt polls for the receipt of hash every poll interval.
func (c *RPCClient) WaitForReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := c.receipt(ctx, hash)
		if err == nil {
			return receipt, nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, errors.Wrap(ctxErr, "waiting for receipt")
			}
			return nil, err
		}

		select {
		case <-ctx.Done():
			return nil, errors.Wrap(ctx.Err(), "waiting for receipt")
		case <-ticker.C:
		}
	}
}

func (c *RPCClient) receipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	var receipt *types.Receipt
	err := c.do(ctx, func(client *ethclient.Client) (err error) {
		receipt, err = client.TransactionReceipt(ctx, hash)
		return err
	})
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return nil, ethereum.NotFound
		}
		return nil, errors.Wrap(err, "failed to get transaction receipt")
	}

	return receipt, nil
}

// do runs call against the current node. A node is only health checked after
// call failed on it: a healthy node means the error is the call's own, an
// unhealthy one moves on to the next URL. No lock is held during network calls.
func (c *RPCClient) do(ctx context.Context, call func(client *ethclient.Client) error) error {
	c.mu.Lock()
	start := c.current
	c.mu.Unlock()

	var lastErr error
	for i := range c.urls {
		if err := ctx.Err(); err != nil {
			return err
		}

		idx := (start + i) % len(c.urls)

		client, err := c.clientAt(ctx, idx)
		if err != nil {
			lastErr = err
			continue
		}

		err = call(client)
		if err == nil || errors.Is(err, ethereum.NotFound) || ctx.Err() != nil {
			c.setCurrent(idx)
			return err
		}

		if _, healthErr := client.ChainID(ctx); healthErr == nil {
			c.setCurrent(idx)
			return err
		}

		log.Warn().
			Str("url", c.urls[idx]).
			Err(err).
			Msg("RPC node failed health check, trying next node")
		lastErr = err
	}

	if lastErr != nil {
		return errors.Wrapf(ErrAllNodesDown, "last error: %v", lastErr)
	}
	return ErrAllNodesDown
}

// clientAt returns the client of URL idx, dialing it when it was unreachable before.
func (c *RPCClient) clientAt(ctx context.Context, idx int) (*ethclient.Client, error) {
	c.mu.Lock()
	client := c.clients[idx]
	c.mu.Unlock()

	if client != nil {
		return client, nil
	}

	client, err := ethclient.DialContext(ctx, c.urls[idx])
	if err != nil {
		return nil, errors.Wrapf(err, "failed to dial %s", c.urls[idx])
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing := c.clients[idx]; existing != nil {
		client.Close()
		return existing, nil
	}
	c.clients[idx] = client

	return client, nil
}

func (c *RPCClient) setCurrent(idx int) {
	c.mu.Lock()
	c.current = idx
	c.mu.Unlock()
}
