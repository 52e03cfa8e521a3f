package transfer

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
	"github/chapool/child-wallet/internal/config"
	"github/chapool/child-wallet/internal/util"
	"github/chapool/child-wallet/internal/wallet/chain"
	"github/chapool/child-wallet/internal/wallet/ledger"
	"github/chapool/child-wallet/internal/wallet/payment"
	"github/chapool/child-wallet/internal/wallet/session"
	"github/chapool/child-wallet/internal/wallet/signer"
)

const (
	defaultERC20GasLimit = 100000
	eip1559FeeMultiplier = 2
)

type service struct {
	chains   chain.Service
	ledgers  ledger.Provider
	sessions session.Manager
	config   config.Ledger
	observer Observer

	nonces *nonceTracker
}

// NewService creates the transfer executor. observer may be nil.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(
	chains chain.Service,
	ledgers ledger.Provider,
	sessions session.Manager,
	cfg config.Ledger,
	observer Observer,
) Service {
	return &service{
		chains:   chains,
		ledgers:  ledgers,
		sessions: sessions,
		config:   cfg,
		observer: observer,
		nonces:   newNonceTracker(),
	}
}

func (s *service) Prepare(ctx context.Context, sess *session.Session, chainID uint64, payload string) (*Plan, error) {
	if err := s.sessions.Check(sess); err != nil {
		return nil, err
	}

	chainID = s.resolveChainID(chainID)
	token, err := s.chains.AllowedToken(chainID)
	if err != nil {
		return nil, err
	}

	intent, err := payment.ParseTransferIntent(payload, token.Address)
	if err != nil {
		return nil, err
	}
	if intent.ChainID != 0 && intent.ChainID != chainID {
		return nil, errors.Wrapf(ErrChainMismatch, "payload chain %d, requested %d", intent.ChainID, chainID)
	}

	from, err := sess.Identity.Address(ctx)
	if err != nil {
		return nil, err
	}

	client, err := s.ledgers.Client(ctx, chainID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get ledger client")
	}

	nonce, err := client.PendingNonceAt(ctx, from)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get nonce")
	}

	tipCap, err := client.SuggestGasTipCap(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to suggest gas tip cap")
	}

	baseFee, err := client.LatestBaseFee(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get base fee")
	}

	// maxFee = 2 * baseFee + tip
	maxFee := new(big.Int).Add(new(big.Int).Mul(baseFee, big.NewInt(eip1559FeeMultiplier)), tipCap)

	data, err := payment.TransferCalldata(intent)
	if err != nil {
		return nil, err
	}

	to := intent.Token
	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   new(big.Int).SetUint64(chainID),
		Nonce:     nonce,
		GasTipCap: tipCap,
		GasFeeCap: maxFee,
		Gas:       defaultERC20GasLimit,
		To:        &to,
		Value:     big.NewInt(0),
		Data:      data,
	})

	return &Plan{
		ChainID: chainID,
		Intent:  intent,
		Token:   token,
		From:    from,
		Tx:      tx,
	}, nil
}

func (s *service) Execute(ctx context.Context, sess *session.Session, plan *Plan) (*Result, error) {
	log := util.LogFromContext(ctx).With().
		Str("component", "transfer").
		Uint64("chain_id", plan.ChainID).
		Str("from", plan.From.Hex()).
		Logger()

	if err := s.sessions.Check(sess); err != nil {
		s.observe(ResultDiscarded)
		return nil, err
	}

	client, err := s.ledgers.Client(ctx, plan.ChainID)
	if err != nil {
		s.observe(ResultError)
		return nil, errors.Wrap(err, "failed to get ledger client")
	}

	hash, nonce, err := s.broadcast(ctx, sess, client, plan)
	if err != nil {
		if errors.Is(err, session.ErrSessionEnded) {
			log.Info().Msg("Session ended while signing, discarding transfer")
			s.observe(ResultDiscarded)
		} else {
			s.observe(ResultError)
		}
		return nil, err
	}

	log.Info().Str("tx_hash", hash.Hex()).Uint64("nonce", nonce).Msg("Transfer broadcasted")

	waitCtx := ctx
	if s.config.ReceiptTimeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, s.config.ReceiptTimeout)
		defer cancel()
	}

	receipt, err := client.WaitForReceipt(waitCtx, hash)
	if err != nil {
		s.observe(ResultError)
		return nil, errors.Wrapf(err, "failed to wait for receipt of %s", hash.Hex())
	}

	if err := s.sessions.Check(sess); err != nil {
		log.Info().Str("tx_hash", hash.Hex()).Msg("Session ended while waiting for receipt, discarding result")
		s.observe(ResultDiscarded)
		return nil, err
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		s.observe(ResultReverted)
		return nil, errors.Wrapf(ErrTransferReverted, "transaction %s", hash.Hex())
	}

	result := &Result{
		ChainID: plan.ChainID,
		Hash:    hash,
		From:    plan.From,
		Nonce:   nonce,
		GasUsed: receipt.GasUsed,
	}
	if receipt.BlockNumber != nil {
		result.BlockNumber = receipt.BlockNumber.Uint64()
	}

	log.Info().
		Str("tx_hash", hash.Hex()).
		Uint64("block_number", result.BlockNumber).
		Msg("Transfer confirmed")

	s.observe(ResultOK)
	return result, nil
}

// broadcast assigns the nonce, signs and sends plan. Transfers of one sender on
// one chain pass through here one at a time so each gets its own nonce.
func (s *service) broadcast(ctx context.Context, sess *session.Session, client ledger.Client, plan *Plan) (common.Hash, uint64, error) {
	snd, err := s.nonces.acquire(ctx, senderKey{chainID: plan.ChainID, from: plan.From})
	if err != nil {
		return common.Hash{}, 0, err
	}
	defer snd.release()

	pending, err := client.PendingNonceAt(ctx, plan.From)
	if err != nil {
		return common.Hash{}, 0, errors.Wrap(err, "failed to get nonce")
	}
	tx := withNonce(plan.Tx, snd.nonce(pending))

	raw, err := sess.Identity.SignTransaction(ctx, tx, signer.EthereumSerializer(tx.ChainId()))
	if err != nil {
		return common.Hash{}, 0, errors.Wrap(err, "failed to sign transaction")
	}

	// a logout while signing discards the signed transaction
	if err := s.sessions.Check(sess); err != nil {
		return common.Hash{}, 0, err
	}

	hash, err := client.SendRawTransaction(ctx, raw)
	if err != nil {
		return common.Hash{}, 0, errors.Wrap(err, "failed to broadcast transaction")
	}
	snd.broadcasted(tx.Nonce())

	return hash, tx.Nonce(), nil
}

func (s *service) Transfer(ctx context.Context, sess *session.Session, chainID uint64, payload string) (*Result, error) {
	plan, err := s.Prepare(ctx, sess, chainID, payload)
	if err != nil {
		return nil, err
	}

	return s.Execute(ctx, sess, plan)
}

func (s *service) Balances(ctx context.Context, sess *session.Session, chainID uint64) (*Balances, error) {
	if err := s.sessions.Check(sess); err != nil {
		return nil, err
	}

	chainID = s.resolveChainID(chainID)
	c, err := s.chains.GetChain(chainID)
	if err != nil {
		return nil, err
	}

	owner, err := sess.Identity.Address(ctx)
	if err != nil {
		return nil, err
	}

	client, err := s.ledgers.Client(ctx, chainID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get ledger client")
	}

	native, err := client.BalanceAt(ctx, owner)
	if err != nil {
		return nil, err
	}

	balances := &Balances{
		ChainID:      chainID,
		Address:      owner,
		Native:       native,
		NativeSymbol: c.NativeSymbol,
	}

	if c.Token != nil {
		tokenBalance, err := client.TokenBalance(ctx, c.Token.Address, owner)
		if err != nil {
			return nil, err
		}
		balances.Token = tokenBalance
		balances.TokenAddress = c.Token.Address
		balances.TokenSymbol = c.Token.Symbol
		balances.TokenDecimals = c.Token.Decimals
	}

	if err := s.sessions.Check(sess); err != nil {
		return nil, err
	}

	return balances, nil
}

func (s *service) resolveChainID(chainID uint64) uint64 {
	if chainID == 0 {
		return s.chains.DefaultChainID()
	}
	return chainID
}

func (s *service) observe(result string) {
	if s.observer != nil {
		s.observer.ObserveTransfer(result)
	}
}
