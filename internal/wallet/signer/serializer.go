package signer

import (
	"math/big"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
)

// EthereumSerializer serializes legacy (EIP-155), access list (EIP-2930) and
// dynamic fee (EIP-1559) transactions for chainID.
func EthereumSerializer(chainID *big.Int) Serializer {
	if chainID == nil {
		return func(*types.Transaction, *EthSignature) ([]byte, error) {
			return nil, ErrMissingChainID
		}
	}

	txSigner := types.LatestSignerForChainID(chainID)

	return func(tx *types.Transaction, sig *EthSignature) ([]byte, error) {
		if tx.Type() != types.LegacyTxType && tx.ChainId().Cmp(chainID) != 0 {
			return nil, errors.Wrapf(ErrChainIDMismatch, "tx chain %s, signer chain %s", tx.ChainId(), chainID)
		}

		if sig == nil {
			return signingPayload(tx, chainID)
		}

		raw := make([]byte, 0, 65)
		raw = append(raw, sig.R[:]...)
		raw = append(raw, sig.S[:]...)
		raw = append(raw, sig.V-27)

		signed, err := tx.WithSignature(txSigner, raw)
		if err != nil {
			return nil, errors.Wrap(err, "failed to attach signature")
		}

		encoded, err := signed.MarshalBinary()
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal transaction")
		}

		return encoded, nil
	}
}

// signingPayload returns the bytes whose Keccak-256 the ledger expects to be signed.
func signingPayload(tx *types.Transaction, chainID *big.Int) ([]byte, error) {
	var (
		fields []any
		prefix []byte
	)

	switch tx.Type() {
	case types.LegacyTxType:
		fields = []any{tx.Nonce(), tx.GasPrice(), tx.Gas(), tx.To(), tx.Value(), tx.Data(), chainID, uint(0), uint(0)}
	case types.AccessListTxType:
		prefix = []byte{types.AccessListTxType}
		fields = []any{chainID, tx.Nonce(), tx.GasPrice(), tx.Gas(), tx.To(), tx.Value(), tx.Data(), tx.AccessList()}
	case types.DynamicFeeTxType:
		prefix = []byte{types.DynamicFeeTxType}
		fields = []any{chainID, tx.Nonce(), tx.GasTipCap(), tx.GasFeeCap(), tx.Gas(), tx.To(), tx.Value(), tx.Data(), tx.AccessList()}
	default:
		return nil, errors.Wrapf(ErrUnsupportedTransaction, "type %d", tx.Type())
	}

	encoded, err := rlp.EncodeToBytes(fields)
	if err != nil {
		return nil, errors.Wrap(err, "failed to rlp encode signing payload")
	}

	return append(prefix, encoded...), nil
}
