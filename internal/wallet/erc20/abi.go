// Package erc20 encodes and decodes the ERC-20 calls the wallet makes.
package erc20

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

const abiJSON = `[
	{"type":"function","name":"transfer","stateMutability":"nonpayable",
	 "inputs":[{"name":"to","type":"address"},{"name":"value","type":"uint256"}],
	 "outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"balanceOf","stateMutability":"view",
	 "inputs":[{"name":"account","type":"address"}],
	 "outputs":[{"name":"balance","type":"uint256"}]},
	{"type":"function","name":"decimals","stateMutability":"view",
	 "inputs":[],"outputs":[{"name":"","type":"uint8"}]},
	{"type":"function","name":"symbol","stateMutability":"view",
	 "inputs":[],"outputs":[{"name":"","type":"string"}]}
]`

const (
	MethodTransfer  = "transfer"
	MethodBalanceOf = "balanceOf"
)

// ABI is the subset of the ERC-20 interface used by the wallet.
var ABI = mustParseABI(abiJSON)

func mustParseABI(s string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(s))
	if err != nil {
		panic(err)
	}
	return parsed
}

// TransferCalldata encodes transfer(to, amount).
func TransferCalldata(to common.Address, amount *big.Int) ([]byte, error) {
	data, err := ABI.Pack(MethodTransfer, to, amount)
	if err != nil {
		return nil, errors.Wrap(err, "failed to pack transfer call")
	}
	return data, nil
}

// BalanceOfCalldata encodes balanceOf(account).
func BalanceOfCalldata(account common.Address) ([]byte, error) {
	data, err := ABI.Pack(MethodBalanceOf, account)
	if err != nil {
		return nil, errors.Wrap(err, "failed to pack balanceOf call")
	}
	return data, nil
}

// UnpackBalance decodes the return data of balanceOf.
func UnpackBalance(data []byte) (*big.Int, error) {
	values, err := ABI.Unpack(MethodBalanceOf, data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to unpack balanceOf result")
	}
	if len(values) != 1 {
		return nil, errors.Errorf("expected 1 return value, got %d", len(values))
	}

	balance, ok := values[0].(*big.Int)
	if !ok {
		return nil, errors.New("balanceOf did not return an integer")
	}
	return balance, nil
}
