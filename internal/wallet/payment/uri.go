package payment

import (
	"fmt"
	"math/big"
	"net/url"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github/chapool/child-wallet/internal/wallet/address"
)

const (
	schemePrefix     = "ethereum:"
	schemeSlashes    = "//"
	actionTransfer   = "transfer"
	maxAmountBitLen  = 256
	chainIDSeparator = "@"
)

// BuildTransferURI encodes a transfer request. Addresses are written checksummed.
func BuildTransferURI(token, receiver common.Address, rawAmount string) string {
	return fmt.Sprintf("%s%s/%s?%s=%s&%s=%s",
		schemePrefix, address.ChecksumHex(token), actionTransfer,
		FieldReceiver, address.ChecksumHex(receiver),
		FieldAmount, rawAmount)
}

// ParseTransferIntent decodes and validates a scanned payload. The token must equal allowedToken.
func ParseTransferIntent(payload string, allowedToken common.Address) (*TransferIntent, error) {
	payload = strings.TrimSpace(payload)

	rest, ok := strings.CutPrefix(payload, schemePrefix)
	if !ok {
		return nil, errors.Wrap(ErrMalformedPayload, "missing ethereum: scheme")
	}
	rest = strings.TrimPrefix(rest, schemeSlashes)

	path, query, ok := strings.Cut(rest, "?")
	if !ok || path == "" || query == "" {
		return nil, errors.Wrap(ErrMalformedPayload, "expected {token}/transfer?{query}")
	}

	target, action, ok := strings.Cut(path, "/")
	if !ok || action != actionTransfer {
		return nil, errors.Wrapf(ErrMalformedPayload, "unsupported action %q", action)
	}

	tokenRaw, chainID, err := splitChainID(target)
	if err != nil {
		return nil, err
	}

	values, err := url.ParseQuery(query)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedPayload, "invalid query: %v", err)
	}

	receiverRaw := values.Get(FieldReceiver)
	if receiverRaw == "" {
		return nil, &FieldError{Field: FieldReceiver, Err: ErrMissingField}
	}
	amountRaw := values.Get(FieldAmount)
	if amountRaw == "" {
		return nil, &FieldError{Field: FieldAmount, Err: ErrMissingField}
	}

	token, err := address.ParseAddress(tokenRaw)
	if err != nil {
		return nil, &FieldError{Field: FieldToken, Err: ErrInvalidAddress}
	}
	receiver, err := address.ParseAddress(receiverRaw)
	if err != nil {
		return nil, &FieldError{Field: FieldReceiver, Err: ErrInvalidAddress}
	}

	amount, err := parseAmount(amountRaw)
	if err != nil {
		return nil, err
	}

	if token != allowedToken {
		return nil, errors.Wrapf(ErrUnauthorizedToken, "got %s, allowed %s", address.ChecksumHex(token), address.ChecksumHex(allowedToken))
	}

	return &TransferIntent{
		Token:     token,
		Receiver:  receiver,
		RawAmount: amountRaw,
		Amount:    amount,
		ChainID:   chainID,
	}, nil
}

// splitChainID separates an optional @chainId suffix from the token segment.
func splitChainID(target string) (string, uint64, error) {
	tokenRaw, chainRaw, ok := strings.Cut(target, chainIDSeparator)
	if !ok {
		return target, 0, nil
	}

	chainID, err := strconv.ParseUint(chainRaw, 10, 64)
	if err != nil || chainID == 0 {
		return "", 0, errors.Wrapf(ErrMalformedPayload, "invalid chain id %q", chainRaw)
	}

	return tokenRaw, chainID, nil
}

// parseAmount accepts only base-10 digits of a non-zero unsigned 256-bit integer.
func parseAmount(raw string) (*big.Int, error) {
	for _, r := range raw {
		if r < '0' || r > '9' {
			return nil, &FieldError{Field: FieldAmount, Err: ErrInvalidAmount}
		}
	}

	amount, ok := new(big.Int).SetString(raw, 10)
	if !ok || amount.BitLen() > maxAmountBitLen || amount.Sign() == 0 {
		return nil, &FieldError{Field: FieldAmount, Err: ErrInvalidAmount}
	}

	return amount, nil
}
