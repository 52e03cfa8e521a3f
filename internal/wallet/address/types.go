package address

import "github.com/pkg/errors"

const (
	// CompressedPublicKeyLength is the size of a SEC1 compressed secp256k1 point.
	CompressedPublicKeyLength = 33
	// Length is the size of an EVM address.
	Length = 20
)

var (
	ErrMalformedPublicKey = errors.New("malformed public key")
	ErrInvalidAddress     = errors.New("invalid address")
)
