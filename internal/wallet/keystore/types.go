// Package keystore stores the development signer's mnemonic encrypted at rest in
// the Ethereum keystore v3 layout (scrypt KDF, AES-128-CTR, Keccak-256 MAC).
package keystore

import "github.com/pkg/errors"

const (
	Version    = 3
	CipherName = "aes-128-ctr"
	KDFName    = "scrypt"
)

var (
	// ErrInvalidPassword is returned when the MAC does not match, which means a wrong password
	// or a tampered file.
	ErrInvalidPassword = errors.New("invalid keystore password")
	ErrUnsupported     = errors.New("unsupported keystore format")
)

// File is the JSON layout of a keystore v3 file.
//
//nolint:revive
type File struct {
	Version int    `json:"version"`
	ID      string `json:"id"`
	Crypto  Crypto `json:"crypto"`
}

type Crypto struct {
	Ciphertext   string       `json:"ciphertext"`
	CipherParams CipherParams `json:"cipherparams"`
	Cipher       string       `json:"cipher"`
	KDF          string       `json:"kdf"`
	KDFParams    KDFParams    `json:"kdfparams"`
	MAC          string       `json:"mac"`
}

type CipherParams struct {
	IV string `json:"iv"`
}

type KDFParams struct {
	DKLen int    `json:"dklen"`
	Salt  string `json:"salt"`
	N     int    `json:"n"`
	R     int    `json:"r"`
	P     int    `json:"p"`
}

// ScryptParams defines scrypt KDF parameters
type ScryptParams struct {
	DKLen int
	N     int
	R     int
	P     int
}

// StandardScryptParams are the parameters geth uses for new keys.
func StandardScryptParams() ScryptParams {
	return ScryptParams{DKLen: 32, N: 1 << 18, R: 8, P: 1}
}

// LightScryptParams trade strength for speed, e.g. in tests.
func LightScryptParams() ScryptParams {
	return ScryptParams{DKLen: 32, N: 1 << 12, R: 8, P: 6}
}
