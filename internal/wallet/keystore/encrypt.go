package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/scrypt"
)

const (
	saltLength = 32
	ivLength   = aes.BlockSize
	// first half of the derived key encrypts, second half authenticates
	aesKeyLength = 16
)

// Encrypt seals mnemonic under password.
//
//nolint:varnamelen // iv is a common abbreviation for initialization vector
func Encrypt(mnemonic string, password string, params ScryptParams) (*File, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, errors.Wrap(err, "failed to generate salt")
	}

	iv := make([]byte, ivLength)
	if _, err := rand.Read(iv); err != nil {
		return nil, errors.Wrap(err, "failed to generate IV")
	}

	derivedKey, err := scrypt.Key([]byte(password), salt, params.N, params.R, params.P, params.DKLen)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive key")
	}

	ciphertext, err := aes128CTR(derivedKey[:aesKeyLength], iv, []byte(mnemonic))
	if err != nil {
		return nil, errors.Wrap(err, "failed to encrypt mnemonic")
	}

	return &File{
		Version: Version,
		ID:      uuid.NewString(),
		Crypto: Crypto{
			Ciphertext:   hex.EncodeToString(ciphertext),
			CipherParams: CipherParams{IV: hex.EncodeToString(iv)},
			Cipher:       CipherName,
			KDF:          KDFName,
			KDFParams: KDFParams{
				DKLen: params.DKLen,
				Salt:  hex.EncodeToString(salt),
				N:     params.N,
				R:     params.R,
				P:     params.P,
			},
			MAC: hex.EncodeToString(mac(derivedKey, ciphertext)),
		},
	}, nil
}

// aes128CTR is its own inverse.
//
//nolint:varnamelen
func aes128CTR(key []byte, iv []byte, in []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create cipher")
	}

	out := make([]byte, len(in))
	cipher.NewCTR(block, iv).XORKeyStream(out, in)

	return out, nil
}

// mac is Keccak-256(derivedKey[16:32] || ciphertext), as in geth's keystore.
func mac(derivedKey []byte, ciphertext []byte) []byte {
	return crypto.Keccak256(derivedKey[aesKeyLength:2*aesKeyLength], ciphertext)
}
