package keystore

import (
	"crypto/subtle"
	"encoding/hex"

	"github.com/pkg/errors"
	"golang.org/x/crypto/scrypt"
)

const minDerivedKeyLength = 2 * aesKeyLength

// Decrypt opens f with password and returns the mnemonic.
func Decrypt(f *File, password string) (string, error) {
	if f.Version != Version || f.Crypto.Cipher != CipherName || f.Crypto.KDF != KDFName {
		return "", errors.Wrapf(ErrUnsupported, "version %d, cipher %q, kdf %q", f.Version, f.Crypto.Cipher, f.Crypto.KDF)
	}
	if f.Crypto.KDFParams.DKLen < minDerivedKeyLength {
		return "", errors.Wrapf(ErrUnsupported, "derived key length %d", f.Crypto.KDFParams.DKLen)
	}

	salt, err := hex.DecodeString(f.Crypto.KDFParams.Salt)
	if err != nil {
		return "", errors.Wrap(err, "failed to decode salt")
	}

	//nolint:varnamelen
	iv, err := hex.DecodeString(f.Crypto.CipherParams.IV)
	if err != nil {
		return "", errors.Wrap(err, "failed to decode IV")
	}

	ciphertext, err := hex.DecodeString(f.Crypto.Ciphertext)
	if err != nil {
		return "", errors.Wrap(err, "failed to decode ciphertext")
	}

	expectedMAC, err := hex.DecodeString(f.Crypto.MAC)
	if err != nil {
		return "", errors.Wrap(err, "failed to decode MAC")
	}

	p := f.Crypto.KDFParams
	derivedKey, err := scrypt.Key([]byte(password), salt, p.N, p.R, p.P, p.DKLen)
	if err != nil {
		return "", errors.Wrap(err, "failed to derive key")
	}

	if subtle.ConstantTimeCompare(mac(derivedKey, ciphertext), expectedMAC) != 1 {
		return "", ErrInvalidPassword
	}

	plaintext, err := aes128CTR(derivedKey[:aesKeyLength], iv, ciphertext)
	if err != nil {
		return "", errors.Wrap(err, "failed to decrypt mnemonic")
	}

	return string(plaintext), nil
}
