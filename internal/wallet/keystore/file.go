package keystore

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

const fileMode = 0o600

// Save writes f to path, replacing an existing file atomically.
func Save(path string, f *File) error {
	b, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal keystore")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return errors.Wrap(err, "failed to create keystore directory")
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, fileMode); err != nil {
		return errors.Wrap(err, "failed to write keystore")
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(err, "failed to move keystore into place")
	}

	return nil
}

// Load reads a keystore file.
func Load(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read keystore %s", path)
	}

	var f File
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, errors.Wrapf(ErrUnsupported, "keystore %s: %v", path, err)
	}

	return &f, nil
}

// LoadMnemonic reads and decrypts the mnemonic stored at path.
func LoadMnemonic(path string, password string) (string, error) {
	f, err := Load(path)
	if err != nil {
		return "", err
	}

	return Decrypt(f, password)
}
