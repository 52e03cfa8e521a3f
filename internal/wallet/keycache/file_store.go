package keycache

import (
	"context"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

const (
	fileStoreDirPerm  = 0o700
	fileStoreFilePerm = 0o600
)

// fileStore writes one JSON file per owner identity. File names are the
// Keccak-256 of the owner so identities never reach the file system.
type fileStore struct {
	dir string
}

// NewFileStore creates a Store rooted at dir. The directory is created on first write.
//
//nolint:ireturn
func NewFileStore(dir string) Store {
	return &fileStore{dir: dir}
}

func (s *fileStore) path(owner string) string {
	return filepath.Join(s.dir, hex.EncodeToString(crypto.Keccak256([]byte(owner)))+".json")
}

func (s *fileStore) Load(_ context.Context, owner string) ([]byte, error) {
	blob, err := os.ReadFile(s.path(owner))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrRecordNotFound
		}
		return nil, errors.Wrap(err, "failed to read key record file")
	}

	return blob, nil
}

func (s *fileStore) Save(_ context.Context, owner string, blob []byte) error {
	if err := os.MkdirAll(s.dir, fileStoreDirPerm); err != nil {
		return errors.Wrap(err, "failed to create key record directory")
	}

	tmp, err := os.CreateTemp(s.dir, ".record-*")
	if err != nil {
		return errors.Wrap(err, "failed to create temp file")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck

	if _, err := tmp.Write(blob); err != nil {
		tmp.Close()
		return errors.Wrap(err, "failed to write key record")
	}
	if err := tmp.Chmod(fileStoreFilePerm); err != nil {
		tmp.Close()
		return errors.Wrap(err, "failed to chmod key record")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "failed to close key record")
	}

	if err := os.Rename(tmpName, s.path(owner)); err != nil {
		return errors.Wrap(err, "failed to move key record into place")
	}

	return nil
}

func (s *fileStore) Delete(_ context.Context, owner string) error {
	if err := os.Remove(s.path(owner)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Wrap(err, "failed to delete key record")
	}
	return nil
}
