package keycache

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

// postgresStore keeps blobs in the key_records table
type postgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a Store backed by the key_records table.
//
//nolint:ireturn
func NewPostgresStore(db *sql.DB) Store {
	return &postgresStore{db: db}
}

func (s *postgresStore) Load(ctx context.Context, owner string) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT payload
		FROM key_records
		WHERE principal = $1
	`, owner).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, errors.Wrap(err, "failed to query key record")
	}

	return payload, nil
}

func (s *postgresStore) Save(ctx context.Context, owner string, blob []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO key_records (principal, payload, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (principal)
		DO UPDATE SET payload = EXCLUDED.payload, updated_at = NOW()
	`, owner, string(blob))
	if err != nil {
		return errors.Wrap(err, "failed to upsert key record")
	}

	return nil
}

func (s *postgresStore) Delete(ctx context.Context, owner string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM key_records WHERE principal = $1`, owner); err != nil {
		return errors.Wrap(err, "failed to delete key record")
	}
	return nil
}
