package credstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// PostgresStore keeps entries in the credential_entries table.
// Expired rows are filtered on read and replaced on write.
type PostgresStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db, now: time.Now}
}

func (p *PostgresStore) Get(ctx context.Context, name string, opts Options) (string, error) {
	opts = opts.normalize()
	if err := validate(name, opts, false); err != nil {
		return "", err
	}

	var value string
	err := p.db.QueryRowContext(ctx, `
		SELECT value
		FROM credential_entries
		WHERE path = $1
		  AND name = $2
		  AND expires_at > $3
	`, opts.Path, name, p.now().UTC()).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("credstore: postgres get %s: %w", name, err)
	}

	return value, nil
}

func (p *PostgresStore) Set(ctx context.Context, name, value string, opts Options) error {
	opts = opts.normalize()
	if err := validate(name, opts, true); err != nil {
		return err
	}

	now := p.now().UTC()
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO credential_entries (path, name, value, expires_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (path, name)
		DO UPDATE SET value = EXCLUDED.value,
		              expires_at = EXCLUDED.expires_at,
		              updated_at = EXCLUDED.updated_at
	`, opts.Path, name, value, now.Add(opts.Expires), now)
	if err != nil {
		return fmt.Errorf("credstore: postgres set %s: %w", name, err)
	}

	return nil
}

func (p *PostgresStore) Delete(ctx context.Context, name string, opts Options) error {
	opts = opts.normalize()
	if err := validate(name, opts, false); err != nil {
		return err
	}

	_, err := p.db.ExecContext(ctx, `
		DELETE FROM credential_entries
		WHERE path = $1
		  AND name = $2
	`, opts.Path, name)
	if err != nil {
		return fmt.Errorf("credstore: postgres delete %s: %w", name, err)
	}

	return nil
}
