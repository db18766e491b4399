package db

import (
	"context"
	"database/sql"
)

const credentialMigration = `
CREATE TABLE IF NOT EXISTS credential_entries (
    path text NOT NULL,
    name text NOT NULL,
    value text NOT NULL,
    expires_at timestamptz NOT NULL,
    updated_at timestamptz NOT NULL DEFAULT NOW(),
    PRIMARY KEY (path, name)
);

CREATE INDEX IF NOT EXISTS credential_entries_expires_at_idx
ON credential_entries (expires_at);
`

func RunCredentialMigration(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, credentialMigration)
	return err
}
