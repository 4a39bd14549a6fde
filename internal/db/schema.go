package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema. All durable rows are scoped by
// user_id; the shipments.item_id column references inventory rows of the
// same user but is not enforced by the database.
const schema = `
CREATE TABLE IF NOT EXISTS accounts (
    id          INTEGER PRIMARY KEY,
    email       TEXT NOT NULL UNIQUE,
    secret_hash TEXT NOT NULL,
    created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS inventory (
    user_id      TEXT NOT NULL,
    item_id      TEXT NOT NULL,
    name         TEXT NOT NULL,
    quantity     INTEGER NOT NULL CHECK (quantity >= 0),
    location     TEXT NOT NULL DEFAULT '',
    last_updated DATETIME NOT NULL,
    PRIMARY KEY (user_id, item_id)
);

CREATE TABLE IF NOT EXISTS shipments (
    user_id        TEXT NOT NULL,
    shipment_id    TEXT NOT NULL,
    item_id        TEXT NOT NULL,
    quantity       INTEGER NOT NULL CHECK (quantity > 0),
    destination    TEXT NOT NULL DEFAULT '',
    status         TEXT NOT NULL DEFAULT 'PENDING',
    scheduled_date DATETIME NOT NULL,
    PRIMARY KEY (user_id, shipment_id)
);

CREATE INDEX IF NOT EXISTS idx_shipments_user_status
    ON shipments(user_id, status);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
