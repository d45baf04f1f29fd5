package repository

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

// testSchema mirrors migrations/001_init.sql in SQLite dialect. The
// production SQL sticks to portable constructs (? placeholders, SUBSTR,
// ISO date strings), so the same repositories run against both engines.
const testSchema = `
CREATE TABLE users (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    name          TEXT NOT NULL DEFAULT '',
    username      TEXT NOT NULL UNIQUE,
    email         TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL DEFAULT 'viewer',
    is_active     INTEGER NOT NULL DEFAULT 1,
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE sales (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    invoice_id    TEXT NOT NULL UNIQUE,
    invoice_date  TEXT NOT NULL,
    customer_code TEXT NOT NULL DEFAULT '',
    sales_unit    TEXT NOT NULL DEFAULT '',
    material_code TEXT NOT NULL DEFAULT '',
    quantity      REAL NOT NULL DEFAULT 0 CHECK (quantity >= 0),
    unit_price    REAL NOT NULL DEFAULT 0,
    discount      REAL NOT NULL DEFAULT 0,
    item_tax      REAL NOT NULL DEFAULT 0,
    item_gross    REAL NOT NULL DEFAULT 0,
    item_net      REAL NOT NULL DEFAULT 0,
    created_at    DATETIME NOT NULL,
    updated_at    DATETIME NOT NULL
);

CREATE TABLE products (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    product_code TEXT NOT NULL UNIQUE,
    product_name TEXT NOT NULL,
    category     TEXT NOT NULL DEFAULT '',
    unit_price   REAL NOT NULL DEFAULT 0,
    created_at   DATETIME NOT NULL,
    updated_at   DATETIME NOT NULL
);

CREATE TABLE customers (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    customer_code TEXT NOT NULL UNIQUE,
    customer_name TEXT NOT NULL,
    city          TEXT NOT NULL DEFAULT '',
    segment       TEXT NOT NULL DEFAULT '',
    created_at    DATETIME NOT NULL,
    updated_at    DATETIME NOT NULL
);

CREATE TABLE sales_targets (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    sales_unit    TEXT NOT NULL,
    period        TEXT NOT NULL,
    target_amount REAL NOT NULL DEFAULT 0,
    created_at    DATETIME NOT NULL,
    updated_at    DATETIME NOT NULL,
    UNIQUE (sales_unit, period)
);

CREATE TABLE import_sessions (
    id             INTEGER PRIMARY KEY AUTOINCREMENT,
    session_code   TEXT NOT NULL UNIQUE,
    user_id        INTEGER NOT NULL,
    import_type    TEXT NOT NULL,
    filename       TEXT NOT NULL,
    file_path      TEXT NOT NULL,
    total_rows     INTEGER NOT NULL DEFAULT 0,
    imported_count INTEGER NOT NULL DEFAULT 0,
    error_count    INTEGER NOT NULL DEFAULT 0,
    status         TEXT NOT NULL DEFAULT 'queued',
    error_message  TEXT NOT NULL DEFAULT '',
    created_at     DATETIME NOT NULL,
    updated_at     DATETIME NOT NULL
);
`

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Connect("sqlite3", ":memory:")
	require.NoError(t, err)
	// every pool connection would get its own empty in-memory database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(testSchema)
	require.NoError(t, err)

	return db
}
