package sqlite

// Schema DDL. Each row holds the raw serialized value for one key.
const (
	createCollections = `CREATE TABLE IF NOT EXISTS collections (
    collection_key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`
)

// Statements used by the backend.
const (
	stmtGet    = `SELECT value FROM collections WHERE collection_key = ?`
	stmtUpsert = `INSERT INTO collections (collection_key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(collection_key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	stmtKeys = `SELECT collection_key FROM collections ORDER BY collection_key`
)

// schemaDDL lists all statements executed on Attach, in order.
var schemaDDL = []string{
	createCollections,
}
