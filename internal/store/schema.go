// ABOUTME: SQLite schema for the partitioned corpus store
// ABOUTME: Passages carry hierarchical metadata and an embedding BLOB
package store

// Schema creates the passages table. Partition separates the regulations
// corpus from the procedural-instructions corpus; category scopes
// passages to one of the fixed topical categories.
const Schema = `
CREATE TABLE IF NOT EXISTS passages (
	id           TEXT PRIMARY KEY,
	partition    TEXT NOT NULL,
	content      TEXT NOT NULL,
	source       TEXT NOT NULL DEFAULT '',
	full_context TEXT NOT NULL DEFAULT '',
	category     TEXT NOT NULL DEFAULT '',
	doc_type     TEXT NOT NULL DEFAULT '',
	page         INTEGER NOT NULL DEFAULT 0,
	vector       BLOB NOT NULL,
	created_at   TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_passages_partition ON passages(partition);
CREATE INDEX IF NOT EXISTS idx_passages_category ON passages(partition, category);
`
