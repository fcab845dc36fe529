// ABOUTME: Partitioned SQLite corpus store with embedding-based search
// ABOUTME: Uses modernc.org/sqlite and brute-force cosine ranking
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/abzhanov/npa-consultant/internal/models"
	_ "modernc.org/sqlite"
)

// Partition identifies an independently queryable subset of the corpus.
type Partition string

const (
	// PartitionRegulations holds passages from normative legal acts.
	PartitionRegulations Partition = "regulations"
	// PartitionInstructions holds passages from procedural instructions.
	PartitionInstructions Partition = "instructions"
)

// Entry is a passage as supplied by the external ingestion collaborator.
type Entry struct {
	ID       string             `json:"id"`
	Content  string             `json:"content"`
	Metadata models.PassageMeta `json:"metadata"`
}

// Embedder converts texts to vectors for indexing and search.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float64, error)
}

// Store is the uniform query interface over the corpus partitions. It is
// safe for concurrent readers; a concurrent rebuild is not synchronized
// with in-flight queries.
type Store struct {
	db       *sql.DB
	embedder Embedder
}

// Open opens or creates the corpus database at path.
func Open(path string, embedder Embedder) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{db: conn, embedder: embedder}
	if err := s.initSchema(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

// OpenInMemory creates an in-memory corpus store (for testing).
func OpenInMemory(embedder Embedder) (*Store, error) {
	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}

	s := &Store{db: conn, embedder: embedder}
	if err := s.initSchema(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	_, err := s.db.Exec(Schema)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add embeds and stores a batch of passages in the given partition.
// Existing passages with the same ID are replaced.
func (s *Store) Add(ctx context.Context, partition Partition, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	texts := make([]string, len(entries))
	for i, e := range entries {
		texts[i] = e.Content
	}
	vectors, err := s.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return fmt.Errorf("embedding %d passages: %w", len(entries), err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO passages
		(id, partition, content, source, full_context, category, doc_type, page, vector, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for i, e := range entries {
		m := e.Metadata
		_, err := stmt.ExecContext(ctx, e.ID, string(partition), e.Content,
			m.Source, m.FullContext, m.Category, m.Type, m.Page,
			vectorToBlob(vectors[i]), now)
		if err != nil {
			return fmt.Errorf("insert passage %s: %w", e.ID, err)
		}
	}

	return tx.Commit()
}

// Query searches a partition for the topN passages closest to text.
// An empty categoryFilter searches the whole partition. Results are
// sorted by ascending distance.
func (s *Store) Query(ctx context.Context, partition Partition, text string, topN int, categoryFilter string) ([]models.ContextItem, error) {
	vectors, err := s.embedder.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	queryVec := vectors[0]

	q := `SELECT content, source, full_context, category, doc_type, page, vector
	      FROM passages WHERE partition = ?`
	args := []any{string(partition)}
	if categoryFilter != "" {
		q += ` AND category = ?`
		args = append(args, categoryFilter)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query passages: %w", err)
	}
	defer rows.Close()

	var results []models.ContextItem
	for rows.Next() {
		var item models.ContextItem
		var blob []byte
		if err := rows.Scan(&item.Content, &item.Metadata.Source, &item.Metadata.FullContext,
			&item.Metadata.Category, &item.Metadata.Type, &item.Metadata.Page, &blob); err != nil {
			return nil, fmt.Errorf("scan passage: %w", err)
		}

		vec, err := blobToVector(blob)
		if err != nil {
			continue
		}
		dist := cosineDistance(queryVec, vec)
		item.Distance = &dist
		results = append(results, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate passages: %w", err)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return *results[i].Distance < *results[j].Distance
	})
	if len(results) > topN {
		results = results[:topN]
	}
	return results, nil
}

// Get returns up to limit stored entries from a partition, for the
// external ingestion and evaluation collaborators.
func (s *Store) Get(ctx context.Context, partition Partition, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, content, source, full_context, category, doc_type, page
		FROM passages WHERE partition = ? ORDER BY id LIMIT ?`,
		string(partition), limit)
	if err != nil {
		return nil, fmt.Errorf("get passages: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Content, &e.Metadata.Source, &e.Metadata.FullContext,
			&e.Metadata.Category, &e.Metadata.Type, &e.Metadata.Page); err != nil {
			return nil, fmt.Errorf("scan passage: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the number of passages stored in a partition.
func (s *Store) Count(ctx context.Context, partition Partition) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM passages WHERE partition = ?`, string(partition)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count passages: %w", err)
	}
	return n, nil
}
