package report

import (
	"context"
	"database/sql"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/bitextools/docalign/internal/document"
	"github.com/bitextools/docalign/pkg/postgres"
	"github.com/bitextools/docalign/pkg/resilience"
)

const createAlignmentsTable = `
CREATE TABLE IF NOT EXISTS alignments (
	id BIGSERIAL PRIMARY KEY,
	score DOUBLE PRECISION NOT NULL,
	ref_url TEXT NOT NULL,
	cand_url TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const insertAlignment = `INSERT INTO alignments (score, ref_url, cand_url) VALUES ($1, $2, $3)`

type pair struct {
	score   float64
	refURL  string
	candURL string
}

// PairStore persists qualifying pairs to the alignments table. Pairs are
// buffered and flushed in batches so the scoring loop is not gated on one
// round trip per hit.
type PairStore struct {
	client    *postgres.Client
	mu        sync.Mutex
	buffer    []pair
	batchSize int
	hits      atomic.Uint64
	logger    *slog.Logger
}

// NewPairStore creates the alignments table if needed and returns a store
// flushing every batchSize pairs.
func NewPairStore(ctx context.Context, client *postgres.Client, batchSize int) (*PairStore, error) {
	if batchSize <= 0 {
		batchSize = 100
	}
	if _, err := client.DB.ExecContext(ctx, createAlignmentsTable); err != nil {
		return nil, err
	}
	return &PairStore{
		client:    client,
		buffer:    make([]pair, 0, batchSize),
		batchSize: batchSize,
		logger:    slog.Default().With("component", "pair-store"),
	}, nil
}

func (s *PairStore) Report(score float64, ref, cand *document.ScoredDocument) {
	s.hits.Add(1)
	s.mu.Lock()
	s.buffer = append(s.buffer, pair{score: score, refURL: ref.URL, candURL: cand.URL})
	var batch []pair
	if len(s.buffer) >= s.batchSize {
		batch = s.buffer
		s.buffer = make([]pair, 0, s.batchSize)
	}
	s.mu.Unlock()
	if batch != nil {
		s.flush(context.Background(), batch)
	}
}

func (s *PairStore) Hits() uint64 {
	return s.hits.Load()
}

// Flush writes any buffered pairs. Call once after the pool has drained.
func (s *PairStore) Flush(ctx context.Context) error {
	s.mu.Lock()
	batch := s.buffer
	s.buffer = make([]pair, 0, s.batchSize)
	s.mu.Unlock()
	if len(batch) == 0 {
		return nil
	}
	return s.insert(ctx, batch)
}

func (s *PairStore) flush(ctx context.Context, batch []pair) {
	if err := s.insert(ctx, batch); err != nil {
		s.logger.Error("failed to persist alignment batch",
			"batch_size", len(batch),
			"error", err,
		)
	}
}

func (s *PairStore) insert(ctx context.Context, batch []pair) error {
	return resilience.Retry(ctx, "insert-alignments", resilience.RetryConfig{}, func() error {
		return s.client.InTx(ctx, func(tx *sql.Tx) error {
			stmt, err := tx.PrepareContext(ctx, insertAlignment)
			if err != nil {
				return err
			}
			defer stmt.Close()
			for _, p := range batch {
				if _, err := stmt.ExecContext(ctx, p.score, p.refURL, p.candURL); err != nil {
					return err
				}
			}
			return nil
		})
	})
}
