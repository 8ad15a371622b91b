// Package aligner orchestrates a scoring run: load the reference corpus,
// aggregate document frequencies, transform both sides with the reference
// DF table, and stream candidates through the worker pool.
package aligner

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"time"

	"github.com/bitextools/docalign/internal/dedupe"
	"github.com/bitextools/docalign/internal/document"
	"github.com/bitextools/docalign/internal/pool"
	"github.com/bitextools/docalign/internal/report"
	"github.com/bitextools/docalign/internal/stream"
	"github.com/bitextools/docalign/internal/tfidf"
	"github.com/bitextools/docalign/pkg/config"
	"github.com/bitextools/docalign/pkg/errors"
	"github.com/bitextools/docalign/pkg/metrics"
)

// Aligner scores a candidate stream against a reference corpus.
// The Dedupe filter and Metrics collector are optional.
type Aligner struct {
	cfg      config.AlignerConfig
	reporter report.Reporter
	dedupe   *dedupe.Filter
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func New(cfg config.AlignerConfig, reporter report.Reporter, filter *dedupe.Filter, m *metrics.Metrics) *Aligner {
	return &Aligner{
		cfg:      cfg,
		reporter: reporter,
		dedupe:   filter,
		metrics:  m,
		logger:   slog.Default().With("component", "aligner"),
	}
}

// Run executes one full alignment pass and returns the number of
// qualifying pairs. Every failure path still drains and joins the worker
// pool before returning, so no goroutines outlive Run.
func (a *Aligner) Run(ctx context.Context, refs, cands stream.Source) (uint64, error) {
	corpus, df, err := a.loadReferences(ctx, refs)
	if err != nil {
		return 0, err
	}

	workers := a.cfg.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	workerPool := pool.New(corpus, a.cfg.Threshold, workers, a.cfg.QueueCapacity(), a.reporter, a.metrics)
	workerPool.Start()

	produceErr := a.produce(ctx, cands, workerPool, len(corpus), df)

	// Shutdown protocol: one terminator per worker, then join. Runs on the
	// error paths too, so a failed run never leaks workers.
	workerPool.Stop()

	hits := a.reporter.Hits()
	if produceErr != nil {
		return hits, produceErr
	}
	a.logger.Info("alignment finished", "hits", hits)
	return hits, nil
}

// loadReferences materializes the reference corpus, aggregates the DF
// table, and transforms every document into its sparse score vector.
// Candidates never contribute to the DF table.
func (a *Aligner) loadReferences(ctx context.Context, refs stream.Source) ([]*document.ScoredDocument, tfidf.DFTable, error) {
	var raw []*document.Document
	for {
		doc, err := refs.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		raw = append(raw, doc)
		if a.metrics != nil {
			a.metrics.DocumentsReadTotal.WithLabelValues("reference").Inc()
		}
	}
	if len(raw) == 0 {
		return nil, nil, errors.New(errors.ErrInvalidInput, errors.ExitUsage, "reference corpus is empty")
	}
	a.logger.Info("read reference corpus", "documents", len(raw))

	df := tfidf.AggregateDF(raw)
	a.logger.Info("aggregated document frequencies", "terms", len(df))

	corpus := make([]*document.ScoredDocument, len(raw))
	for i, doc := range raw {
		scored, err := a.transform(doc, len(raw), df)
		if err != nil {
			return nil, nil, err
		}
		corpus[i] = scored
		raw[i] = nil
	}
	a.logger.Info("transformed reference corpus")
	return corpus, df, nil
}

// produce streams candidates into the pool until the source is exhausted
// or a document fails. An empty vocabulary and an empty word vector are
// both fatal for the run, never silent skips.
func (a *Aligner) produce(ctx context.Context, cands stream.Source, workerPool *pool.Pool, totalDocs int, df tfidf.DFTable) error {
	read := 0
	for {
		doc, err := cands.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		read++
		if a.metrics != nil {
			a.metrics.DocumentsReadTotal.WithLabelValues("candidate").Inc()
		}

		if len(doc.Vocab) == 0 {
			if a.metrics != nil {
				a.metrics.DegenerateTotal.Inc()
			}
			return errors.Newf(errors.ErrEmptyVocab, errors.ExitEmptyVocab,
				"candidate %d (%s)", doc.ID, doc.URL)
		}

		if a.dedupe != nil && a.dedupe.Seen(ctx, doc.URL) {
			a.logger.Debug("skipping already-scored candidate", "url", doc.URL)
			continue
		}

		scored, err := a.transform(doc, totalDocs, df)
		if err != nil {
			return err
		}
		workerPool.Submit(scored)
	}
	a.logger.Info("candidate stream exhausted", "documents", read)
	return nil
}

func (a *Aligner) transform(doc *document.Document, totalDocs int, df tfidf.DFTable) (*document.ScoredDocument, error) {
	start := time.Now()
	scored, err := tfidf.Transform(doc, totalDocs, df)
	if a.metrics != nil {
		a.metrics.TransformDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			a.metrics.DegenerateTotal.Inc()
		}
	}
	return scored, err
}
