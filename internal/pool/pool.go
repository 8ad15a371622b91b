// Package pool runs the fixed set of scoring workers. Each worker pulls one
// candidate at a time from the bounded queue and scores it against every
// reference document. Shutdown is sentinel-based: the orchestrator pushes
// exactly one terminator per worker, and each worker exits after consuming
// exactly one.
package pool

import (
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bitextools/docalign/internal/align"
	"github.com/bitextools/docalign/internal/document"
	"github.com/bitextools/docalign/internal/queue"
	"github.com/bitextools/docalign/internal/report"
	"github.com/bitextools/docalign/pkg/metrics"
)

// Item is one unit of work on the queue. Terminate is an explicit flag
// rather than an empty word vector, so a shutdown signal can never be
// confused with a degenerate document.
type Item struct {
	Doc       *document.ScoredDocument
	Terminate bool
}

// Pool scores queued candidates against an immutable reference corpus.
// The corpus and threshold are fixed at construction; workers share only
// the queue and the reporter.
type Pool struct {
	refs      []*document.ScoredDocument
	threshold float64
	queue     *queue.Bounded[Item]
	reporter  report.Reporter
	metrics   *metrics.Metrics
	workers   int
	group     *errgroup.Group
	logger    *slog.Logger
}

// New creates a Pool with the given worker count and queue capacity.
// The metrics collector may be nil.
func New(refs []*document.ScoredDocument, threshold float64, workers, capacity int, reporter report.Reporter, m *metrics.Metrics) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{
		refs:      refs,
		threshold: threshold,
		queue:     queue.NewBounded[Item](capacity),
		reporter:  reporter,
		metrics:   m,
		workers:   workers,
		logger:    slog.Default().With("component", "pool"),
	}
}

// Start launches the workers. It must be called exactly once, before any
// Submit.
func (p *Pool) Start() {
	p.group = &errgroup.Group{}
	for n := 0; n < p.workers; n++ {
		id := n
		p.group.Go(func() error {
			p.run(id)
			return nil
		})
	}
	p.logger.Info("worker pool started",
		"workers", p.workers,
		"queue_capacity", p.queue.Cap(),
		"reference_documents", len(p.refs),
	)
}

// Submit queues one candidate document, blocking while the queue is full.
func (p *Pool) Submit(doc *document.ScoredDocument) {
	p.queue.Push(Item{Doc: doc})
	if p.metrics != nil {
		p.metrics.QueueDepth.Set(float64(p.queue.Len()))
	}
}

// Stop pushes one terminator per worker and waits for all of them to exit.
// It is safe to call on every shutdown path, including after a producer
// error: each worker consumes exactly one terminator before exiting, so the
// pool always drains and joins.
func (p *Pool) Stop() {
	for n := 0; n < p.workers; n++ {
		p.queue.Push(Item{Terminate: true})
	}
	_ = p.group.Wait()
	p.logger.Info("worker pool stopped", "hits", p.reporter.Hits())
}

func (p *Pool) run(id int) {
	logger := p.logger.With("worker", id)
	logger.Debug("worker started")
	for {
		item := p.queue.Pop()
		if p.metrics != nil {
			p.metrics.QueueDepth.Set(float64(p.queue.Len()))
		}
		if item.Terminate {
			logger.Debug("worker stopping")
			return
		}
		p.score(item.Doc)
	}
}

func (p *Pool) score(cand *document.ScoredDocument) {
	start := time.Now()
	for _, ref := range p.refs {
		score := align.Score(ref, cand)
		if score >= p.threshold {
			p.reporter.Report(score, ref, cand)
			if p.metrics != nil {
				p.metrics.HitsTotal.Inc()
			}
		}
	}
	if p.metrics != nil {
		p.metrics.PairsScoredTotal.Add(float64(len(p.refs)))
		p.metrics.ScoreLatency.Observe(time.Since(start).Seconds())
	}
}
