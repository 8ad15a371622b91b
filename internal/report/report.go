// Package report collects qualifying pairs from the scoring workers.
// Reporters are the only mutable state workers share besides the queue, so
// every implementation must be safe for concurrent use.
package report

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/bitextools/docalign/internal/document"
)

// Reporter receives every (reference, candidate) pair whose score met the
// threshold. Implementations are called concurrently from all workers.
type Reporter interface {
	Report(score float64, ref, cand *document.ScoredDocument)
	// Hits returns the number of pairs reported so far.
	Hits() uint64
}

// Counter counts qualifying pairs with an atomic increment.
type Counter struct {
	hits atomic.Uint64
}

func NewCounter() *Counter {
	return &Counter{}
}

func (c *Counter) Report(score float64, ref, cand *document.ScoredDocument) {
	c.hits.Add(1)
}

func (c *Counter) Hits() uint64 {
	return c.hits.Load()
}

// Writer prints one tab-separated line per qualifying pair:
// score, reference URL, candidate URL. A mutex keeps lines from
// interleaving across workers.
type Writer struct {
	mu   sync.Mutex
	out  io.Writer
	hits atomic.Uint64
}

func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

func (w *Writer) Report(score float64, ref, cand *document.ScoredDocument) {
	w.hits.Add(1)
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintf(w.out, "%g\t%s\t%s\n", score, ref.URL, cand.URL)
}

func (w *Writer) Hits() uint64 {
	return w.hits.Load()
}

// Multi fans one report out to several reporters. Hits comes from the first.
type Multi []Reporter

func (m Multi) Report(score float64, ref, cand *document.ScoredDocument) {
	for _, r := range m {
		r.Report(score, ref, cand)
	}
}

func (m Multi) Hits() uint64 {
	if len(m) == 0 {
		return 0
	}
	return m[0].Hits()
}
