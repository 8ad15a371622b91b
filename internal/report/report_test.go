package report

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitextools/docalign/internal/document"
)

func doc(url string) *document.ScoredDocument {
	return &document.ScoredDocument{URL: url}
}

func TestCounterConcurrentIncrements(t *testing.T) {
	c := NewCounter()
	const goroutines = 8
	const perGoroutine = 1000

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				c.Report(0.9, doc("a"), doc("b"))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(goroutines*perGoroutine), c.Hits())
}

func TestWriterFormat(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	w.Report(0.75, doc("http://ref"), doc("http://cand"))

	assert.Equal(t, "0.75\thttp://ref\thttp://cand\n", buf.String())
	assert.Equal(t, uint64(1), w.Hits())
}

func TestWriterLinesDoNotInterleave(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				w.Report(0.8, doc(fmt.Sprintf("ref-%d", n)), doc(fmt.Sprintf("cand-%d", i)))
			}
		}(g)
	}
	wg.Wait()

	lines := bytes.Split(bytes.TrimRight(buf.Bytes(), "\n"), []byte("\n"))
	assert.Len(t, lines, 400)
	for _, line := range lines {
		assert.Equal(t, 3, len(bytes.Split(line, []byte("\t"))), "malformed line %q", line)
	}
}

func TestMultiFansOut(t *testing.T) {
	a := NewCounter()
	b := NewCounter()
	m := Multi{a, b}

	m.Report(0.9, doc("x"), doc("y"))
	m.Report(0.9, doc("x"), doc("z"))

	assert.Equal(t, uint64(2), a.Hits())
	assert.Equal(t, uint64(2), b.Hits())
	assert.Equal(t, uint64(2), m.Hits())
}

func TestMultiEmpty(t *testing.T) {
	var m Multi
	assert.Zero(t, m.Hits())
}
