package benchmark

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/bitextools/docalign/internal/document"
	"github.com/bitextools/docalign/internal/tfidf"
)

func randomCorpus(rng *rand.Rand, docs, termsPerDoc, vocabSize int) []*document.Document {
	corpus := make([]*document.Document, docs)
	for i := range corpus {
		vocab := make(map[document.TermHash]int, termsPerDoc)
		for t := 0; t < termsPerDoc; t++ {
			vocab[document.TermHash(rng.Intn(vocabSize))]++
		}
		corpus[i] = &document.Document{ID: i, Vocab: vocab}
	}
	return corpus
}

func BenchmarkAggregateDF(b *testing.B) {
	for _, docs := range []int{100, 1000} {
		rng := rand.New(rand.NewSource(7))
		corpus := randomCorpus(rng, docs, 500, 50000)
		b.Run(fmt.Sprintf("docs_%d", docs), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = tfidf.AggregateDF(corpus)
			}
		})
	}
}

func BenchmarkTransform(b *testing.B) {
	rng := rand.New(rand.NewSource(7))
	corpus := randomCorpus(rng, 1000, 500, 50000)
	df := tfidf.AggregateDF(corpus)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		vocab := make(map[document.TermHash]int, 500)
		for t := 0; t < 500; t++ {
			vocab[document.TermHash(rng.Intn(50000))]++
		}
		doc := &document.Document{ID: i, Vocab: vocab}
		b.StartTimer()
		_, _ = tfidf.Transform(doc, len(corpus), df)
	}
}
