package benchmark

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/bitextools/docalign/internal/align"
	"github.com/bitextools/docalign/internal/document"
)

func randomVector(rng *rand.Rand, terms int) *document.ScoredDocument {
	seen := make(map[document.TermHash]struct{}, terms)
	vec := make([]document.WordScore, 0, terms)
	for len(vec) < terms {
		hash := document.TermHash(rng.Uint64() % uint64(terms*8))
		if _, dup := seen[hash]; dup {
			continue
		}
		seen[hash] = struct{}{}
		vec = append(vec, document.WordScore{Hash: hash, Score: rng.Float64()})
	}
	sort.Slice(vec, func(i, j int) bool { return vec[i].Hash < vec[j].Hash })
	return &document.ScoredDocument{WordVec: vec}
}

func BenchmarkScore(b *testing.B) {
	sizes := []int{16, 256, 4096}
	for _, size := range sizes {
		rng := rand.New(rand.NewSource(42))
		left := randomVector(rng, size)
		right := randomVector(rng, size)
		b.Run(fmt.Sprintf("terms_%d", size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = align.Score(left, right)
			}
		})
	}
}

func BenchmarkScoreAsymmetricSizes(b *testing.B) {
	rng := rand.New(rand.NewSource(42))
	small := randomVector(rng, 32)
	large := randomVector(rng, 8192)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = align.Score(small, large)
	}
}

func BenchmarkScoreParallel(b *testing.B) {
	rng := rand.New(rand.NewSource(42))
	left := randomVector(rng, 1024)
	right := randomVector(rng, 1024)
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = align.Score(left, right)
		}
	})
}
