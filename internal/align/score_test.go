package align

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitextools/docalign/internal/document"
)

func vec(entries ...document.WordScore) *document.ScoredDocument {
	return &document.ScoredDocument{WordVec: entries}
}

func TestScoreSharedTermsOnly(t *testing.T) {
	a := vec(
		document.WordScore{Hash: 1, Score: 0.5},
		document.WordScore{Hash: 3, Score: 0.2},
		document.WordScore{Hash: 5, Score: 0.9},
	)
	b := vec(
		document.WordScore{Hash: 2, Score: 0.4},
		document.WordScore{Hash: 3, Score: 0.1},
		document.WordScore{Hash: 5, Score: 0.3},
	)

	// Only hashes 3 and 5 overlap: 0.2*0.1 + 0.9*0.3.
	assert.InDelta(t, 0.29, Score(a, b), 1e-12)
}

func TestScoreNoOverlap(t *testing.T) {
	a := vec(
		document.WordScore{Hash: 1, Score: 0.5},
		document.WordScore{Hash: 4, Score: 0.5},
	)
	b := vec(
		document.WordScore{Hash: 2, Score: 0.5},
		document.WordScore{Hash: 3, Score: 0.5},
	)

	assert.Zero(t, Score(a, b))
}

func TestScoreEmptyVector(t *testing.T) {
	a := vec(document.WordScore{Hash: 1, Score: 1})
	empty := vec()

	assert.Zero(t, Score(a, empty))
	assert.Zero(t, Score(empty, a))
	assert.Zero(t, Score(empty, empty))
}

func TestScoreSymmetry(t *testing.T) {
	a := vec(
		document.WordScore{Hash: 10, Score: 0.1},
		document.WordScore{Hash: 20, Score: 0.7},
		document.WordScore{Hash: 99, Score: 0.2},
	)
	b := vec(
		document.WordScore{Hash: 20, Score: 0.3},
		document.WordScore{Hash: 30, Score: 0.4},
		document.WordScore{Hash: 99, Score: 0.8},
	)

	assert.Equal(t, Score(a, b), Score(b, a))
}

func TestScoreSelfSimilarityOfNormalizedVector(t *testing.T) {
	// 3-4-5 triangle normalized to unit length.
	a := vec(
		document.WordScore{Hash: 7, Score: 0.6},
		document.WordScore{Hash: 8, Score: 0.8},
	)

	assert.InDelta(t, 1.0, Score(a, a), 1e-12)
}

func TestScoreInterleavingDoesNotMatter(t *testing.T) {
	shared := []document.WordScore{
		{Hash: 100, Score: 0.25},
		{Hash: 200, Score: 0.5},
	}

	bare := vec(shared...)
	padded := vec(
		document.WordScore{Hash: 1, Score: 0.9},
		document.WordScore{Hash: 100, Score: 0.25},
		document.WordScore{Hash: 150, Score: 0.9},
		document.WordScore{Hash: 200, Score: 0.5},
		document.WordScore{Hash: 999, Score: 0.9},
	)

	want := 0.25*0.25 + 0.5*0.5
	assert.InDelta(t, want, Score(bare, padded), 1e-12)
	assert.True(t, math.Abs(Score(bare, bare)-want) < 1e-12)
}
