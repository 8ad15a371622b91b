package ngram

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractBigrams(t *testing.T) {
	e := Extractor{N: 2}
	vocab := e.Extract("alpha beta gamma")

	// "alpha beta" and "beta gamma".
	assert.Len(t, vocab, 2)
	for _, count := range vocab {
		assert.Equal(t, 1, count)
	}
}

func TestExtractCountsRepeats(t *testing.T) {
	e := Extractor{N: 1}
	vocab := e.Extract("ping pong ping ping")

	assert.Len(t, vocab, 2)
	total := 0
	for _, count := range vocab {
		total += count
	}
	assert.Equal(t, 4, total)
}

func TestExtractDeterministic(t *testing.T) {
	e := Extractor{N: 2}
	a := e.Extract("the quick brown fox")
	b := e.Extract("the quick brown fox")

	assert.Equal(t, a, b)
}

func TestExtractNormalizesCaseAndPunctuation(t *testing.T) {
	e := Extractor{N: 1}
	a := e.Extract("Hello, World!")
	b := e.Extract("hello world")

	assert.Equal(t, a, b)
}

func TestExtractShortTextStillYieldsOneGram(t *testing.T) {
	// Fewer words than the n-gram size collapses to a single shorter gram.
	e := Extractor{N: 3}
	vocab := e.Extract("solitary")

	assert.Len(t, vocab, 1)
}

func TestExtractEmptyText(t *testing.T) {
	e := Extractor{N: 2}

	assert.Empty(t, e.Extract(""))
	assert.Empty(t, e.Extract("  \t \n "))
	assert.Empty(t, e.Extract("..!?--"))
}

func TestExtractStemmingFoldsInflections(t *testing.T) {
	plain := Extractor{N: 1}
	stemmed := Extractor{N: 1, Stem: true}

	assert.NotEqual(t, plain.Extract("running"), plain.Extract("runs"))

	a := stemmed.Extract("running")
	b := stemmed.Extract("runs")
	assert.Equal(t, a, b, "stemming should map inflections to one term")
}

func TestExtractStopWordRemoval(t *testing.T) {
	e := Extractor{N: 1, DropStopWords: true}
	vocab := e.Extract("the cat and the hat")

	// Only "cat" and "hat" survive.
	assert.Len(t, vocab, 2)
}

func TestDistinctGramsHashDistinctly(t *testing.T) {
	e := Extractor{N: 1}
	a := e.Extract("alpha")
	b := e.Extract("omega")

	for hash := range a {
		_, collides := b[hash]
		assert.False(t, collides)
	}
}
