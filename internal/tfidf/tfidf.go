// Package tfidf builds the reference document-frequency table and converts
// raw bag-of-terms documents into sorted, L2-normalized sparse score
// vectors. With both sides normalized, the scorer's dot product is the
// cosine similarity, so threshold values live in [0,1].
package tfidf

import (
	"math"
	"sort"

	"github.com/bitextools/docalign/internal/document"
	"github.com/bitextools/docalign/pkg/errors"
)

// DFTable maps each term hash to the number of distinct reference documents
// containing it. It is built once from the reference corpus and must not be
// mutated afterwards; all workers read it without locking.
type DFTable map[document.TermHash]int

// AggregateDF scans the reference corpus once and counts, per term, the
// number of distinct documents it appears in. Local occurrence counts do
// not matter: each document contributes at most 1 per term.
func AggregateDF(docs []*document.Document) DFTable {
	df := make(DFTable)
	for _, doc := range docs {
		for hash := range doc.Vocab {
			df[hash]++
		}
	}
	return df
}

// Transform converts doc into a ScoredDocument and consumes the raw
// vocabulary map. Each term's weight is its length-normalized frequency
// times ln(totalDocs/df); the resulting vector is sorted ascending by term
// hash and L2-normalized.
//
// Terms absent from the table (candidate-only terms) are weighted as if
// df were 1. Terms present in every reference document get weight zero and
// are dropped. A document whose vector comes out empty is an error, never a
// silent skip: an empty vector must not reach the scoring queue.
func Transform(doc *document.Document, totalDocs int, df DFTable) (*document.ScoredDocument, error) {
	scored := &document.ScoredDocument{
		ID:  doc.ID,
		URL: doc.URL,
	}

	docLen := doc.Length()
	if docLen > 0 {
		scored.WordVec = make([]document.WordScore, 0, len(doc.Vocab))
		for hash, count := range doc.Vocab {
			seen := df[hash]
			if seen < 1 {
				seen = 1
			}
			idf := math.Log(float64(totalDocs) / float64(seen))
			weight := float64(count) / float64(docLen) * idf
			if weight <= 0 {
				continue
			}
			scored.WordVec = append(scored.WordVec, document.WordScore{
				Hash:  hash,
				Score: weight,
			})
		}
	}

	// The raw bag is only needed once; dropping it here keeps the resident
	// set proportional to the sparse vectors, not the vocabularies.
	doc.Vocab = nil

	if len(scored.WordVec) == 0 {
		return nil, errors.Newf(errors.ErrEmptyWordVec, errors.ExitEmptyWordVec,
			"document %d (%s)", doc.ID, doc.URL)
	}

	sort.Slice(scored.WordVec, func(i, j int) bool {
		return scored.WordVec[i].Hash < scored.WordVec[j].Hash
	})

	normalize(scored.WordVec)
	return scored, nil
}

func normalize(vec []document.WordScore) {
	var sumSquares float64
	for _, ws := range vec {
		sumSquares += ws.Score * ws.Score
	}
	norm := math.Sqrt(sumSquares)
	if norm == 0 {
		return
	}
	for i := range vec {
		vec[i].Score /= norm
	}
}
