// Package document defines the in-memory document representations the
// aligner passes between its stages: the raw bag-of-terms produced by the
// reader and the sorted sparse score vector produced by the TF-IDF
// transform.
package document

// TermHash identifies an n-gram by its 64-bit hash. Equality of hash is
// treated as equality of term; collisions across distinct n-grams are an
// accepted trade-off for the speed of integer merge-joins.
type TermHash uint64

// Document is the raw bag-of-terms for one document: each term hash mapped
// to its occurrence count. It is owned by whichever stage currently holds
// it and is consumed by the TF-IDF transform.
type Document struct {
	ID    int
	URL   string
	Vocab map[TermHash]int
}

// Length returns the total number of term occurrences in the document.
func (d *Document) Length() int {
	total := 0
	for _, count := range d.Vocab {
		total += count
	}
	return total
}

// WordScore is one entry of a sparse score vector.
type WordScore struct {
	Hash  TermHash
	Score float64
}

// ScoredDocument is the sorted sparse score vector for one document.
// WordVec is strictly ascending by hash with no duplicates; the merge-join
// scorer depends on that ordering.
type ScoredDocument struct {
	ID      int
	URL     string
	WordVec []WordScore
}
