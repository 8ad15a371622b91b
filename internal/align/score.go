// Package align computes the similarity between two sparse score vectors.
package align

import "github.com/bitextools/docalign/internal/document"

// Score returns the dot product of the two documents' score vectors via a
// merge-join over their ascending-sorted entries, O(|a|+|b|). With vectors
// normalized at transform time this is the cosine similarity. Score is
// symmetric and has no side effects.
func Score(a, b *document.ScoredDocument) float64 {
	var total float64
	i, j := 0, 0
	for i < len(a.WordVec) && j < len(b.WordVec) {
		switch {
		case a.WordVec[i].Hash == b.WordVec[j].Hash:
			total += a.WordVec[i].Score * b.WordVec[j].Score
			i++
			j++
		case a.WordVec[i].Hash < b.WordVec[j].Hash:
			i++
		default:
			j++
		}
	}
	return total
}
