// Package ngram turns document text into a bag of hashed n-grams.
// Words are lower-cased and split on non-alphanumeric boundaries, optionally
// stop-word-filtered and stemmed, then joined into n-grams and hashed with
// xxhash into 64-bit term identifiers.
package ngram

import (
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
	"github.com/kljensen/snowball/english"

	"github.com/bitextools/docalign/internal/document"
)

var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "by": {}, "for": {}, "from": {}, "has": {}, "he": {},
	"in": {}, "is": {}, "it": {}, "its": {}, "of": {}, "on": {},
	"or": {}, "that": {}, "the": {}, "to": {}, "was": {}, "were": {},
	"will": {}, "with": {}, "this": {}, "but": {}, "they": {},
	"have": {}, "had": {}, "what": {}, "when": {}, "where": {},
	"who": {}, "which": {}, "their": {}, "if": {}, "each": {},
	"do": {}, "not": {}, "no": {}, "so": {}, "can": {},
}

// Extractor converts text into term-hash counts.
type Extractor struct {
	// N is the n-gram size. 1 hashes single words.
	N int
	// Stem applies snowball stemming to each word before shingling.
	Stem bool
	// DropStopWords removes common English words before shingling.
	DropStopWords bool
}

// Extract returns the term-hash occurrence counts for text. A text with
// fewer than N words still yields one (shorter) n-gram, so only an entirely
// empty text produces an empty vocabulary.
func (e Extractor) Extract(text string) map[document.TermHash]int {
	words := e.words(text)
	vocab := make(map[document.TermHash]int, len(words))
	if len(words) == 0 {
		return vocab
	}

	n := e.N
	if n < 1 {
		n = 1
	}
	last := len(words) - n
	if last < 0 {
		last = 0
	}
	for i := 0; i <= last; i++ {
		end := i + n
		if end > len(words) {
			end = len(words)
		}
		gram := strings.Join(words[i:end], " ")
		vocab[document.TermHash(xxhash.Sum64String(gram))]++
	}
	return vocab
}

func (e Extractor) words(text string) []string {
	text = strings.ToLower(text)
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	words := make([]string, 0, len(fields))
	for _, word := range fields {
		if e.DropStopWords {
			if _, isStop := stopWords[word]; isStop {
				continue
			}
		}
		if e.Stem {
			word = english.Stem(word, true)
		}
		if word == "" {
			continue
		}
		words = append(words, word)
	}
	return words
}
