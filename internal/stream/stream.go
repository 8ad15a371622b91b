// Package stream produces raw documents for the aligner, either from paired
// token/URL files or from a Kafka topic of candidate documents.
package stream

import (
	"context"

	"github.com/bitextools/docalign/internal/document"
)

// Source yields raw documents one at a time. Next returns io.EOF once the
// stream is exhausted; any other error is fatal for the run.
type Source interface {
	Next(ctx context.Context) (*document.Document, error)
	Close() error
}
