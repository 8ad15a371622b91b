package stream

import (
	"context"
	"io"

	"github.com/bitextools/docalign/internal/document"
	"github.com/bitextools/docalign/internal/ngram"
	"github.com/bitextools/docalign/pkg/kafka"
)

// CandidateEvent is the JSON payload carried on the candidate topic.
type CandidateEvent struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

// KafkaSource adapts the candidate topic to the Source interface. The
// stream has no natural end; cancelling the context ends it, which the
// caller observes as io.EOF.
type KafkaSource struct {
	consumer  *kafka.Consumer
	extractor ngram.Extractor
	next      int
}

func NewKafkaSource(consumer *kafka.Consumer, extractor ngram.Extractor) *KafkaSource {
	return &KafkaSource{
		consumer:  consumer,
		extractor: extractor,
	}
}

func (s *KafkaSource) Next(ctx context.Context) (*document.Document, error) {
	value, err := s.consumer.Fetch(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, io.EOF
		}
		return nil, err
	}

	event, err := kafka.DecodeJSON[CandidateEvent](value)
	if err != nil {
		return nil, err
	}

	id := s.next
	s.next++

	return &document.Document{
		ID:    id,
		URL:   event.URL,
		Vocab: s.extractor.Extract(event.Text),
	}, nil
}

func (s *KafkaSource) Close() error {
	return s.consumer.Close()
}
