package stream

import (
	"bufio"
	"context"
	"encoding/base64"
	"io"
	"os"

	"github.com/bitextools/docalign/internal/document"
	"github.com/bitextools/docalign/internal/ngram"
	"github.com/bitextools/docalign/pkg/errors"
)

// Token files carry one base64-encoded document per line; lines can be
// large, so the scanner gets a generous ceiling.
const (
	scanBufSize = 1 << 20
	scanMaxSize = 64 << 20
)

// FileSource reads documents from a tokens file paired line-by-line with a
// URLs file. The nth token line and the nth URL line describe the same
// document; a URL stream that runs out first is a pairing error.
type FileSource struct {
	tokens    *os.File
	urls      *os.File
	tokenScan *bufio.Scanner
	urlScan   *bufio.Scanner
	extractor ngram.Extractor
	exitCode  int
	next      int
}

// NewFileSource opens the token and URL files. exitCode is the process exit
// status to attach to pairing errors, which differs per corpus side.
func NewFileSource(tokensPath, urlsPath string, extractor ngram.Extractor, exitCode int) (*FileSource, error) {
	tokens, err := os.Open(tokensPath)
	if err != nil {
		return nil, errors.Newf(errors.ErrInvalidInput, errors.ExitUsage, "opening %s: %v", tokensPath, err)
	}
	urls, err := os.Open(urlsPath)
	if err != nil {
		tokens.Close()
		return nil, errors.Newf(errors.ErrInvalidInput, errors.ExitUsage, "opening %s: %v", urlsPath, err)
	}

	tokenScan := bufio.NewScanner(tokens)
	tokenScan.Buffer(make([]byte, 0, scanBufSize), scanMaxSize)
	urlScan := bufio.NewScanner(urls)
	urlScan.Buffer(make([]byte, 0, scanBufSize), scanMaxSize)

	return &FileSource{
		tokens:    tokens,
		urls:      urls,
		tokenScan: tokenScan,
		urlScan:   urlScan,
		extractor: extractor,
		exitCode:  exitCode,
	}, nil
}

// Next returns the next document, or io.EOF when the token stream ends.
func (s *FileSource) Next(ctx context.Context) (*document.Document, error) {
	if !s.tokenScan.Scan() {
		if err := s.tokenScan.Err(); err != nil {
			return nil, errors.Newf(errors.ErrInvalidInput, s.exitCode, "reading tokens: %v", err)
		}
		return nil, io.EOF
	}

	id := s.next
	s.next++

	text, err := base64.StdEncoding.DecodeString(s.tokenScan.Text())
	if err != nil {
		return nil, errors.Newf(errors.ErrInvalidInput, s.exitCode, "decoding document %d: %v", id, err)
	}

	if !s.urlScan.Scan() {
		if err := s.urlScan.Err(); err != nil {
			return nil, errors.Newf(errors.ErrLabelMismatch, s.exitCode, "reading url for document %d: %v", id, err)
		}
		return nil, errors.Newf(errors.ErrLabelMismatch, s.exitCode, "no url for document %d", id)
	}

	return &document.Document{
		ID:    id,
		URL:   s.urlScan.Text(),
		Vocab: s.extractor.Extract(string(text)),
	}, nil
}

// Close closes both underlying files.
func (s *FileSource) Close() error {
	err := s.tokens.Close()
	if cerr := s.urls.Close(); err == nil {
		err = cerr
	}
	return err
}
