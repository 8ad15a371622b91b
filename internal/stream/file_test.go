package stream

import (
	"context"
	"encoding/base64"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitextools/docalign/internal/ngram"
	"github.com/bitextools/docalign/pkg/errors"
)

func writeTemp(t *testing.T, name string, lines []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

func encode(text string) string {
	return base64.StdEncoding.EncodeToString([]byte(text))
}

func TestFileSourceReadsPairedDocuments(t *testing.T) {
	tokens := writeTemp(t, "tokens", []string{
		encode("north wind and the sun"),
		encode("der nordwind und die sonne"),
	})
	urls := writeTemp(t, "urls", []string{
		"http://example.com/en",
		"http://example.com/de",
	})

	src, err := NewFileSource(tokens, urls, ngram.Extractor{N: 1}, errors.ExitRefPairing)
	require.NoError(t, err)
	defer src.Close()

	ctx := context.Background()

	first, err := src.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, first.ID)
	assert.Equal(t, "http://example.com/en", first.URL)
	assert.Len(t, first.Vocab, 5)

	second, err := src.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, second.ID)
	assert.Equal(t, "http://example.com/de", second.URL)
	assert.NotEmpty(t, second.Vocab)

	_, err = src.Next(ctx)
	assert.Equal(t, io.EOF, err)
}

func TestFileSourceLabelMismatch(t *testing.T) {
	tokens := writeTemp(t, "tokens", []string{
		encode("one"),
		encode("two"),
	})
	urls := writeTemp(t, "urls", []string{"http://example.com/only"})

	src, err := NewFileSource(tokens, urls, ngram.Extractor{N: 1}, errors.ExitCandPairing)
	require.NoError(t, err)
	defer src.Close()

	ctx := context.Background()

	_, err = src.Next(ctx)
	require.NoError(t, err)

	_, err = src.Next(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrLabelMismatch))
	assert.Equal(t, errors.ExitCandPairing, errors.ExitCode(err))
}

func TestFileSourceBadBase64(t *testing.T) {
	tokens := writeTemp(t, "tokens", []string{"%%% not base64 %%%"})
	urls := writeTemp(t, "urls", []string{"http://example.com/"})

	src, err := NewFileSource(tokens, urls, ngram.Extractor{N: 1}, errors.ExitRefPairing)
	require.NoError(t, err)
	defer src.Close()

	_, err = src.Next(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}

func TestFileSourceMissingFile(t *testing.T) {
	urls := writeTemp(t, "urls", []string{"http://example.com/"})

	_, err := NewFileSource(filepath.Join(t.TempDir(), "absent"), urls, ngram.Extractor{N: 1}, errors.ExitRefPairing)
	require.Error(t, err)
	assert.Equal(t, errors.ExitUsage, errors.ExitCode(err))
}

func TestFileSourceEmptyDocumentLine(t *testing.T) {
	// An empty base64 line is a document with an empty vocabulary; the
	// source hands it through and the orchestrator decides its fate.
	tokens := writeTemp(t, "tokens", []string{encode("")})
	urls := writeTemp(t, "urls", []string{"http://example.com/empty"})

	src, err := NewFileSource(tokens, urls, ngram.Extractor{N: 2}, errors.ExitCandPairing)
	require.NoError(t, err)
	defer src.Close()

	doc, err := src.Next(context.Background())
	require.NoError(t, err)
	assert.Empty(t, doc.Vocab)
}
