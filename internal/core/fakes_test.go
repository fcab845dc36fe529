// ABOUTME: Shared test fakes for the pipeline components
// ABOUTME: Scripted completion client and canned corpus searcher
package core

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/abzhanov/npa-consultant/internal/llm"
	"github.com/abzhanov/npa-consultant/internal/models"
	"github.com/abzhanov/npa-consultant/internal/store"
)

// testLogger returns a silent logger for tests.
func testLogger() *log.Logger {
	return log.New(io.Discard)
}

// fakeCompleter returns scripted responses in FIFO order. The pipeline
// issues completions in a deterministic sequence, so scripts line up
// call-by-call.
type fakeCompleter struct {
	responses    []string
	err          error
	streamChunks []string
	streamErr    error

	calls       int
	streamCalls int
	lastMsgs    []llm.Message
	lastOpts    llm.Options
}

func (f *fakeCompleter) Complete(ctx context.Context, msgs []llm.Message, opts llm.Options) (string, error) {
	f.calls++
	f.lastMsgs = msgs
	f.lastOpts = opts
	if f.err != nil {
		return "", f.err
	}
	if len(f.responses) == 0 {
		return "", fmt.Errorf("fakeCompleter: no scripted response for call %d", f.calls)
	}
	r := f.responses[0]
	f.responses = f.responses[1:]
	return r, nil
}

func (f *fakeCompleter) CompleteStream(ctx context.Context, msgs []llm.Message, opts llm.Options) (<-chan string, error) {
	f.streamCalls++
	f.lastMsgs = msgs
	f.lastOpts = opts
	if f.streamErr != nil {
		return nil, f.streamErr
	}
	ch := make(chan string, len(f.streamChunks))
	for _, c := range f.streamChunks {
		ch <- c
	}
	close(ch)
	return ch, nil
}

// corpusCall records one search the retriever issued.
type corpusCall struct {
	Partition store.Partition
	Text      string
	TopN      int
	Category  string
}

// fakeCorpus serves canned results keyed by partition and category filter.
type fakeCorpus struct {
	results map[string][]models.ContextItem
	err     error
	calls   []corpusCall
}

func corpusKey(p store.Partition, category string) string {
	return string(p) + "|" + category
}

func (f *fakeCorpus) Query(ctx context.Context, partition store.Partition, text string, topN int, categoryFilter string) ([]models.ContextItem, error) {
	f.calls = append(f.calls, corpusCall{Partition: partition, Text: text, TopN: topN, Category: categoryFilter})
	if f.err != nil {
		return nil, f.err
	}
	return f.results[corpusKey(partition, categoryFilter)], nil
}

// item builds a ContextItem with a distance.
func item(content string, distance float64) models.ContextItem {
	return models.ContextItem{
		Content:  content,
		Metadata: models.PassageMeta{Source: "doc.docx", FullContext: "Глава 1 > Статья 1", Category: "Передача", Type: "NPA"},
		Distance: &distance,
	}
}
