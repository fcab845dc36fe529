// ABOUTME: Tagged answer type and the public AnswerResult envelope
// ABOUTME: Buffered vs streamed is decided once by the orchestrator
package models

import "strings"

// Answer is either a complete text or a lazy, finite, non-restartable
// sequence of text fragments. The orchestrator decides which once, based
// on the caller's options; callers inspect IsStreamed, never the shape.
type Answer struct {
	text     string
	stream   <-chan string
	streamed bool
}

// Buffered wraps a complete answer text.
func Buffered(text string) Answer {
	return Answer{text: text}
}

// Streamed wraps a channel of answer fragments. The channel is closed by
// the producer after the last fragment.
func Streamed(ch <-chan string) Answer {
	return Answer{stream: ch, streamed: true}
}

// IsStreamed reports whether the answer arrives as fragments.
func (a Answer) IsStreamed() bool { return a.streamed }

// Text returns the buffered text. Empty for streamed answers.
func (a Answer) Text() string { return a.text }

// Stream returns the fragment channel. Nil for buffered answers.
func (a Answer) Stream() <-chan string { return a.stream }

// Collect drains a streamed answer into a single string. For buffered
// answers it returns the text directly. Streams cannot be restarted, so
// Collect consumes the answer.
func (a Answer) Collect() string {
	if !a.streamed {
		return a.text
	}
	var sb strings.Builder
	for chunk := range a.stream {
		sb.WriteString(chunk)
	}
	return sb.String()
}

// AnswerResult is the envelope returned by the public entry point.
// Category reflects the classified topic, or CategoryClarification when
// the router short-circuited the pipeline.
type AnswerResult struct {
	Answer   Answer
	Category Category
	Context  []ContextItem
}
