// ABOUTME: Streaming adapter for incremental answer delivery
// ABOUTME: Simulates a stream from audited text by releasing word tokens
package core

import "strings"

// SimulateStream splits text on spaces and releases each token with a
// single trailing separator, preserving word order and whitespace
// semantics. Auditing needs the complete answer before release, so this
// stands in for true token streaming when self-correction is enabled.
//
// Concatenating all fragments and stripping the one trailing separator
// reconstructs the original text exactly.
func SimulateStream(text string) <-chan string {
	out := make(chan string, 1)
	go func() {
		defer close(out)
		for _, word := range strings.Split(text, " ") {
			out <- word + " "
		}
	}()
	return out
}
