// ABOUTME: Dialogue router decision type
// ABOUTME: Exactly one of the payload fields is set, dictated by the boolean
package models

import "fmt"

// ClarificationDecision is the router's verdict for one turn: either ask
// the user a clarifying question, or proceed with a self-contained
// rewritten query.
type ClarificationDecision struct {
	NeedsClarification    bool   `json:"needs_clarification"`
	ClarificationQuestion string `json:"clarification_question,omitempty"`
	RewrittenQuery        string `json:"rewritten_query,omitempty"`
}

// Clarify builds a decision that asks the given question.
func Clarify(question string) ClarificationDecision {
	return ClarificationDecision{
		NeedsClarification:    true,
		ClarificationQuestion: question,
	}
}

// Proceed builds a decision that continues the pipeline with query.
func Proceed(query string) ClarificationDecision {
	return ClarificationDecision{
		NeedsClarification: false,
		RewrittenQuery:     query,
	}
}

// Validate checks the one-of invariant between the two payload fields.
func (d ClarificationDecision) Validate() error {
	if d.NeedsClarification {
		if d.ClarificationQuestion == "" {
			return fmt.Errorf("needs_clarification is true but clarification_question is empty")
		}
		if d.RewrittenQuery != "" {
			return fmt.Errorf("needs_clarification is true but rewritten_query is set")
		}
		return nil
	}
	if d.RewrittenQuery == "" {
		return fmt.Errorf("needs_clarification is false but rewritten_query is empty")
	}
	if d.ClarificationQuestion != "" {
		return fmt.Errorf("needs_clarification is false but clarification_question is set")
	}
	return nil
}
