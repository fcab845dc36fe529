// ABOUTME: Tests for the completion client helpers
// ABOUTME: Covers message builders, config validation, and fence stripping
package llm

import "testing"

func TestMessageBuilders(t *testing.T) {
	sys := System("инструкция")
	if sys.Role != "system" {
		t.Errorf("System role = %q, want %q", sys.Role, "system")
	}
	if sys.Content != "инструкция" {
		t.Errorf("System content = %q, want %q", sys.Content, "инструкция")
	}

	usr := User("вопрос")
	if usr.Role != "user" {
		t.Errorf("User role = %q, want %q", usr.Role, "user")
	}
	if usr.Content != "вопрос" {
		t.Errorf("User content = %q, want %q", usr.Content, "вопрос")
	}
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(ClientConfig{Model: "grok-3"})
	if err == nil {
		t.Error("NewClient() with empty API key should fail")
	}

	c, err := NewClient(ClientConfig{APIKey: "key", BaseURL: "https://api.x.ai/v1", Model: "grok-3"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if c == nil {
		t.Fatal("NewClient() returned nil client")
	}
}

func TestStripJSONFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain json", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  {\"a\": 1}\n\n", `{"a": 1}`},
		{"fence with whitespace", "\n```json\n{\"a\": 1}\n```\n", `{"a": 1}`},
		{"empty", "", ""},
		{"fences only", "```json\n```", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripJSONFences(tt.input); got != tt.want {
				t.Errorf("StripJSONFences(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
