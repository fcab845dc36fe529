// ABOUTME: MCP tool handler implementations for the consultant server
// ABOUTME: Buffered-only delivery; MCP tool calls have no streaming surface
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/abzhanov/npa-consultant/internal/core"
	"github.com/abzhanov/npa-consultant/internal/models"
	"github.com/abzhanov/npa-consultant/internal/store"
)

// Handlers contains the handler functions for all MCP tools.
type Handlers struct {
	agent  *core.Agent
	corpus *store.Store
}

// sourceRef is the citation shape returned to MCP clients.
type sourceRef struct {
	Source      string   `json:"source"`
	FullContext string   `json:"full_context"`
	Category    string   `json:"category"`
	Distance    *float64 `json:"distance"`
	Preview     string   `json:"preview"`
}

// AskConsultant handles the ask_consultant tool.
func (h *Handlers) AskConsultant(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	opts := core.Options{
		UseHyde:           request.GetBool("use_hyde", false),
		UseSelfCorrection: request.GetBool("use_self_correction", true),
	}

	result := h.agent.Answer(ctx, query, nil, opts)

	response := struct {
		Response string      `json:"response"`
		Category string      `json:"category"`
		Sources  []sourceRef `json:"sources"`
	}{
		Response: result.Answer.Collect(),
		Category: string(result.Category),
		Sources:  sourceRefs(result.Context),
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// SearchCorpus handles the search_corpus tool.
func (h *Handlers) SearchCorpus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	partition := store.Partition(request.GetString("partition", string(store.PartitionRegulations)))
	if partition != store.PartitionRegulations && partition != store.PartitionInstructions {
		return mcp.NewToolResultError(fmt.Sprintf("unknown partition: %s", partition)), nil
	}
	category := request.GetString("category", "")
	limit := request.GetInt("limit", 5)

	items, err := h.corpus.Query(ctx, partition, query, limit, category)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("corpus search failed: %v", err)), nil
	}

	response := struct {
		Partition string      `json:"partition"`
		Count     int         `json:"count"`
		Passages  []sourceRef `json:"passages"`
	}{
		Partition: string(partition),
		Count:     len(items),
		Passages:  sourceRefs(items),
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

func sourceRefs(items []models.ContextItem) []sourceRef {
	refs := make([]sourceRef, len(items))
	for i, item := range items {
		refs[i] = sourceRef{
			Source:      item.Metadata.Source,
			FullContext: item.Metadata.FullContext,
			Category:    item.Metadata.Category,
			Distance:    item.Distance,
			Preview:     previewText(item.Content, 200),
		}
	}
	return refs
}

// previewText shortens content for display, rune-safe.
func previewText(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
