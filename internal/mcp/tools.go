// ABOUTME: MCP tool definitions and registration for the consultant server
// ABOUTME: Exposes the answer pipeline and the corpus search surface
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/abzhanov/npa-consultant/internal/core"
	"github.com/abzhanov/npa-consultant/internal/store"
)

// RegisterTools registers all MCP tools with the server.
func RegisterTools(server *mcpserver.MCPServer, agent *core.Agent, corpus *store.Store) *Handlers {
	handlers := &Handlers{
		agent:  agent,
		corpus: corpus,
	}

	// ask_consultant - answer a state-property question through the full pipeline
	server.AddTool(mcp.Tool{
		Name:        "ask_consultant",
		Description: "Answer a natural-language question about Kazakhstan state-property regulations, grounded in the indexed corpus with citations. May return a clarifying question instead of an answer when the query is ambiguous.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Question in Russian",
				},
				"use_hyde": map[string]interface{}{
					"type":        "boolean",
					"description": "Expand the query into a hypothetical answer before retrieval (default: false)",
				},
				"use_self_correction": map[string]interface{}{
					"type":        "boolean",
					"description": "Verify the answer against the retrieved context before returning it (default: true)",
				},
			},
			Required: []string{"query"},
		},
	}, handlers.AskConsultant)

	// search_corpus - query the corpus store directly
	server.AddTool(mcp.Tool{
		Name:        "search_corpus",
		Description: "Search the indexed regulations or instructions corpus directly and return matching passages with their hierarchical metadata.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search text",
				},
				"partition": map[string]interface{}{
					"type":        "string",
					"description": "Corpus partition: regulations or instructions (default: regulations)",
				},
				"category": map[string]interface{}{
					"type":        "string",
					"description": "Optional category filter",
				},
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Maximum passages to return (default: 5)",
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchCorpus)

	return handlers
}
