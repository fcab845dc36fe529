// ABOUTME: Main entry point for the consultant MCP server on stdio
// ABOUTME: Wires config, clients, corpus store, and the answer pipeline
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/abzhanov/npa-consultant/internal/config"
	"github.com/abzhanov/npa-consultant/internal/core"
	"github.com/abzhanov/npa-consultant/internal/llm"
	"github.com/abzhanov/npa-consultant/internal/mcp"
	"github.com/abzhanov/npa-consultant/internal/store"
)

func main() {
	// Stdout belongs to the MCP transport; all logging goes to stderr.
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "npa-server",
	})

	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}
	if cfg.GrokAPIKey == "" {
		logger.Fatal("GROK_API_KEY is required")
	}
	if cfg.OpenAIKey == "" {
		logger.Fatal("OPENAI_API_KEY is required for embeddings")
	}

	completer, err := llm.NewClient(llm.ClientConfig{
		APIKey:  cfg.GrokAPIKey,
		BaseURL: cfg.GrokBaseURL,
		Model:   cfg.ChatModel,
	})
	if err != nil {
		logger.Fatal("failed to initialize completion client", "error", err)
	}

	embedder, err := llm.NewEmbedder(cfg.OpenAIKey, cfg.EmbeddingModel)
	if err != nil {
		logger.Fatal("failed to initialize embedder", "error", err)
	}

	corpus, err := store.Open(cfg.DBPath, embedder)
	if err != nil {
		logger.Fatal("failed to open corpus store", "error", err)
	}
	defer corpus.Close()

	agent := core.NewAgent(
		core.NewRouter(completer, cfg.HistoryWindow, logger),
		core.NewClassifier(completer, logger),
		core.NewRetriever(corpus, core.NewExpander(completer, logger), nil, cfg.InitialK, cfg.TopK, logger),
		core.NewGenerator(completer, logger),
		core.NewAuditor(completer, cfg.AuditContextLimit, logger),
		logger,
	)

	server := mcpserver.NewMCPServer(
		"NPA Consultant",
		"0.1.0",
	)
	mcp.RegisterTools(server, agent, corpus)

	logger.Info("consultant MCP server starting on stdio")
	if err := mcpserver.ServeStdio(server); err != nil {
		logger.Fatal("server error", "error", err)
	}
}
