// ABOUTME: Shared pipeline wiring for CLI commands
// ABOUTME: Builds config, clients, corpus store, and the agent
package commands

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/abzhanov/npa-consultant/internal/config"
	"github.com/abzhanov/npa-consultant/internal/core"
	"github.com/abzhanov/npa-consultant/internal/llm"
	"github.com/abzhanov/npa-consultant/internal/store"
)

// pipeline bundles everything a command needs to answer questions.
type pipeline struct {
	cfg       *config.Config
	logger    *log.Logger
	completer *llm.Client
	corpus    *store.Store
	agent     *core.Agent
}

func (p *pipeline) Close() {
	_ = p.corpus.Close()
}

// newLogger builds the CLI logger honoring the global verbosity flags.
func newLogger() *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	if quiet {
		level = log.ErrorLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "consultant",
	})
}

// newPipeline wires the full answer pipeline from configuration.
func newPipeline() (*pipeline, error) {
	logger := newLogger()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if cfg.GrokAPIKey == "" {
		return nil, fmt.Errorf("GROK_API_KEY is not set")
	}
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set (required for embeddings)")
	}

	completer, err := llm.NewClient(llm.ClientConfig{
		APIKey:  cfg.GrokAPIKey,
		BaseURL: cfg.GrokBaseURL,
		Model:   cfg.ChatModel,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing completion client: %w", err)
	}

	embedder, err := llm.NewEmbedder(cfg.OpenAIKey, cfg.EmbeddingModel)
	if err != nil {
		return nil, fmt.Errorf("initializing embedder: %w", err)
	}

	corpus, err := store.Open(cfg.DBPath, embedder)
	if err != nil {
		return nil, fmt.Errorf("opening corpus store: %w", err)
	}

	agent := core.NewAgent(
		core.NewRouter(completer, cfg.HistoryWindow, logger),
		core.NewClassifier(completer, logger),
		core.NewRetriever(corpus, core.NewExpander(completer, logger), nil, cfg.InitialK, cfg.TopK, logger),
		core.NewGenerator(completer, logger),
		core.NewAuditor(completer, cfg.AuditContextLimit, logger),
		logger,
	)

	return &pipeline{
		cfg:       cfg,
		logger:    logger,
		completer: completer,
		corpus:    corpus,
		agent:     agent,
	}, nil
}

// newCorpusOnly wires just the corpus store, for commands that do not
// need the completion service.
func newCorpusOnly() (*store.Store, *config.Config, *log.Logger, error) {
	logger := newLogger()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading configuration: %w", err)
	}
	if cfg.OpenAIKey == "" {
		return nil, nil, nil, fmt.Errorf("OPENAI_API_KEY is not set (required for embeddings)")
	}

	embedder, err := llm.NewEmbedder(cfg.OpenAIKey, cfg.EmbeddingModel)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("initializing embedder: %w", err)
	}

	corpus, err := store.Open(cfg.DBPath, embedder)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening corpus store: %w", err)
	}
	return corpus, cfg, logger, nil
}
