// ABOUTME: CLI command to load pre-chunked passages into the corpus store
// ABOUTME: Collaborator surface for the external ingestion pipeline
package commands

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abzhanov/npa-consultant/internal/store"
)

var (
	loadPartition string
	loadBatchSize int
)

// NewLoadCmd creates the load command.
func NewLoadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load <file.jsonl>",
		Short: "Load pre-chunked passages into the corpus",
		Long: `Load pre-chunked passages into a corpus partition.

The input is JSON Lines, one passage per line:
  {"content": "...", "metadata": {"source": "...", "full_context": "...", "category": "...", "type": "...", "page": 0}}

Chunking documents into passages is the job of the external ingestion
pipeline; this command only embeds and indexes its output. Passages
without an id get a generated one.

Examples:
  consultant load chunks.jsonl
  consultant load --partition instructions instr_chunks.jsonl`,
		Args: cobra.ExactArgs(1),
		RunE: runLoad,
	}

	cmd.Flags().StringVar(&loadPartition, "partition", string(store.PartitionRegulations), "Target partition (regulations or instructions)")
	cmd.Flags().IntVar(&loadBatchSize, "batch", 100, "Passages per embedding batch")

	return cmd
}

func runLoad(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	if err := validatePositiveInt(loadBatchSize, "batch"); err != nil {
		return err
	}
	partition := store.Partition(loadPartition)
	if partition != store.PartitionRegulations && partition != store.PartitionInstructions {
		return fmt.Errorf("unknown partition %q", loadPartition)
	}

	corpus, _, logger, err := newCorpusOnly()
	if err != nil {
		return err
	}
	defer corpus.Close()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	var (
		batch []store.Entry
		total int
	)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := corpus.Add(cmd.Context(), partition, batch); err != nil {
			return fmt.Errorf("indexing batch: %w", err)
		}
		total += len(batch)
		logger.Info("indexed batch", "passages", total)
		batch = batch[:0]
		return nil
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Bytes()
		if len(text) == 0 {
			continue
		}

		var entry store.Entry
		if err := json.Unmarshal(text, &entry); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if entry.Content == "" {
			return fmt.Errorf("line %d: empty content", line)
		}
		if entry.ID == "" {
			entry.ID = uuid.NewString()
		}

		batch = append(batch, entry)
		if len(batch) >= loadBatchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	if err := flush(); err != nil {
		return err
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d passages into %s\n", total, partition)
	}
	return nil
}
