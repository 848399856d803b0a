package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dealerdesk/dealerdesk/cmd/dealerdesk-cli/ui"
	"github.com/dealerdesk/dealerdesk/internal/config"
	"github.com/dealerdesk/dealerdesk/internal/embedding"
	"github.com/dealerdesk/dealerdesk/internal/knowledge"
	"github.com/dealerdesk/dealerdesk/internal/observability"
	"github.com/dealerdesk/dealerdesk/internal/vector"
)

// indexedTextLimit bounds the stored context text per entry.
const indexedTextLimit = 1000

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the semantic search index",
	Long:  "Embed the knowledge base entries and write them to the configured vector index.",
	RunE:  runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Vector.Adapter == "off" {
		return fmt.Errorf("vector adapter is off; set vector.adapter to memory or pinecone")
	}

	base, err := knowledge.LoadBase(cfg.Data.KnowledgeBasePath, observability.Nop())
	if err != nil {
		return err
	}
	if base.Count() == 0 {
		return fmt.Errorf("knowledge base %s is empty; run the knowledge command first", cfg.Data.KnowledgeBasePath)
	}

	embedder, err := embedding.NewClient(embedding.Config{
		APIKey:    cfg.EmbeddingAPIKey(),
		Model:     cfg.Embedding.Model,
		BaseURL:   cfg.Embedding.BaseURL,
		Dimension: cfg.Embedding.Dimension,
		Timeout:   cfg.Embedding.Timeout,
	})
	if err != nil {
		return fmt.Errorf("create embedding client: %w", err)
	}

	ui.Section("Semantic Index Build")
	ui.Info("Embedding %d knowledge base entries", base.Count())

	entries, err := embedEntries(ctx, embedder, base.All())
	if err != nil {
		return err
	}

	switch cfg.Vector.Adapter {
	case "memory":
		index := vector.NewMemoryIndex(vector.MemoryConfig{
			Embedder: embedder,
			MinScore: cfg.Vector.MinScore,
		})
		index.Upsert(entries)
		if err := index.Save(cfg.Vector.IndexPath); err != nil {
			return err
		}
		ui.Success("Wrote %d vectors to %s", len(entries), cfg.Vector.IndexPath)
	case "pinecone":
		searcher, err := vector.NewPineconeSearcher(vector.PineconeConfig{
			Host:      cfg.Vector.Pinecone.Host,
			APIKey:    cfg.PineconeAPIKey(),
			Namespace: cfg.Vector.Pinecone.Namespace,
			Embedder:  embedder,
			MinScore:  cfg.Vector.MinScore,
			Timeout:   cfg.Vector.Timeout,
		})
		if err != nil {
			return fmt.Errorf("create pinecone searcher: %w", err)
		}

		spin := ui.NewSpinner("upserting vectors to Pinecone")
		spin.Start()
		err = searcher.Upsert(ctx, entries)
		spin.Stop()
		if err != nil {
			return fmt.Errorf("upsert vectors: %w", err)
		}
		ui.Success("Upserted %d vectors to namespace %q", len(entries), cfg.Vector.Pinecone.Namespace)
	default:
		return fmt.Errorf("unknown vector adapter: %s", cfg.Vector.Adapter)
	}

	return nil
}

// embedEntries renders each spec sheet as searchable text and embeds it.
func embedEntries(ctx context.Context, embedder embedding.Embedder, sheets []knowledge.Entry) ([]vector.Entry, error) {
	bar := ui.NewProgressBar(int64(len(sheets)), "embedding")
	defer bar.Finish()

	entries := make([]vector.Entry, 0, len(sheets))
	for _, sheet := range sheets {
		text := describeEntry(sheet)
		vec, err := embedder.EmbedSingle(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("embed %s %s: %w", sheet.Make, sheet.Model, err)
		}

		entries = append(entries, vector.Entry{
			ID:     entryID(sheet),
			Year:   sheet.Year,
			Make:   sheet.Make,
			Model:  sheet.Model,
			Text:   truncateRunes(text, indexedTextLimit),
			Vector: vec,
		})
		bar.Add(1)
	}
	return entries, nil
}

// describeEntry builds the text representation a spec sheet is embedded as.
func describeEntry(sheet knowledge.Entry) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%d %s %s. ", sheet.Year, sheet.Make, sheet.Model)
	if sheet.Overview != "" {
		b.WriteString(sheet.Overview + " ")
	}
	if sheet.Powertrain.Engine != "" {
		fmt.Fprintf(&b, "Engine: %s. ", sheet.Powertrain.Engine)
	}
	if sheet.Powertrain.Horsepower != "" {
		fmt.Fprintf(&b, "HP: %s. ", sheet.Powertrain.Horsepower)
	}
	if len(sheet.Features.Safety) > 0 {
		fmt.Fprintf(&b, "Safety: %s. ", strings.Join(sheet.Features.Safety, ", "))
	}
	if len(sheet.Features.Technology) > 0 {
		fmt.Fprintf(&b, "Tech: %s. ", strings.Join(sheet.Features.Technology, ", "))
	}

	return strings.TrimSpace(b.String())
}

func entryID(sheet knowledge.Entry) string {
	id := fmt.Sprintf("%s_%s_%d", sheet.Make, sheet.Model, sheet.Year)
	return strings.ToLower(strings.ReplaceAll(id, " ", "_"))
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
