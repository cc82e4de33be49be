package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"prbrief/internal/annotate"
	"prbrief/internal/config"
	"prbrief/internal/gitgrep"
	"prbrief/internal/github"
	"prbrief/internal/llm"
	"prbrief/internal/pipeline"
	"prbrief/internal/summary"
)

const defaultPatchPath = "PRChanges.patch"

var (
	rootCmd = &cobra.Command{
		Use:   "prbrief",
		Short: "Patch-context retrieval and PR summarization agent",
	}
	configPath string
	dryRun     bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to the YAML config file")

	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the summary instead of posting it to GitHub")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run [patch-file]",
	Short: "Summarize a patch with codebase context and post the result as a PR comment",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		patchPath := defaultPatchPath
		if len(args) > 0 {
			patchPath = args[0]
		}

		ctx := context.Background()

		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		logger, err := zap.NewProduction()
		if err != nil {
			log.Fatalf("Failed to create logger: %v", err)
		}
		defer logger.Sync()

		patch, err := os.ReadFile(patchPath)
		if err != nil {
			log.Fatalf("Failed to read patch file %s: %v", patchPath, err)
		}

		// Validate posting configuration up front; a missing key must fail
		// before any completion or network call is made.
		var poster *github.Poster
		if !dryRun {
			poster, err = github.NewPoster(cfg.GitHub)
			if err != nil {
				log.Fatalf("Configuration error: %v", err)
			}
		}

		completer, err := llm.NewCompleter(ctx, llm.Options{
			Provider: cfg.AI.Provider,
			APIKey:   cfg.AI.APIKey,
			Model:    cfg.AI.Model,
			BaseURL:  cfg.AI.BaseURL,
		})
		if err != nil {
			log.Fatalf("Failed to create completion client: %v", err)
		}
		retrying := llm.NewRetryingCompleter(completer, logger)

		var grepOpts []gitgrep.Option
		grepOpts = append(grepOpts, gitgrep.WithLogger(logger))
		if cfg.Search.SourceOnly {
			grepOpts = append(grepOpts, gitgrep.WithSourceOnly())
		}
		searcher := gitgrep.New(".", grepOpts...)

		filter, err := pipeline.NewFilter(cfg.Filter.Strategy, retrying, ".", logger)
		if err != nil {
			log.Fatalf("Failed to create relevance filter: %v", err)
		}

		p := pipeline.New(retrying, searcher, annotate.New(), filter, logger)

		fmt.Printf("🔎 Retrieving context for %s...\n", patchPath)
		bundle, err := p.Run(ctx, string(patch))
		if err != nil {
			log.Fatalf("Pipeline failed: %v", err)
		}

		fmt.Println("✍️  Summarizing...")
		text, err := summary.NewLLMSummarizer(retrying).Summarize(ctx, bundle)
		if err != nil {
			log.Fatalf("Failed to summarize: %v", err)
		}

		if dryRun {
			fmt.Println(text)
			return
		}

		url, err := poster.PostComment(ctx, text)
		if err != nil {
			log.Fatalf("Failed to post comment: %v", err)
		}
		fmt.Printf("✅ Comment posted: %s\n", url)
	},
}
