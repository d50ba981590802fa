package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/veridict/internal/pipeline"
	"github.com/ppiankov/veridict/internal/store"
	"github.com/ppiankov/veridict/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Fact-check multiple claims from a file in parallel",
	Long: `Batch processes multiple claims concurrently:
- Read claims from input file (one per line, # lines are comments)
- Check claims in parallel with configurable worker count
- Generate an individual JSON report per claim

Example:
  veridict batch claims.txt
  veridict batch claims.txt --concurrency 4 --output-dir ./reports
  veridict batch claims.txt --timeout 30m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().IntVar(&concurrency, "concurrency", 2, "number of concurrent claim checks")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./veridict-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "total timeout for batch processing")

	// Inherit flags from check command
	batchCmd.Flags().StringVar(&userAgent, "ua", "Veridict/0.2 (+https://github.com/ppiankov/veridict)", "HTTP User-Agent")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable page cache (force fresh fetches)")
	batchCmd.Flags().BoolVar(&noInteract, "no-interact", false, "disable the scripted-rendering stage")
	batchCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	batchCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	// LLM flags
	batchCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM verdict analysis")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	claims, err := readClaims(file)
	if err != nil {
		return fmt.Errorf("read claims: %w", err)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Veridict Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Claims:       %d\n", len(claims))
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	if llmEnabled {
		fmt.Fprintf(os.Stderr, "  LLM:          %s/%s\n", llmProvider, llmModel)
	}

	// Create output directory
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	logger := newLogger()
	checker, err := pipeline.New(cfg, store.NewMemory(), logger)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}

	processor := worker.NewBatchProcessor(checker, concurrency, logger)

	fmt.Fprintf(os.Stderr, "⚙️  Processing claims with %d workers...\n", concurrency)
	fmt.Fprintf(os.Stderr, "\n")

	items := processor.Process(ctx, claims)

	successCount := 0
	failureCount := 0

	for _, item := range items {
		if item.Err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %q: %v\n", item.Claim, item.Err)
			continue
		}

		successCount++

		path := filepath.Join(outputDir, fmt.Sprintf("claim-%03d.json", item.Index+1))
		data, err := json.MarshalIndent(item.Result, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "✗ %q: marshal report: %v\n", item.Claim, err)
			continue
		}
		if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %q: write report: %v\n", item.Claim, err)
			continue
		}

		fmt.Fprintf(os.Stderr, "✓ %q: %s (%.0f%%)\n", item.Claim, item.Result.Verdict, item.Result.Confidence)
	}

	// Summary
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d claims\n", len(items))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

// readClaims loads one claim per line, skipping blanks and # comments.
func readClaims(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var claims []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		claims = append(claims, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return claims, nil
}
