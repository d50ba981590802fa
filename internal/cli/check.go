package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/veridict/internal/jobs"
	"github.com/ppiankov/veridict/internal/model"
	"github.com/ppiankov/veridict/internal/pipeline"
	"github.com/ppiankov/veridict/internal/store"
)

var (
	outJSON      string
	checkTimeout time.Duration
	userAgent    string
	maxBytes     int64
	noCache      bool
	noInteract   bool
	insecureTLS  bool
	httpProxy    string
	httpsProxy   string
	searchAPIKey string
	newsAPIKey   string
	llmEnabled   bool
	llmProvider  string
	llmModel     string
	pollInterval time.Duration
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <claim>",
	Short: "Fact-check a single claim and generate a verdict report",
	Long: `Check runs the full verification pipeline for one claim:
- Analyze the claim text (keywords, entities, category, risk factors)
- Discover candidate sources across all configured channels
- Fetch and extract evidence, with scripted rendering for social platforms
- Synthesize verdict, confidence, timeline, social signals and risk

Example:
  veridict check "Drinking coffee reduces the risk of heart disease"
  veridict check "The new policy tripled unemployment" --json report.json
  veridict check "Vaccines cause autism" --llm openai --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	// Output flags
	checkCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (default: stdout)")

	// HTTP flags
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 5*time.Minute, "overall check timeout")
	checkCmd.Flags().StringVar(&userAgent, "ua", "Veridict/0.2 (+https://github.com/ppiankov/veridict)", "HTTP User-Agent")
	checkCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read per page")
	checkCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable page cache (force fresh fetches)")
	checkCmd.Flags().BoolVar(&noInteract, "no-interact", false, "disable the scripted-rendering stage")
	checkCmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification (use for self-signed certs)")
	checkCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	checkCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	// Discovery flags
	checkCmd.Flags().StringVar(&searchAPIKey, "search-key", "", "web search API key (default: VERIDICT_SEARCH_API_KEY)")
	checkCmd.Flags().StringVar(&newsAPIKey, "news-key", "", "news API key (default: VERIDICT_NEWS_API_KEY)")

	// LLM flags
	checkCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM verdict analysis")
	checkCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	checkCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")

	checkCmd.Flags().DurationVar(&pollInterval, "poll-interval", 500*time.Millisecond, "job status poll interval")
}

func runCheck(cmd *cobra.Command, args []string) error {
	claimText := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Checking: %s\n", claimText)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", checkTimeout)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	logger := newLogger()
	checker, err := pipeline.New(cfg, store.NewMemory(), logger)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}
	registry := jobs.NewRegistry(checker, cfg.Jobs, logger)

	jobID, err := registry.Submit(ctx, claimText)
	if err != nil {
		return fmt.Errorf("submit claim: %w", err)
	}

	snapshot, err := pollJob(ctx, registry, jobID)
	if err != nil {
		return err
	}
	if snapshot.State == model.JobFailed {
		return fmt.Errorf("check failed: %s", snapshot.Error)
	}

	if verbose {
		result := snapshot.Result
		fmt.Fprintf(os.Stderr, "✓ Verdict: %s (confidence %.0f%%)\n", result.Verdict, result.Confidence)
		fmt.Fprintf(os.Stderr, "✓ Evidence: %d supporting, %d contradicting, %d neutral\n",
			len(result.Evidence.Supporting), len(result.Evidence.Contradicting), len(result.Evidence.Neutral))
		fmt.Fprintf(os.Stderr, "✓ Risk: %s\n", result.RiskAssessment.Level)
		fmt.Fprintf(os.Stderr, "✓ Processing time: %v\n", result.ProcessingTime.Round(time.Millisecond))
		fmt.Fprintln(os.Stderr)
	}

	return writeResult(snapshot.Result, outJSON)
}

// pollJob waits for the job to reach a terminal state, reporting progress in
// verbose mode.
func pollJob(ctx context.Context, registry *jobs.Registry, jobID string) (model.JobSnapshot, error) {
	lastProgress := -1
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		snapshot, ok := registry.Status(jobID)
		if !ok {
			return model.JobSnapshot{}, fmt.Errorf("job %s not found", jobID)
		}
		if verbose && snapshot.Progress != lastProgress {
			fmt.Fprintf(os.Stderr, "⚙️  Progress: %d%%\n", snapshot.Progress)
			lastProgress = snapshot.Progress
		}
		if snapshot.State.Terminal() {
			return snapshot, nil
		}

		select {
		case <-ctx.Done():
			return model.JobSnapshot{}, fmt.Errorf("check timed out: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}

// buildConfig merges defaults, environment and flags.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.HTTP.InsecureTLS = insecureTLS
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy
	cfg.Cache.Enabled = !noCache
	cfg.Interact.Enabled = !noInteract
	cfg.Output.Verbose = verbose

	cfg.Discovery.SearchAPIKey = firstNonEmpty(searchAPIKey, os.Getenv("VERIDICT_SEARCH_API_KEY"))
	cfg.Discovery.NewsAPIKey = firstNonEmpty(newsAPIKey, os.Getenv("VERIDICT_NEWS_API_KEY"))

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel

		// Get API key from environment
		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "anthropic", "claude":
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
			}
		case "ollama":
			// Ollama doesn't need an API key
			baseURL := os.Getenv("OLLAMA_BASE_URL")
			if baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}

	return cfg, nil
}

func newLogger() *log.Logger {
	if verbose {
		return log.New(os.Stderr, "veridict: ", log.LstdFlags)
	}
	return log.New(os.Stderr, "veridict: ", 0)
}

func writeResult(result *model.FactCheckResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	data = append(data, '\n')

	if path == "" || path == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Report written: %s\n", path)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
