package model

import "time"

// Config is the full runtime configuration. Defaults mirror the budgets the
// pipeline was tuned for; everything is overridable via config file, env or
// flags (see internal/cli).
type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	Budget      BudgetConfig      `yaml:"budget"`
	Discovery   DiscoveryConfig   `yaml:"discovery"`
	Interact    InteractConfig    `yaml:"interact"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Jobs        JobsConfig        `yaml:"jobs"`
	Cache       CacheConfig       `yaml:"cache"`
	LLM         LLMConfig         `yaml:"llm"`
	Output      OutputConfig      `yaml:"output"`
}

// HTTPConfig controls the plain HTTP fetch path.
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout"`
	UserAgent     string        `yaml:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes"`
	InsecureTLS   bool          `yaml:"insecure_tls"`
	HTTPProxy     string        `yaml:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy"`
	NoProxy       string        `yaml:"no_proxy"`
	RespectRobots bool          `yaml:"respect_robots"`
	RatePerDomain float64       `yaml:"rate_per_domain"` // requests/sec
	RateBurst     int           `yaml:"rate_burst"`
}

// BudgetConfig holds the global wall-clock budget and per-phase sub-budgets.
type BudgetConfig struct {
	Global        time.Duration `yaml:"global"`
	Preprocess    time.Duration `yaml:"preprocess"`
	Discovery     time.Duration `yaml:"discovery"`
	Access        time.Duration `yaml:"access"`
	PerFetch      time.Duration `yaml:"per_fetch"`
	Interact      time.Duration `yaml:"interact"`
	PerInteract   time.Duration `yaml:"per_interact"`
	Analysis      time.Duration `yaml:"analysis"`
	AnalysisFloor time.Duration `yaml:"analysis_floor"` // minimum remaining budget to start analysis-bound phases

	// Simplified fallback pipeline runs with tighter per-call limits.
	SimplifiedDiscovery time.Duration `yaml:"simplified_discovery"`
	SimplifiedAccess    time.Duration `yaml:"simplified_access"`
	SimplifiedPerFetch  time.Duration `yaml:"simplified_per_fetch"`
}

// DiscoveryConfig bounds the discovery fan-out.
type DiscoveryConfig struct {
	MaxCandidates   int    `yaml:"max_candidates"`
	PerAdapterLimit int    `yaml:"per_adapter_limit"`
	SearchAPIKey    string `yaml:"search_api_key"`
	SearchEndpoint  string `yaml:"search_endpoint"`
	NewsAPIKey      string `yaml:"news_api_key"`
	NewsEndpoint    string `yaml:"news_endpoint"`
}

// InteractConfig controls the scripted-rendering stage.
type InteractConfig struct {
	Enabled  bool   `yaml:"enabled"`
	MaxChars int    `yaml:"max_chars"`
	ChromeUA string `yaml:"chrome_ua"`
}

// ConcurrencyConfig bounds fan-out widths.
type ConcurrencyConfig struct {
	ExtractWorkers int `yaml:"extract_workers"`
}

// JobsConfig governs the admission layer.
type JobsConfig struct {
	Slots       int           `yaml:"slots"`
	DedupWindow time.Duration `yaml:"dedup_window"`
}

// CacheConfig controls the fetched-page cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
}

// LLMConfig selects the analysis provider.
type LLMConfig struct {
	Provider  string `yaml:"provider"` // openai, anthropic, ollama, ""
	Model     string `yaml:"model"`
	APIKey    string `yaml:"api_key"`
	BaseURL   string `yaml:"base_url"`
	Timeout   int    `yaml:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:       15 * time.Second,
			UserAgent:     "Veridict/0.2 (+https://github.com/ppiankov/veridict)",
			MaxBodyBytes:  2_000_000,
			RespectRobots: true,
			RatePerDomain: 2,
			RateBurst:     4,
		},
		Budget: BudgetConfig{
			Global:        275 * time.Second,
			Preprocess:    15 * time.Second,
			Discovery:     90 * time.Second,
			Access:        120 * time.Second,
			PerFetch:      12 * time.Second,
			Interact:      30 * time.Second,
			PerInteract:   12 * time.Second,
			Analysis:      45 * time.Second,
			AnalysisFloor: 30 * time.Second,

			SimplifiedDiscovery: 20 * time.Second,
			SimplifiedAccess:    30 * time.Second,
			SimplifiedPerFetch:  6 * time.Second,
		},
		Discovery: DiscoveryConfig{
			MaxCandidates:   50,
			PerAdapterLimit: 10,
			SearchEndpoint:  "https://api.search.brave.com/res/v1/web/search",
			NewsEndpoint:    "https://newsapi.org/v2/everything",
		},
		Interact: InteractConfig{
			Enabled:  true,
			MaxChars: 20_000,
		},
		Concurrency: ConcurrencyConfig{
			ExtractWorkers: 8,
		},
		Jobs: JobsConfig{
			Slots:       2,
			DedupWindow: 30 * time.Second,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     15 * time.Minute,
		},
		LLM: LLMConfig{
			Provider:  "",
			Timeout:   30,
			MaxTokens: 1200,
		},
	}
}
