package docdex

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Main index modes.
const (
	MainIndexDisabled     = "disabled"
	MainIndexMetadataOnly = "metadata_only"
	MainIndexFull         = "full"
)

// Builder configuration defaults.
const (
	DefaultContentMaxLength = 50000
	DefaultSummaryMaxLength = 500
	DefaultKeywordsMaxCount = 50
	DefaultSkipLargeFiles   = 100000
	DefaultBatchSize        = 50
	DefaultParallelWorkers  = 4
)

// GlobalMetadata is site-wide metadata injected verbatim into every
// record of a build.
type GlobalMetadata struct {
	Book    *BookMeta    `yaml:"book"`
	Product *ProductMeta `yaml:"product"`
	Site    *SiteMeta    `yaml:"site"`
}

// BuildConfig is the declarative index builder configuration. All options
// take effect independently; there is no ordering dependency between them.
type BuildConfig struct {
	// Enabled is the master switch. When false the builder performs no
	// work and emits nothing.
	Enabled bool `yaml:"enabled"`

	// MainIndexMode controls the aggregate index: "disabled" (not
	// produced), "metadata_only" (id/title/description/tags/url), or
	// "full" (complete per-page records).
	MainIndexMode string `yaml:"main_index_mode"`

	// MaxMainIndexDocs caps the aggregate index record count. 0 means
	// unbounded. When exceeded, the first N records in page-tree order
	// are kept so repeated builds are reproducible.
	MaxMainIndexDocs int `yaml:"max_main_index_docs"`

	// Per-field truncation limits applied at emission time. The loader
	// re-applies its own limits independently.
	ContentMaxLength int `yaml:"content_max_length"`
	SummaryMaxLength int `yaml:"summary_max_length"`
	KeywordsMaxCount int `yaml:"keywords_max_count"`

	// SkipLargeFiles excludes pages whose raw rendered size exceeds this
	// byte threshold from extraction entirely. 0 disables the check.
	SkipLargeFiles int `yaml:"skip_large_files"`

	// ExcludePatterns are glob patterns (doublestar syntax) matched
	// against page paths; matching pages are excluded from extraction.
	ExcludePatterns []string `yaml:"exclude_patterns"`

	// LazyExtraction and SkipComplexParsing skip feature extraction
	// (keywords, links, code blocks, images) to reduce build latency.
	LazyExtraction     bool `yaml:"lazy_extraction"`
	SkipComplexParsing bool `yaml:"skip_complex_parsing"`

	// Execution controls. Output is byte-identical regardless of these.
	Parallel        bool `yaml:"parallel"`
	ParallelWorkers int  `yaml:"parallel_workers"`
	BatchSize       int  `yaml:"batch_size"`
	MemoryLimitMB   int  `yaml:"memory_limit_mb"`

	// IncrementalBuild re-extracts only pages whose content hash changed
	// since the last build; unchanged pages' records are reused verbatim.
	IncrementalBuild bool `yaml:"incremental_build"`

	// MinifyJSON controls output formatting only.
	MinifyJSON bool `yaml:"minify_json"`

	// FilterSearchClutter strips non-searchable structural content
	// (vector graphics markup, navigation directives) before emission.
	FilterSearchClutter bool `yaml:"filter_search_clutter"`

	// FailFast aborts the build on the first page extraction error
	// instead of logging and omitting the page.
	FailFast bool `yaml:"fail_fast"`

	// GlobalMetadata is injected verbatim into every record. When nil
	// and InferGlobalMetadata is set, metadata is inferred from the
	// Site* fields. Explicit configuration always wins over inference.
	GlobalMetadata      *GlobalMetadata `yaml:"global_metadata"`
	InferGlobalMetadata bool            `yaml:"infer_global_metadata"`

	// Site-wide values used by metadata inference.
	SiteTitle   string `yaml:"site_title"`
	SiteName    string `yaml:"site_name"`
	SiteVersion string `yaml:"site_version"`

	// BaseURL is the site base used for link classification and for
	// deriving record URLs when a page declares none.
	BaseURL string `yaml:"base_url"`
}

// DefaultBuildConfig returns a BuildConfig with documented defaults.
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		Enabled:             true,
		MainIndexMode:       MainIndexFull,
		ContentMaxLength:    DefaultContentMaxLength,
		SummaryMaxLength:    DefaultSummaryMaxLength,
		KeywordsMaxCount:    DefaultKeywordsMaxCount,
		SkipLargeFiles:      DefaultSkipLargeFiles,
		BatchSize:           DefaultBatchSize,
		ParallelWorkers:     DefaultParallelWorkers,
		MinifyJSON:          true,
		FilterSearchClutter: true,
	}
}

// Validate returns an error if the configuration is invalid or
// contradictory. A failed validation aborts the build before any
// extraction.
func (c *BuildConfig) Validate() error {
	switch c.MainIndexMode {
	case MainIndexDisabled, MainIndexMetadataOnly, MainIndexFull:
	default:
		return Errorf(EINVALID, "unknown main_index_mode %q", c.MainIndexMode)
	}
	if c.MaxMainIndexDocs < 0 {
		return Errorf(EINVALID, "max_main_index_docs must not be negative")
	}
	if c.ContentMaxLength < 0 || c.SummaryMaxLength < 0 || c.KeywordsMaxCount < 0 {
		return Errorf(EINVALID, "field limits must not be negative")
	}
	if c.SkipLargeFiles < 0 {
		return Errorf(EINVALID, "skip_large_files must not be negative")
	}
	if c.ParallelWorkers < 0 {
		return Errorf(EINVALID, "parallel_workers must not be negative")
	}
	if c.BatchSize < 0 {
		return Errorf(EINVALID, "batch_size must not be negative")
	}
	if c.MemoryLimitMB < 0 {
		return Errorf(EINVALID, "memory_limit_mb must not be negative")
	}
	return nil
}

// LoadBuildConfig reads a YAML configuration file over the defaults.
// Options absent from the file keep their default values.
func LoadBuildConfig(path string) (BuildConfig, error) {
	config := DefaultBuildConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return config, Errorf(EINVALID, "read config %q: %v", path, err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, Errorf(EINVALID, "parse config %q: %v", path, err)
	}
	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}
