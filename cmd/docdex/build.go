package main

import (
	"fmt"

	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/build"
	"github.com/fwojciec/docdex/fs"
	"github.com/fwojciec/docdex/goquery"
	"github.com/fwojciec/docdex/htmltomarkdown"
	docslog "github.com/fwojciec/docdex/slog"
)

// Run executes the build command.
func (c *BuildCmd) Run(deps *Dependencies) error {
	config := docdex.DefaultBuildConfig()
	if c.Config != "" {
		loaded, err := docdex.LoadBuildConfig(c.Config)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
			return err
		}
		config = loaded
	}

	config = c.applyFlags(config)

	builder := &build.Builder{
		Source:       docslog.NewLoggingSource(fs.NewFileSource(c.Dir), deps.Logger),
		Converter:    htmltomarkdown.NewConverter(),
		Extractor:    goquery.NewExtractor(),
		Fingerprints: deps.Fingerprints,
		Artifacts:    fs.NewArtifactStore(c.Out, "search"),
		Config:       config,
		Logger:       deps.Logger,
	}

	result, err := builder.Build(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	if !config.Enabled {
		fmt.Fprintln(deps.Stdout, "Index build disabled; nothing emitted.")
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Build %s: %d pages, %d built, %d reused, %d skipped, %d failed, %s written\n",
		result.BuildID, result.Pages, result.Built, result.Reused,
		result.Skipped, result.Failed, formatBytes(result.Bytes))
	return nil
}

// applyFlags layers command-line flags over the loaded configuration.
// A worker count of 0 or 1 means sequential processing.
func (c *BuildCmd) applyFlags(config docdex.BuildConfig) docdex.BuildConfig {
	if c.Workers >= 0 {
		config.Parallel = c.Workers > 1
		config.ParallelWorkers = c.Workers
	}
	if c.BatchSize >= 0 {
		config.BatchSize = c.BatchSize
	}
	if c.Incremental {
		config.IncrementalBuild = true
	}
	if len(c.Exclude) > 0 {
		config.ExcludePatterns = append(config.ExcludePatterns, c.Exclude...)
	}
	if c.Pretty {
		config.MinifyJSON = false
	}
	if c.FailFast {
		config.FailFast = true
	}
	return config
}

// formatBytes formats bytes in human-readable form.
func formatBytes(bytes int) string {
	const (
		kb = 1024
		mb = kb * 1024
	)
	switch {
	case bytes >= mb:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(mb))
	case bytes >= kb:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(kb))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
