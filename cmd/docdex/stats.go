package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/docdex"
	dochttp "github.com/fwojciec/docdex/http"
	"github.com/fwojciec/docdex/load"
	docslog "github.com/fwojciec/docdex/slog"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	store, err := loadStore(deps, c.Source)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	stats := store.Stats()
	fmt.Fprintf(deps.Stdout, "Documents:           %d\n", stats.Total)
	fmt.Fprintf(deps.Stdout, "With summary:        %d\n", stats.WithSummary)
	fmt.Fprintf(deps.Stdout, "With headings:       %d\n", stats.WithHeadings)
	fmt.Fprintf(deps.Stdout, "With tags:           %d\n", stats.WithTags)
	fmt.Fprintf(deps.Stdout, "Mean content length: %.0f\n", stats.MeanContentLength)
	fmt.Fprintf(deps.Stdout, "Dropped:             %d\n", stats.Dropped)
	return nil
}

// loadStore materializes a document store from either a local artifact file
// or an HTTP(S) base URL tried against the standard candidate paths.
func loadStore(deps *Dependencies, source string) (*docdex.Store, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		fetcher := docslog.NewLoggingFetcher(dochttp.NewFetcher(), deps.Logger)
		defer fetcher.Close()
		loader := &load.Loader{
			Fetcher: fetcher,
			BaseURL: source,
			Logger:  deps.Logger,
		}
		return loader.Load(deps.Ctx)
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, docdex.Errorf(docdex.EUNAVAILABLE, "cannot read index artifact %q: %v", source, err)
	}
	raws, err := docdex.DecodeArtifact(data)
	if err != nil {
		return nil, err
	}
	records := make([]*docdex.DocumentRecord, len(raws))
	for i, raw := range raws {
		records[i] = docdex.SanitizeRecord(raw)
	}
	return docdex.NewStore(records), nil
}
