// Package build provides index build orchestration. It walks the
// documentation page tree, extracts and filters per-page fields under a
// declarative configuration, and emits one JSON document per page plus an
// aggregate main index.
package build

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docdex"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Builder orchestrates one index build.
type Builder struct {
	Source       docdex.PageSource
	Gate         docdex.Gate              // optional; nil means every page is included
	Converter    docdex.Converter         // required
	Extractor    docdex.FeatureExtractor  // optional; unused under lazy extraction
	Fingerprints docdex.FingerprintStore  // optional; enables incremental builds and history
	Artifacts    docdex.ArtifactStore     // required
	Config       docdex.BuildConfig
	Logger       *slog.Logger
}

// Result holds the outcome of a build.
type Result struct {
	BuildID       string
	Pages         int
	Built         int
	Reused        int
	Skipped       int
	Failed        int
	MainIndexDocs int
	Bytes         int
}

// item is one page admitted for extraction, with its gating decision.
type item struct {
	page   *docdex.Page
	blocks []string
}

// pageResult holds the outcome of processing a single page.
type pageResult struct {
	record *docdex.DocumentRecord
	hash   string
	reused bool
	err    error
}

// Build runs the pipeline: list pages, filter and gate, extract in
// position-ordered batches, emit artifacts atomically, and update
// fingerprints. Per-page failures are logged and the page omitted; the
// build aborts on a page error only under fail_fast. The emitted artifact
// for a fixed input and configuration is byte-identical regardless of
// worker count or batch size: results land in a pre-allocated sequence
// indexed by page-tree position, never by completion order.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	cfg := b.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := b.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	result := &Result{BuildID: uuid.New().String()}
	if !cfg.Enabled {
		return result, nil
	}
	startedAt := time.Now().UTC()

	pages, err := b.Source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	result.Pages = len(pages)

	items, skipped, failed, err := b.admit(ctx, pages, logger)
	if err != nil {
		return nil, err
	}
	result.Skipped = skipped
	result.Failed = failed

	global := globalMetadata(cfg)

	results := make([]pageResult, len(items))
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = len(items)
	}
	workers := b.effectiveWorkers()

	for start := 0; start < len(items); start += batchSize {
		end := start + batchSize
		if end > len(items) {
			end = len(items)
		}
		batch := items[start:end]

		if workers > 1 {
			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(workers)
			for i, it := range batch {
				g.Go(func() error {
					results[start+i] = b.processPage(gctx, it, global)
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return nil, err
			}
		} else {
			for i, it := range batch {
				results[start+i] = b.processPage(ctx, it, global)
			}
		}
	}

	// Collect in tree order; a single page's failure never aborts the
	// build unless fail_fast is configured.
	records := make([]*docdex.DocumentRecord, 0, len(results))
	hashes := make(map[string]string, len(results))
	reusedIDs := make(map[string]bool)
	for i, res := range results {
		if res.err != nil {
			result.Failed++
			logger.Error("page extraction failed", "page", items[i].page.ID, "err", res.err)
			if cfg.FailFast {
				return nil, fmt.Errorf("page %q: %w", items[i].page.ID, res.err)
			}
			continue
		}
		if res.reused {
			result.Reused++
			reusedIDs[res.record.ID] = true
		} else {
			result.Built++
		}
		records = append(records, res.record)
		hashes[res.record.ID] = res.hash
	}

	bytes, mainDocs, err := b.emit(ctx, records)
	if err != nil {
		if abortErr := b.Artifacts.Abort(); abortErr != nil {
			logger.Error("artifact abort failed", "err", abortErr)
		}
		return nil, fmt.Errorf("emit artifacts: %w", err)
	}
	if err := b.Artifacts.Commit(); err != nil {
		return nil, fmt.Errorf("commit artifacts: %w", err)
	}
	result.Bytes = bytes
	result.MainIndexDocs = mainDocs

	b.saveFingerprints(ctx, records, hashes, reusedIDs, logger)
	b.recordHistory(ctx, result, startedAt, logger)

	logger.Info("build finished",
		"build", result.BuildID,
		"pages", result.Pages,
		"built", result.Built,
		"reused", result.Reused,
		"skipped", result.Skipped,
		"failed", result.Failed,
		"bytes", result.Bytes,
	)
	return result, nil
}

// admit applies exclude patterns, the large-file threshold, and content
// gating, returning the pages to extract in tree order.
func (b *Builder) admit(ctx context.Context, pages []*docdex.Page, logger *slog.Logger) (items []item, skipped, failed int, err error) {
	cfg := b.Config
	for _, page := range pages {
		if excludedByPattern(page.Path, cfg.ExcludePatterns) {
			skipped++
			continue
		}
		size := page.Size
		if size == 0 {
			size = len(page.Body)
		}
		if cfg.SkipLargeFiles > 0 && size > cfg.SkipLargeFiles {
			logger.Debug("skipping large page", "page", page.ID, "bytes", size)
			skipped++
			continue
		}

		var blocks []string
		if b.Gate != nil {
			decision, err := b.Gate.Decide(ctx, page)
			if err != nil {
				failed++
				logger.Error("gate decision failed", "page", page.ID, "err", err)
				if cfg.FailFast {
					return nil, skipped, failed, fmt.Errorf("gate page %q: %w", page.ID, err)
				}
				continue
			}
			if !decision.Include {
				skipped++
				continue
			}
			blocks = decision.ExcludeBlocks
		}

		items = append(items, item{page: page, blocks: blocks})
	}
	return items, skipped, failed, nil
}

// processPage extracts one page into a record, reusing the previously
// emitted record when the page is unchanged under an incremental build.
func (b *Builder) processPage(ctx context.Context, it item, global docdex.GlobalMetadata) pageResult {
	cfg := b.Config
	page := it.page
	hash := pageHash(page.Body, it.blocks)

	if cfg.IncrementalBuild && b.Fingerprints != nil {
		if fp, err := b.Fingerprints.FindFingerprint(ctx, page.ID); err == nil && fp.Hash == hash && len(fp.Record) > 0 {
			var rec docdex.DocumentRecord
			if err := json.Unmarshal(fp.Record, &rec); err == nil {
				return pageResult{record: &rec, hash: hash, reused: true}
			}
		}
	}

	body := page.Body
	if cfg.FilterSearchClutter {
		body = StripClutter(body)
	}

	markdown, err := b.Converter.Convert(body)
	if err != nil {
		return pageResult{hash: hash, err: fmt.Errorf("convert: %w", err)}
	}
	if len(it.blocks) > 0 {
		markdown = docdex.RemoveSections(markdown, it.blocks)
	}

	headings := docdex.ExtractHeadings(markdown)

	rec := &docdex.DocumentRecord{
		ID:           page.ID,
		Title:        page.Title,
		Description:  page.Meta.Description,
		Summary:      docdex.Truncate(page.Meta.Summary, cfg.SummaryMaxLength),
		Content:      docdex.Truncate(markdown, cfg.ContentMaxLength),
		URL:          recordURL(page),
		LastModified: lastModified(page),
		Headings:     headings,
		HeadingsText: docdex.HeadingsText(headings),
		Keywords:     capStrings(page.Meta.Keywords, cfg.KeywordsMaxCount),
		Tags:         page.Meta.Tags,
		Topics:       page.Meta.Topics,
		Audience:     page.Meta.Audience,
		ContentType:  page.Meta.ContentType,
		Difficulty:   page.Meta.Difficulty,
		DocType:      page.Meta.DocType,
		Author:       page.Meta.Author,
		SectionPath:  page.Meta.SectionPath,
		Facets:       page.Meta.Facets,
		Book:         global.Book,
		Product:      global.Product,
		Site:         global.Site,
	}

	if !cfg.LazyExtraction && !cfg.SkipComplexParsing && b.Extractor != nil {
		features, err := b.Extractor.Extract(body, cfg.BaseURL)
		if err != nil {
			return pageResult{hash: hash, err: fmt.Errorf("extract features: %w", err)}
		}
		rec.Links = features.Links
		rec.CodeBlocks = features.CodeBlocks
		rec.Images = features.Images
		rec.Keywords = capStrings(mergeKeywords(rec.Keywords, features.Keywords), cfg.KeywordsMaxCount)
	}

	return pageResult{record: rec, hash: hash}
}

// emit writes per-page records and the main index to the artifact store.
func (b *Builder) emit(ctx context.Context, records []*docdex.DocumentRecord) (bytes, mainDocs int, err error) {
	cfg := b.Config

	for _, rec := range records {
		data, err := b.marshal(rec)
		if err != nil {
			return 0, 0, err
		}
		if err := b.Artifacts.SavePage(ctx, rec.ID, data); err != nil {
			return 0, 0, err
		}
		bytes += len(data)
	}

	if cfg.MainIndexMode == docdex.MainIndexDisabled {
		return bytes, 0, nil
	}

	main := records
	if cfg.MaxMainIndexDocs > 0 && len(main) > cfg.MaxMainIndexDocs {
		main = main[:cfg.MaxMainIndexDocs]
	}
	if cfg.MainIndexMode == docdex.MainIndexMetadataOnly {
		reduced := make([]*docdex.DocumentRecord, len(main))
		for i, rec := range main {
			reduced[i] = rec.MetadataOnly()
		}
		main = reduced
	}

	data, err := b.marshal(main)
	if err != nil {
		return 0, 0, err
	}
	if err := b.Artifacts.SaveMain(ctx, data); err != nil {
		return 0, 0, err
	}
	return bytes + len(data), len(main), nil
}

func (b *Builder) marshal(v any) ([]byte, error) {
	if b.Config.MinifyJSON {
		return json.Marshal(v)
	}
	return json.MarshalIndent(v, "", "  ")
}

// saveFingerprints persists hashes and records for freshly built pages.
// Fingerprint failures are logged, never fatal: the next build simply
// re-extracts.
func (b *Builder) saveFingerprints(ctx context.Context, records []*docdex.DocumentRecord, hashes map[string]string, reused map[string]bool, logger *slog.Logger) {
	if b.Fingerprints == nil {
		return
	}
	builtAt := time.Now().UTC()
	for _, rec := range records {
		if reused[rec.ID] {
			continue
		}
		data, err := json.Marshal(rec)
		if err != nil {
			logger.Error("fingerprint marshal failed", "page", rec.ID, "err", err)
			continue
		}
		fp := &docdex.Fingerprint{
			PageID:  rec.ID,
			Hash:    hashes[rec.ID],
			Record:  data,
			BuiltAt: builtAt,
		}
		if err := b.Fingerprints.SaveFingerprint(ctx, fp); err != nil {
			logger.Error("fingerprint save failed", "page", rec.ID, "err", err)
		}
	}
}

func (b *Builder) recordHistory(ctx context.Context, result *Result, startedAt time.Time, logger *slog.Logger) {
	if b.Fingerprints == nil {
		return
	}
	run := &docdex.BuildRun{
		ID:         result.BuildID,
		StartedAt:  startedAt,
		FinishedAt: time.Now().UTC(),
		Pages:      result.Pages,
		Built:      result.Built,
		Reused:     result.Reused,
		Skipped:    result.Skipped,
		Failed:     result.Failed,
	}
	if err := b.Fingerprints.RecordBuild(ctx, run); err != nil {
		logger.Error("build history record failed", "build", run.ID, "err", err)
	}
}

// effectiveWorkers derives the worker count from the parallel settings
// and the per-worker memory ceiling. With a memory limit and a large-file
// threshold configured, in-flight pages are bounded so that
// workers * threshold stays within the limit.
func (b *Builder) effectiveWorkers() int {
	cfg := b.Config
	if !cfg.Parallel {
		return 1
	}
	workers := cfg.ParallelWorkers
	if workers <= 0 {
		workers = docdex.DefaultParallelWorkers
	}
	if cfg.MemoryLimitMB > 0 && cfg.SkipLargeFiles > 0 {
		maxByMemory := cfg.MemoryLimitMB * 1024 * 1024 / cfg.SkipLargeFiles
		if maxByMemory < 1 {
			maxByMemory = 1
		}
		if workers > maxByMemory {
			workers = maxByMemory
		}
	}
	return workers
}

// pageHash fingerprints a page's body together with its gating decision.
// Gating is authoritative, so a changed block exclusion must invalidate
// the cached record even when the body itself is unchanged. Blocks are
// hashed in sorted order to keep the fingerprint stable across gate
// implementations.
func pageHash(body string, blocks []string) string {
	d := xxhash.New()
	_, _ = d.WriteString(body)
	if len(blocks) > 0 {
		sorted := append([]string(nil), blocks...)
		sort.Strings(sorted)
		for _, block := range sorted {
			_, _ = d.WriteString("\x00")
			_, _ = d.WriteString(block)
		}
	}
	return fmt.Sprintf("%x", d.Sum64())
}

func excludedByPattern(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return true
		}
	}
	return false
}

func recordURL(page *docdex.Page) string {
	if page.Meta.URL != "" {
		return page.Meta.URL
	}
	return "/" + page.ID + ".html"
}

func lastModified(page *docdex.Page) string {
	if page.Meta.LastModified != "" {
		return page.Meta.LastModified
	}
	if !page.ModTime.IsZero() {
		return page.ModTime.UTC().Format(time.RFC3339)
	}
	return ""
}

// mergeKeywords appends extracted keywords after front-matter keywords,
// dropping duplicates while preserving order.
func mergeKeywords(declared, extracted []string) []string {
	seen := make(map[string]bool, len(declared)+len(extracted))
	out := make([]string, 0, len(declared)+len(extracted))
	for _, kw := range declared {
		if kw != "" && !seen[kw] {
			seen[kw] = true
			out = append(out, kw)
		}
	}
	for _, kw := range extracted {
		if kw != "" && !seen[kw] {
			seen[kw] = true
			out = append(out, kw)
		}
	}
	return out
}

func capStrings(values []string, max int) []string {
	if max > 0 && len(values) > max {
		return values[:max]
	}
	return values
}
