package build

import "github.com/fwojciec/docdex"

// globalMetadata resolves the site-wide metadata block injected into
// every record of a build. Explicit configuration always wins over
// inference from the site-wide title/name/version values.
func globalMetadata(cfg docdex.BuildConfig) docdex.GlobalMetadata {
	if cfg.GlobalMetadata != nil {
		return *cfg.GlobalMetadata
	}
	if !cfg.InferGlobalMetadata {
		return docdex.GlobalMetadata{}
	}

	var meta docdex.GlobalMetadata
	if cfg.SiteTitle != "" || cfg.SiteVersion != "" {
		meta.Book = &docdex.BookMeta{
			Title:   cfg.SiteTitle,
			Version: cfg.SiteVersion,
		}
	}
	if cfg.SiteName != "" {
		meta.Product = &docdex.ProductMeta{
			Name:    cfg.SiteName,
			Version: cfg.SiteVersion,
		}
		meta.Site = &docdex.SiteMeta{Name: cfg.SiteName}
	}
	return meta
}
