// Package cache materializes the contact database: the aggregated record
// list across all configured source documents, with staleness tracking.
//
// The cache is demand-driven and single-threaded. Every query goes through
// Records, which rescans first when the cache is stale. A rescan is a
// whole-database replacement: the new record list is built completely and
// swapped in with a single assignment, so a caller never observes a
// half-built list. Callers needing cross-goroutine access must add their
// own mutual exclusion.
package cache

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/aldertree/rolo/internal/contact"
	"github.com/aldertree/rolo/internal/expr"
	"github.com/aldertree/rolo/internal/resolve"
	"github.com/aldertree/rolo/internal/scan"
)

// ErrNoSources means no configured source resolved to a scannable file.
// The previous cache contents, if any, are left untouched.
var ErrNoSources = errors.New("no contact sources configured")

// Cache owns the materialized record list for one configuration. Construct
// one per configuration; there is no package-level instance.
type Cache struct {
	sources  func() ([]string, error)
	matcher  expr.Expr
	live     *resolve.FileSet
	warn     scan.WarnFunc
	records  []contact.Record
	lastScan time.Time
	scanned  bool
	rescans  int
}

// New creates an empty cache. sources is re-evaluated on every rescan so
// configured globs and directories pick up new files; matcher may be nil
// to accept every heading.
func New(sources func() ([]string, error), matcher expr.Expr, warn scan.WarnFunc) *Cache {
	return &Cache{
		sources: sources,
		matcher: matcher,
		live:    resolve.NewFileSet(),
		warn:    warn,
	}
}

// Live exposes the live document set for location resolution.
func (c *Cache) Live() *resolve.FileSet { return c.live }

// Records returns the cached record list, rescanning first if the cache is
// stale. The returned slice is the cache's own; callers treat it as
// read-only.
func (c *Cache) Records() ([]contact.Record, error) {
	if c.Stale() {
		if err := c.Rescan(); err != nil {
			return nil, err
		}
	}
	return c.records, nil
}

// Stale reports whether the next query must rescan: the cache has never
// been scanned, a source document changed after the last scan, or a cached
// record's location no longer resolves.
func (c *Cache) Stale() bool {
	if !c.scanned {
		return true
	}

	srcs, err := c.sources()
	if err != nil || len(srcs) == 0 {
		// Let Rescan surface the configuration error.
		return true
	}
	for _, src := range srcs {
		info, err := os.Stat(src)
		if err != nil {
			continue // disappeared source shows up as a dead reference
		}
		if info.ModTime().After(c.lastScan) {
			return true
		}
	}

	for _, rec := range c.records {
		if c.live.Dead(rec.Loc) {
			return true
		}
	}
	return false
}

// Rescan rebuilds the whole record list from every configured source.
// Sources that are missing or malformed are skipped with a warning; zero
// resolvable sources is a configuration error that leaves the cache as it
// was.
func (c *Cache) Rescan() error {
	srcs, err := c.sources()
	if err != nil {
		return fmt.Errorf("resolving sources: %w", err)
	}
	if len(srcs) == 0 {
		return ErrNoSources
	}

	records, docs := scan.Documents(srcs, c.matcher, c.warn)
	if len(docs) == 0 {
		return fmt.Errorf("%w: none of %d sources readable", ErrNoSources, len(srcs))
	}

	c.live.Clear()
	for _, doc := range docs {
		c.live.Add(doc)
	}

	// Single assignment: queries never see a partial list.
	c.records = records
	c.lastScan = time.Now()
	c.scanned = true
	c.rescans++
	return nil
}

// LastScan returns the completion time of the last successful rescan.
func (c *Cache) LastScan() (time.Time, bool) {
	return c.lastScan, c.scanned
}
