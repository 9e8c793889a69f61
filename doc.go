// Package refsearch identifies the search engine behind an HTTP
// referrer URL and extracts the keyword the visitor searched for.
//
// The top-level Service wires the pieces together: a YAML definitions
// document (bundled defaults or caller-supplied) compiled into an
// immutable catalog, an optional BadgerDB-backed repository for
// persisted catalog snapshots, and a classifier answering lookups.
//
//	svc, err := refsearch.New(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	match, ok := svc.Classify("http://www.google.com/search?q=web+analytics")
//
// The subpackages are usable on their own: catalog for building and
// querying definition catalogs, classify for matching and extraction
// over one snapshot, storage for persistence, and batch for concurrent
// bulk classification.
package refsearch
