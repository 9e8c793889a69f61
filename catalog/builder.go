package catalog

import (
	"fmt"

	"github.com/trafficlens/refsearch/core"
)

// Contributor receives the builder after the definitions document has been
// flattened and before the catalog freezes. Contributors run in
// registration order and may append or override entries; an error aborts
// the build so no partial catalog is ever installed.
type Contributor func(*Builder) error

// Builder accumulates catalog entries. It is not safe for concurrent use;
// Build produces the immutable catalog that is.
type Builder struct {
	entries     map[string]core.Definition
	order       []string
	fingerprint core.Fingerprint
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{entries: make(map[string]core.Definition)}
}

// SetFingerprint records the fingerprint of the source document.
func (b *Builder) SetFingerprint(fp core.Fingerprint) {
	b.fingerprint = fp
}

// AddDocument flattens a parsed definitions document into the builder:
// for each engine, for each block, one entry per URL pattern. Document
// order is authoritative, a later URL overwrites an earlier identical
// one. Parameter rules are compiled here so a bad pattern fails the
// whole load.
func (b *Builder) AddDocument(doc Document) error {
	for _, engine := range doc {
		for i, blk := range engine.Blocks {
			if len(blk.URLs) == 0 {
				return fmt.Errorf("engine %q block %d: %w", engine.Name, i, ErrMissingURLs)
			}

			rules := make([]core.ParamRule, 0, len(blk.Params))
			for _, p := range blk.Params {
				rule, err := core.ParseParamRule(p)
				if err != nil {
					return fmt.Errorf("engine %q block %d: %w", engine.Name, i, err)
				}
				rules = append(rules, rule)
			}

			def := core.Definition{
				Name:     engine.Name,
				Params:   rules,
				Backlink: blk.Backlink,
				Charsets: blk.Charsets,
			}
			for _, pattern := range blk.URLs {
				if err := b.Put(pattern, def); err != nil {
					return fmt.Errorf("engine %q block %d: %w", engine.Name, i, err)
				}
			}
		}
	}
	return nil
}

// Put adds or overrides a single entry. No entry is ever partially
// written: validation happens before the builder is touched.
func (b *Builder) Put(pattern string, def core.Definition) error {
	entry := core.CatalogEntry{Pattern: pattern, Definition: def}
	if err := core.ValidateEntry(&entry); err != nil {
		return err
	}
	if _, seen := b.entries[pattern]; !seen {
		b.order = append(b.order, pattern)
	}
	b.entries[pattern] = def.Clone()
	return nil
}

// Len returns the number of distinct URL patterns added so far.
func (b *Builder) Len() int {
	return len(b.order)
}

// Build freezes the accumulated entries into an immutable catalog.
// The builder may keep being used afterwards; the catalog will not
// observe later changes.
func (b *Builder) Build() *core.Catalog {
	entries := make([]core.CatalogEntry, 0, len(b.order))
	for _, pattern := range b.order {
		entries = append(entries, core.CatalogEntry{Pattern: pattern, Definition: b.entries[pattern]})
	}
	return core.NewCatalog(entries, b.fingerprint)
}

// Build parses a definitions document, flattens it, runs the contributors,
// and freezes the result. This is the one-call path used by the service.
func Build(document []byte, contributors ...Contributor) (*core.Catalog, error) {
	doc, err := ParseDocument(document)
	if err != nil {
		return nil, err
	}

	b := NewBuilder()
	b.SetFingerprint(core.FingerprintOf(document))
	if err := b.AddDocument(doc); err != nil {
		return nil, err
	}

	for _, contribute := range contributors {
		if err := contribute(b); err != nil {
			return nil, fmt.Errorf("catalog contributor: %w", err)
		}
	}

	return b.Build(), nil
}
