package catalog

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/trafficlens/refsearch/core"
)

// nameIndexCacheKey is the fixed identifier the derived name index is
// cached under. A store holds exactly one catalog snapshot, so one slot
// is enough; a new snapshot means a new store and an empty cache.
const nameIndexCacheKey = "refsearch.nameindex"

// Store wraps a frozen catalog and serves the lookup surface the matcher
// and extractor consume. All lookups are pure reads; a Store is safe for
// concurrent use.
type Store struct {
	catalog *core.Catalog
	names   *lru.Cache[string, core.NameIndex]
}

// NewStore creates a store over a frozen catalog.
func NewStore(cat *core.Catalog) (*Store, error) {
	if cat == nil {
		return nil, ErrCatalogRequired
	}
	names, err := lru.New[string, core.NameIndex](1)
	if err != nil {
		return nil, err
	}
	return &Store{catalog: cat, names: names}, nil
}

// Catalog returns the underlying catalog snapshot.
func (s *Store) Catalog() *core.Catalog {
	return s.catalog
}

// DefinitionFor returns the definition for an exact URL pattern.
func (s *Store) DefinitionFor(host string) (core.Definition, bool) {
	return s.catalog.Get(host)
}

// ParametersFor returns the parameter rules for a URL pattern, empty if
// the pattern is unknown or declares none.
func (s *Store) ParametersFor(host string) []core.ParamRule {
	def, ok := s.catalog.Get(host)
	if !ok {
		return nil
	}
	return def.Params
}

// BacklinkPatternFor returns the backlink pattern for a URL pattern.
func (s *Store) BacklinkPatternFor(host string) (string, bool) {
	def, ok := s.catalog.Get(host)
	if !ok || def.Backlink == "" {
		return "", false
	}
	return def.Backlink, true
}

// CharsetsFor returns the declared charsets for a URL pattern, empty if
// the pattern is unknown or declares none.
func (s *Store) CharsetsFor(host string) []string {
	def, ok := s.catalog.Get(host)
	if !ok {
		return nil
	}
	return def.Charsets
}

// URLForName returns the representative URL pattern for an engine name,
// the first pattern the catalog lists for it.
func (s *Store) URLForName(name string) (string, bool) {
	pattern, ok := s.nameIndex()[name]
	return pattern, ok
}

func (s *Store) nameIndex() core.NameIndex {
	if idx, ok := s.names.Get(nameIndexCacheKey); ok {
		return idx
	}
	idx := s.catalog.NameIndex()
	s.names.Add(nameIndexCacheKey, idx)
	return idx
}
