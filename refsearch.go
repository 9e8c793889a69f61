// Copyright 2026 Trafficlens Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package refsearch

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/trafficlens/refsearch/catalog"
	"github.com/trafficlens/refsearch/classify"
	"github.com/trafficlens/refsearch/core"
	"github.com/trafficlens/refsearch/storage"
)

const catalogCacheSize = 4

// Service is the explicitly constructed entry point: it owns the
// definitions document, the compiled catalog, an optional persistence
// repository, and the classifier built over the current snapshot.
// Callers create one with New and share it; there is no package-level
// singleton. All methods are safe for concurrent use.
type Service struct {
	definitions  []byte
	contributors []catalog.Contributor
	repo         storage.CatalogRepository
	cache        *lru.Cache[core.Fingerprint, *core.Catalog]
	classifier   atomic.Pointer[classify.Classifier]

	normalizer classify.Normalizer
	detector   classify.Detector
	assets     fs.FS
	logger     *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service) error

// WithDefinitions sets the YAML definitions document the catalog is
// built from. Default is the bundled catalog.DefaultDefinitions.
func WithDefinitions(document []byte) ServiceOption {
	return func(s *Service) error {
		if len(document) == 0 {
			document = catalog.DefaultDefinitions
		}
		s.definitions = document
		return nil
	}
}

// WithContributors appends contributors run against the builder before
// each catalog freeze, in registration order.
func WithContributors(contributors ...catalog.Contributor) ServiceOption {
	return func(s *Service) error {
		s.contributors = append(s.contributors, contributors...)
		return nil
	}
}

// WithCatalogRepository attaches a persistence repository. When set, a
// catalog whose fingerprint matches the definitions document is loaded
// from it instead of re-parsing, and freshly built catalogs are stored
// back. The service does not close the repository.
func WithCatalogRepository(repo storage.CatalogRepository) ServiceOption {
	return func(s *Service) error {
		s.repo = repo
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithNormalizer sets the host normalizer passed to the classifier.
func WithNormalizer(n classify.Normalizer) ServiceOption {
	return func(s *Service) error {
		s.normalizer = n
		return nil
	}
}

// WithDetector sets the encoding detector passed to the classifier.
func WithDetector(d classify.Detector) ServiceOption {
	return func(s *Service) error {
		s.detector = d
		return nil
	}
}

// WithAssets sets the logo asset store passed to the classifier.
func WithAssets(assets fs.FS) ServiceOption {
	return func(s *Service) error {
		s.assets = assets
		return nil
	}
}

// New creates a Service and performs the initial catalog load.
func New(ctx context.Context, opts ...ServiceOption) (*Service, error) {
	cache, err := lru.New[core.Fingerprint, *core.Catalog](catalogCacheSize)
	if err != nil {
		return nil, err
	}

	s := &Service{
		definitions: catalog.DefaultDefinitions,
		cache:       cache,
		logger:      slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if optErr := opt(s); optErr != nil {
			return nil, optErr
		}
	}

	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload recompiles the catalog from the definitions document and swaps
// the classifier atomically. In-flight Classify calls finish against the
// snapshot they started with. The load order is: in-process cache,
// persistence repository (fingerprint match), full parse. A freshly
// parsed catalog is stored back when a repository is attached; a store
// failure is logged and does not fail the reload.
func (s *Service) Reload(ctx context.Context) error {
	fp := core.FingerprintOf(s.definitions)

	cat, err := s.loadCatalog(ctx, fp)
	if err != nil {
		return err
	}

	store, err := catalog.NewStore(cat)
	if err != nil {
		return err
	}

	opts := []classify.Option{classify.WithLogger(s.logger)}
	if s.normalizer != nil {
		opts = append(opts, classify.WithNormalizer(s.normalizer))
	}
	if s.detector != nil {
		opts = append(opts, classify.WithDetector(s.detector))
	}
	if s.assets != nil {
		opts = append(opts, classify.WithAssets(s.assets))
	}

	classifier, err := classify.NewClassifier(store, opts...)
	if err != nil {
		return err
	}

	s.classifier.Store(classifier)
	return nil
}

func (s *Service) loadCatalog(ctx context.Context, fp core.Fingerprint) (*core.Catalog, error) {
	// Contributors mutate the built catalog, so only a contributor-free
	// build can be satisfied from cache or persistence.
	if len(s.contributors) == 0 {
		if cat, ok := s.cache.Get(fp); ok {
			return cat, nil
		}

		if s.repo != nil {
			cat, err := s.repo.GetCatalog(ctx, fp)
			switch {
			case err == nil:
				s.cache.Add(fp, cat)
				return cat, nil
			case errors.Is(err, storage.ErrNotFound):
			default:
				s.logger.Warn("error reading persisted catalog", "err", err)
			}
		}
	}

	cat, err := catalog.Build(s.definitions, s.contributors...)
	if err != nil {
		return nil, err
	}

	if len(s.contributors) == 0 {
		s.cache.Add(fp, cat)
		if s.repo != nil {
			if err := s.repo.PutCatalog(ctx, cat); err != nil {
				s.logger.Warn("error persisting catalog", "err", err)
			}
		}
	}
	return cat, nil
}

// Classify identifies the search engine behind a referrer URL.
// See classify.Classifier.Classify.
func (s *Service) Classify(referrerURL string) (*core.Match, bool) {
	return s.classifier.Load().Classify(referrerURL)
}

// Classifier returns the classifier over the current catalog snapshot.
// The returned value stays valid across Reload but keeps serving the
// snapshot it was built on.
func (s *Service) Classifier() *classify.Classifier {
	return s.classifier.Load()
}

// Store returns the definition store of the current catalog snapshot.
func (s *Service) Store() *catalog.Store {
	return s.classifier.Load().Store()
}

// URLFromName returns the first cataloged URL pattern of the named
// engine, prefixed with "http://". Unknown names get the URLUnknown
// sentinel, matching what attribution reports display.
func (s *Service) URLFromName(name string) string {
	pattern, ok := s.Store().URLForName(name)
	if !ok {
		return core.URLUnknown
	}
	return "http://" + pattern
}

// BacklinkFor reconstructs the search-results URL for a keyword.
// See classify.Classifier.BacklinkFor.
func (s *Service) BacklinkFor(engineURL, keyword string) (string, bool) {
	return s.classifier.Load().BacklinkFor(engineURL, keyword)
}

// LogoPathFor returns the asset path of an engine's logo.
// See classify.Classifier.LogoPathFor.
func (s *Service) LogoPathFor(engineURL string) string {
	return s.classifier.Load().LogoPathFor(engineURL)
}
