package classify

import (
	"io/fs"
	"log/slog"

	"github.com/trafficlens/refsearch/catalog"
	"github.com/trafficlens/refsearch/core"
)

// Classifier resolves referrer URLs against one frozen catalog snapshot.
type Classifier struct {
	store      *catalog.Store
	normalizer Normalizer
	detector   Detector
	assets     fs.FS
	logoRoot   string
	logger     *slog.Logger
}

// Option configures a Classifier.
type Option func(*Classifier) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Classifier) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// WithNormalizer sets the host normalizer used for lossy matching.
// Default is LossyHost.
func WithNormalizer(n Normalizer) Option {
	return func(c *Classifier) error {
		if n == nil {
			n = LossyHost
		}
		c.normalizer = n
		return nil
	}
}

// WithDetector sets the encoding-detection facility consulted when an
// engine declares several charsets. Pass nil to always use the engine's
// default charset.
func WithDetector(d Detector) Option {
	return func(c *Classifier) error {
		c.detector = d
		return nil
	}
}

// WithAssets sets the asset store logo paths are checked against.
// Without one, LogoPathFor always returns the generic fallback.
func WithAssets(assets fs.FS) Option {
	return func(c *Classifier) error {
		c.assets = assets
		return nil
	}
}

// WithLogoRoot sets the directory logo paths are built under.
// Default is "engines".
func WithLogoRoot(root string) Option {
	return func(c *Classifier) error {
		if root == "" {
			root = defaultLogoRoot
		}
		c.logoRoot = root
		return nil
	}
}

// NewClassifier creates a classifier over a catalog store.
func NewClassifier(store *catalog.Store, opts ...Option) (*Classifier, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}

	c := &Classifier{
		store:      store,
		normalizer: LossyHost,
		detector:   heuristicDetector{},
		logoRoot:   defaultLogoRoot,
		logger:     slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Store returns the catalog store backing this classifier.
func (c *Classifier) Store() *catalog.Store {
	return c.store
}

// Classify identifies the search engine behind a referrer URL and the
// keyword the visitor typed, lowercased UTF-8. The second return is
// false when the referrer matches no engine; a matched engine that hides
// its keyword comes back with Match.NoKeyword set instead.
//
// Classification is idempotent: repeated calls with the same URL against
// the same catalog snapshot return equal results.
func (c *Classifier) Classify(referrerURL string) (*core.Match, bool) {
	res, ok := c.ResolveHost(referrerURL)
	if !ok {
		return nil, false
	}
	def, ok := c.store.DefinitionFor(res.Key)
	if !ok {
		return nil, false
	}
	return c.extract(res, def)
}
