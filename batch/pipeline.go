package batch

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/trafficlens/refsearch/core"
)

// Classifier is the subset of the classification API the pipeline needs.
type Classifier interface {
	Classify(referrerURL string) (*core.Match, bool)
}

// Result is the outcome of classifying one referrer. Match is nil when
// Matched is false.
type Result struct {
	Referrer string
	Match    *core.Match
	Matched  bool
}

// Sink receives classification results. Calls are serialized by the
// pipeline; a sink never runs concurrently with itself.
type Sink func(Result)

// Pipeline classifies referrer URLs concurrently over a worker pool.
type Pipeline struct {
	classifier Classifier
	pool       *ants.Pool
	progress   *ProgressTracker
	logger     *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent classification.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithProgress attaches a progress tracker updated once per classified
// referrer. The pipeline calls Start and Finish around each run.
func WithProgress(tracker *ProgressTracker) Option {
	return func(p *Pipeline) error {
		p.progress = tracker
		return nil
	}
}

// NewPipeline creates a new classification pipeline.
func NewPipeline(classifier Classifier, opts ...Option) (*Pipeline, error) {
	if classifier == nil {
		return nil, ErrClassifierRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		classifier: classifier,
		pool:       pool,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Run classifies every referrer and delivers each result to sink.
// It blocks until all referrers are processed or ctx is canceled;
// on cancellation the remaining referrers are skipped and ctx.Err()
// is returned after in-flight work drains.
func (p *Pipeline) Run(ctx context.Context, referrers []string, sink Sink) error {
	if sink == nil {
		return ErrSinkRequired
	}

	if p.progress != nil {
		p.progress.Start()
		defer p.progress.Finish()
	}

	var (
		wg     sync.WaitGroup
		sinkMu sync.Mutex
	)

	for _, referrer := range referrers {
		if err := ctx.Err(); err != nil {
			break
		}

		referrer := referrer
		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()

			match, ok := p.classifier.Classify(referrer)
			result := Result{Referrer: referrer, Match: match, Matched: ok}

			sinkMu.Lock()
			sink(result)
			sinkMu.Unlock()

			if p.progress != nil {
				p.progress.Increment(1)
			}
		})
		if err != nil {
			wg.Done()
			p.logger.Error("error submitting referrer", "err", err)
		}
	}

	wg.Wait()
	return ctx.Err()
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
