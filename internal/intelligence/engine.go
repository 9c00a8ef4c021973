package intelligence

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Engine runs the aggregate-detect-build pipeline. An Engine holds no
// per-run state and may start any number of sessions.
type Engine struct {
	cfg Config
	now func() time.Time
}

// Option customizes an Engine.
type Option func(*Engine)

// WithClock overrides the clock used for generated_at.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New validates cfg and returns an Engine.
func New(cfg Config, opts ...Option) (*Engine, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("intelligence.New: %w", err)
	}
	cfg.StageRules = cfg.StageRules.normalized()
	cfg.CategoryRules = cfg.CategoryRules.normalized()

	e := &Engine{cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Config returns the effective configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Process ingests records in order and builds the report.
func (e *Engine) Process(subject Subject, records []ClassifiedComment) Report {
	agg := NewAggregator(e.cfg.StageRules, e.cfg.CategoryRules)
	for _, r := range records {
		agg.Ingest(r)
	}
	return e.finish(agg.Snapshot(), subject)
}

// Start opens a streaming session backed by a fresh Aggregator.
func (e *Engine) Start(subject Subject) *Session {
	s := &Session{
		engine:  e,
		subject: subject,
		agg:     NewAggregator(e.cfg.StageRules, e.cfg.CategoryRules),
		queue:   make(chan item, e.cfg.QueueSize),
		done:    make(chan struct{}),
	}
	go s.drain()
	return s
}

func (e *Engine) finish(agg Aggregates, subject Subject) Report {
	spike := DetectSpike(agg.NegativeSeries(), SpikeConfig{
		Multiplier: e.cfg.SpikeMultiplier,
		MinBuckets: e.cfg.MinBucketsForSpike,
	})
	attackers := DetectCoordination(agg.Histories, CoordinationConfig{
		Threshold: e.cfg.RepeatUserThreshold,
		MinStages: e.cfg.MinStagesForCoordination,
		Policy:    e.cfg.AttackerPolicy,
	})
	repeat := DetectCoordination(agg.Histories, CoordinationConfig{
		Threshold: e.cfg.RepeatUserThreshold,
		Policy:    PolicyRepeat,
	})
	return Build(BuildInput{
		Aggregates:  agg,
		Spike:       spike,
		Attackers:   attackers,
		RepeatUsers: repeat,
		Config:      e.cfg,
		Subject:     subject,
		GeneratedAt: e.now(),
	})
}

type item struct {
	comment ClassifiedComment
	skip    SkipReason
}

// Session is one run of the engine. Submit may be called from many
// goroutines; a single goroutine owns the Aggregator and drains the queue.
// End is the end-of-stream signal.
type Session struct {
	engine  *Engine
	subject Subject
	agg     *Aggregator
	queue   chan item
	done    chan struct{}

	mu     sync.RWMutex
	closed bool

	endOnce sync.Once
	report  Report
}

// Submit enqueues a record. It blocks while the queue is full; ctx only
// bounds that wait.
func (s *Session) Submit(ctx context.Context, c ClassifiedComment) error {
	return s.enqueue(ctx, item{comment: c})
}

// Skip records an input that could not be decoded into a comment.
func (s *Session) Skip(ctx context.Context, reason SkipReason) error {
	return s.enqueue(ctx, item{skip: reason})
}

func (s *Session) enqueue(ctx context.Context, it item) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ErrSessionClosed
	}
	select {
	case s.queue <- it:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// End closes the stream, waits for every queued record to be folded and
// returns the report. Later calls return the same report.
func (s *Session) End() Report {
	s.endOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		close(s.queue)
		s.mu.Unlock()

		<-s.done
		s.report = s.engine.finish(s.agg.Snapshot(), s.subject)
	})
	return s.report
}

func (s *Session) drain() {
	defer close(s.done)
	for it := range s.queue {
		if it.skip != "" {
			s.agg.Skip(it.skip)
			continue
		}
		s.agg.Ingest(it.comment)
	}
}
