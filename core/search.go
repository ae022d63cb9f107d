package core

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// defaultStopCriterionCheckPeriod is used when no WithStopCriterionCheckPeriod
// option is supplied.
const defaultStopCriterionCheckPeriod = 10 * time.Millisecond

// Step is the per-iteration body of a search. Algorithms in the algo
// package construct a Search and then bind it to a Step closure that
// captures the Search and its neighbourhood(s), rather than overriding
// a template method as the original Java design does.
type Step func(ctx context.Context) error

// Option configures a Search at construction time.
type Option func(*Search) error

// WithName sets the search's human-readable label. Defaults to the
// search's generated identifier.
func WithName(name string) Option {
	return func(s *Search) error {
		s.name = name
		return nil
	}
}

// WithSeed seeds the search's RNG with seed.
func WithSeed(seed int64) Option {
	return func(s *Search) error {
		s.rng = rand.New(rand.NewSource(seed))
		return nil
	}
}

// WithRNG injects an RNG directly, replacing the default time-seeded
// source.
func WithRNG(rng *rand.Rand) Option {
	return func(s *Search) error {
		if rng == nil {
			return errors.New("optframe: rng must not be nil")
		}
		s.rng = rng
		return nil
	}
}

// WithLogger attaches a *zap.Logger. Defaults to zap.NewNop().
func WithLogger(logger *zap.Logger) Option {
	return func(s *Search) error {
		if logger == nil {
			return errors.New("optframe: logger must not be nil")
		}
		s.logger = logger
		return nil
	}
}

// WithMetricsRegisterer mirrors the search's counters into Prometheus
// collectors registered against reg, labeled by the search's name.
func WithMetricsRegisterer(reg prometheus.Registerer) Option {
	return func(s *Search) error {
		s.registerer = reg
		return nil
	}
}

// WithStopCriterionCheckPeriod sets the poller's check period. period
// must be >= MinStopCriterionCheckPeriod.
func WithStopCriterionCheckPeriod(period time.Duration) Option {
	return func(s *Search) error {
		if err := validateCheckPeriod(period); err != nil {
			return err
		}
		s.checkPeriod = period
		return nil
	}
}

// Search is the lifecycle state machine shared by every algorithm in
// the algo package. It owns the current and best solution/evaluation/
// validation, dispatches listener notifications, polls stop criteria
// on a dedicated goroutine, and exposes read-only snapshots of its
// state to callers.
type Search struct {
	id   uuid.UUID
	name string

	problem ProblemDef
	step    Step

	rng    *rand.Rand
	logger *zap.Logger

	registerer prometheus.Registerer
	collectors *promCollectors

	checkPeriod time.Duration

	mu sync.Mutex

	status Status

	current     Solution
	currentEval Evaluation
	currentVal  Validation

	best     Solution
	bestEval Evaluation
	bestVal  Validation

	steps    int
	accepted int
	rejected int

	startTime           time.Time
	endTime             time.Time
	lastImprovement     time.Time
	lastImprovementStep int

	listeners    []Listener
	stopCriteria []StopCriterion

	stopRequested atomic.Bool

	done   chan struct{}
	runErr error
}

// NewSearch constructs a Search bound to problem. Its Step must be
// attached with SetStep before Start is called; algo constructors do
// this internally.
func NewSearch(problem ProblemDef, opts ...Option) (*Search, error) {
	if problem == nil {
		return nil, errors.New("optframe: search requires a non-nil problem")
	}
	s := &Search{
		id:          uuid.New(),
		problem:     problem,
		status:      StatusIdle,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:      zap.NewNop(),
		checkPeriod: defaultStopCriterionCheckPeriod,
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	if s.name == "" {
		s.name = s.id.String()
	}
	s.collectors = newPromCollectors(s.registerer, s.name)
	return s, nil
}

// SetStep attaches the per-iteration body. Must be called before Start.
func (s *Search) SetStep(step Step) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step = step
}

// ID returns the search's generated identifier.
func (s *Search) ID() uuid.UUID { return s.id }

// Name returns the search's human-readable label.
func (s *Search) Name() string { return s.name }

// Problem returns the bound problem.
func (s *Search) Problem() ProblemDef { return s.problem }

// Rng returns the search's RNG. Neighbourhoods use it to sample random
// moves; it must not be used concurrently from outside the search's
// own worker goroutine while a run is in progress.
func (s *Search) Rng() *rand.Rand { return s.rng }

// Logger returns the search's logger.
func (s *Search) Logger() *zap.Logger { return s.logger }

// Status returns the current lifecycle state.
func (s *Search) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// BestSolution returns a deep copy of the best solution found so far,
// or nil if none has been set.
func (s *Search) BestSolution() Solution {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.best == nil {
		return nil
	}
	return s.best.CheckedCopy()
}

// BestEvaluation returns the best solution's evaluation, or nil.
func (s *Search) BestEvaluation() Evaluation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bestEval
}

// BestValidation returns the best solution's validation, or nil.
func (s *Search) BestValidation() Validation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bestVal
}

// CurrentSolution returns a deep copy of the current solution, or nil.
func (s *Search) CurrentSolution() Solution {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	return s.current.CheckedCopy()
}

// CurrentSolutionRef returns the search's live current solution without
// copying it. Algorithms use it to generate candidate moves through a
// Neighbourhood, which by contract only reads the solution it is given;
// it must never be mutated directly through this reference.
func (s *Search) CurrentSolutionRef() Solution {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// CurrentEvaluation returns the current solution's evaluation, or nil.
func (s *Search) CurrentEvaluation() Evaluation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentEval
}

// CurrentValidation returns the current solution's validation, or nil.
func (s *Search) CurrentValidation() Validation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentVal
}

// Steps returns the number of steps executed in the current (or most
// recently completed) run.
func (s *Search) Steps() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.steps
}

// StepsSinceImprovement returns the number of steps executed since the
// best solution was last updated (or since the run started, if it
// never has been).
func (s *Search) StepsSinceImprovement() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.steps - s.lastImprovementStep
}

// Metrics returns a snapshot of the search's lifecycle counters.
// Runtime is zero before the first Start, live while Running or
// Terminating, and frozen at its final value otherwise.
func (s *Search) Metrics() Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := Metrics{Steps: s.steps, Accepted: s.accepted, Rejected: s.rejected}
	running := s.status == StatusRunning || s.status == StatusTerminating
	switch {
	case s.startTime.IsZero():
		m.Runtime = 0
	case running:
		m.Runtime = time.Since(s.startTime)
	default:
		m.Runtime = s.endTime.Sub(s.startTime)
	}
	if !s.lastImprovement.IsZero() {
		if running {
			m.TimeSinceLastImprovement = time.Since(s.lastImprovement)
		} else {
			m.TimeSinceLastImprovement = s.endTime.Sub(s.lastImprovement)
		}
	}
	if s.collectors != nil {
		s.collectors.runtime.Set(m.Runtime.Seconds())
	}
	return m
}

// AddListener registers l. Listeners are dispatched in registration
// order on the search's own worker goroutine.
func (s *Search) AddListener(l Listener) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusDisposed {
		return ErrDisposed
	}
	s.listeners = append(s.listeners, l)
	return nil
}

// AddStopCriterion registers sc with the poller.
func (s *Search) AddStopCriterion(sc StopCriterion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusDisposed {
		return ErrDisposed
	}
	s.stopCriteria = append(s.stopCriteria, sc)
	return nil
}

// SetStopCriterionCheckPeriod changes the poller's period.
func (s *Search) SetStopCriterionCheckPeriod(period time.Duration) error {
	if err := validateCheckPeriod(period); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusDisposed {
		return ErrDisposed
	}
	s.checkPeriod = period
	return nil
}

// SetSeed replaces the search's RNG with a freshly seeded one. Legal
// from any state other than Running or Disposed.
func (s *Search) SetSeed(seed int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusDisposed {
		return ErrDisposed
	}
	if s.status == StatusRunning {
		return ErrSearchRunning
	}
	s.rng = rand.New(rand.NewSource(seed))
	return nil
}

// Dispose transitions the search to Disposed. Legal only from Idle. A
// second call returns ErrDisposed, itself a contract violation rather
// than a no-op.
func (s *Search) Dispose() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusDisposed {
		return ErrDisposed
	}
	if s.status != StatusIdle {
		return ErrDisposeNotIdle
	}
	s.status = StatusDisposed
	return nil
}

// Stop requests termination of the current run. Idempotent, safe from
// any goroutine, and a no-op outside Running: the in-flight step (if
// any) always runs to completion before the run actually ends.
func (s *Search) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusRunning {
		return
	}
	s.status = StatusTerminating
	s.stopRequested.Store(true)
}

// Start transitions the search from Idle through Initializing to
// Running and launches the worker and poller goroutines, returning as
// soon as the run is underway. Use Await to block until it finishes.
//
// The initial current solution is the prior best (if any, preserving
// it across subsequent runs per its documented resume semantics),
// otherwise the current solution already installed (by
// SetCurrentSolution or an earlier run), and a freshly created random
// solution only when there is neither. Per-run counters are reset; the
// best solution is never reset by Start.
func (s *Search) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.status == StatusDisposed {
		s.mu.Unlock()
		return ErrDisposed
	}
	if s.status != StatusIdle {
		s.mu.Unlock()
		return ErrNotIdle
	}
	if s.step == nil {
		s.mu.Unlock()
		return errors.New("optframe: search has no step attached")
	}
	s.status = StatusInitializing
	s.mu.Unlock()

	s.logger.Debug("search initializing", zap.String("search", s.name))

	if err := s.fireSearchStarted(); err != nil {
		s.mu.Lock()
		s.status = StatusIdle
		s.mu.Unlock()
		return wrapEngineError("searchStarted", err)
	}

	s.mu.Lock()
	s.steps, s.accepted, s.rejected = 0, 0, 0
	s.stopRequested.Store(false)
	s.startTime = time.Now()
	s.endTime = time.Time{}
	s.lastImprovement = s.startTime
	s.lastImprovementStep = 0
	resumeFrom := s.best
	if resumeFrom == nil {
		resumeFrom = s.current
	}
	s.status = StatusRunning
	s.done = make(chan struct{})
	s.mu.Unlock()

	var initial Solution
	if resumeFrom != nil {
		initial = resumeFrom.CheckedCopy()
	} else {
		initial = s.problem.CreateRandomSolution(s.rng)
	}
	if err := s.SetCurrentSolution(initial); err != nil {
		s.mu.Lock()
		s.status = StatusIdle
		s.mu.Unlock()
		return wrapEngineError("setCurrentSolution", err)
	}

	s.logger.Info("search started", zap.String("search", s.name))

	runCtx, cancel := context.WithCancel(ctx)
	var g errgroup.Group
	g.Go(func() error {
		defer cancel()
		return s.runWorker(runCtx)
	})
	g.Go(func() error {
		return s.runPoller(runCtx)
	})

	go func() {
		s.finalize(g.Wait())
	}()

	return nil
}

// Await blocks until the most recently started run finishes, returning
// whatever error terminated it (nil on a clean stop). Calling Await
// without a prior Start returns nil immediately.
func (s *Search) Await() error {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done == nil {
		return nil
	}
	<-done
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runErr
}

func (s *Search) runWorker(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		if s.stopRequested.Load() {
			return nil
		}
		if err := s.step(ctx); err != nil {
			return wrapEngineError("searchStep", err)
		}
		s.mu.Lock()
		s.steps++
		step := s.steps
		s.mu.Unlock()
		if s.collectors != nil {
			s.collectors.steps.Inc()
		}
		if err := s.fireStepCompleted(step); err != nil {
			return wrapEngineError("stepCompleted", err)
		}
	}
}

func (s *Search) runPoller(ctx context.Context) error {
	s.mu.Lock()
	period := s.checkPeriod
	hasCriteria := len(s.stopCriteria) > 0
	s.mu.Unlock()
	if !hasCriteria {
		<-ctx.Done()
		return nil
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			for _, sc := range s.snapshotStopCriteria() {
				if sc.ShouldStop(s) {
					s.logger.Debug("stop criterion fired", zap.String("search", s.name))
					s.Stop()
					break
				}
			}
		}
	}
}

func (s *Search) finalize(runErr error) {
	s.mu.Lock()
	s.status = StatusTerminating
	s.endTime = time.Now()
	s.mu.Unlock()

	listenerErr := s.fireSearchStopped()

	s.mu.Lock()
	s.status = StatusIdle
	switch {
	case runErr != nil:
		s.runErr = runErr
	case listenerErr != nil:
		s.runErr = wrapEngineError("searchStopped", listenerErr)
	default:
		s.runErr = nil
	}
	done := s.done
	s.mu.Unlock()

	if s.runErr != nil {
		s.logger.Error("search stopped with error", zap.String("search", s.name), zap.Error(s.runErr))
	} else {
		s.logger.Info("search stopped", zap.String("search", s.name))
	}
	close(done)
}

func (s *Search) snapshotListeners() []Listener {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Listener, len(s.listeners))
	copy(out, s.listeners)
	return out
}

func (s *Search) snapshotStopCriteria() []StopCriterion {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]StopCriterion, len(s.stopCriteria))
	copy(out, s.stopCriteria)
	return out
}

func (s *Search) fireSearchStarted() error {
	var errs error
	for _, l := range s.snapshotListeners() {
		errs = multierr.Append(errs, l.SearchStarted(s))
	}
	return errs
}

func (s *Search) fireSearchStopped() error {
	var errs error
	for _, l := range s.snapshotListeners() {
		errs = multierr.Append(errs, l.SearchStopped(s))
	}
	return errs
}

func (s *Search) fireStepCompleted(step int) error {
	var errs error
	for _, l := range s.snapshotListeners() {
		errs = multierr.Append(errs, l.StepCompleted(s, step))
	}
	return errs
}

func (s *Search) fireNewBestSolution(sol Solution, eval Evaluation, val Validation) error {
	var errs error
	for _, l := range s.snapshotListeners() {
		errs = multierr.Append(errs, l.NewBestSolution(s, sol, eval, val))
	}
	return errs
}

func (s *Search) fireNewCurrentSolution(sol Solution, eval Evaluation, val Validation) error {
	var errs error
	for _, l := range s.snapshotListeners() {
		errs = multierr.Append(errs, l.NewCurrentSolution(s, sol, eval, val))
	}
	return errs
}

func (s *Search) recordAccepted() {
	s.mu.Lock()
	s.accepted++
	s.mu.Unlock()
	if s.collectors != nil {
		s.collectors.accepted.Inc()
	}
}

func (s *Search) recordRejected() {
	s.mu.Lock()
	s.rejected++
	s.mu.Unlock()
	if s.collectors != nil {
		s.collectors.rejected.Inc()
	}
}
