// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package view sequences catalog loads (probe, then fetch), derives the
// visible subset for the current query and owns the playback selection.
// Every mutation publishes exactly one immutable ViewModel.
package view

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ManuGH/nascinema/internal/catalog"
	"github.com/ManuGH/nascinema/internal/connectivity"
	"github.com/ManuGH/nascinema/internal/fsm"
	"github.com/ManuGH/nascinema/internal/log"
	"github.com/ManuGH/nascinema/internal/media"
	"github.com/ManuGH/nascinema/internal/metrics"
	"github.com/ManuGH/nascinema/internal/playback"
	"github.com/ManuGH/nascinema/internal/search"
	"github.com/ManuGH/nascinema/internal/telemetry"
)

var (
	// ErrLoadInFlight rejects a load trigger while another load runs.
	ErrLoadInFlight = errors.New("view: a catalog load is already in progress")
	// ErrNotReady rejects selection outside the Ready phase.
	ErrNotReady = errors.New("view: catalog is not ready")
	// ErrNotVisible rejects selection of a key outside the visible subset.
	ErrNotVisible = errors.New("view: item is not in the visible list")
)

// Catalog is the backend surface the orchestrator drives.
type Catalog interface {
	TestConnection(ctx context.Context) catalog.Status
	FetchMovies(ctx context.Context) ([]media.Item, error)
	StreamBase() string
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithLogger overrides the component logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithTracer overrides the tracer used for load spans.
func WithTracer(t trace.Tracer) Option {
	return func(o *Orchestrator) { o.tracer = t }
}

// Orchestrator is safe for concurrent use. Loads themselves are strictly
// sequential: at most one is in flight.
type Orchestrator struct {
	mu      sync.Mutex
	client  Catalog
	machine *fsm.Machine[state, event]
	monitor *connectivity.Monitor
	session playback.Session

	items      []media.Item
	streamBase string
	errMessage string
	query      string
	visible    []media.Item
	streamURL  string

	revision uint64
	current  ViewModel
	wg       sync.WaitGroup

	pubMu     sync.Mutex
	delivered uint64
	pending   []ViewModel
	draining  bool
	subs      map[int]func(ViewModel)
	nextSub   int

	logger zerolog.Logger
	tracer trace.Tracer
}

// New builds an orchestrator in the initial (loading) phase. No load is
// started; call Load.
func New(client Catalog, opts ...Option) *Orchestrator {
	m, err := newMachine()
	if err != nil {
		panic(fmt.Sprintf("view: invalid transition table: %v", err))
	}
	o := &Orchestrator{
		client:  client,
		machine: m,
		monitor: &connectivity.Monitor{},
		subs:    make(map[int]func(ViewModel)),
		logger:  log.WithComponent("view"),
		tracer:  telemetry.Tracer("github.com/ManuGH/nascinema/internal/view"),
	}
	for _, opt := range opts {
		opt(o)
	}
	m.OnTransition(func(from, to state, ev event) {
		metrics.SetPhase(string(to.phase()))
		o.logger.Debug().
			Str(log.FieldEvent, "view.transition").
			Str(log.FieldOldState, string(from)).
			Str(log.FieldNewState, string(to)).
			Str("trigger", string(ev)).
			Msg("view state changed")
	})
	o.current = o.buildLocked()
	metrics.SetPhase(string(PhaseLoading))
	return o
}

// Snapshot returns the last published view model.
func (o *Orchestrator) Snapshot() ViewModel {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current
}

// Monitor exposes the connectivity monitor fed by the probe.
func (o *Orchestrator) Monitor() *connectivity.Monitor { return o.monitor }

// Subscribe registers fn for every subsequently published view model.
// Deliveries are serialized and never go backwards in revision. fn runs
// without any orchestrator lock held, so it may call back into the
// orchestrator or cancel itself; models it causes are delivered after it
// returns. The returned func unregisters fn.
func (o *Orchestrator) Subscribe(fn func(ViewModel)) (cancel func()) {
	o.pubMu.Lock()
	id := o.nextSub
	o.nextSub++
	o.subs[id] = fn
	o.pubMu.Unlock()
	return func() {
		o.pubMu.Lock()
		delete(o.subs, id)
		o.pubMu.Unlock()
	}
}

// Rebind swaps the catalog client. A load already in flight finishes against
// the client it started with.
func (o *Orchestrator) Rebind(client Catalog) {
	o.mu.Lock()
	o.client = client
	o.mu.Unlock()
	o.logger.Info().
		Str(log.FieldEvent, "view.rebind").
		Str(log.FieldBaseURL, log.RedactURL(client.StreamBase())).
		Msg("catalog client replaced")
}

// Load runs one load sequence: enter Loading, probe, then fetch only if the
// probe reported connected. It blocks until the sequence ends and returns
// the published view model. A load while another is in flight returns
// ErrLoadInFlight without touching state. Probe and fetch failures are not
// returned as errors; they land in ViewModel.ErrorMessage.
func (o *Orchestrator) Load(ctx context.Context) (ViewModel, error) {
	client, err := o.begin()
	if err != nil {
		return o.Snapshot(), err
	}
	return o.run(ctx, client), nil
}

// Start enters Loading synchronously and finishes the sequence in the
// background. Only the in-flight rejection is reported. Wait blocks until
// background loads have returned.
func (o *Orchestrator) Start(ctx context.Context) error {
	client, err := o.begin()
	if err != nil {
		return err
	}
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		o.run(ctx, client)
	}()
	return nil
}

// Wait blocks until every load started with Start has finished.
func (o *Orchestrator) Wait() { o.wg.Wait() }

// Retry is Load under the name the UI uses for its retry control.
func (o *Orchestrator) Retry(ctx context.Context) (ViewModel, error) {
	return o.Load(ctx)
}

func (o *Orchestrator) begin() (Catalog, error) {
	o.mu.Lock()
	if _, err := o.machine.Fire(evLoad); err != nil {
		o.mu.Unlock()
		metrics.IncLoadRejected()
		o.logger.Debug().Err(err).Str(log.FieldEvent, "view.load_rejected").Msg("load already in flight")
		return nil, ErrLoadInFlight
	}

	client := o.client
	o.items = nil
	o.visible = nil
	o.errMessage = ""
	if o.session.Close() {
		o.streamURL = ""
		metrics.RecordSession("reload_close")
	}
	vm := o.publishLocked()
	o.mu.Unlock()
	o.deliver(vm)
	return client, nil
}

func (o *Orchestrator) run(ctx context.Context, client Catalog) ViewModel {
	correlationID := uuid.NewString()
	ctx = log.ContextWithCorrelationID(ctx, correlationID)
	ctx, span := o.tracer.Start(ctx, "view.load",
		trace.WithAttributes(attribute.String(telemetry.CorrelationIDKey, correlationID)))
	defer span.End()

	logger := log.WithContext(ctx, o.logger)
	logger.Info().Str(log.FieldEvent, "view.load_start").Msg("loading catalog")
	start := time.Now()

	status := client.TestConnection(ctx)
	o.monitor.Record(status.Connected)
	if !status.Connected {
		err := &catalog.ConnectivityError{Cause: status.Err}
		span.SetAttributes(telemetry.LoadAttributes(metrics.LoadUnreachable, false, 0)...)
		span.SetAttributes(telemetry.ErrorAttributes(metrics.LoadUnreachable)...)
		span.SetStatus(codes.Error, err.Message())
		metrics.RecordLoad(metrics.LoadUnreachable)
		logger.Warn().
			Str(log.FieldEvent, "view.load_unreachable").
			Str("probe_message", status.Message).
			Dur(log.FieldDuration, time.Since(start)).
			Msg("NAS not reachable, catalog fetch skipped")
		return o.fail(err.Message())
	}

	items, err := client.FetchMovies(ctx)
	if err != nil {
		msg := catalog.MessageOf(err)
		span.RecordError(err)
		span.SetAttributes(telemetry.LoadAttributes(metrics.LoadFetchError, true, 0)...)
		span.SetAttributes(telemetry.ErrorAttributes(metrics.LoadFetchError)...)
		span.SetStatus(codes.Error, msg)
		metrics.RecordLoad(metrics.LoadFetchError)
		logger.Warn().
			Err(err).
			Str(log.FieldEvent, "view.load_failed").
			Dur(log.FieldDuration, time.Since(start)).
			Msg("catalog fetch failed")
		return o.fail(msg)
	}

	span.SetAttributes(telemetry.LoadAttributes(metrics.LoadReady, true, len(items))...)
	metrics.RecordLoad(metrics.LoadReady)
	metrics.RecordCatalogItems(len(items))
	logger.Info().
		Str(log.FieldEvent, "view.load_ready").
		Int(log.FieldItemCount, len(items)).
		Dur(log.FieldDuration, time.Since(start)).
		Msg("catalog loaded")
	return o.succeed(items, client.StreamBase())
}

func (o *Orchestrator) fail(msg string) ViewModel {
	o.mu.Lock()
	if _, err := o.machine.Fire(evFailed); err != nil {
		o.mu.Unlock()
		panic(fmt.Sprintf("view: loading->error refused: %v", err))
	}
	o.errMessage = msg
	vm := o.publishLocked()
	o.mu.Unlock()
	o.deliver(vm)
	return vm
}

func (o *Orchestrator) succeed(items []media.Item, streamBase string) ViewModel {
	o.mu.Lock()
	if _, err := o.machine.Fire(evLoaded); err != nil {
		o.mu.Unlock()
		panic(fmt.Sprintf("view: loading->ready refused: %v", err))
	}
	o.items = items
	o.streamBase = streamBase
	o.visible = search.Filter(items, o.query)
	vm := o.publishLocked()
	o.mu.Unlock()
	o.deliver(vm)
	return vm
}

// SetQuery stores the search query. While Ready the visible subset is
// recomputed; otherwise the query only takes effect on the next Ready.
func (o *Orchestrator) SetQuery(query string) ViewModel {
	o.mu.Lock()
	o.query = query
	if o.machine.State() == stateReady {
		o.visible = search.Filter(o.items, query)
	}
	vm := o.publishLocked()
	o.mu.Unlock()
	o.deliver(vm)
	return vm
}

// Select opens a playback session on the visible item with the given key,
// replacing any active session.
func (o *Orchestrator) Select(key string) (ViewModel, error) {
	o.mu.Lock()
	if o.machine.State() != stateReady {
		vm := o.current
		o.mu.Unlock()
		return vm, ErrNotReady
	}
	idx := slices.IndexFunc(o.visible, func(it media.Item) bool { return it.Key() == key })
	if idx < 0 {
		vm := o.current
		o.mu.Unlock()
		return vm, fmt.Errorf("%w: %s", ErrNotVisible, key)
	}
	item := o.visible[idx]
	action := "open"
	if o.session.Open(item) {
		action = "replace"
	}
	o.streamURL = playback.StreamURL(o.streamBase, item.Path)
	vm := o.publishLocked()
	o.mu.Unlock()

	metrics.RecordSession(action)
	o.logger.Info().
		Str(log.FieldEvent, "playback."+action).
		Str(log.FieldItemKey, item.Key()).
		Str(log.FieldItemName, item.Name).
		Str(log.FieldStreamURL, log.RedactURL(vm.StreamURL)).
		Bool("stable_key", item.HasStableID()).
		Msg("playback session opened")
	o.deliver(vm)
	return vm, nil
}

// Close ends the active session. Without one it changes nothing and
// publishes nothing.
func (o *Orchestrator) Close() ViewModel {
	o.mu.Lock()
	if !o.session.Close() {
		vm := o.current
		o.mu.Unlock()
		return vm
	}
	o.streamURL = ""
	vm := o.publishLocked()
	o.mu.Unlock()

	metrics.RecordSession("close")
	o.logger.Info().Str(log.FieldEvent, "playback.close").Msg("playback session closed")
	o.deliver(vm)
	return vm
}

func (o *Orchestrator) publishLocked() ViewModel {
	o.revision++
	o.current = o.buildLocked()
	return o.current
}

func (o *Orchestrator) buildLocked() ViewModel {
	st := o.machine.State()
	vm := ViewModel{
		Revision:     o.revision,
		Phase:        st.phase(),
		Query:        o.query,
		VisibleItems: []media.Item{},
	}
	if o.monitor.Known() && st != stateLoading {
		vm.Badge = o.monitor.Badge()
		vm.Connected = o.monitor.Connected()
	}
	switch st {
	case stateError:
		vm.ErrorMessage = o.errMessage
	case stateReady:
		vm.Total = len(o.items)
		vm.VisibleItems = append([]media.Item{}, o.visible...)
	}
	if it, ok := o.session.Active(); ok {
		vm.ActiveSession = &it
		vm.StreamURL = o.streamURL
	}
	return vm
}

// deliver queues vm and, unless another call is already draining the
// queue, hands queued models to subscribers in revision order. Models older
// than one already queued are dropped.
func (o *Orchestrator) deliver(vm ViewModel) {
	o.pubMu.Lock()
	defer o.pubMu.Unlock()
	if vm.Revision <= o.delivered {
		return
	}
	o.delivered = vm.Revision
	o.pending = append(o.pending, vm)
	if o.draining {
		return
	}
	o.draining = true
	for len(o.pending) > 0 {
		next := o.pending[0]
		o.pending = o.pending[1:]
		subs := slices.Collect(maps.Values(o.subs))
		o.pubMu.Unlock()
		for _, fn := range subs {
			fn(next)
		}
		o.pubMu.Lock()
	}
	o.draining = false
}
