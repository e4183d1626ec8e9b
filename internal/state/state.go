// Package state provides thread-safe state management for the application.
//
// The Manager owns the loaded catalog and everything derived from it: the
// octant partition and one synthesized territory per polity. Derived data is
// recomputed wholesale on every Update and swapped in under the lock, so a
// Snapshot is always internally consistent.
package state

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/litescript/ls-starmap/internal/astro"
	"github.com/litescript/ls-starmap/internal/catalog"
	"github.com/litescript/ls-starmap/internal/logging"
	"github.com/litescript/ls-starmap/internal/metrics"
	"github.com/litescript/ls-starmap/internal/octant"
	"github.com/litescript/ls-starmap/internal/territory"
)

// EventType represents the type of territory change event.
type EventType string

const (
	EventTerritoryFormed    EventType = "TERRITORY_FORMED"
	EventTerritoryDissolved EventType = "TERRITORY_DISSOLVED"
	EventMembershipChanged  EventType = "MEMBERSHIP_CHANGED"
	EventBoundaryResized    EventType = "BOUNDARY_RESIZED"
)

// Event represents a change to one territory between two catalog updates.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Territory string    `json:"territory"`
	OldRadius float64   `json:"old_radius,omitempty"`
	NewRadius float64   `json:"new_radius,omitempty"`
	Added     []string  `json:"added,omitempty"`
	Removed   []string  `json:"removed,omitempty"`
}

// Territory is a synthesized territory together with the catalog names of
// its members and the octant holding its centroid.
type Territory struct {
	territory.Territory
	MemberNames    []string `json:"member_names"`
	CentroidOctant int      `json:"centroid_octant"`
}

// Manager handles all shared application state with thread-safe access.
type Manager struct {
	mu sync.RWMutex

	layout octant.Layout
	synth  *territory.Synthesizer
	log    *logging.Logger

	// Current state
	catalog         *catalog.Catalog
	territories     []Territory
	byOctant        map[int][]catalog.Point
	lastUpdate      time.Time
	lastError       error
	computeDuration time.Duration

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	// Live event subscribers
	subs    map[int]chan Event
	nextSub int
}

// Config holds configuration for the state manager.
type Config struct {
	OctantRadius float64
	Territory    territory.Config
	MaxEvents    int
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		OctantRadius: octant.DefaultRadius,
		Territory:    territory.DefaultConfig(),
		MaxEvents:    50,
	}
}

// NewManager creates a new state manager. A nil logger discards output.
func NewManager(cfg Config, log *logging.Logger) (*Manager, error) {
	layout, err := octant.NewLayout(cfg.OctantRadius)
	if err != nil {
		return nil, fmt.Errorf("octant layout: %w", err)
	}
	synth, err := territory.NewSynthesizer(cfg.Territory)
	if err != nil {
		return nil, fmt.Errorf("territory synthesizer: %w", err)
	}
	if log == nil {
		log = logging.Discard()
	}

	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	return &Manager{
		layout:    layout,
		synth:     synth,
		log:       log.With("component", "state"),
		maxEvents: maxEvents,
		events:    make([]Event, 0, maxEvents),
		subs:      make(map[int]chan Event),
	}, nil
}

// derived is everything computed from one catalog.
type derived struct {
	territories []Territory
	byOctant    map[int][]catalog.Point
}

// compute derives octants and territories from cat without touching m.
func (m *Manager) compute(cat *catalog.Catalog) (derived, error) {
	start := time.Now()
	byOctant, err := octant.Partition(cat.Points, func(p catalog.Point) astro.Vec3 { return p.Position })
	metrics.RecordOperation("octant_partition", time.Since(start), err)
	if err != nil {
		return derived{}, err
	}

	terrs := make([]Territory, 0, len(cat.Polities))
	for _, pol := range cat.Polities {
		members, err := cat.Members(pol)
		if err != nil {
			return derived{}, err
		}

		start := time.Now()
		t, err := m.synth.Synthesize(territory.Request{
			Name:    pol.Name,
			Members: catalog.Positions(members),
			Compact: pol.Compact,
		})
		metrics.RecordOperation("territory_synthesize", time.Since(start), err)
		if err != nil {
			return derived{}, fmt.Errorf("territory %q: %w", pol.Name, err)
		}

		id, err := octant.ClassifyID(t.Centroid)
		if err != nil {
			return derived{}, fmt.Errorf("territory %q: %w", pol.Name, err)
		}
		names := make([]string, len(members))
		for i, p := range members {
			names[i] = p.Name
		}
		terrs = append(terrs, Territory{Territory: t, MemberNames: names, CentroidOctant: id})
	}
	return derived{territories: terrs, byOctant: byOctant}, nil
}

// Update recomputes all derived state from cat and swaps it in atomically.
// On failure the previous state is kept and the error is recorded.
func (m *Manager) Update(cat *catalog.Catalog) error {
	if cat == nil {
		return fmt.Errorf("state update: nil catalog")
	}

	start := time.Now()
	d, err := m.compute(cat)
	elapsed := time.Since(start)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastUpdate = time.Now()
	m.computeDuration = elapsed
	m.lastError = err
	if err != nil {
		m.log.Error("catalog update rejected: %v", err)
		return err
	}

	m.detectEvents(d.territories)
	m.catalog = cat
	m.territories = d.territories
	m.byOctant = d.byOctant

	metrics.TerritoryRecomputes.Inc()
	metrics.SetCatalogSize(len(cat.Points), len(d.territories))
	m.log.Info("catalog updated: %d stars, %d territories in %s", len(cat.Points), len(d.territories), elapsed)
	return nil
}

// RecordError records a failure to produce a catalog, such as an unreadable
// catalog file. The current catalog and territories are kept.
func (m *Manager) RecordError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastUpdate = time.Now()
	m.lastError = err
	m.log.Error("catalog load failed: %v", err)
}

// detectEvents compares the new territories with the current ones.
func (m *Manager) detectEvents(next []Territory) {
	now := time.Now()

	prev := make(map[string]Territory, len(m.territories))
	for _, t := range m.territories {
		prev[t.Name] = t
	}
	seen := make(map[string]bool, len(next))

	for _, t := range next {
		seen[t.Name] = true
		old, existed := prev[t.Name]
		if !existed {
			m.addEvent(Event{
				Type:      EventTerritoryFormed,
				Timestamp: now,
				Territory: t.Name,
				NewRadius: t.BoundaryRadius,
				Added:     append([]string(nil), t.MemberNames...),
			})
			continue
		}

		added, removed := diffNames(old.MemberNames, t.MemberNames)
		switch {
		case len(added) > 0 || len(removed) > 0:
			m.addEvent(Event{
				Type:      EventMembershipChanged,
				Timestamp: now,
				Territory: t.Name,
				OldRadius: old.BoundaryRadius,
				NewRadius: t.BoundaryRadius,
				Added:     added,
				Removed:   removed,
			})
		case math.Abs(old.BoundaryRadius-t.BoundaryRadius) > 1e-9:
			m.addEvent(Event{
				Type:      EventBoundaryResized,
				Timestamp: now,
				Territory: t.Name,
				OldRadius: old.BoundaryRadius,
				NewRadius: t.BoundaryRadius,
			})
		}
	}

	// Dissolved territories in name order so the log is deterministic
	var gone []string
	for name := range prev {
		if !seen[name] {
			gone = append(gone, name)
		}
	}
	sort.Strings(gone)
	for _, name := range gone {
		m.addEvent(Event{
			Type:      EventTerritoryDissolved,
			Timestamp: now,
			Territory: name,
			OldRadius: prev[name].BoundaryRadius,
			Removed:   append([]string(nil), prev[name].MemberNames...),
		})
	}
}

func diffNames(old, next []string) (added, removed []string) {
	inOld := make(map[string]bool, len(old))
	for _, n := range old {
		inOld[n] = true
	}
	inNext := make(map[string]bool, len(next))
	for _, n := range next {
		inNext[n] = true
		if !inOld[n] {
			added = append(added, n)
		}
	}
	for _, n := range old {
		if !inNext[n] {
			removed = append(removed, n)
		}
	}
	return added, removed
}

// addEvent adds an event to the ring buffer.
// Callers hold the write lock.
func (m *Manager) addEvent(e Event) {
	e.ID = uuid.NewString()
	m.log.Debug("territory event %s: %s", e.Type, e.Territory)
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}

	for id, ch := range m.subs {
		select {
		case ch <- e:
		default:
			metrics.EventsDropped.Inc()
			m.log.Warn("event subscriber %d is lagging, dropped %s", id, e.ID)
		}
	}
}

// Subscribe returns a channel that receives every event recorded after the
// call. Slow receivers miss events once buffer is full. The cancel function
// closes the channel and is safe to call more than once.
func (m *Manager) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Event, buffer)

	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = ch
	m.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, id)
			m.mu.Unlock()
			close(ch)
		})
	}
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Catalog         *catalog.Catalog
	Layout          octant.Layout
	Territories     []Territory
	ByOctant        map[int][]catalog.Point
	LastUpdate      time.Time
	LastError       error
	ComputeDuration time.Duration
	Events          []Event
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	terrs := make([]Territory, len(m.territories))
	copy(terrs, m.territories)

	byOctant := make(map[int][]catalog.Point, len(m.byOctant))
	for k, v := range m.byOctant {
		byOctant[k] = append([]catalog.Point(nil), v...)
	}

	return Snapshot{
		Catalog:         m.catalog,
		Layout:          m.layout,
		Territories:     terrs,
		ByOctant:        byOctant,
		LastUpdate:      m.lastUpdate,
		LastError:       m.lastError,
		ComputeDuration: m.computeDuration,
		Events:          m.getEventsOrdered(),
	}
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	// If buffer isn't full yet, just copy
	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		idx := (m.eventWriteAt + i) % m.maxEvents
		result[i] = m.events[idx]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// Territory returns the named territory, ignoring case.
func (m *Manager) Territory(name string) (Territory, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, t := range m.territories {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return Territory{}, false
}

// Layout returns the octant layout.
func (m *Manager) Layout() octant.Layout {
	return m.layout
}

// Synthesizer returns the territory synthesizer for ad hoc requests.
func (m *Manager) Synthesizer() *territory.Synthesizer {
	return m.synth
}
