package daycounter

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"daycounter/internal/metrics"
	"daycounter/internal/store"
)

// CounterState is the durable part of the counter. Only StartDate is persisted;
// DaysCount is derived on every mutation.
type CounterState struct {
	StartDate *time.Time
	DaysCount int
}

// State owns the counter and mediates between the gateway and the clients.
// Gateway calls happen under mu, so events are applied in arrival order.
type State struct {
	internal      CounterState
	pickerVisible bool

	gateway  store.Gateway
	policy   DismissPolicy
	location *time.Location
	now      func() time.Time
	recorder metrics.Recorder

	hooks []Hook
	mu    sync.Mutex
	// hookMu is taken before mu is released so views reach the hooks in the
	// order the changes were applied. Hooks must not call back into State.
	hookMu sync.Mutex
}

type Option func(*State)

func WithDismissPolicy(p DismissPolicy) Option {
	return func(s *State) { s.policy = p }
}

func WithLocation(loc *time.Location) Option {
	return func(s *State) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *State) {
		if now != nil {
			s.now = now
		}
	}
}

func WithRecorder(r metrics.Recorder) Option {
	return func(s *State) {
		if r != nil {
			s.recorder = r
		}
	}
}

func NewState(gateway store.Gateway, opts ...Option) *State {
	s := &State{
		gateway:  gateway,
		policy:   AutoDismiss,
		location: time.Local,
		now:      time.Now,
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddHook registers h to run after every change.
func (s *State) AddHook(h Hook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, h)
}

// Initialize loads the stored start date. Read failures and unparseable
// values leave the counter empty.
func (s *State) Initialize(ctx context.Context) {
	s.mu.Lock()
	value, found, err := s.gateway.Get(ctx, store.StartDateKey)
	s.recorder.ObservePersistence("get", err)
	switch {
	case err != nil:
		log.Error("Failed to load start date", "error", err)
		s.clear()
	case !found:
		s.clear()
	default:
		date, perr := ParseStartDate(value, s.location)
		if perr != nil {
			log.Warn("Ignoring stored start date", "value", value, "error", perr)
			s.clear()
			break
		}
		s.setStartDate(date)
		log.Info("Start date loaded", "date", date.Format(dateOnlyLayout), "days", s.internal.DaysCount)
	}
	view, hooks := s.snapshot()
	s.unlockAndNotify(hooks, view)
}

// SelectDate persists date and makes it the start date. The in-memory state
// is updated even when the write fails.
func (s *State) SelectDate(ctx context.Context, date time.Time) View {
	s.mu.Lock()
	s.selectDate(ctx, date)
	view, hooks := s.snapshot()
	s.unlockAndNotify(hooks, view)
	return view
}

// Reset removes the stored date and empties the counter. The in-memory state
// is cleared even when the delete fails.
func (s *State) Reset(ctx context.Context) View {
	s.mu.Lock()
	err := s.gateway.Remove(ctx, store.StartDateKey)
	s.recorder.ObservePersistence("remove", err)
	if err != nil {
		log.Error("Failed to reset start date", "error", err)
	}
	s.clear()
	log.Info("Counter reset")
	view, hooks := s.snapshot()
	s.unlockAndNotify(hooks, view)
	return view
}

// OpenPicker shows the date picker.
func (s *State) OpenPicker() View {
	s.mu.Lock()
	s.pickerVisible = true
	view, hooks := s.snapshot()
	s.unlockAndNotify(hooks, view)
	return view
}

// DismissPicker hides the date picker without changing the date.
func (s *State) DismissPicker() View {
	s.mu.Lock()
	s.pickerVisible = false
	view, hooks := s.snapshot()
	s.unlockAndNotify(hooks, view)
	return view
}

// PickerChanged handles a picker change event. A nil selection (cancelled
// picker) falls back to the held start date; when neither exists only the
// picker visibility changes.
func (s *State) PickerChanged(ctx context.Context, selected *time.Time) View {
	s.mu.Lock()
	current := selected
	if current == nil {
		current = s.internal.StartDate
	}
	s.pickerVisible = s.policy.visibleAfterChange()
	if current != nil {
		s.selectDate(ctx, *current)
	}
	view, hooks := s.snapshot()
	s.unlockAndNotify(hooks, view)
	return view
}

// View returns the current surface. The count is the one computed at the
// last change.
func (s *State) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	view, _ := s.snapshot()
	return view
}

// Counter returns a copy of the counter state.
func (s *State) Counter() CounterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.internal
	if c.StartDate != nil {
		d := *c.StartDate
		c.StartDate = &d
	}
	return c
}

func (s *State) Policy() DismissPolicy {
	return s.policy
}

// selectDate must be called with mu held.
func (s *State) selectDate(ctx context.Context, date time.Time) {
	err := s.gateway.Set(ctx, store.StartDateKey, FormatStartDate(date))
	s.recorder.ObservePersistence("set", err)
	if err != nil {
		log.Error("Failed to save start date", "error", err)
	}
	s.setStartDate(date.In(s.location))
	log.Info("Start date selected", "date", date.Format(dateOnlyLayout), "days", s.internal.DaysCount)
}

func (s *State) setStartDate(date time.Time) {
	s.internal.StartDate = &date
	s.internal.DaysCount = Recompute(date, s.now(), s.location)
	s.recorder.SetDaysCount(s.internal.DaysCount)
}

func (s *State) clear() {
	s.internal.StartDate = nil
	s.internal.DaysCount = 0
	s.recorder.SetDaysCount(0)
}

// snapshot must be called with mu held.
func (s *State) snapshot() (View, []Hook) {
	view := View{
		Title:         Title,
		DateLabel:     DateLabel(s.internal.StartDate),
		DaysCount:     s.internal.DaysCount,
		PickerVisible: s.pickerVisible,
	}
	if s.internal.StartDate != nil {
		view.StartDate = s.internal.StartDate.Format(dateOnlyLayout)
	}
	if s.pickerVisible {
		value := s.now().In(s.location)
		if s.internal.StartDate != nil {
			value = *s.internal.StartDate
		}
		view.PickerDate = value.Format(pickerDateLayout)
	}
	hooks := make([]Hook, len(s.hooks))
	copy(hooks, s.hooks)
	return view, hooks
}

// unlockAndNotify releases mu and runs hooks with view. Must be called with mu held.
func (s *State) unlockAndNotify(hooks []Hook, view View) {
	s.hookMu.Lock()
	defer s.hookMu.Unlock()
	s.mu.Unlock()

	for _, hook := range hooks {
		hook(view)
	}
}
