package selector

import (
	"io"
	"log/slog"
	"math"
	"sync"
)

// Option configures a Selector at construction.
type Option[T any] func(*Selector[T])

// WithOnChange registers the settled-selection callback.
func WithOnChange[T any](fn func(value T, index int)) Option[T] {
	return func(s *Selector[T]) {
		s.onChange = fn
	}
}

// WithScheduler replaces SystemScheduler.
func WithScheduler[T any](sched Scheduler) Option[T] {
	return func(s *Selector[T]) {
		if sched != nil {
			s.scheduler = sched
		}
	}
}

// WithSurface attaches the host scroll view.
func WithSurface[T any](surface Surface) Option[T] {
	return func(s *Selector[T]) {
		s.surface = surface
	}
}

// WithLogger sets the logger used for reposition and commit tracing.
func WithLogger[T any](logger *slog.Logger) Option[T] {
	return func(s *Selector[T]) {
		if logger != nil {
			s.log = logger
		}
	}
}

// Selector resolves a scroll offset into one selected item. In loop mode the
// items are laid out ReplicationFactor times and the selector keeps the
// offset inside the middle copy by silently jumping whenever a scroll comes
// to rest in the first or last copy.
//
// All methods are safe to call from any goroutine. Surface and OnChange
// callbacks run after internal state is unlocked, so they may call back into
// the selector.
type Selector[T any] struct {
	mu sync.Mutex

	items       []T
	cfg         Config
	selected    int
	offset      float64
	highlighted int
	state       State
	snaps       []float64
	pending     *pendingReposition
	seq         uint64
	destroyed   bool

	onChange  func(value T, index int)
	scheduler Scheduler
	surface   Surface
	log       *slog.Logger
}

type pendingReposition struct {
	seq       uint64
	targetRow int
	index     int
	timer     Timer
}

// effects are applied once the lock is released.
type effects[T any] struct {
	jump    bool
	animate bool
	offset  float64
	notify  bool
	value   T
	index   int
}

// New builds a selector over items with the given initial selection.
// Out-of-range selections are clamped. An empty items list yields a disabled
// selector rather than an error.
func New[T any](items []T, selected int, cfg Config, opts ...Option[T]) (*Selector[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Selector[T]{
		cfg:       cfg.withDefaults(),
		scheduler: SystemScheduler,
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.install(items, selected)
	return s, nil
}

// Reinitialize swaps in a new item list. Any pending commit against the old
// list is cancelled and no change notification fires.
func (s *Selector[T]) Reinitialize(items []T, selected int) {
	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return
	}
	s.cancelPendingLocked("reinitialize")
	s.install(items, selected)
	fx := effects[T]{jump: len(s.items) > 0, offset: s.offset}
	s.mu.Unlock()
	s.apply(fx)
}

// Reconfigure replaces the geometry. The selected index is kept.
func (s *Selector[T]) Reconfigure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return nil
	}
	s.cancelPendingLocked("reconfigure")
	s.cfg = cfg.withDefaults()
	s.install(s.items, s.selected)
	fx := effects[T]{jump: len(s.items) > 0, offset: s.offset}
	s.mu.Unlock()
	s.apply(fx)
	return nil
}

func (s *Selector[T]) install(items []T, selected int) {
	s.items = append([]T(nil), items...)
	s.state = Idle
	n := len(s.items)
	if n == 0 {
		s.selected = 0
		s.offset = 0
		s.highlighted = 0
		s.snaps = nil
		return
	}
	s.selected = clamp(selected, 0, n-1)
	row := s.homeRow(s.selected)
	s.offset = float64(row) * s.cfg.ItemHeight
	s.highlighted = row
	s.snaps = s.computeSnaps()
}

func (s *Selector[T]) computeSnaps() []float64 {
	rows := s.rowCount()
	snaps := make([]float64, rows)
	for i := range snaps {
		snaps[i] = float64(i) * s.cfg.ItemHeight
	}
	return snaps
}

// BeginDrag marks the start of user-controlled scrolling. A pending commit
// is dropped: the surface already sits on the recentred row, so the next
// settle resolves the same item and notifies then.
func (s *Selector[T]) BeginDrag() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disabledLocked() {
		return
	}
	s.cancelPendingLocked("drag")
	s.state = Dragging
}

// Release ends a drag. With residual velocity the selector waits for
// OnMomentumEnd; at rest on a boundary it settles immediately.
func (s *Selector[T]) Release(velocity float64) {
	s.mu.Lock()
	if s.disabledLocked() || s.state != Dragging {
		s.mu.Unlock()
		return
	}
	if math.Abs(velocity) < RestVelocity && s.onBoundary(s.offset) {
		fx := s.settleLocked(s.offset)
		s.mu.Unlock()
		s.apply(fx)
		return
	}
	s.state = Settling
	s.mu.Unlock()
}

// OnScroll records a live offset. It never changes the selection.
func (s *Selector[T]) OnScroll(offset float64) {
	if math.IsNaN(offset) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disabledLocked() {
		return
	}
	s.offset = offset
	s.highlighted = s.rowAt(offset)
}

// OnMomentumEnd resolves the resting offset into a selection.
func (s *Selector[T]) OnMomentumEnd(offset float64) {
	if math.IsNaN(offset) {
		return
	}
	s.mu.Lock()
	if s.disabledLocked() {
		s.mu.Unlock()
		return
	}
	fx := s.settleLocked(offset)
	s.mu.Unlock()
	s.apply(fx)
}

func (s *Selector[T]) settleLocked(offset float64) effects[T] {
	s.cancelPendingLocked("settle")

	row := s.rowAt(offset)
	s.offset = float64(row) * s.cfg.ItemHeight
	s.highlighted = row

	if !s.cfg.Loop {
		s.state = Idle
		return s.commitLocked(row)
	}

	index := s.indexOfRow(row)
	target, ok := s.recenterRow(row)
	if !ok {
		s.state = Idle
		return s.commitLocked(index)
	}

	s.offset = float64(target) * s.cfg.ItemHeight
	s.highlighted = target
	s.state = Repositioning
	s.scheduleCommitLocked(target, index)
	return effects[T]{jump: true, offset: s.offset}
}

// recenterRow maps a row in the leading or trailing copy onto the middle
// copy. It reports false when the row is already in the middle.
func (s *Selector[T]) recenterRow(row int) (int, bool) {
	r := s.cfg.replicas()
	if r < 3 {
		return row, false
	}
	n := len(s.items)
	center := s.centerOffset()
	switch {
	case row < n:
		return row + center, true
	case row >= n*(r-1):
		return center + (row - n*(r-1)), true
	}
	return row, false
}

func (s *Selector[T]) scheduleCommitLocked(targetRow, index int) {
	s.seq++
	seq := s.seq
	p := &pendingReposition{seq: seq, targetRow: targetRow, index: index}
	s.pending = p
	p.timer = s.scheduler.AfterFunc(s.cfg.CommitDelay, func() {
		s.firePending(seq)
	})
	s.log.Debug("selector reposition scheduled", "target_row", targetRow, "index", index, "seq", seq)
}

func (s *Selector[T]) firePending(seq uint64) {
	s.mu.Lock()
	p := s.pending
	// a stopped timer may still have been in flight
	if p == nil || p.seq != seq || s.destroyed {
		s.mu.Unlock()
		return
	}
	s.pending = nil
	if s.state == Repositioning {
		s.state = Idle
	}
	fx := s.commitLocked(p.index)
	s.mu.Unlock()
	s.log.Debug("selector reposition committed", "index", p.index, "seq", seq, "changed", fx.notify)
	s.apply(fx)
}

func (s *Selector[T]) cancelPendingLocked(reason string) {
	if s.pending == nil {
		return
	}
	if s.pending.timer != nil {
		s.pending.timer.Stop()
	}
	s.log.Debug("selector reposition cancelled", "reason", reason, "seq", s.pending.seq)
	s.pending = nil
}

func (s *Selector[T]) commitLocked(index int) effects[T] {
	if index == s.selected {
		return effects[T]{}
	}
	s.selected = index
	return effects[T]{notify: true, value: s.items[index], index: index}
}

// ScrollToTargetIndex selects target directly and animates the surface to
// it. In loop mode target is taken modulo the item count, otherwise it is
// clamped.
func (s *Selector[T]) ScrollToTargetIndex(target int) {
	s.mu.Lock()
	if s.disabledLocked() {
		s.mu.Unlock()
		return
	}
	s.cancelPendingLocked("programmatic")

	n := len(s.items)
	var index int
	if s.cfg.Loop {
		index = mod(target, n)
	} else {
		index = clamp(target, 0, n-1)
	}
	row := s.homeRow(index)
	s.offset = float64(row) * s.cfg.ItemHeight
	s.highlighted = row
	s.state = Idle

	fx := s.commitLocked(index)
	fx.animate = true
	fx.offset = s.offset
	s.mu.Unlock()
	s.apply(fx)
}

// Destroy cancels pending work. The selector ignores all later calls.
func (s *Selector[T]) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return
	}
	s.cancelPendingLocked("destroy")
	s.destroyed = true
}

func (s *Selector[T]) apply(fx effects[T]) {
	if s.surface != nil {
		switch {
		case fx.jump:
			s.surface.JumpTo(fx.offset)
		case fx.animate:
			s.surface.AnimateTo(fx.offset)
		}
	}
	if fx.notify && s.onChange != nil {
		s.onChange(fx.value, fx.index)
	}
}

// --- Queries ---

// SelectedIndex returns the committed selection.
func (s *Selector[T]) SelectedIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Selected returns the committed item. It reports false for an empty list.
func (s *Selector[T]) Selected() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}
	return s.items[s.selected], true
}

func (s *Selector[T]) Offset() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.offset
}

func (s *Selector[T]) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SnapOffsets returns the pixel offset of every row boundary.
func (s *Selector[T]) SnapOffsets() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]float64(nil), s.snaps...)
}

func (s *Selector[T]) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// RowCount is the length of the laid-out dataset.
func (s *Selector[T]) RowCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rowCount()
}

// CenterOffset is the first row of the middle copy.
func (s *Selector[T]) CenterOffset() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.centerOffset()
}

// HighlightedRow is the row nearest the last known offset.
func (s *Selector[T]) HighlightedRow() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.highlighted
}

// ItemAt returns the item shown at row. Loop mode wraps any row.
func (s *Selector[T]) ItemAt(row int) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	n := len(s.items)
	if n == 0 {
		return zero, false
	}
	if s.cfg.Loop {
		return s.items[mod(row, n)], true
	}
	if row < 0 || row >= n {
		return zero, false
	}
	return s.items[row], true
}

// IndexOfRow maps a row to an item index.
func (s *Selector[T]) IndexOfRow(row int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOfRow(row)
}

func (s *Selector[T]) indexOfRow(row int) int {
	n := len(s.items)
	if n == 0 {
		return 0
	}
	if s.cfg.Loop {
		return mod(row, n)
	}
	return clamp(row, 0, n-1)
}

// Pending reports whether a reposition commit is outstanding.
func (s *Selector[T]) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// Disabled reports whether the selector ignores input.
func (s *Selector[T]) Disabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disabledLocked()
}

func (s *Selector[T]) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// --- Geometry ---

func (s *Selector[T]) disabledLocked() bool {
	return s.destroyed || len(s.items) == 0
}

func (s *Selector[T]) rowCount() int {
	return len(s.items) * s.cfg.replicas()
}

func (s *Selector[T]) centerOffset() int {
	return len(s.items) * (s.cfg.replicas() / 2)
}

func (s *Selector[T]) homeRow(index int) int {
	return s.centerOffset() + index
}

// rowAt rounds offset to the nearest row inside the dataset.
func (s *Selector[T]) rowAt(offset float64) int {
	rows := s.rowCount()
	if rows == 0 {
		return 0
	}
	row := math.Round(offset / s.cfg.ItemHeight)
	if row < 0 {
		return 0
	}
	if row > float64(rows-1) {
		return rows - 1
	}
	return int(row)
}

func (s *Selector[T]) onBoundary(offset float64) bool {
	h := s.cfg.ItemHeight
	return math.Abs(offset-math.Round(offset/h)*h) < 1e-6
}

func mod(a, n int) int {
	return ((a % n) + n) % n
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
