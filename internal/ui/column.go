package ui

import (
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gravitrone/wheelpick/internal/selector"
	"github.com/gravitrone/wheelpick/internal/ui/components"
)

const (
	// releaseWindow is how long input must pause before a drag counts as released.
	releaseWindow = 120 * time.Millisecond
	frameInterval = 16 * time.Millisecond
	friction      = 0.82
	// minFrameSpeed is the momentum speed, in offset units per frame, at
	// which settling snaps to a row.
	minFrameSpeed = 0.5
	wheelStep     = 1.0 / 3
	flingRows     = 1.5
	animateEase   = 0.5
)

// --- Messages ---

type releaseTickMsg struct {
	column int
	seq    uint64
}

type frameTickMsg struct {
	column int
	seq    uint64
}

type columnChangedMsg struct {
	column int
	index  int
	value  string
}

// columnMsg is implemented by the tick messages a column schedules for itself.
type columnMsg interface {
	columnID() int
}

func (m releaseTickMsg) columnID() int { return m.column }
func (m frameTickMsg) columnID() int   { return m.column }
func (m commitTickMsg) columnID() int  { return m.column }

// --- Column Model ---

// ColumnModel is the scroll surface for one selector. Key presses and wheel
// events drag the offset; when input pauses the drag is released, momentum
// frames decelerate it, and the resting offset is snapped to a row boundary
// before the selector resolves it.
type ColumnModel struct {
	id      int
	title   string
	sel     *selector.Selector[string]
	sched   *teaScheduler
	keys    KeyMap
	rows    int
	width   int
	focused bool

	offset     float64
	velocity   float64
	dragging   bool
	settling   bool
	animating  bool
	animTarget float64
	needsFrame bool
	releaseSeq uint64
	frameSeq   uint64

	changed []columnChangedMsg
}

var _ selector.Surface = (*ColumnModel)(nil)

// NewColumnModel builds a column over labels.
func NewColumnModel(id int, title string, labels []string, selected int, cfg selector.Config, keys KeyMap, log *slog.Logger) (*ColumnModel, error) {
	c := &ColumnModel{
		id:    id,
		title: title,
		keys:  keys,
		sched: newTeaScheduler(id),
	}
	sel, err := selector.New(labels, selected, cfg,
		selector.WithScheduler[string](c.sched),
		selector.WithSurface[string](c),
		selector.WithLogger[string](log),
		selector.WithOnChange(func(value string, index int) {
			c.changed = append(c.changed, columnChangedMsg{column: id, index: index, value: value})
		}),
	)
	if err != nil {
		return nil, err
	}
	c.sel = sel
	c.offset = sel.Offset()
	c.rows = visibleRows(sel.Config())
	return c, nil
}

func visibleRows(cfg selector.Config) int {
	rows := int(math.Round(cfg.ViewportHeight / cfg.ItemHeight))
	if rows < 1 {
		return 1
	}
	if rows%2 == 0 {
		rows++
	}
	return rows
}

// Update handles input for a focused column and the column's own ticks.
func (c *ColumnModel) Update(msg tea.Msg) tea.Cmd {
	h := c.itemHeight()
	switch msg := msg.(type) {
	case releaseTickMsg:
		if msg.column != c.id || msg.seq != c.releaseSeq || !c.dragging {
			return nil
		}
		return c.release()
	case frameTickMsg:
		if msg.column != c.id || msg.seq != c.frameSeq {
			return nil
		}
		return c.step()
	case commitTickMsg:
		if msg.column != c.id {
			return nil
		}
		c.sched.fire(msg.seq)
		return c.flush()
	case tea.KeyMsg:
		if !c.focused {
			return nil
		}
		switch {
		case key.Matches(msg, c.keys.Up):
			return c.drag(-h, 0)
		case key.Matches(msg, c.keys.Down):
			return c.drag(h, 0)
		case key.Matches(msg, c.keys.PageUp):
			return c.drag(-h, -flingRows*h)
		case key.Matches(msg, c.keys.PageDown):
			return c.drag(h, flingRows*h)
		case key.Matches(msg, c.keys.Home):
			return c.Select(0)
		case key.Matches(msg, c.keys.End):
			return c.Select(c.sel.ItemCount() - 1)
		}
	case tea.MouseMsg:
		if !c.focused || msg.Action != tea.MouseActionPress {
			return nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			return c.drag(-h*wheelStep, 0)
		case tea.MouseButtonWheelDown:
			return c.drag(h*wheelStep, 0)
		}
	}
	return nil
}

// View renders the visible window around the current offset.
func (c *ColumnModel) View() string {
	center := int(math.Round(c.offset / c.itemHeight()))
	start := components.WheelWindow(center, c.rows)
	rows := make([]string, c.rows)
	for i := range rows {
		if label, ok := c.sel.ItemAt(start + i); ok {
			rows[i] = label
		}
	}
	if c.sel.ItemCount() == 0 {
		rows[c.rows/2] = "—"
	}
	return components.Wheel{
		Title:   c.title,
		Rows:    rows,
		Cursor:  c.rows / 2,
		Width:   c.width,
		Focused: c.focused,
	}.Render()
}

// --- Commands ---

// Select jumps to index programmatically.
func (c *ColumnModel) Select(index int) tea.Cmd {
	c.stopMotion()
	c.sel.ScrollToTargetIndex(index)
	return c.flush()
}

// SetItems swaps the column's list, keeping selected as close as possible.
func (c *ColumnModel) SetItems(labels []string, selected int) tea.Cmd {
	c.stopMotion()
	c.sel.Reinitialize(labels, selected)
	c.offset = c.sel.Offset()
	return c.flush()
}

// Settle finishes any drag, momentum or pending reposition right away and
// returns the changes that produced. Nothing is left queued for flush.
func (c *ColumnModel) Settle() []columnChangedMsg {
	moving := c.dragging || c.settling
	c.stopMotion()
	if moving {
		rest := c.nearestSnap(c.offset)
		c.offset = rest
		c.sel.OnMomentumEnd(rest)
	}
	for seq := range c.sched.pending {
		c.sched.fire(seq)
	}
	c.sched.drain()
	c.needsFrame = false
	changed := c.changed
	c.changed = nil
	return changed
}

// Destroy stops the selector. Outstanding ticks become no-ops.
func (c *ColumnModel) Destroy() {
	c.stopMotion()
	c.sel.Destroy()
}

// --- Accessors ---

func (c *ColumnModel) Focus(focused bool) { c.focused = focused }

func (c *ColumnModel) SetWidth(width int) { c.width = width }

func (c *ColumnModel) SelectedIndex() int { return c.sel.SelectedIndex() }

// SelectedLabel returns the committed label.
func (c *ColumnModel) SelectedLabel() (string, bool) { return c.sel.Selected() }

// VisibleIndex is the item under the highlight, committed or not.
func (c *ColumnModel) VisibleIndex() int {
	return c.sel.IndexOfRow(int(math.Round(c.offset / c.itemHeight())))
}

func (c *ColumnModel) Offset() float64 { return c.offset }

func (c *ColumnModel) State() selector.State { return c.sel.State() }

func (c *ColumnModel) ItemCount() int { return c.sel.ItemCount() }

// --- selector.Surface ---

// JumpTo moves the offset without animation.
func (c *ColumnModel) JumpTo(offset float64) {
	c.offset = offset
	c.animating = false
}

// AnimateTo eases the offset toward offset over the next frames.
func (c *ColumnModel) AnimateTo(offset float64) {
	c.animTarget = offset
	c.animating = true
	c.settling = false
	c.needsFrame = true
}

// --- Motion ---

func (c *ColumnModel) drag(delta, velocity float64) tea.Cmd {
	if c.sel.Disabled() {
		return nil
	}
	if !c.dragging {
		c.stopMotion()
		c.dragging = true
		c.sel.BeginDrag()
	}
	c.offset = c.clampOffset(c.offset + delta)
	c.velocity = velocity
	c.sel.OnScroll(c.offset)

	c.releaseSeq++
	id, seq := c.id, c.releaseSeq
	return tea.Tick(releaseWindow, func(time.Time) tea.Msg {
		return releaseTickMsg{column: id, seq: seq}
	})
}

func (c *ColumnModel) release() tea.Cmd {
	c.dragging = false
	c.sel.Release(c.velocity)
	if c.sel.State() == selector.Settling {
		c.settling = true
		return tea.Batch(c.nextFrame(), c.flush())
	}
	c.velocity = 0
	return c.flush()
}

func (c *ColumnModel) step() tea.Cmd {
	switch {
	case c.animating:
		d := c.animTarget - c.offset
		if math.Abs(d) < 0.5 {
			c.offset = c.animTarget
			c.animating = false
			return nil
		}
		c.offset += d * animateEase
		return c.nextFrame()
	case c.settling:
		raw := c.offset + c.velocity
		next := c.clampOffset(raw)
		c.offset = next
		c.velocity *= friction
		c.sel.OnScroll(c.offset)
		if next != raw || math.Abs(c.velocity) < minFrameSpeed {
			c.settling = false
			c.velocity = 0
			rest := c.nearestSnap(c.offset)
			c.offset = rest
			c.sel.OnMomentumEnd(rest)
			return c.flush()
		}
		return c.nextFrame()
	}
	return nil
}

func (c *ColumnModel) nextFrame() tea.Cmd {
	c.frameSeq++
	id, seq := c.id, c.frameSeq
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return frameTickMsg{column: id, seq: seq}
	})
}

// stopMotion drops any drag, momentum or animation in flight. Their ticks
// are invalidated by bumping the sequence numbers.
func (c *ColumnModel) stopMotion() {
	c.dragging = false
	c.settling = false
	c.animating = false
	c.velocity = 0
	c.releaseSeq++
	c.frameSeq++
}

// flush collects scheduler ticks, a pending animation frame and change
// notifications into one command.
func (c *ColumnModel) flush() tea.Cmd {
	cmds := c.sched.drain()
	if c.needsFrame {
		c.needsFrame = false
		cmds = append(cmds, c.nextFrame())
	}
	for _, ch := range c.changed {
		cmds = append(cmds, func() tea.Msg { return ch })
	}
	c.changed = nil
	return tea.Batch(cmds...)
}

func (c *ColumnModel) itemHeight() float64 {
	return c.sel.Config().ItemHeight
}

func (c *ColumnModel) clampOffset(offset float64) float64 {
	rows := c.sel.RowCount()
	if rows == 0 || offset < 0 {
		return 0
	}
	limit := float64(rows-1) * c.itemHeight()
	if offset > limit {
		return limit
	}
	return offset
}

// nearestSnap returns the snap offset closest to offset.
func (c *ColumnModel) nearestSnap(offset float64) float64 {
	snaps := c.sel.SnapOffsets()
	if len(snaps) == 0 {
		return 0
	}
	i := sort.SearchFloat64s(snaps, offset)
	switch {
	case i == 0:
		return snaps[0]
	case i == len(snaps):
		return snaps[len(snaps)-1]
	case offset-snaps[i-1] <= snaps[i]-offset:
		return snaps[i-1]
	}
	return snaps[i]
}
