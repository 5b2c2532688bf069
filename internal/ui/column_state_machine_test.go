package ui

import (
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitrone/wheelpick/internal/selector"
)

func testSelectorConfig(loop bool) selector.Config {
	return selector.Config{ItemHeight: 40, Loop: loop, ReplicationFactor: 3, CommitDelay: time.Millisecond}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	case "home":
		return tea.KeyMsg{Type: tea.KeyHome}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// collectMsgs runs cmd, unpacking batches. Tick commands block for their
// duration, so callers only collect after release and commit.
func collectMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collectMsgs(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func changes(msgs []tea.Msg) []columnChangedMsg {
	var out []columnChangedMsg
	for _, msg := range msgs {
		if ch, ok := msg.(columnChangedMsg); ok {
			out = append(out, ch)
		}
	}
	return out
}

func releaseColumn(c *ColumnModel) tea.Cmd {
	return c.Update(releaseTickMsg{column: c.id, seq: c.releaseSeq})
}

func commitColumn(c *ColumnModel) tea.Cmd {
	return c.Update(commitTickMsg{column: c.id, seq: c.sched.seq})
}

// runFrames feeds frame ticks until the column comes to rest.
func runFrames(t *testing.T, c *ColumnModel) []columnChangedMsg {
	t.Helper()
	var out []columnChangedMsg
	for i := 0; i < 500 && (c.settling || c.animating); i++ {
		cmd := c.Update(frameTickMsg{column: c.id, seq: c.frameSeq})
		if !c.settling && !c.animating {
			out = append(out, changes(collectMsgs(cmd))...)
		}
	}
	require.False(t, c.settling || c.animating, "column never came to rest")
	return out
}

func newMonthColumn(t *testing.T, selected int) *ColumnModel {
	t.Helper()
	c, err := NewColumnModel(0, "Month", monthLabels(), selected, testSelectorConfig(true), DefaultKeyMap(true), nil)
	require.NoError(t, err)
	c.Focus(true)
	return c
}

func TestColumnStartsCentered(t *testing.T) {
	c := newMonthColumn(t, 0)

	assert.Equal(t, 480.0, c.Offset())
	assert.Equal(t, selector.Idle, c.State())
	assert.Equal(t, 5, c.rows)
}

func TestColumnKeyDragThenReleaseCommits(t *testing.T) {
	c := newMonthColumn(t, 0)

	c.Update(keyMsg("down"))
	assert.Equal(t, 520.0, c.Offset())
	assert.Equal(t, selector.Dragging, c.State())
	assert.Equal(t, 0, c.SelectedIndex(), "nothing commits while dragging")

	got := changes(collectMsgs(releaseColumn(c)))

	assert.Equal(t, selector.Idle, c.State())
	assert.Equal(t, 1, c.SelectedIndex())
	assert.Equal(t, []columnChangedMsg{{column: 0, index: 1, value: "Feb"}}, got)
}

func TestColumnRepeatedKeysReleaseOnce(t *testing.T) {
	c := newMonthColumn(t, 0)

	c.Update(keyMsg("j"))
	c.Update(keyMsg("j"))
	c.Update(keyMsg("j"))
	got := changes(collectMsgs(releaseColumn(c)))

	assert.Equal(t, 3, c.SelectedIndex())
	assert.Len(t, got, 1)
}

func TestColumnStaleReleaseTickIgnored(t *testing.T) {
	c := newMonthColumn(t, 0)

	c.Update(keyMsg("down"))
	stale := c.releaseSeq
	c.Update(keyMsg("down"))

	assert.Nil(t, c.Update(releaseTickMsg{column: c.id, seq: stale}))
	assert.Equal(t, selector.Dragging, c.State())
}

func TestColumnLeadingBandRepositionsAndCommitsLater(t *testing.T) {
	c := newMonthColumn(t, 0)

	for i := 0; i < 11; i++ {
		c.Update(keyMsg("up"))
	}
	assert.Equal(t, 40.0, c.Offset())

	got := changes(collectMsgs(releaseColumn(c)))
	assert.Empty(t, got)
	assert.Equal(t, selector.Repositioning, c.State())
	assert.Equal(t, float64(13*40), c.Offset(), "surface jumped into the middle copy")
	assert.Equal(t, 1, c.sched.live())

	got = changes(collectMsgs(commitColumn(c)))
	assert.Equal(t, []columnChangedMsg{{column: 0, index: 1, value: "Feb"}}, got)
	assert.Equal(t, selector.Idle, c.State())
	assert.Equal(t, 0, c.sched.live())
}

func TestColumnDragDuringRepositionDropsCommit(t *testing.T) {
	c := newMonthColumn(t, 0)

	for i := 0; i < 11; i++ {
		c.Update(keyMsg("up"))
	}
	collectMsgs(releaseColumn(c))
	require.Equal(t, selector.Repositioning, c.State())
	staleSeq := c.sched.seq

	c.Update(keyMsg("down"))
	assert.Equal(t, 0, c.sched.live())
	assert.Empty(t, changes(collectMsgs(c.Update(commitTickMsg{column: c.id, seq: staleSeq}))))
	assert.Equal(t, selector.Dragging, c.State())
	assert.Equal(t, 0, c.SelectedIndex())

	got := changes(collectMsgs(releaseColumn(c)))
	assert.Equal(t, []columnChangedMsg{{column: 0, index: 2, value: "Mar"}}, got)
}

func TestColumnSetItemsDropsStaleCommit(t *testing.T) {
	c, err := NewColumnModel(0, "Day", numberLabels(1, 31), 30, testSelectorConfig(true), DefaultKeyMap(false), nil)
	require.NoError(t, err)
	c.Focus(true)

	// 30 steps down from day 31 lands in the trailing copy
	for i := 0; i < 30; i++ {
		c.Update(keyMsg("down"))
	}
	collectMsgs(releaseColumn(c))
	require.Equal(t, selector.Repositioning, c.State())
	staleSeq := c.sched.seq

	c.SetItems(numberLabels(1, 28), 30)
	assert.Equal(t, 0, c.sched.live())
	assert.Equal(t, 27, c.SelectedIndex())

	got := changes(collectMsgs(c.Update(commitTickMsg{column: c.id, seq: staleSeq})))
	assert.Empty(t, got)
	assert.Equal(t, 27, c.SelectedIndex())
	assert.Equal(t, float64((28+27)*40), c.Offset())
}

func TestColumnWheelPartialRowSnapsBack(t *testing.T) {
	c := newMonthColumn(t, 0)

	c.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	assert.InDelta(t, 480+40.0/3, c.Offset(), 1e-9)

	releaseColumn(c)
	assert.Equal(t, selector.Settling, c.State())

	got := runFrames(t, c)
	assert.Empty(t, got)
	assert.Equal(t, 480.0, c.Offset())
	assert.Equal(t, selector.Idle, c.State())
}

func TestColumnWheelPastHalfRowAdvances(t *testing.T) {
	c := newMonthColumn(t, 0)
	wheel := tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress}

	c.Update(wheel)
	c.Update(wheel)
	releaseColumn(c)
	got := runFrames(t, c)

	assert.Equal(t, 520.0, c.Offset())
	assert.Equal(t, []columnChangedMsg{{column: 0, index: 1, value: "Feb"}}, got)
}

func TestColumnFlingDeceleratesOntoBoundary(t *testing.T) {
	c := newMonthColumn(t, 0)

	c.Update(keyMsg("pgdown"))
	releaseColumn(c)
	require.Equal(t, selector.Settling, c.State())

	runFrames(t, c)

	assert.Zero(t, math.Mod(c.Offset(), 40), "rests on a row boundary")
	assert.Greater(t, c.SelectedIndex(), 3)
	assert.Contains(t, []selector.State{selector.Idle, selector.Repositioning}, c.State())
}

func TestColumnEndAnimatesToLastItem(t *testing.T) {
	c := newMonthColumn(t, 0)

	cmd := c.Update(keyMsg("end"))
	require.NotNil(t, cmd)
	assert.Equal(t, 11, c.SelectedIndex(), "programmatic selection commits immediately")
	assert.True(t, c.animating)

	runFrames(t, c)
	assert.Equal(t, float64(23*40), c.Offset())

	c.Update(keyMsg("home"))
	assert.Equal(t, 0, c.SelectedIndex())
}

func TestColumnUnfocusedIgnoresInput(t *testing.T) {
	c := newMonthColumn(t, 0)
	c.Focus(false)

	assert.Nil(t, c.Update(keyMsg("down")))
	assert.Nil(t, c.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress}))
	assert.Equal(t, 480.0, c.Offset())
}

func TestColumnNonLoopClampsDrag(t *testing.T) {
	c, err := NewColumnModel(0, "Year", yearLabels(2020, 2022), 2, testSelectorConfig(false), DefaultKeyMap(false), nil)
	require.NoError(t, err)
	c.Focus(true)

	c.Update(keyMsg("down"))
	c.Update(keyMsg("down"))
	assert.Equal(t, 80.0, c.Offset())

	collectMsgs(releaseColumn(c))
	assert.Equal(t, 2, c.SelectedIndex())
	assert.Equal(t, selector.Idle, c.State())
}

func TestColumnEmptyListIsInert(t *testing.T) {
	c, err := NewColumnModel(0, "Item", nil, 0, testSelectorConfig(true), DefaultKeyMap(false), nil)
	require.NoError(t, err)
	c.Focus(true)

	assert.Nil(t, c.Update(keyMsg("down")))
	assert.Equal(t, 0.0, c.Offset())
	assert.Contains(t, c.View(), "—")
	_, ok := c.SelectedLabel()
	assert.False(t, ok)
}

func TestColumnSettleCommitsDragAndPending(t *testing.T) {
	c := newMonthColumn(t, 0)

	c.Update(keyMsg("down"))
	c.Update(keyMsg("down"))
	c.Settle()
	assert.Equal(t, 2, c.SelectedIndex())

	for i := 0; i < 5; i++ {
		c.Update(keyMsg("up"))
	}
	collectMsgs(releaseColumn(c))
	require.True(t, c.sel.Pending())

	got := c.Settle()
	assert.False(t, c.sel.Pending())
	assert.Equal(t, 9, c.SelectedIndex())
	assert.Equal(t, []columnChangedMsg{{column: 0, index: 9, value: "Oct"}}, got)
	assert.Nil(t, c.flush(), "settled changes are not emitted again")
}

func TestColumnDestroyDropsPendingCommit(t *testing.T) {
	c := newMonthColumn(t, 0)

	for i := 0; i < 11; i++ {
		c.Update(keyMsg("up"))
	}
	collectMsgs(releaseColumn(c))
	seq := c.sched.seq

	c.Destroy()

	got := changes(collectMsgs(c.Update(commitTickMsg{column: c.id, seq: seq})))
	assert.Empty(t, got)
	assert.Equal(t, 0, c.SelectedIndex())
}

func TestColumnViewShowsWindowAroundOffset(t *testing.T) {
	c := newMonthColumn(t, 0)

	out := c.View()
	for _, want := range []string{"Month", "Nov", "Dec", "Jan", "Feb", "Mar"} {
		assert.Contains(t, out, want)
	}
	assert.False(t, strings.Contains(out, "Apr"))
}

func TestVisibleRowsIsOdd(t *testing.T) {
	assert.Equal(t, 5, visibleRows(selector.Config{ItemHeight: 40, ViewportHeight: 200}))
	assert.Equal(t, 5, visibleRows(selector.Config{ItemHeight: 40, ViewportHeight: 160}))
	assert.Equal(t, 1, visibleRows(selector.Config{ItemHeight: 40, ViewportHeight: 10}))
}
