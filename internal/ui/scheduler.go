package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gravitrone/wheelpick/internal/selector"
)

type commitTickMsg struct {
	column int
	seq    uint64
}

// teaScheduler runs selector timers on the bubbletea loop. AfterFunc queues
// a tea.Tick; the callback runs when the tick message comes back through
// Update, unless the timer was stopped in the meantime.
type teaScheduler struct {
	column  int
	seq     uint64
	pending map[uint64]*teaTimer
	out     []tea.Cmd
}

type teaTimer struct {
	sched *teaScheduler
	seq   uint64
	fn    func()
	done  bool
}

var _ selector.Scheduler = (*teaScheduler)(nil)

func newTeaScheduler(column int) *teaScheduler {
	return &teaScheduler{column: column, pending: make(map[uint64]*teaTimer)}
}

func (s *teaScheduler) AfterFunc(d time.Duration, f func()) selector.Timer {
	s.seq++
	t := &teaTimer{sched: s, seq: s.seq, fn: f}
	s.pending[t.seq] = t
	column, seq := s.column, t.seq
	s.out = append(s.out, tea.Tick(d, func(time.Time) tea.Msg {
		return commitTickMsg{column: column, seq: seq}
	}))
	return t
}

func (t *teaTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	delete(t.sched.pending, t.seq)
	return true
}

// fire runs the callback for seq if it is still live.
func (s *teaScheduler) fire(seq uint64) bool {
	t, ok := s.pending[seq]
	if !ok {
		return false
	}
	delete(s.pending, seq)
	t.done = true
	t.fn()
	return true
}

// drain hands the queued tick commands to the caller.
func (s *teaScheduler) drain() []tea.Cmd {
	out := s.out
	s.out = nil
	return out
}

func (s *teaScheduler) live() int {
	return len(s.pending)
}
