package ui

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gravitrone/wheelpick/internal/selector"
	"github.com/gravitrone/wheelpick/internal/ui/components"
)

// PickerKind selects which columns a picker shows.
type PickerKind string

const (
	KindDate PickerKind = "date"
	KindTime PickerKind = "time"
	KindList PickerKind = "list"
)

// Column positions per kind.
const (
	colDay    = 0
	colMonth  = 1
	colYear   = 2
	colHour   = 0
	colMinute = 1
	colSecond = 2
	colItem   = 0
)

const toastDuration = 2500 * time.Millisecond

type clearToastMsg struct{ seq int }

// PickerOptions describes a picker to build.
type PickerOptions struct {
	Kind  PickerKind
	Title string

	// list
	Items []string
	Index int

	// date and time. The year column spans YearFrom..YearTo inclusive.
	Initial  time.Time
	Seconds  bool
	YearFrom int
	YearTo   int

	Selector selector.Config
	VimKeys  bool
	Logger   *slog.Logger
}

// PickerModel composes one ColumnModel per field and produces a single value.
type PickerModel struct {
	kind     PickerKind
	title    string
	columns  []*ColumnModel
	focus    int
	keys     KeyMap
	help     help.Model
	width    int
	height   int
	yearFrom int
	seconds  bool

	done      bool
	confirmed bool
	toast     string
	toastErr  bool
	toastSeq  int

	log    *slog.Logger
	copyFn func(string) error
}

// NewPickerModel builds the picker for opts.Kind.
func NewPickerModel(opts PickerOptions) (PickerModel, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	m := PickerModel{
		kind:    opts.Kind,
		title:   opts.Title,
		keys:    DefaultKeyMap(opts.VimKeys),
		help:    help.New(),
		seconds: opts.Seconds,
		log:     log,
		copyFn:  clipboard.WriteAll,
	}

	var err error
	switch opts.Kind {
	case KindDate:
		err = m.buildDate(opts)
	case KindTime:
		err = m.buildTime(opts)
	case KindList:
		err = m.buildList(opts)
	default:
		err = fmt.Errorf("unknown picker kind %q", opts.Kind)
	}
	if err != nil {
		return PickerModel{}, err
	}
	m.setFocus(0)
	return m, nil
}

func (m *PickerModel) buildDate(opts PickerOptions) error {
	initial := opts.Initial
	if initial.IsZero() {
		initial = time.Now()
	}
	from, to := opts.YearFrom, opts.YearTo
	if to < from {
		return fmt.Errorf("year range %d..%d is empty", from, to)
	}
	if y := initial.Year(); y < from || y > to {
		return fmt.Errorf("initial year %d outside %d..%d", y, from, to)
	}
	if m.title == "" {
		m.title = "Pick a date"
	}
	m.yearFrom = from

	years := opts.Selector
	years.Loop = false
	specs := []struct {
		title    string
		labels   []string
		selected int
		cfg      selector.Config
	}{
		{"Day", numberLabels(1, daysIn(initial.Year(), initial.Month())), initial.Day() - 1, opts.Selector},
		{"Month", monthLabels(), int(initial.Month()) - 1, opts.Selector},
		{"Year", yearLabels(from, to), initial.Year() - from, years},
	}
	for i, s := range specs {
		if err := m.addColumn(i, s.title, s.labels, s.selected, s.cfg); err != nil {
			return err
		}
	}
	return nil
}

func (m *PickerModel) buildTime(opts PickerOptions) error {
	initial := opts.Initial
	if initial.IsZero() {
		initial = time.Now()
	}
	if m.title == "" {
		m.title = "Pick a time"
	}
	if err := m.addColumn(colHour, "Hour", numberLabels(0, 23), initial.Hour(), opts.Selector); err != nil {
		return err
	}
	if err := m.addColumn(colMinute, "Min", numberLabels(0, 59), initial.Minute(), opts.Selector); err != nil {
		return err
	}
	if opts.Seconds {
		return m.addColumn(colSecond, "Sec", numberLabels(0, 59), initial.Second(), opts.Selector)
	}
	return nil
}

func (m *PickerModel) buildList(opts PickerOptions) error {
	if m.title == "" {
		m.title = "Pick an item"
	}
	labels := make([]string, len(opts.Items))
	for i, item := range opts.Items {
		labels[i] = components.SanitizeOneLine(item)
	}
	return m.addColumn(colItem, "Item", labels, opts.Index, opts.Selector)
}

func (m *PickerModel) addColumn(id int, title string, labels []string, selected int, cfg selector.Config) error {
	col, err := NewColumnModel(id, title, labels, selected, cfg, m.keys, m.log.With("column", title))
	if err != nil {
		return fmt.Errorf("%s column: %w", title, err)
	}
	width := lipgloss.Width(title) + 2
	for _, l := range labels {
		if w := lipgloss.Width(l) + 2; w > width {
			width = w
		}
	}
	col.SetWidth(width)
	m.columns = append(m.columns, col)
	return nil
}

func (m PickerModel) Init() tea.Cmd {
	return nil
}

func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.done {
		return m, nil
	}
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case clearToastMsg:
		if msg.seq == m.toastSeq {
			m.toast = ""
		}
		return m, nil
	case columnChangedMsg:
		return m, m.onColumnChanged(msg)
	case columnMsg:
		id := msg.columnID()
		if id < 0 || id >= len(m.columns) {
			return m, nil
		}
		return m, m.columns[id].Update(msg)
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Cancel):
			return m.finish(false)
		case key.Matches(msg, m.keys.Confirm):
			return m.finish(true)
		case key.Matches(msg, m.keys.Left):
			m.setFocus(m.focus - 1)
		case key.Matches(msg, m.keys.Right):
			m.setFocus(m.focus + 1)
		case key.Matches(msg, m.keys.Next):
			m.setFocus((m.focus + 1) % len(m.columns))
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Copy):
			return m, m.copyValue()
		default:
			return m, m.columns[m.focus].Update(msg)
		}
		return m, nil
	case tea.MouseMsg:
		return m, m.columns[m.focus].Update(msg)
	}
	return m, nil
}

func (m PickerModel) View() string {
	if m.done {
		return ""
	}
	cols := make([]string, len(m.columns))
	for i, c := range m.columns {
		cols[i] = c.View()
	}
	toast := m.toast
	if toast != "" {
		style := SuccessStyle
		if m.toastErr {
			style = ErrorStyle
		}
		toast = style.Render(toast)
	}
	width := components.PanelWidth(m.width)
	body := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, cols...),
		components.StatusBar([]string{components.Segment("value", m.Value()), toast}, max(width-4, 0)),
		m.help.View(m.keys),
	)
	return components.Frame(m.title, body, width, true)
}

// Value is the composed value under the current selection.
func (m PickerModel) Value() string {
	switch m.kind {
	case KindDate:
		year := m.yearFrom + m.columns[colYear].SelectedIndex()
		month := time.Month(m.columns[colMonth].SelectedIndex() + 1)
		day := min(m.columns[colDay].SelectedIndex()+1, daysIn(year, month))
		return time.Date(year, month, day, 0, 0, 0, 0, time.Local).Format("2006-01-02")
	case KindTime:
		out := fmt.Sprintf("%02d:%02d", m.columns[colHour].SelectedIndex(), m.columns[colMinute].SelectedIndex())
		if m.seconds {
			out += fmt.Sprintf(":%02d", m.columns[colSecond].SelectedIndex())
		}
		return out
	case KindList:
		label, _ := m.columns[colItem].SelectedLabel()
		return label
	}
	return ""
}

// Result returns the value and whether the user confirmed it.
func (m PickerModel) Result() (string, bool) {
	return m.Value(), m.confirmed
}

// Done reports whether the picker has been confirmed or cancelled.
func (m PickerModel) Done() bool {
	return m.done
}

func (m PickerModel) Focus() int {
	return m.focus
}

func (m *PickerModel) setFocus(i int) {
	if len(m.columns) == 0 {
		return
	}
	m.focus = max(0, min(i, len(m.columns)-1))
	for j, c := range m.columns {
		c.Focus(j == m.focus)
	}
}

func (m PickerModel) finish(confirmed bool) (tea.Model, tea.Cmd) {
	if confirmed {
		for _, c := range m.columns {
			for _, ch := range c.Settle() {
				m.onColumnChanged(ch)
			}
		}
	}
	for _, c := range m.columns {
		c.Destroy()
	}
	m.done = true
	m.confirmed = confirmed
	m.log.Debug("picker finished", "kind", string(m.kind), "confirmed", confirmed, "value", m.Value())
	return m, tea.Quit
}

// onColumnChanged keeps the day column in step with month and year.
func (m *PickerModel) onColumnChanged(msg columnChangedMsg) tea.Cmd {
	m.log.Debug("column changed", "column", msg.column, "index", msg.index, "value", msg.value)
	if m.kind != KindDate || msg.column == colDay {
		return nil
	}
	year := m.yearFrom + m.columns[colYear].SelectedIndex()
	month := time.Month(m.columns[colMonth].SelectedIndex() + 1)
	n := daysIn(year, month)
	day := m.columns[colDay]
	if day.ItemCount() == n {
		return nil
	}
	m.log.Debug("day column resized", "year", year, "month", month.String(), "days", n)
	return day.SetItems(numberLabels(1, n), day.VisibleIndex())
}

func (m *PickerModel) copyValue() tea.Cmd {
	value := m.Value()
	if err := m.copyFn(value); err != nil {
		m.log.Warn("clipboard write failed", "error", err)
		m.toast, m.toastErr = "copy failed: "+err.Error(), true
	} else {
		m.toast, m.toastErr = "copied "+value, false
	}
	m.toastSeq++
	seq := m.toastSeq
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return clearToastMsg{seq: seq}
	})
}
