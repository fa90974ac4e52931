// Package ui provides the interactive terminal dashboard.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"

	"github.com/nibzard/todoboard/internal/report"
	"github.com/nibzard/todoboard/internal/store"
	"github.com/nibzard/todoboard/internal/todo"
)

// TUIOption configures the dashboard.
type TUIOption func(*tuiConfig)

type tuiConfig struct {
	logger       *log.Logger
	clock        func() time.Time
	storeOpts    []store.Option
	tickInterval time.Duration
}

// WithLogger sets the logger used for save and reload events.
func WithLogger(logger *log.Logger) TUIOption {
	return func(c *tuiConfig) {
		c.logger = logger
	}
}

// WithClock overrides the time source.
func WithClock(clock func() time.Time) TUIOption {
	return func(c *tuiConfig) {
		c.clock = clock
	}
}

// WithStoreOptions sets the options used when reloading the data file.
func WithStoreOptions(opts ...store.Option) TUIOption {
	return func(c *tuiConfig) {
		c.storeOpts = opts
	}
}

// RunTUI starts the dashboard over s, saving to path after every change.
func RunTUI(ctx context.Context, s *store.Store, path string, opts ...TUIOption) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	model := newTUIModel(s, path, opts...)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type tuiModel struct {
	store        *store.Store
	path         string
	storeOpts    []store.Option
	logger       *log.Logger
	clock        func() time.Time
	tickInterval time.Duration

	view     store.View
	items    []*todo.Item
	cursor   int
	showHelp bool
	status   string
	err      error
}

type tickMsg time.Time

func newTUIModel(s *store.Store, path string, opts ...TUIOption) *tuiModel {
	c := &tuiConfig{
		clock:        time.Now,
		tickInterval: time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	m := &tuiModel{
		store:        s,
		path:         path,
		storeOpts:    c.storeOpts,
		logger:       c.logger,
		clock:        c.clock,
		tickInterval: c.tickInterval,
		view:         store.ViewAll,
	}
	m.refresh()
	return m
}

func (m *tuiModel) Init() tea.Cmd {
	return tickCmd(m.tickInterval)
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg.String())
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.tickInterval)
	}
	return m, nil
}

func (m *tuiModel) handleKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "h", "?":
		m.showHelp = !m.showHelp
	case "j", "down":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case " ", "space", "enter":
		if it := m.selected(); it != nil {
			if it.ToggleCompleted(m.clock()) {
				m.persist(fmt.Sprintf("Completed %q", it.Title))
			} else {
				m.persist(fmt.Sprintf("Reopened %q", it.Title))
			}
		}
	case "d", "delete":
		if it := m.selected(); it != nil {
			m.store.Remove(it.ID)
			m.persist(fmt.Sprintf("Deleted %q", it.Title))
		}
	case "c":
		n := m.store.ClearCompleted()
		m.persist(fmt.Sprintf("Cleared %d completed %s", n, plural(n, "task", "tasks")))
	case "r", "f5":
		m.reload()
	case "0", "1", "2", "3", "4", "5":
		views := store.Views()
		m.view = views[int(key[0]-'0')]
		m.cursor = 0
		m.refresh()
	}
	return m, nil
}

func (m *tuiModel) selected() *todo.Item {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return nil
	}
	return m.items[m.cursor]
}

// persist saves the store and refreshes the listing. A failed save keeps the
// in-memory change and reports the error in the status line.
func (m *tuiModel) persist(status string) {
	if err := m.store.Save(m.path); err != nil {
		m.logger.Error("save failed", "path", m.path, "err", err)
		m.err = err
		m.status = ""
	} else {
		m.logger.Debug("saved", "path", m.path, "items", m.store.Len())
		m.err = nil
		m.status = status
	}
	m.refresh()
}

func (m *tuiModel) reload() {
	s, err := store.Open(m.path, m.storeOpts...)
	if err != nil {
		m.err = err
		m.status = ""
		return
	}
	m.store = s
	m.err = nil
	m.status = "Reloaded " + m.path
	m.refresh()
}

func (m *tuiModel) refresh() {
	m.items = m.store.Select(m.view, m.clock())
	if m.cursor >= len(m.items) {
		m.cursor = len(m.items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	headerStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	doneStyle     = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	overdueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b)
		return b.String()
	}

	now := m.clock()
	writeOverview(&b, m.store.Stats(now))
	writeViews(&b, m.view)
	m.writeItems(&b, now)
	writeStatusLine(&b, m.status, m.err)
	writeFooter(&b)
	return b.String()
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func writeTitle(b *strings.Builder) {
	title := "todoboard"
	b.WriteString(titleStyle.Render(title) + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func writeOverview(b *strings.Builder, st store.Stats) {
	b.WriteString(headerStyle.Render("Overview") + "\n\n")
	b.WriteString(fmt.Sprintf("  Total: %d  Pending: %d  Done: %d  Overdue: %d  Due today: %d  (%.1f%% complete)\n\n",
		st.Total, st.Pending, st.Completed, st.Overdue, st.DueToday, st.CompletionRate))
}

func writeViews(b *strings.Builder, current store.View) {
	parts := make([]string, 0, len(store.Views()))
	for i, v := range store.Views() {
		label := fmt.Sprintf("%d %s", i, v)
		if v == current {
			label = selectedStyle.Render(label)
		}
		parts = append(parts, label)
	}
	b.WriteString("  " + strings.Join(parts, "  ") + "\n\n")
}

func (m *tuiModel) writeItems(b *strings.Builder, now time.Time) {
	b.WriteString(headerStyle.Render(fmt.Sprintf("Tasks (%s, %d)", m.view, len(m.items))) + "\n\n")
	if len(m.items) == 0 {
		b.WriteString("  No tasks in this view.\n\n")
		return
	}
	for i, it := range m.items {
		b.WriteString(m.formatItem(i, it, now) + "\n")
	}
	b.WriteString("\n")
}

func (m *tuiModel) formatItem(i int, it *todo.Item, now time.Time) string {
	cursor := "  "
	if i == m.cursor {
		cursor = "> "
	}
	mark := " "
	if it.Completed {
		mark = "x"
	}
	line := fmt.Sprintf("[%s] %s (%s) %s", mark, report.ShortID(it.ID), it.Priority, it.Title)
	if it.DueDate != nil {
		line += "  due " + it.DueDate.In(now.Location()).Format("2006-01-02")
	}
	if len(it.Subtasks) > 0 {
		line += fmt.Sprintf("  %.0f%%", it.SubtaskProgress())
	}

	switch {
	case it.Completed:
		line = doneStyle.Render(line)
	case it.IsOverdue(now):
		line = overdueStyle.Render(line)
	}
	if i == m.cursor {
		line = selectedStyle.Render(line)
	}
	return cursor + line
}

func writeStatusLine(b *strings.Builder, status string, err error) {
	if err != nil {
		b.WriteString(errorStyle.Render("Error: "+err.Error()) + "\n\n")
		return
	}
	if status != "" {
		b.WriteString(status + "\n\n")
	}
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  j, down      Move down\n")
	b.WriteString("  k, up        Move up\n")
	b.WriteString("  space        Toggle completion\n")
	b.WriteString("  d            Delete task\n")
	b.WriteString("  c            Clear completed tasks\n")
	b.WriteString("  r, F5        Reload from disk\n")
	b.WriteString("  h, ?         Toggle this help screen\n")
	for i, v := range store.Views() {
		b.WriteString(fmt.Sprintf("  %d            Show %s\n", i, v))
	}
	b.WriteString("\n")
}

func writeFooter(b *strings.Builder) {
	b.WriteString("Press h for help | q to quit\n")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
