// Package tui is the terminal resource browser behind cadence-admin.
// Each screen is a Browser: a searchable, sortable, paged table over
// one API resource, driven by a listview.Controller.
package tui

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cadencehq/cadence-api/pkg/listview"
)

// Column describes one table column: its header, width, the sort key
// it maps to, and how to render a record's cell.
type Column[T any] struct {
	Title string
	Width int
	Key   string
	Cell  func(item T) string
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	footerStyle = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// Browser is the bubbletea model for one resource screen.
type Browser[T any] struct {
	ctx        context.Context
	title      string
	resource   string
	controller *listview.Controller[T]
	columns    []Column[T]
	serverMode bool

	search  textinput.Model
	table   table.Model
	spinner spinner.Model

	sortIndex int
	status    string
	quitting  bool
	err       error
}

// NewBrowser builds a resource screen. serverMode sends the search
// query to the API (debounced); otherwise filtering is local.
func NewBrowser[T any](ctx context.Context, title, resource string, controller *listview.Controller[T], columns []Column[T], serverMode bool) *Browser[T] {
	search := textinput.New()
	search.Placeholder = "search (press / to focus)"
	search.CharLimit = 100

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))

	cols := make([]table.Column, len(columns))
	for i, c := range columns {
		cols[i] = table.Column{Title: c.Title, Width: c.Width}
	}
	t := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	return &Browser[T]{
		ctx:        ctx,
		title:      title,
		resource:   resource,
		controller: controller,
		columns:    columns,
		serverMode: serverMode,
		search:     search,
		table:      t,
		spinner:    s,
		sortIndex:  -1,
	}
}

type refreshMsg struct{}
type pollMsg struct{}
type errMsg struct{ err error }

func (m *Browser[T]) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load)
}

func (m *Browser[T]) load() tea.Msg {
	if err := m.controller.Init(m.ctx); err != nil {
		return errMsg{err}
	}
	return refreshMsg{}
}

func (m *Browser[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case refreshMsg:
		m.err = m.controller.Err()
		m.refreshTable()
		return m, nil

	case pollMsg:
		return m, m.waitReady()

	case errMsg:
		m.err = msg.err
		return m, nil

	case spinner.TickMsg:
		if m.controller.State() == listview.StateLoading {
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Browser[T]) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	focused := m.search.Focused()

	// Keys that work regardless of focus.
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		if focused {
			m.search.Blur()
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	case "enter":
		if focused {
			m.search.Blur()
			return m, nil
		}
	}

	// Pagination keys honor the focus guard: they never fire while
	// the search input is focused.
	switch msg.String() {
	case "left":
		return m, m.navigate(listview.KeyLeft, focused)
	case "right":
		return m, m.navigate(listview.KeyRight, focused)
	case "home":
		return m, m.navigate(listview.KeyHome, focused)
	case "end":
		return m, m.navigate(listview.KeyEnd, focused)
	}

	if focused {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.applySearch()
		if m.serverMode {
			return m, tea.Batch(cmd, m.waitReady())
		}
		m.refreshTable()
		return m, cmd
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "/":
		m.search.Focus()
		return m, textinput.Blink
	case "s":
		m.cycleSort()
		m.refreshTable()
		return m, nil
	case "r":
		return m, m.reload
	case "e":
		m.exportFile("csv")
		return m, nil
	case "x":
		m.exportFile("xlsx")
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Browser[T]) navigate(key listview.Key, focused bool) tea.Cmd {
	return func() tea.Msg {
		m.controller.HandleKey(m.ctx, key, focused)
		return refreshMsg{}
	}
}

func (m *Browser[T]) reload() tea.Msg {
	if err := m.controller.Reload(m.ctx); err != nil {
		return errMsg{err}
	}
	return refreshMsg{}
}

func (m *Browser[T]) applySearch() {
	query := m.search.Value()
	if m.serverMode {
		m.controller.SetSearch(query)
		return
	}
	m.controller.SetFilter(query)
}

// waitReady polls until the controller leaves the loading state, then
// refreshes the table. Used for reloads the controller runs on its
// own schedule, like the debounced server search.
func (m *Browser[T]) waitReady() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(time.Time) tea.Msg {
		if m.controller.State() == listview.StateLoading {
			return pollMsg{}
		}
		return refreshMsg{}
	})
}

func (m *Browser[T]) cycleSort() {
	if len(m.columns) == 0 {
		return
	}
	m.sortIndex = (m.sortIndex + 1) % len(m.columns)
	m.controller.SortBy(m.columns[m.sortIndex].Key)
}

func (m *Browser[T]) refreshTable() {
	items := m.controller.Rows()
	rows := make([]table.Row, len(items))
	for i, item := range items {
		cells := make(table.Row, len(m.columns))
		for j, col := range m.columns {
			cells[j] = col.Cell(item)
		}
		rows[i] = cells
	}
	m.table.SetRows(rows)
}

func (m *Browser[T]) exportFile(format string) {
	headers := make([]string, len(m.columns))
	for i, col := range m.columns {
		headers[i] = col.Title
	}
	row := func(item T) []string {
		cells := make([]string, len(m.columns))
		for i, col := range m.columns {
			cells[i] = col.Cell(item)
		}
		return cells
	}

	name := fmt.Sprintf("%s_%s.%s", m.resource, time.Now().Format("20060102_150405"), format)
	f, err := os.Create(name)
	if err != nil {
		m.status = errorStyle.Render("export failed: " + err.Error())
		return
	}
	defer f.Close()

	items := m.controller.Visible()
	if format == "xlsx" {
		err = listview.ExportXLSX(f, m.title, headers, items, row)
	} else {
		err = listview.ExportCSV(f, headers, items, row)
	}
	if err != nil {
		m.status = errorStyle.Render("export failed: " + err.Error())
		return
	}
	m.status = statusStyle.Render(fmt.Sprintf("exported %d rows to %s", len(items), name))
}

func (m *Browser[T]) View() string {
	if m.quitting {
		return ""
	}

	header := titleStyle.Render(m.title)

	if m.controller.State() == listview.StateLoading {
		return fmt.Sprintf("\n%s\n\n  %s Loading...\n", header, m.spinner.View())
	}

	var body string
	if m.err != nil {
		body = errorStyle.Render("Error: " + m.err.Error())
	} else {
		body = m.table.View()
	}

	page, totalPages, start, end, total := m.controller.PageInfo()
	footer := footerStyle.Render(fmt.Sprintf("page %d/%d (%d-%d of %d)", page, totalPages, start, end, total))

	sortLabel := "none"
	if s := m.controller.Sort(); s.Column != "" {
		sortLabel = fmt.Sprintf("%s %s", s.Column, s.Direction)
	}

	help := footerStyle.Render("←/→ page  home/end first/last  / search  s sort  e csv  x xlsx  r reload  q quit")

	out := fmt.Sprintf("\n%s\n\n%s\n\n%s\n\n%s  sort: %s\n%s\n", header, m.search.View(), body, footer, sortLabel, help)
	if m.status != "" {
		out += m.status + "\n"
	}
	return out
}
