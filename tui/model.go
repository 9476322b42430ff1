package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/stepboard/models"
)

var (
	baseStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
	alertStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("124")).
			Padding(0, 1)
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	tableStyle = lipgloss.NewStyle().
			Margin(0, 0, 1, 0)
)

const classWidth = 11

func classStyle(c models.Class) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(classWidth).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color(c.Color()))
}

func classCell(c models.Class) string {
	return classStyle(c).Render(c.Title())
}

// classColumnWidth makes room for the escape codes in a class cell, since
// the table truncates cells by their raw width.
func classColumnWidth() int {
	w := classWidth
	for _, c := range []models.Class{models.Consistent, models.Variable} {
		w = max(w, len(classCell(c)))
	}
	return w
}

type keyMap struct {
	sorts  map[models.SortField]key.Binding
	toggle key.Binding
	save   key.Binding
	draw   key.Binding
	quit   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		sorts: map[models.SortField]key.Binding{
			models.SortByName:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "sort name")),
			models.SortByAverage: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "sort average")),
			models.SortByMax:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "sort max")),
			models.SortByMin:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "sort min")),
		},
		toggle: key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "select")),
		save:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		draw:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "draw")),
		quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Model is the bubbletea model over a shared view model.
type Model struct {
	vm     *models.ViewModel
	table  table.Model
	keys   keyMap
	status string
}

func New(vm *models.ViewModel) Model {
	columns := []table.Column{
		{Title: "Sel", Width: 3},
		{Title: "Name", Width: 20},
		{Title: "Average", Width: 9},
		{Title: "Max", Width: 9},
		{Title: "Min", Width: 9},
		{Title: "Class", Width: classColumnWidth()},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(styles)

	m := Model{vm: vm, table: t, keys: defaultKeys()}
	m.updateTable()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.quit) {
			return m, tea.Quit
		}
		for field, binding := range m.keys.sorts {
			if key.Matches(msg, binding) {
				if err := m.vm.Sort(field); err != nil {
					m.status = err.Error()
				} else {
					m.status = fmt.Sprintf("sorted by %s (%s)", field, m.directionShown(field))
				}
				m.updateTable()
				return m, nil
			}
		}
		switch {
		case key.Matches(msg, m.keys.toggle):
			if name, ok := m.cursorName(); ok {
				if err := m.vm.ToggleSelected(name); err != nil {
					m.status = err.Error()
				}
				m.updateTable()
			}
			return m, nil
		case key.Matches(msg, m.keys.save):
			m.save()
			return m, nil
		case key.Matches(msg, m.keys.draw):
			m.vm.Draw()
			m.status = fmt.Sprintf("drew %d line(s)", len(m.vm.Canvas().Lines))
			return m, nil
		}

		m.table, cmd = m.table.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.table.SetWidth(msg.Width)
		return m, nil
	}

	return m, nil
}

// directionShown is the order the last Sort produced, the opposite of the
// next one.
func (m Model) directionShown(field models.SortField) string {
	if m.vm.NextDirection(field) == models.Ascending {
		return models.Descending.String()
	}
	return models.Ascending.String()
}

func (m *Model) save() {
	name, ok := m.cursorName()
	if !ok {
		return
	}
	if err := m.vm.Select(name); err != nil {
		m.status = err.Error()
		return
	}
	if err := m.vm.SaveSelected(); err != nil {
		logrus.Warnf("save %s: %v", name, err)
		m.status = ""
		return
	}
	m.status = "saved " + m.vm.SavedPath(name)
}

func (m Model) cursorName() (string, bool) {
	row := m.table.SelectedRow()
	if row == nil {
		return "", false
	}
	return row[1], true
}

func (m *Model) updateTable() {
	entries := m.vm.Entries()
	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		sel := "[ ]"
		if e.Selected {
			sel = "[x]"
		}
		rows = append(rows, table.Row{
			sel,
			e.Name,
			strconv.Itoa(e.AverageSteps),
			strconv.Itoa(e.MaxSteps),
			strconv.Itoa(e.MinSteps),
			classCell(e.Class),
		})
	}
	m.table.SetRows(rows)
}

func (m Model) View() string {
	var b strings.Builder

	if alert := m.vm.Alert(); alert.Visible {
		b.WriteString(alertStyle.Render(alert.Message))
		b.WriteString("\n")
	}

	b.WriteString(tableStyle.Render(m.table.View()))
	b.WriteString("\n")

	if canvas := m.vm.Canvas(); len(canvas.Lines) > 0 {
		b.WriteString(renderCanvas(canvas, canvasHeight))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString("n/a/x/m sort, space select, s save, d draw, q quit\n")

	return baseStyle.Render(b.String())
}
