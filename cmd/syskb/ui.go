// # cmd/syskb/ui.go
package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			MarginLeft(2).
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true).
			Render

	docStyle = lipgloss.NewStyle().Margin(1, 2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)

	importStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBBF24")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)
)

type item struct {
	title, desc string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title + i.desc }

type model struct {
	list       list.Model
	report     Report
	lastUpdate time.Time
}

type reportMsg struct {
	report Report
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v-4)
	case reportMsg:
		m.report = msg.report
		m.lastUpdate = time.Now()
		m.list.SetItems(reportItems(msg.report))
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func reportItems(r Report) []list.Item {
	items := []list.Item{}
	for _, e := range r.ParseErrors {
		items = append(items, item{
			title: "Parse Error",
			desc:  e.Error(),
		})
	}
	for _, d := range r.Diagnostics {
		items = append(items, item{
			title: fmt.Sprintf("Semantic Issue [%s]", d.Code()),
			desc:  d.Error(),
		})
	}
	for _, u := range r.UnresolvedImports {
		items = append(items, item{
			title: "Unresolved Import",
			desc:  fmt.Sprintf("%s in %s", u.Path, u.File),
		})
	}
	for _, f := range r.CircularFiles {
		items = append(items, item{
			title: "Import Cycle",
			desc:  f,
		})
	}
	return items
}

func (m model) View() string {
	status := statusStyle.Render(fmt.Sprintf("Last update: %v | %d files | %d symbols",
		m.lastUpdate.Format("15:04:05"), m.report.FileCount, m.report.SymbolCount))

	issues := len(m.report.ParseErrors) + len(m.report.Diagnostics)
	var summary string
	if issues == 0 && len(m.report.UnresolvedImports) == 0 && len(m.report.CircularFiles) == 0 {
		summary = successStyle.Render("✅ Model Clean")
	} else {
		summary = fmt.Sprintf("⚠️  %s | %s",
			errorStyle.Render(fmt.Sprintf("%d Issues", issues)),
			importStyle.Render(fmt.Sprintf("%d Unresolved", len(m.report.UnresolvedImports))))
	}

	header := fmt.Sprintf("%s\n%s | %s\n", titleStyle("Model Workspace Monitor"), status, summary)
	return docStyle.Render(header + "\n" + m.list.View())
}

func initialModel() model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Detected Issues"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)

	return model{
		list:       l,
		lastUpdate: time.Now(),
	}
}
