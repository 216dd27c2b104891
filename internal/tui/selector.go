package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/billmal071/hcq/internal/launcher"
)

// ResultItem wraps a DisplayItem for the list component
type ResultItem struct {
	Item launcher.DisplayItem
}

func (r ResultItem) Title() string { return r.Item.Title }

func (r ResultItem) Description() string {
	if r.Item.Subtitle == "" {
		return DimStyle.Render("No metadata available")
	}
	return DimStyle.Render(r.Item.Subtitle)
}

func (r ResultItem) FilterValue() string { return r.Item.Title }

// ResultDelegate handles rendering of result items
type ResultDelegate struct{}

func (d ResultDelegate) Height() int                             { return 3 }
func (d ResultDelegate) Spacing() int                            { return 0 }
func (d ResultDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d ResultDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	result, ok := item.(ResultItem)
	if !ok {
		return
	}

	// Truncate title if too long
	title := result.Item.Title
	if len(title) > 60 {
		title = title[:57] + "..."
	}

	detail := result.Item.URL
	if result.Item.Action != nil {
		detail = "a: add to Want to Read"
		if result.Item.URL != "" {
			detail = result.Item.URL + "  (a: add to Want to Read)"
		}
	} else if detail == "" {
		detail = "not navigable"
	}

	var str string
	if index == m.Index() {
		str = SelectedStyle.Render(fmt.Sprintf("  ➤ %d. %s", index+1, title))
	} else {
		str = NormalStyle.Render(fmt.Sprintf("    %d. %s", index+1, title))
	}
	str += "\n" + DimStyle.Render(fmt.Sprintf("      %s", result.Description()))
	str += "\n" + DimStyle.Render(fmt.Sprintf("      %s", detail))

	fmt.Fprint(w, str)
}

// Choice is what the user picked in the selector, and how.
type Choice struct {
	Item      launcher.DisplayItem
	AddAction bool // true when the secondary action was chosen over navigation
}

// SelectorModel is the Bubble Tea model for result selection
type SelectorModel struct {
	list     list.Model
	choice   *Choice
	quitting bool
	err      error
}

// NewSelector creates a new result selector TUI
func NewSelector(items []launcher.DisplayItem, title string) SelectorModel {
	listItems := make([]list.Item, len(items))
	for i, item := range items {
		listItems[i] = ResultItem{Item: item}
	}

	delegate := ResultDelegate{}
	l := list.New(listItems, delegate, 70, 4+len(items)*3)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.Styles.Title = TitleStyle

	return SelectorModel{list: l}
}

func (m SelectorModel) Init() tea.Cmd {
	return nil
}

func (m SelectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			if item, ok := m.list.SelectedItem().(ResultItem); ok {
				m.choice = &Choice{Item: item.Item}
			}
			return m, tea.Quit
		case "a", "A":
			if item, ok := m.list.SelectedItem().(ResultItem); ok && item.Item.Action != nil {
				m.choice = &Choice{Item: item.Item, AddAction: true}
				return m, tea.Quit
			}
		}
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m SelectorModel) View() string {
	if m.err != nil {
		return ErrorStyle.Render(fmt.Sprintf("\n  Error: %s\n", m.err.Error()))
	}

	if m.choice != nil {
		return SuccessStyle.Render(fmt.Sprintf("\n  ✓ Selected: %s\n", m.choice.Item.Title))
	}

	if m.quitting {
		return DimStyle.Render("\n  Cancelled.\n")
	}

	helpParts := []string{"↑/↓: navigate", "enter: open", "a: add to library", "q/esc: cancel"}
	help := HelpStyle.Render("  " + strings.Join(helpParts, " • "))

	return "\n" + m.list.View() + "\n" + help
}

// Choice returns what the user selected, or nil on cancel
func (m SelectorModel) Choice() *Choice {
	return m.choice
}

// RunSelector displays the TUI and returns the user's choice
func RunSelector(items []launcher.DisplayItem, title string) (*Choice, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("no results to select from")
	}

	model := NewSelector(items, title)
	p := tea.NewProgram(model)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	selector := finalModel.(SelectorModel)
	if selector.err != nil {
		return nil, selector.err
	}

	return selector.Choice(), nil
}
