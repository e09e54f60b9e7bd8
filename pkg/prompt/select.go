package prompt

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
)

// maxVisibleChoices bounds the number of rendered rows.
const maxVisibleChoices = 15

// selectModel represents the Bubble Tea model for item selection.
type selectModel struct {
	title           string
	choices         []ItemChoice
	filteredChoices []ItemChoice
	filteredIndices []int // maps filtered index to original index
	cursor          int
	filter          string
	selected        *ItemChoice
	quitting        bool
}

// initialSelectModel creates a new select model.
func initialSelectModel(title string, choices []ItemChoice) selectModel {
	return selectModel{
		title:           title,
		choices:         choices,
		filteredChoices: choices,
		filteredIndices: makeRange(len(choices)),
	}
}

// makeRange creates a slice of integers from 0 to n-1.
func makeRange(n int) []int {
	result := make([]int, n)
	for i := range result {
		result[i] = i
	}
	return result
}

// Init initializes the model.
func (m selectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch k := key.String(); k {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "enter":
		if m.cursor < len(m.filteredChoices) {
			selected := m.filteredChoices[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}
	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down":
		if m.cursor < len(m.filteredChoices)-1 {
			m.cursor++
		}
	case "backspace":
		if len(m.filter) > 0 {
			m.filter = m.filter[:len(m.filter)-1]
			m = m.updateFilteredChoices()
		}
	case "esc":
		m.filter = ""
		m = m.updateFilteredChoices()
	default:
		if key.Type == tea.KeyRunes || key.Type == tea.KeySpace {
			m.filter += k
			m = m.updateFilteredChoices()
		}
	}

	return m, nil
}

// updateFilteredChoices returns the model with choices filtered by path.
func (m selectModel) updateFilteredChoices() selectModel {
	if m.filter == "" {
		m.filteredChoices = m.choices
		m.filteredIndices = makeRange(len(m.choices))
	} else {
		m.filteredChoices = []ItemChoice{}
		m.filteredIndices = []int{}

		filterLower := strings.ToLower(m.filter)
		for i, choice := range m.choices {
			if strings.Contains(strings.ToLower(choice.Path), filterLower) {
				m.filteredChoices = append(m.filteredChoices, choice)
				m.filteredIndices = append(m.filteredIndices, i)
			}
		}
	}

	if m.cursor >= len(m.filteredChoices) || m.cursor < 0 {
		m.cursor = 0
	}
	return m
}

// View renders the UI.
func (m selectModel) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder
	fmt.Fprintf(&s, "? %s  [Use arrows to move, type to filter]\n\n", m.title)

	if m.filter != "" {
		fmt.Fprintf(&s, "Filter: %s\n\n", m.filter)
	}

	start := 0
	if m.cursor >= maxVisibleChoices {
		start = m.cursor - maxVisibleChoices + 1
	}
	end := min(start+maxVisibleChoices, len(m.filteredChoices))

	for i := start; i < end; i++ {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}
		fmt.Fprintf(&s, "%s %s\n", cursor, formatChoice(m.filteredChoices[i]))
	}
	if hidden := len(m.filteredChoices) - (end - start); hidden > 0 {
		fmt.Fprintf(&s, "  ... %d more\n", hidden)
	}

	s.WriteString("\nPress Enter to select, Ctrl+C to quit")
	if m.filter != "" {
		s.WriteString(", Esc to clear filter")
	}

	return s.String()
}

// formatChoice formats a choice for display.
func formatChoice(choice ItemChoice) string {
	result := fmt.Sprintf("%s (%s)", choice.Path, humanize.IBytes(uint64(max(choice.Size, 0))))
	if choice.Detail != "" {
		result += " : " + choice.Detail
	}
	return result
}

// promptSelectItemBubbleTea runs the Bubble Tea program for item selection.
func promptSelectItemBubbleTea(title string, choices []ItemChoice) (ItemChoice, error) {
	if len(choices) == 0 {
		return ItemChoice{}, ErrNoChoices
	}

	finalModel, err := tea.NewProgram(initialSelectModel(title, choices)).Run()
	if err != nil {
		return ItemChoice{}, fmt.Errorf("failed to run selection program: %w", err)
	}

	model, ok := finalModel.(selectModel)
	if !ok {
		return ItemChoice{}, fmt.Errorf("unexpected model type %T", finalModel)
	}

	if model.selected == nil {
		return ItemChoice{}, ErrNoSelection
	}

	return *model.selected, nil
}
