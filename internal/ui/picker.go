package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrCancelled is returned when the user leaves the picker without choosing.
var ErrCancelled = errors.New("selection cancelled")

// maxVisible is how many choices the picker shows at once.
const maxVisible = 12

// Choice is one selectable entry.
type Choice struct {
	Value string // returned on selection, e.g. a file path
	Title string // primary text, e.g. the file name
	Note  string // secondary text, e.g. the task name
}

// Picker is a filterable single-choice list.
type Picker struct {
	title    string
	choices  []Choice
	visible  []int
	cursor   int
	filter   textinput.Model
	keys     KeyMap
	selected int
	done     bool

	cursorStyle lipgloss.Style
	noteStyle   lipgloss.Style
	helpStyle   lipgloss.Style
}

// NewPicker creates a picker over choices.
func NewPicker(title string, choices []Choice) *Picker {
	ti := textinput.New()
	ti.Placeholder = "type to filter"
	ti.Prompt = "> "
	ti.CharLimit = 128
	ti.Focus()

	p := &Picker{
		title:       title,
		choices:     choices,
		filter:      ti,
		keys:        DefaultKeyMap(),
		selected:    -1,
		cursorStyle: lipgloss.NewStyle().Bold(true),
		noteStyle:   lipgloss.NewStyle().Faint(true),
		helpStyle:   lipgloss.NewStyle().Faint(true),
	}
	p.applyFilter()
	return p
}

// Init starts the cursor blinking.
func (p *Picker) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses.
func (p *Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, p.keys.Quit):
			p.done = true
			return p, tea.Quit
		case key.Matches(msg, p.keys.Select):
			if len(p.visible) == 0 {
				return p, nil
			}
			p.selected = p.visible[p.cursor]
			p.done = true
			return p, tea.Quit
		case key.Matches(msg, p.keys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
			return p, nil
		case key.Matches(msg, p.keys.Down):
			if p.cursor < len(p.visible)-1 {
				p.cursor++
			}
			return p, nil
		case key.Matches(msg, p.keys.Top):
			p.cursor = 0
			return p, nil
		case key.Matches(msg, p.keys.Bottom):
			if len(p.visible) > 0 {
				p.cursor = len(p.visible) - 1
			}
			return p, nil
		case key.Matches(msg, p.keys.Clear):
			p.filter.SetValue("")
			p.applyFilter()
			return p, nil
		}
	}

	var cmd tea.Cmd
	before := p.filter.Value()
	p.filter, cmd = p.filter.Update(msg)
	if p.filter.Value() != before {
		p.applyFilter()
	}
	return p, cmd
}

// View renders the picker.
func (p *Picker) View() string {
	if p.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(p.title + "\n")
	b.WriteString(p.filter.View() + "\n\n")

	if len(p.visible) == 0 {
		b.WriteString(p.noteStyle.Render("  no matches") + "\n")
	}

	start, end := p.window()
	for i := start; i < end; i++ {
		c := p.choices[p.visible[i]]
		line := "  " + c.Title
		if i == p.cursor {
			line = p.cursorStyle.Render("› " + c.Title)
		}
		if c.Note != "" {
			line += "  " + p.noteStyle.Render(c.Note)
		}
		b.WriteString(line + "\n")
	}
	if len(p.visible) > end-start {
		b.WriteString(p.noteStyle.Render(fmt.Sprintf("  %d of %d", p.cursor+1, len(p.visible))) + "\n")
	}

	var help []string
	for _, k := range p.keys.ShortHelp() {
		h := k.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	b.WriteString("\n" + p.helpStyle.Render(strings.Join(help, " • ")) + "\n")
	return b.String()
}

// Selected returns the chosen value, if any.
func (p *Picker) Selected() (string, bool) {
	if p.selected < 0 {
		return "", false
	}
	return p.choices[p.selected].Value, true
}

// window returns the range of visible rows to draw around the cursor.
func (p *Picker) window() (int, int) {
	n := len(p.visible)
	if n <= maxVisible {
		return 0, n
	}
	start := p.cursor - maxVisible/2
	if start < 0 {
		start = 0
	}
	if start+maxVisible > n {
		start = n - maxVisible
	}
	return start, start + maxVisible
}

// applyFilter keeps choices containing every filter word, case-insensitively.
func (p *Picker) applyFilter() {
	terms := strings.Fields(strings.ToLower(p.filter.Value()))
	p.visible = p.visible[:0]
	for i, c := range p.choices {
		haystack := strings.ToLower(c.Title + " " + c.Note)
		match := true
		for _, term := range terms {
			if !strings.Contains(haystack, term) {
				match = false
				break
			}
		}
		if match {
			p.visible = append(p.visible, i)
		}
	}
	if p.cursor >= len(p.visible) {
		p.cursor = len(p.visible) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

// Pick runs a picker on the given terminal streams and returns the chosen
// value.
func Pick(ctx context.Context, in io.Reader, out io.Writer, title string, choices []Choice) (string, error) {
	if len(choices) == 0 {
		return "", fmt.Errorf("nothing to choose from")
	}

	model := NewPicker(title, choices)
	program := tea.NewProgram(model, tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out))
	finalModel, err := program.Run()
	if err != nil {
		return "", fmt.Errorf("run picker: %w", err)
	}
	m, ok := finalModel.(*Picker)
	if !ok {
		return "", fmt.Errorf("unexpected picker model %T", finalModel)
	}
	value, ok := m.Selected()
	if !ok {
		return "", ErrCancelled
	}
	return value, nil
}
