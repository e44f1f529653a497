// Command zi is a terminal front end for the interpreter: a bubbletea
// text view plus input box driven by polling the machine's synchronous
// Update/Input API, with an optional -browse mode that scrapes and
// downloads a story from ifarchive instead of taking a local file path.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/term"

	"zmachine-go/selectstoryui"
	"zmachine-go/zmachine"
)

var (
	romFilePath string
	browse      bool

	appStyle = lipgloss.NewStyle().Padding(1, 2)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#25A065")).
			Padding(0, 1)
)

func init() {
	flag.StringVar(&romFilePath, "rom", "", "The path of a z-machine story file")
	flag.BoolVar(&browse, "browse", false, "Browse and download a story from ifarchive instead of loading a local file")
}

type stepResultMsg struct {
	state zmachine.State
}

type applicationModel struct {
	machine       *zmachine.Machine
	renderedLines int
	outputText    string
	inputBox      textinput.Model
	termWidth     int
	termHeight    int
}

func newApplicationModel(storyBytes []byte) tea.Model {
	m := &zmachine.Machine{}
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 60
	ti.Prompt = "> "

	model := applicationModel{machine: m, inputBox: ti}
	if err := m.Load(storyBytes); err != nil {
		model.outputText = fmt.Sprintf("failed to load story: %v", err)
	}
	return model
}

func (m applicationModel) Init() tea.Cmd {
	return tea.Batch(stepMachine(m.machine), tea.SetWindowTitle(romFilePath))
}

func stepMachine(z *zmachine.Machine) tea.Cmd {
	return func() tea.Msg {
		return stepResultMsg{state: z.Update()}
	}
}

func (m applicationModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth, m.termHeight = msg.Width, msg.Height
		m.inputBox.Width = msg.Width - 4

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.machine.State() == zmachine.InputRequested {
				line := m.inputBox.Value()
				m.inputBox.SetValue("")
				if err := m.machine.Input(line); err != nil {
					m.outputText += "\n" + err.Error()
					return m, nil
				}
				return m, stepMachine(m.machine)
			}
		}

	case stepResultMsg:
		lines := m.machine.Transcript()
		if m.renderedLines < len(lines) {
			m.outputText += strings.Join(lines[m.renderedLines:], "\n")
			m.renderedLines = len(lines)
		}
		if msg.state == zmachine.Crashed {
			return m, tea.Quit
		}
	}

	if m.machine.State() == zmachine.InputRequested {
		m.inputBox, cmd = m.inputBox.Update(msg)
	}
	return m, cmd
}

func (m applicationModel) View() string {
	s := strings.Builder{}

	if bar, err := m.machine.StatusBar(); err == nil {
		s.WriteString(statusBarStyle.Render(fmt.Sprintf("%-30s Score: %d  Moves: %d", bar.PlaceName, bar.Score, bar.Moves)))
		s.WriteString("\n")
	}

	wrapWidth := m.termWidth - 4
	if wrapWidth < 20 {
		wrapWidth = 76
	}
	s.WriteString(appStyle.Render(wordwrap.String(m.outputText, wrapWidth)))

	if m.machine.State() == zmachine.InputRequested {
		s.WriteString("\n")
		s.WriteString(appStyle.Render(m.inputBox.View()))
	}

	return s.String()
}

func runStory(storyBytes []byte) {
	model := newApplicationModel(storyBytes)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error running interpreter: %v\n", err)
		os.Exit(1)
	}
}

func main() {
	flag.Parse()

	if browse {
		l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
		selectModel := selectstoryui.SelectStoryModel{
			StoryList:              l,
			CreateApplicationModel: newApplicationModel,
		}
		p := tea.NewProgram(selectModel, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			fmt.Printf("error running interpreter: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if romFilePath == "" {
		fmt.Println("usage: zi -rom <story file> | zi -browse")
		os.Exit(1)
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Println("zi requires an interactive terminal")
		os.Exit(1)
	}

	storyBytes, err := os.ReadFile(romFilePath)
	if err != nil {
		fmt.Printf("failed to read story file: %v\n", err)
		os.Exit(1)
	}

	runStory(storyBytes)
}
