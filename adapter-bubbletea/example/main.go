package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	editor "github.com/restpad/editview/adapter-bubbletea"
)

type model struct {
	editor editor.Model
	file   string
	saves  int
}

func (m model) Init() tea.Cmd {
	return m.editor.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.editor.SetSize(msg.Width-4, msg.Height-2)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlQ {
			return m, tea.Quit
		}

	case editor.ContentChangedMsg:
		// Autosave on every change notification.
		if m.file != "" {
			if err := os.WriteFile(m.file, []byte(m.editor.Content()), 0644); err == nil {
				m.saves++
			}
		}

	}

	editorModel, cmd := m.editor.Update(msg)
	m.editor = editorModel.(editor.Model)
	return m, cmd
}

func (m model) View() string {
	frame := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	footer := fmt.Sprintf(" %s · %d autosaves · ctrl+q to quit", m.file, m.saves)
	return frame.Render(m.editor.View()) + "\n" + footer
}

func main() {
	file := "example.json"
	if len(os.Args) > 1 {
		file = os.Args[1]
	}

	ed := editor.New(80, 20)
	ed.Focus()
	ed.SetLanguage("json", "catppuccin-mocha")

	if content, err := os.ReadFile(file); err == nil {
		ed.SetContent(string(content))
	}

	p := tea.NewProgram(model{editor: ed, file: file}, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		log.Fatalf("error running program: %v", err)
	}
}
