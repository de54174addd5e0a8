// Package tui is an interactive browser over the generated content
// recommendations: topic list on the left, key facts and rationale on the
// right.
package tui

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pauta/internal/core"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	priorityAlta  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	priorityMedia = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type model struct {
	recommendations []core.Recommendation
	selectedIdx     int
	width           int
	height          int
	quitting        bool
}

// InitialModel returns the initial TUI state over the recommendation list.
func InitialModel(recommendations []core.Recommendation) model {
	return model{recommendations: recommendations}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return nil
}

// Update handles key and resize messages.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.selectedIdx > 0 {
				m.selectedIdx--
			}
		case "down", "j":
			if m.selectedIdx < len(m.recommendations)-1 {
				m.selectedIdx++
			}
		}
	}
	return m, nil
}

// View renders the two-pane layout.
func (m model) View() string {
	if m.quitting {
		return "Até logo!\n"
	}

	docStyle := lipgloss.NewStyle().Margin(1, 2)
	listStyle := lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true).Padding(1).Width(m.width/2 - 5)
	detailStyle := lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true).Padding(1).Width(m.width/2 - 5)

	var list strings.Builder
	list.WriteString(titleStyle.Render("Recomendações de Pauta") + "\n\n")
	if len(m.recommendations) == 0 {
		list.WriteString("Nenhuma recomendação carregada.")
	} else {
		for i, rec := range m.recommendations {
			cursor := " "
			if i == m.selectedIdx {
				cursor = ">"
			}
			list.WriteString(fmt.Sprintf("%s %s %s\n", cursor, renderPriority(rec.Priority), rec.Topic))
		}
	}

	var detail strings.Builder
	if len(m.recommendations) == 0 || m.selectedIdx >= len(m.recommendations) {
		detail.WriteString("Nada para exibir.")
	} else {
		rec := m.recommendations[m.selectedIdx]
		detail.WriteString(titleStyle.Render(rec.Topic) + "\n\n")
		detail.WriteString(rec.Recommendation + "\n\n")
		if len(rec.KeyFacts) == 0 {
			detail.WriteString("Sem fatos-chave coletados.")
		} else {
			detail.WriteString("Fatos-chave:\n")
			for _, fact := range rec.KeyFacts {
				detail.WriteString("• " + fact + "\n")
			}
		}
	}

	mainContent := lipgloss.JoinHorizontal(lipgloss.Top,
		listStyle.Render(list.String()),
		detailStyle.Render(detail.String()))
	help := helpStyle.Render("\n\n[↑/k] Subir | [↓/j] Descer | [q] Sair")

	return docStyle.Render(mainContent + help)
}

func renderPriority(priority string) string {
	if priority == core.StatusAlta {
		return priorityAlta.Render("[Alta]")
	}
	return priorityMedia.Render("[" + priority + "]")
}

// Start runs the recommendation browser until the user quits.
func Start(recommendations []core.Recommendation) {
	p := tea.NewProgram(InitialModel(recommendations), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
