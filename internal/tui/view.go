package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderLoading()
	}

	if m.err != nil {
		return m.renderError()
	}

	var content string
	switch m.currentScene {
	case SceneHome:
		content = m.renderHome()
	case SceneForm:
		content = ActiveBorderStyle.Render(m.form.View())
	case SceneResults:
		content = m.renderResults()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Tela desconhecida"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar, status bar, and main container
func (m Model) renderApp(content string) string {
	titleBar := m.renderTitleBar()
	statusBar := m.renderStatusBar()

	// Title (2) + status (1) + padding (1)
	contentHeight := m.height - 4

	contentContainer := lipgloss.NewStyle().
		Height(max(contentHeight, 0)).
		Render(content)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleBar,
		contentContainer,
		statusBar,
	)
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("brcalc - Calculadora financeira e tributária")

	breadcrumb := m.currentScene.String()
	if m.currentScene == SceneForm || m.currentScene == SceneResults {
		breadcrumb = fmt.Sprintf("%s / %s", m.form.calc.Title, breadcrumb)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		SubtitleStyle.Render(breadcrumb),
	)
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	var shortcuts []string
	switch m.currentScene {
	case SceneForm:
		shortcuts = []string{
			formatShortcut("tab", "próximo"),
			formatShortcut("enter", "calcular"),
			formatShortcut("esc", "voltar"),
			formatShortcut("ctrl+c", "sair"),
		}
	case SceneResults:
		shortcuts = []string{
			formatShortcut("e", "editar"),
			formatShortcut("h", "início"),
			formatShortcut("?", "ajuda"),
			formatShortcut("q", "sair"),
		}
	default:
		shortcuts = []string{
			formatShortcut("↑/↓", "escolher"),
			formatShortcut("enter", "abrir"),
			formatShortcut("?", "ajuda"),
			formatShortcut("q", "sair"),
		}
	}

	statusText := strings.Join(shortcuts, " • ")

	if m.taxYear != 0 {
		year := SubtitleStyle.Render(fmt.Sprintf("Tabelas %d", m.taxYear))
		width := m.width - lipgloss.Width(statusText) - lipgloss.Width(year) - 4
		statusText = statusText + strings.Repeat(" ", max(0, width)) + year
	}

	return StatusBarStyle.Width(m.width).Render(statusText)
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

func (m Model) renderLoading() string {
	message := m.loadingMessage
	if message == "" {
		message = "Carregando..."
	}
	return m.renderApp(BorderStyle.Render("⠋ " + message))
}

func (m Model) renderError() string {
	content := ErrorStyle.Render(
		fmt.Sprintf("Erro: %s\n\nPressione qualquer tecla para continuar...", m.err),
	)
	return m.renderApp(content)
}

// renderHome renders the calculator menu
func (m Model) renderHome() string {
	var b strings.Builder
	b.WriteString(InfoStyle.Render("Escolha uma calculadora"))
	b.WriteString("\n\n")
	for i, c := range calculators {
		line := fmt.Sprintf("%d. %-24s %s", i+1, c.Title, HelpDescStyle.Render(c.Description))
		if i == m.cursor {
			b.WriteString(SelectedItemStyle.Render("› " + line))
		} else {
			b.WriteString(UnselectedItemStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return BorderStyle.Render(b.String())
}

func (m Model) renderResults() string {
	return BorderStyle.Render(strings.TrimRight(m.result, "\n"))
}

func (m Model) renderHelp() string {
	helpText := `brcalc - Calculadora financeira e tributária

ATALHOS:
  ↑/↓ ou k/j   Escolher calculadora
  1-9          Abrir calculadora pelo número
  enter        Abrir / calcular
  tab          Próximo campo
  shift+tab    Campo anterior
  e            Editar os dados do último cálculo
  h            Início
  ?            Esta ajuda
  esc          Voltar
  q/ctrl+c     Sair (ctrl+c dentro de formulários)

VALORES:
  Valores monetários aceitam "6500", "6500.50" e "R$ 6.500,50".
  Percentuais aceitam "12" e "12%".`

	return BorderStyle.Render(helpText)
}
