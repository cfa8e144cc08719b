package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case NavigateMsg:
		m.previousScene = m.currentScene
		m.currentScene = msg.Scene
		return m, nil

	case QuitMsg:
		return m, tea.Quit

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case EngineLoadedMsg:
		m.loading = false
		m.engine = msg.Engine
		m.taxYear = msg.TaxYear
		return m, nil

	case CalculationCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.result = msg.Output
		return m, navigate(SceneResults)
	}

	// Cursor blinks and other input messages belong to the form
	if m.currentScene == SceneForm {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

func navigate(scene Scene) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Scene: scene}
	}
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.loading {
		if msg.String() == "q" {
			return m, tea.Quit
		}
		return m, nil
	}
	// Any key dismisses an error
	if m.err != nil {
		m.err = nil
		return m, nil
	}

	// Letters are input while a form is open
	if m.currentScene == SceneForm {
		return m.handleFormKey(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "?":
		if m.currentScene != SceneHelp {
			return m, navigate(SceneHelp)
		}

	case "esc":
		switch m.currentScene {
		case SceneResults:
			return m, navigate(SceneForm)
		case SceneHelp:
			if m.previousScene != SceneHelp {
				return m, navigate(m.previousScene)
			}
			return m, navigate(SceneHome)
		}

	case "h":
		if m.currentScene != SceneHome {
			return m, navigate(SceneHome)
		}
	}

	switch m.currentScene {
	case SceneHome:
		return m.handleHomeKey(msg)
	case SceneResults:
		if msg.String() == "enter" || msg.String() == "e" {
			return m, navigate(SceneForm)
		}
	}
	return m, nil
}

func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(calculators)-1 {
			m.cursor++
		}
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		i := int(msg.Runes[0] - '1')
		if i < len(calculators) {
			m.cursor = i
			return m.openForm()
		}
	case "enter":
		return m.openForm()
	}
	return m, nil
}

func (m Model) openForm() (tea.Model, tea.Cmd) {
	m.form = newFormModel(calculators[m.cursor])
	m.result = ""
	return m, navigate(SceneForm)
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, navigate(SceneHome)
	case "tab", "down":
		m.form.next()
		return m, nil
	case "shift+tab", "up":
		m.form.prev()
		return m, nil
	case "ctrl+s":
		return m.submit()
	case "enter":
		if m.form.onLastField() {
			return m.submit()
		}
		m.form.next()
		return m, nil
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.engine == nil {
		return m, nil
	}
	m.loading = true
	m.loadingMessage = "Calculando " + m.form.calc.Title + "..."
	return m, runCalculatorCmd(m.engine, m.form.calc, m.form.values())
}
