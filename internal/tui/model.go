package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/finbr/brcalc/internal/calculation"
	"github.com/finbr/brcalc/internal/config"
)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	// Tax tables and the engine built from them
	taxYearPath string
	taxYear     int
	engine      *calculation.CalculationEngine

	// Home menu cursor and the open form
	cursor int
	form   formModel

	// Output of the last calculator run
	result string

	// Error state
	err error

	// Loading state
	loading        bool
	loadingMessage string
}

// NewModel creates a new application model. An empty taxYearPath uses the
// built-in tables.
func NewModel(taxYearPath string) Model {
	return Model{
		currentScene:   SceneHome,
		taxYearPath:    taxYearPath,
		loading:        true,
		loadingMessage: "Carregando tabelas...",
		width:          80,
		height:         24,
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return loadEngineCmd(m.taxYearPath)
}

// loadEngineCmd loads the tax tables and builds the calculation engine
func loadEngineCmd(path string) tea.Cmd {
	return func() tea.Msg {
		cfg, err := config.NewTaxYearLoader().LoadOrDefault(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		engine, err := calculation.NewCalculationEngineWithConfig(*cfg)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return EngineLoadedMsg{Engine: engine, TaxYear: cfg.Metadata.Year}
	}
}

// runCalculatorCmd runs c against values off the update loop
func runCalculatorCmd(engine *calculation.CalculationEngine, c calculator, values map[string]string) tea.Cmd {
	return func() tea.Msg {
		out, err := c.Run(engine, values)
		return CalculationCompleteMsg{Calculator: c.ID, Output: out, Err: err}
	}
}
