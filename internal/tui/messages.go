package tui

import (
	"github.com/finbr/brcalc/internal/calculation"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneHome Scene = iota
	SceneForm
	SceneResults
	SceneHelp
)

func (s Scene) String() string {
	switch s {
	case SceneHome:
		return "Início"
	case SceneForm:
		return "Dados"
	case SceneResults:
		return "Resultado"
	case SceneHelp:
		return "Ajuda"
	default:
		return "Desconhecido"
	}
}

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// QuitMsg signals the application should exit
type QuitMsg struct{}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// EngineLoadedMsg signals the tax tables are loaded and the engine is ready
type EngineLoadedMsg struct {
	Engine  *calculation.CalculationEngine
	TaxYear int
}

// CalculationCompleteMsg carries the rendered output of a calculator run
type CalculationCompleteMsg struct {
	Calculator string
	Output     string
	Err        error
}
