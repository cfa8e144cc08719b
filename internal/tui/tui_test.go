package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drive applies msg and then feeds back the messages produced by the
// returned commands until one is not a TUI message.
func drive(t *testing.T, m Model, msg tea.Msg) (Model, tea.Msg) {
	t.Helper()
	next, cmd := m.Update(msg)
	var last tea.Msg
	for cmd != nil {
		last = cmd()
		switch last.(type) {
		case NavigateMsg, EngineLoadedMsg, ErrorMsg, CalculationCompleteMsg:
			next, cmd = next.Update(last)
		default:
			cmd = nil
		}
	}
	out, ok := next.(Model)
	require.True(t, ok)
	return out, last
}

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func loadedModel(t *testing.T) Model {
	t.Helper()
	m := NewModel("")
	msg := m.Init()()
	loaded, ok := msg.(EngineLoadedMsg)
	require.True(t, ok, "unexpected init message %T", msg)
	m, _ = drive(t, m, loaded)
	require.False(t, m.loading)
	require.NotNil(t, m.engine)
	return m
}

func TestModel_Init(t *testing.T) {
	m := NewModel("")
	assert.True(t, m.loading)
	assert.Contains(t, m.View(), "Carregando tabelas")

	m = loadedModel(t)
	assert.Equal(t, 2024, m.taxYear)
	view := m.View()
	assert.Contains(t, view, "Escolha uma calculadora")
	assert.Contains(t, view, "Tabelas 2024")
}

func TestModel_InitMissingFile(t *testing.T) {
	m := NewModel("/does/not/exist.yaml")
	m, _ = drive(t, m, m.Init()())
	require.Error(t, m.err)
	assert.Contains(t, m.View(), "Erro")

	m, _ = drive(t, m, runes("x"))
	assert.NoError(t, m.err)
}

func TestModel_HomeNavigation(t *testing.T) {
	m := loadedModel(t)

	m, _ = drive(t, m, key(tea.KeyUp))
	assert.Equal(t, 0, m.cursor)

	m, _ = drive(t, m, key(tea.KeyDown))
	m, _ = drive(t, m, runes("j"))
	assert.Equal(t, 2, m.cursor)

	m, _ = drive(t, m, runes("k"))
	assert.Equal(t, 1, m.cursor)

	for range calculators {
		m, _ = drive(t, m, key(tea.KeyDown))
	}
	assert.Equal(t, len(calculators)-1, m.cursor)
}

func TestModel_PayrollFlow(t *testing.T) {
	m := loadedModel(t)

	m, _ = drive(t, m, key(tea.KeyEnter))
	require.Equal(t, SceneForm, m.currentScene)
	assert.Equal(t, "payroll", m.form.calc.ID)
	assert.Contains(t, m.View(), "Salário bruto")

	m, _ = drive(t, m, runes("6500"))
	m, _ = drive(t, m, key(tea.KeyEnter))
	assert.Equal(t, 1, m.form.focus)

	m, _ = drive(t, m, key(tea.KeyEnter))
	require.NoError(t, m.err)
	require.Equal(t, SceneResults, m.currentScene)
	assert.Contains(t, m.result, "728,82")
	assert.Contains(t, m.View(), "Folha de pagamento (CLT)")

	// Editing keeps the typed values
	m, _ = drive(t, m, runes("e"))
	require.Equal(t, SceneForm, m.currentScene)
	assert.Equal(t, "6500", m.form.values()["gross"])
}

func TestModel_FormTypingIsNotAShortcut(t *testing.T) {
	m := loadedModel(t)
	m, _ = drive(t, m, runes("3"))
	require.Equal(t, SceneForm, m.currentScene)
	require.Equal(t, "regime", m.form.calc.ID)

	m, last := drive(t, m, runes("q"))
	assert.Nil(t, last)
	assert.Equal(t, SceneForm, m.currentScene)
	assert.Equal(t, "q", m.form.values()["regime"])

	m, _ = drive(t, m, key(tea.KeyEsc))
	assert.Equal(t, SceneHome, m.currentScene)
}

func TestModel_FormFocusWraps(t *testing.T) {
	m := loadedModel(t)
	m, _ = drive(t, m, runes("2"))
	require.Equal(t, "amortize", m.form.calc.ID)

	m, _ = drive(t, m, key(tea.KeyShiftTab))
	assert.Equal(t, 3, m.form.focus)
	m, _ = drive(t, m, key(tea.KeyTab))
	assert.Equal(t, 0, m.form.focus)
}

func TestModel_CalculatorError(t *testing.T) {
	m := loadedModel(t)
	m, _ = drive(t, m, runes("2"))

	m, _ = drive(t, m, runes("12000"))
	m, _ = drive(t, m, key(tea.KeyTab))
	m, _ = drive(t, m, key(tea.KeyTab))
	m, _ = drive(t, m, key(tea.KeyTab))
	m.form.inputs[3].SetValue("german")

	m, _ = drive(t, m, key(tea.KeyEnter))
	require.Error(t, m.err)
	assert.Contains(t, m.View(), "german")
	assert.Equal(t, SceneForm, m.currentScene)

	m, _ = drive(t, m, runes("x"))
	assert.NoError(t, m.err)
	assert.Equal(t, "german", m.form.values()["system"])
}

func TestModel_Calculators(t *testing.T) {
	tests := []struct {
		id       string
		values   map[string]string
		contains string
	}{
		{"amortize", map[string]string{"principal": "12000", "months": "12", "rate": "12", "system": "sac"}, "1.120,00"},
		{"regime", map[string]string{"regime": "simples-comercio", "revenue": "30000", "activity": "comercio"}, "1.695,00"},
		{"compare-regimes", map[string]string{"revenue": "30000", "activity": "servico"}, "COMPARAÇÃO DE REGIMES"},
		{"break-even", map[string]string{"a": "simples-comercio", "b": "lucro-presumido", "activity": "comercio", "min": "1000", "max": "40000"}, "PONTO DE EQUILÍBRIO"},
		{"fgts", map[string]string{"balance": "12000"}, "2.950,00"},
		{"emergency", map[string]string{"monthly-cost": "R$ 3.000,00", "months": "6"}, "18.000,00"},
		{"thirteenth", map[string]string{"gross": "5000"}, "2.500,00"},
		{"score", map[string]string{"score": "812"}, "Excelente"},
	}

	m := loadedModel(t)
	byID := map[string]calculator{}
	for _, c := range calculators {
		byID[c.ID] = c
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			c, ok := byID[tt.id]
			require.True(t, ok)
			out, err := c.Run(m.engine, tt.values)
			require.NoError(t, err)
			assert.Contains(t, out, tt.contains)
		})
	}
}

func TestModel_HelpAndQuit(t *testing.T) {
	m := loadedModel(t)

	m, _ = drive(t, m, runes("?"))
	require.Equal(t, SceneHelp, m.currentScene)
	assert.Contains(t, m.View(), "ATALHOS")

	m, _ = drive(t, m, key(tea.KeyEsc))
	assert.Equal(t, SceneHome, m.currentScene)

	_, last := drive(t, m, runes("q"))
	assert.Equal(t, tea.QuitMsg{}, last)
}

func TestModel_WindowSize(t *testing.T) {
	m := loadedModel(t)
	m, _ = drive(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
}
