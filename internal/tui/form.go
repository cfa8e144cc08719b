package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// formModel holds one text input per calculator field
type formModel struct {
	calc   calculator
	inputs []textinput.Model
	focus  int
}

func newFormModel(c calculator) formModel {
	inputs := make([]textinput.Model, len(c.Fields))
	for i, f := range c.Fields {
		ti := textinput.New()
		ti.Prompt = "› "
		ti.Placeholder = f.Placeholder
		ti.CharLimit = 64
		ti.Cursor.SetMode(cursor.CursorStatic)
		ti.SetValue(f.Default)
		inputs[i] = ti
	}
	fm := formModel{calc: c, inputs: inputs}
	fm.setFocus(0)
	return fm
}

func (f *formModel) setFocus(i int) {
	if len(f.inputs) == 0 {
		return
	}
	f.focus = (i + len(f.inputs)) % len(f.inputs)
	for j := range f.inputs {
		if j == f.focus {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

func (f *formModel) next() { f.setFocus(f.focus + 1) }
func (f *formModel) prev() { f.setFocus(f.focus - 1) }

func (f formModel) onLastField() bool {
	return f.focus == len(f.inputs)-1
}

// values returns the trimmed input values keyed by field key
func (f formModel) values() map[string]string {
	out := make(map[string]string, len(f.inputs))
	for i, fld := range f.calc.Fields {
		out[fld.Key] = strings.TrimSpace(f.inputs[i].Value())
	}
	return out
}

// Update forwards msg to the focused input
func (f formModel) Update(msg tea.Msg) (formModel, tea.Cmd) {
	if len(f.inputs) == 0 {
		return f, nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f formModel) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(f.calc.Title))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render(f.calc.Description))
	b.WriteString("\n\n")
	for i, fld := range f.calc.Fields {
		label := ParameterLabelStyle.Render(fld.Label)
		if i == f.focus {
			label = SelectedItemStyle.Width(22).Render(fld.Label)
		}
		b.WriteString(label)
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(HelpDescStyle.Render("Valores aceitam R$ 1.234,56 e 12%. Enter no último campo calcula."))
	return b.String()
}
