package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/finbr/brcalc/internal/config"
	"github.com/finbr/brcalc/internal/tui"
)

func main() {
	settings, err := config.LoadSettings()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	// An explicit tax-year file wins over BRCALC_TAX_YEAR
	taxYearPath := settings.TaxYearPath
	if len(os.Args) > 1 {
		taxYearPath = os.Args[1]
		if _, err := os.Stat(taxYearPath); os.IsNotExist(err) {
			fmt.Printf("Error: tax-year file not found: %s\n", taxYearPath)
			os.Exit(1)
		}
	}

	p := tea.NewProgram(
		tui.NewModel(taxYearPath),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
