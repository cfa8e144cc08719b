package breakeven

import (
	"context"
	"errors"
	"fmt"

	"github.com/finbr/brcalc/internal/domain"
	"github.com/finbr/brcalc/internal/output"
)

// SolveMatrix runs the break-even search for every unordered pair of regimes
// using template for activity, payroll, bounds and solver settings. Pairs
// whose tax curves never cross are listed in NoCrossover.
func (s *Solver) SolveMatrix(
	ctx context.Context,
	template Request,
	regimes []domain.Regime,
) (*MatrixResult, error) {
	if len(regimes) == 0 {
		regimes = domain.Regimes
	}
	if len(regimes) < 2 {
		return nil, &BreakEvenError{
			Operation: "solve_matrix",
			Message:   "at least two regimes are required",
			Cause:     domain.NewValidationError("regimes", "need at least two regimes, got %d", len(regimes)),
		}
	}

	mdResult := &MatrixResult{
		Results:     []Result{},
		NoCrossover: []Pair{},
	}

	for i := 0; i < len(regimes); i++ {
		for j := i + 1; j < len(regimes); j++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			req := template
			req.A, req.B = regimes[i], regimes[j]

			result, err := s.Solve(ctx, req)
			if errors.Is(err, ErrNoCrossover) {
				mdResult.NoCrossover = append(mdResult.NoCrossover, Pair{A: req.A, B: req.B})
				continue
			}
			if err != nil {
				return nil, err
			}
			mdResult.Results = append(mdResult.Results, *result)
		}
	}

	mdResult.Recommendations = s.generateMatrixRecommendations(mdResult)
	return mdResult, nil
}

// generateMatrixRecommendations creates one line per crossover found
func (s *Solver) generateMatrixRecommendations(result *MatrixResult) []string {
	var recommendations []string

	for _, res := range result.Results {
		rec := fmt.Sprintf("Até %s/mês %s é mais barato; acima, %s",
			output.FormatCurrency(res.Revenue),
			res.CheaperBelow.Label(),
			res.CheaperAbove.Label())
		if !res.EligibleA || !res.EligibleB {
			rec += " (atenção: limite de receita ultrapassado no ponto de equilíbrio)"
		}
		recommendations = append(recommendations, rec)
	}

	for _, p := range result.NoCrossover {
		recommendations = append(recommendations,
			fmt.Sprintf("%s e %s não se cruzam na faixa pesquisada", p.A.Label(), p.B.Label()))
	}

	return recommendations
}
