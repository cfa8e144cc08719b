package breakeven

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbr/brcalc/internal/domain"
)

func TestDefaultSolverOptions(t *testing.T) {
	options := DefaultSolverOptions()

	assert.True(t, options.Tolerance.Equal(d("0.01")))
	assert.Equal(t, 100, options.MaxIterations)
}

func TestRequest_Validate_Valid(t *testing.T) {
	req := commerceRequest()
	assert.NoError(t, req.Validate())

	req.Activity = ""
	assert.NoError(t, req.Validate())
}

func TestBreakEvenError(t *testing.T) {
	cause := errors.New("boom")

	withCause := &BreakEvenError{Operation: "solve", Message: "failed", Cause: cause}
	assert.Equal(t, "solve: failed: boom", withCause.Error())
	assert.ErrorIs(t, withCause, cause)

	bare := &BreakEvenError{Operation: "solve", Message: "failed"}
	assert.Equal(t, "solve: failed", bare.Error())
	assert.Nil(t, bare.Unwrap())
}

func TestNoCrossoverMessage(t *testing.T) {
	err := noCrossover(commerceRequest())
	assert.Contains(t, err.Error(), "no break-even between simples-comercio and lucro-presumido for revenue in [1000.00, 40000.00]")
	assert.ErrorIs(t, err, ErrNoCrossover)
}

func TestTableFormatter_Format(t *testing.T) {
	result := &Result{
		Request:         commerceRequest(),
		Success:         true,
		Iterations:      22,
		ConvergenceInfo: "Bisection converged within R$ 0.01",
		Revenue:         d("28612.72"),
		TaxA:            d("1593.73"),
		TaxB:            d("1593.73"),
		CheaperBelow:    domain.RegimeSimplesComercio,
		CheaperAbove:    domain.RegimeLucroPresumido,
		EligibleA:       true,
		EligibleB:       true,
	}

	out := (&TableFormatter{}).Format(result)
	assert.Contains(t, out, "PONTO DE EQUILÍBRIO ENTRE REGIMES")
	assert.Contains(t, out, "28.612,72")
	assert.Contains(t, out, "✓ Convergiu")
	assert.Contains(t, out, "Abaixo:                Simples Nacional (Comércio) é mais barato")
	assert.NotContains(t, out, "acima do limite")

	result.Success = false
	result.EligibleB = false
	out = (&TableFormatter{}).Format(result)
	assert.Contains(t, out, "⚠ Não convergiu")
	assert.Contains(t, out, "(acima do limite)")
}

func TestTableFormatter_FormatMatrix(t *testing.T) {
	result := &MatrixResult{
		Results: []Result{{
			Success:      true,
			Revenue:      d("28612.72"),
			CheaperBelow: domain.RegimeSimplesComercio,
			CheaperAbove: domain.RegimeLucroPresumido,
		}},
		Recommendations: []string{"x"},
	}

	out := (&TableFormatter{}).FormatMatrix(result)
	assert.Contains(t, out, "R$28.6K")
	assert.Contains(t, out, "Simples Nacional (Com...")
	assert.Contains(t, out, "• x")
}

func TestTableFormatter_formatShort(t *testing.T) {
	tf := &TableFormatter{}
	assert.Equal(t, "R$950", tf.formatShort(d("950")))
	assert.Equal(t, "R$28.6K", tf.formatShort(d("28612.72")))
	assert.Equal(t, "R$1.50M", tf.formatShort(d("1500000")))
}

func TestJSONFormatter(t *testing.T) {
	result := &Result{Request: commerceRequest(), Success: true, Revenue: d("28612.72"), CheaperBelow: domain.RegimeSimplesComercio}

	out, err := (&JSONFormatter{Pretty: true}).Format(result)
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "\n"))

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "28612.72", got["revenue"])
	assert.Equal(t, "simples-comercio", got["cheaper_below"])

	compact, err := (&JSONFormatter{}).FormatMatrix(&MatrixResult{NoCrossover: []Pair{{A: domain.RegimeMEI, B: domain.RegimeLucroPresumido}}})
	require.NoError(t, err)
	assert.Contains(t, compact, `"no_crossover":[{"a":"mei","b":"lucro-presumido"}]`)
}
