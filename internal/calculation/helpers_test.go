package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// TestLogger records log lines for assertions.
type TestLogger struct {
	Lines []string
}

func (l *TestLogger) Debugf(format string, args ...any) { l.Lines = append(l.Lines, "DEBUG") }
func (l *TestLogger) Infof(format string, args ...any)  { l.Lines = append(l.Lines, "INFO") }
func (l *TestLogger) Warnf(format string, args ...any)  { l.Lines = append(l.Lines, "WARN") }
func (l *TestLogger) Errorf(format string, args ...any) { l.Lines = append(l.Lines, "ERROR") }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDecimalEqual(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), append([]any{"expected %s, got %s", want, got.String()}, msgAndArgs...)...)
}

func assertDecimalNear(t *testing.T, want string, got decimal.Decimal, tolerance string) {
	t.Helper()
	diff := dec(want).Sub(got).Abs()
	assert.True(t, diff.LessThanOrEqual(dec(tolerance)),
		"expected %s ± %s, got %s", want, tolerance, got.String())
}
