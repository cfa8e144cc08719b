package calculation

import (
	"math/rand"
	"testing"

	"github.com/finbr/brcalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mortgage(system domain.AmortizationSystem) domain.LoanInput {
	return domain.LoanInput{
		Principal:     dec("350000"),
		Months:        360,
		AnnualRatePct: dec("11.5"),
		System:        system,
	}
}

func TestAmortize_Price(t *testing.T) {
	result := Amortize(mortgage(domain.PRICE))

	assert.Equal(t, domain.PRICE, result.System)
	assertDecimalNear(t, "3466.02", result.FirstInstallment, "0.01")
	assert.True(t, result.FirstInstallment.Equal(result.LastInstallment), "PRICE installments are constant")
	assertDecimalNear(t, "1247767.21", result.TotalPaid, "1")
	assertDecimalNear(t, "897767.21", result.TotalInterest, "1")
	assert.True(t, result.TotalInterest.Equal(result.TotalPaid.Sub(dec("350000"))))
}

func TestAmortize_SAC(t *testing.T) {
	result := Amortize(mortgage(domain.SAC))

	assertDecimalNear(t, "4326.3889", result.FirstInstallment, "0.001")
	assertDecimalNear(t, "981.5394", result.LastInstallment, "0.001")
	assert.True(t, result.FirstInstallment.GreaterThan(result.LastInstallment), "SAC installments decline")
	assertDecimalNear(t, "955427.0833", result.TotalPaid, "0.01")
	assertDecimalNear(t, "605427.0833", result.TotalInterest, "0.01")
}

func TestAmortize_SACPaysLessInterestThanPrice(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tolerance := dec("0.01")

	for i := 0; i < 100; i++ {
		in := domain.LoanInput{
			Principal:     decimal.NewFromInt(int64(1000 + rng.Intn(1_000_000))),
			Months:        2 + rng.Intn(479),
			AnnualRatePct: decimal.NewFromFloat(0.1 + rng.Float64()*30).Round(2),
		}
		in.System = domain.PRICE
		price := Amortize(in)
		in.System = domain.SAC
		sac := Amortize(in)

		assert.True(t, sac.TotalInterest.LessThanOrEqual(price.TotalInterest.Add(tolerance)),
			"principal=%s months=%d rate=%s: SAC interest %s > PRICE interest %s",
			in.Principal, in.Months, in.AnnualRatePct, sac.TotalInterest, price.TotalInterest)
	}
}

func TestAmortize_Boundaries(t *testing.T) {
	t.Run("zero principal", func(t *testing.T) {
		in := mortgage(domain.PRICE)
		in.Principal = decimal.Zero
		result := Amortize(in)
		assert.True(t, result.FirstInstallment.IsZero())
		assert.True(t, result.TotalPaid.IsZero())
		assert.True(t, result.TotalInterest.IsZero())
	})

	t.Run("negative principal", func(t *testing.T) {
		in := mortgage(domain.SAC)
		in.Principal = dec("-10")
		result := Amortize(in)
		assert.True(t, result.TotalPaid.IsZero())
	})

	t.Run("zero rate is straight line", func(t *testing.T) {
		for _, system := range domain.AmortizationSystems {
			in := mortgage(system)
			in.AnnualRatePct = decimal.Zero
			result := Amortize(in)
			assertDecimalNear(t, "972.2222", result.FirstInstallment, "0.0001")
			assert.True(t, result.FirstInstallment.Equal(result.LastInstallment))
			assertDecimalEqual(t, "350000", result.TotalPaid)
			assert.True(t, result.TotalInterest.IsZero())
		}
	})

	t.Run("months below one are floored", func(t *testing.T) {
		in := mortgage(domain.PRICE)
		in.Months = 0
		result := Amortize(in)
		// one month at 11.5%/12
		assertDecimalNear(t, "353354.1667", result.TotalPaid, "0.01")
	})
}

func TestAmortize_Idempotent(t *testing.T) {
	in := mortgage(domain.PRICE)
	first := Amortize(in)
	second := Amortize(in)
	assert.True(t, first.TotalPaid.Equal(second.TotalPaid))
	assert.True(t, first.FirstInstallment.Equal(second.FirstInstallment))
}

func TestAmortize_UnknownSystemPanics(t *testing.T) {
	in := mortgage("german")
	assert.Panics(t, func() { Amortize(in) })
}

func TestSchedule(t *testing.T) {
	for _, system := range domain.AmortizationSystems {
		t.Run(string(system), func(t *testing.T) {
			in := domain.LoanInput{
				Principal:     dec("12000"),
				Months:        12,
				AnnualRatePct: dec("12"),
				System:        system,
			}
			schedule := Schedule(in)
			require.Len(t, schedule, 12)

			amortized := decimal.Zero
			for i, inst := range schedule {
				assert.Equal(t, i+1, inst.Number)
				assert.True(t, inst.Payment.Equal(inst.Interest.Add(inst.Amortization)))
				amortized = amortized.Add(inst.Amortization)
			}
			assert.True(t, schedule[11].Balance.IsZero(), "closing balance must be zero")
			assertDecimalEqual(t, "12000", amortized)
			assertDecimalEqual(t, "120", schedule[0].Interest)
		})
	}

	t.Run("sac amortization is constant", func(t *testing.T) {
		schedule := Schedule(domain.LoanInput{
			Principal: dec("12000"), Months: 12, AnnualRatePct: dec("12"), System: domain.SAC,
		})
		assertDecimalEqual(t, "1000", schedule[0].Amortization)
		assertDecimalEqual(t, "1120", schedule[0].Payment)
		assertDecimalEqual(t, "1010", schedule[11].Payment)
	})

	t.Run("zero principal has no rows", func(t *testing.T) {
		assert.Empty(t, Schedule(domain.LoanInput{Principal: decimal.Zero, Months: 12, System: domain.PRICE}))
	})
}

func TestPowInt(t *testing.T) {
	assertDecimalEqual(t, "1", powInt(dec("1.5"), 0))
	assertDecimalEqual(t, "2.25", powInt(dec("1.5"), 2))
	assertDecimalEqual(t, "1024", powInt(two, 10))
}
