// Package projection produces compound-growth schedules for recurring
// contribution plans.
package projection

import (
	"fmt"
	"math"

	"github.com/carteiralab/carteira/internal/models"
)

// Project builds the full monthly compounding schedule. The nominal
// annual rate converts to an effective monthly rate by the twelfth root,
// (1+r)^(1/12)-1, not a simple division by twelve. Pure and restartable;
// the schedule is produced eagerly (horizons are small, months not years).
func Project(initial, monthlyContribution, annualRatePct float64, horizonMonths int, taxRatePct float64) (*models.ProjectionSchedule, error) {
	if err := validateInputs(initial, monthlyContribution, annualRatePct, horizonMonths, taxRatePct); err != nil {
		return nil, err
	}

	monthlyRate := math.Pow(1+annualRatePct/100, 1.0/12) - 1

	schedule := &models.ProjectionSchedule{
		Initial:             initial,
		MonthlyContribution: monthlyContribution,
		AnnualRatePct:       annualRatePct,
		MonthlyRate:         monthlyRate,
		TaxRatePct:          taxRatePct,
		HorizonMonths:       horizonMonths,
		Periods:             make([]models.ProjectionPeriod, 0, horizonMonths),
	}

	balance := initial
	contributed := initial
	for month := 1; month <= horizonMonths; month++ {
		opening := balance
		yield := balance * monthlyRate
		balance = balance + yield + monthlyContribution
		contributed += monthlyContribution

		schedule.Periods = append(schedule.Periods, models.ProjectionPeriod{
			Month:                 month,
			OpeningBalance:        opening,
			Contribution:          monthlyContribution,
			Yield:                 yield,
			ClosingBalance:        balance,
			CumulativeContributed: contributed,
		})
	}

	return schedule, nil
}

func validateInputs(initial, monthlyContribution, annualRatePct float64, horizonMonths int, taxRatePct float64) error {
	for name, v := range map[string]float64{
		"initial":              initial,
		"monthly contribution": monthlyContribution,
		"annual rate":          annualRatePct,
		"tax rate":             taxRatePct,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be finite", models.ErrInvalidInput, name)
		}
	}
	if initial < 0 {
		return fmt.Errorf("%w: initial amount must be non-negative", models.ErrInvalidInput)
	}
	if monthlyContribution < 0 {
		return fmt.Errorf("%w: monthly contribution must be non-negative", models.ErrInvalidInput)
	}
	if annualRatePct <= -100 {
		return fmt.Errorf("%w: annual rate must be above -100%%", models.ErrInvalidInput)
	}
	if horizonMonths < 0 {
		return fmt.Errorf("%w: horizon must be non-negative", models.ErrInvalidInput)
	}
	if taxRatePct < 0 || taxRatePct > 100 {
		return fmt.Errorf("%w: tax rate must be between 0 and 100", models.ErrInvalidInput)
	}
	return nil
}

// Summarize derives the headline metrics from a schedule. The crossover
// month is the first where yield alone meets the monthly contribution;
// tax applies only to the yield portion. The no-reinvestment comparison
// shows what the plan would be worth if the yield were spent instead of
// compounded.
func Summarize(schedule *models.ProjectionSchedule) models.ProjectionSummary {
	finalGross := schedule.FinalBalance()
	totalContributed := schedule.Initial + schedule.MonthlyContribution*float64(schedule.HorizonMonths)
	totalYield := finalGross - totalContributed

	summary := models.ProjectionSummary{
		FinalGross:               finalGross,
		TotalContributed:         totalContributed,
		TotalYield:               totalYield,
		NetAfterTax:              finalGross - totalYield*schedule.TaxRatePct/100,
		FinalWithoutReinvestment: totalContributed,
	}
	summary.ReinvestmentGain = finalGross - summary.FinalWithoutReinvestment

	for _, period := range schedule.Periods {
		if period.Yield >= schedule.MonthlyContribution {
			month := period.Month
			summary.CrossoverMonth = &month
			break
		}
	}

	return summary
}
