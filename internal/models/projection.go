package models

// ProjectionPeriod is one month of the compounding schedule.
type ProjectionPeriod struct {
	Month                 int     `json:"month"`
	OpeningBalance        float64 `json:"opening_balance"`
	Contribution          float64 `json:"contribution"`
	Yield                 float64 `json:"yield"`
	ClosingBalance        float64 `json:"closing_balance"`
	CumulativeContributed float64 `json:"cumulative_contributed"`
}

// ProjectionSchedule is the full compounding schedule for a contribution
// plan. A pure function of its parameters: restartable, no hidden state.
type ProjectionSchedule struct {
	Initial             float64            `json:"initial"`
	MonthlyContribution float64            `json:"monthly_contribution"`
	AnnualRatePct       float64            `json:"annual_rate_pct"`
	MonthlyRate         float64            `json:"monthly_rate"`
	TaxRatePct          float64            `json:"tax_rate_pct"`
	HorizonMonths       int                `json:"horizon_months"`
	Periods             []ProjectionPeriod `json:"periods"`
}

// FinalBalance returns the closing balance of the last period, or the
// initial amount for an empty schedule.
func (s *ProjectionSchedule) FinalBalance() float64 {
	if len(s.Periods) == 0 {
		return s.Initial
	}
	return s.Periods[len(s.Periods)-1].ClosingBalance
}

// ProjectionSummary carries the metrics derived from a schedule.
// CrossoverMonth is the first month where yield alone meets the monthly
// contribution; nil when never reached within the horizon. Tax applies to
// the yield portion only, never to principal.
type ProjectionSummary struct {
	FinalGross               float64 `json:"final_gross"`
	TotalContributed         float64 `json:"total_contributed"`
	TotalYield               float64 `json:"total_yield"`
	NetAfterTax              float64 `json:"net_after_tax"`
	CrossoverMonth           *int    `json:"crossover_month,omitempty"`
	FinalWithoutReinvestment float64 `json:"final_without_reinvestment"`
	ReinvestmentGain         float64 `json:"reinvestment_gain"`
}
