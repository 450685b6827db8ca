package calculations

// ProjectionInput holds the calculator inputs for one recomputation
type ProjectionInput struct {
	InitialDeposit      float64 `json:"initial_deposit"`
	AnnualRatePercent   float64 `json:"annual_rate_percent"`
	Years               int     `json:"years"`
	MonthlyContribution float64 `json:"monthly_contribution"`
}

// YearPoint is one year-end checkpoint of the breakdown; offset 0 is the starting point
type YearPoint struct {
	YearOffset     int     `json:"year_offset"`
	Principal      float64 `json:"principal"`
	Balance        float64 `json:"balance"`
	InterestAmount float64 `json:"interest_amount"`
	ProfitRatio    float64 `json:"profit_ratio"`
}

// ProjectionSummary holds the end-of-horizon totals
type ProjectionSummary struct {
	Years          int     `json:"years"`
	TotalPrincipal float64 `json:"total_principal"`
	TotalInterest  float64 `json:"total_interest"`
	EndBalance     float64 `json:"end_balance"`
	ProfitRatio    float64 `json:"profit_ratio"`
	StartYear      int     `json:"start_year"`
	EndYear        int     `json:"end_year"`
}

// ProjectionResult is a full projection: input, totals and yearly breakdown
type ProjectionResult struct {
	Input     ProjectionInput   `json:"input"`
	Summary   ProjectionSummary `json:"summary"`
	Breakdown []YearPoint       `json:"breakdown"`
}
