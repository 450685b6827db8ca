package validators

import (
	"fmt"

	"github.com/cloud-ru/finboard-go/internal/calculations"
	"github.com/cloud-ru/finboard-go/internal/config"
	"github.com/cloud-ru/finboard-go/pkg/utils"
)

// ValidateRange checks that a number is finite and within [min; max]
func ValidateRange(name string, value float64, minInclusive, maxInclusive float64) error {
	if !utils.IsFinite(value) {
		return fmt.Errorf("%s: value is not a finite number", name)
	}
	if value < minInclusive {
		return fmt.Errorf("%s: value must be ≥ %g", name, minInclusive)
	}
	if value > maxInclusive {
		return fmt.Errorf("%s: value is too large (>%g)", name, maxInclusive)
	}
	return nil
}

// ValidateIntRange checks that an integer is within [min; max]
func ValidateIntRange(name string, value int, minInclusive, maxInclusive int) error {
	if value < minInclusive || value > maxInclusive {
		return fmt.Errorf("%s: value must be in range [%d; %d]", name, minInclusive, maxInclusive)
	}
	return nil
}

// CheckDeposit checks the initial deposit
func CheckDeposit(cfg *config.Config, amount float64) error {
	return ValidateRange("initial_deposit", amount, 0.0, cfg.MaxDeposit)
}

// CheckContribution checks the monthly contribution
func CheckContribution(cfg *config.Config, contribution float64) error {
	return ValidateRange("monthly_contribution", contribution, 0.0, cfg.MaxContribution)
}

// CheckRate checks the annual rate; negative rates are allowed down to the configured floor
func CheckRate(cfg *config.Config, rate float64) error {
	return ValidateRange("annual_rate_percent", rate, cfg.MinRate, cfg.MaxRate)
}

// CheckYears checks the projection horizon
func CheckYears(cfg *config.Config, years int) error {
	return ValidateIntRange("years", years, 1, cfg.MaxYears)
}

// CheckProjectionInput runs every input check and returns the first failure
func CheckProjectionInput(cfg *config.Config, in calculations.ProjectionInput) error {
	if err := CheckDeposit(cfg, in.InitialDeposit); err != nil {
		return err
	}
	if err := CheckContribution(cfg, in.MonthlyContribution); err != nil {
		return err
	}
	if err := CheckYears(cfg, in.Years); err != nil {
		return err
	}
	return CheckRate(cfg, in.AnnualRatePercent)
}

// BalanceCap returns the largest allowed end balance
func BalanceCap(cfg *config.Config) float64 {
	if cfg == nil {
		return 1e15
	}
	return cfg.BalanceCap()
}

// CheckBalance checks a projected balance against the cap
func CheckBalance(cfg *config.Config, balance float64) error {
	limit := BalanceCap(cfg)
	if !utils.IsFinite(balance) || balance > limit {
		return fmt.Errorf("end balance exceeds the upper bound %g (check rate, years and contributions)", limit)
	}
	return nil
}
