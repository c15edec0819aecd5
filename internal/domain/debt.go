package domain

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DebtOption describes one way of repaying a debt before retirement. Debt and
// lump-sum withdrawal amounts are negative; balances are positive.
type DebtOption struct {
	Name              string  `yaml:"name" json:"name"`
	Debt              float64 `yaml:"debt" json:"debt"`
	DebtRatePct       float64 `yaml:"debt_rate_pct" json:"debt_rate_pct"`
	RepaymentYears    float64 `yaml:"repayment_years" json:"repayment_years"`
	LiquidBalance     float64 `yaml:"liquid_balance" json:"liquid_balance"`
	LockedBalance     float64 `yaml:"locked_balance" json:"locked_balance"`
	GrowthRatePct     float64 `yaml:"growth_rate_pct" json:"growth_rate_pct"`
	LumpWithdrawal    float64 `yaml:"lump_withdrawal" json:"lump_withdrawal"`
	CurrentAge        int     `yaml:"current_age" json:"current_age"`
	RetirementAge     int     `yaml:"retirement_age" json:"retirement_age"`
	PaymentsPerYear   int     `yaml:"payments_per_year" json:"payments_per_year"`
	MarginalTaxRate   float64 `yaml:"marginal_tax_rate" json:"marginal_tax_rate"`
	RetirementTaxRate float64 `yaml:"retirement_tax_rate" json:"retirement_tax_rate"`
}

// DefaultDebtOption returns the reference plan: $38,000 at 10% over five years
// with $24,000 liquid and $100,000 locked-in savings growing at 5%, age 52 to 65.
func DefaultDebtOption() DebtOption {
	return DebtOption{
		Name:              "repay as usual",
		Debt:              -38000,
		DebtRatePct:       10,
		RepaymentYears:    5,
		LiquidBalance:     24000,
		LockedBalance:     100000,
		GrowthRatePct:     5,
		CurrentAge:        52,
		RetirementAge:     65,
		PaymentsPerYear:   12,
		MarginalTaxRate:   0.40,
		RetirementTaxRate: 0.20,
	}
}

// Validate rejects options that cannot be projected.
func (o DebtOption) Validate() error {
	switch {
	case o.PaymentsPerYear <= 0:
		return fmt.Errorf("payments per year must be positive")
	case o.RepaymentYears <= 0:
		return fmt.Errorf("repayment years must be positive")
	case o.RetirementAge <= o.CurrentAge:
		return fmt.Errorf("retirement age %d must be after current age %d", o.RetirementAge, o.CurrentAge)
	case float64(o.RetirementAge-o.CurrentAge) < o.RepaymentYears:
		return fmt.Errorf("debt repayment (%g years) runs past retirement", o.RepaymentYears)
	case o.MarginalTaxRate < 0 || o.MarginalTaxRate >= 1:
		return fmt.Errorf("marginal tax rate must be in [0, 1)")
	case o.RetirementTaxRate < 0 || o.RetirementTaxRate >= 1:
		return fmt.Errorf("retirement tax rate must be in [0, 1)")
	}
	return nil
}

// UnmarshalYAML starts from DefaultDebtOption so files only list what differs.
func (o *DebtOption) UnmarshalYAML(node *yaml.Node) error {
	type plain DebtOption
	p := plain(DefaultDebtOption())
	if err := node.Decode(&p); err != nil {
		return err
	}
	*o = DebtOption(p)
	return nil
}
