package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rpgo/portfolio-sim/internal/domain"
	money "github.com/rpgo/portfolio-sim/pkg/decimal"
)

// DebtOutcome is the result of following a debt option until retirement.
type DebtOutcome struct {
	Option             domain.DebtOption `json:"option"`
	LumpGross          decimal.Decimal   `json:"lump_gross"`
	LumpNet            decimal.Decimal   `json:"lump_net"`
	DebtAfterLump      decimal.Decimal   `json:"debt_after_lump"`
	Payment            decimal.Decimal   `json:"payment"`
	TotalPaid          decimal.Decimal   `json:"total_paid"`
	TotalInterest      decimal.Decimal   `json:"total_interest"`
	LiquidAfterLump    decimal.Decimal   `json:"liquid_after_lump"`
	LiquidAtRetirement decimal.Decimal   `json:"liquid_at_retirement"`
	LockedAtRetirement decimal.Decimal   `json:"locked_at_retirement"`
	NetAtRetirement    decimal.Decimal   `json:"net_at_retirement"`
}

// CompareRepayment projects a repayment option to retirement. A lump
// withdrawal from the liquid account is taxed at the marginal rate and the net
// amount reduces the debt. The liquid account grows during repayment and then
// receives the former debt payment every period until retirement; the locked
// account grows untouched. The combined balance is taxed at the retirement rate.
// TotalPaid covers the whole original debt: the net lump plus every payment.
func CompareRepayment(o domain.DebtOption) (*DebtOutcome, error) {
	if err := o.Validate(); err != nil {
		return nil, fmt.Errorf("debt option %q: %w", o.Name, err)
	}

	lumpNet := o.LumpWithdrawal * (1 - o.MarginalTaxRate)
	debt := o.Debt - lumpNet
	pmt, interest := LoanPayment(debt, o.DebtRatePct, o.RepaymentYears, o.PaymentsPerYear)

	liquid := o.LiquidBalance + o.LumpWithdrawal
	savingYears := float64(o.RetirementAge-o.CurrentAge) - o.RepaymentYears
	liquidAfterDebt := FutureValue(0, liquid, o.GrowthRatePct, o.RepaymentYears, o.PaymentsPerYear)
	liquidAtRetirement := FutureValue(-pmt, liquidAfterDebt, o.GrowthRatePct, savingYears, o.PaymentsPerYear)
	locked := FutureValue(0, o.LockedBalance, o.GrowthRatePct, float64(o.RetirementAge-o.CurrentAge), o.PaymentsPerYear)

	return &DebtOutcome{
		Option:             o,
		LumpGross:          money.Cents(-o.LumpWithdrawal),
		LumpNet:            money.Cents(-lumpNet),
		DebtAfterLump:      money.Cents(-debt),
		Payment:            money.Cents(-pmt),
		TotalPaid:          money.Cents(-(o.Debt + interest)),
		TotalInterest:      money.Cents(-interest),
		LiquidAfterLump:    money.Cents(liquid),
		LiquidAtRetirement: money.Cents(liquidAtRetirement),
		LockedAtRetirement: money.Cents(locked),
		NetAtRetirement:    money.Cents((1 - o.RetirementTaxRate) * (locked + liquidAtRetirement)),
	}, nil
}
