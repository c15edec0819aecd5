package calculation

import "math"

// LoanPayment returns the level payment, made perYear times a year, that
// amortizes pv over years at ratePct annual interest, and the total interest
// paid (n*pmt - pv). The sign of pmt follows pv.
func LoanPayment(pv, ratePct, years float64, perYear int) (pmt, interest float64) {
	n := years * float64(perYear)
	r := ratePct / 100 / float64(perYear)
	if r == 0 {
		pmt = pv / n
		return pmt, 0
	}
	pmt = r * pv / (1 - math.Pow(1+r, -n))
	return pmt, n*pmt - pv
}

// FutureValue grows pv for years at ratePct compounded perYear times a year,
// plus an annuity of pmt paid each period.
func FutureValue(pmt, pv, ratePct, years float64, perYear int) float64 {
	n := years * float64(perYear)
	r := ratePct / 100 / float64(perYear)
	if r == 0 {
		return pv + pmt*n
	}
	g := math.Pow(1+r, n)
	return pv*g + pmt/r*(g-1)
}
