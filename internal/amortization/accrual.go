package amortization

import "fmt"

// AccrualRequest are the inputs of a simple interest accrual
type AccrualRequest struct {
	Principal         float64
	AnnualRatePercent float64
	Days              int
}

// DailyRate converts an annual percentage rate to a daily decimal rate (365-day year)
func DailyRate(annualRatePercent float64) float64 {
	return annualRatePercent / 365 / 100
}

// ComputeAccruedInterest returns the simple, non-compounding interest accrued
// over the given number of days. Negative days yield a negative amount.
func ComputeAccruedInterest(principal, annualRatePercent float64, days int) float64 {
	return principal * DailyRate(annualRatePercent) * float64(days)
}

// Accrue rejects negative day counts before computing the accrual
func Accrue(req AccrualRequest) (float64, error) {
	if req.Days < 0 {
		return 0, fmt.Errorf("%w: days must not be negative, got %d", ErrInvalidArgument, req.Days)
	}
	return ComputeAccruedInterest(req.Principal, req.AnnualRatePercent, req.Days), nil
}
