// Package amortization computes fixed-payment loan schedules and simple
// day-count interest accrual.
//
// All functions are pure: they allocate and return their own results and
// are safe for concurrent use.
package amortization

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidArgument is returned by the validating entry points when the
// inputs cannot produce a schedule or accrual.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrOverflow is returned by Schedule when the terms drive the payment past
// the float64 range. It wraps ErrInvalidArgument.
var ErrOverflow = fmt.Errorf("%w: payment overflows", ErrInvalidArgument)

// MaxTermMonths bounds the schedules Schedule will materialise (100 years)
const MaxTermMonths = 1200

// LoanTerms are the inputs of a schedule computation
type LoanTerms struct {
	Principal         float64
	AnnualRatePercent float64 // 5.0 means 5%
	TermMonths        int
}

// ScheduleEntry is one installment of a schedule
type ScheduleEntry struct {
	Month     int     `json:"month"`
	Payment   float64 `json:"payment"`
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
	Remaining float64 `json:"remaining"`
}

// Summary aggregates a schedule
type Summary struct {
	Payment       float64 `json:"payment"`
	TotalPaid     float64 `json:"totalPaid"`
	TotalInterest float64 `json:"totalInterest"`
	Months        int     `json:"months"`
}

// MonthlyRate converts an annual percentage rate to a monthly decimal rate
func MonthlyRate(annualRatePercent float64) float64 {
	return annualRatePercent / 12 / 100
}

// MonthlyPayment returns the fixed installment for the given terms.
// termMonths must be positive.
func MonthlyPayment(principal, annualRatePercent float64, termMonths int) float64 {
	r := MonthlyRate(annualRatePercent)
	if r == 0 {
		return principal / float64(termMonths)
	}
	growth := math.Pow(1+r, float64(termMonths))
	return principal * (r * growth) / (growth - 1)
}

// ComputeSchedule returns the month-by-month schedule for a fixed-payment loan.
//
// Only the emitted remaining balance is clamped at zero; payment, interest and
// principal are emitted exactly as computed, so a small residual can show up in
// the last months of long schedules.
//
// termMonths is not checked here. Callers that cannot guarantee a positive term
// should go through Schedule.
func ComputeSchedule(principal, annualRatePercent float64, termMonths int) []ScheduleEntry {
	r := MonthlyRate(annualRatePercent)
	payment := MonthlyPayment(principal, annualRatePercent, termMonths)

	schedule := make([]ScheduleEntry, 0, termMonths)
	balance := principal

	for month := 1; month <= termMonths; month++ {
		var interest, principalPart float64
		if r == 0 {
			principalPart = payment
		} else {
			interest = balance * r
			principalPart = payment - interest
		}

		balance -= principalPart

		schedule = append(schedule, ScheduleEntry{
			Month:     month,
			Payment:   payment,
			Principal: principalPart,
			Interest:  interest,
			Remaining: math.Max(0, balance),
		})
	}

	return schedule
}

// Validate checks that terms can be fed to ComputeSchedule
func Validate(terms LoanTerms) error {
	if terms.TermMonths <= 0 || terms.TermMonths > MaxTermMonths {
		return fmt.Errorf("%w: term months must be between 1 and %d, got %d", ErrInvalidArgument, MaxTermMonths, terms.TermMonths)
	}
	return nil
}

// Schedule validates the terms and computes their schedule. Terms whose
// payment is not a finite number fail with ErrOverflow.
func Schedule(terms LoanTerms) ([]ScheduleEntry, error) {
	if err := Validate(terms); err != nil {
		return nil, err
	}
	payment := MonthlyPayment(terms.Principal, terms.AnnualRatePercent, terms.TermMonths)
	if math.IsNaN(payment) || math.IsInf(payment, 0) {
		return nil, fmt.Errorf("%w: %.4f%% over %d months", ErrOverflow, terms.AnnualRatePercent, terms.TermMonths)
	}
	return ComputeSchedule(terms.Principal, terms.AnnualRatePercent, terms.TermMonths), nil
}

// Summarize totals a schedule
func Summarize(schedule []ScheduleEntry) Summary {
	s := Summary{Months: len(schedule)}
	for _, e := range schedule {
		s.TotalPaid += e.Payment
		s.TotalInterest += e.Interest
	}
	if len(schedule) > 0 {
		s.Payment = schedule[0].Payment
	}
	return s
}
