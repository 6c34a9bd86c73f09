package service

import (
	"fmt"
	"math"

	"loan-decision/domain"
)

// roundTo2Decimals rounds a float64 to 2 decimal places.
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

// AnnuityPayment returns the level monthly payment that amortizes principal
// over n periods at the periodic rate. When the annuity formula is undefined
// (rate of zero, or a rate too small to move (1+r)^-n off 1) the principal is
// spread flat over the term.
func AnnuityPayment(principal, rate float64, n int) float64 {
	if n < MinTermMonths {
		n = MinTermMonths
	}
	denom := 1 - math.Pow(1+rate, -float64(n))
	if denom == 0 {
		return principal / float64(n)
	}
	payment := principal * (rate / denom)
	if math.IsNaN(payment) || math.IsInf(payment, 0) {
		return principal / float64(n)
	}
	return payment
}

// debtServiceRatio divides the monthly debt load by income, flooring income
// at 1 so that a missing income yields a huge ratio instead of a fault.
func debtServiceRatio(existingMonthly, payment, income float64) float64 {
	return (existingMonthly + payment) / math.Max(income, 1)
}

// EligibilityEngine applies the loan pre-approval rules at a fixed policy rate.
// It holds no mutable state and is safe for concurrent use.
type EligibilityEngine struct {
	rate float64
}

// NewEligibilityEngine creates an engine that amortizes at the given monthly rate.
func NewEligibilityEngine(rate float64) *EligibilityEngine {
	return &EligibilityEngine{rate: rate}
}

// PolicyRate returns the monthly rate the engine was built with.
func (e *EligibilityEngine) PolicyRate() float64 {
	return e.rate
}

// Evaluate decides an application against the customer's financials.
//
// Every rule is checked and each failure adds a reason. A declined applicant
// in the borderline band (500 <= score < 650, income on file, DSR on the
// requested amount <= 0.7) is approved for a reduced amount instead.
func (e *EligibilityEngine) Evaluate(
	app domain.LoanApplication,
	fin domain.FinancialSnapshot,
) domain.Decision {
	amount := app.DesiredLoanAmount
	term := max(app.TermMonths, MinTermMonths)
	income := fin.Income()
	score := fin.Score()
	age := app.CustomerProfile.Age

	payment := AnnuityPayment(amount, e.rate, term)
	existingMonthly := fin.Debt() * ExistingDebtServiceFactor
	dsr := debtServiceRatio(existingMonthly, payment, income)

	approve := true
	reasons := []string{}
	approvedAmount := amount

	if age < MinApplicantAge {
		approve = false
		reasons = append(reasons, ReasonUnderage)
	}
	if score < MinCreditScore {
		approve = false
		reasons = append(reasons, ReasonLowCreditScore)
	}
	if income <= 0 {
		approve = false
		reasons = append(reasons, ReasonNoIncome)
	}
	if dsr > MaxDSR {
		approve = false
		reasons = append(reasons, fmt.Sprintf(reasonHighDSRTemplate, dsr))
	}

	// The band check uses the DSR of the requested amount.
	if !approve && score >= MinCreditScore && score < BorderlineScoreCeiling &&
		income > 0 && dsr <= BorderlineMaxDSR {
		approve = true
		approvedAmount = math.Max(CounterOfferFloor, amount*CounterOfferFraction)
		payment = AnnuityPayment(approvedAmount, e.rate, term)
		dsr = debtServiceRatio(existingMonthly, payment, income)
		reasons = append(reasons, ReasonCounterOffer)
	}

	if len(reasons) == 0 {
		reasons = []string{ReasonOK}
	}

	decision := domain.Decision{
		Approve:        approve,
		MonthlyPayment: roundTo2Decimals(payment),
		TermMonths:     term,
		Reasons:        reasons,
		DSR:            roundTo2Decimals(dsr),
		Score:          score,
		PolicyRate:     e.rate,
	}
	if approve {
		decision.ApprovedAmount = roundTo2Decimals(approvedAmount)
	}
	return decision
}
