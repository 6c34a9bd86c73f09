package service

import (
	"errors"
	"fmt"

	"loan-decision/domain"
)

var ErrInvalidQuote = errors.New("invalid quote request")

// QuoteService prices a loan at the policy rate without deciding on it.
type QuoteService struct {
	engine *EligibilityEngine
}

// NewQuoteService creates a QuoteService sharing the engine's policy rate.
func NewQuoteService(engine *EligibilityEngine) *QuoteService {
	return &QuoteService{engine: engine}
}

// Quote calculates the repayment schedule totals for the given amount and term.
func (s *QuoteService) Quote(input domain.QuoteInput) (domain.QuoteResult, error) {
	if input.Amount < MinLoanAmount {
		return domain.QuoteResult{}, fmt.Errorf("%w: amount must be positive", ErrInvalidQuote)
	}
	if input.Amount > MaxLoanAmount {
		return domain.QuoteResult{}, fmt.Errorf("%w: amount exceeds maximum of %.2f", ErrInvalidQuote, MaxLoanAmount)
	}
	if input.TermMonths < MinTermMonths {
		return domain.QuoteResult{}, fmt.Errorf("%w: term must be at least %d month", ErrInvalidQuote, MinTermMonths)
	}
	if input.TermMonths > MaxTermMonths {
		return domain.QuoteResult{}, fmt.Errorf("%w: term exceeds maximum of %d months", ErrInvalidQuote, MaxTermMonths)
	}

	rate := s.engine.PolicyRate()
	payment := AnnuityPayment(input.Amount, rate, input.TermMonths)
	total := payment * float64(input.TermMonths)

	return domain.QuoteResult{
		MonthlyPayment: roundTo2Decimals(payment),
		TotalPayment:   roundTo2Decimals(total),
		TotalInterest:  roundTo2Decimals(total - input.Amount),
		PolicyRate:     rate,
	}, nil
}
