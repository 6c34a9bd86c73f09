package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-decision/domain"
)

func TestQuote_WithInterest(t *testing.T) {
	quotes := NewQuoteService(NewEligibilityEngine(testRate))

	result, err := quotes.Quote(domain.QuoteInput{Amount: 100_000, TermMonths: 12})

	require.NoError(t, err)
	assert.Equal(t, 10966.62, result.MonthlyPayment)
	assert.Equal(t, 131599.43, result.TotalPayment)
	assert.Equal(t, 31599.43, result.TotalInterest)
	assert.Equal(t, testRate, result.PolicyRate)
}

func TestQuote_ZeroRate(t *testing.T) {
	quotes := NewQuoteService(NewEligibilityEngine(0))

	result, err := quotes.Quote(domain.QuoteInput{Amount: 1200, TermMonths: 12})

	require.NoError(t, err)
	assert.Equal(t, 100.0, result.MonthlyPayment)
	assert.Equal(t, 0.0, result.TotalInterest)
}

func TestQuote_Validation(t *testing.T) {
	quotes := NewQuoteService(NewEligibilityEngine(testRate))

	tests := []struct {
		name  string
		input domain.QuoteInput
	}{
		{name: "zero amount", input: domain.QuoteInput{Amount: 0, TermMonths: 12}},
		{name: "amount over maximum", input: domain.QuoteInput{Amount: MaxLoanAmount + 1, TermMonths: 12}},
		{name: "zero term", input: domain.QuoteInput{Amount: 1000, TermMonths: 0}},
		{name: "term over maximum", input: domain.QuoteInput{Amount: 1000, TermMonths: MaxTermMonths + 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := quotes.Quote(tt.input)
			assert.ErrorIs(t, err, ErrInvalidQuote)
		})
	}
}
