package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"loan-decision/domain"
)

func TestCustomerSummary_Approved(t *testing.T) {
	s := NewSummarizer(language.English)

	got := s.CustomerSummary("Can Ozturk", domain.Decision{
		Approve:        true,
		ApprovedAmount: 50_000,
		MonthlyPayment: 5483.31,
		TermMonths:     12,
		Reasons:        []string{"High DSR (0.69)", ReasonCounterOffer},
	})

	assert.Equal(t,
		"Can Ozturk, your loan application has been pre-approved. "+
			"Offered amount: 50,000, term: 12 months, monthly payment approx. 5,483. "+
			"Identity verification is required for final approval.",
		got)
}

func TestCustomerSummary_Declined(t *testing.T) {
	s := NewSummarizer(language.English)

	got := s.CustomerSummary("Zeynep Demir", domain.Decision{
		Approve: false,
		Reasons: []string{ReasonUnderage, ReasonLowCreditScore},
	})

	assert.Contains(t, got, "Zeynep Demir, unfortunately your loan application could not be pre-approved")
	assert.Contains(t, got, "Reasons: Age < 18, Low credit score.")
}

func TestInternalSummary(t *testing.T) {
	s := NewSummarizer(language.English)
	d := domain.Decision{DSR: 0.34, PolicyRate: testRate, Reasons: []string{ReasonOK}}

	t.Run("score on file", func(t *testing.T) {
		got := s.InternalSummary("1001", financials(20_000, 0, 720), d)

		assert.Equal(t, "1001", got.CustomerID)
		if assert.NotNil(t, got.Score) {
			assert.Equal(t, 720, *got.Score)
		}
		assert.Equal(t, 0.34, got.DSR)
		assert.Equal(t, testRate, got.PolicyRate)
		assert.Equal(t, []string{ReasonOK}, got.Notes)
	})

	t.Run("no score on file", func(t *testing.T) {
		got := s.InternalSummary("9999", domain.FinancialSnapshot{}, d)
		assert.Nil(t, got.Score)
	})
}
