package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-decision/domain"
)

const testRate = 0.045

func float(v float64) *float64 { return &v }
func score(v int) *int         { return &v }

func application(amount float64, term, age int) domain.LoanApplication {
	return domain.LoanApplication{
		CustomerID:        "1001",
		DesiredLoanAmount: amount,
		TermMonths:        term,
		CustomerProfile: domain.CustomerProfile{
			CustomerID: "1001",
			Name:       "Ayse Yilmaz",
			Age:        age,
		},
	}
}

func financials(income, debt float64, creditScore int) domain.FinancialSnapshot {
	return domain.FinancialSnapshot{
		MonthlyIncome: float(income),
		ExistingDebt:  float(debt),
		CreditScore:   score(creditScore),
	}
}

// incomeForDSR returns the income that puts a debt-free applicant at dsr.
func incomeForDSR(amount float64, term int, dsr float64) float64 {
	return AnnuityPayment(amount, testRate, term) / dsr
}

func TestAnnuityPayment(t *testing.T) {
	t.Run("standard annuity", func(t *testing.T) {
		assert.InDelta(t, 10966.62, AnnuityPayment(100_000, testRate, 12), 0.01)
	})

	t.Run("zero rate falls back to flat amortization", func(t *testing.T) {
		assert.Equal(t, 100.0, AnnuityPayment(1200, 0, 12))
	})

	t.Run("rate too small to register falls back", func(t *testing.T) {
		assert.Equal(t, 100.0, AnnuityPayment(1200, 1e-20, 12))
	})

	t.Run("term below one is treated as one", func(t *testing.T) {
		assert.InDelta(t, 1045.0, AnnuityPayment(1000, testRate, 0), 1e-6)
	})

	t.Run("payments cover the principal", func(t *testing.T) {
		for _, rate := range []float64{0, 0.001, 0.025, testRate, 0.2} {
			for _, term := range []int{1, 6, 12, 60, 360} {
				payment := AnnuityPayment(25_000, rate, term)
				assert.Greater(t, payment, 0.0)
				assert.GreaterOrEqual(t, payment*float64(term), 25_000*(1-1e-12),
					"rate=%v term=%d", rate, term)
			}
		}
	})
}

func TestEvaluate_ApprovesHealthyApplicant(t *testing.T) {
	engine := NewEligibilityEngine(testRate)

	d := engine.Evaluate(application(100_000, 12, 30), financials(20_000, 0, 700))

	assert.True(t, d.Approve)
	assert.Equal(t, 100_000.0, d.ApprovedAmount)
	assert.Equal(t, 10966.62, d.MonthlyPayment)
	assert.Equal(t, 12, d.TermMonths)
	assert.Equal(t, []string{ReasonOK}, d.Reasons)
	assert.Equal(t, 0.55, d.DSR)
	assert.Equal(t, 700, d.Score)
	assert.Equal(t, testRate, d.PolicyRate)
}

func TestEvaluate_UnderageDeclined(t *testing.T) {
	engine := NewEligibilityEngine(testRate)

	d := engine.Evaluate(application(100_000, 12, 16), financials(20_000, 0, 700))

	assert.False(t, d.Approve)
	assert.Equal(t, 0.0, d.ApprovedAmount)
	assert.Equal(t, []string{ReasonUnderage}, d.Reasons)
}

func TestEvaluate_AccumulatesEveryFailedRule(t *testing.T) {
	engine := NewEligibilityEngine(testRate)

	d := engine.Evaluate(application(100_000, 12, 16), financials(0, 0, 400))

	assert.False(t, d.Approve)
	assert.Equal(t, 0.0, d.ApprovedAmount)
	require.Len(t, d.Reasons, 4)
	assert.Equal(t, ReasonUnderage, d.Reasons[0])
	assert.Equal(t, ReasonLowCreditScore, d.Reasons[1])
	assert.Equal(t, ReasonNoIncome, d.Reasons[2])
	assert.Equal(t, "High DSR (10966.62)", d.Reasons[3])
}

func TestEvaluate_HighDSRReasonUsesRequestedAmount(t *testing.T) {
	engine := NewEligibilityEngine(testRate)

	d := engine.Evaluate(application(100_000, 12, 30), financials(10_000, 0, 700))

	assert.False(t, d.Approve)
	assert.Equal(t, []string{"High DSR (1.10)"}, d.Reasons)
	assert.Equal(t, 1.1, d.DSR)
}

func TestEvaluate_ExistingDebtCountsFivePercentMonthly(t *testing.T) {
	engine := NewEligibilityEngine(testRate)

	// 200,000 of existing debt costs 10,000 a month on top of the new payment.
	d := engine.Evaluate(application(10_000, 12, 30), financials(20_000, 200_000, 700))

	payment := AnnuityPayment(10_000, testRate, 12)
	assert.InDelta(t, (10_000+payment)/20_000, d.DSR, 0.005)
	assert.True(t, d.Approve)
}

func TestEvaluate_CounterOffer(t *testing.T) {
	engine := NewEligibilityEngine(testRate)

	// Full amount lands at DSR 0.69: above 0.6, inside the borderline band.
	d := engine.Evaluate(application(100_000, 12, 30), financials(16_000, 0, 550))

	assert.True(t, d.Approve)
	assert.Equal(t, 50_000.0, d.ApprovedAmount)
	assert.Equal(t, 5483.31, d.MonthlyPayment)
	assert.Equal(t, 0.34, d.DSR)
	assert.Equal(t, []string{"High DSR (0.69)", ReasonCounterOffer}, d.Reasons)
}

func TestEvaluate_CounterOfferFloor(t *testing.T) {
	engine := NewEligibilityEngine(testRate)

	income := incomeForDSR(8_000, 12, 0.65)
	d := engine.Evaluate(application(8_000, 12, 30), financials(income, 0, 600))

	assert.True(t, d.Approve)
	assert.Equal(t, CounterOfferFloor, d.ApprovedAmount)
	assert.InDelta(t, AnnuityPayment(CounterOfferFloor, testRate, 12), d.MonthlyPayment, 0.005)
}

func TestEvaluate_CounterOfferBoundaries(t *testing.T) {
	engine := NewEligibilityEngine(testRate)
	const amount = 100_000.0

	tests := []struct {
		name        string
		dsr         float64
		score       int
		age         int
		wantApprove bool
	}{
		{name: "dsr 0.65 score 600 gets counter-offer", dsr: 0.65, score: 600, age: 30, wantApprove: true},
		{name: "dsr 0.75 stays declined", dsr: 0.75, score: 600, age: 30, wantApprove: false},
		{name: "score 500 is inside the band", dsr: 0.65, score: 500, age: 30, wantApprove: true},
		{name: "score 499 is outside the band", dsr: 0.65, score: 499, age: 30, wantApprove: false},
		{name: "score 649 is inside the band", dsr: 0.65, score: 649, age: 30, wantApprove: true},
		{name: "score 650 declined on dsr alone", dsr: 0.65, score: 650, age: 30, wantApprove: false},
		{name: "underage borderline applicant still gets counter-offer", dsr: 0.5, score: 600, age: 17, wantApprove: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			income := incomeForDSR(amount, 12, tt.dsr)
			d := engine.Evaluate(application(amount, 12, tt.age), financials(income, 0, tt.score))

			assert.Equal(t, tt.wantApprove, d.Approve)
			if tt.wantApprove {
				assert.Equal(t, amount*CounterOfferFraction, d.ApprovedAmount)
				assert.Equal(t, ReasonCounterOffer, d.Reasons[len(d.Reasons)-1])
			} else {
				assert.Equal(t, 0.0, d.ApprovedAmount)
				assert.NotContains(t, d.Reasons, ReasonCounterOffer)
			}
		})
	}
}

func TestEvaluate_NoIncome(t *testing.T) {
	engine := NewEligibilityEngine(testRate)

	t.Run("zero income", func(t *testing.T) {
		d := engine.Evaluate(application(1_000, 12, 30), financials(0, 0, 600))

		assert.False(t, d.Approve)
		assert.Contains(t, d.Reasons, ReasonNoIncome)
		assert.NotContains(t, d.Reasons, ReasonCounterOffer)
		assert.False(t, math.IsInf(d.DSR, 0))
		// Denominator floors at 1.
		assert.Equal(t, d.MonthlyPayment, d.DSR)
	})

	t.Run("no financial record", func(t *testing.T) {
		d := engine.Evaluate(application(1_000, 12, 30), domain.FinancialSnapshot{})

		assert.False(t, d.Approve)
		assert.Equal(t, 0, d.Score)
		assert.Contains(t, d.Reasons, ReasonLowCreditScore)
		assert.Contains(t, d.Reasons, ReasonNoIncome)
	})
}

func TestEvaluate_ZeroRateUsesFlatPayment(t *testing.T) {
	engine := NewEligibilityEngine(0)

	d := engine.Evaluate(application(12_000, 12, 30), financials(5_000, 0, 700))

	assert.True(t, d.Approve)
	assert.Equal(t, 1_000.0, d.MonthlyPayment)
	assert.Equal(t, 0.2, d.DSR)
	assert.Equal(t, 0.0, d.PolicyRate)
}

func TestEvaluate_ClampsTermToOneMonth(t *testing.T) {
	engine := NewEligibilityEngine(testRate)

	d := engine.Evaluate(application(1_000, -3, 30), financials(5_000, 0, 700))

	assert.Equal(t, 1, d.TermMonths)
	assert.Equal(t, 1045.0, d.MonthlyPayment)
}

func TestEvaluate_IsDeterministic(t *testing.T) {
	engine := NewEligibilityEngine(testRate)
	app := application(100_000, 12, 30)
	fin := financials(16_000, 3_000, 550)

	assert.Equal(t, engine.Evaluate(app, fin), engine.Evaluate(app, fin))
}

func TestEvaluate_DecisionInvariants(t *testing.T) {
	engine := NewEligibilityEngine(testRate)

	for _, amount := range []float64{1_000, 50_000, 250_000} {
		for _, income := range []float64{0, 3_000, 15_000, 80_000} {
			for _, s := range []int{0, 499, 550, 640, 720} {
				for _, age := range []int{0, 17, 18, 45} {
					d := engine.Evaluate(application(amount, 24, age), financials(income, 10_000, s))

					require.NotEmpty(t, d.Reasons)
					if d.Approve {
						assert.Greater(t, d.ApprovedAmount, 0.0)
					} else {
						assert.Equal(t, 0.0, d.ApprovedAmount)
					}
					if len(d.Reasons) == 1 && d.Reasons[0] == ReasonOK {
						assert.True(t, d.Approve)
						assert.Equal(t, amount, d.ApprovedAmount)
					}
				}
			}
		}
	}
}
