package service

const (
	MaxLoanAmount = 1_000_000_000.0
	MaxTermMonths = 600
	MinTermMonths = 1
	MinLoanAmount = 0.01
)

// Eligibility thresholds.
const (
	MinApplicantAge = 18
	MinCreditScore  = 500
	MaxDSR          = 0.6

	// Existing debt is assumed to cost 5% of its balance every month.
	ExistingDebtServiceFactor = 0.05

	BorderlineScoreCeiling = 650
	BorderlineMaxDSR       = 0.7
	CounterOfferFraction   = 0.5
	CounterOfferFloor      = 5000.0
)

// Decision reasons.
const (
	ReasonOK              = "OK"
	ReasonUnderage        = "Age < 18"
	ReasonLowCreditScore  = "Low credit score"
	ReasonNoIncome        = "No income on file"
	ReasonCounterOffer    = "Counter-offer due to borderline risk"
	reasonHighDSRTemplate = "High DSR (%.2f)"
)
