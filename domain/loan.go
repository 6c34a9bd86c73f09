package domain

import "time"

// LoanApplication is the fully validated input of the eligibility engine.
type LoanApplication struct {
	CustomerID        string
	DesiredLoanAmount float64
	TermMonths        int
	CustomerProfile   CustomerProfile
}

// Decision is the outcome of a single eligibility evaluation.
type Decision struct {
	Approve        bool     `json:"approve"`
	ApprovedAmount float64  `json:"approved_amount"`
	MonthlyPayment float64  `json:"monthly_payment"`
	TermMonths     int      `json:"term_months"`
	Reasons        []string `json:"reasons"`
	DSR            float64  `json:"dsr"`
	Score          int      `json:"score"`
	PolicyRate     float64  `json:"policy_rate"`
}

// ApplyRequest is the loan application as submitted by a client.
type ApplyRequest struct {
	CustomerID        string
	DesiredLoanAmount float64
	TermMonths        int
}

// InternalSummary is the audit-facing view of a decision.
type InternalSummary struct {
	CustomerID string   `json:"customer_id"`
	Score      *int     `json:"score"`
	DSR        float64  `json:"dsr"`
	PolicyRate float64  `json:"policy_rate"`
	Notes      []string `json:"notes"`
}

// ApplyContext carries the presentation data built around a decision.
type ApplyContext struct {
	CustomerName    string          `json:"customer_name"`
	CustomerSummary string          `json:"customer_summary"`
	InternalSummary InternalSummary `json:"internal_summary"`
}

type ApplyResult struct {
	Decision     Decision
	FinalApprove bool
	Context      ApplyContext
}

// AuditRecord is what gets persisted for every evaluated application.
type AuditRecord struct {
	ID              string    `json:"id"`
	CustomerID      string    `json:"customer_id"`
	RequestedAmount float64   `json:"requested_amount"`
	Decision        Decision  `json:"decision"`
	CreatedAt       time.Time `json:"created_at"`
}

type QuoteInput struct {
	Amount     float64 `json:"amount"`
	TermMonths int     `json:"term_months"`
}

type QuoteResult struct {
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalPayment   float64 `json:"total_payment"`
	TotalInterest  float64 `json:"total_interest"`
	PolicyRate     float64 `json:"policy_rate"`
}
