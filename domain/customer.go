package domain

// CustomerProfile is the identity snapshot read from the profile store.
type CustomerProfile struct {
	CustomerID       string `json:"customer_id"`
	Name             string `json:"name"`
	Segment          string `json:"segment"`
	EmploymentStatus string `json:"employment_status"`
	Age              int    `json:"age"`
}

// FinancialSnapshot holds the account figures on file for a customer.
// Fields are nil when the store has no value for them.
type FinancialSnapshot struct {
	MonthlyIncome *float64 `json:"monthly_income"`
	ExistingDebt  *float64 `json:"existing_debt"`
	CreditScore   *int     `json:"credit_score"`
}

// Income returns the monthly income, or 0 when absent.
func (f FinancialSnapshot) Income() float64 {
	if f.MonthlyIncome == nil {
		return 0
	}
	return *f.MonthlyIncome
}

// Debt returns the existing debt, or 0 when absent.
func (f FinancialSnapshot) Debt() float64 {
	if f.ExistingDebt == nil {
		return 0
	}
	return *f.ExistingDebt
}

// Score returns the credit score, or 0 when absent.
func (f FinancialSnapshot) Score() int {
	if f.CreditScore == nil {
		return 0
	}
	return *f.CreditScore
}
