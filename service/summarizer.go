package service

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"loan-decision/domain"
)

// Summarizer turns decisions into the texts shown to customers and staff.
type Summarizer struct {
	printer *message.Printer
}

func NewSummarizer(tag language.Tag) *Summarizer {
	return &Summarizer{printer: message.NewPrinter(tag)}
}

// CustomerSummary returns the message read back to the applicant.
func (s *Summarizer) CustomerSummary(name string, d domain.Decision) string {
	if d.Approve {
		return s.printer.Sprintf(
			"%s, your loan application has been pre-approved. "+
				"Offered amount: %.0f, term: %d months, monthly payment approx. %.0f. "+
				"Identity verification is required for final approval.",
			name, d.ApprovedAmount, d.TermMonths, d.MonthlyPayment,
		)
	}
	return s.printer.Sprintf(
		"%s, unfortunately your loan application could not be pre-approved at this stage. "+
			"Reasons: %s. "+
			"You may apply again once your credit score or overall risk indicators improve.",
		name, strings.Join(d.Reasons, ", "),
	)
}

// InternalSummary builds the audit view. Score stays nil when the customer
// has no score on file, so staff can tell "no data" from a real zero.
func (s *Summarizer) InternalSummary(
	customerID string,
	fin domain.FinancialSnapshot,
	d domain.Decision,
) domain.InternalSummary {
	return domain.InternalSummary{
		CustomerID: customerID,
		Score:      fin.CreditScore,
		DSR:        d.DSR,
		PolicyRate: d.PolicyRate,
		Notes:      d.Reasons,
	}
}
