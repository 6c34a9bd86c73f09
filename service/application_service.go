package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"loan-decision/domain"
	"loan-decision/metrics"
	"loan-decision/repository"
)

var ErrInvalidApplication = errors.New("invalid application")

// Profile used when the customer is not on file.
const (
	defaultCustomerName     = "Valued Customer"
	defaultSegment          = "Mass"
	defaultEmploymentStatus = "unknown"
	defaultAge              = 30
)

// Outcome labels.
const (
	OutcomeApproved     = "approved"
	OutcomeCounterOffer = "counter_offer"
	OutcomeDeclined     = "declined"
)

// ApplicationService runs a loan application end to end: data lookup,
// eligibility evaluation, summaries and audit.
type ApplicationService struct {
	profiles   repository.ProfileRepository
	decisions  repository.DecisionRepository
	engine     *EligibilityEngine
	summarizer *Summarizer
	metrics    *metrics.Metrics
	logger     *slog.Logger
	now        func() time.Time
}

func NewApplicationService(
	profiles repository.ProfileRepository,
	decisions repository.DecisionRepository,
	engine *EligibilityEngine,
	summarizer *Summarizer,
	metrics *metrics.Metrics,
	logger *slog.Logger,
) *ApplicationService {
	return &ApplicationService{
		profiles:   profiles,
		decisions:  decisions,
		engine:     engine,
		summarizer: summarizer,
		metrics:    metrics,
		logger:     logger,
		now:        time.Now,
	}
}

// Profile returns the customer's profile, or repository.ErrNotFound.
func (s *ApplicationService) Profile(ctx context.Context, customerID string) (domain.CustomerProfile, error) {
	return s.profiles.GetProfile(ctx, customerID)
}

// History lists the customer's past decisions, most recent first.
func (s *ApplicationService) History(ctx context.Context, customerID string) ([]domain.AuditRecord, error) {
	return s.decisions.List(ctx, customerID)
}

// Apply evaluates a loan application against the customer's data on file.
func (s *ApplicationService) Apply(ctx context.Context, req domain.ApplyRequest) (domain.ApplyResult, error) {
	start := s.now()

	if err := validate(req); err != nil {
		return domain.ApplyResult{}, err
	}

	profile, err := s.profiles.GetProfile(ctx, req.CustomerID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		profile = defaultProfile(req.CustomerID)
	case err != nil:
		return domain.ApplyResult{}, fmt.Errorf("fetch profile: %w", err)
	}

	fin, err := s.profiles.GetFinancials(ctx, req.CustomerID)
	if err != nil {
		return domain.ApplyResult{}, fmt.Errorf("fetch financials: %w", err)
	}

	decision := s.engine.Evaluate(domain.LoanApplication{
		CustomerID:        req.CustomerID,
		DesiredLoanAmount: req.DesiredLoanAmount,
		TermMonths:        req.TermMonths,
		CustomerProfile:   profile,
	}, fin)

	result := domain.ApplyResult{
		Decision:     decision,
		FinalApprove: decision.Approve,
		Context: domain.ApplyContext{
			CustomerName:    profile.Name,
			CustomerSummary: s.summarizer.CustomerSummary(profile.Name, decision),
			InternalSummary: s.summarizer.InternalSummary(req.CustomerID, fin, decision),
		},
	}

	// Audit is not critical to the response.
	record := domain.AuditRecord{
		ID:              uuid.NewString(),
		CustomerID:      req.CustomerID,
		RequestedAmount: req.DesiredLoanAmount,
		Decision:        decision,
		CreatedAt:       s.now().UTC(),
	}
	if err := s.decisions.Save(ctx, record); err != nil {
		s.logger.WarnContext(ctx, "failed to save decision audit record",
			"customer_id", req.CustomerID,
			"error", err,
		)
	}

	outcome := Outcome(decision)
	s.metrics.IncrementOutcome(outcome)
	for _, reason := range decision.Reasons {
		if rule := ruleLabel(reason); rule != "" {
			s.metrics.IncrementRuleFailure(rule)
		}
	}
	s.metrics.ObserveApplyLatency(s.now().Sub(start))

	s.logger.InfoContext(ctx, "loan application evaluated",
		"decision_id", record.ID,
		"customer_id", req.CustomerID,
		"outcome", outcome,
		"approved_amount", decision.ApprovedAmount,
		"dsr", decision.DSR,
		"score", decision.Score,
	)

	return result, nil
}

// Outcome classifies a decision for logs and metrics.
func Outcome(d domain.Decision) string {
	switch {
	case !d.Approve:
		return OutcomeDeclined
	case len(d.Reasons) > 0 && d.Reasons[len(d.Reasons)-1] == ReasonCounterOffer:
		return OutcomeCounterOffer
	default:
		return OutcomeApproved
	}
}

func ruleLabel(reason string) string {
	switch {
	case reason == ReasonUnderage:
		return "age"
	case reason == ReasonLowCreditScore:
		return "credit_score"
	case reason == ReasonNoIncome:
		return "income"
	case strings.HasPrefix(reason, "High DSR"):
		return "dsr"
	default:
		return ""
	}
}

func validate(req domain.ApplyRequest) error {
	if strings.TrimSpace(req.CustomerID) == "" {
		return fmt.Errorf("%w: customer_id is required", ErrInvalidApplication)
	}
	if math.IsNaN(req.DesiredLoanAmount) || math.IsInf(req.DesiredLoanAmount, 0) {
		return fmt.Errorf("%w: desired_loan_amount must be a finite number", ErrInvalidApplication)
	}
	if req.DesiredLoanAmount < MinLoanAmount {
		return fmt.Errorf("%w: desired_loan_amount must be positive", ErrInvalidApplication)
	}
	if req.DesiredLoanAmount > MaxLoanAmount {
		return fmt.Errorf("%w: desired_loan_amount exceeds maximum of %.2f", ErrInvalidApplication, MaxLoanAmount)
	}
	if req.TermMonths > MaxTermMonths {
		return fmt.Errorf("%w: term_months exceeds maximum of %d", ErrInvalidApplication, MaxTermMonths)
	}
	return nil
}

func defaultProfile(customerID string) domain.CustomerProfile {
	return domain.CustomerProfile{
		CustomerID:       customerID,
		Name:             defaultCustomerName,
		Segment:          defaultSegment,
		EmploymentStatus: defaultEmploymentStatus,
		Age:              defaultAge,
	}
}
