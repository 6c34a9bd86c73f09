package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"loan-decision/domain"
	"loan-decision/repository"
	"loan-decision/service"
)

// ApplicationService is the subset of service.ApplicationService the handlers use.
type ApplicationService interface {
	Apply(ctx context.Context, req domain.ApplyRequest) (domain.ApplyResult, error)
	Profile(ctx context.Context, customerID string) (domain.CustomerProfile, error)
	History(ctx context.Context, customerID string) ([]domain.AuditRecord, error)
}

type LoanHandler struct {
	service ApplicationService
	quotes  *service.QuoteService
	logger  *slog.Logger
}

func NewLoanHandler(svc ApplicationService, quotes *service.QuoteService, logger *slog.Logger) *LoanHandler {
	return &LoanHandler{service: svc, quotes: quotes, logger: logger}
}

// Register mounts the loan endpoints on the router.
func (h *LoanHandler) Register(r chi.Router) {
	r.Post("/loan/apply", h.Apply)
	r.Post("/loan/quote", h.Quote)
	r.Get("/profile/{customerID}", h.GetProfile)
	r.Get("/customers/{customerID}/decisions", h.ListDecisions)
}

// Apply handles POST /loan/apply.
func (h *LoanHandler) Apply(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var body applyRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	req, err := body.toDomain()
	if err != nil {
		var missing *missingFieldError
		if errors.As(err, &missing) {
			writeError(w, h.logger, http.StatusBadRequest, missing.Error(), "")
			return
		}
		writeError(w, h.logger, http.StatusBadRequest, "invalid field", err.Error())
		return
	}

	result, err := h.service.Apply(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidApplication) {
			writeError(w, h.logger, http.StatusBadRequest, "invalid application", err.Error())
			return
		}
		h.logger.ErrorContext(ctx, "loan application failed",
			"customer_id", req.CustomerID,
			"error", err,
		)
		writeError(w, h.logger, http.StatusInternalServerError, "internal server error", "")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, fromResult(result))
}

// Quote handles POST /loan/quote.
func (h *LoanHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var input domain.QuoteInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.quotes.Quote(input)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid quote request", err.Error())
		return
	}

	writeJSON(w, h.logger, http.StatusOK, result)
}

// GetProfile handles GET /profile/{customerID}.
func (h *LoanHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	customerID := chi.URLParam(r, "customerID")

	profile, err := h.service.Profile(ctx, customerID)
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, h.logger, http.StatusNotFound, "Customer not found", "")
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "profile lookup failed", "customer_id", customerID, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "internal server error", "")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, profile)
}

// ListDecisions handles GET /customers/{customerID}/decisions.
func (h *LoanHandler) ListDecisions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	customerID := chi.URLParam(r, "customerID")

	records, err := h.service.History(ctx, customerID)
	if err != nil {
		h.logger.ErrorContext(ctx, "decision history lookup failed", "customer_id", customerID, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "internal server error", "")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, decisionHistoryResponse{
		CustomerID: customerID,
		Decisions:  records,
	})
}
