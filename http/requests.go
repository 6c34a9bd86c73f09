package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"loan-decision/domain"
)

type missingFieldError struct {
	field string
}

func (e *missingFieldError) Error() string {
	return "Missing field: " + e.field
}

// applyRequest mirrors the POST /loan/apply body. Fields stay raw so that
// numbers sent as strings are accepted and absent fields can be reported.
type applyRequest struct {
	CustomerID        json.RawMessage `json:"customer_id"`
	DesiredLoanAmount json.RawMessage `json:"desired_loan_amount"`
	TermMonths        json.RawMessage `json:"term_months"`
}

func (r applyRequest) toDomain() (domain.ApplyRequest, error) {
	for _, f := range []struct {
		name string
		raw  json.RawMessage
	}{
		{"customer_id", r.CustomerID},
		{"desired_loan_amount", r.DesiredLoanAmount},
		{"term_months", r.TermMonths},
	} {
		if isAbsent(f.raw) {
			return domain.ApplyRequest{}, &missingFieldError{field: f.name}
		}
	}

	customerID, err := parseString(r.CustomerID)
	if err != nil {
		return domain.ApplyRequest{}, fmt.Errorf("customer_id: %w", err)
	}
	amount, err := parseFloat(r.DesiredLoanAmount)
	if err != nil {
		return domain.ApplyRequest{}, fmt.Errorf("desired_loan_amount: %w", err)
	}
	term, err := parseInt(r.TermMonths)
	if err != nil {
		return domain.ApplyRequest{}, fmt.Errorf("term_months: %w", err)
	}

	return domain.ApplyRequest{
		CustomerID:        customerID,
		DesiredLoanAmount: amount,
		TermMonths:        term,
	}, nil
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// parseString accepts a JSON string or number.
func parseString(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s), nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), nil
	}
	return "", errors.New("must be a string")
}

// parseFloat accepts a JSON number or a numeric string.
func parseFloat(raw json.RawMessage) (float64, error) {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f, nil
		}
	}
	return 0, errors.New("must be numeric")
}

// parseInt accepts a JSON number, truncating any fraction, or an integer string.
func parseInt(raw json.RawMessage) (int, error) {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		if math.Abs(f) > math.MaxInt32 {
			return 0, errors.New("out of range")
		}
		return int(f), nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i, nil
		}
	}
	return 0, errors.New("must be an integer")
}
