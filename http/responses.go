package http

import "loan-decision/domain"

type decisionResponse struct {
	domain.Decision
	FinalApprove bool `json:"final_approve"`
}

type applyResponse struct {
	Decision decisionResponse    `json:"decision"`
	Context  domain.ApplyContext `json:"context"`
}

func fromResult(r domain.ApplyResult) applyResponse {
	return applyResponse{
		Decision: decisionResponse{Decision: r.Decision, FinalApprove: r.FinalApprove},
		Context:  r.Context,
	}
}

type decisionHistoryResponse struct {
	CustomerID string               `json:"customer_id"`
	Decisions  []domain.AuditRecord `json:"decisions"`
}
