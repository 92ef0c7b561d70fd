package model

import "load-simulation/internal/scenario"

type Plan struct {
	PlanMetadata PlanMetadata `json:"plan_metadata"`
	PlanResult   PlanResult   `json:"plan_result"`
}

type PlanMetadata struct {
	PlanID          string `json:"plan_id"`
	RequestID       int    `json:"request_id"`
	RequestName     string `json:"request_name"`
	PlanStartedAt   string `json:"plan_started_at"`
	PlanCompletedAt string `json:"plan_completed_at"`
	PlanDurationMs  int64  `json:"plan_duration_ms"`
	PlanOutcome     string `json:"plan_outcome"`
}

type PlanResult struct {
	Messages           []PlanMessage         `json:"messages"`
	Calls              []PlannedCall         `json:"calls"`
	TransactionsByType map[scenario.Type]int `json:"transactions_by_type"`
	TotalTransactions  int                   `json:"total_transactions"`
}

type PlannedCall struct {
	CallIndex          int           `json:"call_index"`
	ScenarioType       scenario.Type `json:"scenario_type,omitempty"`
	NbOfExecution      int           `json:"nb_of_execution"`
	TransactionsPerRun int           `json:"transactions_per_run"`
	Transactions       int           `json:"transactions"`
	PlanMessageIndexes []int         `json:"plan_message_indexes,omitempty"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

const (
	OutcomeSuccess = "SUCCESS"
	OutcomeFailure = "FAILURE"
)
