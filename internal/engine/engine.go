package engine

import (
	"fmt"
	"math"
	"math/bits"
	"time"

	"github.com/google/uuid"

	"load-simulation/internal/model"
	"load-simulation/internal/scenario"
)

const (
	CodeNoCalls               = "NO_CALLS"
	CodeInvalidExecutionCount = "INVALID_EXECUTION_COUNT"
	CodeUnderpricedNotMined   = "UNDERPRICED_NOT_MINED"
	CodeTransactionOverflow   = "TRANSACTION_COUNT_OVERFLOW"
)

// Process builds the execution plan of req. Calls are planned in order and
// planning stops at the first call carrying a CRITICAL message.
func Process(req *model.Request) *model.Plan {
	start := time.Now()

	var allMessages []model.PlanMessage
	var plannedCalls []model.PlannedCall
	byType := make(map[scenario.Type]int)
	total := 0
	outcome := model.OutcomeSuccess

	if len(req.Calls) == 0 {
		allMessages = append(allMessages, model.PlanMessage{
			ID:      0,
			Level:   model.LevelCritical,
			Code:    CodeNoCalls,
			Message: "The request contains no calls",
		})
		outcome = model.OutcomeFailure
	}

	for i, call := range req.Calls {
		planned, msgs := planCall(i, call)
		if len(msgs) == 0 || msgs[0].Level != model.LevelCritical {
			if _, ok := addChecked(total, planned.Transactions); !ok {
				msgs = append(msgs, overflowMessage(i))
			}
		}

		hasCritical := false
		for _, m := range msgs {
			m.ID = len(allMessages)
			allMessages = append(allMessages, m)
			planned.PlanMessageIndexes = append(planned.PlanMessageIndexes, m.ID)
			if m.Level == model.LevelCritical {
				hasCritical = true
			}
		}
		plannedCalls = append(plannedCalls, planned)

		if hasCritical {
			outcome = model.OutcomeFailure
			break
		}

		byType[planned.ScenarioType] += planned.Transactions
		total += planned.Transactions
	}

	// A failed plan reports what was read but commits to no totals.
	if outcome == model.OutcomeFailure {
		byType = map[scenario.Type]int{}
		total = 0
	}

	elapsed := time.Since(start)
	now := time.Now().UTC()

	if allMessages == nil {
		allMessages = []model.PlanMessage{}
	}
	if plannedCalls == nil {
		plannedCalls = []model.PlannedCall{}
	}

	return &model.Plan{
		PlanMetadata: model.PlanMetadata{
			PlanID:          uuid.New().String(),
			RequestID:       req.ID,
			RequestName:     req.Name,
			PlanStartedAt:   now.Add(-elapsed).Format(time.RFC3339),
			PlanCompletedAt: now.Format(time.RFC3339),
			PlanDurationMs:  elapsed.Milliseconds(),
			PlanOutcome:     outcome,
		},
		PlanResult: model.PlanResult{
			Messages:           allMessages,
			Calls:              plannedCalls,
			TransactionsByType: byType,
			TotalTransactions:  total,
		},
	}
}

func planCall(index int, call model.Call) (model.PlannedCall, []model.PlanMessage) {
	planned := model.PlannedCall{
		CallIndex:     index,
		NbOfExecution: call.NbOfExecution,
	}

	s, err := scenario.FromJSON(call.Scenario)
	if err != nil {
		// The tag is still worth reporting when only the variant fields are bad.
		if t, terr := scenario.Discriminator(call.Scenario); terr == nil {
			planned.ScenarioType = t
		}
		code := scenario.ErrorCode(err)
		if code == "" {
			code = scenario.CodeMalformedDocument
		}
		return planned, []model.PlanMessage{{
			Level:   model.LevelCritical,
			Code:    code,
			Message: fmt.Sprintf("Call %d: %v", index, err),
		}}
	}
	planned.ScenarioType = s.ScenarioType()

	if call.NbOfExecution < 1 {
		return planned, []model.PlanMessage{{
			Level:   model.LevelCritical,
			Code:    CodeInvalidExecutionCount,
			Message: fmt.Sprintf("Call %d: nbOfExecution must be at least 1, got %d", index, call.NbOfExecution),
		}}
	}

	perRun, ok := TransactionsPerRun(s)
	if !ok {
		return planned, []model.PlanMessage{overflowMessage(index)}
	}
	planned.TransactionsPerRun = perRun
	if planned.Transactions, ok = mulChecked(perRun, call.NbOfExecution); !ok {
		return planned, []model.PlanMessage{overflowMessage(index)}
	}

	var msgs []model.PlanMessage
	if _, ok := s.(scenario.UnderPricedTransaction); ok {
		msgs = append(msgs, model.PlanMessage{
			Level:   model.LevelWarning,
			Code:    CodeUnderpricedNotMined,
			Message: fmt.Sprintf("Call %d: %d underpriced transactions are not expected to be mined", index, planned.Transactions),
		})
	}
	return planned, msgs
}

// TransactionsPerRun is the number of transactions one execution of s sends.
// It reports false when the count does not fit in an int.
func TransactionsPerRun(s scenario.Scenario) (int, bool) {
	switch v := s.(type) {
	case scenario.ContractCall:
		return v.NbCalls, true
	case scenario.RoundRobinMoneyTransfer:
		return mulChecked(v.NbTransfers, v.NbWallets)
	case scenario.SelfTransactionWithPayload:
		return v.NbTransfers, true
	case scenario.SelfTransactionWithRandomPayload:
		return v.NbTransfers, true
	case scenario.UnderPricedTransaction:
		return v.NbTransfers, true
	default:
		panic(fmt.Sprintf("engine: unhandled scenario type %s", s.ScenarioType()))
	}
}

func overflowMessage(index int) model.PlanMessage {
	return model.PlanMessage{
		Level:   model.LevelCritical,
		Code:    CodeTransactionOverflow,
		Message: fmt.Sprintf("Call %d: transaction count exceeds %d", index, math.MaxInt),
	}
}

// mulChecked multiplies two non-negative counts.
func mulChecked(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if hi != 0 || lo > math.MaxInt {
		return 0, false
	}
	return int(lo), true
}

// addChecked adds two non-negative counts.
func addChecked(a, b int) (int, bool) {
	if a < 0 || b < 0 || a > math.MaxInt-b {
		return 0, false
	}
	return a + b, true
}
