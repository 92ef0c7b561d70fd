package model

// PlanMessage is one finding raised while planning a request. ID is its
// position in the plan's message list, referenced by PlannedCall.
type PlanMessage struct {
	ID      int    `json:"id"`
	Level   string `json:"level"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// A CRITICAL message fails the plan; a WARNING does not.
const (
	LevelCritical = "CRITICAL"
	LevelWarning  = "WARNING"
)
