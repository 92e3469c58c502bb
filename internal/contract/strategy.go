package contract

import "github.com/alexanderramin/dealdesk/internal/domain"

type PlaysResponse struct {
	DealID string                `json:"dealId"`
	Plays  []domain.StrategyPlay `json:"plays"`
}

type ExecuteErrorKind string

const (
	ExecuteErrNotFound    ExecuteErrorKind = "not_found"
	ExecuteErrInvalid     ExecuteErrorKind = "invalid_request"
	ExecuteErrUnavailable ExecuteErrorKind = "unavailable"
	ExecuteErrFailed      ExecuteErrorKind = "execution_failed"
)

// ExecutePlayResult is returned for every execution attempt; failures are
// reported in Error and ErrorKind rather than as a Go error.
type ExecutePlayResult struct {
	Success          bool             `json:"success"`
	PlayID           string           `json:"playId"`
	DealID           string           `json:"dealId"`
	TasksCreated     int              `json:"tasksCreated"`
	ApprovalsCreated int              `json:"approvalsCreated"`
	Error            string           `json:"error,omitempty"`
	ErrorKind        ExecuteErrorKind `json:"errorKind,omitempty"`
}
