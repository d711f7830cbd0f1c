package bizerror

import (
	"errors"
	"net/http"

	"inventech/common"
)

var (
	// ErrCatalogUnavailable: one or more reference lists failed to load, the
	// creation form must not become interactive.
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// ErrEquipmentFetchFailed: the equipment list for a chosen type failed to
	// load. Non fatal, the pool stays empty until the type is reselected.
	ErrEquipmentFetchFailed = errors.New("equipment fetch failed")

	// ErrInvalidRecurrenceInterval: custom recurrence without a positive
	// interval in days.
	ErrInvalidRecurrenceInterval = errors.New("invalid recurrence interval")

	ErrUnknownRecurrencePolicy = errors.New("unknown recurrence policy")

	// ErrInvalidTransition: lifecycle operation attempted from a state the
	// work order state machine does not allow it from.
	ErrInvalidTransition = errors.New("invalid transition")

	ErrUnknownState = errors.New("unknown state")

	ErrNotFound = errors.New("record not found")

	// ErrEquipmentPoolLoading: equipment selection attempted while the scoped
	// equipment fetch is still in flight.
	ErrEquipmentPoolLoading = errors.New("equipment pool is loading")
)

// ErrWorkOrderInvalid reports a violated work order invariant: a missing
// required field or an assignment reference outside its allowed scope.
type ErrWorkOrderInvalid struct {
	Reason string
}

func (e *ErrWorkOrderInvalid) Error() string {
	return "invalid work order: " + e.Reason
}

func (e *ErrWorkOrderInvalid) Respond() *common.BizErrorDetail {
	return &common.BizErrorDetail{Status: http.StatusBadRequest,
		Code: "workorder.validation_failed", Message: e.Reason}
}

// ErrRemoteOperation wraps a failed create or transition call against the
// persistence API. The operation is abandoned, never retried.
type ErrRemoteOperation struct {
	Cause error
}

func (e *ErrRemoteOperation) Error() string {
	if e.Cause != nil {
		return "remote operation failed: " + e.Cause.Error()
	}
	return "remote operation failed"
}

func (e *ErrRemoteOperation) Unwrap() error {
	return e.Cause
}

func (e *ErrRemoteOperation) Respond() *common.BizErrorDetail {
	return &common.BizErrorDetail{Status: http.StatusBadGateway,
		Code: "remote.operation_failed", Message: e.Error(), Cause: e.Cause}
}
