package domain

import (
	"inventech/common"
	"inventech/domain/state"

	"github.com/fundwit/go-commons/types"
)

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

const (
	KindPreventive = "PREVENTIVE"
	KindCorrective = "CORRECTIVE"
)

var StatusOpen = state.State{Name: "OPEN", Category: state.InBacklog, Order: 1}
var StatusInProgress = state.State{Name: "IN_PROGRESS", Category: state.InProcess, Order: 2}
var StatusConcluded = state.State{Name: "CONCLUDED", Category: state.Done, Order: 3}
var StatusCancelled = state.State{Name: "CANCELLED", Category: state.Rejected, Order: 4}

const (
	TransitionStart    = "start"
	TransitionCancel   = "cancel"
	TransitionConclude = "conclude"
)

// WorkOrderStateMachine: cancel is reachable from OPEN only, CONCLUDED and
// CANCELLED have no outgoing transitions.
var WorkOrderStateMachine = state.NewStateMachine(
	[]state.State{StatusOpen, StatusInProgress, StatusConcluded, StatusCancelled},
	[]state.Transition{
		{Name: TransitionStart, From: StatusOpen.Name, To: StatusInProgress.Name},
		{Name: TransitionCancel, From: StatusOpen.Name, To: StatusCancelled.Name},
		{Name: TransitionConclude, From: StatusInProgress.Name, To: StatusConcluded.Name},
	})

// WorkOrder is a maintenance request against one equipment instance.
type WorkOrder struct {
	ID types.ID `json:"id"`

	Description string   `json:"description"`
	Preventive  bool     `json:"preventive"`
	Priority    Priority `json:"priority"`
	StateName   string   `json:"status"`

	EquipmentTypeID types.ID `json:"equipmentTypeId"`
	EquipmentID     types.ID `json:"equipmentId"`
	TechnicianID    types.ID `json:"technicianId"`
	SectorID        types.ID `json:"sectorId,omitempty"`

	ScheduledAt     common.Timestamp `json:"scheduledAt"`
	Recurrence      RecurrencePolicy `json:"recurrence,omitempty"`
	IntervalDays    int              `json:"intervalDays,omitempty"`
	OccurrenceCount int              `json:"occurrenceCount,omitempty"`

	CreateTime common.Timestamp `json:"createdAt"`
	BeginTime  common.Timestamp `json:"startedAt"`
	FinishTime common.Timestamp `json:"finishedAt"`
	CancelTime common.Timestamp `json:"cancelledAt"`

	Resolution      string          `json:"resolutionText,omitempty"`
	MaintenanceCost float64         `json:"maintenanceCost,omitempty"`
	Attachments     []AttachmentRef `json:"attachments,omitempty"`
}

func (w *WorkOrder) Kind() string {
	if w.Preventive {
		return KindPreventive
	}
	return KindCorrective
}

// AttachmentRef is an opaque reference to a stored file, owned by the
// external file storage.
type AttachmentRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// WorkOrderDetail carries the work order together with the referenced
// equipment and technician, as returned by the persistence API listing.
type WorkOrderDetail struct {
	WorkOrder

	Equipment  Equipment   `json:"equipment"`
	Technician Technician  `json:"technician"`
	State      state.State `json:"state"`
}

type WorkOrderCreation struct {
	Description string   `json:"description" validate:"required"`
	Preventive  bool     `json:"preventive"`
	Priority    Priority `json:"priority" validate:"required,oneof=LOW MEDIUM HIGH URGENT"`

	EquipmentTypeID types.ID `json:"equipmentTypeId" validate:"required"`
	EquipmentID     types.ID `json:"equipmentId" validate:"required"`
	TechnicianID    types.ID `json:"technicianId" validate:"required"`
	SectorID        types.ID `json:"sectorId"`

	ScheduledAt     common.Timestamp `json:"scheduledAt"`
	Recurrence      RecurrencePolicy `json:"recurrence"`
	IntervalDays    int              `json:"intervalDays"`
	OccurrenceCount int              `json:"occurrenceCount"`
}

func (c *WorkOrderCreation) Kind() string {
	if c.Preventive {
		return KindPreventive
	}
	return KindCorrective
}

type WorkOrderConclusion struct {
	Resolution      string  `json:"resolutionText" validate:"required"`
	MaintenanceCost float64 `json:"maintenanceCost" validate:"gte=0"`
}
