package workorder

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"inventech/bizerror"
	"inventech/client/cmms"
	"inventech/common"
	"inventech/domain"
	"inventech/domain/catalog"
	"inventech/domain/listing"
	"inventech/domain/recurrence"

	"github.com/fundwit/go-commons/types"
	"github.com/go-playground/validator/v10"
)

var (
	CreateWorkOrderFunc   = CreateWorkOrder
	StartWorkOrderFunc    = StartWorkOrder
	CancelWorkOrderFunc   = CancelWorkOrder
	ConcludeWorkOrderFunc = ConcludeWorkOrder
	ListWorkOrdersFunc    = ListWorkOrders
)

var validate = validator.New()

// ListResult is one page of the filtered collection plus statistics over the
// full collection, so dashboard totals stay stable while paginating.
type ListResult struct {
	Page  listing.Page       `json:"page"`
	Stats listing.Statistics `json:"stats"`
}

// CreateWorkOrder validates the creation against the reference catalog and
// submits one multipart request. Recurrence expansion happens server side.
func CreateWorkOrder(ctx context.Context, c *domain.WorkOrderCreation, attachments []cmms.AttachmentUpload) (*domain.WorkOrder, error) {
	if err := validate.Struct(c); err != nil {
		return nil, err
	}
	if strings.TrimSpace(c.Description) == "" {
		return nil, &bizerror.ErrWorkOrderInvalid{Reason: "description must not be blank"}
	}
	if c.Preventive && c.ScheduledAt.IsZero() {
		return nil, &bizerror.ErrWorkOrderInvalid{Reason: "preventive work orders require a scheduled date"}
	}
	if !c.Preventive && c.Recurrence.Recurring() {
		return nil, &bizerror.ErrWorkOrderInvalid{Reason: "recurrence requires a preventive work order"}
	}

	plan, err := recurrence.PlanRecurrence(c.Recurrence, c.IntervalDays, c.OccurrenceCount)
	if err != nil {
		return nil, err
	}

	loaded, err := catalog.LoadCatalogFunc(ctx)
	if err != nil {
		return nil, err
	}
	equipmentType, found := loaded.FindEquipmentType(c.EquipmentTypeID)
	if !found {
		return nil, &bizerror.ErrWorkOrderInvalid{Reason: "unknown equipment type"}
	}
	technician, found := loaded.FindTechnician(c.TechnicianID)
	if !found {
		return nil, &bizerror.ErrWorkOrderInvalid{Reason: "unknown technician"}
	}
	if equipmentType.MaintenanceGroupID != 0 && technician.MaintenanceGroupID != equipmentType.MaintenanceGroupID {
		return nil, &bizerror.ErrWorkOrderInvalid{Reason: "technician does not belong to the equipment type's maintenance group"}
	}

	// equipment is strictly scoped to its type; the sector is derived from
	// the equipment, never taken from the caller
	pool, err := cmms.GetEquipmentFunc(ctx, c.EquipmentTypeID)
	if err != nil {
		common.Log.Warnf("equipment fetch for type %v failed: %v", c.EquipmentTypeID, err)
		return nil, bizerror.ErrEquipmentFetchFailed
	}
	equipmentFound := false
	for _, equipment := range pool {
		if equipment.ID == c.EquipmentID {
			c.SectorID = equipment.SectorID
			equipmentFound = true
			break
		}
	}
	if !equipmentFound {
		return nil, &bizerror.ErrWorkOrderInvalid{Reason: "equipment does not belong to the selected equipment type"}
	}

	created, err := cmms.CreateWorkOrderFunc(ctx, creationFields(c, plan), attachments)
	if err != nil {
		return nil, &bizerror.ErrRemoteOperation{Cause: err}
	}
	return created, nil
}

// StartWorkOrder moves an order from OPEN to IN_PROGRESS.
func StartWorkOrder(ctx context.Context, id types.ID) (*domain.WorkOrder, error) {
	current, err := findCached(id)
	if err != nil {
		return nil, err
	}
	if err := checkTransition(current.StateName, domain.StatusInProgress.Name); err != nil {
		return nil, err
	}
	updated, err := cmms.StartWorkOrderFunc(ctx, id)
	if err != nil {
		return nil, &bizerror.ErrRemoteOperation{Cause: err}
	}
	replaceCachedOrder(updated)
	return updated, nil
}

// CancelWorkOrder moves an order from OPEN to CANCELLED. Cancelling an order
// already in progress is not permitted through this path.
func CancelWorkOrder(ctx context.Context, id types.ID) (*domain.WorkOrder, error) {
	current, err := findCached(id)
	if err != nil {
		return nil, err
	}
	if err := checkTransition(current.StateName, domain.StatusCancelled.Name); err != nil {
		return nil, err
	}
	updated, err := cmms.CancelWorkOrderFunc(ctx, id)
	if err != nil {
		return nil, &bizerror.ErrRemoteOperation{Cause: err}
	}
	replaceCachedOrder(updated)
	return updated, nil
}

// ConcludeWorkOrder moves an order from IN_PROGRESS to CONCLUDED, uploading
// the resolution, the maintenance cost and any attachments in one submission.
// A blank resolution is rejected even when attachments are present.
func ConcludeWorkOrder(ctx context.Context, id types.ID, conclusion *domain.WorkOrderConclusion, attachments []cmms.AttachmentUpload) (*domain.WorkOrder, error) {
	if err := validate.Struct(conclusion); err != nil {
		return nil, err
	}
	if strings.TrimSpace(conclusion.Resolution) == "" {
		return nil, &bizerror.ErrWorkOrderInvalid{Reason: "resolution text must not be blank"}
	}

	current, err := findCached(id)
	if err != nil {
		return nil, err
	}
	if err := checkTransition(current.StateName, domain.StatusConcluded.Name); err != nil {
		return nil, err
	}

	fields := url.Values{}
	fields.Set("resolutionText", conclusion.Resolution)
	fields.Set("maintenanceCost", strconv.FormatFloat(conclusion.MaintenanceCost, 'f', 2, 64))
	fields.Set("finishedAt", common.CurrentTimestamp().String())

	updated, err := cmms.ConcludeWorkOrderFunc(ctx, id, fields, attachments)
	if err != nil {
		return nil, &bizerror.ErrRemoteOperation{Cause: err}
	}
	replaceCachedOrder(updated)
	return updated, nil
}

// ListWorkOrders fetches the full collection, replaces the cached one and
// derives the requested page plus statistics over the unfiltered set.
func ListWorkOrders(ctx context.Context, query *domain.WorkOrderQuery) (*ListResult, error) {
	orders, err := cmms.QueryWorkOrdersFunc(ctx)
	if err != nil {
		return nil, &bizerror.ErrRemoteOperation{Cause: err}
	}
	if err := ExtendWorkOrders(orders); err != nil {
		return nil, err
	}
	ReplaceCollection(orders)

	filtered := listing.FilterWorkOrders(orders, *query)
	return &ListResult{
		Page:  listing.Paginate(filtered, query.PageSize, query.Page),
		Stats: listing.Aggregate(orders),
	}, nil
}

// ExtendWorkOrders appends WorkOrderDetail.State resolved through the work
// order state machine.
func ExtendWorkOrders(orders []domain.WorkOrderDetail) error {
	for i := range orders {
		stateFound, found := domain.WorkOrderStateMachine.FindState(orders[i].StateName)
		if !found {
			return bizerror.ErrUnknownState
		}
		orders[i].State = stateFound
	}
	return nil
}

func checkTransition(fromState string, toState string) error {
	if _, found := domain.WorkOrderStateMachine.FindState(fromState); !found {
		return bizerror.ErrUnknownState
	}
	if len(domain.WorkOrderStateMachine.AvailableTransitions(fromState, toState)) == 0 {
		return bizerror.ErrInvalidTransition
	}
	return nil
}

func creationFields(c *domain.WorkOrderCreation, plan *recurrence.Plan) url.Values {
	fields := url.Values{}
	fields.Set("description", c.Description)
	fields.Set("kind", c.Kind())
	fields.Set("priority", string(c.Priority))
	fields.Set("equipmentTypeId", c.EquipmentTypeID.String())
	fields.Set("equipmentId", c.EquipmentID.String())
	fields.Set("technicianId", c.TechnicianID.String())
	if c.SectorID != 0 {
		fields.Set("sectorId", c.SectorID.String())
	}
	if !c.ScheduledAt.IsZero() {
		fields.Set("scheduledAt", c.ScheduledAt.String())
	}
	plan.AppendPayloadFields(fields)
	return fields
}
