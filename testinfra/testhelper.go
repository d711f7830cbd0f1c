package testinfra

import (
	"net/http"
	"net/http/httptest"

	"inventech/common"
	"inventech/domain"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
)

func ExecuteRequest(req *http.Request, router *gin.Engine) (int, string, *httptest.ResponseRecorder) {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder.Code, recorder.Body.String(), recorder
}

// BuildCatalog returns a reference catalog with one grouped type (HVAC), one
// ungrouped type and technicians inside and outside the group.
func BuildCatalog() *domain.Catalog {
	return &domain.Catalog{
		EquipmentTypes: []domain.EquipmentType{
			{ID: 1, Name: "Air Conditioner", MaintenanceGroupID: 10},
			{ID: 2, Name: "Printer"},
		},
		Technicians: []domain.Technician{
			{ID: 100, Name: "Ana Souza", MaintenanceGroupID: 10},
			{ID: 101, Name: "Bruno Lima", MaintenanceGroupID: 10},
			{ID: 102, Name: "Carla Mendes", MaintenanceGroupID: 20},
		},
		MaintenanceGroups: []domain.MaintenanceGroup{
			{ID: 10, Name: "HVAC"},
			{ID: 20, Name: "IT"},
		},
	}
}

// BuildEquipment returns equipment scoped to the HVAC type of BuildCatalog.
func BuildEquipment() []domain.Equipment {
	return []domain.Equipment{
		{ID: 200, Name: "Split AC 9000", EquipmentTypeID: 1, SectorID: 300, SectorName: "Radiology"},
		{ID: 201, Name: "Split AC 12000", EquipmentTypeID: 1, SectorID: 301, SectorName: "Reception"},
	}
}

// BuildWorkOrderDetail builds a detail in the given state with sensible
// defaults for listing tests.
func BuildWorkOrderDetail(id uint64, stateName string, preventive bool, priority domain.Priority) domain.WorkOrderDetail {
	detail := domain.WorkOrderDetail{
		WorkOrder: domain.WorkOrder{
			ID:          types.ID(id),
			Description: "work order " + string(priority),
			Preventive:  preventive,
			Priority:    priority,
			StateName:   stateName,
			CreateTime:  common.CurrentTimestamp(),
		},
		Equipment:  domain.Equipment{ID: 200, Name: "Split AC 9000", EquipmentTypeID: 1, SectorID: 300},
		Technician: domain.Technician{ID: 100, Name: "Ana Souza", MaintenanceGroupID: 10},
	}
	if stateFound, found := domain.WorkOrderStateMachine.FindState(stateName); found {
		detail.State = stateFound
	}
	return detail
}
