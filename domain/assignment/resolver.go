package assignment

import (
	"context"
	"sync"

	"inventech/bizerror"
	"inventech/client/cmms"
	"inventech/common"
	"inventech/domain"

	"github.com/fundwit/go-commons/types"
)

// Form holds the dependent selection chain of one work order creation form:
// equipment type, technician pool, equipment pool and derived sector.
type Form struct {
	ID types.ID

	EquipmentTypeID types.ID
	TechnicianID    types.ID
	EquipmentID     types.ID
	SectorID        types.ID

	TechnicianPool []domain.Technician
	EquipmentPool  []domain.Equipment

	EquipmentLoading     bool
	EquipmentFetchFailed bool

	catalog *domain.Catalog

	// pendingTypeID tags the latest equipment fetch; a response for any other
	// type id is stale and must be discarded.
	pendingTypeID types.ID

	mu sync.Mutex
}

// FormView is a lock free snapshot of a Form, for handing to the
// presentation layer.
type FormView struct {
	ID types.ID `json:"id"`

	EquipmentTypeID types.ID `json:"equipmentTypeId,omitempty"`
	TechnicianID    types.ID `json:"technicianId,omitempty"`
	EquipmentID     types.ID `json:"equipmentId,omitempty"`
	SectorID        types.ID `json:"sectorId,omitempty"`

	TechnicianPool []domain.Technician `json:"technicianPool"`
	EquipmentPool  []domain.Equipment  `json:"equipmentPool"`

	EquipmentLoading     bool `json:"equipmentLoading"`
	EquipmentFetchFailed bool `json:"equipmentFetchFailed"`
}

func newForm(id types.ID, c *domain.Catalog) *Form {
	pool := make([]domain.Technician, len(c.Technicians))
	copy(pool, c.Technicians)
	return &Form{ID: id, TechnicianPool: pool, catalog: c}
}

// SelectEquipmentType narrows the technician pool to the chosen type's
// maintenance group, clears selections which cannot survive the change and
// replaces the equipment pool with equipment scoped to the type.
//
// When invoked again before a prior equipment fetch resolves, the stale
// response is discarded: last writer wins by type id, not by arrival order.
func (f *Form) SelectEquipmentType(ctx context.Context, typeID types.ID) error {
	f.mu.Lock()
	equipmentType, found := f.catalog.FindEquipmentType(typeID)
	if !found {
		f.mu.Unlock()
		return bizerror.ErrNotFound
	}

	f.EquipmentTypeID = typeID
	f.TechnicianPool = f.catalog.EligibleTechnicians(equipmentType)
	if f.TechnicianID != 0 && !technicianInPool(f.TechnicianPool, f.TechnicianID) {
		f.TechnicianID = 0
	}

	// equipment is strictly type scoped, the old selection cannot be valid
	f.EquipmentID = 0
	f.SectorID = 0
	f.EquipmentPool = nil
	f.EquipmentLoading = true
	f.EquipmentFetchFailed = false
	f.pendingTypeID = typeID
	f.mu.Unlock()

	equipment, err := cmms.GetEquipmentFunc(ctx, typeID)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pendingTypeID != typeID {
		// superseded by a later selection, discard
		return nil
	}
	f.EquipmentLoading = false
	if err != nil {
		common.Log.Warnf("equipment fetch for type %v failed: %v", typeID, err)
		f.EquipmentPool = []domain.Equipment{}
		f.EquipmentFetchFailed = true
		return bizerror.ErrEquipmentFetchFailed
	}
	f.EquipmentPool = equipment
	return nil
}

// SelectEquipment records the equipment choice and derives the sector. The
// sector is never set directly by a caller.
func (f *Form) SelectEquipment(equipmentID types.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.EquipmentLoading {
		return bizerror.ErrEquipmentPoolLoading
	}
	for _, equipment := range f.EquipmentPool {
		if equipment.ID == equipmentID {
			f.EquipmentID = equipment.ID
			f.SectorID = equipment.SectorID
			return nil
		}
	}
	return bizerror.ErrNotFound
}

// SelectTechnician records the technician choice, no cascading effect.
func (f *Form) SelectTechnician(technicianID types.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !technicianInPool(f.TechnicianPool, technicianID) {
		return bizerror.ErrNotFound
	}
	f.TechnicianID = technicianID
	return nil
}

func (f *Form) View() FormView {
	f.mu.Lock()
	defer f.mu.Unlock()

	technicianPool := make([]domain.Technician, len(f.TechnicianPool))
	copy(technicianPool, f.TechnicianPool)
	equipmentPool := make([]domain.Equipment, len(f.EquipmentPool))
	copy(equipmentPool, f.EquipmentPool)

	return FormView{
		ID:                   f.ID,
		EquipmentTypeID:      f.EquipmentTypeID,
		TechnicianID:         f.TechnicianID,
		EquipmentID:          f.EquipmentID,
		SectorID:             f.SectorID,
		TechnicianPool:       technicianPool,
		EquipmentPool:        equipmentPool,
		EquipmentLoading:     f.EquipmentLoading,
		EquipmentFetchFailed: f.EquipmentFetchFailed,
	}
}

func technicianInPool(pool []domain.Technician, id types.ID) bool {
	for _, technician := range pool {
		if technician.ID == id {
			return true
		}
	}
	return false
}
