package domain

import (
	"github.com/fundwit/go-commons/types"
)

// EquipmentType is a category of equipment, optionally aligned to one
// maintenance group.
type EquipmentType struct {
	ID                 types.ID `json:"id"`
	Name               string   `json:"name"`
	MaintenanceGroupID types.ID `json:"maintenanceGroupId,omitempty"`
}

type MaintenanceGroup struct {
	ID   types.ID `json:"id"`
	Name string   `json:"name"`
}

// Technician belongs to at most one maintenance group.
type Technician struct {
	ID                 types.ID `json:"id"`
	Name               string   `json:"name"`
	MaintenanceGroupID types.ID `json:"maintenanceGroupId,omitempty"`
}

// Equipment belongs to exactly one equipment type and, transitively, to a
// sector.
type Equipment struct {
	ID              types.ID `json:"id"`
	Name            string   `json:"name"`
	EquipmentTypeID types.ID `json:"equipmentTypeId"`
	SectorID        types.ID `json:"sectorId"`
	SectorName      string   `json:"sectorName,omitempty"`
}

// Catalog bundles the reference lists required before a creation form may
// render its dependent selections.
type Catalog struct {
	EquipmentTypes    []EquipmentType    `json:"equipmentTypes"`
	Technicians       []Technician       `json:"technicians"`
	MaintenanceGroups []MaintenanceGroup `json:"maintenanceGroups"`
}

func (c *Catalog) FindEquipmentType(id types.ID) (EquipmentType, bool) {
	for _, t := range c.EquipmentTypes {
		if t.ID == id {
			return t, true
		}
	}
	return EquipmentType{}, false
}

func (c *Catalog) FindTechnician(id types.ID) (Technician, bool) {
	for _, t := range c.Technicians {
		if t.ID == id {
			return t, true
		}
	}
	return Technician{}, false
}

// EligibleTechnicians returns the technicians selectable for an equipment
// type: the members of its maintenance group, or every technician when the
// type carries no group.
func (c *Catalog) EligibleTechnicians(equipmentType EquipmentType) []Technician {
	if equipmentType.MaintenanceGroupID == 0 {
		pool := make([]Technician, len(c.Technicians))
		copy(pool, c.Technicians)
		return pool
	}
	pool := []Technician{}
	for _, t := range c.Technicians {
		if t.MaintenanceGroupID == equipmentType.MaintenanceGroupID {
			pool = append(pool, t)
		}
	}
	return pool
}
