package listing

import (
	"inventech/domain"
)

// Statistics are summary counts over the full, unfiltered collection, so
// dashboard totals stay stable while the user paginates or searches.
type Statistics struct {
	Total      int                     `json:"total"`
	ByStatus   map[string]int          `json:"byStatus"`
	ByPriority map[domain.Priority]int `json:"byPriority"`
	Preventive int                     `json:"preventive"`
	Corrective int                     `json:"corrective"`

	// ConcludedCost sums maintenanceCost over CONCLUDED orders; orders
	// without a cost contribute 0.
	ConcludedCost float64 `json:"concludedCost"`
}

func Aggregate(orders []domain.WorkOrderDetail) Statistics {
	stats := Statistics{
		Total:      len(orders),
		ByStatus:   map[string]int{},
		ByPriority: map[domain.Priority]int{},
	}
	for _, order := range orders {
		stats.ByStatus[order.StateName]++
		stats.ByPriority[order.Priority]++
		if order.Preventive {
			stats.Preventive++
		} else {
			stats.Corrective++
		}
		if order.StateName == domain.StatusConcluded.Name {
			stats.ConcludedCost += order.MaintenanceCost
		}
	}
	return stats
}
