package listing

import (
	"strings"

	"inventech/domain"
)

const DefaultPageSize = 10

// Page is one pagination window over a filtered collection.
type Page struct {
	List       []domain.WorkOrderDetail `json:"data"`
	Total      int                      `json:"total"`
	PageNumber int                      `json:"page"`
	PageSize   int                      `json:"pageSize"`
	TotalPages int                      `json:"totalPages"`
}

// FilterWorkOrders keeps the orders matching every specified dimension of the
// query. The search term is a case-insensitive substring match against the
// description, the equipment name or the technician name.
func FilterWorkOrders(orders []domain.WorkOrderDetail, query domain.WorkOrderQuery) []domain.WorkOrderDetail {
	matched := []domain.WorkOrderDetail{}
	for _, order := range orders {
		if matches(order, query) {
			matched = append(matched, order)
		}
	}
	return matched
}

func matches(order domain.WorkOrderDetail, query domain.WorkOrderQuery) bool {
	if query.Status != "" && order.StateName != query.Status {
		return false
	}
	if query.Kind != "" && order.Kind() != query.Kind {
		return false
	}
	if query.Priority != "" && order.Priority != query.Priority {
		return false
	}
	if !query.DateFrom.IsZero() && order.CreateTime.Time().Before(query.DateFrom) {
		return false
	}
	if !query.DateTo.IsZero() && order.CreateTime.Time().After(query.DateTo) {
		return false
	}
	if query.Search != "" {
		term := strings.ToLower(query.Search)
		if !strings.Contains(strings.ToLower(order.Description), term) &&
			!strings.Contains(strings.ToLower(order.Equipment.Name), term) &&
			!strings.Contains(strings.ToLower(order.Technician.Name), term) {
			return false
		}
	}
	return true
}

// Paginate slices a fixed size window out of the collection. An out of range
// page number clamps to the last valid page; totalPages is at least 1 even
// for an empty collection.
func Paginate(orders []domain.WorkOrderDetail, pageSize, pageNumber int) Page {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	total := len(orders)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageNumber > totalPages {
		pageNumber = totalPages
	}

	begin := (pageNumber - 1) * pageSize
	if begin > total {
		begin = total
	}
	end := begin + pageSize
	if end > total {
		end = total
	}

	list := make([]domain.WorkOrderDetail, end-begin)
	copy(list, orders[begin:end])
	return Page{List: list, Total: total, PageNumber: pageNumber, PageSize: pageSize, TotalPages: totalPages}
}
