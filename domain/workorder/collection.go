package workorder

import (
	"sync"

	"inventech/bizerror"
	"inventech/domain"

	"github.com/fundwit/go-commons/types"
)

// The in-memory collection is mutated only by whole collection replacement
// after a successful fetch or a successful lifecycle transition, never by
// fine grained in-place mutation.
var (
	collectionMu sync.RWMutex
	collection   []domain.WorkOrderDetail
)

func ReplaceCollection(orders []domain.WorkOrderDetail) {
	replaced := make([]domain.WorkOrderDetail, len(orders))
	copy(replaced, orders)

	collectionMu.Lock()
	collection = replaced
	collectionMu.Unlock()
}

func CachedWorkOrders() []domain.WorkOrderDetail {
	collectionMu.RLock()
	defer collectionMu.RUnlock()

	orders := make([]domain.WorkOrderDetail, len(collection))
	copy(orders, collection)
	return orders
}

func findCached(id types.ID) (domain.WorkOrderDetail, error) {
	collectionMu.RLock()
	defer collectionMu.RUnlock()

	for _, order := range collection {
		if order.ID == id {
			return order, nil
		}
	}
	return domain.WorkOrderDetail{}, bizerror.ErrNotFound
}

func replaceCachedOrder(updated *domain.WorkOrder) {
	collectionMu.RLock()
	replaced := make([]domain.WorkOrderDetail, len(collection))
	copy(replaced, collection)
	collectionMu.RUnlock()

	for i := range replaced {
		if replaced[i].ID == updated.ID {
			replaced[i].WorkOrder = *updated
			if stateFound, found := domain.WorkOrderStateMachine.FindState(updated.StateName); found {
				replaced[i].State = stateFound
			}
			break
		}
	}

	collectionMu.Lock()
	collection = replaced
	collectionMu.Unlock()
}
