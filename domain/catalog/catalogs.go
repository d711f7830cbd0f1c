package catalog

import (
	"context"
	"time"

	"inventech/bizerror"
	"inventech/client/cmms"
	"inventech/common"
	"inventech/domain"

	"github.com/patrickmn/go-cache"
)

var (
	LoadCatalogFunc = LoadCatalog
)

const CatalogExpiration = 5 * time.Minute

var catalogCache = cache.New(CatalogExpiration, 1*time.Minute)

const catalogCacheKey = "catalog"

// LoadCatalog fetches the reference lists needed to populate the creation
// form selections. All three lists must load or the whole operation fails;
// callers must not render dependent selections on failure.
func LoadCatalog(ctx context.Context) (*domain.Catalog, error) {
	if value, found := catalogCache.Get(catalogCacheKey); found {
		if cached, ok := value.(*domain.Catalog); ok {
			return cached, nil
		}
	}

	equipmentTypes, err := cmms.GetEquipmentTypesFunc(ctx)
	if err != nil {
		common.Log.Warnf("equipment types fetch failed: %v", err)
		return nil, bizerror.ErrCatalogUnavailable
	}
	technicians, err := cmms.GetTechniciansFunc(ctx)
	if err != nil {
		common.Log.Warnf("technicians fetch failed: %v", err)
		return nil, bizerror.ErrCatalogUnavailable
	}
	groups, err := cmms.GetMaintenanceGroupsFunc(ctx)
	if err != nil {
		common.Log.Warnf("maintenance groups fetch failed: %v", err)
		return nil, bizerror.ErrCatalogUnavailable
	}

	loaded := &domain.Catalog{
		EquipmentTypes:    equipmentTypes,
		Technicians:       technicians,
		MaintenanceGroups: groups,
	}
	catalogCache.Set(catalogCacheKey, loaded, cache.DefaultExpiration)
	return loaded, nil
}

// InvalidateCatalog drops the cached reference lists so the next load hits
// the persistence API again.
func InvalidateCatalog() {
	catalogCache.Delete(catalogCacheKey)
}
