package assignment

import (
	"context"
	"time"

	"inventech/bizerror"
	"inventech/domain"
	"inventech/domain/catalog"
	"inventech/idgen"

	"github.com/fundwit/go-commons/types"
	"github.com/patrickmn/go-cache"
	"github.com/sony/sonyflake"
)

var (
	OpenFormFunc = OpenForm
	FindFormFunc = FindForm
)

var formIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

const FormExpiration = 30 * time.Minute

var formCache = cache.New(FormExpiration, 5*time.Minute)

// OpenForm loads the reference catalog and registers a fresh creation form.
// One form is owned by one client session, there are no concurrent writers
// besides the staleness protected equipment fetch.
func OpenForm(ctx context.Context) (*Form, error) {
	loaded, err := catalog.LoadCatalogFunc(ctx)
	if err != nil {
		return nil, err
	}
	form := NewForm(loaded)
	formCache.Set(form.ID.String(), form, cache.DefaultExpiration)
	return form, nil
}

// NewForm builds an unregistered form over a given catalog.
func NewForm(c *domain.Catalog) *Form {
	return newForm(idgen.NextID(formIdWorker), c)
}

func FindForm(id types.ID) (*Form, error) {
	value, found := formCache.Get(id.String())
	if !found {
		return nil, bizerror.ErrNotFound
	}
	form, ok := value.(*Form)
	if !ok {
		return nil, bizerror.ErrNotFound
	}
	return form, nil
}

func CloseForm(id types.ID) {
	formCache.Delete(id.String())
}
