package servehttp_test

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"inventech/bizerror"
	"inventech/client/cmms"
	"inventech/domain"
	"inventech/domain/assignment"
	"inventech/servehttp"
	"inventech/testinfra"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
)

func cmmsStubEquipment(pool []domain.Equipment, err error) func() {
	origin := cmms.GetEquipmentFunc
	cmms.GetEquipmentFunc = func(ctx context.Context, typeID types.ID) ([]domain.Equipment, error) {
		return pool, err
	}
	return func() { cmms.GetEquipmentFunc = origin }
}

func buildOrderFormRouter() *gin.Engine {
	router := gin.New()
	router.Use(bizerror.ErrorHandling())
	servehttp.RegisterOrderFormHandler(router)
	return router
}

func TestOrderFormHandler(t *testing.T) {
	RegisterTestingT(t)
	router := buildOrderFormRouter()

	t.Run("should open a creation form with the full technician pool", func(t *testing.T) {
		origin := assignment.OpenFormFunc
		defer func() { assignment.OpenFormFunc = origin }()
		form := assignment.NewForm(testinfra.BuildCatalog())
		assignment.OpenFormFunc = func(ctx context.Context) (*assignment.Form, error) {
			return form, nil
		}

		req, _ := http.NewRequest(http.MethodPost, "/v1/order-forms", nil)
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusCreated))
		Expect(body).To(ContainSubstring(`"id":"` + form.ID.String() + `"`))
		Expect(body).To(ContainSubstring(`"Ana Souza"`))
		Expect(body).To(ContainSubstring(`"Carla Mendes"`))
	})

	t.Run("should respond 503 when the catalog cannot be loaded", func(t *testing.T) {
		origin := assignment.OpenFormFunc
		defer func() { assignment.OpenFormFunc = origin }()
		assignment.OpenFormFunc = func(ctx context.Context) (*assignment.Form, error) {
			return nil, bizerror.ErrCatalogUnavailable
		}

		req, _ := http.NewRequest(http.MethodPost, "/v1/order-forms", nil)
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusServiceUnavailable))
		Expect(body).To(ContainSubstring("catalog.unavailable"))
	})

	t.Run("should respond 404 for an unknown form", func(t *testing.T) {
		origin := assignment.FindFormFunc
		defer func() { assignment.FindFormFunc = origin }()
		assignment.FindFormFunc = func(id types.ID) (*assignment.Form, error) {
			return nil, bizerror.ErrNotFound
		}

		req, _ := http.NewRequest(http.MethodGet, "/v1/order-forms/123", nil)
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusNotFound))
		Expect(body).To(ContainSubstring("common.record_not_found"))
	})

	t.Run("should respond 400 for a malformed form id", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/v1/order-forms/abc", nil)
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusBadRequest))
		Expect(body).To(ContainSubstring("common.bad_param"))
	})
}

func TestOrderFormSelections(t *testing.T) {
	RegisterTestingT(t)
	router := buildOrderFormRouter()

	registerForm := func(form *assignment.Form) func() {
		origin := assignment.FindFormFunc
		assignment.FindFormFunc = func(id types.ID) (*assignment.Form, error) {
			if id == form.ID {
				return form, nil
			}
			return nil, bizerror.ErrNotFound
		}
		return func() { assignment.FindFormFunc = origin }
	}

	t.Run("should narrow the technician pool on an equipment type selection", func(t *testing.T) {
		originFetch := cmmsStubEquipment(testinfra.BuildEquipment(), nil)
		defer originFetch()
		form := assignment.NewForm(testinfra.BuildCatalog())
		defer registerForm(form)()

		body := bytes.NewBufferString(`{"equipmentTypeId": "1"}`)
		req, _ := http.NewRequest(http.MethodPut, "/v1/order-forms/"+form.ID.String()+"/equipment-type", body)
		status, respBody, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusOK))
		Expect(respBody).To(ContainSubstring(`"equipmentTypeId":"1"`))
		Expect(respBody).To(ContainSubstring(`"Split AC 9000"`))
		Expect(respBody).ToNot(ContainSubstring(`"Carla Mendes"`))
	})

	t.Run("should respond 502 when the equipment pool cannot be fetched", func(t *testing.T) {
		originFetch := cmmsStubEquipment(nil, bizerror.ErrEquipmentFetchFailed)
		defer originFetch()
		form := assignment.NewForm(testinfra.BuildCatalog())
		defer registerForm(form)()

		body := bytes.NewBufferString(`{"equipmentTypeId": "1"}`)
		req, _ := http.NewRequest(http.MethodPut, "/v1/order-forms/"+form.ID.String()+"/equipment-type", body)
		status, respBody, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusBadGateway))
		Expect(respBody).To(ContainSubstring("catalog.equipment_fetch_failed"))
	})

	t.Run("should derive the sector on an equipment selection", func(t *testing.T) {
		originFetch := cmmsStubEquipment(testinfra.BuildEquipment(), nil)
		defer originFetch()
		form := assignment.NewForm(testinfra.BuildCatalog())
		defer registerForm(form)()
		Expect(form.SelectEquipmentType(context.Background(), 1)).To(BeNil())

		body := bytes.NewBufferString(`{"equipmentId": "200"}`)
		req, _ := http.NewRequest(http.MethodPut, "/v1/order-forms/"+form.ID.String()+"/equipment", body)
		status, respBody, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusOK))
		Expect(respBody).To(ContainSubstring(`"equipmentId":"200"`))
		Expect(respBody).To(ContainSubstring(`"sectorId":"300"`))
	})

	t.Run("should respond 404 for a technician outside the pool", func(t *testing.T) {
		originFetch := cmmsStubEquipment(testinfra.BuildEquipment(), nil)
		defer originFetch()
		form := assignment.NewForm(testinfra.BuildCatalog())
		defer registerForm(form)()
		Expect(form.SelectEquipmentType(context.Background(), 1)).To(BeNil())

		body := bytes.NewBufferString(`{"technicianId": "102"}`)
		req, _ := http.NewRequest(http.MethodPut, "/v1/order-forms/"+form.ID.String()+"/technician", body)
		status, _, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusNotFound))
	})
}

func TestRecurrenceEstimateHandler(t *testing.T) {
	RegisterTestingT(t)
	router := buildOrderFormRouter()

	t.Run("should estimate the generated occurrences", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/v1/recurrence-estimate?policy=MONTHLY&occurrenceCount=6", nil)
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusOK))
		Expect(body).To(MatchJSON(`{"policy": "MONTHLY", "occurrenceCount": 6, "estimate": 6}`))
	})

	t.Run("should clamp an oversized occurrence count", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/v1/recurrence-estimate?policy=WEEKLY&occurrenceCount=120", nil)
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusOK))
		Expect(body).To(MatchJSON(`{"policy": "WEEKLY", "occurrenceCount": 50, "estimate": 50}`))
	})

	t.Run("should respond 400 for a custom policy without an interval", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/v1/recurrence-estimate?policy=CUSTOM&occurrenceCount=4", nil)
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusBadRequest))
		Expect(body).To(ContainSubstring("recurrence.invalid_interval"))
	})

	t.Run("should respond 400 for an unknown policy", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/v1/recurrence-estimate?policy=HOURLY", nil)
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusBadRequest))
		Expect(body).To(ContainSubstring("recurrence.unknown_policy"))
	})
}
