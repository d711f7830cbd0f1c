package servehttp_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/url"
	"testing"

	"inventech/bizerror"
	"inventech/client/cmms"
	"inventech/domain"
	"inventech/domain/listing"
	"inventech/domain/workorder"
	"inventech/servehttp"
	"inventech/testinfra"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
)

func buildWorkOrderRouter() *gin.Engine {
	router := gin.New()
	router.Use(bizerror.ErrorHandling())
	servehttp.RegisterWorkOrderHandler(router)
	return router
}

func multipartBody(fields map[string]string, files map[string][]byte) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, value := range fields {
		_ = writer.WriteField(name, value)
	}
	for name, content := range files {
		part, _ := writer.CreateFormFile("attachments", name)
		_, _ = part.Write(content)
	}
	_ = writer.Close()
	return body, writer.FormDataContentType()
}

func TestWorkOrderHandlerCreate(t *testing.T) {
	RegisterTestingT(t)
	router := buildWorkOrderRouter()

	t.Run("should create a work order from a multipart submission", func(t *testing.T) {
		origin := workorder.CreateWorkOrderFunc
		defer func() { workorder.CreateWorkOrderFunc = origin }()

		var received *domain.WorkOrderCreation
		var receivedAttachments []cmms.AttachmentUpload
		workorder.CreateWorkOrderFunc = func(ctx context.Context, creation *domain.WorkOrderCreation, attachments []cmms.AttachmentUpload) (*domain.WorkOrder, error) {
			received = creation
			receivedAttachments = attachments
			return &domain.WorkOrder{ID: 500, Description: creation.Description, Preventive: creation.Preventive,
				Priority: creation.Priority, StateName: domain.StatusOpen.Name}, nil
		}

		body, contentType := multipartBody(map[string]string{
			"description":     "quarterly filter cleaning",
			"kind":            "PREVENTIVE",
			"priority":        "HIGH",
			"equipmentTypeId": "1",
			"equipmentId":     "200",
			"technicianId":    "100",
			"scheduledAt":     "2026-09-15",
			"recurrence":      "MONTHLY",
			"occurrenceCount": "6",
		}, map[string][]byte{"nameplate.jpg": []byte("jpeg-bytes")})

		req, _ := http.NewRequest(http.MethodPost, "/v1/work-orders", body)
		req.Header.Set("Content-Type", contentType)
		status, respBody, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusCreated))
		Expect(respBody).To(ContainSubstring(`"id":"500"`))

		Expect(received.Preventive).To(BeTrue())
		Expect(received.Priority).To(Equal(domain.PriorityHigh))
		Expect(received.EquipmentTypeID).To(Equal(types.ID(1)))
		Expect(received.Recurrence).To(Equal(domain.RecurrenceMonthly))
		Expect(received.OccurrenceCount).To(Equal(6))
		Expect(received.ScheduledAt.IsZero()).To(BeFalse())
		Expect(receivedAttachments).To(HaveLen(1))
		Expect(receivedAttachments[0].FileName).To(Equal("nameplate.jpg"))
	})

	t.Run("should respond 400 for a malformed form id", func(t *testing.T) {
		body, contentType := multipartBody(map[string]string{
			"description":     "broken compressor",
			"kind":            "CORRECTIVE",
			"priority":        "URGENT",
			"equipmentTypeId": "abc",
		}, nil)

		req, _ := http.NewRequest(http.MethodPost, "/v1/work-orders", body)
		req.Header.Set("Content-Type", contentType)
		status, respBody, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusBadRequest))
		Expect(respBody).To(ContainSubstring("common.bad_param"))
	})

	t.Run("should map a validation failure to 400", func(t *testing.T) {
		origin := workorder.CreateWorkOrderFunc
		defer func() { workorder.CreateWorkOrderFunc = origin }()
		workorder.CreateWorkOrderFunc = func(ctx context.Context, creation *domain.WorkOrderCreation, attachments []cmms.AttachmentUpload) (*domain.WorkOrder, error) {
			return nil, &bizerror.ErrWorkOrderInvalid{Reason: "description must not be blank"}
		}

		body, contentType := multipartBody(map[string]string{"description": "   "}, nil)
		req, _ := http.NewRequest(http.MethodPost, "/v1/work-orders", body)
		req.Header.Set("Content-Type", contentType)
		status, respBody, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusBadRequest))
		Expect(respBody).To(ContainSubstring("workorder.validation_failed"))
		Expect(respBody).To(ContainSubstring("description must not be blank"))
	})
}

func TestWorkOrderHandlerTransitions(t *testing.T) {
	RegisterTestingT(t)
	router := buildWorkOrderRouter()

	t.Run("should start a work order", func(t *testing.T) {
		origin := workorder.StartWorkOrderFunc
		defer func() { workorder.StartWorkOrderFunc = origin }()
		workorder.StartWorkOrderFunc = func(ctx context.Context, id types.ID) (*domain.WorkOrder, error) {
			Expect(id).To(Equal(types.ID(123)))
			return &domain.WorkOrder{ID: id, StateName: domain.StatusInProgress.Name}, nil
		}

		req, _ := http.NewRequest(http.MethodPut, "/v1/work-orders/123/start", nil)
		status, respBody, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusOK))
		Expect(respBody).To(ContainSubstring(`"status":"IN_PROGRESS"`))
	})

	t.Run("should respond 409 for a forbidden transition", func(t *testing.T) {
		origin := workorder.CancelWorkOrderFunc
		defer func() { workorder.CancelWorkOrderFunc = origin }()
		workorder.CancelWorkOrderFunc = func(ctx context.Context, id types.ID) (*domain.WorkOrder, error) {
			return nil, bizerror.ErrInvalidTransition
		}

		req, _ := http.NewRequest(http.MethodPut, "/v1/work-orders/123/cancel", nil)
		status, respBody, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusConflict))
		Expect(respBody).To(ContainSubstring("workorder.invalid_transition"))
	})

	t.Run("should respond 400 for a malformed path id", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPut, "/v1/work-orders/abc/start", nil)
		status, respBody, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusBadRequest))
		Expect(respBody).To(ContainSubstring("common.bad_param"))
	})

	t.Run("should conclude a work order with resolution and cost", func(t *testing.T) {
		origin := workorder.ConcludeWorkOrderFunc
		defer func() { workorder.ConcludeWorkOrderFunc = origin }()
		workorder.ConcludeWorkOrderFunc = func(ctx context.Context, id types.ID, conclusion *domain.WorkOrderConclusion, attachments []cmms.AttachmentUpload) (*domain.WorkOrder, error) {
			Expect(conclusion.Resolution).To(Equal("compressor replaced"))
			Expect(conclusion.MaintenanceCost).To(Equal(340.25))
			Expect(attachments).To(HaveLen(1))
			return &domain.WorkOrder{ID: id, StateName: domain.StatusConcluded.Name}, nil
		}

		body, contentType := multipartBody(map[string]string{
			"resolutionText":  "compressor replaced",
			"maintenanceCost": "340.25",
		}, map[string][]byte{"invoice.pdf": []byte("pdf-bytes")})

		req, _ := http.NewRequest(http.MethodPut, "/v1/work-orders/123/conclude", body)
		req.Header.Set("Content-Type", contentType)
		status, respBody, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusOK))
		Expect(respBody).To(ContainSubstring(`"status":"CONCLUDED"`))
	})
}

func TestWorkOrderHandlerList(t *testing.T) {
	RegisterTestingT(t)
	router := buildWorkOrderRouter()

	t.Run("should bind the query and respond with page and stats", func(t *testing.T) {
		origin := workorder.ListWorkOrdersFunc
		defer func() { workorder.ListWorkOrdersFunc = origin }()
		workorder.ListWorkOrdersFunc = func(ctx context.Context, query *domain.WorkOrderQuery) (*workorder.ListResult, error) {
			Expect(query.Search).To(Equal("split"))
			Expect(query.Status).To(Equal("OPEN"))
			Expect(query.Page).To(Equal(2))
			Expect(query.PageSize).To(Equal(10))
			return &workorder.ListResult{
				Page: listing.Page{List: []domain.WorkOrderDetail{}, Total: 0, PageNumber: 1, PageSize: 10, TotalPages: 1},
				Stats: listing.Statistics{ByStatus: map[string]int{}, ByPriority: map[domain.Priority]int{}},
			}, nil
		}

		query := url.Values{}
		query.Set("search", "split")
		query.Set("status", "OPEN")
		query.Set("page", "2")
		query.Set("pageSize", "10")
		req, _ := http.NewRequest(http.MethodGet, "/v1/work-orders?"+query.Encode(), nil)
		status, respBody, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusOK))
		Expect(respBody).To(MatchJSON(`{
			"page": {"data": [], "total": 0, "page": 1, "pageSize": 10, "totalPages": 1},
			"stats": {"total": 0, "byStatus": {}, "byPriority": {}, "preventive": 0, "corrective": 0, "concludedCost": 0}
		}`))
	})

	t.Run("should respond 502 when the persistence API fails", func(t *testing.T) {
		origin := workorder.ListWorkOrdersFunc
		defer func() { workorder.ListWorkOrdersFunc = origin }()
		workorder.ListWorkOrdersFunc = func(ctx context.Context, query *domain.WorkOrderQuery) (*workorder.ListResult, error) {
			return nil, &bizerror.ErrRemoteOperation{Cause: http.ErrHandlerTimeout}
		}

		req, _ := http.NewRequest(http.MethodGet, "/v1/work-orders", nil)
		status, respBody, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusBadGateway))
		Expect(respBody).To(ContainSubstring("remote.operation_failed"))
	})
}
