package cmms

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"io/ioutil"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"strings"

	"inventech/common"
	"inventech/domain"

	"github.com/fundwit/go-commons/types"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	GetEquipmentTypesFunc    = GetEquipmentTypes
	GetTechniciansFunc       = GetTechnicians
	GetMaintenanceGroupsFunc = GetMaintenanceGroups
	GetEquipmentFunc         = GetEquipment

	CreateWorkOrderFunc   = CreateWorkOrder
	StartWorkOrderFunc    = StartWorkOrder
	CancelWorkOrderFunc   = CancelWorkOrder
	ConcludeWorkOrderFunc = ConcludeWorkOrder
	QueryWorkOrdersFunc   = QueryWorkOrders
)

// AttachmentUpload is a file to be forwarded to the persistence API inside a
// multipart submission.
type AttachmentUpload struct {
	FileName string
	Content  []byte
}

// CMMS_API_URL
var ActiveClient *Client

type Client struct {
	BaseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Transport: &TracingTransport{Transport: http.DefaultTransport}},
	}
}

// CreateClientFromEnv CMMS_API_URL
func CreateClientFromEnv() *Client {
	client := NewClient(os.Getenv("CMMS_API_URL"))
	ActiveClient = client
	return client
}

func GetEquipmentTypes(ctx context.Context) ([]domain.EquipmentType, error) {
	body, err := ActiveClient.invoke(ctx, http.MethodGet, "/equipment-types", "", nil)
	if err != nil {
		return nil, err
	}
	r := []domain.EquipmentType{}
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, err
	}
	return r, nil
}

func GetTechnicians(ctx context.Context) ([]domain.Technician, error) {
	body, err := ActiveClient.invoke(ctx, http.MethodGet, "/technicians", "", nil)
	if err != nil {
		return nil, err
	}
	r := []domain.Technician{}
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, err
	}
	return r, nil
}

func GetMaintenanceGroups(ctx context.Context) ([]domain.MaintenanceGroup, error) {
	body, err := ActiveClient.invoke(ctx, http.MethodGet, "/maintenance-groups", "", nil)
	if err != nil {
		return nil, err
	}
	r := []domain.MaintenanceGroup{}
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, err
	}
	return r, nil
}

// GetEquipment returns the equipment scoped to one equipment type.
func GetEquipment(ctx context.Context, typeID types.ID) ([]domain.Equipment, error) {
	body, err := ActiveClient.invoke(ctx, http.MethodGet, "/equipment?typeId="+typeID.String(), "", nil)
	if err != nil {
		return nil, err
	}
	r := []domain.Equipment{}
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, err
	}
	return r, nil
}

// CreateWorkOrder posts one multipart submission. Server side expansion into
// a recurrence series is triggered by the recurrence fields.
func CreateWorkOrder(ctx context.Context, fields url.Values, attachments []AttachmentUpload) (*domain.WorkOrder, error) {
	body, contentType, err := buildMultipart(fields, attachments)
	if err != nil {
		return nil, err
	}
	respBody, err := ActiveClient.invoke(ctx, http.MethodPost, "/work-orders", contentType, body)
	if err != nil {
		return nil, err
	}
	r := domain.WorkOrder{}
	if err := json.Unmarshal(respBody, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func StartWorkOrder(ctx context.Context, id types.ID) (*domain.WorkOrder, error) {
	return transition(ctx, id, "start")
}

func CancelWorkOrder(ctx context.Context, id types.ID) (*domain.WorkOrder, error) {
	return transition(ctx, id, "cancel")
}

func ConcludeWorkOrder(ctx context.Context, id types.ID, fields url.Values, attachments []AttachmentUpload) (*domain.WorkOrder, error) {
	body, contentType, err := buildMultipart(fields, attachments)
	if err != nil {
		return nil, err
	}
	respBody, err := ActiveClient.invoke(ctx, http.MethodPut, "/work-orders/"+id.String()+"/conclude", contentType, body)
	if err != nil {
		return nil, err
	}
	r := domain.WorkOrder{}
	if err := json.Unmarshal(respBody, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func QueryWorkOrders(ctx context.Context) ([]domain.WorkOrderDetail, error) {
	body, err := ActiveClient.invoke(ctx, http.MethodGet, "/work-orders", "", nil)
	if err != nil {
		return nil, err
	}
	r := []domain.WorkOrderDetail{}
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, err
	}
	return r, nil
}

func transition(ctx context.Context, id types.ID, name string) (*domain.WorkOrder, error) {
	respBody, err := ActiveClient.invoke(ctx, http.MethodPut, "/work-orders/"+id.String()+"/"+name, "", nil)
	if err != nil {
		return nil, err
	}
	r := domain.WorkOrder{}
	if err := json.Unmarshal(respBody, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func buildMultipart(fields url.Values, attachments []AttachmentUpload) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for name, values := range fields {
		for _, value := range values {
			if err := w.WriteField(name, value); err != nil {
				return nil, "", err
			}
		}
	}
	for _, attachment := range attachments {
		fw, err := w.CreateFormFile("attachments", attachment.FileName)
		if err != nil {
			return nil, "", err
		}
		if _, err := fw.Write(attachment.Content); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

func (c *Client) invoke(ctx context.Context, method, path, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, common.NewErrHttpInvoke(req, nil, "", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, common.NewErrHttpInvoke(req, nil, "", err)
	}
	defer resp.Body.Close()

	respBody, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, common.NewErrHttpInvoke(req, resp, "", err)
	}
	if !common.HttpStatusIsSuccess(resp.StatusCode) {
		return nil, common.NewErrHttpInvoke(req, resp, string(respBody), nil)
	}

	logrus.Debugln(method, path, "responded", resp.StatusCode)
	return respBody, nil
}
