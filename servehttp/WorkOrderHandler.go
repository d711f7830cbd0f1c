package servehttp

import (
	"errors"
	"io/ioutil"
	"net/http"
	"strconv"
	"time"

	"inventech/client/cmms"
	"inventech/common"
	"inventech/domain"
	"inventech/domain/workorder"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

func RegisterWorkOrderHandler(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group("/v1/work-orders", middleWares...)

	handler := &workOrderHandler{}

	g.GET("", handler.handleList)
	g.POST("", handler.handleCreate)
	g.PUT(":id/start", handler.handleStart)
	g.PUT(":id/cancel", handler.handleCancel)
	g.PUT(":id/conclude", handler.handleConclude)
}

type workOrderHandler struct {
}

func (h *workOrderHandler) handleCreate(c *gin.Context) {
	creation := domain.WorkOrderCreation{
		Description:     c.PostForm("description"),
		Preventive:      c.PostForm("kind") == domain.KindPreventive,
		Priority:        domain.Priority(c.PostForm("priority")),
		EquipmentTypeID: parseFormID(c, "equipmentTypeId"),
		EquipmentID:     parseFormID(c, "equipmentId"),
		TechnicianID:    parseFormID(c, "technicianId"),
		SectorID:        parseFormID(c, "sectorId"),
		ScheduledAt:     parseFormDate(c, "scheduledAt"),
		Recurrence:      domain.RecurrencePolicy(c.PostForm("recurrence")),
		IntervalDays:    parseFormInt(c, "intervalDays"),
		OccurrenceCount: parseFormInt(c, "occurrenceCount"),
	}

	created, err := workorder.CreateWorkOrderFunc(c.Request.Context(), &creation, formAttachments(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusCreated, created)
}

func (h *workOrderHandler) handleStart(c *gin.Context) {
	updated, err := workorder.StartWorkOrderFunc(c.Request.Context(), parsePathID(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, updated)
}

func (h *workOrderHandler) handleCancel(c *gin.Context) {
	updated, err := workorder.CancelWorkOrderFunc(c.Request.Context(), parsePathID(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, updated)
}

func (h *workOrderHandler) handleConclude(c *gin.Context) {
	conclusion := domain.WorkOrderConclusion{
		Resolution:      c.PostForm("resolutionText"),
		MaintenanceCost: parseFormFloat(c, "maintenanceCost"),
	}

	updated, err := workorder.ConcludeWorkOrderFunc(c.Request.Context(), parsePathID(c), &conclusion, formAttachments(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, updated)
}

func (h *workOrderHandler) handleList(c *gin.Context) {
	query := domain.WorkOrderQuery{}
	_ = c.MustBindWith(&query, binding.Query)

	result, err := workorder.ListWorkOrdersFunc(c.Request.Context(), &query)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, result)
}

func parsePathID(c *gin.Context) types.ID {
	parsedId, err := types.ParseID(c.Param("id"))
	if err != nil {
		panic(&common.ErrBadParam{Cause: errors.New("invalid id '" + c.Param("id") + "'")})
	}
	return parsedId
}

func parseFormID(c *gin.Context, name string) types.ID {
	raw := c.PostForm(name)
	if raw == "" {
		return 0
	}
	parsedId, err := types.ParseID(raw)
	if err != nil {
		panic(&common.ErrBadParam{Cause: errors.New("invalid " + name + " '" + raw + "'")})
	}
	return parsedId
}

func parseFormInt(c *gin.Context, name string) int {
	raw := c.PostForm(name)
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		panic(&common.ErrBadParam{Cause: errors.New("invalid " + name + " '" + raw + "'")})
	}
	return value
}

func parseFormFloat(c *gin.Context, name string) float64 {
	raw := c.PostForm(name)
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		panic(&common.ErrBadParam{Cause: errors.New("invalid " + name + " '" + raw + "'")})
	}
	return value
}

func parseFormDate(c *gin.Context, name string) common.Timestamp {
	raw := c.PostForm(name)
	if raw == "" {
		return common.Timestamp{}
	}
	if len(raw) == len("2006-01-02") {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			panic(&common.ErrBadParam{Cause: errors.New("invalid " + name + " '" + raw + "'")})
		}
		return common.TimestampOfTime(parsed)
	}
	t := common.Timestamp{}
	if err := t.UnmarshalText([]byte(raw)); err != nil {
		panic(&common.ErrBadParam{Cause: errors.New("invalid " + name + " '" + raw + "'")})
	}
	return t
}

func formAttachments(c *gin.Context) []cmms.AttachmentUpload {
	form, err := c.MultipartForm()
	if err != nil {
		// no multipart body at all is tolerated, fields were already empty
		return nil
	}
	attachments := []cmms.AttachmentUpload{}
	for _, fileHeader := range form.File["attachments"] {
		file, err := fileHeader.Open()
		if err != nil {
			panic(&common.ErrBadParam{Cause: err})
		}
		content, err := ioutil.ReadAll(file)
		file.Close()
		if err != nil {
			panic(&common.ErrBadParam{Cause: err})
		}
		attachments = append(attachments, cmms.AttachmentUpload{FileName: fileHeader.Filename, Content: content})
	}
	return attachments
}
